package series

import (
	"math"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// MaxDigits caps the correct-digit count at float64 precision.
const MaxDigits = 15

// Accuracy summarizes how closely an expansion tracks its function.
type Accuracy struct {
	MaxDeviation  float64 `json:"max_deviation" yaml:"max_deviation"`
	WorstX        float64 `json:"worst_x" yaml:"worst_x"`
	CorrectDigits float64 `json:"correct_digits" yaml:"correct_digits"`
	Samples       int     `json:"samples" yaml:"samples"`
}

// MeasureAccuracy samples f and exp at evenly spaced points of [lo, hi].
// Points where f is undefined are skipped. CorrectDigits is the worst case
// over the remaining samples.
func MeasureAccuracy(f expr.ExprNode, exp *Expansion, lo, hi float64, samples int) Accuracy {
	if samples < 2 {
		samples = 2
	}

	acc := Accuracy{CorrectDigits: MaxDigits, WorstX: lo}
	step := (hi - lo) / float64(samples-1)
	for i := 0; i < samples; i++ {
		x := lo + float64(i)*step
		want := f.EvalF64(x)
		if math.IsNaN(want) || math.IsInf(want, 0) {
			continue
		}
		got := exp.Eval(x)
		acc.Samples++

		dev := math.Abs(got - want)
		if math.IsNaN(dev) {
			dev = math.Inf(1)
		}
		if dev > acc.MaxDeviation {
			acc.MaxDeviation = dev
			acc.WorstX = x
		}
		if d := countCorrectDigits(got, want); d < acc.CorrectDigits {
			acc.CorrectDigits = d
		}
	}
	if acc.Samples == 0 {
		acc.CorrectDigits = 0
	}
	return acc
}

// countCorrectDigits counts matching decimal digits of computed against target.
func countCorrectDigits(computed, target float64) float64 {
	diff := math.Abs(computed - target)
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		return 0
	}
	if diff == 0 {
		return MaxDigits
	}

	absTgt := math.Abs(target)
	if absTgt == 0 {
		return math.Max(0, math.Min(-math.Log10(diff), MaxDigits))
	}

	digits := -math.Log10(diff / absTgt)
	return math.Max(0, math.Min(digits, MaxDigits))
}
