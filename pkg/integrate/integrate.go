// Package integrate approximates definite integrals with the composite
// Simpson rule.
package integrate

import (
	"errors"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// DefaultPrecision is the precision used when none is set. The rule samples
// 2·precision subintervals.
const DefaultPrecision = 1000

var (
	ErrMissingBounds = errors.New("integral bounds not set")
	ErrPrecision     = errors.New("integral precision must be positive")
)

// Simpson applies the composite Simpson rule to f over [lo, hi]. An odd
// interval count is rounded up to the next even number.
func Simpson(f func(float64) float64, lo, hi float64, intervals int) float64 {
	if intervals < 2 {
		intervals = 2
	}
	if intervals%2 == 1 {
		intervals++
	}

	h := (hi - lo) / float64(intervals)
	sum := f(lo) + f(hi)
	for k := 1; k < intervals; k++ {
		w := 2.0
		if k%2 == 1 {
			w = 4.0
		}
		sum += w * f(lo+float64(k)*h)
	}
	return sum * h / 3
}

// Integrate approximates the integral of tree over [lo, hi].
func Integrate(tree expr.ExprNode, lo, hi float64, precision int) (float64, error) {
	if precision <= 0 {
		return 0, ErrPrecision
	}
	return Simpson(expr.Func(tree), lo, hi, 2*precision), nil
}

// EvaluateIntegral integrates tree over [lo, hi] at the default precision and
// rounds the result to 5 significant figures, the accuracy the rule can be
// trusted with at that precision for well-behaved integrands.
func EvaluateIntegral(tree expr.ExprNode, lo, hi float64) float64 {
	v, _ := Integrate(tree, lo, hi, DefaultPrecision)
	return RoundSignificant(v, 5)
}

// Integral configures an integration before evaluating it.
type Integral struct {
	tree      expr.ExprNode
	lo, hi    float64
	hasLo     bool
	hasHi     bool
	precision int
}

// New starts an integral of tree with the default precision.
func New(tree expr.ExprNode) *Integral {
	return &Integral{tree: tree, precision: DefaultPrecision}
}

func (i *Integral) LowerBound(v float64) *Integral {
	i.lo, i.hasLo = v, true
	return i
}

func (i *Integral) UpperBound(v float64) *Integral {
	i.hi, i.hasHi = v, true
	return i
}

func (i *Integral) Precision(p int) *Integral {
	i.precision = p
	return i
}

// Evaluate computes the integral. Both bounds must have been set.
func (i *Integral) Evaluate() (float64, error) {
	if !i.hasLo || !i.hasHi {
		return 0, ErrMissingBounds
	}
	return Integrate(i.tree, i.lo, i.hi, i.precision)
}
