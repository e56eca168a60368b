package integrate

import (
	"errors"
	"math"
	"testing"

	"github.com/HellFelix/number-diff/pkg/expr"
)

func TestSimpson_Polynomial(t *testing.T) {
	// Simpson is exact for cubics
	f := func(x float64) float64 { return x*x*x - 2*x + 1 }
	got := Simpson(f, 0, 2, 2)
	if want := 4.0 - 4.0 + 2.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("Simpson(cubic) = %v, want %v", got, want)
	}
}

func TestSimpson_OddIntervals(t *testing.T) {
	f := func(x float64) float64 { return x * x }
	if a, b := Simpson(f, 0, 3, 5), Simpson(f, 0, 3, 6); a != b {
		t.Errorf("5 intervals = %v, want the 6-interval result %v", a, b)
	}
}

func TestIntegrate_Cos(t *testing.T) {
	got, err := Integrate(expr.Apply(expr.OpCos, expr.X()), 0, math.Pi, DefaultPrecision)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(got) > 1e-10 {
		t.Errorf("∫cos over [0, π] = %v, want 0", got)
	}

	if got := EvaluateIntegral(expr.Apply(expr.OpCos, expr.X()), 0, math.Pi); math.Abs(got) > 1e-10 {
		t.Errorf("EvaluateIntegral(cos, 0, π) = %v, want 0", got)
	}
}

func TestIntegral_Builder(t *testing.T) {
	got, err := New(expr.Apply(expr.OpSin, expr.X())).
		LowerBound(0).
		UpperBound(math.Pi / 2).
		Precision(20000).
		Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(got-1) > 1e-5 {
		t.Errorf("∫sin over [0, π/2] = %v, want 1", got)
	}
	if RoundTo(got, 5) != 1 {
		t.Errorf("RoundTo(%v, 5) = %v, want 1", got, RoundTo(got, 5))
	}
}

func TestIntegral_Errors(t *testing.T) {
	_, err := New(expr.X()).LowerBound(0).Evaluate()
	if !errors.Is(err, ErrMissingBounds) {
		t.Errorf("missing upper bound: got %v, want ErrMissingBounds", err)
	}

	_, err = New(expr.X()).LowerBound(0).UpperBound(1).Precision(0).Evaluate()
	if !errors.Is(err, ErrPrecision) {
		t.Errorf("zero precision: got %v, want ErrPrecision", err)
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"23.3274 to 2 places", RoundTo(23.3274, 2), 23.33},
		{"1/3 to 5 places", RoundTo(1.0/3.0, 5), 0.33333},
		{"5 figures of 14912387964", RoundSignificant(14912387964, 5), 14912000000},
		{"1 figure of -4095", RoundSignificant(-4095, 1), -4000},
		{"6 figures of 1234.5678", RoundSignificant(1234.5678, 6), 1234.57},
		{"4 figures of 9.9934e-9", RoundSignificant(0.0000000099934, 4), 0.000000009993},
		{"10 figures of 0.99999999999999999999", RoundSignificant(0.99999999999999999999, 10), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}
