package deriv

import (
	"math"
	"testing"

	"github.com/HellFelix/number-diff/pkg/expr"
)

const eulerGamma = 0.57721566490153286061

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDifferentiate(t *testing.T) {
	x := expr.X()
	un := func(op expr.UnaryOp) expr.ExprNode { return expr.Apply(op, x) }

	tests := []struct {
		name string
		node expr.ExprNode
		at   float64
		want float64
	}{
		{"const", expr.C(7), 3, 0},
		{"x", x, 3, 1},
		{"sin", un(expr.OpSin), 0, 1},
		{"cos", un(expr.OpCos), math.Pi / 2, -1},
		{"tan", un(expr.OpTan), 0, 1},
		{"sec", un(expr.OpSec), 0, 0},
		{"csc", un(expr.OpCsc), math.Pi / 2, 0},
		{"cot", un(expr.OpCot), math.Pi / 2, -1},
		{"asin", un(expr.OpAsin), 0.5, 1 / math.Sqrt(0.75)},
		{"acos", un(expr.OpAcos), 0.5, -1 / math.Sqrt(0.75)},
		{"atan", un(expr.OpAtan), 1, 0.5},
		{"sinh", un(expr.OpSinh), 0, 1},
		{"cosh", un(expr.OpCosh), 0, 0},
		{"tanh", un(expr.OpTanh), 0, 1},
		{"abs", un(expr.OpAbs), -2, -1},
		{"gamma", un(expr.OpGamma), 1, -eulerGamma},
		{"factorial", un(expr.OpFactorial), 1, 1 - eulerGamma},
		{"digamma", &expr.PolygammaNode{Child: x, Order: 0}, 1, math.Pi * math.Pi / 6},
		{"x^3", expr.Pow(x, expr.C(3)), 2, 12},
		{"e^x", expr.Pow(expr.C(math.E), x), 1, math.E},
		{"2^x", expr.Pow(expr.C(2), x), 3, 8 * math.Ln2},
		{"ln", expr.Ln(x), 2, 0.5},
		{"log_2", expr.Log(expr.C(2), x), 4, 1 / (4 * math.Ln2)},
		{"product", expr.Mul(x, un(expr.OpSin)), math.Pi, -math.Pi},
		{"quotient", expr.Div(x, expr.Add(x, expr.C(1))), 1, 0.25},
		{"difference", expr.Sub(un(expr.OpSin), x), 0, 0},
		{"chain", expr.Apply(expr.OpSin, expr.Mul(expr.C(2), x)), 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Differentiate(tt.node).EvalF64(tt.at)
			assertNear(t, tt.name, got, tt.want, 1e-9)
		})
	}
}

func TestDifferentiate_PowUndefinedAtZero(t *testing.T) {
	// f·ln(f)·g' is NaN at f = 0 even when g' = 0
	d := Differentiate(expr.Pow(expr.X(), expr.C(2)))
	if got := d.EvalF64(0); !math.IsNaN(got) {
		t.Errorf("(x^2)' at 0 = %v, want NaN", got)
	}
	assertNear(t, "(x^2)' at 3", d.EvalF64(3), 6, 1e-12)
}

func TestDifferentiate_LeavesInputUntouched(t *testing.T) {
	node := expr.Mul(expr.X(), expr.Apply(expr.OpCos, expr.X()))
	before := node.String()
	Differentiate(node)
	if after := node.String(); after != before {
		t.Errorf("input changed: %s -> %s", before, after)
	}
}

func TestNth(t *testing.T) {
	sin := expr.Apply(expr.OpSin, expr.X())
	cases := []struct {
		n    int
		want float64
	}{
		{0, math.Sin(1)},
		{1, math.Cos(1)},
		{2, -math.Sin(1)},
		{3, -math.Cos(1)},
		{4, math.Sin(1)},
	}
	for _, tc := range cases {
		assertNear(t, "sin^(n)(1)", Nth(sin, tc.n).EvalF64(1), tc.want, 1e-12)
	}
}

func TestDerivative_Polynomial(t *testing.T) {
	// 3x^4 + 9x^3 - 3x^2 - 14x
	x := expr.X()
	p := expr.Sub(
		expr.Sub(
			expr.Add(
				expr.Mul(expr.C(3), expr.Pow(x, expr.C(4))),
				expr.Mul(expr.C(9), expr.Pow(x, expr.C(3))),
			),
			expr.Mul(expr.C(3), expr.Pow(x, expr.C(2))),
		),
		expr.Mul(expr.C(14), x),
	)
	assertNear(t, "p(3)", p.EvalF64(3), 417, 1e-9)

	d, err := Derivative(p)
	if err != nil {
		t.Fatalf("Derivative: %v", err)
	}
	// 12x^3 + 27x^2 - 6x - 14
	assertNear(t, "p'(3)", d.EvalF64(3), 535, 1e-9)
	assertNear(t, "p'(-1)", d.EvalF64(-1), -12+27+6-14, 1e-9)
}
