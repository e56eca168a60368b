package classify

import (
	"math"
	"testing"

	"github.com/HellFelix/number-diff/pkg/expr"
)

func TestClassify(t *testing.T) {
	x := expr.X()
	tests := []struct {
		name string
		node expr.ExprNode
		want Category
	}{
		{"const", expr.C(3), Constant},
		{"const subtree", expr.Apply(expr.OpSin, expr.C(2)), Constant},
		{"2^x", expr.Pow(expr.C(2), x), Exponential},
		{"3*2^(4x)", expr.Mul(expr.C(3), expr.Pow(expr.C(2), expr.Mul(expr.C(4), x))), Exponential},
		{"x", x, Polynomial},
		{"x^2+1", expr.Add(expr.Pow(x, expr.C(2)), expr.C(1)), Polynomial},
		{"(x+1)^(2-1)", expr.Pow(expr.Add(x, expr.C(1)), &expr.BinaryNode{Op: expr.OpSub, Left: expr.C(2), Right: expr.C(1)}), Polynomial},
		{"x/2", expr.Div(x, expr.C(2)), Polynomial},
		{"sin(x)", expr.Apply(expr.OpSin, x), Trigonometric},
		{"2sin(x)+cos(x)", expr.Add(expr.Mul(expr.C(2), expr.Apply(expr.OpSin, x)), expr.Apply(expr.OpCos, x)), Trigonometric},
		{"tanh(x)^2", expr.Pow(expr.Apply(expr.OpTanh, x), expr.C(2)), Trigonometric},
		{"ln(sin(x))", expr.Ln(expr.Apply(expr.OpSin, x)), Trigonometric},
		{"x^0.5", expr.Pow(x, expr.C(0.5)), Unclassified},
		{"1/x", expr.Div(expr.C(1), x), Unclassified},
		{"x*sin(x)", expr.Mul(x, expr.Apply(expr.OpSin, x)), Unclassified},
		{"x^x", expr.Pow(x, x), Unclassified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.node); got != tc.want {
				t.Errorf("Classify(%s) = %v, want %v", tc.node, got, tc.want)
			}
		})
	}
}

func TestIsLinear(t *testing.T) {
	x := expr.X()
	if !IsLinear(x) || !IsLinear(expr.Mul(expr.C(3), x)) || !IsLinear(expr.Mul(x, expr.C(3))) {
		t.Error("x, 3x and x*3 should be linear")
	}
	if IsLinear(expr.Add(x, expr.C(1))) {
		t.Error("x+1 is not of the form c*x")
	}
	if IsLinear(expr.Mul(x, x)) {
		t.Error("x*x is not linear")
	}
}

func TestIsDigit(t *testing.T) {
	if !IsDigit(expr.C(4)) || !IsDigit(expr.C(-2)) {
		t.Error("integral constants should be digits")
	}
	if IsDigit(expr.C(2.5)) || IsDigit(expr.C(math.Inf(1))) || IsDigit(expr.X()) {
		t.Error("2.5, +Inf and x are not digits")
	}
}

func TestNaturalExponent(t *testing.T) {
	if n, ok := NaturalExponent(expr.C(3)); !ok || n != 3 {
		t.Errorf("NaturalExponent(3) = %d, %v", n, ok)
	}
	for _, node := range []expr.ExprNode{expr.C(-1), expr.C(1.5), expr.X(), expr.C(math.NaN())} {
		if _, ok := NaturalExponent(node); ok {
			t.Errorf("NaturalExponent(%s) should fail", node)
		}
	}
}

func TestCategoryString(t *testing.T) {
	if Polynomial.String() != "polynomial" {
		t.Errorf("Polynomial.String() = %q", Polynomial.String())
	}
	if Category(42).String() != "unknown" {
		t.Errorf("Category(42).String() = %q", Category(42).String())
	}
}
