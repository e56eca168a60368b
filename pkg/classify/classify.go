// Package classify sorts expression trees into coarse categories that select
// a simplification strategy.
package classify

import (
	"math"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// Category is a derived classification of an expression tree.
type Category int

const (
	Constant Category = iota
	Exponential
	Polynomial
	Trigonometric
	Unclassified
)

var categoryNames = map[Category]string{
	Constant:      "constant",
	Exponential:   "exponential",
	Polynomial:    "polynomial",
	Trigonometric: "trigonometric",
	Unclassified:  "unclassified",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Classify returns the first matching category in the order Constant,
// Exponential, Polynomial, Trigonometric, falling back to Unclassified.
func Classify(node expr.ExprNode) Category {
	switch {
	case IsConstant(node):
		return Constant
	case IsExponential(node):
		return Exponential
	case IsPolynomial(node):
		return Polynomial
	case IsTrig(node):
		return Trigonometric
	default:
		return Unclassified
	}
}

// IsConstant reports whether no x is reachable from node.
func IsConstant(node expr.ExprNode) bool {
	switch node.(type) {
	case *expr.VarNode:
		return false
	case *expr.ConstNode:
		return true
	}
	for _, child := range expr.Children(node) {
		if !IsConstant(child) {
			return false
		}
	}
	return true
}

// IsLinear reports whether node is x, c·x or x·c.
func IsLinear(node expr.ExprNode) bool {
	switch n := node.(type) {
	case *expr.VarNode:
		return true
	case *expr.BinaryNode:
		if n.Op != expr.OpMul {
			return false
		}
		_, lv := n.Left.(*expr.VarNode)
		_, rv := n.Right.(*expr.VarNode)
		return (lv && IsConstant(n.Right)) || (rv && IsConstant(n.Left))
	default:
		return false
	}
}

// IsDigit reports whether node is a constant leaf with no fractional part.
func IsDigit(node expr.ExprNode) bool {
	c, ok := node.(*expr.ConstNode)
	return ok && !math.IsInf(c.Val, 0) && c.Val == math.Trunc(c.Val)
}

// IsExponential reports whether node is c^(linear), possibly multiplied by
// constants or other exponentials.
func IsExponential(node expr.ExprNode) bool {
	n, ok := node.(*expr.BinaryNode)
	if !ok {
		return false
	}
	switch n.Op {
	case expr.OpPow:
		return IsConstant(n.Left) && IsLinear(n.Right)
	case expr.OpMul:
		l, r := IsExponential(n.Left), IsExponential(n.Right)
		return (l && r) || (l && IsConstant(n.Right)) || (r && IsConstant(n.Left))
	default:
		return false
	}
}

// IsPolynomial reports whether node is built from x and constants with
// +, -, *, division by a constant and non-negative integer powers.
func IsPolynomial(node expr.ExprNode) bool {
	if IsConstant(node) {
		return true
	}
	switch n := node.(type) {
	case *expr.VarNode:
		return true
	case *expr.BinaryNode:
		switch n.Op {
		case expr.OpAdd, expr.OpSub, expr.OpMul:
			return IsPolynomial(n.Left) && IsPolynomial(n.Right)
		case expr.OpDiv:
			return IsPolynomial(n.Left) && IsConstant(n.Right)
		case expr.OpPow:
			_, ok := NaturalExponent(n.Right)
			return ok && IsPolynomial(n.Left)
		}
	}
	return false
}

// NaturalExponent returns the value of a constant subtree that evaluates to
// a non-negative integer.
func NaturalExponent(node expr.ExprNode) (int, bool) {
	if !IsConstant(node) {
		return 0, false
	}
	v := node.EvalF64(0)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// IsTrig reports whether node is a trigonometric expression: a circular,
// hyperbolic or arcus function, or a sum, product or quotient of such with
// constants or each other, a constant power of one, or a constant-base
// logarithm of one.
func IsTrig(node expr.ExprNode) bool {
	switch n := node.(type) {
	case *expr.UnaryNode:
		return expr.IsTrigOp(n.Op)
	case *expr.BinaryNode:
		switch n.Op {
		case expr.OpAdd, expr.OpSub:
			return IsTrig(n.Left) && IsTrig(n.Right)
		case expr.OpMul, expr.OpDiv:
			l, r := IsTrig(n.Left), IsTrig(n.Right)
			return (l && r) || (l && IsConstant(n.Right)) || (r && IsConstant(n.Left))
		case expr.OpPow:
			return IsTrig(n.Left) && IsConstant(n.Right)
		case expr.OpLog:
			return IsConstant(n.Left) && IsTrig(n.Right)
		}
	}
	return false
}
