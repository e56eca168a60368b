// Package deriv implements symbolic differentiation with respect to x.
package deriv

import (
	"math"

	"github.com/HellFelix/number-diff/pkg/expr"
	"github.com/HellFelix/number-diff/pkg/simplify"
)

// Node literals are used throughout instead of the expr constructors so the
// result is the textbook rule applied verbatim, with no identity folding.

func c(v float64) expr.ExprNode { return &expr.ConstNode{Val: v} }

func un(op expr.UnaryOp, f expr.ExprNode) expr.ExprNode {
	return &expr.UnaryNode{Op: op, Child: f}
}

func bin(op expr.BinaryOp, l, r expr.ExprNode) expr.ExprNode {
	return &expr.BinaryNode{Op: op, Left: l, Right: r}
}

func add(l, r expr.ExprNode) expr.ExprNode { return bin(expr.OpAdd, l, r) }
func sub(l, r expr.ExprNode) expr.ExprNode { return bin(expr.OpSub, l, r) }
func mul(l, r expr.ExprNode) expr.ExprNode { return bin(expr.OpMul, l, r) }
func div(l, r expr.ExprNode) expr.ExprNode { return bin(expr.OpDiv, l, r) }
func pow(l, r expr.ExprNode) expr.ExprNode { return bin(expr.OpPow, l, r) }
func ln(f expr.ExprNode) expr.ExprNode     { return bin(expr.OpLog, c(math.E), f) }
func sq(f expr.ExprNode) expr.ExprNode     { return pow(f, c(2)) }

// Differentiate returns d/dx of node. It never fails and applies no
// simplification, so the result may evaluate to NaN where a rule's
// intermediate terms are undefined.
func Differentiate(node expr.ExprNode) expr.ExprNode {
	switch n := node.(type) {
	case *expr.ConstNode:
		return c(0)
	case *expr.VarNode:
		return c(1)
	case *expr.UnaryNode:
		return unary(n.Op, n.Child)
	case *expr.PolygammaNode:
		// ψ⁽ᵐ⁾(f)' = f'·ψ⁽ᵐ⁺¹⁾(f)
		return mul(Differentiate(n.Child), &expr.PolygammaNode{Child: n.Child, Order: n.Order + 1})
	case *expr.BinaryNode:
		return binary(n.Op, n.Left, n.Right)
	default:
		return c(math.NaN())
	}
}

func unary(op expr.UnaryOp, f expr.ExprNode) expr.ExprNode {
	df := Differentiate(f)

	switch op {
	case expr.OpSin:
		return mul(un(expr.OpCos, f), df)
	case expr.OpCos:
		return mul(mul(un(expr.OpSin, f), c(-1)), df)
	case expr.OpTan:
		return mul(div(c(1), sq(un(expr.OpCos, f))), df)
	case expr.OpSec:
		return mul(mul(df, un(expr.OpTan, f)), un(expr.OpSec, f))
	case expr.OpCsc:
		return mul(mul(mul(df, un(expr.OpCot, f)), un(expr.OpCsc, f)), c(-1))
	case expr.OpCot:
		return mul(mul(df, c(-1)), sq(un(expr.OpCsc, f)))
	case expr.OpAsin:
		return div(df, pow(sub(c(1), sq(f)), c(0.5)))
	case expr.OpAcos:
		return mul(div(df, pow(sub(c(1), sq(f)), c(0.5))), c(-1))
	case expr.OpAtan:
		return div(df, add(sq(f), c(1)))
	case expr.OpSinh:
		return mul(un(expr.OpCosh, f), df)
	case expr.OpCosh:
		return mul(un(expr.OpSinh, f), df)
	case expr.OpTanh:
		return div(df, sq(un(expr.OpCosh, f)))
	case expr.OpAbs:
		return div(mul(f, df), un(expr.OpAbs, f))
	case expr.OpFactorial:
		// f! ' = f'·f!·ψ(f+1)
		return mul(mul(df, un(expr.OpFactorial, f)), &expr.PolygammaNode{Child: add(f, c(1)), Order: 0})
	case expr.OpGamma:
		// Γ(f)' = f'·Γ(f)·ψ(f)
		return mul(mul(df, un(expr.OpGamma, f)), &expr.PolygammaNode{Child: f, Order: 0})
	default:
		return c(math.NaN())
	}
}

func binary(op expr.BinaryOp, f, g expr.ExprNode) expr.ExprNode {
	df := Differentiate(f)
	dg := Differentiate(g)

	switch op {
	case expr.OpAdd:
		return add(df, dg)
	case expr.OpSub:
		return sub(df, dg)
	case expr.OpMul:
		return add(mul(df, g), mul(dg, f))
	case expr.OpDiv:
		return div(sub(mul(df, g), mul(dg, f)), sq(g))
	case expr.OpPow:
		// f^(g-1)·(g·f' + f·ln(f)·g'), valid where f > 0
		return mul(pow(f, sub(g, c(1))), add(mul(g, df), mul(f, mul(ln(f), dg))))
	case expr.OpLog:
		// log_f(g)' = (ln(f)·g'/g - ln(g)·f'/f) / ln(f)²
		return div(sub(div(mul(ln(f), dg), g), div(mul(ln(g), df), f)), sq(ln(f)))
	default:
		return c(math.NaN())
	}
}

// Derivative returns the simplified derivative of node.
func Derivative(node expr.ExprNode) (expr.ExprNode, error) {
	return simplify.Simplify(Differentiate(node))
}

// Nth applies Differentiate n times.
func Nth(node expr.ExprNode, n int) expr.ExprNode {
	for i := 0; i < n; i++ {
		node = Differentiate(node)
	}
	return node
}
