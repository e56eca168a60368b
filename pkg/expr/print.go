package expr

import (
	"fmt"
	"math"
	"strconv"
)

var unaryOpNames = map[UnaryOp]string{
	OpSin:       "sin",
	OpCos:       "cos",
	OpTan:       "tan",
	OpSec:       "sec",
	OpCsc:       "csc",
	OpCot:       "cot",
	OpAsin:      "asin",
	OpAcos:      "acos",
	OpAtan:      "atan",
	OpSinh:      "sinh",
	OpCosh:      "cosh",
	OpTanh:      "tanh",
	OpAbs:       "abs",
	OpFactorial: "!",
	OpGamma:     "gamma",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
	OpLog: "log",
}

// Name returns the identifier of a unary operation.
func (op UnaryOp) Name() string {
	return unaryOpNames[op]
}

// Symbol returns the infix symbol of a binary operation.
func (op BinaryOp) Symbol() string {
	return binaryOpSymbols[op]
}

func formatConst(v float64) string {
	switch v {
	case math.E:
		return "e"
	case math.Pi:
		return "pi"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String methods. The output of String parses back to an equal-valued tree
// for every node the grammar can express.

func (v *VarNode) String() string {
	return "x"
}

func (c *ConstNode) String() string {
	return formatConst(c.Val)
}

func (u *UnaryNode) String() string {
	child := u.Child.String()
	switch u.Op {
	case OpFactorial:
		return fmt.Sprintf("(%s)!", child)
	default:
		return fmt.Sprintf("%s(%s)", unaryOpNames[u.Op], child)
	}
}

func (p *PolygammaNode) String() string {
	return fmt.Sprintf("polygamma_%d(%s)", p.Order, p.Child.String())
}

func (b *BinaryNode) String() string {
	left := b.Left.String()
	right := b.Right.String()
	switch b.Op {
	case OpPow:
		return fmt.Sprintf("(%s)^(%s)", left, right)
	case OpLog:
		if c, ok := b.Left.(*ConstNode); ok && c.Val == math.E {
			return fmt.Sprintf("ln(%s)", right)
		}
		return fmt.Sprintf("(ln(%s) / ln(%s))", right, left)
	default:
		return fmt.Sprintf("(%s %s %s)", left, binaryOpSymbols[b.Op], right)
	}
}

// LaTeX methods

func (v *VarNode) LaTeX() string {
	return "x"
}

func (c *ConstNode) LaTeX() string {
	switch c.Val {
	case math.E:
		return "e"
	case math.Pi:
		return "\\pi"
	}
	return formatConst(c.Val)
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpFactorial:
		return fmt.Sprintf("{%s}!", child)
	case OpAbs:
		return fmt.Sprintf("|%s|", child)
	case OpGamma:
		return fmt.Sprintf("\\Gamma{(%s)}", child)
	case OpAsin, OpAcos, OpAtan:
		return fmt.Sprintf("\\arc%s{(%s)}", unaryOpNames[u.Op][1:], child)
	default:
		return fmt.Sprintf("\\%s{(%s)}", unaryOpNames[u.Op], child)
	}
}

func (p *PolygammaNode) LaTeX() string {
	return fmt.Sprintf("\\psi^{(%d)}{(%s)}", p.Order, p.Child.LaTeX())
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", left, right)
	case OpLog:
		if c, ok := b.Left.(*ConstNode); ok && c.Val == math.E {
			return fmt.Sprintf("\\ln{(%s)}", right)
		}
		return fmt.Sprintf("\\log_{%s}{(%s)}", left, right)
	default:
		return ""
	}
}
