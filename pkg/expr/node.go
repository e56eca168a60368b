package expr

// ExprNode is the interface for all expression tree nodes.
//
// Nodes are immutable once built. Subtrees may be shared between any number
// of parent trees; every transformation returns a new tree instead of
// rewriting an existing one.
type ExprNode interface {
	EvalF64(x float64) float64
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpSin UnaryOp = iota
	OpCos
	OpTan
	OpSec
	OpCsc
	OpCot
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpAbs
	OpFactorial
	OpGamma
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow // Left is the base, Right the exponent
	OpLog // Left is the base, Right the argument
)

// VarNode represents the free variable x.
type VarNode struct{}

// ConstNode represents a real constant.
type ConstNode struct {
	Val float64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// PolygammaNode is the polygamma function of the given order applied to a
// child expression. Order 0 is the digamma function.
type PolygammaNode struct {
	Child ExprNode
	Order int
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

// IsTrigOp reports whether op is a trigonometric, arcus or hyperbolic function.
func IsTrigOp(op UnaryOp) bool {
	return op >= OpSin && op <= OpTanh
}

// Children returns the direct subexpressions of node, left to right.
func Children(node ExprNode) []ExprNode {
	switch n := node.(type) {
	case *UnaryNode:
		return []ExprNode{n.Child}
	case *PolygammaNode:
		return []ExprNode{n.Child}
	case *BinaryNode:
		return []ExprNode{n.Left, n.Right}
	default:
		return nil
	}
}
