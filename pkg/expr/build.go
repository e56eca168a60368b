package expr

import "math"

// Shared leaves. Nodes never mutate, so these are safe to reuse anywhere.
var (
	varX = &VarNode{}
	zero = &ConstNode{Val: 0}
	one  = &ConstNode{Val: 1}
)

// X returns the free variable.
func X() ExprNode { return varX }

// C returns a constant leaf.
func C(v float64) ExprNode {
	switch v {
	case 0:
		if !math.Signbit(v) {
			return zero
		}
	case 1:
		return one
	}
	return &ConstNode{Val: v}
}

// Add builds a + b, dropping a zero addend.
func Add(a, b ExprNode) ExprNode {
	if IsConst(a, 0) {
		return b
	}
	if IsConst(b, 0) {
		return a
	}
	return &BinaryNode{Op: OpAdd, Left: a, Right: b}
}

// Sub builds a - b, dropping a zero subtrahend.
func Sub(a, b ExprNode) ExprNode {
	if IsConst(b, 0) {
		return a
	}
	return &BinaryNode{Op: OpSub, Left: a, Right: b}
}

// Mul builds a * b. A zero factor yields zero and a unit factor is dropped.
func Mul(a, b ExprNode) ExprNode {
	if IsConst(a, 0) || IsConst(b, 0) {
		return zero
	}
	if IsConst(a, 1) {
		return b
	}
	if IsConst(b, 1) {
		return a
	}
	return &BinaryNode{Op: OpMul, Left: a, Right: b}
}

// Div builds a / b, dropping a unit denominator.
func Div(a, b ExprNode) ExprNode {
	if IsConst(b, 1) {
		return a
	}
	return &BinaryNode{Op: OpDiv, Left: a, Right: b}
}

// Pow builds base ^ exp.
func Pow(base, exp ExprNode) ExprNode {
	return &BinaryNode{Op: OpPow, Left: base, Right: exp}
}

// Log builds the logarithm of arg in the given base.
func Log(base, arg ExprNode) ExprNode {
	return &BinaryNode{Op: OpLog, Left: base, Right: arg}
}

// Ln builds the natural logarithm of arg.
func Ln(arg ExprNode) ExprNode {
	return Log(&ConstNode{Val: math.E}, arg)
}

// Neg builds a * -1.
func Neg(a ExprNode) ExprNode {
	return Mul(a, &ConstNode{Val: -1})
}

// Apply builds op(child).
func Apply(op UnaryOp, child ExprNode) ExprNode {
	return &UnaryNode{Op: op, Child: child}
}
