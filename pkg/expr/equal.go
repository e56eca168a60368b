package expr

// Equal reports whether a and b are structurally identical. Constants
// compare with ==, so -0 equals 0 and NaN equals nothing.
func Equal(a, b ExprNode) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *VarNode:
		_, ok := b.(*VarNode)
		return ok
	case *ConstNode:
		y, ok := b.(*ConstNode)
		return ok && x.Val == y.Val
	case *UnaryNode:
		y, ok := b.(*UnaryNode)
		return ok && x.Op == y.Op && Equal(x.Child, y.Child)
	case *PolygammaNode:
		y, ok := b.(*PolygammaNode)
		return ok && x.Order == y.Order && Equal(x.Child, y.Child)
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

// IsConst reports whether node is a constant leaf with value v.
func IsConst(node ExprNode, v float64) bool {
	c, ok := node.(*ConstNode)
	return ok && c.Val == v
}
