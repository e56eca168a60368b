package expr

// MaxDepth bounds the nesting accepted by walkers that can fail.
const MaxDepth = 10000

func (v *VarNode) NodeCount() int       { return 1 }
func (c *ConstNode) NodeCount() int     { return 1 }
func (u *UnaryNode) NodeCount() int     { return 1 + u.Child.NodeCount() }
func (p *PolygammaNode) NodeCount() int { return 1 + p.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

func (v *VarNode) Depth() int       { return 1 }
func (c *ConstNode) Depth() int     { return 1 }
func (u *UnaryNode) Depth() int     { return 1 + u.Child.Depth() }
func (p *PolygammaNode) Depth() int { return 1 + p.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// WithinDepth reports whether node nests no deeper than limit. Unlike Depth
// it stops descending once the limit is crossed, so it terminates on trees
// that would overflow the stack or contain a cycle.
func WithinDepth(node ExprNode, limit int) bool {
	if node == nil || limit <= 0 {
		return false
	}
	for _, child := range Children(node) {
		if !WithinDepth(child, limit-1) {
			return false
		}
	}
	return true
}

// OpCount returns how many times each operation name occurs in node.
// Leaves are counted under "x" and "const".
func OpCount(node ExprNode) map[string]int {
	counts := make(map[string]int)
	var walk func(ExprNode)
	walk = func(n ExprNode) {
		switch v := n.(type) {
		case *VarNode:
			counts["x"]++
		case *ConstNode:
			counts["const"]++
		case *UnaryNode:
			counts[v.Op.Name()]++
		case *PolygammaNode:
			counts["polygamma"]++
		case *BinaryNode:
			counts[v.Op.Symbol()]++
		}
		for _, child := range Children(n) {
			walk(child)
		}
	}
	walk(node)
	return counts
}
