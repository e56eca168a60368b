// Package simplify rewrites expression trees into simpler equivalent forms.
//
// Every rewrite is checked against the input at a fixed set of integer probe
// points before it is returned. The check is a finite sample: it catches
// broken rewrites, but agreement at the probes does not prove equivalence.
package simplify

import (
	"fmt"
	"math"
	"runtime"

	"github.com/HellFelix/number-diff/pkg/classify"
	"github.com/HellFelix/number-diff/pkg/expr"
)

// Options tunes a Simplifier.
type Options struct {
	// Tolerance is the relative tolerance of the probe check. 0 means exact.
	Tolerance float64
	// Workers evaluate probes in parallel.
	Workers int
	// Verify enables the probe check.
	Verify bool
}

// DefaultOptions returns the options used by the package-level functions.
// Their relative tolerance of 1e-9 absorbs float rounding in rewritten
// trees. Set Tolerance to 0 to require exact equality at every probe.
func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-9,
		Workers:   runtime.NumCPU(),
		Verify:    true,
	}
}

// Simplifier simplifies trees with fixed options. It holds no mutable state
// and may be shared between goroutines.
type Simplifier struct {
	opts Options
}

// New creates a Simplifier.
func New(opts Options) *Simplifier {
	return &Simplifier{opts: opts}
}

var defaultSimplifier = New(DefaultOptions())

// Simplify simplifies tree with the default options.
func Simplify(tree expr.ExprNode) (expr.ExprNode, error) {
	return defaultSimplifier.Simplify(tree)
}

// Simplify dispatches on the category of tree and verifies the result.
func (s *Simplifier) Simplify(tree expr.ExprNode) (expr.ExprNode, error) {
	if !expr.WithinDepth(tree, expr.MaxDepth) {
		return nil, simplifyErr(tree, ErrTooDeep)
	}

	candidate, err := s.rewrite(tree)
	if err != nil {
		return nil, err
	}
	if s.opts.Verify {
		if err := s.Verify(tree, candidate); err != nil {
			return nil, err
		}
	}
	return candidate, nil
}

func (s *Simplifier) rewrite(tree expr.ExprNode) (expr.ExprNode, error) {
	switch cat := classify.Classify(tree); cat {
	case classify.Constant:
		return SimplifyConstant(tree)
	case classify.Polynomial:
		return Normalize(tree)
	case classify.Exponential, classify.Trigonometric, classify.Unclassified:
		return s.simplifyOperations(tree)
	default:
		return nil, &InternalError{Original: tree, Reason: fmt.Sprintf("unhandled category %v", cat)}
	}
}

// SimplifyConstant replaces a constant tree with its value.
func SimplifyConstant(tree expr.ExprNode) (expr.ExprNode, error) {
	if !classify.IsConstant(tree) {
		return nil, simplifyErr(tree, ErrNotConstant)
	}
	return expr.C(tree.EvalF64(0)), nil
}

// simplifyOperations simplifies each child and reassembles the node.
func (s *Simplifier) simplifyOperations(tree expr.ExprNode) (expr.ExprNode, error) {
	switch n := tree.(type) {
	case *expr.UnaryNode:
		child, err := s.Simplify(n.Child)
		if err != nil {
			return nil, err
		}
		return expr.Apply(n.Op, child), nil

	case *expr.PolygammaNode:
		child, err := s.Simplify(n.Child)
		if err != nil {
			return nil, err
		}
		return &expr.PolygammaNode{Child: child, Order: n.Order}, nil

	case *expr.BinaryNode:
		if n.Op == expr.OpPow {
			return s.simplifyPower(n.Left, n.Right)
		}
		left, err := s.Simplify(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.Simplify(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case expr.OpAdd:
			return expr.Add(left, right), nil
		case expr.OpSub:
			return expr.Sub(left, right), nil
		case expr.OpMul:
			return expr.Mul(left, right), nil
		case expr.OpDiv:
			return s.Divide(&expr.BinaryNode{Op: expr.OpDiv, Left: left, Right: right})
		case expr.OpLog:
			return expr.Log(left, right), nil
		}
	}
	return tree, nil
}

func (s *Simplifier) simplifyPower(base, exp expr.ExprNode) (expr.ExprNode, error) {
	if c, ok := exp.(*expr.ConstNode); ok {
		switch c.Val {
		case 0:
			return expr.C(1), nil
		case 1:
			return s.Simplify(base)
		}
	}

	sb, err := s.Simplify(base)
	if err != nil {
		return nil, err
	}
	se, err := s.Simplify(exp)
	if err != nil {
		return nil, err
	}

	// (b^e)^n = b^(e·n) for integral n
	if inner, ok := sb.(*expr.BinaryNode); ok && inner.Op == expr.OpPow {
		if n, ok := se.(*expr.ConstNode); ok && n.Val == math.Trunc(n.Val) && !math.IsInf(n.Val, 0) {
			folded := expr.Mul(inner.Right, n)
			if ie, ok := inner.Right.(*expr.ConstNode); ok {
				folded = expr.C(ie.Val * n.Val)
			}
			return expr.Pow(inner.Left, folded), nil
		}
	}
	return expr.Pow(sb, se), nil
}
