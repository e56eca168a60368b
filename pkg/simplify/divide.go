package simplify

import (
	"math"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// Divide cancels common factors of a division: structurally equal atoms of
// numerator and denominator cancel pairwise, and numeric atoms fold into a
// single scalar.
func Divide(tree expr.ExprNode) (expr.ExprNode, error) {
	return defaultSimplifier.Divide(tree)
}

func (s *Simplifier) Divide(tree expr.ExprNode) (expr.ExprNode, error) {
	d, ok := tree.(*expr.BinaryNode)
	if !ok || d.Op != expr.OpDiv {
		return nil, simplifyErr(tree, ErrNotDivision)
	}

	num, err := s.Factor(d.Left)
	if err != nil {
		return nil, err
	}
	den, err := s.Factor(d.Right)
	if err != nil {
		return nil, err
	}

	usedNum := make([]bool, len(num))
	usedDen := make([]bool, len(den))
	scalar := 1.0

	for i, a := range num {
		for j, b := range den {
			if usedDen[j] {
				continue
			}
			if expr.Equal(a, b) {
				usedNum[i], usedDen[j] = true, true
				break
			}
			ca, aok := a.(*expr.ConstNode)
			cb, bok := b.(*expr.ConstNode)
			if aok && bok {
				scalar *= ca.Val / cb.Val
				usedNum[i], usedDen[j] = true, true
				break
			}
		}
	}

	newNum := expr.C(scalar)
	for i, a := range num {
		if !usedNum[i] {
			newNum = expr.Mul(newNum, a)
		}
	}
	newDen := expr.C(1)
	for j, b := range den {
		if !usedDen[j] {
			newDen = expr.Mul(newDen, b)
		}
	}

	if expr.IsConst(newDen, 1) {
		return s.Simplify(newNum)
	}
	return &expr.BinaryNode{Op: expr.OpDiv, Left: newNum, Right: newDen}, nil
}

// Factor splits tree into multiplicative atoms. Mul chains are flattened. A
// sum whose addends share a factor becomes that factor and the reduced sum;
// a sum of integral constants yields their greatest common divisor. Unit
// constants are dropped.
func Factor(tree expr.ExprNode) ([]expr.ExprNode, error) {
	return defaultSimplifier.Factor(tree)
}

func (s *Simplifier) Factor(tree expr.ExprNode) ([]expr.ExprNode, error) {
	var factors []expr.ExprNode

	n, ok := tree.(*expr.BinaryNode)
	switch {
	case ok && n.Op == expr.OpMul:
		left, err := s.Factor(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.Factor(n.Right)
		if err != nil {
			return nil, err
		}
		factors = append(left, right...)

	case ok && n.Op == expr.OpAdd:
		common, err := s.factorSum(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		if common == nil {
			common = []expr.ExprNode{tree}
		}
		factors = common

	default:
		factors = []expr.ExprNode{tree}
	}

	out := factors[:0:0]
	for _, f := range factors {
		if !expr.IsConst(f, 1) {
			out = append(out, f)
		}
	}
	return out, nil
}

// factorSum pulls the first factor shared by l and r out of l + r. It
// returns nil when the addends have nothing in common.
func (s *Simplifier) factorSum(l, r expr.ExprNode) ([]expr.ExprNode, error) {
	lf, err := s.Factor(l)
	if err != nil {
		return nil, err
	}
	rf, err := s.Factor(r)
	if err != nil {
		return nil, err
	}

	for _, f1 := range lf {
		for _, f2 := range rf {
			var common expr.ExprNode
			if expr.Equal(f1, f2) {
				common = f1
			} else if g, ok := integralGCD(f1, f2); ok && g != 1 {
				common = expr.C(g)
			}
			if common == nil {
				continue
			}

			ql, err := s.Divide(&expr.BinaryNode{Op: expr.OpDiv, Left: l, Right: common})
			if err != nil {
				return nil, err
			}
			qr, err := s.Divide(&expr.BinaryNode{Op: expr.OpDiv, Left: r, Right: common})
			if err != nil {
				return nil, err
			}
			rest, err := s.Simplify(expr.Add(ql, qr))
			if err != nil {
				return nil, err
			}
			return []expr.ExprNode{common, rest}, nil
		}
	}
	return nil, nil
}

func integralGCD(a, b expr.ExprNode) (float64, bool) {
	ca, aok := a.(*expr.ConstNode)
	cb, bok := b.(*expr.ConstNode)
	if !aok || !bok {
		return 0, false
	}
	x, y := math.Abs(ca.Val), math.Abs(cb.Val)
	if x != math.Trunc(x) || y != math.Trunc(y) || math.IsInf(x, 0) || math.IsInf(y, 0) || x == 0 || y == 0 {
		return 0, false
	}
	for y != 0 {
		x, y = y, math.Mod(x, y)
	}
	return x, true
}
