package pool

import (
	"math"
	"math/rand"

	"github.com/HellFelix/number-diff/pkg/expr"
)

func init() {
	Register("mixed", func() Pool { return &MixedPool{} })
}

// MixedPool uses every operation the simplifier understands, including
// division, logarithms, abs and the unbounded trigonometric functions.
// Its trees are frequently undefined at some probe points.
type MixedPool struct{}

func (p *MixedPool) Name() string { return "mixed" }

func (p *MixedPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.45:
		return &expr.VarNode{}
	case r < 0.85:
		return smallInt(rng, 9)
	case r < 0.93:
		return &expr.ConstNode{Val: math.E}
	default:
		return &expr.ConstNode{Val: math.Pi}
	}
}

var mixedUnary = []expr.UnaryOp{
	expr.OpSin,
	expr.OpCos,
	expr.OpTan,
	expr.OpSec,
	expr.OpAtan,
	expr.OpSinh,
	expr.OpCosh,
	expr.OpTanh,
	expr.OpAbs,
}

func (p *MixedPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return mixedUnary[rng.Intn(len(mixedUnary))]
}

var mixedBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
	expr.OpLog,
}

func (p *MixedPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return mixedBinary[rng.Intn(len(mixedBinary))]
}

func (p *MixedPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, 0.25)
}
