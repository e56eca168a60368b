package pool

import (
	"math"
	"math/rand"

	"github.com/HellFelix/number-diff/pkg/expr"
)

func init() {
	Register("trig", func() Pool { return &TrigPool{} })
}

// TrigPool adds the bounded trigonometric and hyperbolic functions, and pi as
// a leaf, to the polynomial building blocks.
type TrigPool struct{}

func (p *TrigPool) Name() string { return "trig" }

func (p *TrigPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.5:
		return &expr.VarNode{}
	case r < 0.9:
		return smallInt(rng, 5)
	default:
		return &expr.ConstNode{Val: math.Pi}
	}
}

var trigUnary = []expr.UnaryOp{
	expr.OpSin,
	expr.OpCos,
	expr.OpAtan,
	expr.OpTanh,
}

func (p *TrigPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return trigUnary[rng.Intn(len(trigUnary))]
}

var trigBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpPow,
}

func (p *TrigPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return trigBinary[rng.Intn(len(trigBinary))]
}

func (p *TrigPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, 0.25)
}
