package pool

import (
	"math/rand"

	"github.com/HellFelix/number-diff/pkg/expr"
)

func init() {
	Register("polynomial", func() Pool { return &PolynomialPool{} })
}

// PolynomialPool builds polynomials in x: integer constants, +, -, * and
// integer powers. It has no unary operations.
type PolynomialPool struct{}

func (p *PolynomialPool) Name() string { return "polynomial" }

func (p *PolynomialPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return &expr.VarNode{}
	}
	return smallInt(rng, 9)
}

// RandomUnary is never called by RandomTree for this pool.
func (p *PolynomialPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return expr.OpAbs
}

var polynomialBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpPow,
}

func (p *PolynomialPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return polynomialBinary[rng.Intn(len(polynomialBinary))]
}

func (p *PolynomialPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, 0)
}
