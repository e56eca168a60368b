// Package pool generates random expression trees for self-checks of the
// simplifier and the differentiator.
package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// Pool provides random building blocks for constructing expression trees.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.ExprNode
	RandomUnary(rng *rand.Rand) expr.UnaryOp
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// maxExponent bounds the integer exponents of generated powers.
const maxExponent = 4

// randomTree is a shared helper for building random trees. Generated powers
// always take a small positive integer exponent so values stay finite.
func randomTree(p Pool, rng *rand.Rand, maxDepth int, unaryWeight float64) expr.ExprNode {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	r := rng.Float64()
	switch {
	case r < 0.35:
		return p.RandomLeaf(rng)
	case r < 0.35+unaryWeight:
		return &expr.UnaryNode{
			Op:    p.RandomUnary(rng),
			Child: randomTree(p, rng, maxDepth-1, unaryWeight),
		}
	}

	op := p.RandomBinary(rng)
	left := randomTree(p, rng, maxDepth-1, unaryWeight)
	if op == expr.OpPow {
		exp := &expr.ConstNode{Val: float64(rng.Intn(maxExponent-1) + 2)}
		return &expr.BinaryNode{Op: op, Left: left, Right: exp}
	}
	return &expr.BinaryNode{
		Op:    op,
		Left:  left,
		Right: randomTree(p, rng, maxDepth-1, unaryWeight),
	}
}

// smallInt returns an integer constant in [1, n].
func smallInt(rng *rand.Rand, n int) expr.ExprNode {
	return &expr.ConstNode{Val: float64(rng.Intn(n) + 1)}
}
