// Package series expands expression trees into truncated Taylor and
// Maclaurin polynomials.
package series

import (
	"fmt"
	"math"

	"github.com/HellFelix/number-diff/pkg/deriv"
	"github.com/HellFelix/number-diff/pkg/expr"
	"github.com/HellFelix/number-diff/pkg/simplify"
)

// Kind identifies the expansion family.
type Kind int

const (
	Taylor Kind = iota
	Maclaurin
)

func (k Kind) String() string {
	switch k {
	case Taylor:
		return "taylor"
	case Maclaurin:
		return "maclaurin"
	default:
		return "unknown"
	}
}

// Expansion is a truncated power series around Center.
type Expansion struct {
	Kind   Kind
	Order  int
	Center float64
	Tree   expr.ExprNode
}

// Eval evaluates the expansion at x.
func (e *Expansion) Eval(x float64) float64 {
	return e.Tree.EvalF64(x)
}

// String returns a human-readable representation.
func (e *Expansion) String() string {
	return fmt.Sprintf("%s order %d at %v: %s", e.Kind, e.Order, e.Center, e.Tree)
}

// Expander builds expansions and simplifies them with its Simplifier.
type Expander struct {
	simplifier *simplify.Simplifier
}

// NewExpander returns an Expander that uses s. A nil s uses the default
// simplifier options.
func NewExpander(s *simplify.Simplifier) *Expander {
	if s == nil {
		s = simplify.New(simplify.DefaultOptions())
	}
	return &Expander{simplifier: s}
}

var defaultExpander = NewExpander(nil)

// ExpandTaylor expands tree to the given order around center.
func ExpandTaylor(tree expr.ExprNode, order int, center float64) (*Expansion, error) {
	return defaultExpander.Taylor(tree, order, center)
}

// ExpandMaclaurin expands tree to the given order around 0.
func ExpandMaclaurin(tree expr.ExprNode, order int) (*Expansion, error) {
	return defaultExpander.Maclaurin(tree, order)
}

// Maclaurin is Taylor around 0.
func (e *Expander) Maclaurin(tree expr.ExprNode, order int) (*Expansion, error) {
	exp, err := e.Taylor(tree, order, 0)
	if err != nil {
		return nil, err
	}
	exp.Kind = Maclaurin
	return exp, nil
}

// Taylor sums f⁽ᵏ⁾(center)/k! · (x - center)^k for k = 0..order, taking the
// derivatives unsimplified, and simplifies the sum once.
func (e *Expander) Taylor(tree expr.ExprNode, order int, center float64) (*Expansion, error) {
	fail := func(reason string, err error) error {
		return &ExpansionError{Tree: tree, Order: order, Center: center, Reason: reason, Err: err}
	}

	if order < 0 {
		return nil, fail("negative order", nil)
	}
	if !expr.WithinDepth(tree, expr.MaxDepth) {
		return nil, fail("expression nested too deeply", nil)
	}

	shifted := expr.Sub(expr.X(), expr.C(center))
	var sum expr.ExprNode = expr.C(0)
	current := tree

	for k := 0; k <= order; k++ {
		if k > 0 {
			current = deriv.Differentiate(current)
		}
		v := current.EvalF64(center)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fail(fmt.Sprintf("derivative %d is %v at the center", k, v), nil)
		}

		coeff := expr.C(v / expr.Factorial(float64(k)))
		var term expr.ExprNode
		if k == 0 {
			term = coeff
		} else {
			term = expr.Mul(coeff, expr.Pow(shifted, expr.C(float64(k))))
		}
		sum = expr.Add(sum, term)
	}

	simplified, err := e.simplifier.Simplify(sum)
	if err != nil {
		return nil, fail("", err)
	}

	return &Expansion{
		Kind:   Taylor,
		Order:  order,
		Center: center,
		Tree:   simplified,
	}, nil
}
