package simplify

import (
	"math"
	"sort"

	"github.com/HellFelix/number-diff/pkg/classify"
	"github.com/HellFelix/number-diff/pkg/expr"
)

// MaxExpandDegree bounds the exponent accepted for a sum raised to a power.
const MaxExpandDegree = 1000

// maxCompositions bounds the multinomial enumeration of a single power.
// Powers with more compositions are expanded by repeated squaring.
const maxCompositions = 5000

// Monomial is the canonical polynomial term Coefficient·x^Degree.
type Monomial struct {
	Coefficient float64
	Degree      int
}

// Node renders m as a tree: a bare constant for degree 0, x or c·x for
// degree 1, and c·x^d above.
func (m Monomial) Node() expr.ExprNode {
	switch m.Degree {
	case 0:
		return expr.C(m.Coefficient)
	case 1:
		if m.Coefficient == 1 {
			return expr.X()
		}
		return &expr.BinaryNode{Op: expr.OpMul, Left: expr.C(m.Coefficient), Right: expr.X()}
	default:
		return &expr.BinaryNode{
			Op:    expr.OpMul,
			Left:  expr.C(m.Coefficient),
			Right: &expr.BinaryNode{Op: expr.OpPow, Left: expr.X(), Right: expr.C(float64(m.Degree))},
		}
	}
}

func (m Monomial) times(o Monomial) Monomial {
	return Monomial{Coefficient: m.Coefficient * o.Coefficient, Degree: m.Degree + o.Degree}
}

// Normalize rewrites a polynomial into a degree-descending sum of monomials
// with combined coefficients.
func Normalize(tree expr.ExprNode) (expr.ExprNode, error) {
	terms, err := Terms(tree)
	if err != nil {
		return nil, err
	}
	return reconstruct(terms), nil
}

// Terms returns the canonical monomials of a polynomial, highest degree
// first, without zero coefficients.
func Terms(tree expr.ExprNode) ([]Monomial, error) {
	if !expr.WithinDepth(tree, expr.MaxDepth) {
		return nil, simplifyErr(tree, ErrTooDeep)
	}
	var all []Monomial
	for _, t := range getTerms(tree, 1) {
		expanded, err := expandTerm(t)
		if err != nil {
			return nil, err
		}
		all = append(all, expanded...)
	}
	return groupTogether(all), nil
}

// term is one addend of a flattened sum with its accumulated scale.
type term struct {
	scale float64
	node  expr.ExprNode
}

// getTerms flattens nested sums and differences into addends, negating the
// right side of a difference and distributing constant factors and constant
// divisors over inner sums.
func getTerms(tree expr.ExprNode, scale float64) []term {
	n, ok := tree.(*expr.BinaryNode)
	if !ok || classify.IsConstant(tree) {
		return []term{{scale: scale, node: tree}}
	}

	switch n.Op {
	case expr.OpAdd:
		return append(getTerms(n.Left, scale), getTerms(n.Right, scale)...)
	case expr.OpSub:
		return append(getTerms(n.Left, scale), getTerms(n.Right, -scale)...)
	case expr.OpMul:
		if classify.IsConstant(n.Left) && isSum(n.Right) {
			return getTerms(n.Right, scale*n.Left.EvalF64(0))
		}
		if classify.IsConstant(n.Right) && isSum(n.Left) {
			return getTerms(n.Left, scale*n.Right.EvalF64(0))
		}
	case expr.OpDiv:
		if classify.IsConstant(n.Right) && isSum(n.Left) {
			return getTerms(n.Left, scale/n.Right.EvalF64(0))
		}
	}
	return []term{{scale: scale, node: tree}}
}

func isSum(node expr.ExprNode) bool {
	n, ok := node.(*expr.BinaryNode)
	return ok && (n.Op == expr.OpAdd || n.Op == expr.OpSub)
}

// expandTerm distributes products, expands powers of sums and converts the
// result into monomials.
func expandTerm(t term) ([]Monomial, error) {
	ms, err := expand(t.node)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		ms[i].Coefficient *= t.scale
	}
	return ms, nil
}

func expand(node expr.ExprNode) ([]Monomial, error) {
	if classify.IsConstant(node) {
		return []Monomial{{Coefficient: node.EvalF64(0)}}, nil
	}

	n, ok := node.(*expr.BinaryNode)
	if !ok {
		return convertTerm(node)
	}

	switch n.Op {
	case expr.OpAdd, expr.OpSub:
		return Terms(node)

	case expr.OpMul:
		left, err := expand(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := expand(n.Right)
		if err != nil {
			return nil, err
		}
		return mulPolynomials(left, right), nil

	case expr.OpDiv:
		if !classify.IsConstant(n.Right) {
			return nil, simplifyErr(node, ErrRationalPolynomial)
		}
		ms, err := expand(n.Left)
		if err != nil {
			return nil, err
		}
		d := n.Right.EvalF64(0)
		for i := range ms {
			ms[i].Coefficient /= d
		}
		return ms, nil

	case expr.OpPow:
		exp, ok := classify.NaturalExponent(n.Right)
		if !ok {
			return nil, simplifyErr(node, ErrNonCanonicalTerm)
		}
		if exp == 0 {
			return []Monomial{{Coefficient: 1}}, nil
		}
		if _, isVar := n.Left.(*expr.VarNode); isVar {
			return convertTerm(node)
		}
		base, err := expand(n.Left)
		if err != nil {
			return nil, err
		}
		if len(base) == 1 {
			return []Monomial{powMonomial(base[0], exp)}, nil
		}
		if exp > MaxExpandDegree {
			return nil, simplifyErr(node, ErrDegreeLimit)
		}
		if binomial(exp+len(base)-1, len(base)-1) > maxCompositions {
			return powPolynomial(base, exp), nil
		}
		return Multinomial(base, exp), nil
	}

	return nil, simplifyErr(node, ErrNonCanonicalTerm)
}

// convertTerm turns x or x^n into a monomial.
func convertTerm(node expr.ExprNode) ([]Monomial, error) {
	switch n := node.(type) {
	case *expr.VarNode:
		return []Monomial{{Coefficient: 1, Degree: 1}}, nil
	case *expr.BinaryNode:
		if _, isVar := n.Left.(*expr.VarNode); isVar && n.Op == expr.OpPow {
			if d, ok := classify.NaturalExponent(n.Right); ok {
				return []Monomial{{Coefficient: 1, Degree: d}}, nil
			}
		}
	}
	return nil, simplifyErr(node, ErrNonCanonicalTerm)
}

// mulPolynomials multiplies two grouped polynomials term by term.
func mulPolynomials(a, b []Monomial) []Monomial {
	product := make([]Monomial, 0, len(a)*len(b))
	for _, l := range a {
		for _, r := range b {
			product = append(product, l.times(r))
		}
	}
	return groupTogether(product)
}

// powPolynomial raises a grouped polynomial to the n-th power by squaring.
func powPolynomial(base []Monomial, n int) []Monomial {
	result := []Monomial{{Coefficient: 1}}
	sq := base
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = mulPolynomials(result, sq)
		}
		if n > 1 {
			sq = mulPolynomials(sq, sq)
		}
	}
	return result
}

func powMonomial(m Monomial, n int) Monomial {
	return Monomial{Coefficient: math.Pow(m.Coefficient, float64(n)), Degree: m.Degree * n}
}

// groupTogether sums coefficients of equal degree and orders the result by
// descending degree, dropping zero coefficients.
func groupTogether(ms []Monomial) []Monomial {
	byDegree := make(map[int]float64)
	for _, m := range ms {
		byDegree[m.Degree] += m.Coefficient
	}

	out := make([]Monomial, 0, len(byDegree))
	for d, c := range byDegree {
		if c != 0 {
			out = append(out, Monomial{Coefficient: c, Degree: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Degree > out[j].Degree })
	return out
}

// reconstruct sums the monomials as a left fold.
func reconstruct(ms []Monomial) expr.ExprNode {
	if len(ms) == 0 {
		return expr.C(0)
	}
	sum := ms[0].Node()
	for _, m := range ms[1:] {
		sum = &expr.BinaryNode{Op: expr.OpAdd, Left: sum, Right: m.Node()}
	}
	return sum
}

// LongDivide would divide polynomial p by q. Rational polynomials are not
// supported, so it always fails.
func LongDivide(p, q expr.ExprNode) (expr.ExprNode, error) {
	return nil, simplifyErr(&expr.BinaryNode{Op: expr.OpDiv, Left: p, Right: q}, ErrRationalPolynomial)
}
