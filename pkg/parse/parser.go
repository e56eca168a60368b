// Package parse turns textual expressions into expression trees.
//
// The grammar is case- and whitespace-insensitive: the functions sin cos tan
// sec csc cot asin acos atan sinh cosh tanh ln abs sqrt and d (symbolic
// derivative) applied as name(expr), postfix !, infix + - * / ^, implicit
// multiplication by adjacency, decimal literals, x, e and pi (or π).
package parse

import (
	"math"
	"strings"

	"github.com/HellFelix/number-diff/pkg/deriv"
	"github.com/HellFelix/number-diff/pkg/expr"
)

// MaxIterations caps the reduction loop for a single token list.
const MaxIterations = 10000

type marker int

const (
	operand marker = iota
	mPow
	mFactorial
	mMul
	mDiv
	mAdd
	mSub
)

var markers = map[string]marker{
	"^": mPow,
	"!": mFactorial,
	"*": mMul,
	"/": mDiv,
	"+": mAdd,
	"-": mSub,
}

// element is either a parsed operand or an operator marker.
type element struct {
	kind marker
	node expr.ExprNode
}

func (e element) isOperand() bool { return e.kind == operand }

// isBinary reports whether e is an operator that expects a right operand.
func (e element) isBinary() bool {
	return e.kind != operand && e.kind != mFactorial
}

// Parse parses s into an expression tree.
func Parse(s string) (expr.ExprNode, error) {
	node, err := parseExpr(normalize(s), 0)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) expr.ExprNode {
	node, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return node
}

func parseExpr(s string, nesting int) (expr.ExprNode, error) {
	if nesting > expr.MaxDepth {
		return nil, errorf(s, "expression nested deeper than %d", expr.MaxDepth)
	}

	tokens := Tokenize(s)
	elems := make([]element, 0, len(tokens))
	for _, tok := range tokens {
		if m, ok := markers[tok]; ok {
			elems = append(elems, element{kind: m})
			continue
		}
		node, err := parseToken(tok, nesting)
		if err != nil {
			return nil, err
		}
		elems = append(elems, element{node: node})
	}

	return reduceAll(s, elems, MaxIterations)
}

// reduceAll applies reduction passes until one operand remains or limit
// passes have run.
func reduceAll(s string, elems []element, limit int) (expr.ExprNode, error) {
	for iter := 0; len(elems) > 1; iter++ {
		if iter >= limit {
			return nil, errorf(s, "reduction did not finish within %d iterations", limit)
		}
		next, applied, err := reduce(elems)
		if err != nil {
			return nil, errorf(s, "%v", err)
		}
		if !applied {
			return nil, errorf(s, "malformed expression")
		}
		elems = next
	}

	if len(elems) != 1 || !elems[0].isOperand() {
		return nil, errorf(s, "malformed expression")
	}
	return elems[0].node, nil
}

// parseToken converts a single token into a subtree.
func parseToken(tok string, nesting int) (expr.ExprNode, error) {
	switch tok {
	case "":
		return nil, errorf(tok, "empty expression")
	case ")":
		return nil, errorf(tok, "unbalanced parentheses")
	case "x":
		return expr.X(), nil
	case "e":
		return expr.C(math.E), nil
	case "pi", "π":
		return expr.C(math.Pi), nil
	}

	if strings.HasPrefix(tok, "(") {
		inner, ok := unwrap(tok)
		if !ok {
			return nil, errorf(tok, "unbalanced parentheses")
		}
		return parseExpr(inner, nesting+1)
	}

	if isNumberStart(rune(tok[0])) {
		v, ok := parseNumber(tok)
		if !ok {
			return nil, errorf(tok, "invalid number")
		}
		return expr.C(v), nil
	}

	open := strings.IndexByte(tok, '(')
	if open < 0 {
		return nil, errorf(tok, "unknown identifier %q", tok)
	}
	name := tok[:open]
	inner, ok := unwrap(tok[open:])
	if !ok {
		return nil, errorf(tok, "unbalanced parentheses")
	}
	if !functionNames[name] {
		return nil, errorf(tok, "unknown identifier %q", name)
	}
	arg, err := parseExpr(inner, nesting+1)
	if err != nil {
		return nil, err
	}
	return applyFunction(name, arg), nil
}

// unwrap strips one pair of enclosing parentheses from s.
func unwrap(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i != len(s)-1 {
			return "", false
		}
	}
	return s[1 : len(s)-1], depth == 0
}

var unaryFunctions = map[string]expr.UnaryOp{
	"sin":  expr.OpSin,
	"cos":  expr.OpCos,
	"tan":  expr.OpTan,
	"sec":  expr.OpSec,
	"csc":  expr.OpCsc,
	"cot":  expr.OpCot,
	"asin": expr.OpAsin,
	"acos": expr.OpAcos,
	"atan": expr.OpAtan,
	"sinh": expr.OpSinh,
	"cosh": expr.OpCosh,
	"tanh": expr.OpTanh,
	"abs":  expr.OpAbs,
}

func applyFunction(name string, arg expr.ExprNode) expr.ExprNode {
	switch name {
	case "ln":
		return expr.Ln(arg)
	case "sqrt":
		return expr.Pow(arg, expr.C(0.5))
	case "d":
		return deriv.Differentiate(arg)
	default:
		return expr.Apply(unaryFunctions[name], arg)
	}
}
