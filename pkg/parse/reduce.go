package parse

import (
	"errors"

	"github.com/HellFelix/number-diff/pkg/expr"
)

var errFactorialOperand = errors.New("factorial without operand")

// reduce applies the highest-priority rule that matches elems, one full pass.
// It reports whether any rule applied.
func reduce(elems []element) ([]element, bool, error) {
	passes := []func([]element) ([]element, bool, error){
		reducePow,
		reduceFactorial,
		reduceNegation,
		binaryPass(mMul),
		reduceImplicit,
		binaryPass(mDiv),
		reduceAdditive,
	}
	for _, pass := range passes {
		next, applied, err := pass(elems)
		if err != nil || applied {
			return next, applied, err
		}
	}
	return elems, false, nil
}

func combine(op expr.BinaryOp, left, right expr.ExprNode) element {
	return element{node: &expr.BinaryNode{Op: op, Left: left, Right: right}}
}

// splice replaces elems[lo:hi] with e.
func splice(elems []element, lo, hi int, e element) []element {
	out := make([]element, 0, len(elems)-(hi-lo)+1)
	out = append(out, elems[:lo]...)
	out = append(out, e)
	return append(out, elems[hi:]...)
}

func binaryAt(elems []element, i int, m marker) bool {
	return i > 0 && i+1 < len(elems) &&
		elems[i].kind == m && elems[i-1].isOperand() && elems[i+1].isOperand()
}

// reducePow combines exponentiation right to left.
func reducePow(elems []element) ([]element, bool, error) {
	applied := false
	for i := len(elems) - 2; i > 0; i-- {
		if binaryAt(elems, i, mPow) {
			elems = splice(elems, i-1, i+2, combine(expr.OpPow, elems[i-1].node, elems[i+1].node))
			applied = true
			i--
		}
	}
	return elems, applied, nil
}

func reduceFactorial(elems []element) ([]element, bool, error) {
	applied := false
	for i := 0; i < len(elems); i++ {
		if elems[i].kind != mFactorial {
			continue
		}
		if i == 0 || !elems[i-1].isOperand() {
			return nil, false, errFactorialOperand
		}
		node := expr.Apply(expr.OpFactorial, elems[i-1].node)
		elems = splice(elems, i-1, i+1, element{node: node})
		applied = true
		i--
	}
	return elems, applied, nil
}

// reduceNegation rewrites a leading minus, or a minus directly after another
// binary operator, as operand * -1.
func reduceNegation(elems []element) ([]element, bool, error) {
	applied := false
	for i := len(elems) - 2; i >= 0; i-- {
		if elems[i].kind != mSub || !elems[i+1].isOperand() {
			continue
		}
		if i > 0 && !elems[i-1].isBinary() {
			continue
		}
		node := &expr.BinaryNode{Op: expr.OpMul, Left: elems[i+1].node, Right: expr.C(-1)}
		elems = splice(elems, i, i+2, element{node: node})
		applied = true
	}
	return elems, applied, nil
}

var markerOps = map[marker]expr.BinaryOp{
	mMul: expr.OpMul,
	mDiv: expr.OpDiv,
	mAdd: expr.OpAdd,
	mSub: expr.OpSub,
}

// binaryPass combines every m operator left to right.
func binaryPass(m marker) func([]element) ([]element, bool, error) {
	return func(elems []element) ([]element, bool, error) {
		applied := false
		for i := 1; i < len(elems)-1; {
			if binaryAt(elems, i, m) {
				elems = splice(elems, i-1, i+2, combine(markerOps[m], elems[i-1].node, elems[i+1].node))
				applied = true
				continue
			}
			i++
		}
		return elems, applied, nil
	}
}

// reduceImplicit multiplies adjacent operands left to right.
func reduceImplicit(elems []element) ([]element, bool, error) {
	applied := false
	for i := 0; i+1 < len(elems); {
		if elems[i].isOperand() && elems[i+1].isOperand() {
			elems = splice(elems, i, i+2, combine(expr.OpMul, elems[i].node, elems[i+1].node))
			applied = true
			continue
		}
		i++
	}
	return elems, applied, nil
}

// reduceAdditive combines + and - in a single left-to-right pass.
func reduceAdditive(elems []element) ([]element, bool, error) {
	applied := false
	for i := 1; i < len(elems)-1; {
		if binaryAt(elems, i, mAdd) || binaryAt(elems, i, mSub) {
			op := markerOps[elems[i].kind]
			elems = splice(elems, i-1, i+2, combine(op, elems[i-1].node, elems[i+1].node))
			applied = true
			continue
		}
		i++
	}
	return elems, applied, nil
}
