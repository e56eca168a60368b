package simplify

import (
	"errors"
	"fmt"

	"github.com/HellFelix/number-diff/pkg/expr"
)

var (
	ErrNotDivision        = errors.New("attempted to divide a non-division expression")
	ErrNotConstant        = errors.New("attempted to constant-fold a non-constant expression")
	ErrRationalPolynomial = errors.New("rational polynomial simplification is not supported")
	ErrNonCanonicalTerm   = errors.New("term is not a monomial")
	ErrDegreeLimit        = errors.New("polynomial degree exceeds the expansion limit")
	ErrTooDeep            = errors.New("expression nested too deeply")
)

// SimplifyError reports a rewrite that cannot be applied to Tree.
type SimplifyError struct {
	Tree expr.ExprNode
	Err  error
}

func (e *SimplifyError) Error() string {
	return fmt.Sprintf("simplify %s: %v", e.Tree, e.Err)
}

func (e *SimplifyError) Unwrap() error { return e.Err }

func simplifyErr(tree expr.ExprNode, err error) error {
	return &SimplifyError{Tree: tree, Err: err}
}

// InternalError reports that a rewrite produced a tree that does not agree
// with its input at a probe point, or that dispatch reached a state that
// cannot occur for a well-formed tree.
type InternalError struct {
	Original  expr.ExprNode
	Candidate expr.ExprNode
	Probe     float64
	Want, Got float64
	Reason    string
}

func (e *InternalError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("internal error simplifying %s: %s", e.Original, e.Reason)
	}
	return fmt.Sprintf("internal error simplifying %s: rewrite %s differs at x=%v (want %v, got %v)",
		e.Original, e.Candidate, e.Probe, e.Want, e.Got)
}
