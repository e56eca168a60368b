package series

import (
	"fmt"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// ExpansionError reports a series expansion that could not be built.
type ExpansionError struct {
	Tree   expr.ExprNode
	Order  int
	Center float64
	Reason string
	Err    error
}

func (e *ExpansionError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("expand %s (order %d, center %v): %s", e.Tree, e.Order, e.Center, msg)
}

func (e *ExpansionError) Unwrap() error { return e.Err }
