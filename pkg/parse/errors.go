package parse

import "fmt"

// Error is returned for input that cannot be turned into an expression tree.
type Error struct {
	Input  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

func errorf(input, format string, args ...any) *Error {
	return &Error{Input: input, Reason: fmt.Sprintf(format, args...)}
}
