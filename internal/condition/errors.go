package condition

import "fmt"

// ErrorKind classifies condition failures so the resolver can fail open with a
// precise reason and the rule set service can reject bad syntax at authoring
// time.
type ErrorKind string

const (
	KindInvalidExpression ErrorKind = "invalid_expression"
	KindUnknownField      ErrorKind = "unknown_field"
	KindTypeMismatch      ErrorKind = "type_mismatch"
)

// Error is a typed condition failure. Parse only produces
// KindInvalidExpression; the other kinds depend on the profile shape and
// surface at evaluation time.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, or "" for non-condition errors.
func KindOf(err error) ErrorKind {
	if ce, ok := err.(*Error); ok {
		return ce.Kind
	}
	return ""
}
