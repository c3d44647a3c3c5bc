package semantic

import (
	"fmt"

	"github.com/minic-lang/minic/ast"
)

// Error is the third user-visible error kind: any violation of the
// analyzer's rules (type resolution, assignability, constant folding,
// l-value, control-flow context, declaration conflicts).
type Error struct {
	Line, Column int
	Message      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("SemanticError(%d, %d): %s", e.Line, e.Column, e.Message)
}

func errAt(span ast.Span, format string, args ...interface{}) *Error {
	return &Error{Line: span.Line, Column: span.Column, Message: fmt.Sprintf(format, args...)}
}
