package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
)

// lowerCall lowers a function call. printf/scanf are declared variadic (see
// declareFunction), so arguments past the fixed format-string parameter pass
// straight through to Builder.Call's variadic handling; printf additionally
// widens float arguments to double, matching C's default argument
// promotion for variadic calls (scanf's extra arguments are already pointers
// supplied explicitly via & at the call site, so no promotion applies).
func (c *C) lowerCall(e *ast.FunctionCall) *codegen.Value {
	f := c.declareFunction(e.Sym)

	args := make([]*codegen.Value, len(e.Args))
	for i, a := range e.Args {
		v := c.lowerExpr(a)
		if i < len(f.Type.Signature.Parameters) {
			v = c.castTo(v, f.Type.Signature.Parameters[i])
		} else if e.Callee == "printf" && v.Type() == c.m.Types.Float32 {
			v = v.Cast(c.m.Types.Float64)
		}
		args[i] = v
	}
	return c.b.Call(f, args...)
}
