package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// declareFunction lowers sym's signature and registers the codegen.Function,
// idempotently: a prototype followed by a definition (or repeated use of an
// already-declared extern) must resolve to the same underlying function.
func (c *C) declareFunction(sym *symbol.Symbol) *codegen.Function {
	if f, ok := sym.Value.(*codegen.Function); ok {
		return f
	}
	fn := sym.Type.(*types.Function)
	params := make([]codegen.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = c.lowerType(p)
	}
	if sym.Name == "printf" || sym.Name == "scanf" {
		params = append(params, codegen.Variadic)
	}
	f := c.m.Function(c.lowerType(fn.Ret), sym.Name, params...)
	sym.Value = f
	return f
}

// defineGlobal lowers decl's initializer (or the zero value, if absent) and
// creates the backing codegen.Global in one step. Global initializers are
// required by the analyzer to be constant expressions, so they are folded
// into a codegen.Const rather than built into any function body.
func (c *C) defineGlobal(decl *ast.Declarator) {
	ty := c.lowerType(decl.Sym.Type)
	var val codegen.Const
	if decl.Init != nil {
		val = c.lowerConstInit(decl.Init, decl.Sym.Type)
	} else {
		val = c.m.Zero(ty)
	}
	g := c.m.Global(decl.Sym.Name, val).LinkPublic()
	decl.Sym.Value = g
}
