package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
)

// lowerLocalVar allocates stack storage for a local variable or array
// declarator and lowers its initializer, if any.
func (c *C) lowerLocalVar(decl *ast.Declarator) {
	ty := c.lowerType(decl.Sym.Type)
	ptr := c.b.Local(decl.Name, ty)
	decl.Sym.Value = ptr
	if decl.Init != nil {
		c.lowerInitInto(decl.Init, ptr)
	}
}

// lowerInitInto stores init's value(s) through ptr, recursing through
// brace-enclosed aggregate initializers element by element.
func (c *C) lowerInitInto(init ast.Node, ptr *codegen.Value) {
	if list, ok := init.(*ast.Initializer); ok {
		for i, item := range list.Inits {
			c.lowerInitInto(item, ptr.Index(0, i))
		}
		return
	}
	expr := init.(ast.Expr)
	ptr.Store(c.castTo(c.lowerExpr(expr), ptr.Type().(codegen.Pointer).Element))
}
