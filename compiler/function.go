package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
)

// buildFunction lowers a function definition's body. Parameters are copied
// into stack slots on entry so that, like every other local, they are
// addressable l-values the body can reassign.
func (c *C) buildFunction(d *ast.FunctionDefinition) {
	f := c.declareFunction(d.Sym)

	params := paramDecls(d.Decl)
	names := make([]string, len(params))
	for i, p := range params {
		if p.Decl != nil {
			names[i] = p.Decl.Name
		}
	}
	f.SetParameterNames(names...)

	f.Build(func(b *codegen.Builder) {
		prevB, prevLoops := c.b, c.loops
		c.b, c.loops = b, nil
		defer func() { c.b, c.loops = prevB, prevLoops }()

		for i, p := range params {
			if p.Decl == nil || p.Decl.Name == "" {
				continue
			}
			local := b.LocalInit(p.Decl.Name, b.Parameter(i))
			p.Decl.Sym.Value = local
		}

		c.lowerStatement(d.Body)

		if !b.IsBlockTerminated() {
			b.Return(nil)
		}
	})
}

// paramDecls extracts the parameter list from a function declarator's
// trailing ParamSuffix.
func paramDecls(d *ast.Declarator) []*ast.Param {
	for i := len(d.Suffix) - 1; i >= 0; i-- {
		if ps, ok := d.Suffix[i].(*ast.ParamSuffix); ok {
			return ps.Params
		}
	}
	return nil
}
