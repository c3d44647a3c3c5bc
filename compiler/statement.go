package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
)

// proceed reports whether execution should continue within the innermost
// enclosing loop: false once that iteration has hit a break or continue.
// Outside any loop it is unconditionally true. Because codegen.Builder
// exposes only structured If/While combinators and no raw branch-to-block
// primitive, break/continue are lowered as a pair of stack booleans that
// gate every subsequent statement for the rest of the iteration, rather
// than as a jump.
func (c *C) proceed() *codegen.Value {
	if len(c.loops) == 0 {
		return c.b.Scalar(true)
	}
	lc := c.loops[len(c.loops)-1]
	return c.b.And(c.b.Not(lc.broke.Load()), c.b.Not(lc.continued.Load()))
}

// lowerStatement lowers one statement or local declaration. Inside a loop,
// it first checks proceed() and skips entirely if a break or continue has
// already fired this iteration.
func (c *C) lowerStatement(stmt ast.Node) {
	if len(c.loops) == 0 {
		c.lowerStatementUngated(stmt)
		return
	}
	c.b.If(c.proceed(), func() { c.lowerStatementUngated(stmt) })
}

func (c *C) lowerStatementUngated(stmt ast.Node) {
	switch s := stmt.(type) {
	case *ast.StatementList:
		for _, item := range s.Stmts {
			c.lowerStatement(item)
		}

	case *ast.VariableDeclaration:
		for _, decl := range s.Decls {
			c.lowerLocalVar(decl)
		}
	case *ast.ArrayDeclaration:
		for _, decl := range s.Decls {
			c.lowerLocalVar(decl)
		}
	case *ast.CompoundDefinition:
		// Local struct/union tags only ever introduce a named type; there
		// is no codegen presence until a variable of that type is lowered.
	case *ast.EnumDefinition:
		// Local enum constants are folded to i32 literals at use sites.

	case *ast.If:
		cond := c.lowerExpr(s.Cond)
		if s.Else != nil {
			c.b.IfElse(cond, func() { c.lowerStatement(s.Then) }, func() { c.lowerStatement(s.Else) })
		} else {
			c.b.If(cond, func() { c.lowerStatement(s.Then) })
		}

	case *ast.While:
		c.lowerWhile(s)

	case *ast.For:
		c.lowerFor(s)

	case *ast.Return:
		if s.Value == nil {
			c.b.Return(nil)
			return
		}
		c.b.Return(c.lowerExpr(s.Value))

	case *ast.Break:
		c.loops[len(c.loops)-1].broke.Store(c.b.Scalar(true))

	case *ast.Continue:
		c.loops[len(c.loops)-1].continued.Store(c.b.Scalar(true))

	case *ast.Empty:
		// no-op

	case *ast.ExpressionStatement:
		c.lowerExpr(s.Expr)

	default:
		panic(notImplemented("statement %T", stmt))
	}
}

func (c *C) lowerWhile(s *ast.While) {
	broke := c.b.LocalInit("broke", c.b.Scalar(false))
	continued := c.b.LocalInit("continued", c.b.Scalar(false))
	c.loops = append(c.loops, loopContext{broke: broke, continued: continued})
	defer func() { c.loops = c.loops[:len(c.loops)-1] }()

	c.b.While(
		func() *codegen.Value {
			return c.b.And(c.lowerExpr(s.Cond), c.b.Not(broke.Load()))
		},
		func() {
			continued.Store(c.b.Scalar(false))
			c.lowerStatement(s.Body)
		},
	)
}

func (c *C) lowerFor(s *ast.For) {
	if s.Init != nil {
		if expr, ok := s.Init.(ast.Expr); ok {
			c.lowerExpr(expr)
		} else {
			c.lowerStatementUngated(s.Init)
		}
	}

	broke := c.b.LocalInit("broke", c.b.Scalar(false))
	continued := c.b.LocalInit("continued", c.b.Scalar(false))
	c.loops = append(c.loops, loopContext{broke: broke, continued: continued})
	defer func() { c.loops = c.loops[:len(c.loops)-1] }()

	c.b.While(
		func() *codegen.Value {
			cond := c.b.Scalar(true)
			if s.Cond != nil {
				cond = c.lowerExpr(s.Cond)
			}
			return c.b.And(cond, c.b.Not(broke.Load()))
		},
		func() {
			continued.Store(c.b.Scalar(false))
			c.lowerStatement(s.Body)
			if s.Post != nil {
				c.b.If(c.b.Not(broke.Load()), func() { c.lowerExpr(s.Post) })
			}
		},
	)
}
