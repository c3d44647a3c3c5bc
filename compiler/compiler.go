// Package compiler lowers a semantically-analyzed AST to textual LLVM IR.
// It drives package codegen, a builder wrapped around tinygo.org/x/go-llvm,
// following the same traversal shape gapil/compiler uses to drive
// core/codegen: one C struct carrying the module and per-compile caches,
// visited by a family of lower* methods keyed on AST node type.
package compiler

import (
	"context"
	"fmt"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
	"github.com/minic-lang/minic/core/fault"
	"github.com/minic-lang/minic/core/log"
	"github.com/minic-lang/minic/parser"
	"github.com/minic-lang/minic/semantic"
	"github.com/minic-lang/minic/types"
)

// C is the compilation context threaded through the lowering traversal. Each
// symbol's lowered representation (a codegen.Function, codegen.Global or a
// *codegen.Value local alloca) is stashed directly on symbol.Symbol.Value,
// per that field's documented purpose, rather than kept in a side map here.
type C struct {
	m         *codegen.Module
	b         *codegen.Builder
	compounds map[string]*codegen.Struct

	loops []loopContext
}

// loopContext is one enclosing while/for loop's break/continue state, a
// pair of stack-allocated booleans rather than raw block jumps, since
// codegen.Builder exposes only the If/IfElse/While structured combinators
// and no direct branch-to-arbitrary-block primitive.
type loopContext struct {
	broke     *codegen.Value
	continued *codegen.Value
}

func notImplemented(format string, args ...interface{}) error {
	return fault.Const("compiler: not implemented: " + fmt.Sprintf(format, args...))
}

// Compile runs the full pipeline (lex → parse → analyze → lower) over src,
// attributed to filename for diagnostics, and returns the generated textual
// LLVM IR. err is one of token.LexicalError, parser.SyntaxError or
// semantic.Error.
func Compile(ctx context.Context, filename, src string) (string, error) {
	prog, err := parser.Parse(filename, src)
	if err != nil {
		log.E(ctx, "parse failed for %s: %v", filename, err)
		return "", err
	}
	log.D(ctx, "parsed %s: %d top-level declarations", filename, len(prog.Decls))

	if err := semantic.Analyze(prog); err != nil {
		log.E(ctx, "semantic analysis failed for %s: %v", filename, err)
		return "", err
	}
	log.I(ctx, "%s: semantic analysis passed", filename)

	c := &C{
		m:         codegen.NewModule(filename),
		compounds: map[string]*codegen.Struct{},
	}
	c.lowerProgram(prog)

	if err := c.m.Verify(); err != nil {
		log.E(ctx, "IR verification failed for %s: %v", filename, err)
		panic(fault.Const("compiler: " + err.Error()))
	}
	log.I(ctx, "%s: IR emitted and verified", filename)

	return c.m.String(), nil
}

// lowerProgram lowers every top-level declaration. Two passes are needed:
// function and compound/enum names must exist (possibly only as forward
// declarations) before any function body referencing them is built, so
// signatures are declared first and bodies are built second.
func (c *C) lowerProgram(prog *ast.Program) {
	for _, decl := range prog.Decls {
		c.declareExternal(decl)
	}
	for _, decl := range prog.Decls {
		c.defineExternal(decl)
	}
}

func (c *C) declareExternal(decl ast.Node) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		c.declareFunction(d.Sym)
	case *ast.FunctionDefinition:
		c.declareFunction(d.Sym)
	case *ast.CompoundDefinition:
		c.lowerCompound(d.Sym.Type.(*types.Compound))
	case *ast.EnumDefinition:
		// Enum constants need no codegen presence; uses are folded to i32
		// literals at the use site (see expr.go).
	case *ast.VariableDeclaration, *ast.ArrayDeclaration:
		// Globals are fully declared and defined together in the second
		// pass (defineExternal): their initializers are constant
		// expressions, so there is no forward-reference ordering problem
		// that a separate declare pass would need to solve.
	default:
		panic(notImplemented("external declaration %T", decl))
	}
}

func (c *C) defineExternal(decl ast.Node) {
	switch d := decl.(type) {
	case *ast.FunctionDefinition:
		c.buildFunction(d)
	case *ast.VariableDeclaration:
		for _, decl := range d.Decls {
			c.defineGlobal(decl)
		}
	case *ast.ArrayDeclaration:
		for _, decl := range d.Decls {
			c.defineGlobal(decl)
		}
	default:
		// FunctionDeclaration/CompoundDefinition/EnumDefinition have no
		// body to build.
	}
}
