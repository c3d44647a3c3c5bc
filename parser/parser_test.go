package parser_test

import (
	"testing"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/assert"
	"github.com/minic-lang/minic/parser"
)

func TestParseMinimalMain(t *testing.T) {
	ctx := assert.To(t)
	prog, err := parser.Parse("t.c", "int main(){return 0;}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx.For("one top-level declaration").That(len(prog.Decls)).Equals(1)
	fn, ok := prog.Decls[0].(*ast.FunctionDefinition)
	ctx.For("it is a function definition").That(ok).Equals(true)
	ctx.For("function name is main").That(fn.Decl.Name).Equals("main")
	ctx.For("body has one statement").That(len(fn.Body.Stmts)).Equals(1)
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	ctx.For("it is a return statement").That(ok).Equals(true)
	lit, ok := ret.Value.(*ast.IntegerLiteral)
	ctx.For("returning an integer literal").That(ok).Equals(true)
	ctx.For("literal value is 0").That(lit.Value).Equals(0)
}

func TestParseArrayDeclAndForLoop(t *testing.T) {
	ctx := assert.To(t)
	src := `int main(){int a[3]={1,2,3};int s=0;for(int i=0;i<3;i=i+1)s=s+a[i];return s;}`
	prog, err := parser.Parse("t.c", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := prog.Decls[0].(*ast.FunctionDefinition)
	arrDecl, ok := fn.Body.Stmts[0].(*ast.ArrayDeclaration)
	ctx.For("first statement is an array declaration").That(ok).Equals(true)
	init, ok := arrDecl.Decls[0].Init.(*ast.Initializer)
	ctx.For("array has a brace initializer").That(ok).Equals(true)
	ctx.For("initializer has 3 elements").That(len(init.Inits)).Equals(3)

	forStmt, ok := fn.Body.Stmts[2].(*ast.For)
	ctx.For("third statement is a for loop").That(ok).Equals(true)
	ctx.For("for loop has a condition").That(forStmt.Cond).IsNotNil()
}

func TestParseStructAndMemberAccess(t *testing.T) {
	ctx := assert.To(t)
	src := `struct P{int x;int y;}; int main(){struct P p; p.x=2; return p.x*p.y;}`
	prog, err := parser.Parse("t.c", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx.For("two top-level declarations").That(len(prog.Decls)).Equals(2)
	def, ok := prog.Decls[0].(*ast.CompoundDefinition)
	ctx.For("first is a compound definition").That(ok).Equals(true)
	ctx.For("struct P has 2 members").That(len(def.Members)).Equals(2)
}

func TestParseEnum(t *testing.T) {
	ctx := assert.To(t)
	prog, err := parser.Parse("t.c", `enum E{A,B=5,C}; int main(){return C;}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := prog.Decls[0].(*ast.EnumDefinition)
	ctx.For("enum has 3 enumerators").That(len(def.Enumerators)).Equals(3)
	ctx.For("B has an explicit value").That(def.Enumerators[1].Value).IsNotNil()
	ctx.For("A has no explicit value").That(def.Enumerators[0].Value).IsNil()
}

func TestSyntaxErrorPosition(t *testing.T) {
	ctx := assert.To(t)
	_, err := parser.Parse("t.c", "int main() { return }")
	ctx.For("a missing expression after return is a syntax error").That(err).IsNotNil()
	se, ok := err.(*parser.SyntaxError)
	ctx.For("error is a SyntaxError").That(ok).Equals(true)
	ctx.For("error reports a line").That(se.Line).Equals(1)
}

func TestFunctionPrototype(t *testing.T) {
	ctx := assert.To(t)
	prog, err := parser.Parse("t.c", "int f(int n); int main(){return f(1);}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, ok := prog.Decls[0].(*ast.FunctionDeclaration)
	ctx.For("a declarator with params and no body is a prototype").That(ok).Equals(true)
}
