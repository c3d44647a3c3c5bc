package compiler_test

import (
	"context"
	"testing"

	"github.com/minic-lang/minic/compiler"
	"github.com/minic-lang/minic/core/assert"
)

func TestCompileValidPrograms(t *testing.T) {
	ctx := assert.To(t)
	for _, src := range []string{
		"int main(){return 0;}",
		"int main(){int a=3,b=4;return a+b;}",
		"int f(int n){if(n<=1)return n;return f(n-1)+f(n-2);} int main(){return f(10);}",
		"int main(){int a[3]={1,2,3};int s=0;for(int i=0;i<3;i=i+1)s=s+a[i];return s;}",
		"struct P{int x;int y;}; int main(){struct P p; p.x=2; p.y=3; return p.x*p.y;}",
		"int main(){int x=5;int *p=&x;*p=*p+10;return x;}",
		"enum E{A,B=5,C}; int main(){return C;}",
		"int main(){int x=1; x+=2; return x;}",
		"int main(){int i=0; while(i<5){if(i==2){i=i+1;continue;} i=i+1;} return i;}",
		`int main(){printf("hello %d\n", 1); return 0;}`,
	} {
		ir, err := compiler.Compile(context.Background(), "t.c", src)
		ctx.For("valid program compiles cleanly: %s", src).That(err).IsNil()
		ctx.For("emitted IR is non-empty: %s", src).ThatString(ir).NotEquals("")
	}
}

func TestCompileEmitsMainFunction(t *testing.T) {
	ctx := assert.To(t)
	ir, err := compiler.Compile(context.Background(), "t.c", "int main(){return 42;}")
	ctx.For("compile succeeds").That(err).IsNil()
	ctx.For("IR declares main").ThatString(ir).Contains("@main")
}

func TestCompileRejectsSemanticError(t *testing.T) {
	ctx := assert.To(t)
	_, err := compiler.Compile(context.Background(), "t.c", "int main(){return y;}")
	ctx.For("undeclared identifier fails before codegen runs").That(err).IsNotNil()
}

func TestCompileRejectsSyntaxError(t *testing.T) {
	ctx := assert.To(t)
	_, err := compiler.Compile(context.Background(), "t.c", "int main(){return 0")
	ctx.For("unterminated statement fails at parse time").That(err).IsNotNil()
}

func TestCompileStructsAndUnions(t *testing.T) {
	ctx := assert.To(t)
	ir, err := compiler.Compile(context.Background(), "t.c", `
union V { int i; float f; };
int main(){
	union V v;
	v.i = 4;
	return v.i;
}`)
	ctx.For("union member access compiles").That(err).IsNil()
	ctx.For("union lowers to a named struct type").ThatString(ir).Contains("%V")
}

func TestCompilePointerArithmetic(t *testing.T) {
	ctx := assert.To(t)
	ir, err := compiler.Compile(context.Background(), "t.c", `
int main(){
	int a[3] = {1,2,3};
	int *p = a;
	p = p + 1;
	return *p;
}`)
	ctx.For("array decay and pointer arithmetic compile").That(err).IsNil()
	ctx.For("IR is non-empty").ThatString(ir).NotEquals("")
}
