package semantic_test

import (
	"testing"

	"github.com/minic-lang/minic/core/assert"
	"github.com/minic-lang/minic/parser"
	"github.com/minic-lang/minic/semantic"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse("t.c", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return semantic.Analyze(prog)
}

func TestValidPrograms(t *testing.T) {
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
	} {
		err := analyze(t, src)
		ctx.For("valid program analyzes cleanly: %s", src).That(err).IsNil()
	}
}

func TestDivisionByZeroConstant(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int a[3/0]; int main(){return 0;}")
	ctx.For("division by literal zero in a constant expression is a semantic error").That(err).IsNotNil()
}

func TestArrayWithoutSizeOrInitializer(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int main(){int a[]; return 0;}")
	ctx.For("array declared without size and without initializer is an error").That(err).IsNotNil()
}

func TestAssignToEnumConstant(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "enum E{A,B}; int main(){A=1; return 0;}")
	ctx.For("assignment to an enum constant is an error").That(err).IsNotNil()
}

func TestBreakOutsideLoop(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int main(){break; return 0;}")
	ctx.For("break outside any loop is an error").That(err).IsNotNil()
}

func TestContinueOutsideLoop(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int main(){continue; return 0;}")
	ctx.For("continue outside any loop is an error").That(err).IsNotNil()
}

func TestReturnValueInVoidFunction(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "void f(){return 1;} int main(){f(); return 0;}")
	ctx.For("returning a value from a void function is an error").That(err).IsNotNil()
}

func TestMissingReturnValueInNonVoidFunction(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int f(){return;} int main(){return f();}")
	ctx.For("returning no value from a non-void function is an error").That(err).IsNotNil()
}

func TestDuplicateFunctionDefinition(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int f(){return 1;} int f(){return 2;} int main(){return f();}")
	ctx.For("duplicate function definition is an error").That(err).IsNotNil()
}

func TestPrototypeDefinitionMismatch(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int f(int n); float f(int n){return 1.0;} int main(){return f(1);}")
	ctx.For("prototype/definition signature mismatch is an error").That(err).IsNotNil()
}

func TestPointerArithmeticAndDeref(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int main(){int a[3]={1,2,3};int *p=a;p=p+1;return *p;}")
	ctx.For("array decay and pointer arithmetic typecheck").That(err).IsNil()
}

func TestUndeclaredIdentifier(t *testing.T) {
	ctx := assert.To(t)
	err := analyze(t, "int main(){return y;}")
	ctx.For("an undeclared identifier is a semantic error").That(err).IsNotNil()
}
