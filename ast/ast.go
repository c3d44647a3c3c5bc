// Package ast defines the abstract syntax tree produced by the parser and
// annotated in place by the semantic analyzer. Node variants are tagged by
// Go type, matching the closed-set design in the data model: a tree walker
// switches on concrete type rather than dispatching by string name.
package ast

import (
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// Span is the source position of a node, stamped from the left-most token
// consumed while building it.
type Span struct {
	Line   int
	Column int
}

// Node is implemented by every AST node variant.
type Node interface {
	isNode()
	Pos() Span
}

type Base struct {
	Span Span
}

func (b Base) Pos() Span { return b.Span }

// At constructs a Base stamped with s, for use as the embedded field of a
// freshly-built node: ast.Program{Base: ast.At(s), ...}.
func At(s Span) Base { return Base{Span: s} }

// Expr is implemented by every expression node. Expression nodes carry the
// two mutable slots filled in by the analyzer: CType (resolved type) and
// Sym (resolved symbol, for identifiers and call targets).
type Expr interface {
	Node
	isExpr()
	Type() types.Type
	SetType(types.Type)
}

type ExprBase struct {
	Base
	CType types.Type
}

func (e *ExprBase) isExpr()             {}
func (e *ExprBase) Type() types.Type    { return e.CType }
func (e *ExprBase) SetType(t types.Type) { e.CType = t }

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	isStmt()
}

type StmtBase struct {
	Base
}

func (StmtBase) isStmt() {}

// ---- Program & top level ------------------------------------------------

// Program is the root node: an ordered sequence of external declarations.
type Program struct {
	Base
	Decls []Node
}

func (*Program) isNode() {}

// Specifier names a declaration's base type: one of the built-in keywords
// or a struct/union/enum tag.
type Specifier struct {
	Base
	Name    string // "void","int","float","char","bool", or a tag name
	IsStruct bool
	IsUnion  bool
	IsEnum   bool
}

func (*Specifier) isNode() {}

// ArraySuffix is one `[size?]` declarator suffix. Size is nil for `[]`.
type ArraySuffix struct {
	Size Expr
}

// ParamSuffix is one `(params)` declarator suffix.
type ParamSuffix struct {
	Params []*Param
}

// Param is one function parameter: a specifier plus an (possibly abstract,
// i.e. unnamed) declarator.
type Param struct {
	Base
	Spec *Specifier
	Decl *Declarator
}

func (*Param) isNode() {}

// Declarator names a declared entity: an optional leading pointer, a name,
// an ordered sequence of suffixes applied right-to-left, and an optional
// initializer.
type Declarator struct {
	Base
	Name    string
	Pointer bool
	Suffix  []interface{} // each element is *ArraySuffix or *ParamSuffix, outermost first
	Init    Node          // Expr or *Initializer, or nil

	// Sym is filled in by the analyzer once the declared name is bound.
	Sym *symbol.Symbol
}

func (*Declarator) isNode() {}

// Initializer is a brace-enclosed initializer list, possibly nested for
// aggregate-of-aggregate initialization.
type Initializer struct {
	Base
	Inits []Node // each element is Expr or *Initializer
}

func (*Initializer) isNode() {}

// FunctionDefinition is `spec decl { body }`.
type FunctionDefinition struct {
	Base
	Spec *Specifier
	Decl *Declarator
	Body *StatementList

	Sym *symbol.Symbol
}

func (*FunctionDefinition) isNode() {}

// CompoundDefinition is `struct|union Name { members };`.
type CompoundDefinition struct {
	Base
	Spec    *Specifier
	Members []*MemberDeclaration

	Sym *symbol.Symbol
}

func (*CompoundDefinition) isNode() {}

// MemberDeclaration is one member of a compound definition's body.
type MemberDeclaration struct {
	Base
	Spec  *Specifier
	Decls []*Declarator
}

func (*MemberDeclaration) isNode() {}

// EnumDefinition is `enum Name { A, B = 5, C };`.
type EnumDefinition struct {
	Base
	Name        string
	Enumerators []*EnumeratorDecl

	Sym *symbol.Symbol
}

func (*EnumDefinition) isNode() {}

// EnumeratorDecl is one `Name` or `Name = constexpr` within an enum body.
type EnumeratorDecl struct {
	Base
	Name  string
	Value Expr // nil if the value is implicit

	Sym *symbol.Symbol
}

func (*EnumeratorDecl) isNode() {}

// FunctionDeclaration is a prototype: `spec decl;` where decl's last suffix
// is a ParamSuffix and there is no body.
type FunctionDeclaration struct {
	Base
	Spec *Specifier
	Decl *Declarator

	Sym *symbol.Symbol
}

func (*FunctionDeclaration) isNode() {}

// VariableDeclaration is `spec decl, decl, ...;` for non-array, non-function
// declarators.
type VariableDeclaration struct {
	Base
	Spec  *Specifier
	Decls []*Declarator
}

func (*VariableDeclaration) isNode() {}

// ArrayDeclaration is `spec decl, decl, ...;` where decl's outermost suffix
// is an ArraySuffix.
type ArrayDeclaration struct {
	Base
	Spec  *Specifier
	Decls []*Declarator
}

func (*ArrayDeclaration) isNode() {}

// ---- Statements ----------------------------------------------------------

// StatementList is a brace-enclosed `{ stmt... }` block.
type StatementList struct {
	StmtBase
	Stmts []Node // each is Stmt or a *VariableDeclaration/*ArrayDeclaration/*CompoundDefinition/*EnumDefinition
}

func (*StatementList) isNode() {}

// If is `if (cond) then else else?`.
type If struct {
	StmtBase
	Cond Expr
	Then Node
	Else Node // nil if absent
}

func (*If) isNode() {}

// While is `while (cond) body`.
type While struct {
	StmtBase
	Cond Expr
	Body Node
}

func (*While) isNode() {}

// For is `for (init; cond; post) body`. Any of Init/Cond/Post may be nil.
type For struct {
	StmtBase
	Init Node // Expr, or a declaration, or nil
	Cond Expr
	Post Expr
	Body Node
}

func (*For) isNode() {}

// Return is `return expr?;`.
type Return struct {
	StmtBase
	Value Expr // nil if absent
}

func (*Return) isNode() {}

// Break is `break;`.
type Break struct{ StmtBase }

func (*Break) isNode() {}

// Continue is `continue;`.
type Continue struct{ StmtBase }

func (*Continue) isNode() {}

// Empty is a bare `;`.
type Empty struct{ StmtBase }

func (*Empty) isNode() {}

// ExpressionStatement is `expr;`.
type ExpressionStatement struct {
	StmtBase
	Expr Expr
}

func (*ExpressionStatement) isNode() {}

// ---- Expressions ----------------------------------------------------------

// ExpressionList is a comma-expression: `a, b, c`. Its value is the last
// sub-expression's value; earlier ones are evaluated for side effects.
type ExpressionList struct {
	ExprBase
	Exprs []Expr
}

func (*ExpressionList) isNode() {}

// AssignOp enumerates `=` and the compound assignment operators.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
)

// AssignExpr is `lhs op rhs`.
type AssignExpr struct {
	ExprBase
	Op  AssignOp
	LHS Expr
	RHS Expr
}

func (*AssignExpr) isNode() {}

// BinOp enumerates binary operators.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	LogAnd
	LogOr
)

// BinaryExpr is `lhs op rhs`.
type BinaryExpr struct {
	ExprBase
	Op  BinOp
	LHS Expr
	RHS Expr
}

func (*BinaryExpr) isNode() {}

// UnOp enumerates prefix unary operators.
type UnOp int

const (
	Plus UnOp = iota
	Minus
	Not
	Deref
	Addr
	PreInc
	PreDec
)

// UnaryExpr is `op operand`.
type UnaryExpr struct {
	ExprBase
	Op      UnOp
	Operand Expr
}

func (*UnaryExpr) isNode() {}

// PostfixOp enumerates postfix operators.
type PostfixOp int

const (
	PostInc PostfixOp = iota
	PostDec
)

// PostfixExpr is `operand op`.
type PostfixExpr struct {
	ExprBase
	Op      PostfixOp
	Operand Expr
}

func (*PostfixExpr) isNode() {}

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	ExprBase
	Callee string
	Args   []Expr

	Sym *symbol.Symbol
}

func (*FunctionCall) isNode() {}

// ArrayAccess is `array[index]`.
type ArrayAccess struct {
	ExprBase
	Array Expr
	Index Expr
}

func (*ArrayAccess) isNode() {}

// MemberAccess is `object.member` (Arrow==false) or `object->member`
// (Arrow==true). Index is the resolved position of member within the
// compound, filled in by the analyzer.
type MemberAccess struct {
	ExprBase
	Object Expr
	Member string
	Arrow  bool
	Index  int
}

func (*MemberAccess) isNode() {}

// Identifier is a bare name used as an expression.
type Identifier struct {
	ExprBase
	Name string

	Sym *symbol.Symbol
}

func (*Identifier) isNode() {}

// ---- Literals ---------------------------------------------------------

// IntegerLiteral is a decimal/hex/octal integer literal.
type IntegerLiteral struct {
	ExprBase
	Value int
}

func (*IntegerLiteral) isNode() {}

// DecimalLiteral is a floating-point literal.
type DecimalLiteral struct {
	ExprBase
	Value float64
}

func (*DecimalLiteral) isNode() {}

// CharacterLiteral is a single-quoted character literal, already
// escape-decoded to its byte value.
type CharacterLiteral struct {
	ExprBase
	Value byte
}

func (*CharacterLiteral) isNode() {}

// StringLiteral is a double-quoted string literal, still holding the raw
// (pre-escape-decode) text between the quotes; escape decoding happens at
// lowering time. Lowering interns string constants by their decoded bytes,
// so two literals with different raw text that decode to the same bytes
// share one global.
type StringLiteral struct {
	ExprBase
	Raw string
}

func (*StringLiteral) isNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	ExprBase
	Value bool
}

func (*BoolLiteral) isNode() {}

// NullPtrLiteral is `nullptr`.
type NullPtrLiteral struct {
	ExprBase
}

func (*NullPtrLiteral) isNode() {}
