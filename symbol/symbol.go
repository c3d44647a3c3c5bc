// Package symbol implements the scoped symbol table: a stack of scopes
// supporting define/lookup, used by the semantic analyzer to resolve names
// across nested blocks with forward declarations.
package symbol

import (
	"github.com/minic-lang/minic/types"
)

// Kind classifies what a Symbol names.
type Kind int

const (
	TypeKind Kind = iota
	Func
	Var
	Const
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case Func:
		return "func"
	case Var:
		return "var"
	case Const:
		return "const"
	default:
		return "?"
	}
}

// Symbol is a named, typed entity bound in some scope.
type Symbol struct {
	Name    string
	Type    types.Type
	Kind    Kind
	Defined bool

	// Node is the AST node that introduced this symbol (a function
	// definition, a variable declarator, ...). It is declared as
	// interface{} here to avoid an import cycle with package ast; callers
	// type-assert to the concrete *ast.Node variant they expect.
	Node interface{}

	// Value is filled in by the IR generator with the lowered
	// representation of this symbol (a codegen.Value holding a function,
	// global or stack-allocated address). nil until lowering visits it.
	Value interface{}
}

// Scope is one level of the symbol table's scope stack.
type Scope struct {
	symbols map[string]*Symbol
}

func newScope() *Scope {
	return &Scope{symbols: map[string]*Symbol{}}
}

// Table is the stack of scopes maintained across a single traversal. The
// zero value is not usable; use NewTable.
type Table struct {
	scopes []*Scope
}

// NewTable returns a table with a single, empty global scope.
func NewTable() *Table {
	return &Table{scopes: []*Scope{newScope()}}
}

// EnterScope pushes a new, empty scope.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
}

// LeaveScope pops the innermost scope. It is a no-op if only the global
// scope remains, matching the invariant that scope-stack depth never drops
// below 1.
func (t *Table) LeaveScope() {
	if len(t.scopes) <= 1 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the current scope-stack depth (≥ 1).
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Define binds sym in the innermost scope. It returns false without
// modifying the table if the name is already bound in that scope.
func (t *Table) Define(sym *Symbol) bool {
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top.symbols[sym.Name]; exists {
		return false
	}
	top.symbols[sym.Name] = sym
	return true
}

// DefineGlobal binds sym in the outermost (global) scope regardless of the
// current scope depth, used for built-ins implicitly declared on first use
// from within a nested scope (printf, scanf).
func (t *Table) DefineGlobal(sym *Symbol) bool {
	global := t.scopes[0]
	if _, exists := global.symbols[sym.Name]; exists {
		return false
	}
	global.symbols[sym.Name] = sym
	return true
}

// Lookup searches from the innermost scope outward and returns the first
// matching symbol, or nil if name is unbound.
func (t *Table) Lookup(name string) *Symbol {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupInnermost searches only the innermost scope, used to detect
// redeclaration within the same block (e.g. a function or a struct declared
// twice at the same level).
func (t *Table) LookupInnermost(name string) *Symbol {
	top := t.scopes[len(t.scopes)-1]
	return top.symbols[name]
}

// SeedBuiltinTypes binds the five built-in scalar type names in the global
// (bottom-most) scope as TYPE symbols. Call once before traversal begins.
func (t *Table) SeedBuiltinTypes() {
	global := t.scopes[0]
	for name, ty := range map[string]types.Type{
		"void":  types.VoidType,
		"int":   types.IntType,
		"float": types.FloatType,
		"char":  types.CharType,
		"bool":  types.BoolType,
	} {
		global.symbols[name] = &Symbol{Name: name, Type: ty, Kind: TypeKind, Defined: true}
	}
}
