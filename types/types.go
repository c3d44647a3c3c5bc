// Package types implements the value-object type model: basic, pointer,
// array, function, compound (struct/union) and enum types, with structural
// equality as defined by the language's type rules.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every type variant. It is a closed set; callers
// switch on the concrete type rather than adding new implementations.
type Type interface {
	isType()
	String() string
}

// BasicKind enumerates the built-in scalar types.
type BasicKind int

const (
	Void BasicKind = iota
	Int
	Float
	Char
	Bool
	NullPtr
)

func (k BasicKind) String() string {
	switch k {
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case NullPtr:
		return "nullptr"
	default:
		return "?"
	}
}

// Basic is one of the built-in scalar types.
type Basic struct {
	Kind BasicKind
}

func (*Basic) isType()        {}
func (b *Basic) String() string { return b.Kind.String() }

// Pointer is a pointer to Elem.
type Pointer struct {
	Elem Type
}

func (*Pointer) isType()        {}
func (p *Pointer) String() string { return p.Elem.String() + "*" }

// Array is an array of Elem with an optional Size. Size is nil until fixed
// by an initializer or an explicit constant expression.
type Array struct {
	Elem Type
	Size *int
}

func (*Array) isType() {}
func (a *Array) String() string {
	if a.Size == nil {
		return a.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", a.Elem.String(), *a.Size)
}

// Function is a function signature.
type Function struct {
	Ret    Type
	Params []Type
}

func (*Function) isType() {}
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Ret.String(), strings.Join(parts, ", "))
}

// Member is one named field of a Compound type, in declaration order.
type Member struct {
	Name string
	Type Type
}

// Compound is a struct or union. Members is nil until the definition's body
// has been resolved; a nil Members with a non-empty Name denotes a forward
// declaration that is legal to reference via a pointer but not to lower or
// instantiate.
type Compound struct {
	Name    string
	Members []Member
	IsUnion bool
}

func (*Compound) isType() {}
func (c *Compound) String() string {
	if c.IsUnion {
		return "union " + c.Name
	}
	return "struct " + c.Name
}

// MemberIndex returns the position of name within the compound's member
// list, or -1 if the compound has no such member.
func (c *Compound) MemberIndex(name string) int {
	for i, m := range c.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Enumerator is one named constant of an Enum type, in declaration order.
type Enumerator struct {
	Name  string
	Value int
}

// Enum is an enumerated type; its underlying representation is always a
// 32-bit int.
type Enum struct {
	Name        string
	Enumerators []Enumerator
}

func (*Enum) isType() {}
func (e *Enum) String() string { return "enum " + e.Name }

// Value returns the integer value bound to name, and whether the enum
// declares such an enumerator.
func (e *Enum) Value(name string) (int, bool) {
	for _, en := range e.Enumerators {
		if en.Name == name {
			return en.Value, true
		}
	}
	return 0, false
}

// Equal reports structural equality: same variant and same semantic
// content. Array equality ignores Size; Compound/Enum equality compares
// Name and kind only (not members), matching forward-declaration semantics.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *Basic:
		bt, ok := b.(*Basic)
		return ok && at.Kind == bt.Kind
	case *Pointer:
		bt, ok := b.(*Pointer)
		return ok && Equal(at.Elem, bt.Elem)
	case *Array:
		bt, ok := b.(*Array)
		return ok && Equal(at.Elem, bt.Elem)
	case *Function:
		bt, ok := b.(*Function)
		if !ok || !Equal(at.Ret, bt.Ret) || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	case *Compound:
		bt, ok := b.(*Compound)
		return ok && at.Name == bt.Name && at.IsUnion == bt.IsUnion
	case *Enum:
		bt, ok := b.(*Enum)
		return ok && at.Name == bt.Name
	default:
		return false
	}
}

// Convenience singletons for the built-in basic types. These are shared,
// never mutated, and safe to compare by Equal (never by ==, since Pointer
// and Array values referencing them are heap-allocated per use).
var (
	VoidType    = &Basic{Kind: Void}
	IntType     = &Basic{Kind: Int}
	FloatType   = &Basic{Kind: Float}
	CharType    = &Basic{Kind: Char}
	BoolType    = &Basic{Kind: Bool}
	NullPtrType = &Basic{Kind: NullPtr}
)

// IsScalar reports whether t is a basic, pointer or enum type (i.e. can
// participate in arithmetic/comparison promotion, excluding void).
func IsScalar(t Type) bool {
	switch tt := t.(type) {
	case *Basic:
		return tt.Kind != Void
	case *Pointer:
		return true
	case *Enum:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether t is int, float, char, bool or enum —
// anything usable in arithmetic binary operators after promotion.
func IsArithmetic(t Type) bool {
	switch tt := t.(type) {
	case *Basic:
		switch tt.Kind {
		case Int, Float, Char, Bool:
			return true
		}
		return false
	case *Enum:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t folds into an integer-valued representation
// (int, char, bool, enum) as opposed to float.
func IsInteger(t Type) bool {
	switch tt := t.(type) {
	case *Basic:
		switch tt.Kind {
		case Int, Char, Bool:
			return true
		}
		return false
	case *Enum:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is the float basic type.
func IsFloat(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == Float
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := t.(*Pointer)
	return ok
}

// IsVoid reports whether t is the void basic type.
func IsVoid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == Void
}
