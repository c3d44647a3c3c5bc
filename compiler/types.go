package compiler

import (
	"github.com/minic-lang/minic/core/codegen"
	"github.com/minic-lang/minic/types"
)

// lowerType maps a resolved types.Type to its codegen representation,
// caching named aggregate types (struct/union/enum) so that repeated
// mentions of the same tag resolve to the same LLVM type.
func (c *C) lowerType(t types.Type) codegen.Type {
	switch t := t.(type) {
	case *types.Basic:
		switch t.Kind {
		case types.Void:
			return c.m.Types.Void
		case types.Int:
			return c.m.Types.Int32
		case types.Float:
			return c.m.Types.Float32
		case types.Char:
			// Uint8, not Int8: the builder's string-literal constant
			// machinery (Module.Scalar/ScalarOfType) always infers Go
			// strings as Pointer(Uint8), so char must share that
			// representation for string-to-char* assignments and printf
			// format-string arguments to type-check by value equality.
			return c.m.Types.Uint8
		case types.Bool:
			return c.m.Types.Bool
		case types.NullPtr:
			return c.m.Types.Pointer(c.m.Types.Void)
		default:
			panic(notImplemented("basic type %v", t))
		}

	case *types.Pointer:
		return c.m.Types.Pointer(c.lowerType(t.Elem))

	case *types.Array:
		size := 0
		if t.Size != nil {
			size = *t.Size
		}
		return c.m.Types.Array(c.lowerType(t.Elem), size)

	case *types.Function:
		params := make([]codegen.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.lowerType(p)
		}
		return c.m.Types.Function(c.lowerType(t.Ret), params...)

	case *types.Compound:
		return c.lowerCompound(t)

	case *types.Enum:
		return c.m.Types.Int32

	default:
		panic(notImplemented("type %T", t))
	}
}

// lowerCompound lowers a struct or union to an LLVM struct type, caching by
// tag name so every use of the same tag shares one codegen.Struct. A union
// is laid out as a single-field struct wrapping its largest member; access
// to a non-dominant member bitcasts the field's address.
func (c *C) lowerCompound(t *types.Compound) *codegen.Struct {
	if s, ok := c.compounds[t.Name]; ok {
		return s
	}
	s := c.m.Types.DeclareStruct(t.Name)
	c.compounds[t.Name] = s

	if t.Members == nil {
		// Forward-declared only; body is filled in once defined.
		return s
	}
	c.setCompoundBody(t, s)
	return s
}

// setCompoundBody fills in the body of a previously declared compound. It is
// split from lowerCompound so that self-referential structs (a member that
// is a pointer to the same struct) can complete the forward declaration
// before their own body is built.
func (c *C) setCompoundBody(t *types.Compound, s *codegen.Struct) {
	if t.IsUnion {
		largest := c.unionStorageMember(t)
		s.SetBody(false, codegen.Field{Name: largest.Name, Type: c.lowerType(largest.Type)})
		return
	}
	fields := make([]codegen.Field, len(t.Members))
	for i, m := range t.Members {
		fields[i] = codegen.Field{Name: m.Name, Type: c.lowerType(m.Type)}
	}
	s.SetBody(false, fields...)
}

// unionStorageMember returns the member with the largest codegen size,
// which becomes the union's sole backing field. Ties are broken by
// declaration order.
func (c *C) unionStorageMember(t *types.Compound) types.Member {
	best := t.Members[0]
	bestSize := c.lowerType(best.Type).SizeInBits()
	for _, m := range t.Members[1:] {
		if sz := c.lowerType(m.Type).SizeInBits(); sz > bestSize {
			best, bestSize = m, sz
		}
	}
	return best
}
