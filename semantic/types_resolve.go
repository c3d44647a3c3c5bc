package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// resolveSpecifierType resolves a Specifier node to its base Type. Builtin
// keyword specifiers are seeded into the global scope at analyzer
// construction; struct/union/enum tags are looked up (or, if this is the
// tag's first mention, forward-declared on the spot — the placeholder is
// filled in when the definition itself is later visited).
func (a *Analyzer) resolveSpecifierType(spec *ast.Specifier) (types.Type, error) {
	sym := a.table.Lookup(spec.Name)
	if sym == nil {
		switch {
		case spec.IsStruct || spec.IsUnion:
			c := &types.Compound{Name: spec.Name, IsUnion: spec.IsUnion}
			a.table.Define(&symbol.Symbol{Name: spec.Name, Type: c, Kind: symbol.TypeKind})
			return c, nil
		case spec.IsEnum:
			e := &types.Enum{Name: spec.Name}
			a.table.Define(&symbol.Symbol{Name: spec.Name, Type: e, Kind: symbol.TypeKind})
			return e, nil
		default:
			return nil, errAt(spec.Pos(), "unknown type %q", spec.Name)
		}
	}
	if sym.Kind != symbol.TypeKind {
		return nil, errAt(spec.Pos(), "%q is not a type", spec.Name)
	}
	return sym.Type, nil
}

// buildDeclaratorType builds a declarator's effective type from its
// specifier's base type: wrap in Pointer once if the declarator has a
// leading `*`, then wrap in Array/Function by reading Suffix right-to-left.
func (a *Analyzer) buildDeclaratorType(base types.Type, decl *ast.Declarator) (types.Type, error) {
	t := base
	if decl.Pointer {
		t = &types.Pointer{Elem: t}
	}
	for i := len(decl.Suffix) - 1; i >= 0; i-- {
		switch s := decl.Suffix[i].(type) {
		case *ast.ArraySuffix:
			var size *int
			if s.Size != nil {
				ctype, err := a.typeCheckExpr(s.Size)
				if err != nil {
					return nil, err
				}
				if !types.IsInteger(ctype) {
					return nil, errAt(s.Size.Pos(), "array size must be an int expression")
				}
				v, ok, err := a.foldConst(s.Size)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, errAt(s.Size.Pos(), "array size must be a constant expression")
				}
				size = &v
			}
			t = &types.Array{Elem: t, Size: size}
		case *ast.ParamSuffix:
			params := make([]types.Type, len(s.Params))
			for i, param := range s.Params {
				pbase, err := a.resolveSpecifierType(param.Spec)
				if err != nil {
					return nil, err
				}
				if param.Decl != nil {
					pt, err := a.buildDeclaratorType(pbase, param.Decl)
					if err != nil {
						return nil, err
					}
					params[i] = pt
				} else {
					params[i] = pbase
				}
			}
			t = &types.Function{Ret: t, Params: params}
		}
	}
	return t, nil
}

// paramSuffixOf returns decl's last suffix if it is a parameter list (nil
// otherwise), used when installing function parameter symbols in the
// callee's scope.
func paramSuffixOf(decl *ast.Declarator) *ast.ParamSuffix {
	if len(decl.Suffix) == 0 {
		return nil
	}
	if ps, ok := decl.Suffix[len(decl.Suffix)-1].(*ast.ParamSuffix); ok {
		return ps
	}
	return nil
}
