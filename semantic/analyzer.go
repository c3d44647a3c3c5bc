// Package semantic implements the single-traversal semantic analyzer:
// scope-resolved symbol binding, type resolution, constant folding,
// assignability and l-value checking, and control-flow context tracking.
package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// Analyzer holds the traversal's shared mutable state: the symbol table's
// scope stack, and control-flow context (current function / loop depth).
type Analyzer struct {
	table *symbol.Table

	loopDepth  int
	currentFn  *types.Function
	inFunction bool
}

// Analyze runs the full analysis pass over prog, annotating its AST in
// place. It returns the first semantic.Error encountered; there is no
// error recovery within the pass.
func Analyze(prog *ast.Program) error {
	a := &Analyzer{table: symbol.NewTable()}
	a.table.SeedBuiltinTypes()
	for _, decl := range prog.Decls {
		if err := a.analyzeExternal(decl); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeExternal(decl ast.Node) error {
	switch d := decl.(type) {
	case *ast.FunctionDefinition:
		return a.analyzeFunctionDefinition(d)
	case *ast.FunctionDeclaration:
		return a.analyzeFunctionDeclaration(d)
	case *ast.VariableDeclaration:
		return a.analyzeVariableDeclaration(d, true)
	case *ast.ArrayDeclaration:
		return a.analyzeArrayDeclaration(d, true)
	case *ast.CompoundDefinition:
		return a.analyzeCompoundDefinition(d)
	case *ast.EnumDefinition:
		return a.analyzeEnumDefinition(d)
	default:
		return errAt(decl.Pos(), "internal: unhandled external declaration")
	}
}

func (a *Analyzer) analyzeFunctionDeclaration(d *ast.FunctionDeclaration) error {
	base, err := a.resolveSpecifierType(d.Spec)
	if err != nil {
		return err
	}
	ft, err := a.buildDeclaratorType(base, d.Decl)
	if err != nil {
		return err
	}
	fn, ok := ft.(*types.Function)
	if !ok {
		return errAt(d.Pos(), "function declaration %q must have a parameter list", d.Decl.Name)
	}
	if existing := a.table.LookupInnermost(d.Decl.Name); existing != nil {
		if !types.Equal(existing.Type, fn) {
			return errAt(d.Pos(), "conflicting declaration of %q", d.Decl.Name)
		}
		d.Sym = existing
		return nil
	}
	sym := &symbol.Symbol{Name: d.Decl.Name, Type: fn, Kind: symbol.Func, Defined: false, Node: d}
	a.table.Define(sym)
	d.Sym = sym
	return nil
}

func (a *Analyzer) analyzeFunctionDefinition(d *ast.FunctionDefinition) error {
	base, err := a.resolveSpecifierType(d.Spec)
	if err != nil {
		return err
	}
	ft, err := a.buildDeclaratorType(base, d.Decl)
	if err != nil {
		return err
	}
	fn, ok := ft.(*types.Function)
	if !ok {
		return errAt(d.Pos(), "function definition %q must have a parameter list", d.Decl.Name)
	}

	var sym *symbol.Symbol
	if existing := a.table.LookupInnermost(d.Decl.Name); existing != nil {
		if existing.Kind != symbol.Func || !types.Equal(existing.Type, fn) {
			return errAt(d.Pos(), "conflicting declaration of %q", d.Decl.Name)
		}
		if existing.Defined {
			return errAt(d.Pos(), "duplicate definition of function %q", d.Decl.Name)
		}
		existing.Defined = true
		existing.Node = d
		sym = existing
	} else {
		sym = &symbol.Symbol{Name: d.Decl.Name, Type: fn, Kind: symbol.Func, Defined: true, Node: d}
		a.table.Define(sym)
	}
	d.Sym = sym

	prevFn, prevIn := a.currentFn, a.inFunction
	a.currentFn, a.inFunction = fn, true
	a.table.EnterScope()

	ps := paramSuffixOf(d.Decl)
	if ps != nil {
		for i, param := range ps.Params {
			if param.Decl == nil || param.Decl.Name == "" {
				continue
			}
			a.table.Define(&symbol.Symbol{Name: param.Decl.Name, Type: fn.Params[i], Kind: symbol.Var, Defined: true, Node: param})
		}
	}

	for _, stmt := range d.Body.Stmts {
		if err := a.analyzeBlockItem(stmt); err != nil {
			a.table.LeaveScope()
			a.currentFn, a.inFunction = prevFn, prevIn
			return err
		}
	}

	a.table.LeaveScope()
	a.currentFn, a.inFunction = prevFn, prevIn
	return nil
}

func (a *Analyzer) analyzeCompoundDefinition(d *ast.CompoundDefinition) error {
	existing := a.table.LookupInnermost(d.Spec.Name)
	var compound *types.Compound
	if existing != nil {
		c, ok := existing.Type.(*types.Compound)
		if !ok || c.IsUnion != d.Spec.IsUnion {
			return errAt(d.Pos(), "conflicting definition of %q", d.Spec.Name)
		}
		if c.Members != nil {
			return errAt(d.Pos(), "redefinition of %q", d.Spec.Name)
		}
		compound = c
	} else {
		compound = &types.Compound{Name: d.Spec.Name, IsUnion: d.Spec.IsUnion}
		a.table.Define(&symbol.Symbol{Name: d.Spec.Name, Type: compound, Kind: symbol.TypeKind, Defined: true, Node: d})
	}

	seen := map[string]bool{}
	var members []types.Member
	for _, md := range d.Members {
		base, err := a.resolveSpecifierType(md.Spec)
		if err != nil {
			return err
		}
		for _, decl := range md.Decls {
			mt, err := a.buildDeclaratorType(base, decl)
			if err != nil {
				return err
			}
			if types.IsVoid(mt) {
				return errAt(decl.Pos(), "member %q cannot have void type", decl.Name)
			}
			if seen[decl.Name] {
				return errAt(decl.Pos(), "duplicate member %q in %s", decl.Name, compound.String())
			}
			seen[decl.Name] = true
			members = append(members, types.Member{Name: decl.Name, Type: mt})
		}
	}
	compound.Members = members
	d.Sym = a.table.Lookup(d.Spec.Name)
	return nil
}

func (a *Analyzer) analyzeEnumDefinition(d *ast.EnumDefinition) error {
	existing := a.table.LookupInnermost(d.Name)
	var enum *types.Enum
	if existing != nil {
		e, ok := existing.Type.(*types.Enum)
		if !ok || len(e.Enumerators) != 0 {
			return errAt(d.Pos(), "redefinition of %q", d.Name)
		}
		enum = e
	} else {
		enum = &types.Enum{Name: d.Name}
		a.table.Define(&symbol.Symbol{Name: d.Name, Type: enum, Kind: symbol.TypeKind, Defined: true, Node: d})
	}

	next := 0
	for _, en := range d.Enumerators {
		value := next
		if en.Value != nil {
			if _, err := a.typeCheckExpr(en.Value); err != nil {
				return err
			}
			v, ok, err := a.foldConst(en.Value)
			if err != nil {
				return err
			}
			if !ok {
				return errAt(en.Value.Pos(), "enumerator %q must be a constant expression", en.Name)
			}
			value = v
		}
		enum.Enumerators = append(enum.Enumerators, types.Enumerator{Name: en.Name, Value: value})
		sym := &symbol.Symbol{Name: en.Name, Type: enum, Kind: symbol.Const, Defined: true, Node: en}
		if !a.table.Define(sym) {
			return errAt(en.Pos(), "redefinition of %q", en.Name)
		}
		en.Sym = sym
		next = value + 1
	}
	d.Sym = a.table.Lookup(d.Name)
	return nil
}

func (a *Analyzer) analyzeVariableDeclaration(d *ast.VariableDeclaration, global bool) error {
	base, err := a.resolveSpecifierType(d.Spec)
	if err != nil {
		return err
	}
	for _, decl := range d.Decls {
		vt, err := a.buildDeclaratorType(base, decl)
		if err != nil {
			return err
		}
		if types.IsVoid(vt) {
			return errAt(decl.Pos(), "variable %q cannot have void type", decl.Name)
		}
		if decl.Init != nil {
			if err := a.analyzeInit(decl.Init, vt, global); err != nil {
				return err
			}
		}
		sym := &symbol.Symbol{Name: decl.Name, Type: vt, Kind: symbol.Var, Defined: true, Node: decl}
		if !a.table.Define(sym) {
			return errAt(decl.Pos(), "redefinition of %q", decl.Name)
		}
		decl.Sym = sym
	}
	return nil
}

func (a *Analyzer) analyzeArrayDeclaration(d *ast.ArrayDeclaration, global bool) error {
	base, err := a.resolveSpecifierType(d.Spec)
	if err != nil {
		return err
	}
	for _, decl := range d.Decls {
		vt, err := a.buildDeclaratorType(base, decl)
		if err != nil {
			return err
		}
		arr, ok := vt.(*types.Array)
		if !ok {
			return errAt(decl.Pos(), "internal: array declaration without array type")
		}
		if types.IsVoid(arr.Elem) {
			return errAt(decl.Pos(), "array %q cannot have void element type", decl.Name)
		}
		if arr.Size == nil {
			init, ok := decl.Init.(*ast.Initializer)
			if !ok {
				return errAt(decl.Pos(), "array %q declared without size must have an initializer", decl.Name)
			}
			size := len(init.Inits)
			arr.Size = &size
		}
		if decl.Init != nil {
			if err := a.analyzeInit(decl.Init, arr, global); err != nil {
				return err
			}
		}
		sym := &symbol.Symbol{Name: decl.Name, Type: arr, Kind: symbol.Var, Defined: true, Node: decl}
		if !a.table.Define(sym) {
			return errAt(decl.Pos(), "redefinition of %q", decl.Name)
		}
		decl.Sym = sym
	}
	return nil
}

// analyzeInit validates init against target, recursing through arbitrarily
// nested aggregate initializers (array-of-struct, struct-of-array, ...). If
// global is true, every leaf must be a foldable constant expression.
func (a *Analyzer) analyzeInit(init ast.Node, target types.Type, global bool) error {
	if list, ok := init.(*ast.Initializer); ok {
		switch t := target.(type) {
		case *types.Array:
			if t.Size != nil && len(list.Inits) > *t.Size {
				return errAt(init.Pos(), "too many initializers for array of size %d", *t.Size)
			}
			for _, item := range list.Inits {
				if err := a.analyzeInit(item, t.Elem, global); err != nil {
					return err
				}
			}
			return nil
		case *types.Compound:
			if t.Members == nil {
				return errAt(init.Pos(), "cannot initialize incomplete type %q", t.Name)
			}
			if len(list.Inits) > len(t.Members) {
				return errAt(init.Pos(), "too many initializers for %s", t.String())
			}
			for i, item := range list.Inits {
				if err := a.analyzeInit(item, t.Members[i].Type, global); err != nil {
					return err
				}
			}
			return nil
		default:
			return errAt(init.Pos(), "brace initializer used for a non-aggregate type %s", target.String())
		}
	}

	expr := init.(ast.Expr)
	rt, err := a.typeCheckExpr(expr)
	if err != nil {
		return err
	}
	if !isAssignable(target, rt) {
		return errAt(init.Pos(), "cannot initialize %s with %s", target.String(), rt.String())
	}
	if global {
		if _, ok, err := a.foldConst(expr); err != nil {
			return err
		} else if !ok {
			if _, isStr := expr.(*ast.StringLiteral); !isStr {
				return errAt(init.Pos(), "global initializer must be a constant expression")
			}
		}
	}
	return nil
}
