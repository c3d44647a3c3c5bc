package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// typeCheckExpr type-checks expr, annotating every visited node's CType (and,
// for identifiers and calls, Sym) in place. It never folds constants; see
// foldConst for the separate constant evaluator.
func (a *Analyzer) typeCheckExpr(expr ast.Expr) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		e.SetType(types.IntType)
	case *ast.DecimalLiteral:
		e.SetType(types.FloatType)
	case *ast.CharacterLiteral:
		e.SetType(types.CharType)
	case *ast.BoolLiteral:
		e.SetType(types.BoolType)
	case *ast.NullPtrLiteral:
		e.SetType(types.NullPtrType)
	case *ast.StringLiteral:
		e.SetType(&types.Pointer{Elem: types.CharType})

	case *ast.Identifier:
		sym := a.table.Lookup(e.Name)
		if sym == nil {
			return nil, errAt(e.Pos(), "undeclared identifier %q", e.Name)
		}
		if sym.Kind == symbol.TypeKind {
			return nil, errAt(e.Pos(), "%q is a type, not a value", e.Name)
		}
		e.Sym = sym
		e.SetType(sym.Type)

	case *ast.ExpressionList:
		var last types.Type
		for _, sub := range e.Exprs {
			t, err := a.typeCheckExpr(sub)
			if err != nil {
				return nil, err
			}
			last = t
		}
		e.SetType(last)

	case *ast.AssignExpr:
		if err := a.typeCheckAssign(e); err != nil {
			return nil, err
		}

	case *ast.BinaryExpr:
		lt, err := a.typeCheckExpr(e.LHS)
		if err != nil {
			return nil, err
		}
		rt, err := a.typeCheckExpr(e.RHS)
		if err != nil {
			return nil, err
		}
		result, err := typeBinary(e.Op, lt, rt, e.Pos())
		if err != nil {
			return nil, err
		}
		e.SetType(result)

	case *ast.UnaryExpr:
		if err := a.typeCheckUnary(e); err != nil {
			return nil, err
		}

	case *ast.PostfixExpr:
		ot, err := a.typeCheckExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		if !isLValue(e.Operand) {
			return nil, errAt(e.Pos(), "operand of postfix ++/-- must be an l-value")
		}
		if !types.IsInteger(ot) && !types.IsFloat(ot) && !types.IsPointer(ot) {
			return nil, errAt(e.Pos(), "postfix ++/-- requires an int, float or pointer operand")
		}
		e.SetType(ot)

	case *ast.FunctionCall:
		if err := a.typeCheckCall(e); err != nil {
			return nil, err
		}

	case *ast.ArrayAccess:
		at, err := a.typeCheckExpr(e.Array)
		if err != nil {
			return nil, err
		}
		it, err := a.typeCheckExpr(e.Index)
		if err != nil {
			return nil, err
		}
		if !types.IsInteger(it) {
			return nil, errAt(e.Index.Pos(), "array index must be an int expression")
		}
		var elem types.Type
		switch t := at.(type) {
		case *types.Pointer:
			elem = t.Elem
		case *types.Array:
			elem = t.Elem
		default:
			return nil, errAt(e.Array.Pos(), "cannot index a value of type %s", at.String())
		}
		e.SetType(elem)

	case *ast.MemberAccess:
		ot, err := a.typeCheckExpr(e.Object)
		if err != nil {
			return nil, err
		}
		var compound *types.Compound
		if e.Arrow {
			ptr, ok := ot.(*types.Pointer)
			if !ok {
				return nil, errAt(e.Object.Pos(), "-> requires a pointer operand")
			}
			compound, ok = ptr.Elem.(*types.Compound)
			if !ok {
				return nil, errAt(e.Object.Pos(), "-> requires a pointer to struct/union")
			}
		} else {
			var ok bool
			compound, ok = ot.(*types.Compound)
			if !ok {
				return nil, errAt(e.Object.Pos(), ". requires a struct/union operand")
			}
		}
		if compound.Members == nil {
			return nil, errAt(e.Pos(), "incomplete type %q", compound.Name)
		}
		idx := compound.MemberIndex(e.Member)
		if idx < 0 {
			return nil, errAt(e.Pos(), "%s has no member %q", compound.String(), e.Member)
		}
		e.Index = idx
		e.SetType(compound.Members[idx].Type)

	default:
		return nil, errAt(expr.Pos(), "internal: unhandled expression node")
	}
	return expr.Type(), nil
}

func (a *Analyzer) typeCheckAssign(e *ast.AssignExpr) error {
	lt, err := a.typeCheckExpr(e.LHS)
	if err != nil {
		return err
	}
	if !isLValue(e.LHS) {
		return errAt(e.Pos(), "left-hand side of assignment must be an l-value")
	}
	rt, err := a.typeCheckExpr(e.RHS)
	if err != nil {
		return err
	}
	if e.Op != ast.Assign {
		op := compoundBinOp(e.Op)
		if _, err := typeBinary(op, lt, rt, e.Pos()); err != nil {
			return err
		}
	} else if !isAssignable(lt, rt) {
		return errAt(e.Pos(), "cannot assign %s to %s", rt.String(), lt.String())
	}
	e.SetType(lt)
	return nil
}

func compoundBinOp(op ast.AssignOp) ast.BinOp {
	switch op {
	case ast.AddAssign:
		return ast.Add
	case ast.SubAssign:
		return ast.Sub
	case ast.MulAssign:
		return ast.Mul
	case ast.DivAssign:
		return ast.Div
	case ast.ModAssign:
		return ast.Mod
	}
	return ast.Add
}

func (a *Analyzer) typeCheckUnary(e *ast.UnaryExpr) error {
	ot, err := a.typeCheckExpr(e.Operand)
	if err != nil {
		return err
	}
	switch e.Op {
	case ast.Plus, ast.Minus:
		if !types.IsArithmetic(ot) {
			return errAt(e.Pos(), "unary +/- requires an arithmetic operand")
		}
		e.SetType(ot)
	case ast.Not:
		if !isAssignable(types.BoolType, ot) {
			return errAt(e.Pos(), "! requires an operand convertible to bool")
		}
		e.SetType(types.BoolType)
	case ast.Deref:
		switch t := ot.(type) {
		case *types.Pointer:
			e.SetType(t.Elem)
		case *types.Array:
			e.SetType(t.Elem)
		default:
			return errAt(e.Pos(), "* requires a pointer or array operand")
		}
	case ast.Addr:
		if !isLValue(e.Operand) {
			return errAt(e.Pos(), "& requires an l-value operand")
		}
		e.SetType(&types.Pointer{Elem: ot})
	case ast.PreInc, ast.PreDec:
		if !isLValue(e.Operand) {
			return errAt(e.Pos(), "++/-- requires an l-value operand")
		}
		if !types.IsInteger(ot) && !types.IsFloat(ot) && !types.IsPointer(ot) {
			return errAt(e.Pos(), "++/-- requires an int, float or pointer operand")
		}
		e.SetType(ot)
	}
	return nil
}

func (a *Analyzer) typeCheckCall(e *ast.FunctionCall) error {
	sym := a.table.Lookup(e.Callee)
	if sym == nil {
		sym = a.implicitBuiltin(e.Callee)
	}
	if sym == nil {
		return errAt(e.Pos(), "undeclared function %q", e.Callee)
	}
	if sym.Kind != symbol.Func {
		return errAt(e.Pos(), "%q is not a function", e.Callee)
	}
	fn := sym.Type.(*types.Function)
	e.Sym = sym

	variadic := e.Callee == "printf" || e.Callee == "scanf"
	if !variadic && len(e.Args) != len(fn.Params) {
		return errAt(e.Pos(), "%q expects %d argument(s), got %d", e.Callee, len(fn.Params), len(e.Args))
	}
	if variadic && len(e.Args) < len(fn.Params) {
		return errAt(e.Pos(), "%q expects at least %d argument(s), got %d", e.Callee, len(fn.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		at, err := a.typeCheckExpr(arg)
		if err != nil {
			return err
		}
		if i < len(fn.Params) && !isAssignable(fn.Params[i], at) {
			return errAt(arg.Pos(), "argument %d: cannot assign %s to %s", i+1, at.String(), fn.Params[i].String())
		}
	}
	e.SetType(fn.Ret)
	return nil
}

// implicitBuiltin returns the implicitly-declared printf/scanf symbol,
// installing it into the global scope on first use.
func (a *Analyzer) implicitBuiltin(name string) *symbol.Symbol {
	if name != "printf" && name != "scanf" {
		return nil
	}
	fn := &types.Function{Ret: types.IntType, Params: []types.Type{&types.Pointer{Elem: types.CharType}}}
	sym := &symbol.Symbol{Name: name, Type: fn, Kind: symbol.Func, Defined: true}
	a.table.DefineGlobal(sym)
	return sym
}

// isLValue implements the l-value rule: Identifier (non-const), ArrayAccess,
// MemberAccess and UnaryOp{op=*} are l-values.
func isLValue(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Sym == nil || e.Sym.Kind != symbol.Const
	case *ast.ArrayAccess:
		return true
	case *ast.MemberAccess:
		return true
	case *ast.UnaryExpr:
		return e.Op == ast.Deref
	default:
		return false
	}
}

// isAssignable implements ltype <- rtype per the assignability rules.
func isAssignable(lt, rt types.Type) bool {
	if types.Equal(lt, rt) {
		return true
	}
	if _, ok := lt.(*types.Enum); ok && isBasicKind(rt, types.Int) {
		return true
	}
	if _, ok := rt.(*types.Enum); ok && isBasicKind(lt, types.Int) {
		return true
	}
	if isBasicKind(lt, types.Bool) && (types.IsScalar(rt) || isArray(rt)) {
		return true
	}
	if isBasicKind(lt, types.Float) && isBasicKind(rt, types.Int) {
		return true
	}
	if lp, ok := lt.(*types.Pointer); ok {
		if isBasicKind(rt, types.NullPtr) {
			return true
		}
		if ra, ok := rt.(*types.Array); ok && types.Equal(lp.Elem, ra.Elem) {
			return true
		}
		if isVoidPointer(lp) {
			if types.IsPointer(rt) || isArray(rt) {
				return true
			}
		}
	}
	return false
}

func isBasicKind(t types.Type, k types.BasicKind) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind == k
}

func isArray(t types.Type) bool {
	_, ok := t.(*types.Array)
	return ok
}

func isVoidPointer(p *types.Pointer) bool {
	return types.IsVoid(p.Elem)
}

// typeBinary implements binary operator typing per the language's rules.
func typeBinary(op ast.BinOp, lt, rt types.Type, pos ast.Span) (types.Type, error) {
	switch op {
	case ast.Add, ast.Sub:
		lp, lIsPtr := lt.(*types.Pointer)
		rp, rIsPtr := rt.(*types.Pointer)
		switch {
		case lIsPtr && rIsPtr && op == ast.Sub:
			if !types.Equal(lp.Elem, rp.Elem) {
				return nil, errAt(pos, "cannot subtract pointers to different element types")
			}
			return types.IntType, nil
		case lIsPtr && types.IsInteger(rt):
			return lp, nil
		case rIsPtr && types.IsInteger(lt) && op == ast.Add:
			return rp, nil
		case types.IsFloat(lt) || types.IsFloat(rt):
			if types.IsArithmetic(lt) && types.IsArithmetic(rt) {
				return types.FloatType, nil
			}
		case types.IsInteger(lt) && types.IsInteger(rt):
			return types.IntType, nil
		}
		return nil, errAt(pos, "invalid operands to %s", binOpName(op))
	case ast.Mul, ast.Div:
		if types.IsFloat(lt) || types.IsFloat(rt) {
			if types.IsArithmetic(lt) && types.IsArithmetic(rt) {
				return types.FloatType, nil
			}
		}
		if types.IsInteger(lt) && types.IsInteger(rt) {
			return types.IntType, nil
		}
		return nil, errAt(pos, "invalid operands to %s", binOpName(op))
	case ast.Mod:
		if types.IsInteger(lt) && types.IsInteger(rt) {
			return types.IntType, nil
		}
		return nil, errAt(pos, "%% requires int operands")
	case ast.Eq, ast.Ne, ast.Lt, ast.Gt, ast.Le, ast.Ge:
		if types.IsArithmetic(lt) && types.IsArithmetic(rt) {
			return types.BoolType, nil
		}
		if (types.IsPointer(lt) || isArray(lt)) && types.Equal(lt, rt) {
			return types.BoolType, nil
		}
		if types.IsPointer(lt) && isBasicKind(rt, types.NullPtr) {
			return types.BoolType, nil
		}
		if types.IsPointer(rt) && isBasicKind(lt, types.NullPtr) {
			return types.BoolType, nil
		}
		return nil, errAt(pos, "invalid operands to comparison")
	case ast.LogAnd, ast.LogOr:
		if isAssignable(types.BoolType, lt) && isAssignable(types.BoolType, rt) {
			return types.BoolType, nil
		}
		return nil, errAt(pos, "&&/|| requires operands convertible to bool")
	}
	return nil, errAt(pos, "internal: unhandled binary operator")
}

func binOpName(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Sub:
		return "-"
	case ast.Mul:
		return "*"
	case ast.Div:
		return "/"
	case ast.Mod:
		return "%"
	default:
		return "?"
	}
}
