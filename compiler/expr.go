package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// castTo casts v to ty, a no-op when the types already match (Value.Cast
// itself handles that), used at every implicit-conversion site the analyzer
// permitted (assignment, initialization, return, call arguments).
func (c *C) castTo(v *codegen.Value, ty codegen.Type) *codegen.Value {
	return v.Cast(ty)
}

// lowerExpr evaluates e and returns its r-value.
func (c *C) lowerExpr(e ast.Expr) *codegen.Value {
	switch e := e.(type) {
	case *ast.IntegerLiteral:
		return c.b.Scalar(int32(e.Value))

	case *ast.DecimalLiteral:
		return c.b.Scalar(float32(e.Value))

	case *ast.CharacterLiteral:
		return c.b.Scalar(e.Value)

	case *ast.BoolLiteral:
		return c.b.Scalar(e.Value)

	case *ast.NullPtrLiteral:
		return c.b.Zero(c.lowerType(e.Type()))

	case *ast.StringLiteral:
		// Module.Scalar interns string literals into deduplicated private
		// globals and returns a ready-to-use i8* constant directly.
		return c.m.Scalar(decodeStringLiteral(e.Raw)).Value(c.b)

	case *ast.Identifier:
		return c.lowerIdentifier(e)

	case *ast.ExpressionList:
		var v *codegen.Value
		for _, sub := range e.Exprs {
			v = c.lowerExpr(sub)
		}
		return v

	case *ast.AssignExpr:
		return c.lowerAssign(e)

	case *ast.BinaryExpr:
		return c.lowerBinary(e)

	case *ast.UnaryExpr:
		return c.lowerUnary(e)

	case *ast.PostfixExpr:
		return c.lowerPostfix(e)

	case *ast.FunctionCall:
		return c.lowerCall(e)

	case *ast.ArrayAccess:
		return c.decayingLoad(c.lowerArrayAddr(e), e.Type())

	case *ast.MemberAccess:
		return c.decayingLoad(c.lowerMemberAddr(e), e.Type())

	default:
		panic(notImplemented("expression %T", e))
	}
}

// lowerIdentifier resolves a bare name to its r-value: an enum constant
// folds to an i32 literal, an array decays to a pointer to its first
// element, everything else loads through its stored address.
func (c *C) lowerIdentifier(e *ast.Identifier) *codegen.Value {
	if e.Sym.Kind == symbol.Const {
		if en, ok := e.Sym.Type.(*types.Enum); ok {
			if v, ok := en.Value(e.Name); ok {
				return c.b.Scalar(int32(v))
			}
		}
	}
	return c.decayingLoad(c.lowerLValue(e), e.Type())
}

// decayingLoad reads the r-value at addr. An array-typed l-value decays to a
// pointer to its first element rather than loading the whole aggregate,
// matching C's array-to-pointer conversion at every r-value use site.
func (c *C) decayingLoad(addr *codegen.Value, ty types.Type) *codegen.Value {
	if _, ok := ty.(*types.Array); ok {
		return addr.Index(0, 0)
	}
	return addr.Load()
}

// lowerLValue returns the address of an addressable expression: an
// Identifier naming a variable, an ArrayAccess, a MemberAccess, or a
// dereferencing UnaryExpr (*p).
func (c *C) lowerLValue(e ast.Expr) *codegen.Value {
	switch e := e.(type) {
	case *ast.Identifier:
		switch v := e.Sym.Value.(type) {
		case *codegen.Value:
			return v
		case codegen.Global:
			return v.Value(c.b)
		default:
			panic(notImplemented("identifier %q has no addressable storage", e.Name))
		}

	case *ast.ArrayAccess:
		return c.lowerArrayAddr(e)

	case *ast.MemberAccess:
		return c.lowerMemberAddr(e)

	case *ast.UnaryExpr:
		if e.Op == ast.Deref {
			return c.lowerExpr(e.Operand)
		}
		panic(notImplemented("unary operator %d is not an l-value", e.Op))

	default:
		panic(notImplemented("%T is not an l-value", e))
	}
}

// lowerArrayAddr computes the address of array[index]. When the array
// operand itself has array type, its address (Pointer(Array)) is indexed
// with a leading 0 to dereference the pointer before descending into the
// array; when it has already decayed to a plain pointer (a parameter, or a
// pointer variable), the pointer's own value is the GEP root and is indexed
// directly.
func (c *C) lowerArrayAddr(e *ast.ArrayAccess) *codegen.Value {
	idx := c.lowerExpr(e.Index)
	if _, ok := e.Array.Type().(*types.Array); ok {
		base := c.lowerLValue(e.Array)
		return base.Index(0, idx)
	}
	base := c.lowerExpr(e.Array)
	return base.Index(idx)
}

// lowerMemberAddr computes the address of object.member or object->member.
// Arrow access takes the r-value of object (already a pointer to the
// compound) as the GEP root; dot access takes the l-value address of object
// (a pointer to the pointer's pointee is not needed: the address itself is
// the root) and indexes through the leading pointer dereference.
func (c *C) lowerMemberAddr(e *ast.MemberAccess) *codegen.Value {
	ct := e.Object.Type()
	if p, ok := ct.(*types.Pointer); ok {
		ct = p.Elem
	}
	compound := ct.(*types.Compound)

	// A union's codegen.Struct has a single field backing its largest
	// member, so every access goes through field 0; a member other than
	// that backing one needs its address pointer-cast to its own type.
	fieldIdx := e.Index
	if compound.IsUnion {
		fieldIdx = 0
	}

	var base *codegen.Value
	if e.Arrow {
		base = c.lowerExpr(e.Object).Index(0, fieldIdx)
	} else {
		base = c.lowerLValue(e.Object).Index(0, fieldIdx)
	}

	if compound.IsUnion {
		storage := c.unionStorageMember(compound)
		if storage.Name != e.Member {
			return base.Cast(c.m.Types.Pointer(c.lowerType(e.Type())))
		}
	}
	return base
}

// lowerAssign lowers `lhs = rhs` and the compound assignment operators,
// which read-modify-write through the same address.
func (c *C) lowerAssign(e *ast.AssignExpr) *codegen.Value {
	addr := c.lowerLValue(e.LHS)
	elemTy := addr.Type().(codegen.Pointer).Element

	if e.Op == ast.Assign {
		v := c.castTo(c.lowerExpr(e.RHS), elemTy)
		addr.Store(v)
		return v
	}

	cur := addr.Load()

	if codegen.IsPointer(elemTy) {
		idx := c.lowerExpr(e.RHS)
		if e.Op == ast.SubAssign {
			idx = c.b.Negate(idx)
		} else if e.Op != ast.AddAssign {
			panic(notImplemented("compound assignment operator %d on pointer", e.Op))
		}
		v := cur.Index(idx)
		addr.Store(v)
		return v
	}

	rhs := c.castTo(c.lowerExpr(e.RHS), elemTy)
	var v *codegen.Value
	switch e.Op {
	case ast.AddAssign:
		v = c.arith(cur, rhs, ast.Add)
	case ast.SubAssign:
		v = c.arith(cur, rhs, ast.Sub)
	case ast.MulAssign:
		v = c.arith(cur, rhs, ast.Mul)
	case ast.DivAssign:
		v = c.arith(cur, rhs, ast.Div)
	case ast.ModAssign:
		v = c.arith(cur, rhs, ast.Mod)
	default:
		panic(notImplemented("assignment operator %d", e.Op))
	}
	addr.Store(v)
	return v
}

// arith applies a binary arithmetic op to two already-same-typed operands.
func (c *C) arith(x, y *codegen.Value, op ast.BinOp) *codegen.Value {
	switch op {
	case ast.Add:
		return c.b.Add(x, y)
	case ast.Sub:
		return c.b.Sub(x, y)
	case ast.Mul:
		return c.b.Mul(x, y)
	case ast.Div:
		return c.b.Div(x, y)
	case ast.Mod:
		return c.b.Rem(x, y)
	default:
		panic(notImplemented("arithmetic operator %d", op))
	}
}

// lowerBinary lowers a binary expression. && and || short-circuit via an
// IfElse-guarded result local rather than eager evaluation of both operands,
// matching C's sequencing rules; pointer arithmetic goes through Value.Index
// rather than raw integer addition since codegen.Builder's Add requires
// identical operand types and pointers are not integers.
func (c *C) lowerBinary(e *ast.BinaryExpr) *codegen.Value {
	if e.Op == ast.LogAnd || e.Op == ast.LogOr {
		return c.lowerShortCircuit(e)
	}

	_, lhsPtr := e.LHS.Type().(*types.Pointer)
	_, rhsPtr := e.RHS.Type().(*types.Pointer)
	if (e.Op == ast.Add || e.Op == ast.Sub) && (lhsPtr || rhsPtr) {
		return c.lowerPointerBinary(e)
	}

	lhs, rhs := c.lowerExpr(e.LHS), c.lowerExpr(e.RHS)
	if lhsPtr || rhsPtr {
		// Pointer/pointer equality, or a pointer compared against a
		// nullptr literal whose type is Pointer(Void): reconcile to a
		// common pointee type so the comparison's exact-type check passes.
		if lhs.Type() != rhs.Type() {
			if lhsPtr {
				rhs = rhs.Cast(lhs.Type())
			} else {
				lhs = lhs.Cast(rhs.Type())
			}
		}
	} else {
		ty := c.promote(e.LHS.Type(), e.RHS.Type())
		cty := c.lowerType(ty)
		lhs, rhs = lhs.Cast(cty), rhs.Cast(cty)
	}

	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return c.arith(lhs, rhs, e.Op)
	case ast.Eq:
		return c.b.Equal(lhs, rhs)
	case ast.Ne:
		return c.b.NotEqual(lhs, rhs)
	case ast.Lt:
		return c.b.LessThan(lhs, rhs)
	case ast.Gt:
		return c.b.GreaterThan(lhs, rhs)
	case ast.Le:
		return c.b.LessOrEqualTo(lhs, rhs)
	case ast.Ge:
		return c.b.GreaterOrEqualTo(lhs, rhs)
	default:
		panic(notImplemented("binary operator %d", e.Op))
	}
}

// promote picks the common arithmetic type for a binary operator's operands:
// float dominates, otherwise both sides widen to int.
func (c *C) promote(a, b types.Type) types.Type {
	if types.IsFloat(a) || types.IsFloat(b) {
		return types.FloatType
	}
	return types.IntType
}

// lowerPointerBinary handles pointer +/- int and pointer - pointer.
func (c *C) lowerPointerBinary(e *ast.BinaryExpr) *codegen.Value {
	_, lp := e.LHS.Type().(*types.Pointer)
	if e.Op == ast.Sub && lp {
		if _, rp := e.RHS.Type().(*types.Pointer); rp {
			l := c.lowerExpr(e.LHS).Cast(c.m.Types.Int64)
			r := c.lowerExpr(e.RHS).Cast(c.m.Types.Int64)
			elemSize := c.b.SizeOf(c.lowerType(e.LHS.Type().(*types.Pointer).Elem)).Cast(c.m.Types.Int64)
			diff := c.b.Sub(l, r)
			return c.b.Div(diff, elemSize).Cast(c.m.Types.Int32)
		}
	}
	var ptrExpr, idxExpr ast.Expr
	if lp {
		ptrExpr, idxExpr = e.LHS, e.RHS
	} else {
		ptrExpr, idxExpr = e.RHS, e.LHS
	}
	ptr := c.lowerExpr(ptrExpr)
	idx := c.lowerExpr(idxExpr)
	if e.Op == ast.Sub {
		idx = c.b.Negate(idx)
	}
	return ptr.Index(idx)
}

// lowerShortCircuit evaluates lhs, and only evaluates rhs when its result
// can still change the outcome: for && only when lhs is true, for || only
// when lhs is false.
func (c *C) lowerShortCircuit(e *ast.BinaryExpr) *codegen.Value {
	lhs := c.lowerExpr(e.LHS)
	result := c.b.LocalInit("logical", lhs)
	if e.Op == ast.LogAnd {
		c.b.If(lhs, func() { result.Store(c.lowerExpr(e.RHS)) })
	} else {
		c.b.If(c.b.Not(lhs), func() { result.Store(c.lowerExpr(e.RHS)) })
	}
	return result.Load()
}

// lowerUnary lowers prefix unary operators, including pre-increment/decrement
// which read-modify-write through the operand's address like a compound
// assignment.
func (c *C) lowerUnary(e *ast.UnaryExpr) *codegen.Value {
	switch e.Op {
	case ast.Plus:
		return c.lowerExpr(e.Operand)
	case ast.Minus:
		return c.b.Negate(c.lowerExpr(e.Operand))
	case ast.Not:
		return c.b.Not(c.lowerExpr(e.Operand))
	case ast.Deref:
		return c.lowerExpr(e.Operand).Load()
	case ast.Addr:
		return c.lowerLValue(e.Operand)
	case ast.PreInc, ast.PreDec:
		addr := c.lowerLValue(e.Operand)
		return c.step(addr, e.Op == ast.PreInc)
	default:
		panic(notImplemented("unary operator %d", e.Op))
	}
}

// lowerPostfix lowers post-increment/decrement: the old value is returned,
// but the store still happens before the expression's value escapes to any
// enclosing expression, matching C's sequence-point rules for a single
// postfix operator (this front end does not need to model the general
// undefined-behavior case of multiple unsequenced modifications).
func (c *C) lowerPostfix(e *ast.PostfixExpr) *codegen.Value {
	addr := c.lowerLValue(e.Operand)
	old := addr.Load()
	c.step(addr, e.Op == ast.PostInc)
	return old
}

// step adds or subtracts one through addr, handling both arithmetic and
// pointer operands, and stores the new value.
func (c *C) step(addr *codegen.Value, inc bool) *codegen.Value {
	elemTy := addr.Type().(codegen.Pointer).Element
	cur := addr.Load()
	var next *codegen.Value
	if codegen.IsPointer(elemTy) {
		delta := c.b.Scalar(int32(1))
		if !inc {
			delta = c.b.Negate(delta)
		}
		next = cur.Index(delta)
	} else if codegen.IsFloat(elemTy) {
		one := c.b.One(elemTy)
		if inc {
			next = c.b.Add(cur, one)
		} else {
			next = c.b.Sub(cur, one)
		}
	} else {
		one := c.b.One(elemTy)
		if inc {
			next = c.b.Add(cur, one)
		} else {
			next = c.b.Sub(cur, one)
		}
	}
	addr.Store(next)
	return next
}
