package compiler

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/core/codegen"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// lowerConstInit lowers a global variable or array's initializer (already
// validated by the analyzer to be a constant expression, except for string
// literals) into a codegen.Const of type target.
func (c *C) lowerConstInit(init ast.Node, target types.Type) codegen.Const {
	if list, ok := init.(*ast.Initializer); ok {
		switch t := target.(type) {
		case *types.Array:
			size := 0
			if t.Size != nil {
				size = *t.Size
			}
			elems := make([]interface{}, size)
			zero := c.m.Zero(c.lowerType(t.Elem))
			for i := range elems {
				elems[i] = zero
			}
			for i, item := range list.Inits {
				elems[i] = c.lowerConstInit(item, t.Elem)
			}
			return c.m.Array(elems, c.lowerType(t.Elem))

		case *types.Compound:
			s := c.lowerCompound(t)
			fields := map[string]interface{}{}
			for i, item := range list.Inits {
				fields[t.Members[i].Name] = c.lowerConstInit(item, t.Members[i].Type)
			}
			return c.m.ConstStruct(s, fields)

		default:
			panic(notImplemented("aggregate initializer for non-aggregate type %s", target.String()))
		}
	}

	expr := init.(ast.Expr)
	if s, ok := expr.(*ast.StringLiteral); ok {
		return c.m.ScalarOfType(decodeStringLiteral(s.Raw), c.lowerType(target))
	}
	return c.m.ScalarOfType(constEval(expr), c.lowerType(target))
}

// constEval evaluates a constant expression to its native Go representation,
// mirroring semantic.foldConst's structure but producing a value usable by
// codegen.Module.ScalarOfType rather than a foldability verdict: the
// analyzer already rejected any global initializer that doesn't fold, so
// this is never asked to evaluate something it can't.
func constEval(expr ast.Expr) interface{} {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value
	case *ast.DecimalLiteral:
		return e.Value
	case *ast.CharacterLiteral:
		return e.Value
	case *ast.BoolLiteral:
		return e.Value
	case *ast.Identifier:
		if e.Sym != nil && e.Sym.Kind == symbol.Const {
			if en, ok := e.Sym.Type.(*types.Enum); ok {
				if v, ok := en.Value(e.Name); ok {
					return v
				}
			}
		}
		panic(notImplemented("non-constant identifier %q in global initializer", e.Name))
	case *ast.UnaryExpr:
		v := constEval(e.Operand)
		switch e.Op {
		case ast.Plus:
			return v
		case ast.Minus:
			return negate(v)
		case ast.Not:
			return !asBool(v)
		default:
			panic(notImplemented("constant unary operator %d", e.Op))
		}
	case *ast.BinaryExpr:
		return constEvalBinary(e)
	default:
		panic(notImplemented("non-constant expression %T in global initializer", expr))
	}
}

func negate(v interface{}) interface{} {
	switch v := v.(type) {
	case int:
		return -v
	case float64:
		return -v
	case byte:
		return -v
	default:
		panic(notImplemented("negate of %T", v))
	}
}

func asBool(v interface{}) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case byte:
		return v != 0
	case float64:
		return v != 0
	default:
		panic(notImplemented("boolean test of %T", v))
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), false
	case byte:
		return float64(v), false
	default:
		panic(notImplemented("numeric value of %T", v))
	}
}

func constEvalBinary(e *ast.BinaryExpr) interface{} {
	l, r := constEval(e.LHS), constEval(e.RHS)
	lf, lIsF := asFloat(l)
	rf, rIsF := asFloat(r)
	if lIsF || rIsF {
		switch e.Op {
		case ast.Add:
			return lf + rf
		case ast.Sub:
			return lf - rf
		case ast.Mul:
			return lf * rf
		case ast.Div:
			return lf / rf
		case ast.Eq:
			return lf == rf
		case ast.Ne:
			return lf != rf
		case ast.Lt:
			return lf < rf
		case ast.Gt:
			return lf > rf
		case ast.Le:
			return lf <= rf
		case ast.Ge:
			return lf >= rf
		default:
			panic(notImplemented("floating-point constant operator %d", e.Op))
		}
	}

	li, ri := int(lf), int(rf)
	switch e.Op {
	case ast.Add:
		return li + ri
	case ast.Sub:
		return li - ri
	case ast.Mul:
		return li * ri
	case ast.Div:
		return li / ri
	case ast.Mod:
		return li % ri
	case ast.Eq:
		return li == ri
	case ast.Ne:
		return li != ri
	case ast.Lt:
		return li < ri
	case ast.Gt:
		return li > ri
	case ast.Le:
		return li <= ri
	case ast.Ge:
		return li >= ri
	case ast.LogAnd:
		return asBool(l) && asBool(r)
	case ast.LogOr:
		return asBool(l) || asBool(r)
	default:
		panic(notImplemented("integer constant operator %d", e.Op))
	}
}
