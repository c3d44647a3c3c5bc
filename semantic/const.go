package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

// foldConst is the dedicated constant-expression evaluator: it computes
// integer-valued constant expressions over integer literals, enum
// constants, the arithmetic/comparison/logical binary operators and the
// unary +/-/! operators. Any non-foldable sub-expression yields ok=false,
// which propagates outward rather than erroring — only a failed top-level
// fold (the caller needing a constant and not getting one) is a semantic
// error, raised by the caller.
//
// foldConst assumes expr has already been type-checked by typeCheckExpr.
//
// Division or modulus by a literal zero is the one case foldConst itself
// reports as an error, since §8's boundary behavior requires it regardless
// of which caller triggered the fold.
func (a *Analyzer) foldConst(expr ast.Expr) (int, bool, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value, true, nil

	case *ast.CharacterLiteral:
		return int(e.Value), true, nil

	case *ast.BoolLiteral:
		if e.Value {
			return 1, true, nil
		}
		return 0, true, nil

	case *ast.Identifier:
		// Only a CONST-kind symbol (an enumerator) resolves to a value; a
		// bare enum *type* name used as an identifier never reaches here
		// (typeCheckExpr already rejects TYPE-kind identifiers), but a
		// symbol's own type being an Enum is not sufficient on its own —
		// the symbol's Kind must be Const.
		if e.Sym != nil && e.Sym.Kind == symbol.Const {
			if en, ok := e.Sym.Type.(*types.Enum); ok {
				if v, ok := en.Value(e.Name); ok {
					return v, true, nil
				}
			}
		}
		return 0, false, nil

	case *ast.BinaryExpr:
		l, lok, err := a.foldConst(e.LHS)
		if err != nil {
			return 0, false, err
		}
		r, rok, err := a.foldConst(e.RHS)
		if err != nil {
			return 0, false, err
		}
		if !lok || !rok {
			return 0, false, nil
		}
		switch e.Op {
		case ast.Add:
			return l + r, true, nil
		case ast.Sub:
			return l - r, true, nil
		case ast.Mul:
			return l * r, true, nil
		case ast.Div:
			if r == 0 {
				return 0, false, errAt(e.Pos(), "division by zero in constant expression")
			}
			return l / r, true, nil // Go's integer division truncates toward zero, matching C
		case ast.Mod:
			if r == 0 {
				return 0, false, errAt(e.Pos(), "modulus by zero in constant expression")
			}
			return l % r, true, nil
		case ast.Eq:
			return boolToInt(l == r), true, nil
		case ast.Ne:
			return boolToInt(l != r), true, nil
		case ast.Lt:
			return boolToInt(l < r), true, nil
		case ast.Gt:
			return boolToInt(l > r), true, nil
		case ast.Le:
			return boolToInt(l <= r), true, nil
		case ast.Ge:
			return boolToInt(l >= r), true, nil
		case ast.LogAnd:
			return boolToInt(l != 0 && r != 0), true, nil
		case ast.LogOr:
			return boolToInt(l != 0 || r != 0), true, nil
		default:
			return 0, false, nil
		}

	case *ast.UnaryExpr:
		v, ok, err := a.foldConst(e.Operand)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		switch e.Op {
		case ast.Plus:
			return v, true, nil
		case ast.Minus:
			return -v, true, nil
		case ast.Not:
			return boolToInt(v == 0), true, nil
		default:
			return 0, false, nil
		}

	default:
		return 0, false, nil
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
