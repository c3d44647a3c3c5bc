package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/types"
)

// analyzeBlockItem analyzes one element of a block: a local declaration or
// a statement.
func (a *Analyzer) analyzeBlockItem(item ast.Node) error {
	switch n := item.(type) {
	case *ast.VariableDeclaration:
		return a.analyzeVariableDeclaration(n, false)
	case *ast.ArrayDeclaration:
		return a.analyzeArrayDeclaration(n, false)
	case *ast.CompoundDefinition:
		return a.analyzeCompoundDefinition(n)
	case *ast.EnumDefinition:
		return a.analyzeEnumDefinition(n)
	default:
		return a.analyzeStatement(item)
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Node) error {
	switch s := stmt.(type) {
	case *ast.StatementList:
		a.table.EnterScope()
		for _, item := range s.Stmts {
			if err := a.analyzeBlockItem(item); err != nil {
				a.table.LeaveScope()
				return err
			}
		}
		a.table.LeaveScope()
		return nil

	case *ast.If:
		ct, err := a.typeCheckExpr(s.Cond)
		if err != nil {
			return err
		}
		if !isAssignable(types.BoolType, ct) {
			return errAt(s.Cond.Pos(), "if condition must be convertible to bool")
		}
		if err := a.analyzeStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.analyzeStatement(s.Else)
		}
		return nil

	case *ast.While:
		ct, err := a.typeCheckExpr(s.Cond)
		if err != nil {
			return err
		}
		if !isAssignable(types.BoolType, ct) {
			return errAt(s.Cond.Pos(), "while condition must be convertible to bool")
		}
		a.loopDepth++
		err = a.analyzeStatement(s.Body)
		a.loopDepth--
		return err

	case *ast.For:
		a.table.EnterScope()
		defer a.table.LeaveScope()
		if s.Init != nil {
			if err := a.analyzeBlockItem(s.Init); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			ct, err := a.typeCheckExpr(s.Cond)
			if err != nil {
				return err
			}
			if !isAssignable(types.BoolType, ct) {
				return errAt(s.Cond.Pos(), "for condition must be convertible to bool")
			}
		}
		if s.Post != nil {
			if _, err := a.typeCheckExpr(s.Post); err != nil {
				return err
			}
		}
		a.loopDepth++
		err := a.analyzeStatement(s.Body)
		a.loopDepth--
		return err

	case *ast.Return:
		if !a.inFunction {
			return errAt(s.Pos(), "return outside of a function")
		}
		ret := a.currentFn.Ret
		if s.Value == nil {
			if !types.IsVoid(ret) {
				return errAt(s.Pos(), "non-void function must return a value")
			}
			return nil
		}
		if types.IsVoid(ret) {
			return errAt(s.Pos(), "void function must not return a value")
		}
		vt, err := a.typeCheckExpr(s.Value)
		if err != nil {
			return err
		}
		if !isAssignable(ret, vt) {
			return errAt(s.Value.Pos(), "cannot return %s from a function returning %s", vt.String(), ret.String())
		}
		return nil

	case *ast.Break:
		if a.loopDepth == 0 {
			return errAt(s.Pos(), "break outside of a loop")
		}
		return nil

	case *ast.Continue:
		if a.loopDepth == 0 {
			return errAt(s.Pos(), "continue outside of a loop")
		}
		return nil

	case *ast.Empty:
		return nil

	case *ast.ExpressionStatement:
		_, err := a.typeCheckExpr(s.Expr)
		return err

	default:
		return errAt(stmt.Pos(), "internal: unhandled statement node")
	}
}
