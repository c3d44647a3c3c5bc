package parser

import (
	"strconv"
	"strings"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/token"
)

// parseExpression parses a comma-expression: one or more assignment
// expressions separated by `,`. A single sub-expression is returned
// unwrapped rather than boxed in an ExpressionList.
func (p *Parser) parseExpression() (ast.Expr, error) {
	s := p.span()
	first, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if !p.isOp(",") {
		return first, nil
	}
	list := &ast.ExpressionList{ExprBase: ast.ExprBase{Base: ast.At(s)}, Exprs: []ast.Expr{first}}
	for p.isOp(",") {
		p.advance()
		next, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		list.Exprs = append(list.Exprs, next)
	}
	return list, nil
}

var assignOps = map[string]ast.AssignOp{
	"=":  ast.Assign,
	"+=": ast.AddAssign,
	"-=": ast.SubAssign,
	"*=": ast.MulAssign,
	"/=": ast.DivAssign,
	"%=": ast.ModAssign,
}

// parseAssignExpr parses a right-associative assignment, falling through to
// logical-or when the next operator is not an assignment operator.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	s := p.span()
	lhs, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == token.Operator {
		if op, ok := assignOps[p.cur().Text]; ok {
			p.advance()
			rhs, err := p.parseAssignExpr()
			if err != nil {
				return nil, err
			}
			return &ast.AssignExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: op, LHS: lhs, RHS: rhs}, nil
		}
	}
	return lhs, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	s := p.span()
	lhs, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isOp("||") {
		p.advance()
		rhs, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.LogOr, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	s := p.span()
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isOp("&&") {
		p.advance()
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.LogAnd, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

var equalityOps = map[string]ast.BinOp{"==": ast.Eq, "!=": ast.Ne}
var relationalOps = map[string]ast.BinOp{"<": ast.Lt, ">": ast.Gt, "<=": ast.Le, ">=": ast.Ge}
var additiveOps = map[string]ast.BinOp{"+": ast.Add, "-": ast.Sub}
var multiplicativeOps = map[string]ast.BinOp{"*": ast.Mul, "/": ast.Div, "%": ast.Mod}

func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), ops map[string]ast.BinOp) (ast.Expr, error) {
	s := p.span()
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Operator {
		op, ok := ops[p.cur().Text]
		if !ok {
			break
		}
		p.advance()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseRelational, equalityOps)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, relationalOps)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, multiplicativeOps)
}

var prefixOps = map[string]ast.UnOp{
	"+": ast.Plus, "-": ast.Minus, "!": ast.Not, "*": ast.Deref, "&": ast.Addr,
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	s := p.span()
	switch {
	case p.cur().Kind == token.Operator && isPrefixOp(p.cur().Text):
		text := p.advance().Text
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if text == "++" {
			return &ast.UnaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.PreInc, Operand: operand}, nil
		}
		if text == "--" {
			return &ast.UnaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.PreDec, Operand: operand}, nil
		}
		return &ast.UnaryExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: prefixOps[text], Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

func isPrefixOp(text string) bool {
	switch text {
	case "+", "-", "!", "*", "&", "++", "--":
		return true
	}
	return false
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	s := p.span()
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("["):
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			expr = &ast.ArrayAccess{ExprBase: ast.ExprBase{Base: ast.At(s)}, Array: expr, Index: idx}
		case p.isOp(".") || p.isOp("->"):
			arrow := p.isOp("->")
			p.advance()
			member, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{ExprBase: ast.ExprBase{Base: ast.At(s)}, Object: expr, Member: member.Text, Arrow: arrow}
		case p.isOp("++"):
			p.advance()
			expr = &ast.PostfixExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.PostInc, Operand: expr}
		case p.isOp("--"):
			p.advance()
			expr = &ast.PostfixExpr{ExprBase: ast.ExprBase{Base: ast.At(s)}, Op: ast.PostDec, Operand: expr}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	s := p.span()
	t := p.cur()
	switch {
	case p.isOp("("):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case t.Kind == token.IntegerLit:
		p.advance()
		v, err := token.ParseIntegerLiteral(t.Text)
		if err != nil {
			return nil, p.fail("invalid integer literal %q", t.Text)
		}
		return &ast.IntegerLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Value: v}, nil
	case t.Kind == token.DecimalLit:
		p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.fail("invalid decimal literal %q", t.Text)
		}
		return &ast.DecimalLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Value: v}, nil
	case t.Kind == token.CharacterLit:
		p.advance()
		return &ast.CharacterLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Value: decodeCharLiteral(t.Text)}, nil
	case t.Kind == token.StringLit:
		p.advance()
		return &ast.StringLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Raw: strings.Trim(t.Text, `"`)}, nil
	case p.isKw("true"):
		p.advance()
		return &ast.BoolLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Value: true}, nil
	case p.isKw("false"):
		p.advance()
		return &ast.BoolLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}, Value: false}, nil
	case p.isKw("nullptr"):
		p.advance()
		return &ast.NullPtrLiteral{ExprBase: ast.ExprBase{Base: ast.At(s)}}, nil
	case t.Kind == token.Identifier:
		p.advance()
		if p.isOp("(") {
			return p.parseCall(s, t.Text)
		}
		return &ast.Identifier{ExprBase: ast.ExprBase{Base: ast.At(s)}, Name: t.Text}, nil
	default:
		return nil, p.fail("unexpected token %q", t.Text)
	}
}

func (p *Parser) parseCall(s ast.Span, callee string) (ast.Expr, error) {
	p.advance() // consume '('
	call := &ast.FunctionCall{ExprBase: ast.ExprBase{Base: ast.At(s)}, Callee: callee}
	if !p.isOp(")") {
		for {
			arg, err := p.parseAssignExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.isOp(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return call, nil
}

// decodeCharLiteral strips the surrounding quotes and decodes the one
// escape sequence (if any) a character literal's text may contain.
func decodeCharLiteral(text string) byte {
	inner := strings.Trim(text, "'")
	if len(inner) == 1 {
		return inner[0]
	}
	return decodeEscape(inner)
}

func decodeEscape(seq string) byte {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq[0]
	}
	switch seq[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	default:
		return seq[1]
	}
}
