package parser

import (
	"github.com/minic-lang/minic/ast"
)

// parseBlock parses a brace-enclosed statement list, used for function
// bodies and nested blocks.
func (p *Parser) parseBlock() (*ast.StatementList, error) {
	s := p.span()
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	list := &ast.StatementList{StmtBase: ast.StmtBase{Base: ast.At(s)}}
	for !p.isOp("}") {
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, item)
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return list, nil
}

// parseBlockItem parses one element of a block: a local declaration
// (variable/array/compound/enum) or a statement.
func (p *Parser) parseBlockItem() (ast.Node, error) {
	s := p.span()
	switch {
	case p.isKw("struct") || p.isKw("union"):
		isUnion := p.isKw("union")
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if p.isOp("{") {
			def, err := p.parseCompoundBody(s, name.Text, isUnion)
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp(";"); err != nil {
				return nil, err
			}
			return def, nil
		}
		spec := &ast.Specifier{Base: ast.At(s), Name: name.Text, IsStruct: !isUnion, IsUnion: isUnion}
		return p.parseLocalDeclaratorList(s, spec)
	case p.isKw("enum"):
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		def, err := p.parseEnumBody(s, name.Text)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
		return def, nil
	case p.isKw("void"), p.isKw("int"), p.isKw("float"), p.isKw("char"), p.isKw("bool"):
		spec, err := p.parseSpecifier()
		if err != nil {
			return nil, err
		}
		return p.parseLocalDeclaratorList(s, spec)
	default:
		return p.parseStatement()
	}
}

// parseLocalDeclaratorList is like parseDeclaratorList but only ever yields
// a variable or array declaration (local function declarations are not part
// of this language's statement grammar).
func (p *Parser) parseLocalDeclaratorList(s ast.Span, spec *ast.Specifier) (ast.Node, error) {
	var decls []*ast.Declarator
	for {
		d, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}
	if lastSuffixIsArray(decls[0]) {
		return &ast.ArrayDeclaration{Base: ast.At(s), Spec: spec, Decls: decls}, nil
	}
	return &ast.VariableDeclaration{Base: ast.At(s), Spec: spec, Decls: decls}, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	s := p.span()
	switch {
	case p.isOp("{"):
		return p.parseBlock()
	case p.isOp(";"):
		p.advance()
		return &ast.Empty{StmtBase: ast.StmtBase{Base: ast.At(s)}}, nil
	case p.isKw("if"):
		return p.parseIf(s)
	case p.isKw("while"):
		return p.parseWhile(s)
	case p.isKw("for"):
		return p.parseFor(s)
	case p.isKw("return"):
		return p.parseReturn(s)
	case p.isKw("break"):
		p.advance()
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
		return &ast.Break{StmtBase: ast.StmtBase{Base: ast.At(s)}}, nil
	case p.isKw("continue"):
		p.advance()
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
		return &ast.Continue{StmtBase: ast.StmtBase{Base: ast.At(s)}}, nil
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{StmtBase: ast.StmtBase{Base: ast.At(s)}, Expr: expr}, nil
	}
}

func (p *Parser) parseIf(s ast.Span) (ast.Node, error) {
	p.advance()
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node := &ast.If{StmtBase: ast.StmtBase{Base: ast.At(s)}, Cond: cond, Then: then}
	if p.isKw("else") {
		p.advance()
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Else = els
	}
	return node, nil
}

func (p *Parser) parseWhile(s ast.Span) (ast.Node, error) {
	p.advance()
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{StmtBase: ast.StmtBase{Base: ast.At(s)}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor(s ast.Span) (ast.Node, error) {
	p.advance()
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	node := &ast.For{StmtBase: ast.StmtBase{Base: ast.At(s)}}

	switch {
	case p.isOp(";"):
		p.advance()
	case p.isKw("int"), p.isKw("float"), p.isKw("char"), p.isKw("bool"):
		ds := p.span()
		spec, err := p.parseSpecifier()
		if err != nil {
			return nil, err
		}
		decl, err := p.parseLocalDeclaratorList(ds, spec)
		if err != nil {
			return nil, err
		}
		node.Init = decl
	default:
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Init = init
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
	}

	if !p.isOp(";") {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Cond = cond
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}

	if !p.isOp(")") {
		post, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Post = post
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseReturn(s ast.Span) (ast.Node, error) {
	p.advance()
	node := &ast.Return{StmtBase: ast.StmtBase{Base: ast.At(s)}}
	if !p.isOp(";") {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Value = val
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}
	return node, nil
}
