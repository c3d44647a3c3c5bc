package parser

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/token"
)

var typeKeywords = map[string]bool{
	"void": true, "int": true, "float": true, "char": true, "bool": true,
}

// parseSpecifier parses a declaration's base type: a built-in keyword, or a
// struct/union/enum tag (optionally followed by a body, producing the
// corresponding definition node separately — see parseExternalDeclaration
// and parseBlockItem, which call this only for the leading specifier and
// handle bodies themselves).
func (p *Parser) parseSpecifier() (*ast.Specifier, error) {
	s := p.span()
	switch {
	case p.cur().Kind == token.Keyword && typeKeywords[p.cur().Text]:
		name := p.advance().Text
		return &ast.Specifier{Base: ast.At(s), Name: name}, nil
	case p.isKw("struct"):
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.Specifier{Base: ast.At(s), Name: name.Text, IsStruct: true}, nil
	case p.isKw("union"):
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.Specifier{Base: ast.At(s), Name: name.Text, IsUnion: true}, nil
	case p.isKw("enum"):
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.Specifier{Base: ast.At(s), Name: name.Text, IsEnum: true}, nil
	default:
		return nil, p.fail("expected a type specifier, got %q", p.cur().Text)
	}
}

// parseDeclarator parses `*? name suffix*` and, if present, an `= init`
// trailer. Suffixes (`[size?]`, `(params)`) are collected outermost-first,
// matching the "ordered sequence ... read right-to-left" rule applied later
// by the semantic analyzer when building the effective type.
func (p *Parser) parseDeclarator() (*ast.Declarator, error) {
	s := p.span()
	d := &ast.Declarator{Base: ast.At(s)}
	if p.isOp("*") {
		p.advance()
		d.Pointer = true
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	d.Name = name.Text

	for {
		switch {
		case p.isOp("["):
			p.advance()
			var size ast.Expr
			if !p.isOp("]") {
				size, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			d.Suffix = append(d.Suffix, &ast.ArraySuffix{Size: size})
		case p.isOp("("):
			p.advance()
			var params []*ast.Param
			if !p.isOp(")") {
				for {
					param, err := p.parseParam()
					if err != nil {
						return nil, err
					}
					params = append(params, param)
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
			d.Suffix = append(d.Suffix, &ast.ParamSuffix{Params: params})
		default:
			goto done
		}
	}
done:
	if p.isOp("=") {
		p.advance()
		init, err := p.parseInitOrExpr()
		if err != nil {
			return nil, err
		}
		d.Init = init
	}
	return d, nil
}

// parseInitOrExpr parses either a brace initializer list or a plain
// assignment expression, as appears on the right of `=` in a declarator.
func (p *Parser) parseInitOrExpr() (ast.Node, error) {
	if p.isOp("{") {
		return p.parseInitializer()
	}
	return p.parseAssignExpr()
}

func (p *Parser) parseInitializer() (*ast.Initializer, error) {
	s := p.span()
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	init := &ast.Initializer{Base: ast.At(s)}
	if !p.isOp("}") {
		for {
			var item ast.Node
			var err error
			if p.isOp("{") {
				item, err = p.parseInitializer()
			} else {
				item, err = p.parseAssignExpr()
			}
			if err != nil {
				return nil, err
			}
			init.Inits = append(init.Inits, item)
			if p.isOp(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return init, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	s := p.span()
	spec, err := p.parseSpecifier()
	if err != nil {
		return nil, err
	}
	param := &ast.Param{Base: ast.At(s), Spec: spec}
	if p.cur().Kind == token.Identifier || p.isOp("*") {
		decl, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		param.Decl = decl
	}
	return param, nil
}

// lastSuffixIsParams reports whether d's final suffix in Suffix (the last one
// written) is a parameter list, marking it a function declarator.
func lastSuffixIsParams(d *ast.Declarator) bool {
	if len(d.Suffix) == 0 {
		return false
	}
	_, ok := d.Suffix[len(d.Suffix)-1].(*ast.ParamSuffix)
	return ok
}

func lastSuffixIsArray(d *ast.Declarator) bool {
	if len(d.Suffix) == 0 {
		return false
	}
	_, ok := d.Suffix[len(d.Suffix)-1].(*ast.ArraySuffix)
	return ok
}

// parseExternalDeclaration parses one top-level construct: a function
// definition/declaration, a variable/array declaration, a compound
// definition, or an enum definition.
func (p *Parser) parseExternalDeclaration() (ast.Node, error) {
	s := p.span()

	if p.isKw("struct") || p.isKw("union") {
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
		// Forward declaration or a variable of this compound type: rewind
		// is unnecessary since we only consumed the tag; build a Specifier
		// and fall into ordinary declarator parsing.
		spec := &ast.Specifier{Base: ast.At(s), Name: name.Text, IsStruct: !isUnion, IsUnion: isUnion}
		return p.parseDeclaratorList(s, spec)
	}

	if p.isKw("enum") {
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
	}

	spec, err := p.parseSpecifier()
	if err != nil {
		return nil, err
	}
	return p.parseDeclaratorList(s, spec)
}

func (p *Parser) parseCompoundBody(s ast.Span, name string, isUnion bool) (*ast.CompoundDefinition, error) {
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	def := &ast.CompoundDefinition{
		Base: ast.At(s),
		Spec: &ast.Specifier{Base: ast.At(s), Name: name, IsStruct: !isUnion, IsUnion: isUnion},
	}
	for !p.isOp("}") {
		ms := p.span()
		mspec, err := p.parseSpecifier()
		if err != nil {
			return nil, err
		}
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
		def.Members = append(def.Members, &ast.MemberDeclaration{Base: ast.At(ms), Spec: mspec, Decls: decls})
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parseEnumBody(s ast.Span, name string) (*ast.EnumDefinition, error) {
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	def := &ast.EnumDefinition{Base: ast.At(s), Name: name}
	for !p.isOp("}") {
		es := p.span()
		enName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl := &ast.EnumeratorDecl{Base: ast.At(es), Name: enName.Text}
		if p.isOp("=") {
			p.advance()
			val, err := p.parseAssignExpr()
			if err != nil {
				return nil, err
			}
			decl.Value = val
		}
		def.Enumerators = append(def.Enumerators, decl)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return def, nil
}

// parseDeclaratorList parses the remainder of a declaration after its
// specifier: either a function definition/declaration (a single declarator
// whose outermost suffix is a parameter list), or a comma-separated list of
// variable/array declarators terminated by `;`.
func (p *Parser) parseDeclaratorList(s ast.Span, spec *ast.Specifier) (ast.Node, error) {
	first, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}

	if lastSuffixIsParams(first) && p.isOp("{") {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDefinition{Base: ast.At(s), Spec: spec, Decl: first, Body: body}, nil
	}

	if lastSuffixIsParams(first) && !p.isOp(",") {
		if _, err := p.expectOp(";"); err != nil {
			return nil, err
		}
		return &ast.FunctionDeclaration{Base: ast.At(s), Spec: spec, Decl: first}, nil
	}

	decls := []*ast.Declarator{first}
	for p.isOp(",") {
		p.advance()
		d, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}

	if lastSuffixIsArray(first) {
		return &ast.ArrayDeclaration{Base: ast.At(s), Spec: spec, Decls: decls}, nil
	}
	return &ast.VariableDeclaration{Base: ast.At(s), Spec: spec, Decls: decls}, nil
}
