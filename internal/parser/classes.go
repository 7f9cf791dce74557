package parser

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

func (p *Parser) parseClassDeclaration() ast.Statement {
	tok := p.cur()
	cls := p.finishClass(tok)
	return &ast.ClassDeclaration{Token: tok, Class: cls}
}

func (p *Parser) parseClassExpression() ast.Expression {
	tok := p.cur()
	return p.finishClass(tok)
}

func (p *Parser) finishClass(tok token.Token) *ast.ClassExpression {
	p.expect(token.CLASS)
	var name *ast.Identifier
	if p.curIs(token.IDENT) {
		nameTok := p.cur()
		name = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
		p.advance()
	}
	var super ast.Expression
	if p.curIs(token.EXTENDS) {
		p.advance()
		super = p.parseExpression(CALL)
	}
	body := p.parseClassBody()
	return &ast.ClassExpression{Token: tok, Name: name, SuperClass: super, Body: body}
}

func (p *Parser) parseClassBody() *ast.ClassBody {
	tok := p.cur()
	p.expect(token.LBRACE)
	body := &ast.ClassBody{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.advance()
			continue
		}
		p.parseClassElement(body)
	}
	p.expect(token.RBRACE)
	return body
}

func (p *Parser) parseClassElement(body *ast.ClassBody) {
	static := false
	if p.curIs(token.IDENT) && p.cur().Literal == kwStatic && !p.peekIs(token.LPAREN) && !p.peekIs(token.ASSIGN) {
		static = true
		p.advance()
	}

	isAsync := false
	isGenerator := false
	kind := ast.MethodNormal

	if p.curIs(token.IDENT) && p.cur().Literal == kwAsync && !p.peekIs(token.LPAREN) && !p.peekIs(token.ASSIGN) {
		isAsync = true
		p.advance()
	}
	if p.curIs(token.STAR) {
		isGenerator = true
		p.advance()
	}
	if p.curIs(token.IDENT) && (p.cur().Literal == kwGet || p.cur().Literal == kwSet) && !p.peekIs(token.LPAREN) && !p.peekIs(token.ASSIGN) {
		if p.cur().Literal == kwGet {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
		p.advance()
	}

	computed := false
	var key ast.Expression
	keyTok := p.cur()
	switch {
	case p.curIs(token.LBRACKET):
		computed = true
		p.advance()
		key = p.parseExpression(ASSIGN)
		p.expect(token.RBRACKET)
	case p.curIs(token.STRING):
		key = p.parseStringLiteral()
	case p.curIs(token.NUMBER):
		key = p.parseNumericLiteral()
	case p.curIs(token.PRIVATE_NAME):
		key = &ast.PrivateName{Token: keyTok, Name: keyTok.Literal}
		p.advance()
	default:
		key = &ast.Identifier{Token: keyTok, Name: keyTok.Literal}
		p.advance()
	}

	if p.curIs(token.LPAREN) {
		if ident, ok := key.(*ast.Identifier); ok && ident.Name == "constructor" && kind == ast.MethodNormal && !static {
			kind = ast.MethodConstructor
		}
		fn := p.parseMethodBody(isAsync, isGenerator)
		body.Methods = append(body.Methods, &ast.MethodDefinition{
			Token: keyTok, Key: key, Value: fn, Kind: kind, Static: static, Computed: computed,
		})
		return
	}

	field := &ast.PropertyDefinition{Token: keyTok, Key: key, Static: static, Computed: computed}
	if p.curIs(token.ASSIGN) {
		p.advance()
		field.Value = p.parseExpression(ASSIGN)
	}
	p.consumeSemicolon()
	body.Fields = append(body.Fields, field)
}
