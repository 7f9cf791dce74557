package parser

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// parseBindingTarget parses a binding pattern directly (not via
// expression-then-retro-convert): a plain identifier, or a destructuring
// array/object pattern, as used by var/let/const declarators, catch
// clauses, and for-in/for-of left-hand sides.
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.cur().Type {
	case token.LBRACKET:
		return p.parseArrayBindingPattern()
	case token.LBRACE:
		return p.parseObjectBindingPattern()
	default:
		tok := p.cur()
		if tok.Type != token.IDENT {
			p.errorf(tok.Pos, "expected binding identifier, got %s", tok.Type)
		}
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

func (p *Parser) parseArrayBindingPattern() ast.Pattern {
	tok := p.cur()
	p.advance()
	var elems []ast.Pattern
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			restTok := p.cur()
			p.advance()
			elems = append(elems, &ast.RestElement{Token: restTok, Target: p.parseBindingTarget()})
		} else {
			elems = append(elems, p.parseBindingWithDefault())
		}
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayPattern{Token: tok, Elements: elems}
}

func (p *Parser) parseBindingWithDefault() ast.Pattern {
	target := p.parseBindingTarget()
	if p.curIs(token.ASSIGN) {
		p.advance()
		def := p.parseExpression(ASSIGN)
		return &ast.AssignmentPattern{Target: target, Default: def}
	}
	return target
}

func (p *Parser) parseObjectBindingPattern() ast.Pattern {
	tok := p.cur()
	p.advance()
	op := &ast.ObjectPattern{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			restTok := p.cur()
			p.advance()
			op.Rest = &ast.RestElement{Token: restTok, Target: p.parseBindingTarget()}
			break
		}
		computed := false
		var key ast.Expression
		keyTok := p.cur()
		if p.curIs(token.LBRACKET) {
			computed = true
			p.advance()
			key = p.parseExpression(ASSIGN)
			p.expect(token.RBRACKET)
		} else if p.curIs(token.STRING) {
			key = p.parseStringLiteral()
		} else if p.curIs(token.NUMBER) {
			key = p.parseNumericLiteral()
		} else {
			key = &ast.Identifier{Token: keyTok, Name: keyTok.Literal}
			p.advance()
		}

		prop := &ast.ObjectPatternProperty{Token: keyTok, Key: key, Computed: computed}
		if p.curIs(token.COLON) {
			p.advance()
			prop.Target = p.parseBindingWithDefault()
		} else {
			ident, _ := key.(*ast.Identifier)
			prop.Shorthand = true
			if p.curIs(token.ASSIGN) {
				p.advance()
				def := p.parseExpression(ASSIGN)
				prop.Target = &ast.AssignmentPattern{Target: ident, Default: def}
			} else {
				prop.Target = ident
			}
		}
		op.Properties = append(op.Properties, prop)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return op
}

// parseParamList parses a function's formal parameter list, consuming the
// surrounding parentheses.
func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			params = append(params, &ast.Param{Pattern: p.parseBindingTarget(), Rest: true})
			break
		}
		target := p.parseBindingTarget()
		param := &ast.Param{Pattern: target}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// tryParseParamListSpeculative attempts to parse the current position as a
// parenthesized formal parameter list. It reports ok=false (without
// recording diagnostics) on the first sign the input isn't a valid
// parameter list, so the caller can fall back to parsing it as a
// parenthesized expression instead.
func (p *Parser) tryParseParamListSpeculative() ([]*ast.Param, bool) {
	if !p.curIs(token.LPAREN) {
		return nil, false
	}
	mark := p.cursor.Mark()
	silence := p.errors
	p.advance()
	var params []*ast.Param
	ok := true
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.EOF) {
			ok = false
			break
		}
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			if !p.curIs(token.IDENT) && !p.curIs(token.LBRACKET) && !p.curIs(token.LBRACE) {
				ok = false
				break
			}
			params = append(params, &ast.Param{Pattern: p.parseBindingTarget(), Rest: true})
			break
		}
		if !p.curIs(token.IDENT) && !p.curIs(token.LBRACKET) && !p.curIs(token.LBRACE) {
			ok = false
			break
		}
		target := p.parseBindingTarget()
		param := &ast.Param{Pattern: target}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if ok && p.curIs(token.RPAREN) {
		p.advance()
	} else {
		ok = false
	}
	if !ok {
		p.cursor = p.cursor.ResetTo(mark)
		p.errors = silence
		return nil, false
	}
	return params, true
}
