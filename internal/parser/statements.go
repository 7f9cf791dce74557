package parser

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// production. Returns nil (with a recorded diagnostic) on unrecoverable
// input; the caller synchronizes and keeps going.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMI:
		tok := p.cur()
		p.advance()
		return &ast.EmptyStatement{Token: tok}
	case token.VAR, token.LET, token.CONST:
		return p.parseVariableStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.DEBUGGER:
		tok := p.cur()
		p.advance()
		p.consumeSemicolon()
		return &ast.DebuggerStatement{Token: tok}
	case token.IMPORT:
		return p.parseImportDeclaration()
	case token.EXPORT:
		return p.parseExportDeclaration()
	case token.IDENT:
		if p.cur().Literal == kwAsync && p.peekIs(token.FUNCTION) {
			return p.parseFunctionDeclaration()
		}
		if p.peekIs(token.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// consumeSemicolon implements ASI: an explicit ';' is consumed; otherwise a
// line terminator before the next token, a '}', or EOF all satisfy the
// rule silently (spec.md §4.1 NewlineBefore flag).
func (p *Parser) consumeSemicolon() {
	if p.curIs(token.SEMI) {
		p.advance()
		return
	}
	if p.curIs(token.RBRACE) || p.curIs(token.EOF) || p.cur().NewlineBefore {
		return
	}
	p.errorf(p.cur().Pos, "expected ; got %s", p.cur().Type)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.cur()
	p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseVariableStatement() ast.Statement {
	tok := p.cur()
	kind := declKindOf(tok.Type)
	p.advance()
	decl := &ast.VariableDeclaration{Token: tok, Kind: kind}
	for {
		target := p.parseBindingTarget()
		d := &ast.VariableDeclarator{Token: p.cur(), Target: target}
		if p.curIs(token.ASSIGN) {
			p.advance()
			d.Init = p.parseExpression(ASSIGN)
		} else if kind == ast.DeclConst {
			p.errorf(tok.Pos, "missing initializer in const declaration")
		}
		decl.Declarations = append(decl.Declarations, d)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.consumeSemicolon()
	return decl
}

func declKindOf(t token.Type) ast.DeclKind {
	switch t {
	case token.LET:
		return ast.DeclLet
	case token.CONST:
		return ast.DeclConst
	default:
		return ast.DeclVar
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	tok := p.cur()
	isAsync := false
	if p.curIs(token.IDENT) && p.cur().Literal == kwAsync {
		isAsync = true
		p.advance()
	}
	p.expect(token.FUNCTION)
	isGenerator := false
	if p.curIs(token.STAR) {
		isGenerator = true
		p.advance()
	}
	nameTok := p.cur()
	var name *ast.Identifier
	if p.curIs(token.IDENT) {
		name = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
		p.advance()
	}
	params := p.parseParamList()
	p.inFunction++
	if isAsync {
		p.inAsync++
	}
	if isGenerator {
		p.inGenerator++
	}
	body := p.parseBlockStatement()
	if isGenerator {
		p.inGenerator--
	}
	if isAsync {
		p.inAsync--
	}
	p.inFunction--
	fn := &ast.FunctionLiteral{Token: tok, Name: name, Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator}
	return &ast.FunctionDeclaration{Token: tok, Function: fn}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	return p.parseFunctionExpressionAsync(false)
}

func (p *Parser) parseFunctionExpressionAsync(isAsync bool) ast.Expression {
	tok := p.cur()
	p.expect(token.FUNCTION)
	isGenerator := false
	if p.curIs(token.STAR) {
		isGenerator = true
		p.advance()
	}
	var name *ast.Identifier
	if p.curIs(token.IDENT) {
		nameTok := p.cur()
		name = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
		p.advance()
	}
	params := p.parseParamList()
	p.inFunction++
	if isAsync {
		p.inAsync++
	}
	if isGenerator {
		p.inGenerator++
	}
	body := p.parseBlockStatement()
	if isGenerator {
		p.inGenerator--
	}
	if isAsync {
		p.inAsync--
	}
	p.inFunction--
	return &ast.FunctionLiteral{Token: tok, Name: name, Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	var arg ast.Expression
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && !p.cur().NewlineBefore {
		arg = p.parseExpression(LOWEST)
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	if p.cur().NewlineBefore {
		p.errorf(tok.Pos, "illegal newline after throw")
	}
	arg := p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	var label *ast.Identifier
	if p.curIs(token.IDENT) && !p.cur().NewlineBefore {
		labelTok := p.cur()
		label = &ast.Identifier{Token: labelTok, Name: labelTok.Literal}
		p.advance()
	}
	p.consumeSemicolon()
	return &ast.BreakStatement{Token: tok, Label: label}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	var label *ast.Identifier
	if p.curIs(token.IDENT) && !p.cur().NewlineBefore {
		labelTok := p.cur()
		label = &ast.Identifier{Token: labelTok, Name: labelTok.Literal}
		p.advance()
	}
	p.consumeSemicolon()
	return &ast.ContinueStatement{Token: tok, Label: label}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	cons := p.parseStatement()
	var alt ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	test := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.consumeSemicolon()
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

// parseForStatement handles the three for-loop shapes (classic, for-in,
// for-of) by parsing the head's first clause once and branching on the
// token that follows it (spec.md §4.2).
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	isAwait := false
	if p.curIs(token.IDENT) && p.cur().Literal == kwAwait {
		isAwait = true
		p.advance()
	}
	p.expect(token.LPAREN)

	var init ast.Node
	var declKind ast.DeclKind
	hasDecl := false
	if p.curIs(token.VAR) || p.curIs(token.LET) || p.curIs(token.CONST) {
		hasDecl = true
		declKind = declKindOf(p.cur().Type)
		declTok := p.cur()
		p.advance()
		target := p.parseBindingTarget()
		if p.curIs(token.IN) || (p.curIs(token.IDENT) && p.cur().Literal == kwOf) {
			return p.finishForInOf(tok, declTok, declKind, target, isAwait)
		}
		d := &ast.VariableDeclarator{Token: declTok, Target: target}
		if p.curIs(token.ASSIGN) {
			p.advance()
			d.Init = p.parseExpression(ASSIGN)
		}
		decl := &ast.VariableDeclaration{Token: declTok, Kind: declKind, Declarations: []*ast.VariableDeclarator{d}}
		for p.curIs(token.COMMA) {
			p.advance()
			target2 := p.parseBindingTarget()
			d2 := &ast.VariableDeclarator{Token: p.cur(), Target: target2}
			if p.curIs(token.ASSIGN) {
				p.advance()
				d2.Init = p.parseExpression(ASSIGN)
			}
			decl.Declarations = append(decl.Declarations, d2)
		}
		init = decl
	} else if !p.curIs(token.SEMI) {
		expr := p.parseExpression(LOWEST)
		if p.curIs(token.IN) || (p.curIs(token.IDENT) && p.cur().Literal == kwOf) {
			return p.finishForInOfExpr(tok, expr, isAwait)
		}
		init = expr
	}
	_ = hasDecl
	p.expect(token.SEMI)

	var test ast.Expression
	if !p.curIs(token.SEMI) {
		test = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMI)

	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression(LOWEST)
	}
	p.expect(token.RPAREN)

	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	return &ast.ForStatement{Token: tok, Init: init, Test: test, Update: update, Body: body}
}

func (p *Parser) finishForInOf(tok, declTok token.Token, kind ast.DeclKind, target ast.Pattern, isAwait bool) ast.Statement {
	isOf := p.curIs(token.IDENT) && p.cur().Literal == kwOf
	p.advance() // consume "in" or "of"
	right := p.parseExpression(ASSIGN)
	p.expect(token.RPAREN)
	left := ast.Node(&ast.VariableDeclaration{Token: declTok, Kind: kind, Declarations: []*ast.VariableDeclarator{{Token: declTok, Target: target}}})
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	if isOf {
		return &ast.ForOfStatement{Token: tok, Left: left, Right: right, Body: body, IsAwait: isAwait}
	}
	return &ast.ForInStatement{Token: tok, Left: left, Right: right, Body: body}
}

func (p *Parser) finishForInOfExpr(tok token.Token, leftExpr ast.Expression, isAwait bool) ast.Statement {
	isOf := p.curIs(token.IDENT) && p.cur().Literal == kwOf
	p.advance()
	right := p.parseExpression(ASSIGN)
	p.expect(token.RPAREN)
	left := toPattern(leftExpr)
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	if isOf {
		return &ast.ForOfStatement{Token: tok, Left: left, Right: right, Body: body, IsAwait: isAwait}
	}
	return &ast.ForInStatement{Token: tok, Left: left, Right: right, Body: body}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	p.expect(token.LPAREN)
	disc := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	p.inSwitch++
	sw := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		c := &ast.SwitchCase{Token: p.cur()}
		if p.curIs(token.CASE) {
			p.advance()
			c.Test = p.parseExpression(LOWEST)
		} else {
			p.expect(token.DEFAULT)
		}
		p.expect(token.COLON)
		for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			c.Consequent = append(c.Consequent, p.parseStatement())
		}
		sw.Cases = append(sw.Cases, c)
	}
	p.inSwitch--
	p.expect(token.RBRACE)
	return sw
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	block := p.parseBlockStatement()
	var handler *ast.CatchClause
	var finalizer *ast.BlockStatement
	if p.curIs(token.CATCH) {
		catchTok := p.cur()
		p.advance()
		var param ast.Pattern
		if p.curIs(token.LPAREN) {
			p.advance()
			param = p.parseBindingTarget()
			p.expect(token.RPAREN)
		}
		body := p.parseBlockStatement()
		handler = &ast.CatchClause{Token: catchTok, Param: param, Body: body}
	}
	if p.curIs(token.FINALLY) {
		p.advance()
		finalizer = p.parseBlockStatement()
	}
	if handler == nil && finalizer == nil {
		p.errorf(tok.Pos, "missing catch or finally after try")
	}
	return &ast.TryStatement{Token: tok, Block: block, Handler: handler, Finalizer: finalizer}
}

func (p *Parser) parseWithStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	p.expect(token.LPAREN)
	obj := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WithStatement{Token: tok, Object: obj, Body: body}
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	tok := p.cur()
	label := &ast.Identifier{Token: tok, Name: tok.Literal}
	p.advance()
	p.expect(token.COLON)
	body := p.parseStatement()
	return &ast.LabeledStatement{Token: tok, Label: label, Body: body}
}

func (p *Parser) parseImportDeclaration() ast.Statement {
	tok := p.cur()
	p.advance()
	decl := &ast.ImportDeclaration{Token: tok}
	if p.curIs(token.STRING) {
		src := p.cur()
		p.advance()
		decl.Source = &ast.StringLiteral{Token: src, Value: src.Literal}
		p.consumeSemicolon()
		return decl
	}
	if p.curIs(token.IDENT) {
		nameTok := p.cur()
		p.advance()
		decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{Local: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	if p.curIs(token.STAR) {
		p.advance()
		p.expectContextual("as")
		nsTok := p.cur()
		p.advance()
		decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{
			Imported: "*",
			Local:    &ast.Identifier{Token: nsTok, Name: nsTok.Literal},
		})
	}
	if p.curIs(token.LBRACE) {
		p.advance()
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			impTok := p.cur()
			p.advance()
			local := impTok
			if p.curIs(token.IDENT) && p.cur().Literal == "as" {
				p.advance()
				local = p.cur()
				p.advance()
			}
			decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{
				Imported: impTok.Literal,
				Local:    &ast.Identifier{Token: local, Name: local.Literal},
			})
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RBRACE)
	}
	p.expectContextual("from")
	src := p.cur()
	p.expect(token.STRING)
	decl.Source = &ast.StringLiteral{Token: src, Value: src.Literal}
	p.consumeSemicolon()
	return decl
}

// expectContextual advances past an IDENT token carrying the given
// contextual-keyword spelling ("from", "as", ...), recording a diagnostic
// if it doesn't match.
func (p *Parser) expectContextual(word string) {
	if p.curIs(token.IDENT) && p.cur().Literal == word {
		p.advance()
		return
	}
	p.errorf(p.cur().Pos, "expected %q, got %s", word, p.cur().Type)
}

func (p *Parser) parseExportDeclaration() ast.Statement {
	tok := p.cur()
	p.advance()
	if p.curIs(token.DEFAULT) {
		p.advance()
		var decl ast.Node
		switch {
		case p.curIs(token.FUNCTION):
			decl = p.parseFunctionDeclaration()
		case p.curIs(token.CLASS):
			decl = p.parseClassDeclaration()
		default:
			decl = p.parseExpression(ASSIGN)
			p.consumeSemicolon()
		}
		return &ast.ExportDefaultDeclaration{Token: tok, Declaration: decl}
	}
	if p.curIs(token.LBRACE) {
		p.advance()
		var specs []*ast.ExportSpecifier
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			localTok := p.cur()
			p.advance()
			exportedTok := localTok
			if p.curIs(token.IDENT) && p.cur().Literal == "as" {
				p.advance()
				exportedTok = p.cur()
				p.advance()
			}
			specs = append(specs, &ast.ExportSpecifier{
				Local:    &ast.Identifier{Token: localTok, Name: localTok.Literal},
				Exported: &ast.Identifier{Token: exportedTok, Name: exportedTok.Literal},
			})
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RBRACE)
		p.consumeSemicolon()
		return &ast.ExportNamedDeclaration{Token: tok, Specifiers: specs}
	}
	var decl ast.Statement
	switch p.cur().Type {
	case token.VAR, token.LET, token.CONST:
		decl = p.parseVariableStatement()
	case token.FUNCTION:
		decl = p.parseFunctionDeclaration()
	case token.CLASS:
		decl = p.parseClassDeclaration()
	default:
		p.errorf(p.cur().Pos, "unexpected token after export: %s", p.cur().Type)
	}
	return &ast.ExportNamedDeclaration{Token: tok, Declaration: decl}
}
