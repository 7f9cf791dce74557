package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// contextual keyword spellings; these lex as IDENT and are reinterpreted
// positionally, matching how the teacher treats its own contextual
// keywords (HELPER, STEP) in the prefix-registration table.
const (
	kwAsync  = "async"
	kwAwait  = "await"
	kwYield  = "yield"
	kwGet    = "get"
	kwSet    = "set"
	kwOf     = "of"
	kwStatic = "static"
)

func (p *Parser) registerPrefixFns() {
	p.registerPrefix(token.IDENT, p.parseIdentifierOrContextual)
	p.registerPrefix(token.NUMBER, p.parseNumericLiteral)
	p.registerPrefix(token.BIGINT, p.parseBigIntLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.THIS, p.parseThisExpression)
	p.registerPrefix(token.SUPER, p.parseSuperExpression)
	p.registerPrefix(token.REGEX, p.parseRegExpLiteral)
	p.registerPrefix(token.TEMPLATE_HEAD, p.parseTemplateLiteral)
	p.registerPrefix(token.TEMPLATE_NOSUB, p.parseTemplateLiteral)

	p.registerPrefix(token.NOT, p.parseUnaryExpression)
	p.registerPrefix(token.TILDE, p.parseUnaryExpression)
	p.registerPrefix(token.PLUS, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.TYPEOF, p.parseUnaryExpression)
	p.registerPrefix(token.VOID, p.parseUnaryExpression)
	p.registerPrefix(token.DELETE, p.parseUnaryExpression)
	p.registerPrefix(token.INC, p.parseUpdatePrefix)
	p.registerPrefix(token.DEC, p.parseUpdatePrefix)

	p.registerPrefix(token.LPAREN, p.parseParenOrArrow)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.FUNCTION, p.parseFunctionExpression)
	p.registerPrefix(token.CLASS, p.parseClassExpression)
	p.registerPrefix(token.NEW, p.parseNewExpression)
	p.registerPrefix(token.ELLIPSIS, p.parseSpreadElement)
}

func (p *Parser) registerInfixFns() {
	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STARSTAR,
		token.EQ, token.NE, token.SEQ, token.SNE,
		token.LT, token.GT, token.LE, token.GE,
		token.SHL, token.SHR, token.USHR,
		token.AND, token.OR, token.XOR,
		token.INSTANCEOF, token.IN,
	} {
		p.registerInfix(t, p.parseBinaryExpression)
	}
	p.registerInfix(token.LOGAND, p.parseLogicalExpression)
	p.registerInfix(token.LOGOR, p.parseLogicalExpression)
	p.registerInfix(token.NULLISH, p.parseLogicalExpression)

	for _, t := range []token.Type{
		token.ASSIGN, token.PLUSEQ, token.MINUSEQ, token.STAREQ, token.SLASHEQ,
		token.PERCENTEQ, token.STARSTAREQ, token.SHLEQ, token.SHREQ, token.USHREQ,
		token.ANDEQ, token.OREQ, token.XOREQ, token.LOGANDEQ, token.LOGOREQ, token.NULLISHEQ,
	} {
		p.registerInfix(t, p.parseAssignmentExpression)
	}

	p.registerInfix(token.QUESTION, p.parseConditionalExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.OPTCHAIN, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseComputedMemberExpression)
	p.registerInfix(token.INC, p.parseUpdatePostfix)
	p.registerInfix(token.DEC, p.parseUpdatePostfix)
	p.registerInfix(token.TEMPLATE_HEAD, p.parseTaggedTemplate)
	p.registerInfix(token.TEMPLATE_NOSUB, p.parseTaggedTemplate)
	p.registerInfix(token.COMMA, p.parseSequenceExpression)
}

// parseExpression is the Pratt-parser driver: parse a prefix production,
// then fold in infix/postfix productions whose precedence exceeds prec.
func (p *Parser) parseExpression(prec int) ast.Expression {
	tok := p.cur()

	if tok.Type == token.IDENT && tok.Literal == kwYield && p.inGenerator > 0 {
		return p.parseYieldExpression()
	}
	if tok.Type == token.IDENT && tok.Literal == kwAwait && p.inAsync > 0 {
		return p.parseAwaitExpression()
	}
	if tok.Type == token.IDENT && tok.Literal == kwAsync && (p.peekIs(token.FUNCTION) || p.startsArrowAfterAsync()) {
		return p.parseAsyncPrefixed()
	}

	prefix, ok := p.prefixFns[tok.Type]
	if !ok {
		p.errorf(tok.Pos, "unexpected token %s in expression position", tok.Type)
		p.advance()
		return nil
	}
	left := prefix()

	for !p.curIs(token.SEMI) && prec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) startsArrowAfterAsync() bool {
	peek := p.peek(1)
	return peek.Type == token.IDENT || peek.Type == token.LPAREN
}

func (p *Parser) parseAsyncPrefixed() ast.Expression {
	p.advance() // consume "async"
	if p.curIs(token.FUNCTION) {
		return p.parseFunctionExpressionAsync(true)
	}
	return p.parseArrowFromHere(true)
}

func (p *Parser) parseIdentifierOrContextual() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseNumericLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	val, err := strconv.ParseFloat(normalizeNumericLiteral(tok.Literal), 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid number literal %q", tok.Literal)
	}
	return &ast.NumericLiteral{Token: tok, Value: val, Raw: tok.Literal}
}

// normalizeNumericLiteral strips digit separators and maps non-decimal
// prefixes so strconv can parse what the lexer accepted (spec.md §4.1).
func normalizeNumericLiteral(raw string) string {
	s := strings.ReplaceAll(raw, "_", "")
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		if n, err := strconv.ParseInt(s[2:], 16, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		if n, err := strconv.ParseInt(s[2:], 8, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		if n, err := strconv.ParseInt(s[2:], 2, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return s
}

func (p *Parser) parseBigIntLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.BigIntLiteral{Token: tok, Raw: tok.Literal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.NullLiteral{Token: tok}
}

func (p *Parser) parseThisExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.ThisExpression{Token: tok}
}

func (p *Parser) parseSuperExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.SuperExpression{Token: tok}
}

func (p *Parser) parseRegExpLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	pattern, flags := splitRegex(tok.Literal)
	return &ast.RegExpLiteral{Token: tok, Pattern: pattern, Flags: flags}
}

func splitRegex(lit string) (pattern, flags string) {
	if len(lit) < 2 || lit[0] != '/' {
		return lit, ""
	}
	end := strings.LastIndexByte(lit, '/')
	if end <= 0 {
		return lit[1:], ""
	}
	return lit[1:end], lit[end+1:]
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Token: tok, Operator: unaryOperatorText(tok), Operand: operand}
}

func unaryOperatorText(tok token.Token) string {
	switch tok.Type {
	case token.TYPEOF:
		return "typeof"
	case token.VOID:
		return "void"
	case token.DELETE:
		return "delete"
	default:
		return tok.Literal
	}
}

func (p *Parser) parseUpdatePrefix() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: operand, Prefix: true}
}

func (p *Parser) parseUpdatePostfix(left ast.Expression) ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: left, Prefix: false}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.LogicalExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	p.advance()
	value := p.parseExpression(ASSIGN - 1)
	var target ast.Node = left
	if tok.Type == token.ASSIGN {
		target = toPattern(left)
	}
	return &ast.AssignmentExpression{Token: tok, Operator: tok.Literal, Target: target, Value: value}
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	tok := p.cur()
	p.advance()
	cons := p.parseExpression(ASSIGN)
	p.expect(token.COLON)
	alt := p.parseExpression(ASSIGN)
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseSequenceExpression(first ast.Expression) ast.Expression {
	tok := p.cur()
	exprs := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseExpression(ASSIGN))
	}
	return &ast.SequenceExpression{Token: tok, Expressions: exprs}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.cur()
	args := p.parseArgumentList()
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseArgumentList() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			args = append(args, p.parseSpreadElement())
		} else {
			args = append(args, p.parseExpression(ASSIGN))
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	tok := p.cur()
	optional := tok.Type == token.OPTCHAIN
	p.advance()
	if optional && p.curIs(token.LPAREN) {
		args := p.parseArgumentList()
		return &ast.CallExpression{Token: tok, Callee: obj, Args: args, Optional: true}
	}
	if p.curIs(token.LBRACKET) {
		return p.finishComputedMember(obj, tok, optional)
	}
	propTok := p.cur()
	if propTok.Type != token.IDENT && !propTok.Type.IsKeyword() && propTok.Type != token.PRIVATE_NAME {
		p.errorf(propTok.Pos, "expected property name after %s", tok.Type)
	}
	p.advance()
	var prop ast.Expression
	if propTok.Type == token.PRIVATE_NAME {
		prop = &ast.PrivateName{Token: propTok, Name: propTok.Literal}
	} else {
		prop = &ast.Identifier{Token: propTok, Name: propTok.Literal}
	}
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop, Optional: optional}
}

func (p *Parser) parseComputedMemberExpression(obj ast.Expression) ast.Expression {
	tok := p.cur()
	return p.finishComputedMember(obj, tok, false)
}

func (p *Parser) finishComputedMember(obj ast.Expression, tok token.Token, optional bool) ast.Expression {
	p.expect(token.LBRACKET)
	prop := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop, Computed: true, Optional: optional}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	// The callee is a member chain only; the first argument list belongs to
	// `new`, and any call or member access after it applies to the result.
	callee := p.parseExpression(CALL)
	for p.curIs(token.DOT) || p.curIs(token.LBRACKET) {
		callee = p.infixFns[p.cur().Type](callee)
	}
	var args []ast.Expression
	if p.curIs(token.LPAREN) {
		args = p.parseArgumentList()
	}
	return &ast.NewExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseSpreadElement() ast.Expression {
	tok := p.cur()
	p.advance()
	arg := p.parseExpression(ASSIGN)
	return &ast.SpreadElement{Token: tok, Arg: arg}
}

func (p *Parser) parseYieldExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	delegate := false
	if p.curIs(token.STAR) {
		delegate = true
		p.advance()
	}
	var arg ast.Expression
	if !p.curIs(token.SEMI) && !p.curIs(token.RPAREN) && !p.curIs(token.RBRACE) &&
		!p.curIs(token.RBRACKET) && !p.curIs(token.COMMA) && !p.curIs(token.EOF) && !p.cur().NewlineBefore {
		arg = p.parseExpression(ASSIGN)
	}
	return &ast.YieldExpression{Token: tok, Argument: arg, Delegate: delegate}
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	arg := p.parseExpression(UNARY)
	return &ast.AwaitExpression{Token: tok, Argument: arg}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	var elems []ast.Expression
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			elems = append(elems, p.parseSpreadElement())
		} else {
			elems = append(elems, p.parseExpression(ASSIGN))
		}
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	var props []*ast.ObjectProperty
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		props = append(props, p.parseObjectProperty())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.ObjectLiteral{Token: tok, Properties: props}
}

func (p *Parser) parseObjectProperty() *ast.ObjectProperty {
	tok := p.cur()

	if tok.Type == token.ELLIPSIS {
		p.advance()
		val := p.parseExpression(ASSIGN)
		return &ast.ObjectProperty{Token: tok, Kind: ast.PropSpread, Value: val}
	}

	isGetSet := tok.Type == token.IDENT && (tok.Literal == kwGet || tok.Literal == kwSet) &&
		!p.peekIs(token.COLON) && !p.peekIs(token.COMMA) && !p.peekIs(token.RPAREN) && !p.peekIs(token.RBRACE)
	isAsync := tok.Type == token.IDENT && tok.Literal == kwAsync &&
		!p.peekIs(token.COLON) && !p.peekIs(token.COMMA) && !p.peekIs(token.RBRACE)
	isGenerator := false
	asyncFlag := false

	if isAsync {
		p.advance()
		asyncFlag = true
	}
	if p.curIs(token.STAR) {
		isGenerator = true
		p.advance()
	}

	kind := ast.PropInit
	if isGetSet {
		if tok.Literal == kwGet {
			kind = ast.PropGet
		} else {
			kind = ast.PropSet
		}
		p.advance()
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

	if kind == ast.PropGet || kind == ast.PropSet || p.curIs(token.LPAREN) {
		fn := p.parseMethodBody(asyncFlag, isGenerator)
		if kind == ast.PropInit {
			kind = ast.PropMethod
		}
		return &ast.ObjectProperty{Token: tok, Key: key, Value: fn, Computed: computed, Kind: kind}
	}

	if p.curIs(token.COLON) {
		p.advance()
		val := p.parseExpression(ASSIGN)
		return &ast.ObjectProperty{Token: tok, Key: key, Value: val, Computed: computed, Kind: ast.PropInit}
	}

	// Shorthand `{ x }` or `{ x = default }` (the latter only valid when
	// later re-parsed as a pattern, spec.md §4.2).
	ident, _ := key.(*ast.Identifier)
	var val ast.Expression = ident
	if p.curIs(token.ASSIGN) {
		p.advance()
		def := p.parseExpression(ASSIGN)
		val = &ast.AssignmentPattern{Target: ident, Default: def}
	}
	return &ast.ObjectProperty{Token: tok, Key: key, Value: val, Shorthand: true, Kind: ast.PropInit}
}

func (p *Parser) parseMethodBody(isAsync, isGenerator bool) *ast.FunctionLiteral {
	tok := p.cur()
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
	return &ast.FunctionLiteral{Token: tok, Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.cur()
	tmpl := &ast.TemplateLiteral{Token: tok}
	tmpl.Quasis = append(tmpl.Quasis, &ast.TemplateElement{Token: tok, Cooked: tok.Literal, Raw: tok.Literal, Tail: tok.Type == token.TEMPLATE_NOSUB})
	if tok.Type == token.TEMPLATE_NOSUB {
		p.advance()
		return tmpl
	}
	p.advance()
	for {
		expr := p.parseExpression(LOWEST)
		tmpl.Expressions = append(tmpl.Expressions, expr)
		// The current token is the '}' that scan() already tokenized (and
		// consumed) as RBRACE; resume lexing just after it as template
		// content rather than as ordinary tokens.
		lx := p.cursor.lexer
		cont := lx.ReadTemplateContinuation()
		tmpl.Quasis = append(tmpl.Quasis, &ast.TemplateElement{Token: cont, Cooked: cont.Literal, Raw: cont.Literal, Tail: cont.Type == token.TEMPLATE_TAIL})
		if cont.Type == token.TEMPLATE_TAIL {
			p.cursor = NewTokenCursorFromToken(lx, lx.NextToken())
			break
		}
		p.cursor = NewTokenCursorFromToken(lx, lx.NextToken())
	}
	return tmpl
}

func (p *Parser) parseTaggedTemplate(tag ast.Expression) ast.Expression {
	quasi := p.parseTemplateLiteral().(*ast.TemplateLiteral)
	return &ast.TaggedTemplateExpression{Tag: tag, Quasi: quasi}
}

// parseParenOrArrow disambiguates `(expr)` from an arrow function's
// parameter list by speculatively parsing an arrow parameter list followed
// by `=>`, and rewinding to parse a parenthesized expression if that fails.
func (p *Parser) parseParenOrArrow() ast.Expression {
	mark := p.cursor.Mark()
	if arrow := p.tryParseArrowParams(); arrow != nil {
		return arrow
	}
	p.cursor = p.cursor.ResetTo(mark)

	p.advance() // consume (
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) tryParseArrowParams() ast.Expression {
	tok := p.cur()
	params, ok := p.tryParseParamListSpeculative()
	if !ok {
		return nil
	}
	if !p.curIs(token.ARROW) || p.cur().NewlineBefore {
		return nil
	}
	p.advance()
	return p.finishArrow(tok, params, false)
}

func (p *Parser) finishArrow(tok token.Token, params []*ast.Param, isAsync bool) ast.Expression {
	fn := &ast.FunctionLiteral{Token: tok, Params: params, IsArrow: true, IsAsync: isAsync}
	if isAsync {
		p.inAsync++
	}
	p.inFunction++
	if p.curIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		fn.ExprBody = p.parseExpression(ASSIGN)
	}
	p.inFunction--
	if isAsync {
		p.inAsync--
	}
	return fn
}

func (p *Parser) parseArrowFromHere(isAsync bool) ast.Expression {
	tok := p.cur()
	if p.curIs(token.IDENT) {
		param := &ast.Param{Pattern: &ast.Identifier{Token: p.cur(), Name: p.cur().Literal}}
		p.advance()
		p.expect(token.ARROW)
		return p.finishArrow(tok, []*ast.Param{param}, isAsync)
	}
	params, ok := p.tryParseParamListSpeculative()
	if !ok {
		p.errorf(p.cur().Pos, "expected arrow function parameter list")
		return nil
	}
	p.expect(token.ARROW)
	return p.finishArrow(tok, params, isAsync)
}

// toPattern retro-converts an already-parsed expression into a binding
// pattern for destructuring assignment targets, e.g. `[a, b] = f()` or
// `({x, y} = obj)` (spec.md §4.2).
func toPattern(e ast.Expression) ast.Node {
	switch v := e.(type) {
	case *ast.ArrayLiteral:
		elems := make([]ast.Pattern, len(v.Elements))
		for i, el := range v.Elements {
			if el == nil {
				continue
			}
			elems[i] = toPattern(el).(ast.Pattern)
		}
		return &ast.ArrayPattern{Token: v.Token, Elements: elems}
	case *ast.ObjectLiteral:
		op := &ast.ObjectPattern{Token: v.Token}
		for _, prop := range v.Properties {
			if prop.Kind == ast.PropSpread {
				op.Rest = &ast.RestElement{Target: toPattern(prop.Value).(ast.Pattern)}
				continue
			}
			op.Properties = append(op.Properties, &ast.ObjectPatternProperty{
				Key: prop.Key, Target: toPattern(prop.Value).(ast.Pattern),
				Computed: prop.Computed, Shorthand: prop.Shorthand,
			})
		}
		return op
	case *ast.AssignmentExpression:
		return &ast.AssignmentPattern{Target: toPattern(v.Target.(ast.Expression)).(ast.Pattern), Default: v.Value}
	case *ast.SpreadElement:
		return &ast.RestElement{Token: v.Token, Target: toPattern(v.Arg).(ast.Pattern)}
	case ast.Pattern:
		return v
	default:
		return e
	}
}
