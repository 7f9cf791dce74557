// Package parser turns a token stream into the typed AST defined by
// internal/ast. It is a Pratt (precedence-climbing) parser built on an
// immutable TokenCursor, matching the cursor-based design the teacher
// settled on after its mutable curToken/peekToken parser was retired.
//
// The parser never aborts on the first syntax error: it records a
// Diagnostic, synchronizes to the next likely statement boundary, and
// keeps going, so a host can report every error in one pass the way a
// linter or playground wants to.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/diag"
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// Precedence levels, lowest to highest. Matches the standard ECMAScript
// operator-precedence table (spec.md §4.1).
const (
	LOWEST      int = iota
	COMMA           // ,
	ASSIGN          // = += -= ...
	CONDITIONAL     // ?:
	NULLISH         // ??
	LOGIC_OR        // ||
	LOGIC_AND       // &&
	BIT_OR          // |
	BIT_XOR         // ^
	BIT_AND         // &
	EQUALITY        // == != === !==
	RELATIONAL      // < > <= >= instanceof in
	SHIFT           // << >> >>>
	ADDITIVE        // + -
	MULTIPLICATIVE  // * / %
	EXPONENT        // **
	UNARY           // ! ~ + - typeof void delete await
	POSTFIX         // ++ --
	CALL            // foo(x), foo.bar, foo[x], foo?.bar
)

var precedences = map[token.Type]int{
	token.COMMA:      COMMA,
	token.ASSIGN:     ASSIGN,
	token.PLUSEQ:     ASSIGN,
	token.MINUSEQ:    ASSIGN,
	token.STAREQ:     ASSIGN,
	token.SLASHEQ:    ASSIGN,
	token.PERCENTEQ:  ASSIGN,
	token.STARSTAREQ: ASSIGN,
	token.SHLEQ:      ASSIGN,
	token.SHREQ:      ASSIGN,
	token.USHREQ:     ASSIGN,
	token.ANDEQ:      ASSIGN,
	token.OREQ:       ASSIGN,
	token.XOREQ:      ASSIGN,
	token.LOGANDEQ:   ASSIGN,
	token.LOGOREQ:    ASSIGN,
	token.NULLISHEQ:  ASSIGN,
	token.QUESTION:   CONDITIONAL,
	token.NULLISH:    NULLISH,
	token.LOGOR:      LOGIC_OR,
	token.LOGAND:     LOGIC_AND,
	token.OR:         BIT_OR,
	token.XOR:        BIT_XOR,
	token.AND:        BIT_AND,
	token.EQ:         EQUALITY,
	token.NE:         EQUALITY,
	token.SEQ:        EQUALITY,
	token.SNE:        EQUALITY,
	token.LT:         RELATIONAL,
	token.GT:         RELATIONAL,
	token.LE:         RELATIONAL,
	token.GE:         RELATIONAL,
	token.INSTANCEOF: RELATIONAL,
	token.IN:         RELATIONAL,
	token.SHL:        SHIFT,
	token.SHR:        SHIFT,
	token.USHR:       SHIFT,
	token.PLUS:       ADDITIVE,
	token.MINUS:      ADDITIVE,
	token.STAR:       MULTIPLICATIVE,
	token.SLASH:      MULTIPLICATIVE,
	token.PERCENT:    MULTIPLICATIVE,
	token.STARSTAR:   EXPONENT,
	token.INC:        POSTFIX,
	token.DEC:        POSTFIX,
	token.LPAREN:     CALL,
	token.DOT:        CALL,
	token.OPTCHAIN:   CALL,
	token.LBRACKET:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds the cursor, registered Pratt parse functions, accumulated
// diagnostics, and the small amount of context (current function kind)
// needed to validate yield/await/super/new.target placement.
type Parser struct {
	cursor *TokenCursor
	source string
	file   string

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn

	errors []*diag.Diagnostic

	inGenerator int // >0 while parsing inside a generator function body
	inAsync     int // >0 while parsing inside an async function body
	inFunction  int // >0 while parsing inside any function body
	inLoop      int // >0 while parsing inside an iteration statement
	inSwitch    int // >0 while parsing inside a switch statement
}

// New creates a Parser over l. source/file are used only for diagnostic
// rendering (source-line context and the file name in error headers).
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{
		cursor:    NewTokenCursor(l),
		source:    source,
		file:      file,
		prefixFns: make(map[token.Type]prefixParseFn),
		infixFns:  make(map[token.Type]infixParseFn),
	}
	p.registerPrefixFns()
	p.registerInfixFns()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixFns[t] = fn }

// Errors returns every diagnostic accumulated during the parse.
func (p *Parser) Errors() []*diag.Diagnostic { return p.errors }

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, diag.New(diag.KindParse, pos, fmt.Sprintf(format, args...), p.source, p.file))
}

func (p *Parser) cur() token.Token  { return p.cursor.Current() }
func (p *Parser) peek(n int) token.Token { return p.cursor.Peek(n) }

func (p *Parser) advance() {
	p.cursor = p.cursor.Advance()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cursor.Is(t) }
func (p *Parser) peekIs(t token.Type) bool { return p.cursor.PeekIs(1, t) }

// expect advances past the current token if it has type t, otherwise
// records a diagnostic and leaves the cursor in place.
func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.curIs(t) {
		tok := p.cur()
		p.advance()
		return tok, true
	}
	p.errorf(p.cur().Pos, "expected %s, got %s", t, p.cur().Type)
	return p.cur(), false
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// synchronize skips tokens until a likely statement boundary, so one
// syntax error doesn't cascade into dozens of spurious follow-on errors.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.advance()
			return
		}
		switch p.cur().Type {
		case token.RBRACE, token.VAR, token.LET, token.CONST, token.FUNCTION,
			token.CLASS, token.IF, token.FOR, token.WHILE, token.DO, token.RETURN,
			token.THROW, token.TRY, token.SWITCH, token.BREAK, token.CONTINUE:
			return
		}
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Token: p.cur()}
	prog.UseStrict = p.parseDirectivePrologue()

	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		} else {
			p.synchronize()
		}
	}
	return prog
}

// parseDirectivePrologue consumes leading string-literal-expression
// statements and reports whether "use strict" appeared among them
// (spec.md §4.2 directive prologue).
func (p *Parser) parseDirectivePrologue() bool {
	strict := false
	for p.curIs(token.STRING) {
		lit := p.cur().Literal
		save := p.cursor
		stmt := p.parseStatement()
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			p.cursor = save
			break
		}
		if _, ok := es.Expr.(*ast.StringLiteral); !ok {
			p.cursor = save
			break
		}
		if lit == "use strict" {
			strict = true
		}
		// parseStatement already consumed the statement; loop reconsiders
		// the next leading string literal, if any.
		if !p.curIs(token.STRING) {
			break
		}
	}
	return strict
}
