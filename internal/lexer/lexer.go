// Package lexer turns ECMAScript source text into a lazy stream of tokens.
//
// # Unicode and column positions
//
// Source is scanned rune-by-rune, not byte-by-byte: "column" is the count of
// Unicode code points since the start of the line. Multi-byte UTF-8
// sequences (emoji, combining marks, CJK) each count as exactly one column,
// matching the convention already used by the reference lexer this package
// is descended from.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/rangetable"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// idStart / idContinue classify identifier runes per the Unicode
// ID_Start/ID_Continue properties ECMAScript identifiers are defined over,
// plus the two ASCII escapes ($ and _) the grammar always allows.
var (
	idStart    = runes.In(rangetable.Merge(unicode.L, unicode.Nl))
	idContinue = runes.In(rangetable.Merge(unicode.L, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc))
)

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || idStart.Contains(r)
}

func isIdentPart(r rune) bool {
	return r == '$' || r == '_' || r == 0x200C || r == 0x200D || idContinue.Contains(r)
}

// LexError describes a single malformed-token failure. The lexer
// accumulates these rather than aborting, so a host can report every
// problem in one pass.
type LexError struct {
	Message string
	Pos     token.Position
}

func (e LexError) Error() string { return e.Message }

// lastSigKind classifies the previous non-trivial token for the
// regex-vs-division disambiguation rule in spec.md §4.1: an identifier,
// number, string, `)`, `]`, or postfix-capable keyword (`this`, `super`)
// means the next `/` is division; anything else means it may start a regex.
type lastSigKind int

const (
	lastSigNone lastSigKind = iota
	lastSigValue
	lastSigOther
)

// Lexer is a lazy, backtrackable scanner over a string of ECMAScript
// source. Tokens are produced on demand via NextToken/Peek; nothing is
// tokenized eagerly.
type Lexer struct {
	input        string
	errors       []LexError
	tokenBuffer  []token.Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
	lastSig      lastSigKind
	newlinePending bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// New creates a Lexer over src. A leading UTF-8 BOM is stripped silently.
func New(src string, opts ...Option) *Lexer {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	// Normalize CRLF/CR to LF so line counting never double-counts.
	if strings.ContainsAny(src, "\r") {
		src = strings.ReplaceAll(src, "\r\n", "\n")
		src = strings.ReplaceAll(src, "\r", "\n")
	}
	l := &Lexer{input: src, line: 1, column: 0}
	for _, o := range opts {
		o(l)
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding", l.currentPos())
	}
	if r == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharAt(n int) rune {
	pos := l.readPosition
	for i := 0; i < n-1 && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) addError(msg string, pos token.Position) {
	l.errors = append(l.errors, LexError{Message: msg, Pos: pos})
}

// Errors returns every malformed-token failure accumulated so far.
func (l *Lexer) Errors() []LexError { return l.errors }

// Peek returns the token n positions ahead without consuming it. Peek(0) is
// the token NextToken would return next.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scan())
	}
	return l.tokenBuffer[n]
}

// NextToken consumes and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.scan()
}

// NextTokenAllowRegex is identical to NextToken but forces regex-vs-division
// disambiguation toward "regex". The parser in this module does not call
// it; it relies on NextToken's previous-token rule.
func (l *Lexer) NextTokenAllowRegex() token.Token {
	l.lastSig = lastSigOther
	return l.NextToken()
}

func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t':
			l.readChar()
		case l.ch == '\n':
			l.newlinePending = true
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				if l.ch == '\n' {
					l.newlinePending = true
				}
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() token.Token {
	l.skipTrivia()
	newline := l.newlinePending
	l.newlinePending = false

	pos := l.currentPos()
	mk := func(typ token.Type, lit string) token.Token {
		t := token.Token{Type: typ, Literal: lit, Pos: pos, NewlineBefore: newline}
		l.setLastSig(typ)
		return t
	}

	if l.ch == 0 {
		return mk(token.EOF, "")
	}

	switch {
	case isIdentStart(l.ch):
		lit := l.readIdentifier()
		return mk(token.LookupIdent(lit), lit)
	case l.ch == '#' && isIdentStart(l.peekChar()):
		l.readChar() // consume '#'
		lit := "#" + l.readIdentifier()
		return mk(token.PRIVATE_NAME, lit)
	case unicode.IsDigit(l.ch) || (l.ch == '.' && unicode.IsDigit(l.peekChar())):
		typ, lit, big := l.readNumber()
		t := mk(typ, lit)
		t.BigIntFlag = big
		return t
	case l.ch == '"' || l.ch == '\'':
		lit, ok := l.readString(l.ch)
		if !ok {
			l.addError("unterminated string literal", pos)
		}
		return mk(token.STRING, lit)
	case l.ch == '`':
		return l.readTemplate(pos, true)
	case l.ch == '/' && l.regexAllowed():
		lit, ok := l.readRegex()
		if !ok {
			l.addError("unterminated regular expression literal", pos)
		}
		return mk(token.REGEX, lit)
	default:
		return l.readPunct(pos, newline)
	}
}

func (l *Lexer) setLastSig(t token.Type) {
	switch t {
	case token.IDENT, token.NUMBER, token.BIGINT, token.STRING, token.RPAREN,
		token.RBRACKET, token.TEMPLATE_TAIL, token.TEMPLATE_NOSUB, token.THIS, token.SUPER:
		l.lastSig = lastSigValue
	default:
		l.lastSig = lastSigOther
	}
}

// regexAllowed implements the last-significant-token heuristic from
// spec.md §4.1.
func (l *Lexer) regexAllowed() bool {
	return l.lastSig != lastSigValue
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans decimal, hex (0x), octal (0o), binary (0b), and BigInt
// (trailing n) literals, accepting numeric separators (1_000).
func (l *Lexer) readNumber() (token.Type, string, bool) {
	start := l.position
	isFloat := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		l.readDigits(isHexDigit)
	} else if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar()
		l.readChar()
		l.readDigits(isOctalDigit)
	} else if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		l.readDigits(isBinaryDigit)
	} else {
		l.readDigits(unicode.IsDigit)
		if l.ch == '.' {
			isFloat = true
			l.readChar()
			l.readDigits(unicode.IsDigit)
		}
		if l.ch == 'e' || l.ch == 'E' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			l.readDigits(unicode.IsDigit)
		}
	}

	big := false
	if l.ch == 'n' && !isFloat {
		big = true
		l.readChar()
	}

	lit := strings.ReplaceAll(l.input[start:l.position], "_", "")
	if big {
		return token.BIGINT, lit, true
	}
	return token.NUMBER, lit, false
}

func (l *Lexer) readDigits(pred func(rune) bool) {
	for pred(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isOctalDigit(r rune) bool  { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// readString scans a single/double quoted string literal, decoding escape
// sequences and line continuations (a backslash immediately before a
// newline removes both, per spec.md §4.1).
func (l *Lexer) readString(quote rune) (string, bool) {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return sb.String(), false
		}
		if l.ch == quote {
			l.readChar()
			return sb.String(), true
		}
		if l.ch == '\n' {
			return sb.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == '\n' {
				l.readChar() // line continuation: drop both characters
				continue
			}
			sb.WriteString(l.readEscape())
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
}

// readEscape decodes one escape sequence after the backslash has already
// been consumed, leaving l.ch positioned after the escape.
func (l *Lexer) readEscape() string {
	switch l.ch {
	case 'n':
		l.readChar()
		return "\n"
	case 't':
		l.readChar()
		return "\t"
	case 'r':
		l.readChar()
		return "\r"
	case 'b':
		l.readChar()
		return "\b"
	case 'f':
		l.readChar()
		return "\f"
	case 'v':
		l.readChar()
		return "\v"
	case '0', '1', '2', '3', '4', '5', '6', '7':
		if l.ch == '0' && !unicode.IsDigit(l.peekChar()) {
			l.readChar()
			return "\x00"
		}
		// Annex B legacy octal escape: up to three octal digits, value at
		// most 0377. It is accepted in strict code too; nothing rejects it.
		var v rune
		for i := 0; i < 3 && l.ch >= '0' && l.ch <= '7' && v*8+(l.ch-'0') <= 0377; i++ {
			v = v*8 + (l.ch - '0')
			l.readChar()
		}
		return string(v)
	case 'x':
		l.readChar()
		start := l.position
		for i := 0; i < 2 && isHexDigit(l.ch); i++ {
			l.readChar()
		}
		return decodeHexRune(l.input[start:l.position])
	case 'u':
		l.readChar()
		if l.ch == '{' {
			l.readChar()
			start := l.position
			for l.ch != '}' && l.ch != 0 {
				l.readChar()
			}
			hex := l.input[start:l.position]
			if l.ch == '}' {
				l.readChar()
			}
			return decodeHexRune(hex)
		}
		start := l.position
		for i := 0; i < 4 && isHexDigit(l.ch); i++ {
			l.readChar()
		}
		return decodeHexRune(l.input[start:l.position])
	default:
		r := l.ch
		l.readChar()
		return string(r)
	}
}

func decodeHexRune(hex string) string {
	var v rune
	for _, c := range hex {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		}
	}
	return string(v)
}

// readTemplate scans a template literal chunk. If head is true l.ch is the
// opening backtick; otherwise the `}` that closes a substitution has already
// been consumed and l.ch is the character after it. The opening chunk
// returns TEMPLATE_NOSUB when it ends at a backtick and TEMPLATE_HEAD when
// it ends at `${`; a later chunk returns TEMPLATE_TAIL and TEMPLATE_MIDDLE
// for the same two cases.
func (l *Lexer) readTemplate(pos token.Position, head bool) token.Token {
	if head {
		l.readChar() // consume the opening backtick
	}
	var sb strings.Builder
	for {
		switch l.ch {
		case 0:
			l.addError("unterminated template literal", pos)
			typ := token.TEMPLATE_TAIL
			if head {
				typ = token.TEMPLATE_NOSUB
			}
			return token.Token{Type: typ, Literal: sb.String(), Pos: pos}
		case '`':
			l.readChar()
			typ := token.TEMPLATE_TAIL
			if head {
				typ = token.TEMPLATE_NOSUB
			}
			l.setLastSig(typ)
			return token.Token{Type: typ, Literal: sb.String(), Pos: pos}
		case '$':
			if l.peekChar() == '{' {
				l.readChar()
				l.readChar()
				typ := token.TEMPLATE_MIDDLE
				if head {
					typ = token.TEMPLATE_HEAD
				}
				l.setLastSig(token.RBRACE) // substitution reenters the expression grammar
				return token.Token{Type: typ, Literal: sb.String(), Pos: pos}
			}
			sb.WriteRune(l.ch)
			l.readChar()
		case '\\':
			l.readChar()
			sb.WriteString(l.readEscape())
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// ReadTemplateContinuation is called by the parser when it has finished
// parsing a `${...}` substitution and the lexer must resume scanning
// template text just after the `}` it stopped on (scan already consumed it).
func (l *Lexer) ReadTemplateContinuation() token.Token {
	pos := l.currentPos()
	return l.readTemplate(pos, false)
}

func (l *Lexer) readRegex() (string, bool) {
	start := l.position
	l.readChar() // consume leading /
	inClass := false
	for {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position], false
		}
		if l.ch == '\\' {
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '[' {
			inClass = true
		} else if l.ch == ']' {
			inClass = false
		} else if l.ch == '/' && !inClass {
			l.readChar()
			for isIdentPart(l.ch) { // flags
				l.readChar()
			}
			return l.input[start:l.position], true
		}
		l.readChar()
	}
}

// punct3 and punct4 are the multi-character punctuators, longest first so a
// simple greedy scan suffices.
var punct4 = []struct {
	lit string
	typ token.Type
}{
	{">>>=", token.USHREQ},
}

var punct3 = []struct {
	lit string
	typ token.Type
}{
	{"===", token.SEQ}, {"!==", token.SNE}, {"**=", token.STARSTAREQ},
	{"<<=", token.SHLEQ}, {">>=", token.SHREQ}, {">>>", token.USHR},
	{"&&=", token.LOGANDEQ}, {"||=", token.LOGOREQ}, {"??=", token.NULLISHEQ},
	{"...", token.ELLIPSIS},
}

var punct2 = []struct {
	lit string
	typ token.Type
}{
	{"==", token.EQ}, {"!=", token.NE}, {"<=", token.LE}, {">=", token.GE},
	{"&&", token.LOGAND}, {"||", token.LOGOR}, {"??", token.NULLISH},
	{"?.", token.OPTCHAIN}, {"=>", token.ARROW}, {"++", token.INC}, {"--", token.DEC},
	{"<<", token.SHL}, {">>", token.SHR}, {"**", token.STARSTAR},
	{"+=", token.PLUSEQ}, {"-=", token.MINUSEQ}, {"*=", token.STAREQ},
	{"/=", token.SLASHEQ}, {"%=", token.PERCENTEQ}, {"&=", token.ANDEQ},
	{"|=", token.OREQ}, {"^=", token.XOREQ},
}

var punct1 = map[rune]token.Type{
	'{': token.LBRACE, '}': token.RBRACE, '(': token.LPAREN, ')': token.RPAREN,
	'[': token.LBRACKET, ']': token.RBRACKET, '.': token.DOT, ';': token.SEMI,
	',': token.COMMA, '<': token.LT, '>': token.GT, '+': token.PLUS,
	'-': token.MINUS, '*': token.STAR, '%': token.PERCENT, '/': token.SLASH,
	'&': token.AND, '|': token.OR, '^': token.XOR, '!': token.NOT,
	'~': token.TILDE, '?': token.QUESTION, ':': token.COLON, '=': token.ASSIGN,
	'@': token.AT,
}

func (l *Lexer) readPunct(pos token.Position, newline bool) token.Token {
	rest := l.input[l.position:]
	try := func(lit string) bool { return strings.HasPrefix(rest, lit) }

	for _, p := range punct4 {
		if try(p.lit) {
			l.advanceN(len(p.lit))
			return l.finishPunct(p.typ, p.lit, pos, newline)
		}
	}
	for _, p := range punct3 {
		if try(p.lit) {
			l.advanceN(len(p.lit))
			return l.finishPunct(p.typ, p.lit, pos, newline)
		}
	}
	for _, p := range punct2 {
		if try(p.lit) {
			l.advanceN(len(p.lit))
			return l.finishPunct(p.typ, p.lit, pos, newline)
		}
	}
	if typ, ok := punct1[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return l.finishPunct(typ, lit, pos, newline)
	}

	illegal := string(l.ch)
	l.addError("unexpected character "+illegal, pos)
	l.readChar()
	return l.finishPunct(token.ILLEGAL, illegal, pos, newline)
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

func (l *Lexer) finishPunct(typ token.Type, lit string, pos token.Position, newline bool) token.Token {
	l.setLastSig(typ)
	return token.Token{Type: typ, Literal: lit, Pos: pos, NewlineBefore: newline}
}
