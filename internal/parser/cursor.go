package parser

import (
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// TokenCursor is an immutable cursor over a lexer's token stream. Every
// navigation method returns a new cursor rather than mutating the
// receiver, so speculative parsing (arrow-function-vs-parenthesized-
// expression disambiguation, destructuring-vs-object-literal, for/for-in/
// for-of splitting) can freely fork a cursor, try a parse, and discard the
// fork without unwinding anything by hand.
type TokenCursor struct {
	lexer   *lexer.Lexer
	current token.Token
	tokens  []token.Token // buffered tokens, shared across forks, for backtracking
	index   int
}

// NewTokenCursor starts a cursor at the first token of l's stream.
func NewTokenCursor(l *lexer.Lexer) *TokenCursor {
	first := l.NextToken()
	tokens := make([]token.Token, 1, 32)
	tokens[0] = first
	return &TokenCursor{lexer: l, current: first, tokens: tokens}
}

// NewTokenCursorFromToken starts a fresh cursor over l whose current token
// is already known (tok). Used to resume parsing after a template
// continuation is read directly off the lexer's raw position, bypassing
// the normal token buffer.
func NewTokenCursorFromToken(l *lexer.Lexer, tok token.Token) *TokenCursor {
	return &TokenCursor{lexer: l, current: tok, tokens: []token.Token{tok}}
}

// Current returns the token at the cursor's position.
func (c *TokenCursor) Current() token.Token { return c.current }

// Peek returns the token n positions ahead without moving the cursor.
// Peek(0) equals Current().
func (c *TokenCursor) Peek(n int) token.Token {
	if n < 0 {
		return c.current
	}
	target := c.index + n
	if target >= len(c.tokens) {
		need := target - len(c.tokens) + 1
		if target >= cap(c.tokens) {
			newCap := max(target+16, cap(c.tokens)*3/2)
			grown := make([]token.Token, len(c.tokens), newCap)
			copy(grown, c.tokens)
			c.tokens = grown
		}
		for i := 0; i < need; i++ {
			next := c.lexer.NextToken()
			c.tokens = append(c.tokens, next)
			if next.Type == token.EOF {
				break
			}
		}
	}
	if target < len(c.tokens) {
		return c.tokens[target]
	}
	return c.tokens[len(c.tokens)-1]
}

// Advance returns a cursor positioned at the next token.
func (c *TokenCursor) Advance() *TokenCursor { return c.AdvanceN(1) }

// AdvanceN returns a cursor positioned n tokens ahead.
func (c *TokenCursor) AdvanceN(n int) *TokenCursor {
	if n <= 0 {
		return c
	}
	c.Peek(n)
	idx := c.index + n
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	return &TokenCursor{lexer: c.lexer, current: c.tokens[idx], tokens: c.tokens, index: idx}
}

// Is reports whether the current token has type t.
func (c *TokenCursor) Is(t token.Type) bool { return c.current.Type == t }

// IsAny reports whether the current token matches any of types.
func (c *TokenCursor) IsAny(types ...token.Type) bool {
	for _, t := range types {
		if c.current.Type == t {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n ahead has type t.
func (c *TokenCursor) PeekIs(n int, t token.Type) bool { return c.Peek(n).Type == t }

// Skip advances past the current token if it matches t.
func (c *TokenCursor) Skip(t token.Type) (*TokenCursor, bool) {
	if c.current.Type == t {
		return c.Advance(), true
	}
	return c, false
}

// Mark is a lightweight saved cursor position for backtracking.
type Mark struct{ index int }

// Mark saves the cursor's current position.
func (c *TokenCursor) Mark() Mark { return Mark{index: c.index} }

// ResetTo returns a cursor rewound to a previously saved Mark.
func (c *TokenCursor) ResetTo(m Mark) *TokenCursor {
	if m.index < 0 || m.index >= len(c.tokens) {
		return c
	}
	return &TokenCursor{lexer: c.lexer, current: c.tokens[m.index], tokens: c.tokens, index: m.index}
}

// IsEOF reports whether the cursor has reached end of input.
func (c *TokenCursor) IsEOF() bool { return c.current.Type == token.EOF }

// Position returns the current token's source position.
func (c *TokenCursor) Position() token.Position { return c.current.Pos }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
