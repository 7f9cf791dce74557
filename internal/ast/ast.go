// Package ast defines the intermediate representation the parser produces.
//
// Two views are kept over one underlying tree, per spec.md §2/§9: a typed
// AST (the Node/Expression/Statement interfaces and concrete node structs
// below, in the same shape as a hand-written recursive-descent parser would
// build) and a cons-cell s-expression view (SExpr, sexpr.go) derived from it
// on demand for snapshot tests and the stable "IR wire form" spec.md §6
// documents. The typed AST is the one representation the parser, CPS
// transformer, and evaluator actually walk; SExpr is a pure projection of
// it, so the two can never drift out of sync with each other.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// Node is the base interface every IR node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Pattern is a node usable as a binding target: a plain Identifier, or an
// ArrayPattern/ObjectPattern/AssignmentPattern/RestElement produced either
// by direct parsing of a declaration target or by retro-converting an
// already-parsed expression on `=` (spec.md §4.2).
type Pattern interface {
	Node
	patternNode()
}

// Program is the root node: a script or module body plus the directive
// prologue's strict-mode flag (spec.md §4.2).
type Program struct {
	Token      token.Token
	Body       []Statement
	IsModule   bool
	UseStrict  bool // set when the leading directive prologue contains "use strict"
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() token.Position  { return p.Token.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier names a binding or property.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) patternNode()           {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Name }

// PrivateName is a `#field` reference, valid only inside a class body.
type PrivateName struct {
	Token token.Token
	Name  string // includes the leading '#'
}

func (p *PrivateName) expressionNode()      {}
func (p *PrivateName) TokenLiteral() string { return p.Token.Literal }
func (p *PrivateName) Pos() token.Position  { return p.Token.Pos }
func (p *PrivateName) String() string       { return p.Name }

// NumericLiteral is a Number (IEEE-754 binary64) literal.
type NumericLiteral struct {
	Token token.Token
	Value float64
	Raw   string
}

func (n *NumericLiteral) expressionNode()      {}
func (n *NumericLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumericLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumericLiteral) String() string       { return n.Raw }

// BigIntLiteral is an arbitrary-precision integer literal (`123n`).
type BigIntLiteral struct {
	Token token.Token
	Raw   string // digits only, no suffix
}

func (b *BigIntLiteral) expressionNode()      {}
func (b *BigIntLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BigIntLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BigIntLiteral) String() string       { return b.Raw + "n" }

// StringLiteral is a decoded (escapes resolved) string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return fmt.Sprintf("%q", s.Value) }

// BooleanLiteral is `true`/`false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NullLiteral is the `null` literal. `undefined` is not a literal in
// ECMAScript; it is an ordinary (writable-in-sloppy-mode-only, but here
// treated as a well-known global) Identifier resolved by the evaluator to
// the Undefined sentinel (spec.md §3).
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "null" }

// RegExpLiteral carries a regex literal's pattern and flags as written;
// internal/runtime gives it a real backing (see SPEC_FULL.md §4).
type RegExpLiteral struct {
	Token   token.Token
	Pattern string
	Flags   string
}

func (r *RegExpLiteral) expressionNode()      {}
func (r *RegExpLiteral) TokenLiteral() string { return r.Token.Literal }
func (r *RegExpLiteral) Pos() token.Position  { return r.Token.Pos }
func (r *RegExpLiteral) String() string       { return "/" + r.Pattern + "/" + r.Flags }

// ThisExpression is `this`.
type ThisExpression struct{ Token token.Token }

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) Pos() token.Position  { return t.Token.Pos }
func (t *ThisExpression) String() string       { return "this" }

// SuperExpression is the bare `super` keyword, valid only as the callee of
// a call (`super(...)`) or the object of a member access (`super.m`).
type SuperExpression struct{ Token token.Token }

func (s *SuperExpression) expressionNode()      {}
func (s *SuperExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SuperExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SuperExpression) String() string       { return "super" }

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (e *ExpressionStatement) statementNode()      {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expr != nil {
		return e.Expr.String() + ";"
	}
	return ";"
}

// BlockStatement is `{ ... }` used as a statement: its own lexical scope
// (spec.md §3 Environment record, kind Block).
type BlockStatement struct {
	Token token.Token
	Body  []Statement
}

func (b *BlockStatement) statementNode()      {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Body {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Token token.Token }

func (e *EmptyStatement) statementNode()      {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() token.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }

// DebuggerStatement is the `debugger;` statement; the evaluator treats it
// as a no-op.
type DebuggerStatement struct{ Token token.Token }

func (d *DebuggerStatement) statementNode()      {}
func (d *DebuggerStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DebuggerStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DebuggerStatement) String() string       { return "debugger;" }

// LabeledStatement attaches a label to any statement (spec.md §4.2).
type LabeledStatement struct {
	Token token.Token
	Label *Identifier
	Body  Statement
}

func (l *LabeledStatement) statementNode()      {}
func (l *LabeledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStatement) Pos() token.Position  { return l.Token.Pos }
func (l *LabeledStatement) String() string       { return l.Label.Name + ": " + l.Body.String() }
