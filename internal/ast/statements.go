package ast

import (
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// DeclKind is the keyword a VariableDeclaration was introduced with; it
// controls the binding's scope (var: function scope, let/const: block
// scope) and, for const, mutability (spec.md §3).
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

func (d DeclKind) String() string {
	switch d {
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	default:
		return "var"
	}
}

// VariableDeclarator is one `target = init` entry of a declaration list.
type VariableDeclarator struct {
	Token  token.Token
	Target Pattern
	Init   Expression // may be nil, except for const which requires one
}

func (v *VariableDeclarator) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclarator) Pos() token.Position  { return v.Token.Pos }
func (v *VariableDeclarator) String() string {
	if v.Init == nil {
		return v.Target.String()
	}
	return v.Target.String() + " = " + v.Init.String()
}

// VariableDeclaration is `var|let|const a = 1, b;`.
type VariableDeclaration struct {
	Token        token.Token
	Kind         DeclKind
	Declarations []*VariableDeclarator
}

func (v *VariableDeclaration) statementNode()      {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() token.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		parts[i] = d.String()
	}
	return v.Kind.String() + " " + strings.Join(parts, ", ") + ";"
}

// FunctionDeclaration binds a named FunctionLiteral in the enclosing scope.
type FunctionDeclaration struct {
	Token    token.Token
	Function *FunctionLiteral
}

func (f *FunctionDeclaration) statementNode()      {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDeclaration) String() string       { return f.Function.String() }

// ReturnStatement is `return expr;`; Argument is nil for a bare `return;`.
type ReturnStatement struct {
	Token    token.Token
	Argument Expression
}

func (r *ReturnStatement) statementNode()      {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return;"
	}
	return "return " + r.Argument.String() + ";"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token    token.Token
	Argument Expression
}

func (t *ThrowStatement) statementNode()      {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() token.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Argument.String() + ";" }

// BreakStatement is `break;` or `break label;`.
type BreakStatement struct {
	Token token.Token
	Label *Identifier // nil unless labeled
}

func (b *BreakStatement) statementNode()      {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label == nil {
		return "break;"
	}
	return "break " + b.Label.Name + ";"
}

// ContinueStatement is `continue;` or `continue label;`.
type ContinueStatement struct {
	Token token.Token
	Label *Identifier // nil unless labeled
}

func (c *ContinueStatement) statementNode()      {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label == nil {
		return "continue;"
	}
	return "continue " + c.Label.Name + ";"
}

// IfStatement is `if (test) cons else alt`; Alternate is nil without an
// `else` clause.
type IfStatement struct {
	Token      token.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

func (i *IfStatement) statementNode()      {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()      {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Test.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Token token.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) statementNode()      {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// ForStatement is the classic three-clause `for (init; test; update) body`.
// Init/Test/Update may each be nil when the clause is omitted; Init may
// instead be a *VariableDeclaration.
type ForStatement struct {
	Token  token.Token
	Init   Node // nil, Expression, or *VariableDeclaration
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()      {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	init := ""
	if f.Init != nil {
		init = f.Init.String()
	}
	test := ""
	if f.Test != nil {
		test = f.Test.String()
	}
	update := ""
	if f.Update != nil {
		update = f.Update.String()
	}
	return "for (" + init + "; " + test + "; " + update + ") " + f.Body.String()
}

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	Token token.Token
	Left  Node // Pattern, or *VariableDeclaration with one declarator
	Right Expression
	Body  Statement
}

func (f *ForInStatement) statementNode()      {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// ForOfStatement is `for [await] (left of right) body`.
type ForOfStatement struct {
	Token   token.Token
	Left    Node // Pattern, or *VariableDeclaration with one declarator
	Right   Expression
	Body    Statement
	IsAwait bool
}

func (f *ForOfStatement) statementNode()      {}
func (f *ForOfStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForOfStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForOfStatement) String() string {
	await := ""
	if f.IsAwait {
		await = " await"
	}
	return "for" + await + " (" + f.Left.String() + " of " + f.Right.String() + ") " + f.Body.String()
}

// SwitchCase is one `case test:`/`default:` arm of a SwitchStatement. Test
// is nil for the default arm.
type SwitchCase struct {
	Token       token.Token
	Test        Expression
	Consequent []Statement
}

func (c *SwitchCase) TokenLiteral() string { return c.Token.Literal }
func (c *SwitchCase) Pos() token.Position  { return c.Token.Pos }
func (c *SwitchCase) String() string {
	var sb strings.Builder
	if c.Test != nil {
		sb.WriteString("case " + c.Test.String() + ":\n")
	} else {
		sb.WriteString("default:\n")
	}
	for _, s := range c.Consequent {
		sb.WriteString("  " + s.String() + "\n")
	}
	return sb.String()
}

// SwitchStatement is `switch (disc) { case ... }`.
type SwitchStatement struct {
	Token      token.Token
	Discriminant Expression
	Cases      []*SwitchCase
}

func (s *SwitchStatement) statementNode()      {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Discriminant.String() + ") {\n")
	for _, c := range s.Cases {
		sb.WriteString(c.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// CatchClause is the `catch (param) body` part of a TryStatement. Param is
// nil for an optional-binding `catch { ... }`.
type CatchClause struct {
	Token token.Token
	Param Pattern
	Body  *BlockStatement
}

func (c *CatchClause) TokenLiteral() string { return c.Token.Literal }
func (c *CatchClause) Pos() token.Position  { return c.Token.Pos }
func (c *CatchClause) String() string {
	if c.Param == nil {
		return "catch " + c.Body.String()
	}
	return "catch (" + c.Param.String() + ") " + c.Body.String()
}

// TryStatement is `try body [catch] [finally]`. Handler and Finalizer are
// each nil when their clause is absent; at least one must be present.
type TryStatement struct {
	Token     token.Token
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (t *TryStatement) statementNode()      {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() token.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	s := "try " + t.Block.String()
	if t.Handler != nil {
		s += " " + t.Handler.String()
	}
	if t.Finalizer != nil {
		s += " finally " + t.Finalizer.String()
	}
	return s
}

// WithStatement is the Annex B legacy `with (object) body` form.
type WithStatement struct {
	Token  token.Token
	Object Expression
	Body   Statement
}

func (w *WithStatement) statementNode()      {}
func (w *WithStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WithStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WithStatement) String() string {
	return "with (" + w.Object.String() + ") " + w.Body.String()
}

// ImportSpecifier is one named binding of an ImportDeclaration:
// `{ Imported as Local }`, or a default/namespace import when Imported is
// empty/"*".
type ImportSpecifier struct {
	Imported string // "" for default, "*" for namespace
	Local    *Identifier
}

// ImportDeclaration is `import ... from "source";`.
type ImportDeclaration struct {
	Token      token.Token
	Specifiers []*ImportSpecifier
	Source     *StringLiteral
}

func (i *ImportDeclaration) statementNode()      {}
func (i *ImportDeclaration) TokenLiteral() string { return i.Token.Literal }
func (i *ImportDeclaration) Pos() token.Position  { return i.Token.Pos }
func (i *ImportDeclaration) String() string {
	parts := make([]string, len(i.Specifiers))
	for idx, s := range i.Specifiers {
		switch s.Imported {
		case "":
			parts[idx] = s.Local.Name
		case "*":
			parts[idx] = "* as " + s.Local.Name
		default:
			parts[idx] = s.Imported + " as " + s.Local.Name
		}
	}
	return "import {" + strings.Join(parts, ", ") + "} from " + i.Source.String() + ";"
}

// ExportSpecifier is one `{ Local as Exported }` entry of an
// ExportNamedDeclaration.
type ExportSpecifier struct {
	Local    *Identifier
	Exported *Identifier
}

// ExportNamedDeclaration is `export { a as b };` or `export const x = 1;`
// (Declaration set, Specifiers empty).
type ExportNamedDeclaration struct {
	Token       token.Token
	Declaration Statement
	Specifiers  []*ExportSpecifier
}

func (e *ExportNamedDeclaration) statementNode()      {}
func (e *ExportNamedDeclaration) TokenLiteral() string { return e.Token.Literal }
func (e *ExportNamedDeclaration) Pos() token.Position  { return e.Token.Pos }
func (e *ExportNamedDeclaration) String() string {
	if e.Declaration != nil {
		return "export " + e.Declaration.String()
	}
	parts := make([]string, len(e.Specifiers))
	for i, s := range e.Specifiers {
		if s.Exported.Name == s.Local.Name {
			parts[i] = s.Local.Name
		} else {
			parts[i] = s.Local.Name + " as " + s.Exported.Name
		}
	}
	return "export {" + strings.Join(parts, ", ") + "};"
}

// ExportDefaultDeclaration is `export default expr;`.
type ExportDefaultDeclaration struct {
	Token       token.Token
	Declaration Node // Expression, *FunctionDeclaration, or *ClassDeclaration
}

func (e *ExportDefaultDeclaration) statementNode()      {}
func (e *ExportDefaultDeclaration) TokenLiteral() string { return e.Token.Literal }
func (e *ExportDefaultDeclaration) Pos() token.Position  { return e.Token.Pos }
func (e *ExportDefaultDeclaration) String() string {
	return "export default " + e.Declaration.String() + ";"
}
