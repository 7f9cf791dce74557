package ast

import (
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// MethodKind distinguishes a class element's role.
type MethodKind int

const (
	MethodNormal MethodKind = iota
	MethodConstructor
	MethodGet
	MethodSet
)

// MethodDefinition is a method, getter, setter, or constructor inside a
// ClassBody.
type MethodDefinition struct {
	Token    token.Token
	Key      Expression // Identifier, PrivateName, StringLiteral, or computed Expression
	Value    *FunctionLiteral
	Kind     MethodKind
	Static   bool
	Computed bool
}

func (m *MethodDefinition) TokenLiteral() string { return m.Token.Literal }
func (m *MethodDefinition) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDefinition) String() string {
	var sb strings.Builder
	if m.Static {
		sb.WriteString("static ")
	}
	switch m.Kind {
	case MethodGet:
		sb.WriteString("get ")
	case MethodSet:
		sb.WriteString("set ")
	}
	if m.Value.IsAsync {
		sb.WriteString("async ")
	}
	if m.Value.IsGenerator {
		sb.WriteString("*")
	}
	key := m.Key.String()
	if m.Computed {
		key = "[" + key + "]"
	}
	sb.WriteString(key)
	parts := make([]string, len(m.Value.Params))
	for i, p := range m.Value.Params {
		parts[i] = p.String()
	}
	sb.WriteString("(" + strings.Join(parts, ", ") + ") ")
	sb.WriteString(m.Value.Body.String())
	return sb.String()
}

// PropertyDefinition is a class field: `[static] key [= value];`, including
// private fields (`#key`).
type PropertyDefinition struct {
	Token    token.Token
	Key      Expression // Identifier, PrivateName, StringLiteral, or computed Expression
	Value    Expression // nil for an uninitialized field
	Static   bool
	Computed bool
}

func (p *PropertyDefinition) TokenLiteral() string { return p.Token.Literal }
func (p *PropertyDefinition) Pos() token.Position  { return p.Token.Pos }
func (p *PropertyDefinition) String() string {
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	s := key
	if p.Static {
		s = "static " + s
	}
	if p.Value != nil {
		s += " = " + p.Value.String()
	}
	return s + ";"
}

// ClassBody is the `{ ... }` block of a class. Methods and fields are kept
// in two separate lists, each in source order; how methods and fields were
// interleaved in the source is not recorded.
type ClassBody struct {
	Token    token.Token
	Methods  []*MethodDefinition
	Fields   []*PropertyDefinition
}

func (c *ClassBody) TokenLiteral() string { return c.Token.Literal }
func (c *ClassBody) Pos() token.Position  { return c.Token.Pos }
func (c *ClassBody) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, m := range c.Methods {
		sb.WriteString("  " + m.String() + "\n")
	}
	for _, f := range c.Fields {
		sb.WriteString("  " + f.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// ClassExpression is `class [Name] [extends Super] { ... }` used as an
// expression.
type ClassExpression struct {
	Token      token.Token
	Name       *Identifier // nil for an anonymous class expression
	SuperClass Expression
	Body       *ClassBody
}

func (c *ClassExpression) expressionNode()      {}
func (c *ClassExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ClassExpression) Pos() token.Position  { return c.Token.Pos }
func (c *ClassExpression) String() string {
	s := "class"
	if c.Name != nil {
		s += " " + c.Name.Name
	}
	if c.SuperClass != nil {
		s += " extends " + c.SuperClass.String()
	}
	return s + " " + c.Body.String()
}

// ClassDeclaration binds a named class in the enclosing scope.
type ClassDeclaration struct {
	Token token.Token
	Class *ClassExpression
}

func (c *ClassDeclaration) statementNode()      {}
func (c *ClassDeclaration) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDeclaration) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDeclaration) String() string       { return c.Class.String() }
