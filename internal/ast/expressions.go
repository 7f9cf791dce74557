package ast

import (
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// TemplateElement is one literal chunk ("quasi") of a template literal.
type TemplateElement struct {
	Token   token.Token
	Cooked  string // escapes decoded
	Raw     string // as written
	Tail    bool
}

// TemplateLiteral is a (possibly tagged) template: Quasis has one more
// element than Expressions.
type TemplateLiteral struct {
	Token       token.Token
	Quasis      []*TemplateElement
	Expressions []Expression
}

func (t *TemplateLiteral) expressionNode()      {}
func (t *TemplateLiteral) TokenLiteral() string { return t.Token.Literal }
func (t *TemplateLiteral) Pos() token.Position  { return t.Token.Pos }
func (t *TemplateLiteral) String() string {
	var sb strings.Builder
	sb.WriteString("`")
	for i, q := range t.Quasis {
		sb.WriteString(q.Raw)
		if i < len(t.Expressions) {
			sb.WriteString("${")
			sb.WriteString(t.Expressions[i].String())
			sb.WriteString("}")
		}
	}
	sb.WriteString("`")
	return sb.String()
}

// TaggedTemplateExpression is `tag\`...\``.
type TaggedTemplateExpression struct {
	Tag   Expression
	Quasi *TemplateLiteral
}

func (t *TaggedTemplateExpression) expressionNode()      {}
func (t *TaggedTemplateExpression) TokenLiteral() string { return t.Tag.TokenLiteral() }
func (t *TaggedTemplateExpression) Pos() token.Position  { return t.Tag.Pos() }
func (t *TaggedTemplateExpression) String() string       { return t.Tag.String() + t.Quasi.String() }

// SpreadElement is `...expr` inside an array/object literal or call.
type SpreadElement struct {
	Token token.Token
	Arg   Expression
}

func (s *SpreadElement) expressionNode()      {}
func (s *SpreadElement) TokenLiteral() string { return s.Token.Literal }
func (s *SpreadElement) Pos() token.Position  { return s.Token.Pos }
func (s *SpreadElement) String() string       { return "..." + s.Arg.String() }

// ArrayLiteral is `[a, , ...b]`. A nil element represents an elision hole.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PropertyKind distinguishes an ObjectProperty's role.
type PropertyKind int

const (
	PropInit PropertyKind = iota
	PropGet
	PropSet
	PropMethod
	PropSpread
)

// ObjectProperty is one entry of an ObjectLiteral or ObjectPattern.
type ObjectProperty struct {
	Token     token.Token
	Key       Expression // Identifier, StringLiteral, NumericLiteral, or a computed Expression
	Value     Expression // property value, or the pattern target when used inside ObjectPattern
	Computed  bool
	Shorthand bool
	Kind      PropertyKind
}

func (p *ObjectProperty) expressionNode()      {}
func (p *ObjectProperty) TokenLiteral() string { return p.Token.Literal }
func (p *ObjectProperty) Pos() token.Position  { return p.Token.Pos }
func (p *ObjectProperty) String() string {
	if p.Kind == PropSpread {
		return "..." + p.Value.String()
	}
	if p.Shorthand {
		return p.Key.String()
	}
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	switch p.Kind {
	case PropGet:
		return "get " + key + "() " + p.Value.String()
	case PropSet:
		return "set " + key + "(...) " + p.Value.String()
	case PropMethod:
		return key + p.Value.String()
	default:
		return key + ": " + p.Value.String()
	}
}

// ObjectLiteral is `{ ... }` used as an expression.
type ObjectLiteral struct {
	Token      token.Token
	Properties []*ObjectProperty
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() token.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Param is one formal parameter: a binding Pattern with an optional default
// initializer, or (for the last parameter) a rest pattern.
type Param struct {
	Pattern Pattern
	Default Expression
	Rest    bool
}

func (p *Param) String() string {
	s := p.Pattern.String()
	if p.Rest {
		return "..." + s
	}
	if p.Default != nil {
		return s + " = " + p.Default.String()
	}
	return s
}

// FunctionLiteral is shared by function declarations, function expressions,
// and (with IsArrow=true) arrow functions. Exactly one of IsGenerator/IsArrow
// may be true; IsAsync may combine with either.
type FunctionLiteral struct {
	Token      token.Token
	Name       *Identifier // nil for anonymous function expressions and arrows
	Params     []*Param
	Body       *BlockStatement
	ExprBody   Expression // set instead of Body for concise arrow bodies
	IsAsync    bool
	IsGenerator bool
	IsArrow    bool
	Strict     bool // "use strict" directive, own or inherited
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	var sb strings.Builder
	if f.IsAsync {
		sb.WriteString("async ")
	}
	if f.IsArrow {
		sb.WriteString("(")
	} else {
		sb.WriteString("function")
		if f.IsGenerator {
			sb.WriteString("*")
		}
		sb.WriteString(" ")
		if f.Name != nil {
			sb.WriteString(f.Name.Name)
		}
		sb.WriteString("(")
	}
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	if f.IsArrow {
		sb.WriteString(" =>")
	}
	sb.WriteString(" ")
	if f.Body != nil {
		sb.WriteString(f.Body.String())
	} else if f.ExprBody != nil {
		sb.WriteString(f.ExprBody.String())
	}
	return sb.String()
}

// UnaryExpression is a prefix operator producing a value: -, +, !, ~,
// typeof, void, delete.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	sep := ""
	if len(u.Operator) > 1 {
		sep = " "
	}
	return "(" + u.Operator + sep + u.Operand.String() + ")"
}

// UpdateExpression is `++x`/`x++`/`--x`/`x--`.
type UpdateExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (u *UpdateExpression) expressionNode()      {}
func (u *UpdateExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UpdateExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UpdateExpression) String() string {
	if u.Prefix {
		return u.Operator + u.Operand.String()
	}
	return u.Operand.String() + u.Operator
}

// BinaryExpression is an arithmetic/relational/bitwise infix operator.
type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpression is `&&`, `||`, `??` — kept distinct from BinaryExpression
// because these operators short-circuit.
type LogicalExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() token.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// AssignmentExpression is `target op= value`; target is a Pattern for `=`
// and a plain reference Expression for compound operators.
type AssignmentExpression struct {
	Token    token.Token
	Operator string
	Target   Node // Pattern (for `=`) or Expression (reference, for compound ops)
	Value    Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Target.String() + " " + a.Operator + " " + a.Value.String() + ")"
}

// ConditionalExpression is `test ? cons : alt`.
type ConditionalExpression struct {
	Token     token.Token
	Test      Expression
	Consequent Expression
	Alternate Expression
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConditionalExpression) Pos() token.Position  { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}

// SequenceExpression is the comma operator: `a, b, c`.
type SequenceExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SequenceExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SequenceExpression) String() string {
	parts := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// CallExpression is `callee(args)`, possibly optionally-chained (`callee?.(args)`).
type CallExpression struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
	Optional bool
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	op := "("
	if c.Optional {
		op = "?.("
	}
	return c.Callee.String() + op + strings.Join(parts, ", ") + ")"
}

// NewExpression is `new Callee(args)`.
type NewExpression struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return "new " + n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MemberExpression is `object.property` or `object[property]`, possibly
// optionally-chained (`object?.property`).
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression // Identifier for dot access, any Expression when Computed
	Computed bool
	Optional bool
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	if m.Computed {
		op := "["
		if m.Optional {
			op = "?.["
		}
		return m.Object.String() + op + m.Property.String() + "]"
	}
	op := "."
	if m.Optional {
		op = "?."
	}
	return m.Object.String() + op + m.Property.String()
}

// YieldExpression is `yield expr` / `yield* expr`, valid only inside a
// generator function body.
type YieldExpression struct {
	Token    token.Token
	Argument Expression // may be nil
	Delegate bool        // yield*
}

func (y *YieldExpression) expressionNode()      {}
func (y *YieldExpression) TokenLiteral() string { return y.Token.Literal }
func (y *YieldExpression) Pos() token.Position  { return y.Token.Pos }
func (y *YieldExpression) String() string {
	star := ""
	if y.Delegate {
		star = "*"
	}
	if y.Argument == nil {
		return "yield" + star
	}
	return "yield" + star + " " + y.Argument.String()
}

// AwaitExpression is `await expr`, valid only inside an async function body.
type AwaitExpression struct {
	Token    token.Token
	Argument Expression
}

func (a *AwaitExpression) expressionNode()      {}
func (a *AwaitExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AwaitExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AwaitExpression) String() string       { return "await " + a.Argument.String() }
