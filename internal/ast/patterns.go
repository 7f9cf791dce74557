package ast

import (
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// RestElement is `...target` in a binding position: the last element of an
// ArrayPattern, the last parameter of a function, or the tail of an
// ObjectPattern.
type RestElement struct {
	Token  token.Token
	Target Pattern
}

func (r *RestElement) patternNode()         {}
func (r *RestElement) expressionNode()      {} // also valid as a spread-like expression target during reparse
func (r *RestElement) TokenLiteral() string { return r.Token.Literal }
func (r *RestElement) Pos() token.Position  { return r.Token.Pos }
func (r *RestElement) String() string       { return "..." + r.Target.String() }

// AssignmentPattern is `target = default`, used for default parameter
// values and destructuring defaults.
type AssignmentPattern struct {
	Token   token.Token
	Target  Pattern
	Default Expression
}

func (a *AssignmentPattern) patternNode()         {}
func (a *AssignmentPattern) expressionNode()      {}
func (a *AssignmentPattern) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentPattern) Pos() token.Position  { return a.Token.Pos }
func (a *AssignmentPattern) String() string {
	return a.Target.String() + " = " + a.Default.String()
}

// ArrayPattern is `[a, , ...rest]` used as a binding target. A nil element
// is an elision hole.
type ArrayPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (a *ArrayPattern) patternNode()         {}
func (a *ArrayPattern) expressionNode()      {}
func (a *ArrayPattern) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayPattern) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayPattern) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternProperty is one entry of an ObjectPattern: `key: target` or,
// when Shorthand, just `key` bound to an identically-named local.
type ObjectPatternProperty struct {
	Token     token.Token
	Key       Expression
	Target    Pattern
	Computed  bool
	Shorthand bool
}

func (o *ObjectPatternProperty) String() string {
	if o.Shorthand {
		return o.Target.String()
	}
	key := o.Key.String()
	if o.Computed {
		key = "[" + key + "]"
	}
	return key + ": " + o.Target.String()
}

// ObjectPattern is `{ a, b: c, ...rest }` used as a binding target.
type ObjectPattern struct {
	Token      token.Token
	Properties []*ObjectPatternProperty
	Rest       *RestElement // nil unless the pattern ends in `...rest`
}

func (o *ObjectPattern) patternNode()         {}
func (o *ObjectPattern) expressionNode()      {}
func (o *ObjectPattern) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectPattern) Pos() token.Position  { return o.Token.Pos }
func (o *ObjectPattern) String() string {
	parts := make([]string, 0, len(o.Properties)+1)
	for _, p := range o.Properties {
		parts = append(parts, p.String())
	}
	if o.Rest != nil {
		parts = append(parts, o.Rest.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
