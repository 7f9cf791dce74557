package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsengine/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Type: token.IDENT, Literal: name}, Name: name}
}

func TestProgramStringJoinsStatements(t *testing.T) {
	prog := &Program{
		Body: []Statement{
			&ExpressionStatement{Expr: ident("a")},
			&ExpressionStatement{Expr: ident("b")},
		},
	}
	out := prog.String()
	if !strings.Contains(out, "a;") || !strings.Contains(out, "b;") {
		t.Fatalf("got %q", out)
	}
}

func TestBinaryExpressionString(t *testing.T) {
	e := &BinaryExpression{Operator: "+", Left: ident("x"), Right: ident("y")}
	if got := e.String(); got != "(x + y)" {
		t.Fatalf("got %q", got)
	}
}

func TestMemberExpressionOptionalChaining(t *testing.T) {
	m := &MemberExpression{Object: ident("a"), Property: ident("b"), Optional: true}
	if got := m.String(); got != "a?.b" {
		t.Fatalf("got %q", got)
	}
}

func TestVariableDeclarationString(t *testing.T) {
	v := &VariableDeclaration{
		Kind: DeclConst,
		Declarations: []*VariableDeclarator{
			{Target: ident("x"), Init: &NumericLiteral{Raw: "1"}},
		},
	}
	if got := v.String(); got != "const x = 1;" {
		t.Fatalf("got %q", got)
	}
}

func TestToSExprBinaryExpression(t *testing.T) {
	e := &BinaryExpression{Operator: "+", Left: ident("x"), Right: &NumericLiteral{Raw: "1"}}
	s := ToSExpr(e)
	if got := s.String(); got != "(binop:+ x 1)" {
		t.Fatalf("got %q", got)
	}
}

func TestToSExprProgramNested(t *testing.T) {
	prog := &Program{
		Body: []Statement{
			&IfStatement{
				Test:       ident("cond"),
				Consequent: &ExpressionStatement{Expr: ident("a")},
			},
		},
	}
	s := ToSExpr(prog)
	want := "(program (if cond (expr-stmt a)))"
	if got := s.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestToSExprHandlesNilGracefully(t *testing.T) {
	if got := ToSExpr(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	ifStmt := &IfStatement{Test: ident("c"), Consequent: &ExpressionStatement{Expr: ident("a")}}
	s := ToSExpr(ifStmt)
	if strings.Contains(s.String(), "<nil>") {
		t.Fatalf("nil Alternate leaked into output: %q", s.String())
	}
}

func TestObjectPatternShorthandString(t *testing.T) {
	p := &ObjectPattern{
		Properties: []*ObjectPatternProperty{
			{Key: ident("x"), Target: ident("x"), Shorthand: true},
		},
	}
	if got := p.String(); got != "{x}" {
		t.Fatalf("got %q", got)
	}
}

func TestFunctionLiteralArrowString(t *testing.T) {
	f := &FunctionLiteral{
		IsArrow: true,
		Params:  []*Param{{Pattern: ident("x")}},
		ExprBody: &BinaryExpression{
			Operator: "+", Left: ident("x"), Right: &NumericLiteral{Raw: "1"},
		},
	}
	got := f.String()
	if !strings.HasPrefix(got, "(x) =>") {
		t.Fatalf("got %q", got)
	}
}
