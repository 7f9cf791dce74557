package cps

import (
	"fmt"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// gensym hands out unique synthetic identifier names for a single Transform
// run. Plain incrementing counter: deterministic, and collisions with user
// identifiers are avoided by the leading double underscore, a prefix the
// lexer accepts but idiomatic JS source does not use for bindings that must
// round-trip through this transform.
type gensym struct{ n int }

func (g *gensym) next(base string) string {
	g.n++
	return fmt.Sprintf("__%s%d", base, g.n)
}

func synthToken(t token.Type, lit string, pos token.Position) token.Token {
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

func mkIdent(name string, pos token.Position) *ast.Identifier {
	return &ast.Identifier{Token: synthToken(token.IDENT, name, pos), Name: name}
}

func mkMember(obj ast.Expression, prop string, pos token.Position) *ast.MemberExpression {
	return &ast.MemberExpression{
		Token:    synthToken(token.DOT, ".", pos),
		Object:   obj,
		Property: mkIdent(prop, pos),
		Computed: false,
	}
}

func mkCall(callee ast.Expression, args []ast.Expression, pos token.Position) *ast.CallExpression {
	return &ast.CallExpression{Token: synthToken(token.LPAREN, "(", pos), Callee: callee, Args: args}
}

func mkBlock(stmts []ast.Statement, pos token.Position) *ast.BlockStatement {
	return &ast.BlockStatement{Token: synthToken(token.LBRACE, "{", pos), Body: stmts}
}

func mkExprStmt(e ast.Expression, pos token.Position) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Token: synthToken(token.IDENT, "", pos), Expr: e}
}

func mkVarDecl(kind ast.DeclKind, name string, init ast.Expression, pos token.Position) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		Token: synthToken(token.VAR, kind.String(), pos),
		Kind:  kind,
		Declarations: []*ast.VariableDeclarator{
			{Target: mkIdent(name, pos), Init: init},
		},
	}
}

func mkIf(test ast.Expression, cons ast.Statement, pos token.Position) *ast.IfStatement {
	return &ast.IfStatement{Token: synthToken(token.IF, "if", pos), Test: test, Consequent: cons}
}

func mkBreak(pos token.Position) *ast.BreakStatement {
	return &ast.BreakStatement{Token: synthToken(token.BREAK, "break", pos)}
}

// mkForInfinite builds the `for (;;) body` trampoline used to lower
// `for await` loops into repeated iterator-protocol calls.
func mkForInfinite(body ast.Statement, pos token.Position) *ast.ForStatement {
	return &ast.ForStatement{Token: synthToken(token.FOR, "for", pos), Body: body}
}
