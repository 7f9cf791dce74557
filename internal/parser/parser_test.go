package parser

import (
	"testing"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/gkampitakis/go-snaps/snaps"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l, src, "test.js")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseVariableDeclarations(t *testing.T) {
	prog := parse(t, "let x = 1, y = 2; const z = x + y;")
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok || decl.Kind != ast.DeclLet || len(decl.Declarations) != 2 {
		t.Fatalf("got %#v", prog.Body[0])
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3;")
	es := prog.Body[0].(*ast.ExpressionStatement)
	bin := es.Expr.(*ast.BinaryExpression)
	if bin.Operator != "+" {
		t.Fatalf("expected top-level +, got %s", bin.Operator)
	}
	right := bin.Right.(*ast.BinaryExpression)
	if right.Operator != "*" {
		t.Fatalf("expected nested *, got %s", right.Operator)
	}
}

func TestParseArrowFunction(t *testing.T) {
	prog := parse(t, "const f = (a, b) => a + b;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	fn := decl.Declarations[0].Init.(*ast.FunctionLiteral)
	if !fn.IsArrow || len(fn.Params) != 2 {
		t.Fatalf("got %#v", fn)
	}
}

func TestParseSingleIdentifierArrow(t *testing.T) {
	prog := parse(t, "const f = x => x * 2;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	fn := decl.Declarations[0].Init.(*ast.FunctionLiteral)
	if !fn.IsArrow || len(fn.Params) != 1 {
		t.Fatalf("got %#v", fn)
	}
}

func TestParseParenthesizedExpressionNotArrow(t *testing.T) {
	prog := parse(t, "const x = (1 + 2) * 3;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	bin := decl.Declarations[0].Init.(*ast.BinaryExpression)
	if bin.Operator != "*" {
		t.Fatalf("got %#v", bin)
	}
}

func TestParseAsyncArrowAwait(t *testing.T) {
	prog := parse(t, "const f = async () => { return await g(); };")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	fn := decl.Declarations[0].Init.(*ast.FunctionLiteral)
	if !fn.IsAsync || !fn.IsArrow {
		t.Fatalf("got %#v", fn)
	}
	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	if _, ok := ret.Argument.(*ast.AwaitExpression); !ok {
		t.Fatalf("expected await expression, got %#v", ret.Argument)
	}
}

func TestParseGeneratorYield(t *testing.T) {
	prog := parse(t, "function* gen() { yield 1; yield* other(); }")
	decl := prog.Body[0].(*ast.FunctionDeclaration)
	if !decl.Function.IsGenerator {
		t.Fatalf("expected generator")
	}
	y0 := decl.Function.Body.Body[0].(*ast.ExpressionStatement).Expr.(*ast.YieldExpression)
	if y0.Delegate {
		t.Fatalf("expected non-delegating yield")
	}
	y1 := decl.Function.Body.Body[1].(*ast.ExpressionStatement).Expr.(*ast.YieldExpression)
	if !y1.Delegate {
		t.Fatalf("expected delegating yield*")
	}
}

func TestParseDestructuringAssignment(t *testing.T) {
	prog := parse(t, "let [a, , b] = arr; let {x, y: z} = obj;")
	d0 := prog.Body[0].(*ast.VariableDeclaration)
	ap, ok := d0.Declarations[0].Target.(*ast.ArrayPattern)
	if !ok || len(ap.Elements) != 3 || ap.Elements[1] != nil {
		t.Fatalf("got %#v", d0.Declarations[0].Target)
	}
	d1 := prog.Body[1].(*ast.VariableDeclaration)
	op, ok := d1.Declarations[0].Target.(*ast.ObjectPattern)
	if !ok || len(op.Properties) != 2 {
		t.Fatalf("got %#v", d1.Declarations[0].Target)
	}
}

func TestParseForOfAwait(t *testing.T) {
	prog := parse(t, "async function f() { for await (const x of xs) { g(x); } }")
	decl := prog.Body[0].(*ast.FunctionDeclaration)
	loop := decl.Function.Body.Body[0].(*ast.ForOfStatement)
	if !loop.IsAwait {
		t.Fatalf("expected for-await-of")
	}
}

func TestParseClassWithGetterSetterAndField(t *testing.T) {
	prog := parse(t, `
		class Point {
			#x = 0;
			static origin = 0;
			constructor(x) { this.#x = x; }
			get x() { return this.#x; }
			set x(v) { this.#x = v; }
		}
	`)
	decl := prog.Body[0].(*ast.ClassDeclaration)
	if decl.Class.Name.Name != "Point" {
		t.Fatalf("got %#v", decl.Class.Name)
	}
	if len(decl.Class.Body.Methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(decl.Class.Body.Methods))
	}
	if len(decl.Class.Body.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(decl.Class.Body.Fields))
	}
}

func TestParseTemplateLiteralWithInterpolation(t *testing.T) {
	prog := parse(t, "const s = `a${1 + 1}b${2}c`;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	tmpl := decl.Declarations[0].Init.(*ast.TemplateLiteral)
	if len(tmpl.Quasis) != 3 || len(tmpl.Expressions) != 2 {
		t.Fatalf("got %#v", tmpl)
	}
}

func TestParseOptionalChaining(t *testing.T) {
	prog := parse(t, "a?.b?.[0]?.();")
	es := prog.Body[0].(*ast.ExpressionStatement)
	call := es.Expr.(*ast.CallExpression)
	idx := call.Callee.(*ast.MemberExpression)
	if !idx.Optional || !idx.Computed {
		t.Fatalf("got %#v", idx)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parse(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	tr := prog.Body[0].(*ast.TryStatement)
	if tr.Handler == nil || tr.Finalizer == nil {
		t.Fatalf("got %#v", tr)
	}
}

func TestParseCatchWithoutBinding(t *testing.T) {
	prog := parse(t, "try { risky(); } catch { recover(); }")
	tr := prog.Body[0].(*ast.TryStatement)
	if tr.Handler == nil || tr.Handler.Param != nil {
		t.Fatalf("expected catch with no binding, got %#v", tr.Handler)
	}
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	l := lexer.New("let x = 1 let y = 2;")
	p := New(l, "let x = 1 let y = 2;", "t.js")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error for missing semicolon before `let`")
	}
}

func TestParseRecoversAfterErrorAndContinues(t *testing.T) {
	l := lexer.New("let ; let y = 2;")
	p := New(l, "let ; let y = 2;", "t.js")
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a diagnostic")
	}
	found := false
	for _, s := range prog.Body {
		if d, ok := s.(*ast.VariableDeclaration); ok && len(d.Declarations) > 0 {
			if id, ok := d.Declarations[0].Target.(*ast.Identifier); ok && id.Name == "y" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and parse `let y = 2;`")
	}
}

func TestParseProgramSExprSnapshot(t *testing.T) {
	prog := parse(t, `
		function fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
	`)
	snaps.MatchSnapshot(t, ast.ToSExpr(prog).String())
}

func TestParseClassSExprSnapshot(t *testing.T) {
	prog := parse(t, `
		class Counter extends Base {
			#count = 0;
			increment() { return ++this.#count; }
		}
	`)
	snaps.MatchSnapshot(t, ast.ToSExpr(prog).String())
}
