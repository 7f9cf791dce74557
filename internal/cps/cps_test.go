package cps

import (
	"testing"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/cwbudde/go-jsengine/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src, "test.js")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestNeedsTransformationDetectsAsyncFunction(t *testing.T) {
	prog := parse(t, "async function f() { return 1; }")
	if !NeedsTransformation(prog) {
		t.Fatalf("expected NeedsTransformation to find the async function")
	}
}

func TestNeedsTransformationDetectsForAwait(t *testing.T) {
	prog := parse(t, "async function f(xs) { for await (const x of xs) {} }")
	if !NeedsTransformation(prog) {
		t.Fatalf("expected NeedsTransformation to find the for-await loop")
	}
}

func TestNeedsTransformationFalseForPlainScript(t *testing.T) {
	prog := parse(t, "let x = 1; for (const y of [1,2,3]) { x += y; }")
	if NeedsTransformation(prog) {
		t.Fatalf("plain script should not need transformation")
	}
}

func TestTransformLowersForAwaitToPlainForLoop(t *testing.T) {
	prog := parse(t, "async function f(xs) { for await (const x of xs) { use(x); } }")
	Transform(prog)

	fd, ok := prog.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected a function declaration, got %#v", prog.Body[0])
	}
	body := fd.Function.Body
	if len(body.Body) != 1 {
		t.Fatalf("expected the for-await loop replaced by a single wrapper block, got %d stmts", len(body.Body))
	}
	wrapper, ok := body.Body[0].(*ast.BlockStatement)
	if !ok || len(wrapper.Body) != 2 {
		t.Fatalf("expected a 2-statement wrapper block (iterator decl + for loop), got %#v", body.Body[0])
	}
	if _, ok := wrapper.Body[0].(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected the first wrapper statement to declare the iterator, got %#v", wrapper.Body[0])
	}
	forLoop, ok := wrapper.Body[1].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected the second wrapper statement to be the trampoline for-loop, got %#v", wrapper.Body[1])
	}
	loopBody, ok := forLoop.Body.(*ast.BlockStatement)
	if !ok || len(loopBody.Body) != 4 {
		t.Fatalf("expected a 4-statement loop body (await next, break check, bind, original body), got %#v", forLoop.Body)
	}
	resultDecl, ok := loopBody.Body[0].(*ast.VariableDeclaration)
	if !ok || resultDecl.Declarations[0].Init == nil {
		t.Fatalf("expected the first loop statement to await the iterator result")
	}
	if _, ok := resultDecl.Declarations[0].Init.(*ast.AwaitExpression); !ok {
		t.Fatalf("expected the iterator result to be awaited, got %#v", resultDecl.Declarations[0].Init)
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	prog := parse(t, "async function f(xs) { for await (const x of xs) {} }")
	first := Transform(prog)
	second := Transform(prog)
	if first != second {
		t.Fatalf("Transform should return the same program pointer")
	}
	fd := first.Body[0].(*ast.FunctionDeclaration)
	if len(fd.Function.Body.Body) != 1 {
		t.Fatalf("second Transform call should not re-wrap an already-lowered loop, got %d stmts", len(fd.Function.Body.Body))
	}
}

func TestTransformLowersNestedForAwaitInsideArrowFunction(t *testing.T) {
	prog := parse(t, "const f = async (xs) => { for await (const x of xs) {} };")
	Transform(prog)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	fn := decl.Declarations[0].Init.(*ast.FunctionLiteral)
	if _, ok := fn.Body.Body[0].(*ast.BlockStatement); !ok {
		t.Fatalf("expected the for-await loop nested in the arrow body to be lowered, got %#v", fn.Body.Body[0])
	}
}
