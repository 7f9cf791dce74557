package cps

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/token"
)

// lowerForAwait desugars `for await (left of right) body` into the explicit
// async-iterator-protocol loop it stands for:
//
//	{
//	  const __itN = right[Symbol.asyncIterator]();
//	  for (;;) {
//	    const __rN = await __itN.next();
//	    if (__rN.done) break;
//	    left = __rN.value;   // or `const left = __rN.value;` for a declaration
//	    body
//	  }
//	}
//
// This keeps `for await` expressible with a plain AwaitExpression inside an
// ordinary for-loop, so the evaluator's existing await handling (driving the
// enclosing async function's coroutine, see runtime.GeneratorData) covers it
// with no separate loop-suspension machinery.
func (t *transformer) lowerForAwait(f *ast.ForOfStatement) ast.Statement {
	pos := f.Pos()
	itName := t.sym.next("it")
	resName := t.sym.next("r")

	// Symbol.asyncIterator is a computed member access, so it is built
	// directly rather than through mkMember (which only builds dot-access).
	asyncIteratorMember := &ast.MemberExpression{
		Token:    synthToken(token.LBRACKET, "[", pos),
		Object:   f.Right,
		Property: mkMember(mkIdent("Symbol", pos), "asyncIterator", pos),
		Computed: true,
	}
	iterCall := mkCall(asyncIteratorMember, nil, pos)

	itDecl := mkVarDecl(ast.DeclConst, itName, iterCall, pos)

	nextCall := mkCall(mkMember(mkIdent(itName, pos), "next", pos), nil, pos)
	awaitNext := &ast.AwaitExpression{Token: synthToken(token.IDENT, "await", pos), Argument: nextCall}
	resDecl := mkVarDecl(ast.DeclConst, resName, awaitNext, pos)

	doneTest := mkMember(mkIdent(resName, pos), "done", pos)
	breakIfDone := mkIf(doneTest, mkBreak(pos), pos)

	valueExpr := mkMember(mkIdent(resName, pos), "value", pos)
	bindStmt := bindLoopVar(f.Left, valueExpr, pos)

	loopBody := mkBlock([]ast.Statement{resDecl, breakIfDone, bindStmt, f.Body}, pos)
	forLoop := mkForInfinite(loopBody, pos)

	return mkBlock([]ast.Statement{itDecl, forLoop}, pos)
}

// bindLoopVar builds the statement that feeds one iteration's value into the
// loop variable: a fresh `const`/`let` declaration for `for await (const x
// of ...)`, or a plain assignment expression statement for `for await (x of
// ...)` over a pre-existing binding.
func bindLoopVar(left ast.Node, value ast.Expression, pos token.Position) ast.Statement {
	if decl, ok := left.(*ast.VariableDeclaration); ok && len(decl.Declarations) == 1 {
		// Reuse the original binding pattern verbatim (it may be a
		// destructuring pattern, not a plain identifier) rather than
		// rebuilding it from its string form.
		return &ast.VariableDeclaration{
			Token: decl.Token,
			Kind:  decl.Kind,
			Declarations: []*ast.VariableDeclarator{
				{Token: decl.Declarations[0].Token, Target: decl.Declarations[0].Target, Init: value},
			},
		}
	}
	if pat, ok := left.(ast.Pattern); ok {
		assign := &ast.AssignmentExpression{
			Token:    synthToken(token.ASSIGN, "=", pos),
			Operator: "=",
			Target:   pat,
			Value:    value,
		}
		return mkExprStmt(assign, pos)
	}
	// Unreachable for well-formed parser output (Left is always a Pattern or
	// a single-declarator VariableDeclaration), but fall back to a no-op
	// rather than panicking on malformed input.
	return mkExprStmt(value, pos)
}
