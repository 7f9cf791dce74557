package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SExpr is a cons-cell projection of a Node, used for the stable "IR wire
// form" spec.md §6 documents and for go-snaps snapshot tests. It never
// carries more information than the typed AST it was derived from; ToSExpr
// is the only producer.
type SExpr struct {
	Tag      string
	Atom     string // set instead of Children for a leaf (identifier name, literal text, operator)
	Children []*SExpr
}

// String renders the s-expression in `(tag kid1 kid2 ...)` form. A leaf
// with no children renders as its atom alone (its tag is not printed), or
// as `(tag)` when its atom is empty.
func (s *SExpr) String() string {
	if s == nil {
		return "()"
	}
	if len(s.Children) == 0 {
		if s.Atom != "" {
			return s.Atom
		}
		return "(" + s.Tag + ")"
	}
	parts := make([]string, len(s.Children))
	for i, c := range s.Children {
		parts[i] = c.String()
	}
	return "(" + s.Tag + " " + strings.Join(parts, " ") + ")"
}

func atom(tag, text string) *SExpr { return &SExpr{Tag: tag, Atom: text} }

func cell(tag string, kids ...*SExpr) *SExpr {
	out := make([]*SExpr, 0, len(kids))
	for _, k := range kids {
		if k != nil {
			out = append(out, k)
		}
	}
	return &SExpr{Tag: tag, Children: out}
}

// ToSExpr converts any IR node into its cons-cell projection. Unknown node
// types fall back to a tag carrying the node's String() form, so new node
// types never panic the converter; they simply render opaquely until taught.
func ToSExpr(n Node) *SExpr {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Program:
		return cell("program", toSExprList(statementsToNodes(v.Body))...)
	case *Identifier:
		return atom("ident", v.Name)
	case *PrivateName:
		return atom("private-name", v.Name)
	case *NumericLiteral:
		return atom("num", v.Raw)
	case *BigIntLiteral:
		return atom("bigint", v.Raw)
	case *StringLiteral:
		return atom("str", strconv.Quote(v.Value))
	case *BooleanLiteral:
		return atom("bool", strconv.FormatBool(v.Value))
	case *NullLiteral:
		return atom("null", "null")
	case *RegExpLiteral:
		return atom("regexp", "/"+v.Pattern+"/"+v.Flags)
	case *ThisExpression:
		return atom("this", "this")
	case *SuperExpression:
		return atom("super", "super")
	case *TemplateLiteral:
		kids := make([]*SExpr, 0, len(v.Quasis)+len(v.Expressions))
		for i, q := range v.Quasis {
			kids = append(kids, atom("quasi", q.Raw))
			if i < len(v.Expressions) {
				kids = append(kids, ToSExpr(v.Expressions[i]))
			}
		}
		return cell("template", kids...)
	case *TaggedTemplateExpression:
		return cell("tagged-template", ToSExpr(v.Tag), ToSExpr(v.Quasi))
	case *SpreadElement:
		return cell("spread", ToSExpr(v.Arg))
	case *ArrayLiteral:
		kids := make([]*SExpr, len(v.Elements))
		for i, e := range v.Elements {
			kids[i] = ToSExpr(e)
		}
		return cell("array", kids...)
	case *ObjectProperty:
		return cell("prop", ToSExpr(v.Key), ToSExpr(v.Value))
	case *ObjectLiteral:
		kids := make([]*SExpr, len(v.Properties))
		for i, p := range v.Properties {
			kids[i] = ToSExpr(p)
		}
		return cell("object", kids...)
	case *FunctionLiteral:
		params := make([]*SExpr, len(v.Params))
		for i, p := range v.Params {
			params[i] = ToSExpr(p.Pattern)
		}
		tag := "function"
		if v.IsArrow {
			tag = "arrow"
		}
		var body *SExpr
		if v.Body != nil {
			body = ToSExpr(v.Body)
		} else {
			body = ToSExpr(v.ExprBody)
		}
		return cell(tag, cell("params", params...), body)
	case *UnaryExpression:
		return cell("unary:"+v.Operator, ToSExpr(v.Operand))
	case *UpdateExpression:
		return cell("update:"+v.Operator, ToSExpr(v.Operand))
	case *BinaryExpression:
		return cell("binop:"+v.Operator, ToSExpr(v.Left), ToSExpr(v.Right))
	case *LogicalExpression:
		return cell("logical:"+v.Operator, ToSExpr(v.Left), ToSExpr(v.Right))
	case *AssignmentExpression:
		return cell("assign:"+v.Operator, ToSExpr(v.Target), ToSExpr(v.Value))
	case *ConditionalExpression:
		return cell("cond", ToSExpr(v.Test), ToSExpr(v.Consequent), ToSExpr(v.Alternate))
	case *SequenceExpression:
		kids := make([]*SExpr, len(v.Expressions))
		for i, e := range v.Expressions {
			kids[i] = ToSExpr(e)
		}
		return cell("seq", kids...)
	case *CallExpression:
		kids := make([]*SExpr, 0, len(v.Args)+1)
		kids = append(kids, ToSExpr(v.Callee))
		for _, a := range v.Args {
			kids = append(kids, ToSExpr(a))
		}
		tag := "call"
		if v.Optional {
			tag = "call?"
		}
		return cell(tag, kids...)
	case *NewExpression:
		kids := make([]*SExpr, 0, len(v.Args)+1)
		kids = append(kids, ToSExpr(v.Callee))
		for _, a := range v.Args {
			kids = append(kids, ToSExpr(a))
		}
		return cell("new", kids...)
	case *MemberExpression:
		tag := "member"
		if v.Computed {
			tag = "member-computed"
		}
		if v.Optional {
			tag += "?"
		}
		return cell(tag, ToSExpr(v.Object), ToSExpr(v.Property))
	case *YieldExpression:
		tag := "yield"
		if v.Delegate {
			tag = "yield*"
		}
		return cell(tag, ToSExpr(v.Argument))
	case *AwaitExpression:
		return cell("await", ToSExpr(v.Argument))
	case *RestElement:
		return cell("rest", ToSExpr(v.Target))
	case *AssignmentPattern:
		return cell("pattern-default", ToSExpr(v.Target), ToSExpr(v.Default))
	case *ArrayPattern:
		kids := make([]*SExpr, len(v.Elements))
		for i, e := range v.Elements {
			kids[i] = ToSExpr(e)
		}
		return cell("array-pattern", kids...)
	case *ObjectPattern:
		kids := make([]*SExpr, 0, len(v.Properties)+1)
		for _, p := range v.Properties {
			kids = append(kids, cell("pattern-prop", ToSExpr(p.Key), ToSExpr(p.Target)))
		}
		if v.Rest != nil {
			kids = append(kids, ToSExpr(v.Rest))
		}
		return cell("object-pattern", kids...)
	case *ExpressionStatement:
		return cell("expr-stmt", ToSExpr(v.Expr))
	case *BlockStatement:
		return cell("block", toSExprList(statementsToNodes(v.Body))...)
	case *EmptyStatement:
		return atom("empty", ";")
	case *DebuggerStatement:
		return atom("debugger", "debugger")
	case *LabeledStatement:
		return cell("label:"+v.Label.Name, ToSExpr(v.Body))
	case *VariableDeclarator:
		return cell("declarator", ToSExpr(v.Target), ToSExpr(v.Init))
	case *VariableDeclaration:
		kids := make([]*SExpr, len(v.Declarations))
		for i, d := range v.Declarations {
			kids[i] = ToSExpr(d)
		}
		return cell(v.Kind.String(), kids...)
	case *FunctionDeclaration:
		return ToSExpr(v.Function)
	case *ReturnStatement:
		return cell("return", ToSExpr(v.Argument))
	case *ThrowStatement:
		return cell("throw", ToSExpr(v.Argument))
	case *BreakStatement:
		if v.Label != nil {
			return cell("break:" + v.Label.Name)
		}
		return atom("break", "break")
	case *ContinueStatement:
		if v.Label != nil {
			return cell("continue:" + v.Label.Name)
		}
		return atom("continue", "continue")
	case *IfStatement:
		return cell("if", ToSExpr(v.Test), ToSExpr(v.Consequent), ToSExpr(v.Alternate))
	case *WhileStatement:
		return cell("while", ToSExpr(v.Test), ToSExpr(v.Body))
	case *DoWhileStatement:
		return cell("do-while", ToSExpr(v.Body), ToSExpr(v.Test))
	case *ForStatement:
		return cell("for", ToSExpr(v.Init), ToSExpr(v.Test), ToSExpr(v.Update), ToSExpr(v.Body))
	case *ForInStatement:
		return cell("for-in", ToSExpr(v.Left), ToSExpr(v.Right), ToSExpr(v.Body))
	case *ForOfStatement:
		tag := "for-of"
		if v.IsAwait {
			tag = "for-await-of"
		}
		return cell(tag, ToSExpr(v.Left), ToSExpr(v.Right), ToSExpr(v.Body))
	case *SwitchCase:
		kids := make([]*SExpr, 0, len(v.Consequent)+1)
		kids = append(kids, ToSExpr(v.Test))
		for _, s := range v.Consequent {
			kids = append(kids, ToSExpr(s))
		}
		return cell("case", kids...)
	case *SwitchStatement:
		kids := make([]*SExpr, 0, len(v.Cases)+1)
		kids = append(kids, ToSExpr(v.Discriminant))
		for _, c := range v.Cases {
			kids = append(kids, ToSExpr(c))
		}
		return cell("switch", kids...)
	case *CatchClause:
		return cell("catch", ToSExpr(v.Param), ToSExpr(v.Body))
	case *TryStatement:
		var handler, finalizer *SExpr
		if v.Handler != nil {
			handler = ToSExpr(v.Handler)
		}
		if v.Finalizer != nil {
			finalizer = ToSExpr(v.Finalizer)
		}
		return cell("try", ToSExpr(v.Block), handler, finalizer)
	case *WithStatement:
		return cell("with", ToSExpr(v.Object), ToSExpr(v.Body))
	case *ImportDeclaration:
		return cell("import", ToSExpr(v.Source))
	case *ExportNamedDeclaration:
		if v.Declaration != nil {
			return cell("export", ToSExpr(v.Declaration))
		}
		return cell("export-named")
	case *ExportDefaultDeclaration:
		return cell("export-default", ToSExpr(v.Declaration))
	case *MethodDefinition:
		return cell("method:"+methodKindName(v.Kind), ToSExpr(v.Key), ToSExpr(v.Value))
	case *PropertyDefinition:
		return cell("field", ToSExpr(v.Key), ToSExpr(v.Value))
	case *ClassBody:
		kids := make([]*SExpr, 0, len(v.Methods)+len(v.Fields))
		for _, m := range v.Methods {
			kids = append(kids, ToSExpr(m))
		}
		for _, f := range v.Fields {
			kids = append(kids, ToSExpr(f))
		}
		return cell("class-body", kids...)
	case *ClassExpression:
		return cell("class", ToSExpr(v.SuperClass), ToSExpr(v.Body))
	case *ClassDeclaration:
		return ToSExpr(v.Class)
	default:
		return atom(fmt.Sprintf("%T", v), n.String())
	}
}

func methodKindName(k MethodKind) string {
	switch k {
	case MethodConstructor:
		return "constructor"
	case MethodGet:
		return "get"
	case MethodSet:
		return "set"
	default:
		return "method"
	}
}

func statementsToNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func toSExprList(nodes []Node) []*SExpr {
	out := make([]*SExpr, len(nodes))
	for i, n := range nodes {
		out[i] = ToSExpr(n)
	}
	return out
}
