package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"lox/internal/ast"
	"lox/internal/interp"
	"lox/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	n.children = append(n.children, children...)
	return n
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

// FormatASTTree печатает AST файла деревом:
//
//	main.lox (span: 1:1-3:1)
//	├─ Stmt[0]: Print (span: 1:1-1:12)
//	│  └─ Binary +
//	...
func FormatASTTree(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	header := "File"
	if fs != nil {
		if src := fs.Get(file.Span.File); src != nil {
			header = src.FormatPath("auto", fs.BaseDir())
		}
	}
	root := leaf("%s (span: %s)", header, formatSpan(file.Span, fs))
	tb := treeBuilder{b: builder, fs: fs}
	for i, id := range file.Stmts {
		root.add(tb.stmt(id, fmt.Sprintf("Stmt[%d]: ", i)))
	}

	fmt.Fprintln(w, root.label)
	return renderChildren(w, root, "")
}

func renderChildren(w io.Writer, n *treeNode, prefix string) error {
	for i, child := range n.children {
		connector, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			connector, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.label); err != nil {
			return err
		}
		if err := renderChildren(w, child, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

type treeBuilder struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (tb treeBuilder) stmt(id ast.StmtID, prefix string) *treeNode {
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return leaf("%s<nil>", prefix)
	}
	node := leaf("%s%s (span: %s)", prefix, st.Kind, formatSpan(st.Span, tb.fs))
	stmts := tb.b.Stmts
	switch st.Kind {
	case ast.StmtExpr, ast.StmtPrint:
		data, _ := stmts.Expr(id)
		node.add(tb.expr(data.Expr, ""))
	case ast.StmtVar:
		data, _ := stmts.Var(id)
		node.add(leaf("Name: %s", tb.b.Name(data.Name)))
		if data.Init.IsValid() {
			node.add(tb.expr(data.Init, "Init: "))
		}
	case ast.StmtBlock:
		data, _ := stmts.Block(id)
		for i, s := range data.Stmts {
			node.add(tb.stmt(s, fmt.Sprintf("[%d] ", i)))
		}
	case ast.StmtIf:
		data, _ := stmts.If(id)
		node.add(tb.expr(data.Cond, "Cond: "), tb.stmt(data.Then, "Then: "))
		if data.Else.IsValid() {
			node.add(tb.stmt(data.Else, "Else: "))
		}
	case ast.StmtWhile:
		data, _ := stmts.While(id)
		node.add(tb.expr(data.Cond, "Cond: "), tb.stmt(data.Body, "Body: "))
	case ast.StmtFun:
		data, _ := stmts.Fun(id)
		node.add(tb.fn(data.Fn, "Fn: "))
	case ast.StmtReturn:
		data, _ := stmts.Return(id)
		if data.Value.IsValid() {
			node.add(tb.expr(data.Value, "Value: "))
		}
	case ast.StmtClass:
		data, _ := stmts.Class(id)
		node.add(leaf("Name: %s", tb.b.Name(data.Name)))
		if data.Superclass.IsValid() {
			node.add(tb.expr(data.Superclass, "Superclass: "))
		}
		for i, m := range data.Methods {
			node.add(tb.fn(m, fmt.Sprintf("Method[%d]: ", i)))
		}
	}
	return node
}

func (tb treeBuilder) fn(id ast.FnID, prefix string) *treeNode {
	fn := tb.b.Fns.Get(id)
	name := tb.b.Name(fn.Name)
	if name == "" {
		name = "<anon>"
	}
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, tb.b.Name(p.Name))
	}
	node := leaf("%s%s(%s)", prefix, name, strings.Join(params, ", "))
	body := leaf("Body")
	for i, s := range fn.Body {
		body.add(tb.stmt(s, fmt.Sprintf("[%d] ", i)))
	}
	return node.add(body)
}

func (tb treeBuilder) expr(id ast.ExprID, prefix string) *treeNode {
	ex := tb.b.Exprs.Get(id)
	if ex == nil {
		return leaf("%s<nil>", prefix)
	}
	exprs := tb.b.Exprs
	switch ex.Kind {
	case ast.ExprLit:
		data, _ := exprs.Literal(id)
		return leaf("%sLiteral %s", prefix, tb.literal(data))
	case ast.ExprVariable:
		data, _ := exprs.Variable(id)
		return leaf("%sVariable %s", prefix, tb.b.Name(data.Name))
	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		return leaf("%sAssign %s", prefix, tb.b.Name(data.Name)).add(tb.expr(data.Value, ""))
	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		return leaf("%sUnary %s", prefix, data.Op).add(tb.expr(data.Operand, ""))
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		return leaf("%sBinary %s", prefix, data.Op).add(tb.expr(data.Left, ""), tb.expr(data.Right, ""))
	case ast.ExprLogical:
		data, _ := exprs.Logical(id)
		return leaf("%sLogical %s", prefix, data.Op).add(tb.expr(data.Left, ""), tb.expr(data.Right, ""))
	case ast.ExprCall:
		data, _ := exprs.Call(id)
		node := leaf("%sCall", prefix).add(tb.expr(data.Callee, "Callee: "))
		for i, a := range data.Args {
			node.add(tb.expr(a, fmt.Sprintf("Arg[%d]: ", i)))
		}
		return node
	case ast.ExprGet:
		data, _ := exprs.PropGet(id)
		return leaf("%sGet .%s", prefix, tb.b.Name(data.Name)).add(tb.expr(data.Object, ""))
	case ast.ExprSet:
		data, _ := exprs.PropSet(id)
		return leaf("%sSet .%s", prefix, tb.b.Name(data.Name)).add(tb.expr(data.Object, "Object: "), tb.expr(data.Value, "Value: "))
	case ast.ExprThis:
		return leaf("%sThis", prefix)
	case ast.ExprSuper:
		data, _ := exprs.Super(id)
		return leaf("%sSuper .%s", prefix, tb.b.Name(data.Method))
	case ast.ExprGroup:
		data, _ := exprs.Group(id)
		return leaf("%sGroup", prefix).add(tb.expr(data.Inner, ""))
	case ast.ExprFunction:
		data, _ := exprs.Function(id)
		return tb.fn(data.Fn, prefix+"Function ")
	}
	return leaf("%s%s", prefix, ex.Kind)
}

func (tb treeBuilder) literal(data *ast.ExprLiteralData) string {
	switch data.Kind {
	case ast.ExprLitTrue:
		return "true"
	case ast.ExprLitFalse:
		return "false"
	case ast.ExprLitNumber:
		return interp.FormatNumber(data.Number)
	case ast.ExprLitString:
		return strconv.Quote(tb.b.Name(data.Str))
	}
	return "nil"
}

// FormatASTSexpr печатает каждую инструкцию файла отдельной строкой в
// скобочной записи: `(print (* (- 123) (group 45.67)))`.
func FormatASTSexpr(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	p := sexprPrinter{b: builder}
	for _, id := range file.Stmts {
		if _, err := fmt.Fprintln(w, p.stmt(id)); err != nil {
			return err
		}
	}
	return nil
}

// SexprExpr renders a single expression.
func SexprExpr(builder *ast.Builder, id ast.ExprID) string {
	return sexprPrinter{b: builder}.expr(id)
}

type sexprPrinter struct {
	b *ast.Builder
}

func parenthesize(name string, parts ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, p := range parts {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p sexprPrinter) stmts(ids []ast.StmtID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.stmt(id))
	}
	return out
}

func (p sexprPrinter) stmt(id ast.StmtID) string {
	st := p.b.Stmts.Get(id)
	stmts := p.b.Stmts
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := stmts.Expr(id)
		return parenthesize("expr", p.expr(data.Expr))
	case ast.StmtPrint:
		data, _ := stmts.Expr(id)
		return parenthesize("print", p.expr(data.Expr))
	case ast.StmtVar:
		data, _ := stmts.Var(id)
		if data.Init.IsValid() {
			return parenthesize("var", p.b.Name(data.Name), p.expr(data.Init))
		}
		return parenthesize("var", p.b.Name(data.Name))
	case ast.StmtBlock:
		data, _ := stmts.Block(id)
		return parenthesize("block", p.stmts(data.Stmts)...)
	case ast.StmtIf:
		data, _ := stmts.If(id)
		if data.Else.IsValid() {
			return parenthesize("if", p.expr(data.Cond), p.stmt(data.Then), p.stmt(data.Else))
		}
		return parenthesize("if", p.expr(data.Cond), p.stmt(data.Then))
	case ast.StmtWhile:
		data, _ := stmts.While(id)
		return parenthesize("while", p.expr(data.Cond), p.stmt(data.Body))
	case ast.StmtFun:
		data, _ := stmts.Fun(id)
		return p.fn("fun", data.Fn)
	case ast.StmtReturn:
		data, _ := stmts.Return(id)
		if data.Value.IsValid() {
			return parenthesize("return", p.expr(data.Value))
		}
		return "(return)"
	case ast.StmtClass:
		data, _ := stmts.Class(id)
		parts := []string{p.b.Name(data.Name)}
		if data.Superclass.IsValid() {
			parts = append(parts, "<", p.expr(data.Superclass))
		}
		for _, m := range data.Methods {
			parts = append(parts, p.fn("method", m))
		}
		return parenthesize("class", parts...)
	}
	return parenthesize(st.Kind.String())
}

func (p sexprPrinter) fn(head string, id ast.FnID) string {
	fn := p.b.Fns.Get(id)
	params := make([]string, 0, len(fn.Params))
	for _, prm := range fn.Params {
		params = append(params, p.b.Name(prm.Name))
	}
	parts := make([]string, 0, len(fn.Body)+2)
	if name := p.b.Name(fn.Name); name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, "("+strings.Join(params, " ")+")")
	parts = append(parts, p.stmts(fn.Body)...)
	return parenthesize(head, parts...)
}

func (p sexprPrinter) expr(id ast.ExprID) string {
	ex := p.b.Exprs.Get(id)
	exprs := p.b.Exprs
	switch ex.Kind {
	case ast.ExprLit:
		data, _ := exprs.Literal(id)
		if data.Kind == ast.ExprLitString {
			return p.b.Name(data.Str)
		}
		return treeBuilder{b: p.b}.literal(data)
	case ast.ExprVariable:
		data, _ := exprs.Variable(id)
		return p.b.Name(data.Name)
	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		return parenthesize("=", p.b.Name(data.Name), p.expr(data.Value))
	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		return parenthesize(data.Op.String(), p.expr(data.Operand))
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		return parenthesize(data.Op.String(), p.expr(data.Left), p.expr(data.Right))
	case ast.ExprLogical:
		data, _ := exprs.Logical(id)
		return parenthesize(data.Op.String(), p.expr(data.Left), p.expr(data.Right))
	case ast.ExprCall:
		data, _ := exprs.Call(id)
		parts := []string{p.expr(data.Callee)}
		for _, a := range data.Args {
			parts = append(parts, p.expr(a))
		}
		return parenthesize("call", parts...)
	case ast.ExprGet:
		data, _ := exprs.PropGet(id)
		return parenthesize(".", p.expr(data.Object), p.b.Name(data.Name))
	case ast.ExprSet:
		data, _ := exprs.PropSet(id)
		return parenthesize("=", parenthesize(".", p.expr(data.Object), p.b.Name(data.Name)), p.expr(data.Value))
	case ast.ExprThis:
		return "this"
	case ast.ExprSuper:
		data, _ := exprs.Super(id)
		return parenthesize("super", p.b.Name(data.Method))
	case ast.ExprGroup:
		data, _ := exprs.Group(id)
		return parenthesize("group", p.expr(data.Inner))
	case ast.ExprFunction:
		data, _ := exprs.Function(id)
		return p.fn("fun", data.Fn)
	}
	return ex.Kind.String()
}
