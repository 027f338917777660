package resolve

import (
	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/source"
)

type fileResolver struct {
	builder  *ast.Builder
	reporter diag.Reporter
	locals   Locals
	names    wellKnownNames

	scopes       scopeStack
	currentFn    FunctionKind
	currentClass ClassKind
	errors       int
}

func (fr *fileResolver) report(code diag.Code, sp source.Span, msg string) {
	fr.errors++
	if fr.reporter != nil {
		diag.ReportError(fr.reporter, code, sp, msg).Emit()
	}
}

func (fr *fileResolver) resolveStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		fr.resolveStmt(id)
	}
}

func (fr *fileResolver) resolveStmt(id ast.StmtID) {
	stmts := fr.builder.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr, ast.StmtPrint:
		data, _ := stmts.Expr(id)
		fr.resolveExpr(data.Expr)

	case ast.StmtVar:
		data, _ := stmts.Var(id)
		fr.declare(data.Name, data.NameSpan)
		if data.Init.IsValid() {
			fr.resolveExpr(data.Init)
		}
		fr.define(data.Name)

	case ast.StmtBlock:
		data, _ := stmts.Block(id)
		fr.scopes.push()
		fr.resolveStmts(data.Stmts)
		fr.scopes.pop()

	case ast.StmtIf:
		data, _ := stmts.If(id)
		fr.resolveExpr(data.Cond)
		fr.resolveStmt(data.Then)
		if data.Else.IsValid() {
			fr.resolveStmt(data.Else)
		}

	case ast.StmtWhile:
		data, _ := stmts.While(id)
		fr.resolveExpr(data.Cond)
		fr.resolveStmt(data.Body)

	case ast.StmtFun:
		data, _ := stmts.Fun(id)
		fn := fr.builder.Fns.Get(data.Fn)
		// имя готово до тела: рекурсия разрешена
		fr.declare(fn.Name, fn.NameSpan)
		fr.define(fn.Name)
		fr.resolveFunction(fn, FnFunction)

	case ast.StmtReturn:
		data, _ := stmts.Return(id)
		if fr.currentFn == FnNone {
			fr.report(diag.SemaReturnOutsideFunction, data.Keyword, "Can't return from top-level code.")
		}
		if data.Value.IsValid() {
			if fr.currentFn == FnInitializer {
				fr.report(diag.SemaReturnValueFromInitializer, data.Keyword, "Can't return a value from an initializer.")
			}
			fr.resolveExpr(data.Value)
		}

	case ast.StmtClass:
		data, _ := stmts.Class(id)
		fr.resolveClass(data)
	}
}

func (fr *fileResolver) resolveClass(data *ast.StmtClassData) {
	enclosingClass := fr.currentClass
	fr.currentClass = ClassPlain
	defer func() { fr.currentClass = enclosingClass }()

	fr.declare(data.Name, data.NameSpan)
	fr.define(data.Name)

	if data.Superclass.IsValid() {
		if sup, ok := fr.builder.Exprs.Variable(data.Superclass); ok && sup.Name == data.Name {
			fr.report(diag.SemaClassInheritsItself, fr.builder.Exprs.Get(data.Superclass).Span, "A class can't inherit from itself.")
		}
		fr.currentClass = ClassSub
		fr.resolveExpr(data.Superclass)

		fr.scopes.push()
		fr.scopes.innermost()[fr.names.super] = true
		defer fr.scopes.pop()
	}

	fr.scopes.push()
	fr.scopes.innermost()[fr.names.this] = true
	for _, m := range data.Methods {
		fn := fr.builder.Fns.Get(m)
		kind := FnMethod
		if fn.Name == fr.names.init {
			kind = FnInitializer
		}
		fr.resolveFunction(fn, kind)
	}
	fr.scopes.pop()
}

func (fr *fileResolver) resolveFunction(fn *ast.Fn, kind FunctionKind) {
	enclosingFn := fr.currentFn
	fr.currentFn = kind

	fr.scopes.push()
	for _, param := range fn.Params {
		fr.declare(param.Name, param.Span)
		fr.define(param.Name)
	}
	fr.resolveStmts(fn.Body)
	fr.scopes.pop()

	fr.currentFn = enclosingFn
}

func (fr *fileResolver) resolveExpr(id ast.ExprID) {
	exprs := fr.builder.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprLit:
		// nothing to resolve

	case ast.ExprVariable:
		data, _ := exprs.Variable(id)
		if ready, declared := fr.scopes.innermost()[data.Name]; declared && !ready {
			fr.report(diag.SemaSelfReferentialInitializer, expr.Span, "Can't read local variable in its own initializer.")
		}
		fr.resolveLocal(id, data.Name)

	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		fr.resolveExpr(data.Value)
		fr.resolveLocal(id, data.Name)

	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		fr.resolveExpr(data.Operand)

	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		fr.resolveExpr(data.Left)
		fr.resolveExpr(data.Right)

	case ast.ExprLogical:
		data, _ := exprs.Logical(id)
		fr.resolveExpr(data.Left)
		fr.resolveExpr(data.Right)

	case ast.ExprCall:
		data, _ := exprs.Call(id)
		fr.resolveExpr(data.Callee)
		for _, arg := range data.Args {
			fr.resolveExpr(arg)
		}

	case ast.ExprGet:
		data, _ := exprs.PropGet(id)
		fr.resolveExpr(data.Object)

	case ast.ExprSet:
		data, _ := exprs.PropSet(id)
		fr.resolveExpr(data.Value)
		fr.resolveExpr(data.Object)

	case ast.ExprThis:
		if fr.currentClass == ClassNone {
			fr.report(diag.SemaThisOutsideClass, expr.Span, "Can't use 'this' outside of a class.")
			return
		}
		fr.resolveLocal(id, fr.names.this)

	case ast.ExprSuper:
		switch fr.currentClass {
		case ClassNone:
			fr.report(diag.SemaSuperOutsideSubclass, expr.Span, "Can't use 'super' outside of a class.")
		case ClassPlain:
			fr.report(diag.SemaSuperOutsideSubclass, expr.Span, "Can't use 'super' in a class with no superclass.")
		default:
			fr.resolveLocal(id, fr.names.super)
		}

	case ast.ExprGroup:
		data, _ := exprs.Group(id)
		fr.resolveExpr(data.Inner)

	case ast.ExprFunction:
		data, _ := exprs.Function(id)
		fr.resolveFunction(fr.builder.Fns.Get(data.Fn), FnFunction)
	}
}

// declare вносит имя в текущий scope как "ещё не готово". На глобальном
// уровне ничего не делает: глобалы динамические.
func (fr *fileResolver) declare(name source.StringID, sp source.Span) {
	sc := fr.scopes.innermost()
	if sc == nil {
		return
	}
	if _, exists := sc[name]; exists {
		fr.report(diag.SemaDuplicateLocal, sp, "Already a variable with this name in this scope.")
	}
	sc[name] = false
}

func (fr *fileResolver) define(name source.StringID) {
	if sc := fr.scopes.innermost(); sc != nil {
		sc[name] = true
	}
}

func (fr *fileResolver) resolveLocal(id ast.ExprID, name source.StringID) {
	if hops, ok := fr.scopes.lookup(name); ok {
		fr.locals[id] = hops
	}
}
