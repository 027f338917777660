package interp

import (
	"fmt"
	"io"

	"lox/internal/ast"
	"lox/internal/source"
)

func (in *Interpreter) execStmt(id ast.StmtID) (completion, error) {
	stmt := in.builder.Stmts.Get(id)
	if stmt == nil {
		panic(fmt.Errorf("interp: unknown statement %d", id))
	}
	in.tracer.TraceStmt(len(in.frames), stmt)

	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := in.builder.Stmts.Expr(id)
		_, err := in.eval(data.Expr)
		return completion{}, err

	case ast.StmtPrint:
		data, _ := in.builder.Stmts.Expr(id)
		v, err := in.eval(data.Expr)
		if err != nil {
			return completion{}, err
		}
		if _, err := io.WriteString(in.out, v.String()+"\n"); err != nil {
			return completion{}, fmt.Errorf("interp: print: %w", err)
		}
		return completion{}, nil

	case ast.StmtVar:
		data, _ := in.builder.Stmts.Var(id)
		v := Nil()
		if data.Init.IsValid() {
			var err error
			if v, err = in.eval(data.Init); err != nil {
				return completion{}, err
			}
		}
		in.env.Define(data.Name, v)
		return completion{}, nil

	case ast.StmtBlock:
		data, _ := in.builder.Stmts.Block(id)
		return in.execBlock(data.Stmts, NewEnvironment(in.env))

	case ast.StmtIf:
		data, _ := in.builder.Stmts.If(id)
		cond, err := in.eval(data.Cond)
		if err != nil {
			return completion{}, err
		}
		if cond.Truthy() {
			return in.execStmt(data.Then)
		}
		if data.Else.IsValid() {
			return in.execStmt(data.Else)
		}
		return completion{}, nil

	case ast.StmtWhile:
		data, _ := in.builder.Stmts.While(id)
		return in.execWhile(data)

	case ast.StmtFun:
		data, _ := in.builder.Stmts.Fun(id)
		decl := in.builder.Fns.Get(data.Fn)
		in.env.Define(decl.Name, MakeFunction(in.newFunction(decl, in.env, false)))
		return completion{}, nil

	case ast.StmtReturn:
		data, _ := in.builder.Stmts.Return(id)
		v := Nil()
		if data.Value.IsValid() {
			var err error
			if v, err = in.eval(data.Value); err != nil {
				return completion{}, err
			}
		}
		return completion{returning: true, value: v}, nil

	case ast.StmtClass:
		data, _ := in.builder.Stmts.Class(id)
		return completion{}, in.execClass(data)
	}
	panic(fmt.Errorf("interp: unexpected statement kind %s", stmt.Kind))
}

// execBlock runs stmts in env and restores the previous scope on every exit
// path, including runtime errors.
func (in *Interpreter) execBlock(stmts []ast.StmtID, env *Environment) (completion, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, id := range stmts {
		c, err := in.execStmt(id)
		if err != nil || c.returning {
			return c, err
		}
	}
	return completion{}, nil
}

func (in *Interpreter) execWhile(data *ast.StmtWhileData) (completion, error) {
	for {
		if err := in.checkContext(); err != nil {
			return completion{}, err
		}
		cond, err := in.eval(data.Cond)
		if err != nil {
			return completion{}, err
		}
		if !cond.Truthy() {
			return completion{}, nil
		}
		c, err := in.execStmt(data.Body)
		if err != nil || c.returning {
			return c, err
		}
	}
}

func (in *Interpreter) execClass(data *ast.StmtClassData) error {
	var superclass *Class
	if data.Superclass.IsValid() {
		v, err := in.eval(data.Superclass)
		if err != nil {
			return err
		}
		if v.Kind != VKClass {
			return in.eb.notAClass(in.builder.Exprs.Get(data.Superclass).Span)
		}
		superclass = v.Class
	}

	in.env.Define(data.Name, Nil())

	// Methods close over a scope holding `super` when there is a superclass.
	methodEnv := in.env
	if superclass != nil {
		methodEnv = NewEnvironment(in.env)
		methodEnv.Define(in.names.super, MakeClass(superclass))
	}

	methods := make(map[source.StringID]*Function, len(data.Methods))
	for _, m := range data.Methods {
		decl := in.builder.Fns.Get(m)
		methods[decl.Name] = in.newFunction(decl, methodEnv, decl.Name == in.names.init)
	}

	class := &Class{
		Name:       in.builder.Name(data.Name),
		Superclass: superclass,
		Methods:    methods,
	}
	in.env.Define(data.Name, MakeClass(class))
	return nil
}
