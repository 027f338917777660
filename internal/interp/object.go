package interp

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/source"
)

// NativeFunc implements a host function. A returned error that is not a
// *RuntimeError is reported as RT1099 at the call site.
type NativeFunc func(args []Value) (Value, error)

// Native is a function provided by the host.
type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

func (n *Native) String() string { return "<native fn>" }

// Function is a user function: a declaration plus the scope it closes over.
// Bound methods are Functions whose Closure holds `this`.
type Function struct {
	Decl    *ast.Fn
	Closure *Environment
	IsInit  bool
	Name    string // "" for `fun` expressions
}

func (f *Function) Arity() int { return f.Decl.Arity() }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return "<fn " + f.Name + ">"
}

// Bind returns a copy of f whose closure is a fresh scope {this: inst}
// chained in front of f.Closure.
func (f *Function) Bind(this source.StringID, inst *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define(this, MakeInstance(inst))
	return &Function{
		Decl:    f.Decl,
		Closure: env,
		IsInit:  f.IsInit,
		Name:    f.Name,
	}
}

// Class holds the methods declared directly in its body; inherited ones are
// found through Superclass.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[source.StringID]*Function
}

func (c *Class) String() string { return "<class " + c.Name + ">" }

// FindMethod walks the superclass chain; nil when no class declares name.
func (c *Class) FindMethod(name source.StringID) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// Instance is an object with its own field map.
type Instance struct {
	Class  *Class
	Fields map[source.StringID]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[source.StringID]Value)}
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// Get looks up a field first and falls back to a method bound to i.
func (i *Instance) Get(name, this source.StringID) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return MakeFunction(m.Bind(this, i)), true
	}
	return Nil(), false
}

func (i *Instance) Set(name source.StringID, v Value) {
	i.Fields[name] = v
}
