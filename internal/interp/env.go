package interp

import (
	"fmt"

	"lox/internal/source"
)

// Environment is one lexical scope. Scopes are shared by pointer: a closure
// keeps its defining scope alive for as long as the closure is reachable.
type Environment struct {
	values    map[source.StringID]Value
	enclosing *Environment
}

// NewEnvironment creates a scope chained in front of enclosing; nil makes a
// root (global) scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[source.StringID]Value),
		enclosing: enclosing,
	}
}

func (e *Environment) Enclosing() *Environment { return e.enclosing }

// Define inserts or overwrites name in this scope only.
func (e *Environment) Define(name source.StringID, v Value) {
	e.values[name] = v
}

// Lookup reads name from this scope only.
func (e *Environment) Lookup(name source.StringID) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// GetAt reads name exactly hops scopes out.
func (e *Environment) GetAt(hops int, name source.StringID) Value {
	v, ok := e.ancestor(hops, name).values[name]
	if !ok {
		panic(hopMiscount(hops, name))
	}
	return v
}

// AssignAt overwrites an existing binding exactly hops scopes out.
func (e *Environment) AssignAt(hops int, name source.StringID, v Value) {
	env := e.ancestor(hops, name)
	if _, ok := env.values[name]; !ok {
		panic(hopMiscount(hops, name))
	}
	env.values[name] = v
}

// GetGlobal reads name from the root scope; ok is false when it is unbound.
func (e *Environment) GetGlobal(name source.StringID) (Value, bool) {
	return e.root().Lookup(name)
}

// AssignGlobal overwrites name in the root scope; it never creates a binding.
func (e *Environment) AssignGlobal(name source.StringID, v Value) bool {
	root := e.root()
	if _, ok := root.values[name]; !ok {
		return false
	}
	root.values[name] = v
	return true
}

// Len reports the number of bindings in this scope.
func (e *Environment) Len() int { return len(e.values) }

func (e *Environment) root() *Environment {
	env := e
	for env.enclosing != nil {
		env = env.enclosing
	}
	return env
}

func (e *Environment) ancestor(hops int, name source.StringID) *Environment {
	env := e
	for i := 0; i < hops; i++ {
		if env.enclosing == nil {
			panic(hopMiscount(hops, name))
		}
		env = env.enclosing
	}
	return env
}

// HopMiscountError is the panic value raised when a resolved hop count does
// not lead to a binding. It always means the resolver and the interpreter
// disagree about the scope layout.
type HopMiscountError struct {
	Hops int
	Name source.StringID
}

func (e *HopMiscountError) Error() string {
	return fmt.Sprintf("interp: hop miscount: name #%d is not bound %d scope(s) out", e.Name, e.Hops)
}

func hopMiscount(hops int, name source.StringID) error {
	return &HopMiscountError{Hops: hops, Name: name}
}
