// Package interp evaluates resolved Lox programs by walking the AST.
//
// An Interpreter owns the global Environment of a session. Execute may be
// called any number of times against the same Interpreter: declarations made
// by one call stay visible to the next, which is what the REPL relies on.
//
// Local variables are found through the hop counts computed by package
// resolve; globals are looked up dynamically by name. A hop count that does
// not lead to a binding is an internal bug and panics.
package interp
