// Package resolve performs the static pass between parsing and execution.
//
// It walks a parsed file with a stack of block scopes and, for every
// Variable, Assign, This and Super expression that names a local binding,
// records how many scopes separate the use from the declaration. The
// interpreter reads those hop counts from Locals instead of searching the
// environment chain; names that are not found are globals and get no entry.
//
// The pass also reports the static errors of the language (reading a local
// in its own initializer, misplaced return/this/super, duplicate locals,
// self-inheritance). Every error is reported; a file with errors must not
// be executed.
package resolve
