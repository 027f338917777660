// Package ast stores Lox syntax trees in typed arenas.
//
// Every node is addressed by a dense 1-based ID (ExprID, StmtID, FnID,
// FileID); zero means "absent". Node headers live in one arena per node
// family and point at a kind-specific payload arena. Names are interned in
// Builder.Strings, so the resolver and the interpreter compare identifiers
// as integers.
//
// ExprIDs double as node identities: the resolver keys its hop table by the
// ExprID of Variable, Assign, This and Super nodes.
package ast
