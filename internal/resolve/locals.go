package resolve

import "lox/internal/ast"

// Locals maps a resolved expression to its hop count: 0 is the innermost
// environment at the point of use.
type Locals map[ast.ExprID]int

// Depth returns the hop count for id; ok is false for globals.
func (l Locals) Depth(id ast.ExprID) (hops int, ok bool) {
	hops, ok = l[id]
	return hops, ok
}

// Merge copies every entry of other into l. ExprIDs are unique per Builder,
// so entries of different files never collide.
func (l Locals) Merge(other Locals) {
	for id, hops := range other {
		l[id] = hops
	}
}
