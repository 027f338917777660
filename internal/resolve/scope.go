package resolve

import "lox/internal/source"

type FunctionKind uint8

const (
	FnNone FunctionKind = iota
	FnFunction
	FnInitializer
	FnMethod
)

func (k FunctionKind) String() string {
	switch k {
	case FnFunction:
		return "function"
	case FnInitializer:
		return "initializer"
	case FnMethod:
		return "method"
	}
	return "none"
}

type ClassKind uint8

const (
	ClassNone ClassKind = iota
	ClassPlain
	ClassSub
)

// scope maps a name to whether its initializer has finished.
type scope map[source.StringID]bool

type scopeStack []scope

func (s *scopeStack) push() {
	*s = append(*s, make(scope, 4))
}

func (s *scopeStack) pop() {
	if len(*s) == 0 {
		panic("resolve: scope stack underflow")
	}
	*s = (*s)[:len(*s)-1]
}

// innermost returns nil at global level.
func (s scopeStack) innermost() scope {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// lookup returns the distance to the nearest scope declaring name.
func (s scopeStack) lookup(name source.StringID) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if _, ok := s[i][name]; ok {
			return len(s) - 1 - i, true
		}
	}
	return 0, false
}
