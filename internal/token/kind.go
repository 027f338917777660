package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a byte sequence the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a user-defined name.
	Ident
	// NumberLit is a decimal number literal such as 12 or 3.5.
	NumberLit
	// StringLit is a double-quoted string literal; Text keeps the quotes.
	StringLit

	KwAnd    // and
	KwClass  // class
	KwElse   // else
	KwFalse  // false
	KwFor    // for
	KwFun    // fun
	KwIf     // if
	KwNil    // nil
	KwOr     // or
	KwPrint  // print
	KwReturn // return
	KwSuper  // super
	KwThis   // this
	KwTrue   // true
	KwVar    // var
	KwWhile  // while

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Dot       // .
	Minus     // -
	Plus      // +
	Semicolon // ;
	Slash     // /
	Star      // *
	Bang      // !
	BangEq    // !=
	Assign    // =
	EqEq      // ==
	Gt        // >
	GtEq      // >=
	Lt        // <
	LtEq      // <=
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	NumberLit: "NumberLit",
	StringLit: "StringLit",
	KwAnd:     "KwAnd",
	KwClass:   "KwClass",
	KwElse:    "KwElse",
	KwFalse:   "KwFalse",
	KwFor:     "KwFor",
	KwFun:     "KwFun",
	KwIf:      "KwIf",
	KwNil:     "KwNil",
	KwOr:      "KwOr",
	KwPrint:   "KwPrint",
	KwReturn:  "KwReturn",
	KwSuper:   "KwSuper",
	KwThis:    "KwThis",
	KwTrue:    "KwTrue",
	KwVar:     "KwVar",
	KwWhile:   "KwWhile",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Comma:     "Comma",
	Dot:       "Dot",
	Minus:     "Minus",
	Plus:      "Plus",
	Semicolon: "Semicolon",
	Slash:     "Slash",
	Star:      "Star",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

func (k Kind) IsEOF() bool { return k == EOF }

// StartsStatement reports whether k can only begin a new statement; the
// parser resynchronises on these after a syntax error.
func (k Kind) StartsStatement() bool {
	switch k {
	case KwClass, KwFun, KwVar, KwFor, KwIf, KwWhile, KwPrint, KwReturn:
		return true
	default:
		return false
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
