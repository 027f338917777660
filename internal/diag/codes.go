package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectExpression    Code = 2004
	SynInvalidAssignTarget Code = 2005
	SynTooManyArguments    Code = 2006
	SynTooManyParameters   Code = 2007
	SynUnclosedParen       Code = 2008
	SynUnclosedBrace       Code = 2009

	// Статический анализ (resolver)
	SemaInfo                       Code = 3000
	SemaSelfReferentialInitializer Code = 3001
	SemaReturnOutsideFunction      Code = 3002
	SemaReturnValueFromInitializer Code = 3003
	SemaThisOutsideClass           Code = 3004
	SemaSuperOutsideSubclass       Code = 3005
	SemaDuplicateLocal             Code = 3006
	SemaClassInheritsItself        Code = 3007

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unexpected character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectSemicolon:     "Expected ';'",
	SynExpectIdentifier:    "Expected identifier",
	SynExpectExpression:    "Expected expression",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynTooManyArguments:    "Too many arguments",
	SynTooManyParameters:   "Too many parameters",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBrace:       "Unclosed brace",

	SemaInfo:                       "Semantic information",
	SemaSelfReferentialInitializer: "Variable read in its own initializer",
	SemaReturnOutsideFunction:      "Return outside function",
	SemaReturnValueFromInitializer: "Value returned from initializer",
	SemaThisOutsideClass:           "'this' outside class",
	SemaSuperOutsideSubclass:       "Invalid use of 'super'",
	SemaDuplicateLocal:             "Duplicate local variable",
	SemaClassInheritsItself:        "Class inherits from itself",

	IOLoadFileError: "I/O load file error",
}

// ID renders the stable textual form of the code, e.g. SYN2002.
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeDescription[c]; ok {
		return title
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}

// Phase names the pipeline stage a code belongs to.
func (c Code) Phase() string {
	switch c.ID()[:2] {
	case "LE":
		return "lex"
	case "SY":
		return "parse"
	case "SE":
		return "resolve"
	case "IO":
		return "io"
	}
	return "unknown"
}
