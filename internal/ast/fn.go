package ast

import "lox/internal/source"

type Param struct {
	Name source.StringID
	Span source.Span
}

// Fn is the shared shape of function declarations, methods and `fun`
// expressions. Name is NoStringID for anonymous functions.
type Fn struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
	Body     []StmtID
	Span     source.Span
}

func (f *Fn) Arity() int { return len(f.Params) }

type Fns struct {
	Arena *Arena[Fn]
}

func NewFns(capHint uint) *Fns {
	return &Fns{
		Arena: NewArena[Fn](capHint),
	}
}

func (f *Fns) New(name source.StringID, nameSpan source.Span, params []Param, body []StmtID, span source.Span) FnID {
	return FnID(f.Arena.Allocate(Fn{
		Name:     name,
		NameSpan: nameSpan,
		Params:   append([]Param(nil), params...),
		Body:     append([]StmtID(nil), body...),
		Span:     span,
	}))
}

func (f *Fns) Get(id FnID) *Fn {
	return f.Arena.Get(uint32(id))
}
