package ast

import (
	"lox/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtPrint
	StmtVar
	StmtBlock
	StmtIf
	StmtWhile
	StmtFun
	StmtReturn
	StmtClass
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "ExprStmt"
	case StmtPrint:
		return "Print"
	case StmtVar:
		return "Var"
	case StmtBlock:
		return "Block"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFun:
		return "Fun"
	case StmtReturn:
		return "Return"
	case StmtClass:
		return "Class"
	}
	return "Stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtExprData backs both StmtExpr and StmtPrint.
type StmtExprData struct {
	Expr ExprID
}

type StmtVarData struct {
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID when absent
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID when absent
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtFunData struct {
	Fn FnID
}

type StmtReturnData struct {
	Keyword source.Span
	Value   ExprID // NoExprID for a bare return
}

type StmtClassData struct {
	Name       source.StringID
	NameSpan   source.Span
	Superclass ExprID // ExprVariable or NoExprID
	Methods    []FnID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Vars    *Arena[StmtVarData]
	Blocks  *Arena[StmtBlockData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Funs    *Arena[StmtFunData]
	Returns *Arena[StmtReturnData]
	Classes *Arena[StmtClassData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Vars:    NewArena[StmtVarData](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Funs:    NewArena[StmtFunData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Classes: NewArena[StmtClassData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) NewPrint(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtPrint, span, PayloadID(payload))
}

func (s *Stmts) NewVar(span source.Span, name source.StringID, nameSpan source.Span, init ExprID) StmtID {
	payload := s.Vars.Allocate(StmtVarData{Name: name, NameSpan: nameSpan, Init: init})
	return s.new(StmtVar, span, PayloadID(payload))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) NewFun(span source.Span, fn FnID) StmtID {
	payload := s.Funs.Allocate(StmtFunData{Fn: fn})
	return s.new(StmtFun, span, PayloadID(payload))
}

func (s *Stmts) NewReturn(span, keyword source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Keyword: keyword, Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) NewClass(span source.Span, name source.StringID, nameSpan source.Span, superclass ExprID, methods []FnID) StmtID {
	payload := s.Classes.Allocate(StmtClassData{
		Name:       name,
		NameSpan:   nameSpan,
		Superclass: superclass,
		Methods:    append([]FnID(nil), methods...),
	})
	return s.new(StmtClass, span, PayloadID(payload))
}

// Expr returns the payload of a StmtExpr or StmtPrint statement.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtExpr && stmt.Kind != StmtPrint) {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVar {
		return nil, false
	}
	return s.Vars.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Fun(id StmtID) (*StmtFunData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFun {
		return nil, false
	}
	return s.Funs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtClass {
		return nil, false
	}
	return s.Classes.Get(uint32(stmt.Payload)), true
}
