package parser

import (
	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/token"
)

const maxArgs = 255

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
	// Incomplete is set when the first syntax error was hit at end of input:
	// more text could still turn the source into a valid program.
	Incomplete bool
	Errors     uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx         *lexer.Lexer
	arenas     *ast.Builder
	file       ast.FileID
	fs         *source.FileSet
	opts       Options
	lastSpan   source.Span // span последнего съеденного токена
	lastKind   token.Kind
	incomplete bool
}

// ParseFile — входная точка для разбора одного файла.
// Все ошибки собираются; после каждой парсер синхронизируется на границе
// инструкции и продолжает.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	start := lx.Peek().Span
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start),
		fs:       fs,
		opts:     opts,
		lastSpan: source.Span{File: start.File},
	}

	p.parseProgram()

	return Result{
		File:       p.file,
		Bag:        diag.BagOf(opts.Reporter),
		Incomplete: p.incomplete,
		Errors:     p.opts.CurrentErrors,
	}
}

// parseProgram — цикл верхнего уровня: пока не EOF — parseDeclaration.
func (p *Parser) parseProgram() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		stmtID, ok := p.parseDeclaration()
		if !ok {
			p.resync()
			continue
		}
		p.arenas.PushStmt(p.file, stmtID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.peek().Span)
}

// resync — panic-mode восстановление: выбрасываем токен, на котором
// споткнулись, и крутим до ';' (съедая его) или до начала следующей инструкции.
func (p *Parser) resync() {
	if p.at(token.EOF) {
		return
	}
	p.advance()
	for !p.at(token.EOF) {
		if p.lastKind == token.Semicolon {
			return
		}
		if p.peek().Kind.StartsStatement() {
			return
		}
		p.advance()
	}
}
