// Package fuzztests houses Go fuzz harnesses for the front end and the
// interpreter: arbitrary bytes go through the lexer, the parser, the
// resolver and, when they survive, the tree-walker.
//
// Цель: ни паник, ни зависаний. Ошибки Lox (синтаксические или runtime)
// считаются нормальным исходом.
package fuzztests
