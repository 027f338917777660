// Package diag holds the static-diagnostic model shared by the lexer, parser
// and resolver.
//
// A Diagnostic carries a Severity, a numeric Code with a stable textual form
// (LEX1001, SYN2002, SEM3001, IO4001), a message, a primary span and optional
// notes and fixes. Phases emit through a Reporter; BagReporter collects into a
// Bag, which the driver sorts and hands to internal/diagfmt for rendering.
//
// Runtime failures are not diagnostics. They travel as *interp.RuntimeError.
package diag
