// Package token defines the lexical vocabulary of Lox.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span, except for
//     identifiers, whose Text is NFC-normalised.
//   - Comments and whitespace never reach the parser; they ride along as
//     Token.Leading trivia.
//   - EOF carries an empty span positioned at the end of input.
package token
