// Package token defines the lexical vocabulary of the FE pseudo-language:
// source positions, tokens, and the closed set of token kinds shared by
// the tokenizer, the expression parser, and the statement parser.
package token

import "fmt"

// Position is an immutable source location. Offset is the byte offset of
// the token's first rune in the scanned source (after NFC normalization,
// when that is on); Line and Column are tracked alongside it during
// scanning.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line X, column Y" for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Zero reports whether this is the uninitialized position, used by
// meta-diagnostics such as tooManyErrors that carry no source location.
func (p Position) Zero() bool {
	return p.Line == 0 && p.Column == 0
}
