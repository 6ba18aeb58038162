package parser

import (
	"strconv"
	"strings"

	"github.com/felangkit/felangkit/ast"
)

// parseIntegerLiteral converts a lexeme already validated by the
// tokenizer (decimal or 0x/0b/0o prefixed) into an IntegerValue. Parse
// failure here would indicate a tokenizer bug, not malformed user
// input, so it falls back to zero rather than panicking.
func parseIntegerLiteral(lexeme string) ast.IntegerValue {
	clean := strings.ReplaceAll(lexeme, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(clean, "0x"), strings.HasPrefix(clean, "0X"):
		base = 16
		clean = clean[2:]
	case strings.HasPrefix(clean, "0b"), strings.HasPrefix(clean, "0B"):
		base = 2
		clean = clean[2:]
	case strings.HasPrefix(clean, "0o"), strings.HasPrefix(clean, "0O"):
		base = 8
		clean = clean[2:]
	}
	v, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		return ast.IntegerValue(0)
	}
	return ast.IntegerValue(v)
}

func parseRealLiteral(lexeme string) ast.RealValue {
	clean := strings.ReplaceAll(lexeme, "_", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return ast.RealValue(0)
	}
	return ast.RealValue(v)
}
