package lexer

import (
	"unicode"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

// lexNumber scans a decimal literal, with optional 0x/0b/0o prefixed
// integer forms. Decimal supports a fractional part and an exponent;
// prefixed forms do not.
func (l *Lexer) lexNumber() token.Token {
	start := l.position()
	startPos := l.pos

	if l.current() == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		return l.lexRadixLiteral(start, startPos, isHexDigit)
	}
	if l.current() == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		return l.lexRadixLiteral(start, startPos, isBinDigit)
	}
	if l.current() == '0' && (l.peek(1) == 'o' || l.peek(1) == 'O') {
		return l.lexRadixLiteral(start, startPos, isOctDigit)
	}

	isReal := false

	if l.current() == '.' {
		l.advance()
		l.readDigitRun()
		isReal = true
	} else {
		l.readDigitRun()
		if l.current() == '.' && unicode.IsDigit(l.peek(1)) {
			l.advance()
			l.readDigitRun()
			isReal = true
		}
	}

	if l.current() == 'e' || l.current() == 'E' {
		save, saveColumn, saveOffset := l.pos, l.column, l.offset
		l.advance()
		if l.current() == '+' || l.current() == '-' {
			l.advance()
		}
		if !l.readDigitRun() {
			// no exponent digits: not a valid exponent, roll back
			l.pos, l.column, l.offset = save, saveColumn, saveOffset
		} else {
			isReal = true
		}
	}

	lexeme := string(l.src[startPos:l.pos])
	l.checkLexemeLength(start, startPos)
	if isReal {
		return token.Token{Kind: token.RealLiteral, Lexeme: lexeme, Position: start}
	}
	return token.Token{Kind: token.IntegerLiteral, Lexeme: lexeme, Position: start}
}

func (l *Lexer) lexRadixLiteral(start token.Position, startPos int, digitOK func(rune) bool) token.Token {
	l.advance() // '0'
	l.advance() // radix marker
	digitsStart := l.pos
	for !l.eof() && (digitOK(l.current()) || l.current() == '_') {
		l.advance()
	}

	// An invalid digit for the chosen base (or no digits at all) makes
	// the whole run one Invalid token, so parsing can continue past it.
	if l.pos == digitsStart || (!l.eof() && isIdentPart(l.current())) {
		for !l.eof() && isIdentPart(l.current()) {
			l.advance()
		}
		lexeme := string(l.src[startPos:l.pos])
		l.report(diagnostic.NewMalformedNumber(start, lexeme))
		return token.Token{Kind: token.Invalid, Lexeme: lexeme, Position: start}
	}

	lexeme := string(l.src[startPos:l.pos])
	l.checkLexemeLength(start, startPos)
	return token.Token{Kind: token.IntegerLiteral, Lexeme: lexeme, Position: start}
}

// readDigitRun consumes a run of decimal digits (with optional
// underscore separators) and reports whether at least one was read.
func (l *Lexer) readDigitRun() bool {
	start := l.pos
	for !l.eof() && (unicode.IsDigit(l.current()) || l.current() == '_') {
		l.advance()
	}
	return l.pos > start
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }
