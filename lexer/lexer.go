// Package lexer implements FeLangKit's tokenizer: a single-pass,
// position-tracking scanner translating FE pseudo-language source text
// (English or Japanese keywords, freely mixed) into a token stream.
//
// The scanning loop dispatches among per-construct helpers
// (lexIdentifierOrKeyword, lexQuoted, lexNumber, single-rune operator
// cases), each returning one token.Token. The scanner works on runes
// rather than bytes, since Japanese keywords and identifiers require
// full Unicode classification.
package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

// Lexer scans one source string. It is not safe for concurrent use —
// each invocation of Tokenize owns its own Lexer (consistent with the
// single-threaded-per-call model the rest of the pipeline follows).
type Lexer struct {
	src    []rune
	pos    int // rune index
	line   int
	column int
	offset int // byte offset of src[pos] in the normalized source

	cfg         config
	diagnostics []diagnostic.Diagnostic
}

// New creates a Lexer over source, applying opts over the default
// configuration (trivia skipped, Unicode normalization on).
func New(source string, opts ...Opt) *Lexer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.normalizeUnicode {
		source = norm.NFC.String(source)
	}

	return &Lexer{
		src:    []rune(source),
		pos:    0,
		line:   1,
		column: 1,
		cfg:    cfg,
	}
}

// Tokenize scans the lexer's source to completion and returns every
// token (trivia included only if WithTrivia was set) plus any lexical
// diagnostics collected along the way. The final token is always EOF.
func Tokenize(source string, opts ...Opt) ([]token.Token, []diagnostic.Diagnostic) {
	l := New(source, opts...)
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diagnostics
}

// Diagnostics returns the diagnostics collected so far.
func (l *Lexer) Diagnostics() []diagnostic.Diagnostic { return l.diagnostics }

func (l *Lexer) report(d diagnostic.Diagnostic) { l.diagnostics = append(l.diagnostics, d) }

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) current() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek(ahead int) rune {
	i := l.pos + ahead
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

// advance consumes the current rune, tracking line/column/byte offset.
// \r\n is treated by the caller (lexNewline) as a single line break;
// advance itself just moves one rune at a time.
func (l *Lexer) advance() rune {
	r := l.current()
	l.offset += runeLen(r)
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func runeLen(r rune) int {
	switch {
	case r == 0:
		return 0
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// Next returns the next token, advancing past it. Whitespace, newlines,
// and comments are consumed (and, when keepTrivia is set, returned
// instead of being skipped).
func (l *Lexer) Next() token.Token {
	for {
		if l.eof() {
			return token.Token{Kind: token.EOF, Position: l.position()}
		}

		ch := l.current()

		switch {
		case ch == '\n' || ch == '\r':
			tok, emit := l.lexNewline()
			if emit {
				return tok
			}
			continue
		case ch == ' ' || ch == '\t' || ch == '\f':
			tok, emit := l.lexWhitespace()
			if emit {
				return tok
			}
			continue
		case ch == '/' && l.peek(1) == '/':
			tok, emit := l.lexLineComment()
			if emit {
				return tok
			}
			continue
		case ch == '"' || ch == '\'':
			return l.lexQuoted(ch)
		case unicode.IsDigit(ch):
			return l.lexNumber()
		case ch == '.' && unicode.IsDigit(l.peek(1)):
			return l.lexNumber()
		case isIdentStart(ch):
			return l.lexIdentifierOrKeyword()
		default:
			if tok, ok := l.lexOperatorOrDelimiter(); ok {
				return tok
			}
			start := l.position()
			bad := l.advance()
			l.report(diagnostic.NewInvalidCharacter(start, bad))
			return token.Token{Kind: token.Invalid, Lexeme: string(bad), Position: start}
		}
	}
}

// checkLexemeLength reports LexemeTooLong once if cfg.maxLexemeLen is
// set and exceeded by the just-scanned lexeme [startPos, l.pos). The
// token is still returned in full; this is a diagnostic, not a hard
// truncation, mirroring the parser's nesting-depth guard (report, then
// let the caller decide what to do with the result).
func (l *Lexer) checkLexemeLength(start token.Position, startPos int) {
	if l.cfg.maxLexemeLen <= 0 {
		return
	}
	if l.pos-startPos > l.cfg.maxLexemeLen {
		l.report(diagnostic.NewLexemeTooLong(start, l.cfg.maxLexemeLen))
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lexNewline consumes one line break (\n, \r\n, or \r) and reports
// whether a Newline token should be emitted for it.
func (l *Lexer) lexNewline() (token.Token, bool) {
	start := l.position()
	if l.current() == '\r' && l.peek(1) == '\n' {
		l.advance()
		l.advance()
	} else if l.advance() == '\r' {
		// advance only starts a new line on \n; a lone \r is a break too
		l.line++
		l.column = 1
	}
	if !l.cfg.keepTrivia {
		return token.Token{}, false
	}
	return token.Token{Kind: token.Newline, Lexeme: "\n", Position: start}, true
}

func (l *Lexer) lexWhitespace() (token.Token, bool) {
	start := l.position()
	startPos := l.pos
	for !l.eof() {
		ch := l.current()
		if ch != ' ' && ch != '\t' && ch != '\f' {
			break
		}
		l.advance()
	}
	if !l.cfg.keepTrivia {
		return token.Token{}, false
	}
	return token.Token{Kind: token.Whitespace, Lexeme: string(l.src[startPos:l.pos]), Position: start}, true
}

func (l *Lexer) lexLineComment() (token.Token, bool) {
	start := l.position()
	l.advance() // first '/'
	l.advance() // second '/'
	startPos := l.pos
	for !l.eof() && l.current() != '\n' && l.current() != '\r' {
		l.advance()
	}
	if !l.cfg.keepTrivia {
		return token.Token{}, false
	}
	return token.Token{Kind: token.Comment, Lexeme: string(l.src[startPos:l.pos]), Position: start}, true
}

// lexIdentifierOrKeyword scans an identifier, resolving it against the
// keyword table. "end"/"終わり" are handled specially: they lead a
// compound closing keyword ("end if", "end while", ...), so this peeks
// past trailing whitespace for the next word before deciding the Kind.
func (l *Lexer) lexIdentifierOrKeyword() token.Token {
	start := l.position()
	startPos := l.pos
	for !l.eof() && isIdentPart(l.current()) {
		l.advance()
	}
	text := string(l.src[startPos:l.pos])
	l.checkLexemeLength(start, startPos)

	if token.IsEndLeader(text) {
		if next, nextText, ok := l.peekWord(); ok {
			if kind, ok := token.LookupCompoundEnd(nextText); ok {
				for l.pos < next {
					l.advance()
				}
				return token.Token{Kind: kind, Lexeme: text + " " + nextText, Position: start}
			}
		}
	}

	return token.Token{Kind: token.LookupKeyword(text), Lexeme: text, Position: start}
}

// peekWord looks past intervening horizontal whitespace (not newlines)
// for the next identifier-shaped word without consuming anything,
// returning the rune index just past it and its text.
func (l *Lexer) peekWord() (endIdx int, word string, ok bool) {
	i := l.pos
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	if i >= len(l.src) || !isIdentStart(l.src[i]) {
		return 0, "", false
	}
	start := i
	for i < len(l.src) && isIdentPart(l.src[i]) {
		i++
	}
	return i, string(l.src[start:i]), true
}

func (l *Lexer) lexQuoted(quote rune) token.Token {
	start := l.position()
	startPos := l.pos
	l.advance() // opening quote
	var text []rune
	terminated := false
	for !l.eof() {
		ch := l.current()
		if ch == quote {
			l.advance()
			terminated = true
			break
		}
		if ch == '\n' {
			break
		}
		if ch == '\\' {
			l.advance()
			decoded, ok := l.decodeEscape()
			if !ok {
				continue
			}
			text = append(text, decoded)
			continue
		}
		text = append(text, l.advance())
	}

	if !terminated {
		l.report(diagnostic.NewUnterminatedString(start))
	}
	l.checkLexemeLength(start, startPos)

	kind := token.StringLiteral
	if quote == '\'' {
		kind = token.CharacterLiteral
	}
	return token.Token{Kind: kind, Lexeme: string(text), Position: start}
}

// decodeEscape consumes the character(s) following a backslash already
// advanced past, returning the decoded rune. Supports \\ \" \' \n \r \t
// \0 \xHH \uHHHH.
func (l *Lexer) decodeEscape() (rune, bool) {
	if l.eof() {
		return 0, false
	}
	ch := l.advance()
	switch ch {
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case 'x':
		return l.decodeHexEscape(2)
	case 'u':
		return l.decodeHexEscape(4)
	default:
		return ch, true
	}
}

func (l *Lexer) decodeHexEscape(digits int) (rune, bool) {
	var v rune
	for i := 0; i < digits; i++ {
		if l.eof() {
			return 0, false
		}
		d := hexDigitValue(l.current())
		if d < 0 {
			return 0, false
		}
		v = v*16 + rune(d)
		l.advance()
	}
	return v, true
}

func hexDigitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
