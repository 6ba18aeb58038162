package lexer

import "github.com/felangkit/felangkit/token"

// lexOperatorOrDelimiter matches a single operator or delimiter rune.
// Unlike an ASCII language, FE dedicates a distinct Unicode codepoint to
// each relational operator and to assignment (←), so there is no
// multi-character maximal-munch to perform here — each case consumes
// exactly one rune.
func (l *Lexer) lexOperatorOrDelimiter() (token.Token, bool) {
	start := l.position()
	ch := l.current()

	kind, ok := singleRuneOperators[ch]
	if !ok {
		return token.Token{}, false
	}
	l.advance()
	return token.Token{Kind: kind, Lexeme: string(ch), Position: start}, true
}

var singleRuneOperators = map[rune]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'←': token.Arrow,
	'=': token.Equal,
	'≠': token.NotEqual,
	'>': token.Greater,
	'≧': token.GreaterEqual,
	'<': token.Less,
	'≦': token.LessEqual,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	'.': token.Dot,
	';': token.Semicolon,
	':': token.Colon,
}
