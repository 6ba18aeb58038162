// Package parser implements FeLangKit's expression and statement
// parsers: recursive-descent, precedence-climbing for expressions,
// first-token dispatch for statements, building ast.Expression and
// ast.Statement nodes directly rather than through an intermediate
// event stream.
package parser

import (
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

const defaultMaxNestingDepth = 256

// Opt configures a Parser at construction.
type Opt func(*config)

type config struct {
	maxNestingDepth int
}

func defaultConfig() config {
	return config{maxNestingDepth: defaultMaxNestingDepth}
}

// WithMaxNestingDepth overrides the expression recursion ceiling.
func WithMaxNestingDepth(n int) Opt {
	return func(c *config) { c.maxNestingDepth = n }
}

// Parser consumes a token slice (trivia already filtered by the caller)
// and builds AST nodes. Not safe for concurrent use; callers construct
// one Parser per parse.
type Parser struct {
	tokens []token.Token
	pos    int
	cfg    config
	depth  int

	diagnostics []diagnostic.Diagnostic
}

// New creates a Parser over tokens.
func New(tokens []token.Token, opts ...Opt) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{tokens: tokens, cfg: cfg}
}

// Diagnostics returns diagnostics collected so far.
func (p *Parser) Diagnostics() []diagnostic.Diagnostic { return p.diagnostics }

func (p *Parser) report(d diagnostic.Diagnostic) { p.diagnostics = append(p.diagnostics, d) }

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(ahead int) token.Token {
	i := p.pos + ahead
	if i >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) at(kind token.Kind) bool { return p.current().Kind == kind }

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches kind, else reports
// unexpectedToken and leaves the cursor in place.
func (p *Parser) expect(kind token.Kind, context string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.report(diagnostic.NewUnexpectedToken(p.current().Position, kind.String(), p.describeCurrent()))
	return token.Token{}, false
}

func (p *Parser) describeCurrent() string {
	cur := p.current()
	if cur.Kind == token.EOF {
		return "end of input"
	}
	if cur.Lexeme != "" {
		return cur.Kind.String() + " '" + cur.Lexeme + "'"
	}
	return cur.Kind.String()
}

func (p *Parser) errorUnexpected(context string) {
	if p.at(token.EOF) {
		p.report(diagnostic.NewUnexpectedEndOfInput(p.current().Position, context))
		return
	}
	p.report(diagnostic.NewUnexpectedToken(p.current().Position, context, p.describeCurrent()))
}

// enterDepth increments the recursion guard and reports nestingTooDeep
// each time the depth steps from the ceiling to one past it; it returns
// false once the ceiling is exceeded,
// so callers can stop descending instead of overflowing the Go stack.
func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > p.cfg.maxNestingDepth {
		if p.depth == p.cfg.maxNestingDepth+1 {
			p.report(diagnostic.NewNestingTooDeep(p.current().Position, p.cfg.maxNestingDepth))
		}
		return false
	}
	return true
}

func (p *Parser) exitDepth() { p.depth-- }
