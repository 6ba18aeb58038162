package lexer

// Opt configures a Lexer at construction.
type Opt func(*config)

type config struct {
	keepTrivia      bool
	normalizeUnicode bool
	maxLexemeLen    int
}

func defaultConfig() config {
	return config{
		keepTrivia:       false,
		normalizeUnicode: true,
		maxLexemeLen:     0, // 0 = unbounded
	}
}

// WithTrivia makes the lexer emit Comment/Whitespace/Newline tokens
// instead of silently consuming them.
func WithTrivia() Opt {
	return func(c *config) { c.keepTrivia = true }
}

// WithoutUnicodeNormalization disables the NFC normalization pass that
// runs over the source before tokenization by default.
func WithoutUnicodeNormalization() Opt {
	return func(c *config) { c.normalizeUnicode = false }
}

// WithMaxLexemeLength sets a limit, in runes, on any single scanned lexeme
// (string/number/identifier): a longer lexeme is reported as LexemeTooLong
// and still returned whole. 0 (the default) leaves it unbounded.
func WithMaxLexemeLength(n int) Opt {
	return func(c *config) { c.maxLexemeLen = n }
}
