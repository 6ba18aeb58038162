package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

type tokenExpectation struct {
	kind   token.Kind
	lexeme string
}

func assertTokens(t *testing.T, input string, expected []tokenExpectation, opts ...Opt) {
	t.Helper()
	tokens, diags := Tokenize(input, opts...)
	require.Empty(t, diags, "unexpected diagnostics for %q", input)
	require.Len(t, tokens, len(expected), "token count for %q: got %#v", input, tokens)
	for i, want := range expected {
		require.Equalf(t, want.kind, tokens[i].Kind, "token %d kind for %q", i, input)
		require.Equalf(t, want.lexeme, tokens[i].Lexeme, "token %d lexeme for %q", i, input)
	}
}

func TestIdentifiers(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []tokenExpectation
	}{
		{
			name:  "simple",
			input: "myVar",
			want: []tokenExpectation{
				{token.Identifier, "myVar"},
				{token.EOF, ""},
			},
		},
		{
			name:  "underscore_start",
			input: "_private",
			want: []tokenExpectation{
				{token.Identifier, "_private"},
				{token.EOF, ""},
			},
		},
		{
			name:  "japanese_identifier",
			input: "データ",
			want: []tokenExpectation{
				{token.Identifier, "データ"},
				{token.EOF, ""},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertTokens(t, tc.input, tc.want)
		})
	}
}

func TestKeywordsBothScripts(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"variable", token.Var},
		{"変数", token.Var},
		{"constant", token.Const},
		{"定数", token.Const},
		{"integer", token.IntegerType},
		{"整数型", token.IntegerType},
		{"if", token.If},
		{"もし", token.If},
		{"and", token.And},
		{"かつ", token.And},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assertTokens(t, tc.input, []tokenExpectation{
				{tc.kind, tc.input},
				{token.EOF, ""},
			})
		})
	}
}

func TestCompoundEndKeyword(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"end if", token.EndIf},
		{"end while", token.EndWhile},
		{"end for", token.EndFor},
		{"end function", token.EndFunction},
		{"end procedure", token.EndProcedure},
		{"終わり もし", token.EndIf},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, diags := Tokenize(tc.input)
			require.Empty(t, diags)
			require.Len(t, tokens, 2)
			require.Equal(t, tc.kind, tokens[0].Kind)
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntegerLiteral},
		{"3.14159", token.RealLiteral},
		{".5", token.RealLiteral},
		{"1e10", token.RealLiteral},
		{"1e-3", token.RealLiteral},
		{"0x1F", token.IntegerLiteral},
		{"0b101", token.IntegerLiteral},
		{"0o17", token.IntegerLiteral},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assertTokens(t, tc.input, []tokenExpectation{
				{tc.kind, tc.input},
				{token.EOF, ""},
			})
		})
	}
}

func TestMalformedRadixLiteralIsOneInvalidToken(t *testing.T) {
	cases := []string{"0b102", "0xZZ", "0o9", "0x"}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			tokens, diags := Tokenize(input)
			require.Len(t, diags, 1)
			require.Equal(t, diagnostic.MalformedNumber, diags[0].Kind)
			require.Len(t, tokens, 2)
			require.Equal(t, token.Invalid, tokens[0].Kind)
			require.Equal(t, input, tokens[0].Lexeme)
		})
	}
}

func TestStringAndCharacterLiterals(t *testing.T) {
	tokens, diags := Tokenize(`"hello\nworld"`)
	require.Empty(t, diags)
	require.Equal(t, token.StringLiteral, tokens[0].Kind)
	require.Equal(t, "hello\nworld", tokens[0].Lexeme)

	tokens, diags = Tokenize(`'a'`)
	require.Empty(t, diags)
	require.Equal(t, token.CharacterLiteral, tokens[0].Kind)
	require.Equal(t, "a", tokens[0].Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	_, diags := Tokenize(`"hello`)
	require.Len(t, diags, 1)
}

func TestOperators(t *testing.T) {
	tokens, diags := Tokenize("x ← 1 ≠ 2 ≦ 3 ≧ 4")
	require.Empty(t, diags)
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []token.Kind{
		token.Identifier, token.Arrow, token.IntegerLiteral,
		token.NotEqual, token.IntegerLiteral,
		token.LessEqual, token.IntegerLiteral,
		token.GreaterEqual, token.IntegerLiteral,
		token.EOF,
	}, kinds)
}

func TestInvalidCharacterReportsDiagnostic(t *testing.T) {
	_, diags := Tokenize("変数 x ← 1 $ 2")
	require.Len(t, diags, 1)
	require.Equal(t, "invalid character '$'", diags[0].Message)
}

func TestTriviaSkippedByDefault(t *testing.T) {
	tokens, _ := Tokenize("x\n\n// comment\ny")
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds)
}

func TestTriviaKeptWhenRequested(t *testing.T) {
	tokens, _ := Tokenize("x\ny", WithTrivia())
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{token.Identifier, token.Newline, token.Identifier, token.EOF}, kinds)
}

func TestUnicodeNormalization(t *testing.T) {
	// Composed-vs-decomposed forms of the same grapheme must lex to the
	// same lexeme once NFC-normalized.
	decomposed := "データ" // テ + combining voiced mark, composes to デ
	tokens, diags := Tokenize(decomposed)
	require.Empty(t, diags)
	require.Equal(t, "データ", tokens[0].Lexeme)
}

func TestMaxLexemeLengthReportsDiagnostic(t *testing.T) {
	tokens, diags := Tokenize("abcdefghij", WithMaxLexemeLength(5))
	require.Len(t, diags, 1)
	require.Equal(t, "abcdefghij", tokens[0].Lexeme, "the token is still returned in full")

	_, diags = Tokenize("abc", WithMaxLexemeLength(5))
	require.Empty(t, diags, "under the limit: no diagnostic")
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	tokens, _ := Tokenize("x\ny", WithTrivia())
	require.Equal(t, 1, tokens[0].Position.Line)
	require.Equal(t, 1, tokens[0].Position.Column)
	require.Equal(t, 2, tokens[2].Position.Line)
	require.Equal(t, 1, tokens[2].Position.Column)
}
