package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/lexer"
	"github.com/felangkit/felangkit/pipeline"
)

func TestOptionsForProfile(t *testing.T) {
	def, err := optionsForProfile("default")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultOptions(), def)

	fast, err := optionsForProfile("fast")
	require.NoError(t, err)
	assert.False(t, fast.PerformSemanticAnalysis)

	_, err = optionsForProfile("bogus")
	assert.Error(t, err)
}

func TestLoadOptionsNoPath(t *testing.T) {
	base := pipeline.DefaultOptions()
	opts, err := loadOptions("", base)
	require.NoError(t, err)
	assert.Equal(t, base, opts)
}

func TestLoadOptionsValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"performSemanticAnalysis": false,
		"maxNestingDepth": 16,
		"profile": "strict",
		"keepTrivia": true,
		"normalizeUnicode": false
	}`), 0o644))

	opts, err := loadOptions(path, pipeline.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, opts.PerformSemanticAnalysis)
	assert.Equal(t, 16, opts.MaxNestingDepth)
	assert.True(t, opts.KeepTrivia)
	assert.False(t, opts.NormalizeUnicode)
	assert.Equal(t, diagnostic.StrictProfile(), opts.Profile)
}

func TestLoadOptionsRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"totallyUnknownField": true}`), 0o644))

	_, err := loadOptions(path, pipeline.DefaultOptions())
	assert.Error(t, err, "additionalProperties: false should reject unknown fields")
}

func TestLoadOptionsRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile": "turbo"}`), 0o644))

	_, err := loadOptions(path, pipeline.DefaultOptions())
	assert.Error(t, err, "profile is a closed enum in the schema")
}

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.fe")
	require.NoError(t, os.WriteFile(path, []byte("variable x <- 1"), 0o644))

	got, err := readSource([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "variable x <- 1", got)
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := readSource([]string{filepath.Join(t.TempDir(), "missing.fe")})
	assert.Error(t, err)
}

func TestLexerOptsRespectsNormalizeUnicode(t *testing.T) {
	withNorm := lexerOpts(pipeline.Options{NormalizeUnicode: true})
	assert.Empty(t, withNorm, "default normalization needs no override option")

	withoutNorm := lexerOpts(pipeline.Options{NormalizeUnicode: false})
	assert.Len(t, withoutNorm, 1)
}

func TestPrintTokensText(t *testing.T) {
	toks, diags := lexer.Tokenize("variable x <- 1")
	require.Empty(t, diags)

	var buf bytes.Buffer
	err := printTokens(&buf, toks, diags, "text")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "IDENTIFIER")
	assert.Contains(t, buf.String(), `"x"`)
}

func TestPrintTokensCBORRoundTrips(t *testing.T) {
	toks, diags := lexer.Tokenize("1")
	require.Empty(t, diags)

	var buf bytes.Buffer
	err := printTokens(&buf, toks, diags, "cbor")
	require.NoError(t, err)
	assert.NotEmpty(t, buf.Bytes())
}

func TestPrintTokensReportsDiagnosticsAsError(t *testing.T) {
	toks, diags := lexer.Tokenize("$")
	require.Len(t, diags, 1)

	var buf bytes.Buffer
	err := printTokens(&buf, toks, diags, "text")
	assert.Error(t, err, "a non-empty diagnostic list fails the command even in text mode")
}

func TestCLIErrorMessageAndHint(t *testing.T) {
	err := &CLIError{Message: "bad input", Hint: "try again"}
	assert.Equal(t, "bad input\ntry again", err.Error())

	bare := &CLIError{Message: "bad input"}
	assert.Equal(t, "bad input", bare.Error())
}

func TestFormatErrorWritesCLIErrorHint(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, &CLIError{Message: "bad input", Hint: "try again"}, false)
	out := buf.String()
	assert.Contains(t, out, "Error: bad input")
	assert.Contains(t, out, "Hint: try again")
}

func TestFormatErrorNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, nil, false)
	assert.Empty(t, buf.String())
}
