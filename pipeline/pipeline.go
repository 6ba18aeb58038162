// Package pipeline wires the tokenizer, parser, and type checker into a
// single driver with one entry point per consumer need: a bare parse, a
// parse plus full semantic analysis, or a flat list of diagnostics for a
// caller that only wants the verdict.
package pipeline

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/checker"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/lexer"
	"github.com/felangkit/felangkit/parser"
	"github.com/felangkit/felangkit/symboltable"
	"github.com/felangkit/felangkit/token"
)

// Options configures a Driver: how deep expressions may nest, whether
// semantic analysis (the checker pass) runs at all, and which Reporter
// profile governs error accumulation.
type Options struct {
	PerformSemanticAnalysis bool
	MaxNestingDepth         int
	Profile                 diagnostic.Profile
	KeepTrivia              bool
	NormalizeUnicode        bool
}

// DefaultOptions runs semantic analysis under diagnostic.DefaultProfile.
func DefaultOptions() Options {
	return Options{PerformSemanticAnalysis: true, MaxNestingDepth: 256, Profile: diagnostic.DefaultProfile(), NormalizeUnicode: true}
}

// StrictOptions is DefaultOptions with diagnostic.StrictProfile, for
// CI-grade analysis runs that want every warning surfaced.
func StrictOptions() Options {
	o := DefaultOptions()
	o.Profile = diagnostic.StrictProfile()
	return o
}

// FastOptions is DefaultOptions with diagnostic.FastProfile and semantic
// analysis off, for editor keystroke-latency syntax checking.
func FastOptions() Options {
	o := DefaultOptions()
	o.Profile = diagnostic.FastProfile()
	o.PerformSemanticAnalysis = false
	return o
}

// Driver runs the pipeline under a fixed Options. It is stateless beyond
// its configuration: every method call constructs a fresh lexer, parser,
// and (if enabled) checker, so a single Driver is safe to reuse and to
// share across goroutines.
type Driver struct {
	opts Options
}

// New constructs a Driver under opts.
func New(opts Options) *Driver { return &Driver{opts: opts} }

// NewDefault constructs a Driver under DefaultOptions.
func NewDefault() *Driver { return New(DefaultOptions()) }

// Result is the outcome of a full ParseWithAnalysis run.
type Result struct {
	Statements []ast.Statement
	Table      *symboltable.Table // nil when PerformSemanticAnalysis is off
	Report     diagnostic.Result
}

// tokenize lexes source with trivia retained; the parse entry points
// filter it back out below. Lexing trivia unconditionally keeps newline
// tokens available as statement boundaries regardless of the
// Options.KeepTrivia setting, which only governs what token consumers
// (the tokens CLI subcommand) see.
func (d *Driver) tokenize(source string) ([]token.Token, []diagnostic.Diagnostic) {
	lopts := []lexer.Opt{lexer.WithTrivia()}
	if !d.opts.NormalizeUnicode {
		lopts = append(lopts, lexer.WithoutUnicodeNormalization())
	}
	return lexer.Tokenize(source, lopts...)
}

// filterTrivia drops whitespace and comment tokens. Newlines are kept
// when keepNewlines is set: the statement parser treats them as
// statement boundaries (a bare `return` ends at the line break), while
// the expression entry point never wants them.
func filterTrivia(toks []token.Token, keepNewlines bool) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		switch t.Kind {
		case token.Whitespace, token.Comment:
			continue
		case token.Newline:
			if !keepNewlines {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (d *Driver) newParser(toks []token.Token) *parser.Parser {
	return parser.New(toks, parser.WithMaxNestingDepth(d.opts.MaxNestingDepth))
}

// ParseExpression lexes and parses a single expression.
func (d *Driver) ParseExpression(source string) (ast.Expression, []diagnostic.Diagnostic) {
	toks, lexDiags := d.tokenize(source)
	p := d.newParser(filterTrivia(toks, false))
	expr := p.ParseExpression()
	return expr, mergeDiagnostics(lexDiags, p.Diagnostics())
}

// ParseStatements lexes and parses source as a full statement list,
// with no semantic analysis.
func (d *Driver) ParseStatements(source string) ([]ast.Statement, []diagnostic.Diagnostic) {
	toks, lexDiags := d.tokenize(source)
	p := d.newParser(filterTrivia(toks, true))
	stmts := p.ParseStatements()
	return stmts, mergeDiagnostics(lexDiags, p.Diagnostics())
}

// Parse is an alias for ParseStatements: the whole-program entry point.
func (d *Driver) Parse(source string) ([]ast.Statement, []diagnostic.Diagnostic) {
	return d.ParseStatements(source)
}

// ParseWithAnalysis runs the full pipeline: lex, parse, and — if
// Options.PerformSemanticAnalysis is set — type-check, accumulating
// every diagnostic into a Reporter under Options.Profile before
// finalizing. The correlation pass (unused-variable warnings) only runs
// when semantic analysis ran, since it needs the populated symbol
// table.
func (d *Driver) ParseWithAnalysis(source string) Result {
	stmts, syntaxDiags := d.ParseStatements(source)

	reporter := diagnostic.NewReporter(d.opts.Profile)
	for _, dg := range syntaxDiags {
		reporter.Collect(dg)
	}

	var table *symboltable.Table
	if d.opts.PerformSemanticAnalysis {
		chk := checker.New()
		for _, dg := range chk.Check(stmts) {
			reporter.Collect(dg)
		}
		table = chk.Table()
	}

	report := reporter.Finalize(func(add func(diagnostic.Diagnostic)) {
		if table == nil {
			return
		}
		for _, sym := range table.GetUnusedSymbols() {
			add(diagnostic.NewUnusedVariable(sym.Position, sym.Name))
		}
	})

	return Result{Statements: stmts, Table: table, Report: report}
}

// ValidateWithSemantics runs ParseWithAnalysis and returns only the
// finalized report, for callers that don't need the AST or symbol
// table back.
func (d *Driver) ValidateWithSemantics(source string) diagnostic.Result {
	return d.ParseWithAnalysis(source).Report
}

// CollectAllErrors runs the full pipeline and flattens errors ahead of
// warnings into one slice, in the shape a CLI's exit-code decision
// wants.
func (d *Driver) CollectAllErrors(source string) []diagnostic.Diagnostic {
	result := d.ParseWithAnalysis(source)
	all := make([]diagnostic.Diagnostic, 0, len(result.Report.Errors)+len(result.Report.Warnings))
	all = append(all, result.Report.Errors...)
	all = append(all, result.Report.Warnings...)
	return all
}

func mergeDiagnostics(a, b []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]diagnostic.Diagnostic, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
