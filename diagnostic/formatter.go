package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// NameSource supplies the set of known identifier names a Formatter can
// suggest from when it renders an UndeclaredVariable diagnostic. The
// symbol table implements this structurally; neither package imports the
// other.
type NameSource interface {
	KnownNames() []string
}

// Formatter renders diagnostics for humans and golden-file tests. Output
// is byte-stable for a given (Diagnostic, NameSource) pair.
type Formatter struct {
	Verbose bool
	Names   NameSource
}

// NewFormatter builds a Formatter. names may be nil, in which case
// undeclared-identifier suggestions are simply omitted.
func NewFormatter(verbose bool, names NameSource) *Formatter {
	return &Formatter{Verbose: verbose, Names: names}
}

// FormatDiagnostic renders a single diagnostic in the golden-file layout:
//
//	SemanticError: <primary message>
//	  at line <L>, column <C>
//	  <zero or more secondary lines>
func (f *Formatter) FormatDiagnostic(d Diagnostic) string {
	var b strings.Builder

	label := "SemanticError"
	if d.Severity == Warning {
		label = "SemanticWarning"
	}
	fmt.Fprintf(&b, "%s: %s\n", label, d.Message)

	if d.Position.Zero() {
		b.WriteString("  at (no source position)\n")
	} else {
		fmt.Fprintf(&b, "  at %s\n", d.Position.String())
	}

	for _, secondary := range d.Secondary {
		fmt.Fprintf(&b, "  %s\n", secondary)
	}

	if d.Kind == UndeclaredVariable || d.Kind == UndeclaredFunction {
		if suggestion := f.suggestionFor(d); suggestion != "" {
			fmt.Fprintf(&b, "  Suggestion: did you mean '%s'?\n", suggestion)
		}
	}

	return b.String()
}

// suggestionFor finds a known name within edit distance <=2 of the
// diagnostic's undeclared identifier, using fuzzysearch's Levenshtein
// implementation rather than a hand-rolled one.
func (f *Formatter) suggestionFor(d Diagnostic) string {
	if f.Names == nil {
		return ""
	}
	name := extractQuotedName(d.Message)
	if name == "" {
		return ""
	}
	candidates := f.Names.KnownNames()
	if len(candidates) == 0 {
		return ""
	}

	best := ""
	bestDistance := 3 // anything >2 is not a suggestion
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		distance := fuzzy.LevenshteinDistance(name, candidate)
		if distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}
	return best
}

// extractQuotedName pulls the single-quoted identifier out of a message
// like "undeclared variable 'foo'".
func extractQuotedName(message string) string {
	start := strings.IndexByte(message, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(message[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return message[start+1 : start+1+end]
}

// FormatReport renders a full batch of diagnostics as:
//
//	Semantic Analysis Errors (N total):
//	1. SemanticError: ...
//	  at line L, column C
//	2. ...
func (f *Formatter) FormatReport(diagnostics []Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Semantic Analysis Errors (%d total):\n", len(diagnostics))
	for i, d := range diagnostics {
		fmt.Fprintf(&b, "%d. %s", i+1, f.FormatDiagnostic(d))
	}
	return b.String()
}
