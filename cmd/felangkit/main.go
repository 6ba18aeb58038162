// Command felangkit drives the FeLangKit pipeline (tokenizer, parser,
// type checker) from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/lexer"
	"github.com/felangkit/felangkit/pipeline"
	"github.com/felangkit/felangkit/token"
)

func main() {
	var (
		configPath string
		profile    string
		noColor    bool
		format     string
	)

	root := &cobra.Command{
		Use:           "felangkit",
		Short:         "Tokenize, parse, and type-check FE pseudo-language source",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "JSON configuration file, validated against the embedded schema")
	root.PersistentFlags().StringVar(&profile, "profile", "default", "error-reporter profile: default, strict, or fast")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&format, "format", "text", "output format: text or cbor")

	resolveOptions := func() (pipeline.Options, error) {
		base, err := optionsForProfile(profile)
		if err != nil {
			return pipeline.Options{}, err
		}
		return loadOptions(configPath, base)
	}

	root.AddCommand(
		newTokensCmd(&format, resolveOptions),
		newParseCmd(&format, resolveOptions),
		newCheckCmd(&format, &noColor, resolveOptions),
		newWatchCmd(&noColor, resolveOptions),
	)

	if err := root.Execute(); err != nil {
		FormatError(os.Stderr, err, ShouldUseColor(noColor))
		os.Exit(1)
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func lexerOpts(opts pipeline.Options) []lexer.Opt {
	var lopts []lexer.Opt
	if !opts.NormalizeUnicode {
		lopts = append(lopts, lexer.WithoutUnicodeNormalization())
	}
	if opts.KeepTrivia {
		lopts = append(lopts, lexer.WithTrivia())
	}
	return lopts
}

func newTokensCmd(format *string, resolveOptions func() (pipeline.Options, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Tokenize source and print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			toks, diags := lexer.Tokenize(source, lexerOpts(opts)...)
			return printTokens(cmd.OutOrStdout(), toks, diags, *format)
		},
	}
}

func newParseCmd(format *string, resolveOptions func() (pipeline.Options, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse source into statements and print the AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			d := pipeline.New(opts)
			stmts, diags := d.ParseStatements(source)
			return printParse(cmd.OutOrStdout(), stmts, diags, *format)
		},
	}
}

func newCheckCmd(format *string, noColor *bool, resolveOptions func() (pipeline.Options, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Run the full pipeline (parse + semantic analysis) and report diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			opts.PerformSemanticAnalysis = true
			d := pipeline.New(opts)
			result := d.ParseWithAnalysis(source)
			return printCheck(cmd.OutOrStdout(), result, *format, ShouldUseColor(*noColor))
		},
	}
}

func printTokens(w io.Writer, toks []token.Token, diags []diagnostic.Diagnostic, format string) error {
	if format == "cbor" {
		wire := make([]wireToken, len(toks))
		for i, t := range toks {
			wire[i] = toWireToken(t)
		}
		data, err := canonicalEncode(wire)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		return diagnosticsErr(diags)
	}

	for _, t := range toks {
		fmt.Fprintf(w, "%-18s %-20q %s\n", t.Kind, t.Lexeme, t.Position)
	}
	if err := reportDiagnostics(w, diags); err != nil {
		return err
	}
	return diagnosticsErr(diags)
}

func printParse(w io.Writer, stmts []ast.Statement, diags []diagnostic.Diagnostic, format string) error {
	if format == "cbor" {
		texts := make([]string, len(stmts))
		for i, s := range stmts {
			texts[i] = s.String()
		}
		data, err := canonicalEncode(texts)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		return diagnosticsErr(diags)
	}
	for _, s := range stmts {
		fmt.Fprintln(w, s.String())
	}
	if err := reportDiagnostics(w, diags); err != nil {
		return err
	}
	return diagnosticsErr(diags)
}

func printCheck(w io.Writer, result pipeline.Result, format string, useColor bool) error {
	var names diagnostic.NameSource
	if result.Table != nil {
		names = result.Table
	}
	formatter := diagnostic.NewFormatter(false, names)

	if format == "cbor" {
		all := make([]wireDiagnostic, 0, len(result.Report.Errors)+len(result.Report.Warnings))
		for _, d := range result.Report.Errors {
			all = append(all, toWireDiagnostic(d))
		}
		for _, d := range result.Report.Warnings {
			all = append(all, toWireDiagnostic(d))
		}
		data, err := canonicalEncode(all)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	} else {
		for _, d := range result.Report.Errors {
			label := Colorize("error", ColorRed, useColor)
			fmt.Fprintf(w, "%s: %s", label, formatter.FormatDiagnostic(d))
		}
		for _, d := range result.Report.Warnings {
			label := Colorize("warning", ColorYellow, useColor)
			fmt.Fprintf(w, "%s: %s", label, formatter.FormatDiagnostic(d))
		}
	}

	if !result.Report.IsSuccessful {
		return &CLIError{Message: fmt.Sprintf("%d error(s) found", len(result.Report.Errors))}
	}
	return nil
}

func reportDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	formatter := diagnostic.NewFormatter(false, nil)
	for _, d := range diags {
		fmt.Fprint(w, formatter.FormatDiagnostic(d))
	}
	return nil
}

func diagnosticsErr(diags []diagnostic.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	return &CLIError{Message: fmt.Sprintf("%d diagnostic(s) found", len(diags))}
}
