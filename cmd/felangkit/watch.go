package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/pipeline"
)

// newWatchCmd re-runs `check` from scratch on every save of the given
// file. Every fire discards prior state and lexes, parses, and analyzes
// the whole file again; nothing is reused between runs.
func newWatchCmd(noColor *bool, resolveOptions func() (pipeline.Options, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-run check on every save of file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			opts.PerformSemanticAnalysis = true

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting file watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}

			useColor := ShouldUseColor(*noColor)
			out := cmd.OutOrStdout()
			runOnce(out, path, opts, useColor)

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					runOnce(out, path, opts, useColor)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
				}
			}
		},
	}
}

func runOnce(w io.Writer, path string, opts pipeline.Options, useColor bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		return
	}

	d := pipeline.New(opts)
	result := d.ParseWithAnalysis(string(source))

	var names diagnostic.NameSource
	if result.Table != nil {
		names = result.Table
	}
	formatter := diagnostic.NewFormatter(false, names)

	fmt.Fprintf(w, "%s%s%s\n", Colorize("--- ", ColorGray, useColor), path, Colorize(" ---", ColorGray, useColor))
	for _, d := range result.Report.Errors {
		fmt.Fprintf(w, "%s: %s", Colorize("error", ColorRed, useColor), formatter.FormatDiagnostic(d))
	}
	for _, d := range result.Report.Warnings {
		fmt.Fprintf(w, "%s: %s", Colorize("warning", ColorYellow, useColor), formatter.FormatDiagnostic(d))
	}
	if result.Report.IsSuccessful {
		fmt.Fprintf(w, "%s\n", Colorize("ok", ColorGreen, useColor))
	}
}
