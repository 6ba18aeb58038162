package main

import (
	"fmt"
	"io"
	"strings"
)

// CLIError is a formatted command-line error with optional remediation
// text.
type CLIError struct {
	Message string
	Hint    string
}

func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError prints err to w, coloring the "Error:" label when useColor
// is set.
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}
	if cliErr, ok := err.(*CLIError); ok {
		fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), cliErr.Message)
		if cliErr.Hint != "" {
			fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), cliErr.Hint)
		}
		return
	}
	fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
}
