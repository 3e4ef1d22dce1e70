package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/bef0/bricks/lang"
)

//nolint:gochecknoglobals
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	snippetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// printDiagnostic writes a styled, human-readable rendering of a parse
// error to w. Non-parse errors render as a single styled line.
func printDiagnostic(w io.Writer, err error) {
	pe := &lang.ParseError{}
	if !errors.As(err, &pe) {
		fmt.Fprintln(w, errorStyle.Render(err.Error()))

		return
	}

	header := "parse error at line " + strconv.Itoa(pe.Line) +
		", column " + strconv.Itoa(pe.Column) + ": " + pe.Msg

	fmt.Fprintln(w, errorStyle.Render(header))

	if snippet := pe.Snippet(); snippet != "" {
		fmt.Fprintln(w, snippetStyle.Render(snippet))
	}
}
