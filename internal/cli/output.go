package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	mutedColor   = color.New(color.Faint)
)

// Success prints a green confirmation line.
func Success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warn prints a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "⚠️  "+format+"\n", args...)
}

// Muted prints a dim informational line.
func Muted(w io.Writer, format string, args ...any) {
	mutedColor.Fprintf(w, format+"\n", args...)
}

// PrintErrors prints one red line per message.
func PrintErrors(w io.Writer, msgs []string) {
	for _, m := range msgs {
		errorColor.Fprintln(w, m)
	}
}

// ErrPlanLineErrors is returned when a plan was applied but some of its
// lines were skipped.
type ErrPlanLineErrors struct {
	Count int
}

func (e *ErrPlanLineErrors) Error() string {
	if e.Count == 1 {
		return "plan applied, but 1 line was skipped"
	}
	return fmt.Sprintf("plan applied, but %d lines were skipped", e.Count)
}
