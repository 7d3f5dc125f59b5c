package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Title is the first line of every interactive session.
const Title = "🎯 TPER Framework"

// PrintBanner writes the session banner to w.
// Colours degrade to plain text when w is not a colour-capable terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	title := out.String(Title).Bold().Foreground(out.Color("#a78bfa"))
	rule := out.String(strings.Repeat("=", 50)).Foreground(out.Color("#818cf8"))

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}
