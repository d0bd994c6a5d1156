// Package tui renders fit reports for the terminal.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// FitReport formats a fit result as markdown.
func FitReport(title string, res *domain.FitResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Policy:** %s\n", res.Policy)
	fmt.Fprintf(&b, "- **-log(L):** %.6g\n", res.NLL)
	fmt.Fprintf(&b, "- **Objective calls:** %d\n", res.Evaluations)
	fmt.Fprintf(&b, "- **Evaluation errors (final pass):** %d\n\n", res.ErrorCount)

	b.WriteString("## Parameters\n\n")
	names := make([]string, 0, len(res.Params))
	for name := range res.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	for _, name := range names {
		fmt.Fprintf(&b, "| %s | %.6g |\n", name, res.Params[name])
	}

	if len(res.ErrorLog) > 0 {
		fmt.Fprintf(&b, "\n## Evaluation error log (%d retained)\n\n", len(res.ErrorLog))
		b.WriteString("| Event | Value | Reason |\n|---|---|---|\n")
		for _, e := range res.ErrorLog {
			fmt.Fprintf(&b, "| %d | %.6g | %s |\n", e.EventIndex, e.Value, e.Reason)
		}
	}
	return b.String()
}

// Render renders markdown for the terminal. On a non-tty stdout, or when
// glamour fails, the raw markdown is returned unchanged.
func Render(markdown string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return markdown
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithColorProfile(termenv.ColorProfile()),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
