package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/npratt/refgraph/internal/listpanel"
)

var stdout io.Writer = os.Stdout

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// runSimple prints the sorted reference list for non-interactive
// environments.
func (t *TUI) runSimple(w io.Writer) error {
	for _, r := range listpanel.Sorted(t.records) {
		if _, err := fmt.Fprintf(w, "%d  %-14s %s\n", r.Year, r.Category.Label(), r.Title); err != nil {
			return err
		}
		if r.URL != "" {
			if _, err := fmt.Fprintf(w, "      %s\n", r.URL); err != nil {
				return err
			}
		}
	}
	return nil
}
