// Package ui holds the terminal front end: choosers that collect answers and
// the console that prints groups, notices and tables.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/session"
)

// Chooser collects every answer a run needs, starting with the mode
type Chooser interface {
	session.Chooser
	SelectMode() (classify.Mode, error)
}

// NewChooser picks interactive menus when in is a terminal and a line reader
// otherwise, so piped answers keep working.
func NewChooser(in io.Reader, out io.Writer) Chooser {
	if IsInteractive(in) {
		return NewPromptChooser()
	}
	return NewLineChooser(in, out)
}

// IsInteractive reports whether in is a file attached to a terminal
func IsInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
