package logging

import (
	"io"

	"golang.org/x/term"

	"github.com/thoreinstein/themesnap/internal/paths"
)

// colorEnabled reports whether ANSI colors should be written to w. NO_COLOR
// (https://no-color.org) and TERM=dumb disable them, as does any writer that
// is not a terminal.
func colorEnabled(w io.Writer, lookup paths.LookupFunc) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
