// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/themesnap/internal/paths"
)

// Launcher runs an editor attached to the given streams.
type Launcher struct {
	// Lookup reads EDITOR and VISUAL. Defaults to os.LookupEnv.
	Lookup paths.LookupFunc

	// LookPath locates fallback editors. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Launcher bound to the process environment and terminal.
func New() *Launcher {
	return &Launcher{
		Lookup:   os.LookupEnv,
		LookPath: exec.LookPath,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Detect returns the editor command line to use.
// Fallback chain: $EDITOR, $VISUAL, nano, vi. Variables may carry arguments,
// as in EDITOR="code --wait".
func (l *Launcher) Detect() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if v, ok := l.Lookup(key); ok {
			if fields := strings.Fields(v); len(fields) > 0 {
				return fields
			}
		}
	}

	if _, err := l.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}

// Command builds the editor invocation for path without starting it.
func (l *Launcher) Command(ctx context.Context, path string) *exec.Cmd {
	argv := l.Detect()
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return cmd
}

// Open runs the editor on path and waits for it to exit.
func (l *Launcher) Open(ctx context.Context, path string) error {
	cmd := l.Command(ctx, path)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Path)
	}
	return nil
}
