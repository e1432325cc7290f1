package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/detect"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/resolve"
	"github.com/thoreinstein/themesnap/internal/selection"
)

// Output styles. fatih/color disables them when stdout is not a terminal or
// NO_COLOR is set.
var (
	styleBold   = color.New(color.Bold).SprintFunc()
	styleDim    = color.New(color.FgHiBlack).SprintFunc()
	styleGreen  = color.New(color.FgGreen).SprintFunc()
	styleYellow = color.New(color.FgYellow).SprintFunc()
	styleRed    = color.New(color.FgRed).SprintFunc()
)

// newHost builds the view of the machine commands operate on.
var newHost = func(c *config.Config) (*host.Host, error) {
	return host.Local(host.WithTimeout(c.Detect.Timeout))
}

// newEscalator returns the privilege escalator for blocked paths.
var newEscalator = func(c *config.Config) resolve.Escalator {
	return resolve.NewExecEscalator(c.Escalation.Tools)
}

// newClipboard returns the clipboard for remediation commands, or nil when
// disabled in the configuration.
var newClipboard = func(c *config.Config) resolve.Clipboard {
	if !c.Clipboard {
		return nil
	}
	return resolve.SystemClipboard{}
}

// isTerminal reports whether v is a file descriptor attached to a terminal.
var isTerminal = func(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintError writes err and its suggestion, if any, to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", styleRed("Error:"), err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s %s\n", styleYellow("Hint:"), exitErr.Suggestion)
	}
}

// loadHost returns the host, mapping failures to a system error.
func loadHost() (*host.Host, error) {
	h, err := newHost(cfg)
	if err != nil {
		return nil, errors.NewSystemError(err, "set HOME to your home directory")
	}
	return h, nil
}

// detectSelection detects every registered component and returns an
// unselected list in registry order.
func detectSelection(ctx context.Context, h *host.Host) (*selection.State, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	specs := reg.All()
	return selection.New(specs, detect.DetectAll(ctx, specs, h)), nil
}

// applyIDs restores a comma-separated selection. all selects everything.
func applyIDs(sel *selection.State, ids string, all bool) error {
	if all {
		sel.SetAll(true)
		return nil
	}
	if ids == "" {
		return nil
	}
	if err := sel.Apply(resolve.SplitIDs(ids)); err != nil {
		return errors.NewUserError(err, "run 'themesnap detect' to list component IDs")
	}
	return nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
