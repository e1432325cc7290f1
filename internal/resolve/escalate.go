package resolve

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
)

// DefaultTools are the privilege-elevation commands tried in order.
var DefaultTools = []string{"sudo", "pkexec", "doas"}

// Sentinel errors for escalation.
var (
	// ErrEscalationUnavailable indicates no elevation tool can be used.
	ErrEscalationUnavailable = errors.New("privilege escalation unavailable")

	// ErrEscalationFailed indicates the elevated run did not succeed.
	ErrEscalationFailed = errors.New("elevated run failed")
)

// Escalator re-runs the program with elevated privileges.
type Escalator interface {
	// Tool names the elevation command, or "" when none is available.
	Tool(ctx context.Context) string
	// Escalate runs the program elevated with args and waits for it.
	Escalate(ctx context.Context, args []string) error
}

// ExecEscalator runs the current executable through the first installed
// elevation tool.
type ExecEscalator struct {
	Tools      []string
	Runner     host.CommandRunner
	Executable string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewExecEscalator returns an escalator for the running executable using the
// process's standard streams. Empty tools means DefaultTools.
func NewExecEscalator(tools []string) *ExecEscalator {
	if len(tools) == 0 {
		tools = DefaultTools
	}
	exe, _ := os.Executable()
	return &ExecEscalator{
		Tools:      tools,
		Runner:     host.ExecRunner{},
		Executable: exe,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func (e *ExecEscalator) Tool(ctx context.Context) string {
	for _, t := range e.Tools {
		if e.Runner.IsInstalled(ctx, t) {
			return t
		}
	}
	return ""
}

func (e *ExecEscalator) Escalate(ctx context.Context, args []string) error {
	tool := e.Tool(ctx)
	if tool == "" {
		return errors.Wrapf(ErrEscalationUnavailable, "none of %v found in PATH", e.Tools)
	}
	if e.Executable == "" {
		return errors.Wrap(ErrEscalationUnavailable, "cannot locate the running executable")
	}

	cmd := exec.CommandContext(ctx, tool, append([]string{e.Executable}, args...)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(ErrEscalationFailed, "%s %s: %v", tool, e.Executable, err)
	}
	return nil
}
