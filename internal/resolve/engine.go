package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/selection"
)

// ErrInvalidTransition indicates an operation not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid state transition")

// Engine drives a selection from probing to either a clean state, an
// elevated re-run or an abort.
type Engine struct {
	host      *host.Host
	escalator Escalator
	clipboard Clipboard
	out       io.Writer
	logger    *slog.Logger

	state    State
	history  []State
	report   probe.Report
	commands []string
	err      error
}

// Option configures an Engine.
type Option func(*Engine)

// WithEscalator sets the escalator. Without one, escalation is unavailable.
func WithEscalator(e Escalator) Option {
	return func(en *Engine) { en.escalator = e }
}

// WithClipboard sets the clipboard. Without one, commands are only printed.
func WithClipboard(c Clipboard) Option {
	return func(en *Engine) { en.clipboard = c }
}

// WithOutput sets where command blocks and notices are written.
func WithOutput(w io.Writer) Option {
	return func(en *Engine) { en.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(en *Engine) { en.logger = l }
}

// NewEngine returns an Engine in the Checking state.
func NewEngine(h *host.Host, opts ...Option) *Engine {
	e := &Engine{
		host:    h,
		out:     os.Stdout,
		logger:  slog.Default(),
		state:   Checking,
		history: []State{Checking},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// History returns every state entered, in order.
func (e *Engine) History() []State { return append([]State(nil), e.history...) }

// Report returns the most recent probe report.
func (e *Engine) Report() probe.Report { return e.report }

// Commands returns the most recently generated remediation commands.
func (e *Engine) Commands() []string { return append([]string(nil), e.commands...) }

// Err returns the error that caused an abort, if any.
func (e *Engine) Err() error { return e.err }

func (e *Engine) enter(s State) {
	e.logger.Debug("resolution state", "from", e.state.String(), "to", s.String())
	e.state = s
	e.history = append(e.history, s)
}

func (e *Engine) invalid(op string) error {
	return errors.Wrapf(ErrInvalidTransition, "%s from %s", op, e.state)
}

// SourcePaths returns the union of the selected entries' source paths,
// resolved now, in selection order.
func SourcePaths(sel *selection.State, h *host.Host) []string {
	seen := map[string]bool{}
	var paths []string
	for entry := range sel.SelectedEntries() {
		for _, p := range entry.Spec.SourcePaths(h) {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// Check probes the selected entries' paths afresh and moves to Clean or
// Blocked.
func (e *Engine) Check(sel *selection.State) (State, error) {
	if e.state != Checking {
		return e.state, e.invalid("check")
	}

	e.report = probe.Probe(e.host.FS, SourcePaths(sel, e.host))
	if e.report.Clean() {
		e.enter(Clean)
	} else {
		for _, a := range e.report.Blocked() {
			e.logger.Info("path not readable", "path", a.Path, "error", a.Err)
		}
		e.enter(Blocked)
	}
	return e.state, nil
}

// Present moves from Blocked to ChoosingStrategy.
func (e *Engine) Present() error {
	if e.state != Blocked {
		return e.invalid("present")
	}
	e.enter(ChoosingStrategy)
	return nil
}

// Choose applies the user's strategy. Escalation ends in Delegated or
// Aborted, commands return to ChoosingStrategy, retry returns to Checking
// and abort ends in Aborted.
func (e *Engine) Choose(ctx context.Context, c Choice) error {
	if e.state != ChoosingStrategy {
		return e.invalid("choose " + c.Strategy.String())
	}

	switch c.Strategy {
	case StrategyEscalate:
		return e.escalate(ctx, c.Resume)
	case StrategyCommands:
		e.enter(CommandsGenerated)
		e.generate(ctx)
		e.enter(ChoosingStrategy)
		return nil
	case StrategyRetry:
		e.enter(Checking)
		return nil
	case StrategyAbort:
		e.abort(errors.ErrAborted)
		return nil
	default:
		return errors.Wrapf(ErrInvalidTransition, "unknown strategy %d", int(c.Strategy))
	}
}

func (e *Engine) abort(err error) {
	e.err = err
	e.enter(Aborted)
}

func (e *Engine) escalate(ctx context.Context, r Resume) error {
	e.enter(Escalating)

	switch {
	case e.host.IsRoot():
		e.abort(errors.Wrap(ErrEscalationUnavailable, "already running as root"))
		return e.err
	case e.escalator == nil || e.escalator.Tool(ctx) == "":
		e.abort(errors.Wrap(ErrEscalationUnavailable, "no sudo, pkexec or doas found"))
		return e.err
	}

	e.logger.Info("re-running with elevated privileges", "tool", e.escalator.Tool(ctx), "selected", strings.Join(r.Selected, ","))
	if err := e.escalator.Escalate(ctx, r.Args()); err != nil {
		e.abort(err)
		return err
	}
	e.enter(Delegated)
	return nil
}

func (e *Engine) tool(ctx context.Context) string {
	if e.escalator == nil {
		return DefaultRemediationTool
	}
	if t := e.escalator.Tool(ctx); t != "" {
		return t
	}
	return DefaultRemediationTool
}

// generate builds remediation commands and delivers them by clipboard,
// falling back to the output writer.
func (e *Engine) generate(ctx context.Context) {
	e.commands = Remediation(e.tool(ctx), e.report.BlockedPaths())
	block := strings.Join(e.commands, "\n")

	if e.clipboard != nil {
		err := e.clipboard.WriteAll(block)
		if err == nil {
			fmt.Fprintf(e.out, "Copied %d command(s) to the clipboard. Run them, then choose retry.\n", len(e.commands))
			return
		}
		e.logger.Debug("clipboard write failed, printing commands", "error", err)
	}
	WriteBlock(e.out, e.commands)
}

// Chooser asks the user how to handle blocked paths. commandsShown is true
// once remediation commands have been generated.
type Chooser interface {
	ChooseStrategy(ctx context.Context, blocked []probe.Access, commandsShown bool) (Strategy, error)
}

// Run drives the engine from its current state to Clean, Delegated or
// Aborted, asking chooser whenever a strategy is needed. The returned error
// is non-nil only for Aborted.
func (e *Engine) Run(ctx context.Context, sel *selection.State, r Resume, chooser Chooser) (State, error) {
	for {
		switch e.state {
		case Checking:
			if _, err := e.Check(sel); err != nil {
				return e.state, err
			}
		case Blocked:
			if err := e.Present(); err != nil {
				return e.state, err
			}
		case ChoosingStrategy:
			strategy, err := chooser.ChooseStrategy(ctx, e.report.Blocked(), len(e.commands) > 0)
			if err != nil {
				e.abort(errors.Wrap(errors.ErrAborted, err.Error()))
				return e.state, e.err
			}
			if err := e.Choose(ctx, Choice{Strategy: strategy, Resume: r}); err != nil && e.state != Aborted {
				return e.state, err
			}
		case Clean, Delegated:
			return e.state, nil
		case Aborted:
			return e.state, e.err
		default:
			return e.state, e.invalid("run")
		}
	}
}
