package commands

import (
	"context"

	"github.com/thoreinstein/themesnap/internal/cli/prompt"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/logging"
	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/resolve"
	"github.com/thoreinstein/themesnap/internal/selection"
)

// resolveAccess probes the selection and, while paths are blocked, asks how
// to continue. Without a terminal the remediation commands are printed once
// and the run aborts.
func resolveAccess(ctx context.Context, h *host.Host, sel *selection.State, r resolve.Resume, input *prompt.Selector, interactive bool) (resolve.State, error) {
	esc := newEscalator(cfg)
	opts := []resolve.Option{
		resolve.WithEscalator(esc),
		resolve.WithOutput(input.Writer()),
		resolve.WithLogger(logging.FromContext(ctx)),
	}

	var chooser resolve.Chooser = batchChooser{}
	if interactive {
		if cb := newClipboard(cfg); cb != nil {
			opts = append(opts, resolve.WithClipboard(cb))
		}
		tool := ""
		if !h.IsRoot() {
			tool = esc.Tool(ctx)
		}
		chooser = prompt.NewStrategyChooser(input, tool)
	}
	return resolve.NewEngine(h, opts...).Run(ctx, sel, r, chooser)
}

// batchChooser answers for non-interactive runs: show commands, then abort.
type batchChooser struct{}

func (batchChooser) ChooseStrategy(_ context.Context, _ []probe.Access, commandsShown bool) (resolve.Strategy, error) {
	if commandsShown {
		return resolve.StrategyAbort, nil
	}
	return resolve.StrategyCommands, nil
}
