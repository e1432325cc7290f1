package prompt

import (
	"context"
	"fmt"

	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/resolve"
)

// StrategyChooser asks on the terminal how to handle paths that cannot be
// read. It implements resolve.Chooser.
type StrategyChooser struct {
	selector *Selector
	tool     string
}

// NewStrategyChooser returns a chooser. tool is the escalation tool that
// would be used, or "" when escalation is not available.
func NewStrategyChooser(s *Selector, tool string) *StrategyChooser {
	return &StrategyChooser{selector: s, tool: tool}
}

// ChooseStrategy lists the blocked paths and reads a numbered choice.
func (c *StrategyChooser) ChooseStrategy(_ context.Context, blocked []probe.Access, commandsShown bool) (resolve.Strategy, error) {
	w := c.selector.Writer()
	fmt.Fprintf(w, "\n%d path(s) cannot be read:\n", len(blocked))
	for _, a := range blocked {
		fmt.Fprintf(w, "  %s  %s\n", a.Permissions(), a.Path)
		if a.Err != nil {
			fmt.Fprintf(w, "      %v\n", a.Err)
		}
	}
	fmt.Fprintln(w)

	strategies, options := c.options()
	def := 0
	if commandsShown {
		for i, s := range strategies {
			if s == resolve.StrategyRetry {
				def = i
			}
		}
	}

	i, err := c.selector.Select("How do you want to continue?", options, def)
	if err != nil {
		return 0, err
	}
	return strategies[i], nil
}

func (c *StrategyChooser) options() ([]resolve.Strategy, []Option) {
	var (
		strategies []resolve.Strategy
		options    []Option
	)
	if c.tool != "" {
		strategies = append(strategies, resolve.StrategyEscalate)
		options = append(options, Option{Label: "Re-run with " + c.tool, Detail: "recommended"})
	}
	strategies = append(strategies, resolve.StrategyCommands, resolve.StrategyRetry, resolve.StrategyAbort)
	options = append(options,
		Option{Label: "Show chmod commands", Detail: "copied to the clipboard when possible"},
		Option{Label: "Retry", Detail: "after fixing permissions"},
		Option{Label: "Abort"},
	)
	return strategies, options
}
