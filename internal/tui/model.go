// Package tui implements the full-screen interface of the create flow: the
// component list, the naming screen and the summary screen.
//
// The model only reads and toggles a [selection.State]; detection, probing
// and copying happen outside the program once it exits.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/selection"
)

type screen int

const (
	screenSelect screen = iota
	screenName
	screenSummary
)

// Result is what the user decided.
type Result struct {
	// Confirmed is false when the user quit before confirming.
	Confirmed bool
	Name      string
	Root      string
}

// Model is the bubbletea model for the create flow.
type Model struct {
	sel    *selection.State
	screen screen

	name      textinput.Model
	root      textinput.Model
	focusRoot bool

	keys   keyMap
	help   help.Model
	width  int
	height int

	message string
	result  Result
	done    bool
}

// DefaultName suggests a backup name for t.
func DefaultName(t time.Time) string {
	return "theme-" + t.Format("2006-01-02")
}

// New returns a model over sel. name and root pre-fill the naming screen.
func New(sel *selection.State, name, root string) Model {
	n := textinput.New()
	n.Placeholder = "my-theme"
	n.CharLimit = 128
	n.Width = 40
	n.SetValue(name)

	r := textinput.New()
	r.Placeholder = "~/CustomThemes"
	r.CharLimit = 4096
	r.Width = 60
	r.SetValue(root)

	return Model{
		sel:  sel,
		name: n,
		root: r,
		keys: defaultKeys(),
		help: help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns the outcome once the program has exited.
func (m Model) Result() Result {
	return m.result
}

// Run shows the interface on the terminal and blocks until the user confirms
// or quits.
func Run(ctx context.Context, sel *selection.State, name, root string, opts ...tea.ProgramOption) (Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(New(sel, name, root), opts...).Run()
	if err != nil {
		return Result{}, errors.Wrap(err, "running interface")
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, errors.Newf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
