// Package picker selects components with a fuzzy finder as an alternative to
// the full-screen list. Tab marks entries and Enter accepts.
package picker

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/selection"
)

// ErrCancelled indicates the user closed the finder without choosing.
var ErrCancelled = errors.New("picker cancelled")

// FindMultiFunc has the signature of fuzzyfinder.FindMulti.
type FindMultiFunc func(slice any, itemFunc func(i int) string, opts ...fuzzyfinder.Option) ([]int, error)

// Picker runs a fuzzy multi-select over a selection.
type Picker struct {
	find FindMultiFunc
}

// New returns a Picker backed by the terminal.
func New() *Picker {
	return &Picker{find: fuzzyfinder.FindMulti}
}

// NewWithFinder returns a Picker that uses find instead of the terminal.
func NewWithFinder(find FindMultiFunc) *Picker {
	return &Picker{find: find}
}

// Pick replaces the selection in sel with the entries the user marks.
// sel is unchanged when the user cancels.
func (p *Picker) Pick(sel *selection.State) error {
	entries := sel.Entries()
	if len(entries) == 0 {
		return nil
	}

	idx, err := p.find(
		entries,
		func(i int) string { return Label(entries[i]) },
		fuzzyfinder.WithHeader("Tab marks a component, Enter accepts"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 || i >= len(entries) {
				return ""
			}
			return Preview(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return ErrCancelled
		}
		return errors.Wrap(err, "running fuzzy finder")
	}

	ids := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(entries) {
			ids = append(ids, entries[i].Spec.ID)
		}
	}
	return sel.Apply(ids)
}

// Label is the finder line for e.
func Label(e selection.Entry) string {
	return fmt.Sprintf("%s [%s] %s", e.Spec.DisplayName, e.Spec.Category, e.Detected.Display())
}

// Preview describes e in the finder's preview pane.
func Preview(e selection.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Spec.DisplayName)
	if e.Spec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", e.Spec.Description)
	}
	fmt.Fprintf(&b, "Category: %s\n", e.Spec.Category)
	fmt.Fprintf(&b, "Detected: %s\n", e.Detected.Display())
	fmt.Fprintf(&b, "Saved to: %s/\n", e.Spec.DestSubfolder)
	if len(e.Detected.Paths) > 0 {
		b.WriteString("\nSources:\n")
		for _, p := range e.Detected.Paths {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	return b.String()
}
