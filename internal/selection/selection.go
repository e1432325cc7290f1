// Package selection holds the ordered, toggleable list of components shown
// to the user.
//
// A [State] is built once from the registry and the detection results and
// then only mutated by user input. Re-detecting means building a new State.
package selection

import (
	"iter"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/detect"
	"github.com/thoreinstein/themesnap/internal/errors"
)

// ErrUnknownComponent indicates an ID that is not part of the selection.
var ErrUnknownComponent = errors.New("unknown component")

// Entry is one row of the selection list.
type Entry struct {
	Spec     *component.Spec
	Detected detect.Style
	Selected bool
}

// State is the selection list plus a cursor bounded to [0, Len()).
type State struct {
	entries []Entry
	cursor  int
}

// New builds a State in the order of specs. Styles are matched to specs by
// component ID; a spec without a style gets an undetected one.
func New(specs []*component.Spec, styles []detect.Style) *State {
	byID := make(map[string]detect.Style, len(styles))
	for _, s := range styles {
		byID[s.ComponentID] = s
	}

	entries := make([]Entry, len(specs))
	for i, spec := range specs {
		style, ok := byID[spec.ID]
		if !ok {
			style = detect.Style{ComponentID: spec.ID}
		}
		entries[i] = Entry{Spec: spec, Detected: style}
	}
	return &State{entries: entries}
}

// Len returns the number of entries.
func (s *State) Len() int {
	return len(s.entries)
}

// Cursor returns the cursor position. It is 0 for an empty State.
func (s *State) Cursor() int {
	return s.cursor
}

// Entries returns a copy of all entries in order.
func (s *State) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the entry at i.
func (s *State) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Toggle flips the selection of entry i. Out-of-range indexes are ignored.
func (s *State) Toggle(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries[i].Selected = !s.entries[i].Selected
}

// ToggleCursor flips the entry under the cursor.
func (s *State) ToggleCursor() {
	s.Toggle(s.cursor)
}

// MoveCursor moves the cursor by delta. With wrap the cursor wraps around
// either end; without it the cursor stops at the first or last entry.
func (s *State) MoveCursor(delta int, wrap bool) {
	n := len(s.entries)
	if n == 0 {
		s.cursor = 0
		return
	}

	c := s.cursor + delta
	if wrap {
		c = ((c % n) + n) % n
	} else {
		c = max(0, min(c, n-1))
	}
	s.cursor = c
}

// SetAll selects or deselects every entry.
func (s *State) SetAll(selected bool) {
	for i := range s.entries {
		s.entries[i].Selected = selected
	}
}

// SelectedEntries yields the selected entries in order.
func (s *State) SelectedEntries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range s.entries {
			if e.Selected && !yield(e) {
				return
			}
		}
	}
}

// SelectedIDs returns the IDs of the selected entries in order.
func (s *State) SelectedIDs() []string {
	var ids []string
	for e := range s.SelectedEntries() {
		ids = append(ids, e.Spec.ID)
	}
	return ids
}

// Count returns the number of selected entries.
func (s *State) Count() int {
	n := 0
	for range s.SelectedEntries() {
		n++
	}
	return n
}

// RestoreSummaries replaces the detected summaries of the entries named in
// summaries. IDs with no entry are ignored.
func (s *State) RestoreSummaries(summaries map[string]string) {
	for i := range s.entries {
		if v, ok := summaries[s.entries[i].Spec.ID]; ok {
			s.entries[i].Detected.Summary = v
		}
	}
}

// Apply selects exactly the entries named by ids. On an unknown ID the State
// is left unchanged.
func (s *State) Apply(ids []string) error {
	want := make(map[string]bool, len(ids))
	known := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		known[e.Spec.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return errors.Wrapf(ErrUnknownComponent, "%q", id)
		}
		want[id] = true
	}

	for i := range s.entries {
		s.entries[i].Selected = want[s.entries[i].Spec.ID]
	}
	return nil
}
