package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/detect"
	"github.com/thoreinstein/themesnap/internal/selection"
)

func newState() *selection.State {
	specs := []*component.Spec{
		{ID: "gtk-themes", DisplayName: "GTK Themes", Category: component.CategoryTheming, DestSubfolder: "GTK_Themes"},
		{ID: "icons", DisplayName: "Icons", Category: component.CategoryTheming, DestSubfolder: "Icons"},
		{ID: "sddm", DisplayName: "SDDM Theme", Category: component.CategoryBootLogin, DestSubfolder: "SDDM_Theme"},
	}
	styles := []detect.Style{{ComponentID: "gtk-themes", Summary: "GTK3: Nordic"}}
	return selection.New(specs, styles)
}

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSelectScreen_ToggleAndMove(t *testing.T) {
	sel := newState()
	m := New(sel, "", "")

	m, _ = send(t, m, keyPress(tea.KeyDown), keyPress(tea.KeySpace))
	assert.Equal(t, []string{"icons"}, sel.SelectedIDs())

	m, _ = send(t, m, keyPress(tea.KeyUp), keyPress(tea.KeyUp))
	assert.Equal(t, 2, sel.Cursor(), "cursor wraps")

	m, _ = send(t, m, runes("x"))
	assert.Equal(t, []string{"icons", "sddm"}, sel.SelectedIDs())

	m, _ = send(t, m, runes("a"))
	assert.Equal(t, 3, sel.Count())

	_, _ = send(t, m, runes("n"))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectScreen_View(t *testing.T) {
	sel := newState()
	sel.Toggle(0)
	m := New(sel, "", "")

	view := m.View()
	assert.Contains(t, view, "[x] GTK Themes")
	assert.Contains(t, view, "[ ] Icons")
	assert.Contains(t, view, "GTK3: Nordic")
	assert.Contains(t, view, detect.NotDetected)
	assert.Contains(t, view, "1 of 3 selected")
}

func TestFullFlow_Confirm(t *testing.T) {
	sel := newState()
	m := New(sel, "", "")

	m, _ = send(t, m, runes("a"), keyPress(tea.KeyEnter))
	require.Equal(t, screenName, m.screen)

	m, _ = send(t, m, keyPress(tea.KeyEnter))
	assert.Equal(t, screenName, m.screen, "empty name is rejected")
	assert.NotEmpty(t, m.message)

	m, _ = send(t, m, runes("nord"), runes("q"))
	assert.Equal(t, "nordq", m.name.Value(), "q is text on the naming screen")

	m, _ = send(t, m, keyPress(tea.KeyTab), runes("/mnt/usb"))
	assert.Equal(t, "/mnt/usb", m.root.Value())

	m, _ = send(t, m, keyPress(tea.KeyEnter))
	require.Equal(t, screenSummary, m.screen)
	view := m.View()
	assert.Contains(t, view, "nordq")
	assert.Contains(t, view, "/mnt/usb")
	assert.Contains(t, view, "SDDM Theme")

	m, cmd := send(t, m, runes("y"))
	assert.True(t, isQuit(cmd))
	assert.Equal(t, Result{Confirmed: true, Name: "nordq", Root: "/mnt/usb"}, m.Result())
	assert.Empty(t, m.View())
}

func TestFullFlow_BackAndPrefill(t *testing.T) {
	m := New(newState(), "prefilled", "")

	m, _ = send(t, m, keyPress(tea.KeyEnter), keyPress(tea.KeyEnter))
	require.Equal(t, screenSummary, m.screen)

	m, _ = send(t, m, keyPress(tea.KeyEsc))
	assert.Equal(t, screenName, m.screen)

	m, _ = send(t, m, keyPress(tea.KeyEsc))
	assert.Equal(t, screenSelect, m.screen)
}

func TestSummary_EmptySelectionWarning(t *testing.T) {
	m := New(newState(), "empty", "")
	m, _ = send(t, m, keyPress(tea.KeyEnter), keyPress(tea.KeyEnter))
	assert.Contains(t, m.View(), "No components selected")
}

func TestQuit(t *testing.T) {
	m := New(newState(), "", "")
	m, cmd := send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
	assert.False(t, m.Result().Confirmed)

	m = New(newState(), "", "")
	m, _ = send(t, m, keyPress(tea.KeyEnter))
	_, cmd = send(t, m, keyPress(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd), "ctrl+c quits from the naming screen")
}

func TestWindowSize(t *testing.T) {
	m := New(newState(), "", "")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: chrome + 2})
	assert.Equal(t, 100, m.width)
	assert.Contains(t, m.View(), "(1-2 of 3)")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		n, cursor, size    int
		wantStart, wantEnd int
	}{
		{"fits", 5, 2, 10, 0, 5},
		{"unbounded", 5, 4, 0, 0, 5},
		{"top", 20, 0, 5, 0, 5},
		{"middle", 20, 10, 5, 8, 13},
		{"bottom", 20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.n, tt.cursor, tt.size)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "theme-2026-10-19", DefaultName(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
}
