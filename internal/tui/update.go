package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thoreinstein/themesnap/internal/paths"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.screen {
		case screenName:
			return m.updateName(msg)
		case screenSummary:
			return m.updateSummary(msg)
		default:
			return m.updateSelect(msg)
		}
	}

	if m.screen == screenName {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.sel.MoveCursor(-1, true)
	case key.Matches(msg, m.keys.Down):
		m.sel.MoveCursor(1, true)
	case key.Matches(msg, m.keys.Toggle):
		m.sel.ToggleCursor()
	case key.Matches(msg, m.keys.All):
		m.sel.SetAll(true)
	case key.Matches(msg, m.keys.None):
		m.sel.SetAll(false)
	case key.Matches(msg, m.keys.Next):
		m.screen = screenName
		m.focusRoot = false
		m.root.Blur()
		return m, m.name.Focus()
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.message = ""
		m.screen = screenSelect
		m.name.Blur()
		m.root.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		m.focusRoot = !m.focusRoot
		if m.focusRoot {
			m.name.Blur()
			return m, m.root.Focus()
		}
		m.root.Blur()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Next):
		if err := paths.ValidateName(m.name.Value()); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		m.screen = screenSummary
		m.name.Blur()
		m.root.Blur()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focusRoot {
		m.root, cmd = m.root.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.result = Result{
			Confirmed: true,
			Name:      strings.TrimSpace(m.name.Value()),
			Root:      strings.TrimSpace(m.root.Value()),
		}
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenName
		if m.focusRoot {
			return m, m.root.Focus()
		}
		return m, m.name.Focus()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.result = Result{}
	m.done = true
	return m, tea.Quit
}
