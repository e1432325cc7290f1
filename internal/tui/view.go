package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thoreinstein/themesnap/internal/selection"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	detectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	boxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// chrome is the number of lines around the component list.
const chrome = 6

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	switch m.screen {
	case screenName:
		m.viewName(&b)
	case screenSummary:
		m.viewSummary(&b)
	default:
		m.viewSelect(&b)
	}

	if m.message != "" {
		b.WriteString("\n" + warnStyle.Render(m.message) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.bindings(m.screen)) + "\n")
	return b.String()
}

func (m Model) viewSelect(b *strings.Builder) {
	b.WriteString(titleStyle.Render("themesnap") + "  Select the components to back up\n\n")

	entries := m.sel.Entries()
	start, end := window(len(entries), m.sel.Cursor(), m.height-chrome)
	nameWidth, catWidth := columnWidths(entries)

	for i := start; i < end; i++ {
		b.WriteString(m.row(entries[i], i == m.sel.Cursor(), nameWidth, catWidth))
		b.WriteByte('\n')
	}
	if end-start < len(entries) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d of %d)", start+1, end, len(entries))) + "\n")
	}

	fmt.Fprintf(b, "\n%d of %d selected\n", m.sel.Count(), m.sel.Len())
}

func (m Model) row(e selection.Entry, current bool, nameWidth, catWidth int) string {
	pointer := "  "
	if current {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	if e.Selected {
		box = "[x]"
	}

	summary := dimStyle.Render(e.Detected.Display())
	if e.Detected.Detected() {
		summary = detectedStyle.Render(e.Detected.Display())
	}

	name := fmt.Sprintf("%-*s", nameWidth, e.Spec.DisplayName)
	if current {
		name = cursorStyle.Render(name)
	}
	return fmt.Sprintf("%s%s %s  %s  %s", pointer, box, name,
		categoryStyle.Render(fmt.Sprintf("%-*s", catWidth, e.Spec.Category)), summary)
}

func (m Model) viewName(b *strings.Builder) {
	b.WriteString(titleStyle.Render("themesnap") + "  Name the backup\n\n")
	b.WriteString(labelStyle.Render("Backup name") + "\n")
	b.WriteString(m.name.View() + "\n\n")
	b.WriteString(labelStyle.Render("Save location") + dimStyle.Render(" (empty for the configured default)") + "\n")
	b.WriteString(m.root.View() + "\n")
}

func (m Model) viewSummary(b *strings.Builder) {
	b.WriteString(titleStyle.Render("themesnap") + "  Review\n\n")

	var body strings.Builder
	fmt.Fprintf(&body, "%s %s\n", labelStyle.Render("Name:"), strings.TrimSpace(m.name.Value()))
	root := strings.TrimSpace(m.root.Value())
	if root == "" {
		root = m.root.Placeholder
	}
	fmt.Fprintf(&body, "%s %s\n\n", labelStyle.Render("Location:"), root)

	n := 0
	for e := range m.sel.SelectedEntries() {
		fmt.Fprintf(&body, "  %s  %s\n", e.Spec.DisplayName, dimStyle.Render(e.Detected.Display()))
		n++
	}
	if n == 0 {
		body.WriteString(warnStyle.Render("  No components selected; the backup will only contain its manifest.") + "\n")
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(body.String(), "\n")) + "\n")
}

// window returns the [start, end) range of a list of n rows that keeps
// cursor visible in at most size rows. size <= 0 shows everything.
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(0, min(start, n-size))
	return start, start + size
}

func columnWidths(entries []selection.Entry) (int, int) {
	var name, cat int
	for _, e := range entries {
		name = max(name, lipgloss.Width(e.Spec.DisplayName))
		cat = max(cat, lipgloss.Width(e.Spec.Category))
	}
	return name, cat
}
