package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	form := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(m.config.Renderer.Letterhead().Title+" - QUOTATION"),
		m.renderFields(fieldCustomer, fieldDate),
		"",
		m.theme.Subtitle.Render("Line item"),
		m.renderFields(fieldWorkArea, fieldGST),
		"",
		m.items.View(),
	)

	preview := m.theme.BorderedBox.Render(m.preview.View())

	var body string
	if m.width >= 110 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", preview)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, form, "", preview)
	}

	footer := []string{m.renderStatus()}
	if m.state == StateSaveAs {
		footer = append([]string{m.saveAs.View()}, footer...)
	}
	footer = append(footer, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, body, "", strings.Join(footer, "\n"))
}

func (m Model) renderFields(from, to field) string {
	lines := make([]string, 0, to-from+1)
	for f := from; f <= to; f++ {
		label := m.theme.Label
		if f == m.focus && m.state == StateEditing {
			label = m.theme.FocusedLabel
		}
		lines = append(lines, label.Render(fieldLabels[f])+m.inputs[f].View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	switch m.kind {
	case statusSuccess:
		return m.theme.StatusSuccess.Render("✓ " + m.status)
	case statusWarning:
		return m.theme.StatusWarning.Render("! " + m.status)
	case statusError:
		return m.theme.StatusError.Render("✗ " + m.status)
	case statusInfo:
		return m.theme.StatusInfo.Render(m.status)
	default:
		return ""
	}
}
