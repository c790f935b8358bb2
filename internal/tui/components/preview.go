package components

import (
	"github.com/Veraticus/the-quote-must-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// PreviewModel shows the plain-text quotation in a scrollable pane.
type PreviewModel struct {
	theme    themes.Theme
	content  string
	viewport viewport.Model
}

// NewPreviewModel creates a preview pane of the given size.
func NewPreviewModel(theme themes.Theme, width, height int) PreviewModel {
	return PreviewModel{
		theme:    theme,
		viewport: viewport.New(width, height),
	}
}

// SetContent replaces the preview text, keeping the bottom (totals) in view.
func (m *PreviewModel) SetContent(content string) {
	m.content = content
	m.viewport.SetContent(m.theme.Preview.Render(content))
	m.viewport.GotoBottom()
}

// Content returns the unstyled preview text.
func (m PreviewModel) Content() string {
	return m.content
}

// Resize changes the pane dimensions.
func (m *PreviewModel) Resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.theme.Preview.Render(m.content))
}

// Update forwards scrolling to the viewport.
func (m PreviewModel) Update(msg tea.Msg) (PreviewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the visible part of the preview.
func (m PreviewModel) View() string {
	return m.viewport.View()
}
