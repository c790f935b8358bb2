// Package components contains the panes composed by the quotation form.
package components

import (
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var itemColumns = []table.Column{
	{Title: "Sr", Width: 3},
	{Title: "Work Area", Width: 20},
	{Title: "Qty", Width: 12},
	{Title: "Unit", Width: 9},
	{Title: "Rate", Width: 8},
	{Title: "Amount", Width: 10},
}

// ItemsModel lists the ledger rows.
type ItemsModel struct {
	theme themes.Theme
	table table.Model
}

// NewItemsModel creates an empty item table.
func NewItemsModel(theme themes.Theme, height int) ItemsModel {
	t := table.New(
		table.WithColumns(itemColumns),
		table.WithHeight(height),
		table.WithFocused(false),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	return ItemsModel{theme: theme, table: t}
}

// SetItems replaces the rows and scrolls to the newest one.
func (m *ItemsModel) SetItems(items []model.LineItem) {
	rows := make([]table.Row, len(items))
	for i, item := range items {
		rows[i] = table.Row(item.Cells())
	}
	m.table.SetRows(rows)
	m.table.GotoBottom()
}

// Rows returns the rendered cell values.
func (m ItemsModel) Rows() []table.Row {
	return m.table.Rows()
}

// Resize sets the visible row count.
func (m *ItemsModel) Resize(height int) {
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
}

// Update forwards scrolling keys to the table.
func (m ItemsModel) Update(msg tea.Msg) (ItemsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m ItemsModel) View() string {
	if len(m.table.Rows()) == 0 {
		return m.table.View() + "\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No items yet")
	}
	return m.table.View()
}
