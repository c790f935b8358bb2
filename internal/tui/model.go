package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/export"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/tui/components"
	"github.com/Veraticus/the-quote-must-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the form.
type State int

const (
	StateEditing State = iota
	StateSaveAs
	StateExporting
)

// field indexes the form inputs in focus order.
type field int

const (
	fieldCustomer field = iota
	fieldAddress
	fieldDate
	fieldWorkArea
	fieldQuantity
	fieldUnit
	fieldRate
	fieldGST
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Customer", "Address", "Date", "Work Area", "Qty", "Unit", "Rate", "GST %",
}

func (f field) next() field {
	return (f + 1) % fieldCount
}

func (f field) prev() field {
	return (f + fieldCount - 1) % fieldCount
}

func (f field) isItemField() bool {
	return f >= fieldWorkArea && f <= fieldRate
}

// Model holds the form state. It is the single owner of its ledger.
type Model struct {
	ctx      context.Context
	theme    themes.Theme
	ledger   *ledger.Ledger
	config   Config
	keymap   KeyMap
	status   string
	inputs   [fieldCount]textinput.Model
	saveAs   textinput.Model
	help     help.Model
	items    components.ItemsModel
	preview  components.PreviewModel
	focus    field
	state    State
	kind     statusKind
	width    int
	height   int
	gstError bool
	quitting bool
}

func newModel(ctx context.Context, cfg Config) Model {
	l := cfg.Ledger
	if l == nil {
		l = ledger.New()
	}

	m := Model{
		ctx:     ctx,
		theme:   cfg.Theme,
		ledger:  l,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		items:   components.NewItemsModel(cfg.Theme, 8),
		preview: components.NewPreviewModel(cfg.Theme, 60, 20),
		width:   cfg.Width,
		height:  cfg.Height,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		ti.TextStyle = cfg.Theme.Input
		m.inputs[i] = ti
	}
	m.inputs[fieldCustomer].Placeholder = "Customer name"
	m.inputs[fieldAddress].Placeholder = "Site address"
	m.inputs[fieldDate].SetValue(model.NewQuotationHeader(cfg.Now()).Date)
	m.inputs[fieldWorkArea].Placeholder = "e.g. Flooring"
	m.inputs[fieldQuantity].Placeholder = "0"
	m.inputs[fieldUnit].SetValue(string(model.UnitSqft))
	m.inputs[fieldUnit].Placeholder = "SQFT or NOS"
	m.inputs[fieldRate].Placeholder = "0"
	m.inputs[fieldGST].Placeholder = "blank for none"

	m.saveAs = textinput.New()
	m.saveAs.Prompt = "Save as: "
	m.saveAs.Width = 60

	m.inputs[fieldCustomer].Focus()
	m.resize()
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case exportDoneMsg:
		m.finishExport(msg)
		return m, m.setFocus(m.focus)

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateSaveAs:
			return m.updateSaveAs(msg)
		case StateExporting:
			return m, nil
		default:
			return m.updateEditing(msg)
		}
	}

	if m.state == StateSaveAs {
		var cmd tea.Cmd
		m.saveAs, cmd = m.saveAs.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Next):
		return m, m.setFocus(m.focus.next())

	case key.Matches(msg, m.keymap.Prev):
		return m, m.setFocus(m.focus.prev())

	case key.Matches(msg, m.keymap.Add):
		return m, m.addItem()

	case key.Matches(msg, m.keymap.Enter):
		if m.focus.isItemField() {
			return m, m.addItem()
		}
		return m, m.setFocus(m.focus.next())

	case key.Matches(msg, m.keymap.Duplicate):
		if item, err := m.ledger.DuplicateLast(); err != nil {
			m.setError(err)
		} else {
			m.setStatus(statusSuccess, fmt.Sprintf("Duplicated %s as row %d", item.WorkArea, item.Serial))
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Remove):
		if err := m.ledger.RemoveLast(); err != nil {
			m.setError(err)
		} else {
			m.setStatus(statusInfo, "Removed last item")
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.ledger.Clear()
		m.setStatus(statusInfo, "Cleared all items")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Export):
		return m, m.startExport()

	case key.Matches(msg, m.keymap.ScrollUp), key.Matches(msg, m.keymap.ScrollDown):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == fieldGST {
		m.applyGST()
	}
	m.refresh()
	return m, cmd
}

func (m Model) updateSaveAs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateEditing
		m.saveAs.Blur()
		m.setError(common.ErrExportCancelled)
		return m, m.setFocus(m.focus)

	case key.Matches(msg, m.keymap.Enter):
		path := strings.TrimSpace(m.saveAs.Value())
		m.saveAs.Blur()
		if path == "" {
			m.state = StateEditing
			m.setError(common.ErrExportCancelled)
			return m, m.setFocus(m.focus)
		}
		return m, m.runExport(path)
	}

	var cmd tea.Cmd
	m.saveAs, cmd = m.saveAs.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f field) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	m.inputs[f].CursorEnd()
	return m.inputs[f].Focus()
}

// addItem keeps the typed values when the ledger rejects them.
func (m *Model) addItem() tea.Cmd {
	item, err := m.ledger.AddItem(
		m.inputs[fieldWorkArea].Value(),
		m.inputs[fieldQuantity].Value(),
		m.inputs[fieldUnit].Value(),
		m.inputs[fieldRate].Value(),
	)
	if err != nil {
		m.setError(err)
		common.LogDebug("Rejected line item", common.Fields{"error": err.Error()})
		return nil
	}

	m.inputs[fieldWorkArea].Reset()
	m.inputs[fieldQuantity].Reset()
	m.inputs[fieldRate].Reset()
	m.setStatus(statusSuccess, fmt.Sprintf("Added %s: %s", item.WorkArea, item.AmountText()))
	m.refresh()
	return m.setFocus(fieldWorkArea)
}

func (m *Model) applyGST() {
	if err := m.ledger.SetGSTPercent(m.inputs[fieldGST].Value()); err != nil {
		m.setError(err)
		m.gstError = true
		return
	}
	if m.gstError {
		m.setStatus(statusNone, "")
		m.gstError = false
	}
}

func (m Model) header() model.QuotationHeader {
	return model.QuotationHeader{
		CustomerName:    strings.TrimSpace(m.inputs[fieldCustomer].Value()),
		CustomerAddress: strings.TrimSpace(m.inputs[fieldAddress].Value()),
		Date:            strings.TrimSpace(m.inputs[fieldDate].Value()),
	}
}

func (m *Model) refresh() {
	snap := m.ledger.Snapshot()
	m.items.SetItems(snap.Items)
	m.preview.SetContent(m.config.Renderer.Preview(m.header(), snap))
}

func (m *Model) startExport() tea.Cmd {
	if m.config.Exporter == nil {
		m.setStatus(statusError, "Export is not configured.")
		return nil
	}

	if m.config.Settings.SaveMode == model.SaveModeAskEveryTime || m.config.Settings.SaveMode == "" {
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.saveAs.SetValue(m.config.Exporter.SuggestedPath(m.header(), m.config.Settings))
		m.saveAs.CursorEnd()
		m.state = StateSaveAs
		m.setStatus(statusInfo, "Enter a file name, Esc to cancel")
		return m.saveAs.Focus()
	}

	return m.runExport("")
}

// runExport hands a snapshot to the exporter on the command goroutine.
func (m *Model) runExport(path string) tea.Cmd {
	req := export.Request{
		Header:   m.header(),
		Settings: m.config.Settings,
		Path:     path,
		Snapshot: m.ledger.Snapshot(),
	}
	m.state = StateExporting
	m.setStatus(statusInfo, "Exporting...")

	ctx := m.ctx
	exporter := m.config.Exporter
	return func() tea.Msg {
		result, err := exporter.Export(ctx, req)
		return exportDoneMsg{result: result, err: err}
	}
}

func (m *Model) finishExport(msg exportDoneMsg) {
	m.state = StateEditing

	switch {
	case msg.err != nil:
		m.setError(msg.err)
	case msg.result.Warning != nil:
		m.setStatus(statusWarning, fmt.Sprintf("Saved %s, but %s", msg.result.Path, msg.result.Warning))
	case msg.result.Printed:
		m.setStatus(statusSuccess, "Saved and sent to printer: "+msg.result.Path)
	default:
		m.setStatus(statusSuccess, "Saved "+msg.result.Path)
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.kind = kind
	m.status = text
}

func (m *Model) setError(err error) {
	kind := statusError
	if common.IsWarning(err) {
		kind = statusWarning
	}
	m.setStatus(kind, common.UserMessage(err))
}

func (m *Model) resize() {
	previewWidth := 60
	if m.width < 110 {
		previewWidth = max(m.width-4, 20)
	}
	previewHeight := max(m.height-12, 8)
	m.preview.Resize(previewWidth, previewHeight)
	m.items.Resize(max(m.height-len(fieldLabels)-10, 3))
	m.help.Width = m.width
}

// Ledger exposes the form's ledger for callers that run the model directly.
func (m Model) Ledger() *ledger.Ledger {
	return m.ledger
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}
