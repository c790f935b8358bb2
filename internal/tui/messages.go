package tui

import "github.com/Veraticus/the-quote-must-flow/internal/export"

// exportDoneMsg carries the outcome of an export command.
type exportDoneMsg struct {
	err    error
	result export.Result
}

// statusKind selects the style of the status line.
type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusSuccess
	statusWarning
	statusError
)
