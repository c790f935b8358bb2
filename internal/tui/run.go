package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits and returns the final ledger.
func Run(ctx context.Context, opts ...Option) (*ledger.Ledger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.LogPath != "" {
		restore, err := redirectLogs(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		defer restore()
	}

	m := newModel(ctx, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}

	common.LogInfo("Form closed", common.Fields{"items": fm.ledger.Len()})
	return fm.ledger, nil
}

// redirectLogs points the default logger at a file so log lines do not
// corrupt the alternate screen.
func redirectLogs(path string, level slog.Level) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler, err := common.NewHandler(f, level, "json")
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	previous := slog.Default()
	slog.SetDefault(slog.New(handler))
	return func() {
		slog.SetDefault(previous)
		_ = f.Close()
	}, nil
}
