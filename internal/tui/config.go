package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/export"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/Veraticus/the-quote-must-flow/internal/tui/themes"
)

// Exporter writes the quotation once the user asks for it.
type Exporter interface {
	Export(ctx context.Context, req export.Request) (export.Result, error)
	SuggestedPath(header model.QuotationHeader, settings model.Settings) string
}

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Exporter Exporter
	Renderer *render.Renderer
	Ledger   *ledger.Ledger
	Now      func() time.Time
	Settings model.Settings
	// LogPath receives log output while the form owns the terminal.
	LogPath  string
	LogLevel slog.Level
	Width    int
	Height   int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Renderer: render.New(model.DefaultLetterhead()),
		Now:      time.Now,
		Settings: model.DefaultSettings(),
		Width:    120,
		Height:   36,
	}
}

// WithExporter sets the collaborator used by ctrl+s.
func WithExporter(exporter Exporter) Option {
	return func(c *Config) {
		c.Exporter = exporter
	}
}

// WithRenderer sets the renderer used for the live preview.
func WithRenderer(renderer *render.Renderer) Option {
	return func(c *Config) {
		c.Renderer = renderer
	}
}

// WithLedger starts the form with existing rows, e.g. from an import.
func WithLedger(l *ledger.Ledger) Option {
	return func(c *Config) {
		c.Ledger = l
	}
}

// WithSettings sets the save mode and folder.
func WithSettings(settings model.Settings) Option {
	return func(c *Config) {
		c.Settings = settings
	}
}

// WithClock sets the clock used for the default date.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLogFile sends log output at level and above to path while the form runs.
func WithLogFile(path string, level slog.Level) Option {
	return func(c *Config) {
		c.LogPath = path
		c.LogLevel = level
	}
}
