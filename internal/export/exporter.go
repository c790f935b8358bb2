package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/spf13/afero"
)

// PathPrompter asks the user where to save when the save mode requires it.
// Returning an empty path cancels the export.
type PathPrompter interface {
	PromptPath(ctx context.Context, suggested string) (string, error)
}

// Journal records finished exports.
type Journal interface {
	RecordExport(ctx context.Context, record *model.ExportRecord) error
}

// Request is everything needed to export one quotation.
type Request struct {
	Header   model.QuotationHeader
	Settings model.Settings
	// Path skips path resolution when set, e.g. after the form asked for it.
	Path     string
	Snapshot model.Snapshot
}

// Result describes a successful export.
type Result struct {
	// Warning is set when the file was written but opening or printing failed.
	Warning error
	Path    string
	Mode    model.SaveMode
	Opened  bool
	Printed bool
}

// Exporter renders, writes and hands off quotations according to the save mode.
type Exporter struct {
	fs       afero.Fs
	sink     Sink
	launcher Launcher
	prompter PathPrompter
	journal  Journal
	renderer *render.Renderer
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFs sets the filesystem files are written to.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) {
		e.fs = fs
	}
}

// WithSink replaces the PDF sink.
func WithSink(sink Sink) Option {
	return func(e *Exporter) {
		e.sink = sink
	}
}

// WithLauncher replaces the system launcher.
func WithLauncher(launcher Launcher) Option {
	return func(e *Exporter) {
		e.launcher = launcher
	}
}

// WithPrompter sets the collaborator used in ask-every-time mode.
func WithPrompter(prompter PathPrompter) Option {
	return func(e *Exporter) {
		e.prompter = prompter
	}
}

// WithJournal records every export.
func WithJournal(journal Journal) Option {
	return func(e *Exporter) {
		e.journal = journal
	}
}

// WithClock sets the clock used for filenames and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates an exporter writing PDFs to the OS filesystem.
func NewExporter(renderer *render.Renderer, opts ...Option) *Exporter {
	e := &Exporter{
		fs:       afero.NewOsFs(),
		sink:     NewPDFSink(),
		launcher: NewSystemLauncher(),
		renderer: renderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Letterhead returns the identity printed on exported quotations.
func (e *Exporter) Letterhead() model.Letterhead {
	return e.renderer.Letterhead()
}

// SuggestedPath is where the quotation lands when nobody picks a path.
func (e *Exporter) SuggestedPath(header model.QuotationHeader, settings model.Settings) string {
	name := render.ExportFilename(header, e.now())
	if folder := config.ExpandPath(strings.TrimSpace(settings.SaveFolder)); folder != "" {
		return filepath.Join(folder, name)
	}
	return name
}

// Export writes the quotation and performs the save mode's follow-up action.
// The ledger snapshot is only read; a failed export leaves nothing half-written.
func (e *Exporter) Export(ctx context.Context, req Request) (Result, error) {
	mode := req.Settings.SaveMode
	if mode == "" {
		mode = model.SaveModeAskEveryTime
	}

	path, err := e.resolvePath(ctx, req, mode)
	if err != nil {
		return Result{}, err
	}

	doc := e.renderer.Document(req.Header, req.Snapshot)
	var buf bytes.Buffer
	if err := e.sink.Write(&buf, doc); err != nil {
		return Result{}, fmt.Errorf("%w: %w", common.ErrExportWrite, err)
	}
	if err := e.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return Result{}, fmt.Errorf("%w: %w", common.ErrExportWrite, err)
	}
	if err := afero.WriteFile(e.fs, path, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("%w: %w", common.ErrExportWrite, err)
	}

	result := Result{Path: path, Mode: mode}
	switch mode {
	case model.SaveModeAskEveryTime, model.SaveModeAutoSaveOpen:
		if err := e.launcher.Open(ctx, path); err != nil {
			result.Warning = fmt.Errorf("%w: %w", common.ErrOpenOrPrint, err)
		} else {
			result.Opened = true
		}
	case model.SaveModeQuickPrint:
		if err := e.launcher.Print(ctx, path); err != nil {
			result.Warning = fmt.Errorf("%w: %w", common.ErrOpenOrPrint, err)
		} else {
			result.Printed = true
		}
	case model.SaveModeAutoSaveOnly:
	}

	if result.Warning != nil {
		common.LogWarn("Quotation saved but follow-up failed", common.Fields{
			"path":  path,
			"mode":  string(mode),
			"error": result.Warning.Error(),
		})
	}

	e.record(ctx, req, result)

	common.LogInfo("Exported quotation", common.Fields{
		"path":        path,
		"mode":        string(mode),
		"items":       len(req.Snapshot.Items),
		"grand_total": req.Snapshot.Totals.GrandTotal,
	})

	return result, nil
}

func (e *Exporter) resolvePath(ctx context.Context, req Request, mode model.SaveMode) (string, error) {
	if path := strings.TrimSpace(req.Path); path != "" {
		return withPDFExtension(config.ExpandPath(path)), nil
	}

	if mode.AutoSaves() {
		folder := config.ExpandPath(strings.TrimSpace(req.Settings.SaveFolder))
		if folder == "" {
			return "", common.ErrFolderUnavailable
		}
		return filepath.Join(folder, render.ExportFilename(req.Header, e.now())), nil
	}

	if e.prompter == nil {
		return "", fmt.Errorf("%w: no destination given", common.ErrExportCancelled)
	}
	chosen, err := e.prompter.PromptPath(ctx, e.SuggestedPath(req.Header, req.Settings))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(chosen) == "" {
		return "", common.ErrExportCancelled
	}
	return withPDFExtension(config.ExpandPath(strings.TrimSpace(chosen))), nil
}

func (e *Exporter) record(ctx context.Context, req Request, result Result) {
	if e.journal == nil {
		return
	}
	rec := &model.ExportRecord{
		Path:         result.Path,
		CustomerName: req.Header.CustomerName,
		GrandTotal:   req.Snapshot.Totals.GrandTotal,
		ItemCount:    len(req.Snapshot.Items),
		Mode:         result.Mode,
		ExportedAt:   e.now(),
	}
	if err := e.journal.RecordExport(ctx, rec); err != nil {
		common.LogError(err, "Failed to record export", common.Fields{"path": result.Path})
	}
}

func withPDFExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return path
	}
	return path + ".pdf"
}
