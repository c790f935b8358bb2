package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

type stubPrompter struct {
	err       error
	path      string
	suggested string
}

func (p *stubPrompter) PromptPath(_ context.Context, suggested string) (string, error) {
	p.suggested = suggested
	return p.path, p.err
}

type recordingJournal struct {
	err     error
	records []model.ExportRecord
}

func (j *recordingJournal) RecordExport(_ context.Context, rec *model.ExportRecord) error {
	j.records = append(j.records, *rec)
	return j.err
}

type failingSink struct{}

func (failingSink) Write(io.Writer, render.Document) error {
	return errors.New("disk full")
}

func scenarioRequest(t *testing.T, settings model.Settings) Request {
	t.Helper()
	l := ledger.New()
	_, err := l.AddItem("Flooring", "100", "SQFT", "50")
	require.NoError(t, err)
	_, err = l.AddItem("Door", "2", "NOS", "1500")
	require.NoError(t, err)

	return Request{
		Header:   model.QuotationHeader{CustomerName: "A B Corp", Date: "05/03/2024"},
		Snapshot: l.Snapshot(),
		Settings: settings,
	}
}

func newTestExporter(fs afero.Fs, launcher Launcher, opts ...Option) *Exporter {
	base := []Option{
		WithFs(fs),
		WithLauncher(launcher),
		WithClock(func() time.Time { return fixedNow }),
		WithSink(NewPDFSink(WithCompression(false), WithCreationDate(fixedNow))),
	}
	return NewExporter(render.New(model.DefaultLetterhead()), append(base, opts...)...)
}

func TestPDFSink_WritesPDF(t *testing.T) {
	req := scenarioRequest(t, model.Settings{})
	doc := render.New(model.DefaultLetterhead()).Document(req.Header, req.Snapshot)

	var buf bytes.Buffer
	require.NoError(t, NewPDFSink(WithCompression(false)).Write(&buf, doc))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "missing PDF header")
	assert.Contains(t, out, "(Flooring)")
	assert.Contains(t, out, "(5000/-)")
	assert.Contains(t, out, "(Subtotal: 8000/-)")
	assert.Contains(t, out, "%%EOF")
}

func TestPDFSink_MissingUTF8Font(t *testing.T) {
	req := scenarioRequest(t, model.Settings{})
	doc := render.New(model.DefaultLetterhead()).Document(req.Header, req.Snapshot)

	var buf bytes.Buffer
	sink := NewPDFSink(WithUTF8Font(filepath.Join(t.TempDir(), "missing.ttf"), ""))
	err := sink.Write(&buf, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load font")
	assert.Zero(t, buf.Len())
}

func TestAlignedX(t *testing.T) {
	assert.Equal(t, 100.0, alignedX(render.Op{X: 100, Align: render.AlignLeft}, 40))
	assert.Equal(t, 60.0, alignedX(render.Op{X: 100, Align: render.AlignRight}, 40))
	assert.Equal(t, 80.0, alignedX(render.Op{X: 100, Align: render.AlignCenter}, 40))
}

func TestExporter_AutoSaveOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{}
	journal := &recordingJournal{}
	e := newTestExporter(fs, launcher, WithJournal(journal))

	req := scenarioRequest(t, model.Settings{SaveMode: model.SaveModeAutoSaveOpen, SaveFolder: "/quotes"})
	result, err := e.Export(context.Background(), req)
	require.NoError(t, err)

	want := filepath.Join("/quotes", "Quotation_2024-03-05_A_B_Corp.pdf")
	assert.Equal(t, want, result.Path)
	assert.True(t, result.Opened)
	assert.False(t, result.Printed)
	assert.NoError(t, result.Warning)
	assert.Equal(t, []string{want}, launcher.Opened)

	data, err := afero.ReadFile(fs, want)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	require.Len(t, journal.records, 1)
	assert.Equal(t, int64(8000), journal.records[0].GrandTotal)
	assert.Equal(t, 2, journal.records[0].ItemCount)
	assert.Equal(t, "A B Corp", journal.records[0].CustomerName)
	assert.Equal(t, fixedNow, journal.records[0].ExportedAt)
}

func TestExporter_AutoSaveOnlyDoesNotLaunch(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{}
	e := newTestExporter(fs, launcher)

	result, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
		SaveMode:   model.SaveModeAutoSaveOnly,
		SaveFolder: "/out/nested",
	}))
	require.NoError(t, err)

	exists, err := afero.Exists(fs, result.Path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, launcher.Opened)
	assert.Empty(t, launcher.Printed)
}

func TestExporter_QuickPrint(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{}
	e := newTestExporter(fs, launcher)

	result, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
		SaveMode:   model.SaveModeQuickPrint,
		SaveFolder: "/print",
	}))
	require.NoError(t, err)
	assert.True(t, result.Printed)
	assert.Equal(t, []string{result.Path}, launcher.Printed)
	assert.Empty(t, launcher.Opened)
}

func TestExporter_FolderUnavailable(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{}
	e := newTestExporter(fs, launcher)

	for _, mode := range []model.SaveMode{model.SaveModeAutoSaveOpen, model.SaveModeAutoSaveOnly, model.SaveModeQuickPrint} {
		_, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{SaveMode: mode, SaveFolder: "  "}))
		assert.ErrorIs(t, err, common.ErrFolderUnavailable, string(mode))
	}

	files, err := afero.ReadDir(fs, "/")
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Empty(t, launcher.Opened)
}

func TestExporter_AskEveryTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{}
	prompter := &stubPrompter{path: "/chosen/my-quote"}
	e := newTestExporter(fs, launcher, WithPrompter(prompter))

	result, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
		SaveMode:   model.SaveModeAskEveryTime,
		SaveFolder: "/default",
	}))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/default", "Quotation_2024-03-05_A_B_Corp.pdf"), prompter.suggested)
	assert.Equal(t, "/chosen/my-quote.pdf", result.Path)
	assert.True(t, result.Opened)
}

func TestExporter_AskEveryTimeCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	e := newTestExporter(fs, &MockLauncher{}, WithPrompter(&stubPrompter{}))

	_, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{SaveMode: model.SaveModeAskEveryTime}))
	assert.ErrorIs(t, err, common.ErrExportCancelled)

	noPrompter := newTestExporter(fs, &MockLauncher{})
	_, err = noPrompter.Export(context.Background(), scenarioRequest(t, model.Settings{}))
	assert.ErrorIs(t, err, common.ErrExportCancelled)
}

func TestExporter_ExplicitPathSkipsPrompt(t *testing.T) {
	fs := afero.NewMemMapFs()
	prompter := &stubPrompter{path: "/never"}
	e := newTestExporter(fs, &MockLauncher{}, WithPrompter(prompter))

	req := scenarioRequest(t, model.Settings{SaveMode: model.SaveModeAskEveryTime})
	req.Path = "/given/quote.PDF"
	result, err := e.Export(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/given/quote.PDF", result.Path)
	assert.Empty(t, prompter.suggested)
}

func TestExporter_WriteFailure(t *testing.T) {
	launcher := &MockLauncher{}

	t.Run("sink error", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		e := newTestExporter(fs, launcher, WithSink(failingSink{}))
		_, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
			SaveMode:   model.SaveModeAutoSaveOpen,
			SaveFolder: "/quotes",
		}))
		assert.ErrorIs(t, err, common.ErrExportWrite)

		exists, _ := afero.DirExists(fs, "/quotes")
		assert.False(t, exists)
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		e := newTestExporter(afero.NewReadOnlyFs(afero.NewMemMapFs()), launcher)
		_, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
			SaveMode:   model.SaveModeAutoSaveOnly,
			SaveFolder: "/quotes",
		}))
		assert.ErrorIs(t, err, common.ErrExportWrite)
	})

	assert.Empty(t, launcher.Opened)
}

func TestExporter_OpenFailureIsWarning(t *testing.T) {
	fs := afero.NewMemMapFs()
	launcher := &MockLauncher{OpenErr: errors.New("xdg-open missing")}
	journal := &recordingJournal{err: errors.New("journal locked")}
	e := newTestExporter(fs, launcher, WithJournal(journal))

	result, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
		SaveMode:   model.SaveModeAutoSaveOpen,
		SaveFolder: "/quotes",
	}))
	require.NoError(t, err)
	require.Error(t, result.Warning)
	assert.ErrorIs(t, result.Warning, common.ErrOpenOrPrint)
	assert.False(t, result.Opened)

	exists, err := afero.Exists(fs, result.Path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, journal.records, 1)
}

func TestExporter_PrintFailureIsWarning(t *testing.T) {
	launcher := &MockLauncher{PrintErr: errors.New("no printer")}
	e := newTestExporter(afero.NewMemMapFs(), launcher)

	result, err := e.Export(context.Background(), scenarioRequest(t, model.Settings{
		SaveMode:   model.SaveModeQuickPrint,
		SaveFolder: "/quotes",
	}))
	require.NoError(t, err)
	assert.ErrorIs(t, result.Warning, common.ErrOpenOrPrint)
	assert.False(t, result.Printed)
}

func TestOpenCommand(t *testing.T) {
	name, args, err := openCommand("linux", "/tmp/q.pdf")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"/tmp/q.pdf"}, args)

	name, _, err = openCommand("darwin", "/tmp/q.pdf")
	require.NoError(t, err)
	assert.Equal(t, "open", name)

	name, args, err = openCommand("windows", `C:\q.pdf`)
	require.NoError(t, err)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", `C:\q.pdf`}, args)

	_, _, err = openCommand("plan9", "/tmp/q.pdf")
	assert.Error(t, err)
}

func TestSystemLauncher_OpenOutlivesContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as xdg-open")
	}

	bin := t.TempDir()
	script := "#!/bin/sh\nsleep 0.3\ntouch \"$1\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "xdg-open"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	marker := filepath.Join(t.TempDir(), "viewer-ran")
	launcher := &SystemLauncher{goos: "linux", lookPath: exec.LookPath}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, launcher.Open(ctx, marker))
	cancel()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
}

func TestPrintCommand(t *testing.T) {
	onlyLpr := func(name string) (string, error) {
		if name == "lpr" {
			return "/usr/bin/lpr", nil
		}
		return "", errors.New("not found")
	}
	name, args, err := printCommand("linux", "/tmp/q.pdf", onlyLpr)
	require.NoError(t, err)
	assert.Equal(t, "lpr", name)
	assert.Equal(t, []string{"/tmp/q.pdf"}, args)

	none := func(string) (string, error) { return "", errors.New("not found") }
	_, _, err = printCommand("darwin", "/tmp/q.pdf", none)
	assert.Error(t, err)

	name, args, err = printCommand("windows", `C:\it's.pdf`, none)
	require.NoError(t, err)
	assert.Equal(t, "powershell", name)
	assert.Contains(t, args[len(args)-1], `'C:\it''s.pdf'`)
}

func TestWriteWorkbook(t *testing.T) {
	req := scenarioRequest(t, model.Settings{})
	l := ledger.New()
	_, err := l.AddItem("Flooring", "100", "SQFT", "50")
	require.NoError(t, err)
	require.NoError(t, l.SetGSTPercent("18"))

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, model.DefaultLetterhead(), req.Header, l.Snapshot()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 10)
	assert.Equal(t, "SS ARCHITECT'S - QUOTATION", rows[0][0])
	assert.Equal(t, []string{"Sr", "Work Area", "Qty", "Unit", "Rate", "Amount"}, rows[5])
	assert.Equal(t, []string{"1", "Flooring", "100 SQFT", "PER SQFT", "50", "5000"}, rows[6])

	grand, err := f.GetCellValue(workbookSheet, "F11")
	require.NoError(t, err)
	assert.Equal(t, "5900", grand)
	label, err := f.GetCellValue(workbookSheet, "E10")
	require.NoError(t, err)
	assert.Equal(t, "GST (18%)", label)
}
