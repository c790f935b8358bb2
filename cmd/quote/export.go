package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/cli"
	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/export"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <items.csv|items.xlsx>...",
		Short: "Export one quotation PDF per sheet of line items",
		Long: `Export a PDF quotation for every given sheet. The saved save mode decides
whether to ask for a path, save into the save folder, open the PDF or print it.

With several sheets and no --customer, each quotation is named after its file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExport,
	}
	headerFlags(cmd)
	cmd.Flags().String("out", "", "save folder for this run (overrides settings)")
	cmd.Flags().String("mode", "", "save mode for this run: ask_every_time, auto_save_open, auto_save_only, quick_print")
	cmd.Flags().Bool("xlsx", false, "also write an XLSX workbook next to each PDF")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := exportSettings(cmd)
	if err != nil {
		return err
	}

	renderer := render.New(config.LoadLetterhead())
	exporter, closeJournal := buildExporter(ctx, renderer,
		export.WithPrompter(cli.NewPathPrompter(cmd.InOrStdin(), out)))
	defer closeJournal()

	writeXLSX, _ := cmd.Flags().GetBool("xlsx")
	gst, _ := cmd.Flags().GetString("gst")

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Exporting quotations...[reset]"),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			}),
		)
	}

	var failed int
	for i, path := range args {
		if ctx.Err() != nil {
			if interrupts.WasInterrupted() {
				writeLine(out, cli.FormatWarning(fmt.Sprintf("Stopped after %d of %d file(s)", i, len(args))))
			}
			return ctx.Err()
		}

		header := headerFromFlags(cmd, time.Now())
		if header.CustomerName == "" && len(args) > 1 {
			header.CustomerName = customerFromFile(path)
		}

		result, exportErr := exportOne(cmd, exporter, path, gst, header, settings, writeXLSX)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}

		switch {
		case exportErr != nil:
			failed++
			msg := common.UserMessage(exportErr)
			if !strings.HasPrefix(msg, path+":") {
				msg = path + ": " + msg
			}
			writeLine(out, cli.FormatError(msg))
			common.LogError(exportErr, "Export failed", common.Fields{"file": path})
		case result.Warning != nil:
			writeLine(out, cli.FormatWarning(fmt.Sprintf("Saved %s but: %s", result.Path, result.Warning)))
		default:
			writeLine(out, cli.FormatSuccess("Saved "+result.Path))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d export(s) failed", failed, len(args))
	}
	return nil
}

func exportSettings(cmd *cobra.Command) (model.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return settings, err
	}
	if folder, _ := cmd.Flags().GetString("out"); folder != "" {
		settings.SaveFolder = folder
	}
	if raw, _ := cmd.Flags().GetString("mode"); raw != "" {
		mode, ok := model.ParseSaveMode(raw)
		if !ok {
			return settings, common.NewFieldError("mode", raw, common.ErrInvalidConfig)
		}
		settings.SaveMode = mode
	}
	return settings, nil
}

func exportOne(cmd *cobra.Command, exporter *export.Exporter, path, gst string,
	header model.QuotationHeader, settings model.Settings, withWorkbook bool,
) (export.Result, error) {
	l, err := loadLedger(path, gst)
	if err != nil {
		return export.Result{}, err
	}
	snap := l.Snapshot()

	result, err := exporter.Export(cmd.Context(), export.Request{
		Header:   header,
		Settings: settings,
		Snapshot: snap,
	})
	if err != nil || !withWorkbook {
		return result, err
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, exporter.Letterhead(), header, snap); err != nil {
		return result, fmt.Errorf("%w: %w", common.ErrExportWrite, err)
	}
	if err := afero.WriteFile(appFs, workbookPath(result.Path), buf.Bytes(), 0o644); err != nil {
		return result, fmt.Errorf("%w: %w", common.ErrExportWrite, err)
	}
	return result, nil
}

func workbookPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".xlsx"
}

// customerFromFile names a quotation after its sheet, e.g. "a-b corp.csv" gives "a-b corp".
func customerFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
