package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/export"
	"github.com/Veraticus/the-quote-must-flow/internal/importer"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/Veraticus/the-quote-must-flow/internal/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// appFs is the filesystem used for settings, imports and exports.
var appFs = afero.NewOsFs()

func settingsPath() string {
	if path := viper.GetString("settings.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultSettingsPath()
}

func loadSettings() (model.Settings, error) {
	return config.LoadSettings(appFs, settingsPath())
}

// initStorage opens and migrates the export journal.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	common.LogDebug("Opened export journal", common.Fields{"path": store.Path()})

	return store, nil
}

// buildExporter wires the exporter to the journal when it can be opened.
// The returned closer is always safe to call.
func buildExporter(ctx context.Context, renderer *render.Renderer, opts ...export.Option) (*export.Exporter, func()) {
	closer := func() {}
	store, err := initStorage(ctx)
	if err != nil {
		common.LogWarn("Export journal unavailable", common.Fields{"error": err.Error()})
	} else {
		opts = append([]export.Option{export.WithJournal(store)}, opts...)
		closer = func() { _ = store.Close() }
	}

	if regular, bold := config.LoadPDFFonts(); regular != "" {
		opts = append([]export.Option{export.WithSink(export.NewPDFSink(export.WithUTF8Font(regular, bold)))}, opts...)
	}
	opts = append([]export.Option{export.WithFs(appFs)}, opts...)
	return export.NewExporter(renderer, opts...), closer
}

// headerFlags registers the quotation header flags shared by preview and export.
func headerFlags(cmd *cobra.Command) {
	cmd.Flags().String("customer", "", "customer name")
	cmd.Flags().String("address", "", "customer address")
	cmd.Flags().String("date", "", "quotation date DD/MM/YYYY (default: today)")
	cmd.Flags().String("gst", "", "GST percentage (empty for none)")
}

func headerFromFlags(cmd *cobra.Command, now time.Time) model.QuotationHeader {
	header := model.NewQuotationHeader(now)
	header.CustomerName, _ = cmd.Flags().GetString("customer")
	header.CustomerAddress, _ = cmd.Flags().GetString("address")
	if date, _ := cmd.Flags().GetString("date"); strings.TrimSpace(date) != "" {
		header.Date = strings.TrimSpace(date)
	}
	return header
}

// loadLedger imports path and applies the GST flag.
func loadLedger(path, gst string) (*ledger.Ledger, error) {
	l := ledger.New()
	if _, err := importer.FromFile(appFs, config.ExpandPath(path), l); err != nil {
		var rowErr *importer.RowError
		if errors.As(err, &rowErr) {
			msg := fmt.Sprintf("%s: row %d: %s", path, rowErr.Row, common.UserMessage(rowErr.Err))
			return nil, common.NewUserError(msg, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := l.SetGSTPercent(gst); err != nil {
		return nil, err
	}
	return l, nil
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
