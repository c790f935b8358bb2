package main

import (
	"fmt"

	"github.com/Veraticus/the-quote-must-flow/internal/cli"
	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/Veraticus/the-quote-must-flow/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form [items.csv|items.xlsx]",
		Short: "Open the interactive quotation form",
		Long: `Open the quotation form. Line items can be typed in, or preloaded from a
CSV or XLSX sheet with columns "work area, qty, unit, rate".

Ctrl+S exports the quotation according to the saved save mode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runForm,
	}
	return cmd
}

func runForm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	renderer := render.New(config.LoadLetterhead())
	exporter, closeJournal := buildExporter(ctx, renderer)
	defer closeJournal()

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithExporter(exporter),
		tui.WithRenderer(renderer),
		tui.WithSettings(settings),
		tui.WithLogFile(logFilePath(), level),
	}
	if len(args) == 1 {
		l, loadErr := loadLedger(args[0], "")
		if loadErr != nil {
			return loadErr
		}
		opts = append(opts, tui.WithLedger(l))
	}

	l, err := tui.Run(ctx, opts...)
	if err != nil {
		return err
	}

	writeLine(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Closed with %d item(s)", l.Len())))
	return nil
}
