package main

import (
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <items.csv|items.xlsx>",
		Short: "Print the plain-text quotation for a sheet of line items",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	headerFlags(cmd)
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	gst, _ := cmd.Flags().GetString("gst")
	l, err := loadLedger(args[0], gst)
	if err != nil {
		return err
	}

	renderer := render.New(config.LoadLetterhead())
	header := headerFromFlags(cmd, time.Now())
	writeLine(cmd.OutOrStdout(), renderer.Preview(header, l.Snapshot()))
	return nil
}
