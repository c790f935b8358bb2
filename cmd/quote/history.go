package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/cli"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently exported quotations",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntP("limit", "n", 20, "number of exports to show")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListExports(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		writeLine(out, cli.FormatInfo("No quotations exported yet"))
		return nil
	}

	writeLine(out, cli.FormatTitle("Recent exports"))
	writeLine(out, cli.RenderTable(
		[]string{"Ref", "When", "Customer", "Items", "Total", "Mode", "File"},
		historyRows(records),
	))
	return nil
}

func historyRows(records []model.ExportRecord) [][]string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			shortReference(rec.Reference),
			rec.ExportedAt.Local().Format(time.DateTime),
			rec.CustomerName,
			strconv.Itoa(rec.ItemCount),
			model.FormatAmount(rec.GrandTotal),
			rec.Mode.Label(),
			rec.Path,
		}
	}
	return rows
}

// shortReference keeps the first UUID group, enough to tell entries apart.
func shortReference(ref string) string {
	if i := strings.IndexByte(ref, '-'); i > 0 {
		return ref[:i]
	}
	return ref
}
