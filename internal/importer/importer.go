// Package importer loads line items from CSV and XLSX sheets into a ledger.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/ledger"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned by FromFile for anything but .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format: must be .csv or .xlsx")

// RowError ties a rejected row to its 1-based line in the source sheet.
type RowError struct {
	Err error
	Row int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type column int

const (
	colWorkArea column = iota
	colQuantity
	colUnit
	colRate
	columnCount
)

var headerAliases = map[string]column{
	"work area":   colWorkArea,
	"workarea":    colWorkArea,
	"description": colWorkArea,
	"qty":         colQuantity,
	"quantity":    colQuantity,
	"unit":        colUnit,
	"rate":        colRate,
}

var columnNames = [columnCount]string{"work area", "qty", "unit", "rate"}

// FromCSV adds every data row of a CSV sheet to l and returns how many were added.
func FromCSV(r io.Reader, l *ledger.Ledger) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return load(rows, l)
}

// FromXLSX adds every data row of the first worksheet to l.
func FromXLSX(r io.Reader, l *ledger.Ledger) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}
	return load(rows, l)
}

// FromFile picks the reader by extension.
func FromFile(fs afero.Fs, path string, l *ledger.Ledger) (int, error) {
	var read func(io.Reader, *ledger.Ledger) (int, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = FromCSV
	case ".xlsx":
		read = FromXLSX
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	file, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return read(file, l)
}

// load validates every row against a scratch ledger before touching l, so a
// bad row leaves l unchanged.
func load(rows [][]string, l *ledger.Ledger) (int, error) {
	if len(rows) == 0 {
		return 0, errors.New("file must contain a header row")
	}
	index, err := mapHeader(rows[0])
	if err != nil {
		return 0, &RowError{Row: 1, Err: err}
	}

	type pending struct{ workArea, qty, unit, rate string }
	var accepted []pending
	scratch := ledger.New()

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		p := pending{
			workArea: cell(row, index[colWorkArea]),
			qty:      cell(row, index[colQuantity]),
			unit:     cell(row, index[colUnit]),
			rate:     cell(row, index[colRate]),
		}
		if _, err := scratch.AddItem(p.workArea, p.qty, p.unit, p.rate); err != nil {
			return 0, &RowError{Row: i + 2, Err: err}
		}
		accepted = append(accepted, p)
	}

	for _, p := range accepted {
		if _, err := l.AddItem(p.workArea, p.qty, p.unit, p.rate); err != nil {
			return 0, err
		}
	}

	common.LogDebug("Imported line items", common.Fields{"rows": len(accepted)})
	return len(accepted), nil
}

func mapHeader(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}

	for i, name := range header {
		norm := strings.Join(strings.Fields(strings.ToLower(name)), " ")
		if col, ok := headerAliases[norm]; ok && index[col] == -1 {
			index[col] = i
		}
	}

	var missing []string
	for col, at := range index {
		if at == -1 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func cell(row []string, at int) string {
	if at < len(row) {
		return row[at]
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
