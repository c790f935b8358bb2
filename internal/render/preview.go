package render

import (
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
)

// Column widths of the text preview, in characters.
var previewWidths = [...]int{4, 20, 8, 8, 8, 8}

var columnTitles = [...]string{"Sr", "Work Area", "Qty", "Unit", "Rate", "Amount"}

// Renderer renders quotations under a fixed letterhead.
type Renderer struct {
	letterhead model.Letterhead
}

// New creates a renderer for the given letterhead.
func New(letterhead model.Letterhead) *Renderer {
	return &Renderer{letterhead: letterhead}
}

// Letterhead returns the firm details the renderer prints.
func (r *Renderer) Letterhead() model.Letterhead {
	return r.letterhead
}

// Preview renders the quotation as monospaced text.
func (r *Renderer) Preview(header model.QuotationHeader, snap model.Snapshot) string {
	var b strings.Builder
	rule := previewRuleWidth()

	writeLine(&b, r.letterhead.Title+" - QUOTATION")
	if header.Date != "" {
		writeLine(&b, "Date: "+header.Date)
	}
	if header.CustomerName != "" {
		writeLine(&b, "Customer: "+header.CustomerName)
	}
	if header.CustomerAddress != "" {
		writeLine(&b, "Address: "+header.CustomerAddress)
	}
	writeLine(&b, strings.Repeat("-", rule))

	writeLine(&b, previewRow(columnTitles[:]))
	for _, item := range snap.Items {
		writeLine(&b, previewRow(item.Cells()))
	}
	writeLine(&b, strings.Repeat("-", rule))

	writeLine(&b, "Subtotal: "+model.FormatAmount(snap.Totals.Subtotal))
	if snap.Totals.HasGST() {
		writeLine(&b, snap.Totals.GSTLabel()+": "+model.FormatAmount(snap.Totals.GSTAmount))
		writeLine(&b, "Grand Total: "+model.FormatAmount(snap.Totals.GrandTotal))
	}
	writeLine(&b, strings.Repeat("=", rule))

	return b.String()
}

// previewRow pads each cell to its column width. A cell that fills its column
// still gets one space so neighbouring values never run together.
func previewRow(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString(cell)
		if i == len(cells)-1 {
			break
		}
		pad := previewWidths[i] - len([]rune(cell))
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad))
	}
	return strings.TrimRight(b.String(), " ")
}

func previewRuleWidth() int {
	total := 0
	for _, w := range previewWidths {
		total += w
	}
	return total
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}
