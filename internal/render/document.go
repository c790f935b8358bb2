package render

import (
	"strconv"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
)

// OpKind distinguishes drawing instructions.
type OpKind int

const (
	// OpText draws a run of text with its baseline at Y.
	OpText OpKind = iota
	// OpRule draws a horizontal line from X to X2 at Y.
	OpRule
)

// Align anchors a text run relative to X.
type Align int

const (
	// AlignLeft starts the text at X.
	AlignLeft Align = iota
	// AlignRight ends the text at X.
	AlignRight
	// AlignCenter centres the text on X.
	AlignCenter
)

// Font selects the face of a text run.
type Font struct {
	Size float64
	Bold bool
}

// Op is one absolute drawing instruction.
type Op struct {
	Text      string
	Font      Font
	X         float64
	Y         float64
	X2        float64
	LineWidth float64
	Kind      OpKind
	Align     Align
}

// Page is the ordered drawing instructions of one page.
type Page struct {
	Ops []Op
}

// Document is a fully laid-out quotation.
type Document struct {
	Title  string
	Author string
	Pages  []Page
	Width  float64
	Height float64
}

// Document lays the quotation out on A4 pages.
func (r *Renderer) Document(header model.QuotationHeader, snap model.Snapshot) Document {
	lh := r.letterhead
	doc := &pageBuilder{}
	doc.newPage()

	r.drawLetterhead(doc, header)

	caption := PageWidth / 2
	doc.text(caption, 115, "QUOTATION", fontCaption, AlignCenter)
	doc.rule(caption-40, caption+40, 119, ruleTable)

	y := 145.0
	if header.CustomerName != "" {
		doc.text(marginLeft, y, "To: "+header.CustomerName, fontBold, AlignLeft)
		y += 14
	}
	if header.CustomerAddress != "" {
		for i, line := range strings.Split(header.CustomerAddress, "\n") {
			label := line
			if i == 0 {
				label = "Address: " + line
			}
			doc.text(marginLeft, y, label, fontBody, AlignLeft)
			y += 14
		}
	}

	doc.y = y + 20
	drawTableHeader(doc)

	for _, item := range snap.Items {
		doc.y += rowHeight
		if doc.y > bottomLimit {
			doc.newPage()
			doc.y = marginTop
			drawTableHeader(doc)
			doc.y += rowHeight
		}
		for i, cell := range item.Cells() {
			doc.text(columnX[i], doc.y, cell, fontRow, AlignLeft)
		}
		doc.rule(marginLeft, marginRight, doc.y+5, ruleRow)
	}

	totals := snap.Totals
	lines := 1
	if totals.HasGST() {
		lines = 3
	}
	block := float64(lines-1)*totalsStep + signatureGap + 28
	doc.y += 25
	if doc.y+block > bottomLimit {
		doc.newPage()
		doc.y = marginTop
	}

	doc.text(marginRight, doc.y, "Subtotal: "+model.FormatAmount(totals.Subtotal), fontBody, AlignRight)
	if totals.HasGST() {
		doc.y += totalsStep
		doc.text(marginRight, doc.y, totals.GSTLabel()+": "+model.FormatAmount(totals.GSTAmount), fontBody, AlignRight)
		doc.rule(380, marginRight, doc.y+5, ruleTable)
		doc.y += totalsStep
		doc.text(marginRight, doc.y, "Grand Total: "+model.FormatAmount(totals.GrandTotal), fontGrand, AlignRight)
	}

	doc.y += signatureGap
	doc.rule(marginRight-150, marginRight, doc.y, ruleTable)
	doc.y += 14
	doc.text(marginRight, doc.y, lh.Signatory, fontBody, AlignRight)
	doc.y += 14
	doc.text(marginRight, doc.y, "For "+lh.Title, fontBold, AlignRight)

	return Document{
		Title:  lh.Title + " - Quotation",
		Author: lh.Title,
		Pages:  doc.pages,
		Width:  PageWidth,
		Height: PageHeight,
	}
}

func (r *Renderer) drawLetterhead(doc *pageBuilder, header model.QuotationHeader) {
	lh := r.letterhead

	doc.text(marginLeft, marginTop, lh.Title, fontTitle, AlignLeft)
	if lh.Author != "" {
		doc.text(marginLeft, marginTop+18, lh.Author, fontBody, AlignLeft)
	}

	right := []string{"Date: " + header.Date}
	if lh.Contact != "" {
		right = append(right, "Contact: "+lh.Contact)
	}
	if lh.Email != "" {
		right = append(right, "Email: "+lh.Email)
	}
	for i, line := range right {
		doc.text(marginRight, marginTop+float64(i)*14, line, fontBody, AlignRight)
	}

	doc.rule(marginLeft, marginRight, 90, ruleHeavy)
}

func drawTableHeader(doc *pageBuilder) {
	for i, title := range columnTitles {
		doc.text(columnX[i], doc.y, title, fontBold, AlignLeft)
	}
	doc.rule(marginLeft, marginRight, doc.y+4, ruleTable)
}

// pageBuilder accumulates drawing instructions with a vertical cursor.
type pageBuilder struct {
	pages []Page
	y     float64
}

func (b *pageBuilder) newPage() {
	b.pages = append(b.pages, Page{})
}

func (b *pageBuilder) current() *Page {
	return &b.pages[len(b.pages)-1]
}

func (b *pageBuilder) text(x, y float64, s string, font Font, align Align) {
	b.current().Ops = append(b.current().Ops, Op{
		Kind:  OpText,
		X:     x,
		Y:     y,
		Text:  s,
		Font:  font,
		Align: align,
	})
}

func (b *pageBuilder) rule(x1, x2, y, width float64) {
	b.current().Ops = append(b.current().Ops, Op{
		Kind:      OpRule,
		X:         x1,
		X2:        x2,
		Y:         y,
		LineWidth: width,
	})
}

// Texts returns the text runs of the page in drawing order.
func (p Page) Texts() []string {
	texts := make([]string, 0, len(p.Ops))
	for _, op := range p.Ops {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// String describes an op for debugging and test failure output.
func (op Op) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	if op.Kind == OpRule {
		return "rule " + f(op.X) + "-" + f(op.X2) + " @" + f(op.Y)
	}
	return "text " + strconv.Quote(op.Text) + " @" + f(op.X) + "," + f(op.Y)
}
