// Package export turns a rendered quotation into files and hands them to the
// operating system for viewing or printing.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/render"
	"github.com/phpdave11/gofpdf"
)

// Sink writes a laid-out document in some file format.
type Sink interface {
	Write(w io.Writer, doc render.Document) error
}

const (
	pdfFontFamily  = "Helvetica"
	utf8FontFamily = "QuoteUTF8"
)

// PDFSink replays drawing instructions onto a PDF. It uses the core Helvetica
// faces, which only cover Latin-1, unless a UTF-8 TrueType font is configured.
type PDFSink struct {
	created     time.Time
	regularFont string
	boldFont    string
	compress    bool
}

// PDFOption configures a PDFSink.
type PDFOption func(*PDFSink)

// WithCompression toggles stream compression. Tests disable it to inspect text.
func WithCompression(enabled bool) PDFOption {
	return func(s *PDFSink) {
		s.compress = enabled
	}
}

// WithCreationDate pins the document creation date.
func WithCreationDate(t time.Time) PDFOption {
	return func(s *PDFSink) {
		s.created = t
	}
}

// WithUTF8Font embeds TrueType fonts so any script prints. bold may be empty,
// in which case the regular face is used for bold text too.
func WithUTF8Font(regular, bold string) PDFOption {
	return func(s *PDFSink) {
		s.regularFont = regular
		s.boldFont = bold
	}
}

// NewPDFSink creates a PDF sink.
func NewPDFSink(opts ...PDFOption) *PDFSink {
	s := &PDFSink{compress: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write renders every page of doc and writes the PDF bytes to w.
func (s *PDFSink) Write(w io.Writer, doc render.Document) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(s.compress)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("quote", false)
	if !s.created.IsZero() {
		pdf.SetCreationDate(s.created)
	}

	family := pdfFontFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if s.regularFont != "" {
		bold := s.boldFont
		if bold == "" {
			bold = s.regularFont
		}
		pdf.AddUTF8Font(utf8FontFamily, "", s.regularFont)
		pdf.AddUTF8Font(utf8FontFamily, "B", bold)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		family = utf8FontFamily
		tr = func(text string) string { return text }
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case render.OpText:
				style := ""
				if op.Font.Bold {
					style = "B"
				}
				pdf.SetFont(family, style, op.Font.Size)
				text := tr(op.Text)
				pdf.Text(alignedX(op, pdf.GetStringWidth(text)), op.Y, text)
			case render.OpRule:
				pdf.SetLineWidth(op.LineWidth)
				pdf.Line(op.X, op.Y, op.X2, op.Y)
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

// alignedX converts an anchored x-position into the left edge of the text.
func alignedX(op render.Op, width float64) float64 {
	switch op.Align {
	case render.AlignRight:
		return op.X - width
	case render.AlignCenter:
		return op.X - width/2
	default:
		return op.X
	}
}
