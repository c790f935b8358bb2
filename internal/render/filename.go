package render

import (
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
)

const maxCustomerInFilename = 30

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\-.]`)
)

// ExportFilename derives "Quotation_<YYYY-MM-DD>_<customer>.pdf". The date
// comes from the header when it parses as DD/MM/YYYY, otherwise from now.
func ExportFilename(header model.QuotationHeader, now time.Time) string {
	date := now
	if parsed, err := time.Parse(model.DateLayout, strings.TrimSpace(header.Date)); err == nil {
		date = parsed
	}

	return "Quotation_" + date.Format("2006-01-02") + "_" + SanitizeCustomer(header.CustomerName) + ".pdf"
}

// SanitizeCustomer turns a customer name into a filename fragment.
func SanitizeCustomer(name string) string {
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = unsafeFileChars.ReplaceAllString(cleaned, "")
	if runes := []rune(cleaned); len(runes) > maxCustomerInFilename {
		cleaned = string(runes[:maxCustomerInFilename])
	}
	if cleaned == "" {
		return "Customer"
	}
	return cleaned
}
