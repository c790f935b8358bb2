package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-first layout used for the quotation date field.
const DateLayout = "02/01/2006"

// QuotationHeader holds the customer details typed into the form.
// It is edited directly by the user and never derived.
type QuotationHeader struct {
	CustomerName    string
	CustomerAddress string
	Date            string
}

// NewQuotationHeader returns an empty header dated today.
func NewQuotationHeader(now time.Time) QuotationHeader {
	return QuotationHeader{Date: now.Format(DateLayout)}
}

// Aggregates are the totals derived from a ledger.
type Aggregates struct {
	// GSTPercent is nil when no tax line applies.
	GSTPercent *decimal.Decimal
	Subtotal   int64
	GSTAmount  int64
	GrandTotal int64
}

// HasGST reports whether a GST line should be shown.
func (a Aggregates) HasGST() bool {
	return a.GSTPercent != nil
}

// GSTLabel renders the tax line label, e.g. "GST (18%)".
func (a Aggregates) GSTLabel() string {
	if a.GSTPercent == nil {
		return ""
	}
	return "GST (" + a.GSTPercent.String() + "%)"
}

// Snapshot is a read-only copy of a ledger handed to renderers and exporters.
type Snapshot struct {
	Items  []LineItem
	Totals Aggregates
}

// Letterhead identifies the firm issuing the quotation.
type Letterhead struct {
	Title     string
	Author    string
	Contact   string
	Email     string
	Signatory string
}

// DefaultLetterhead returns the letterhead used when none is configured.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		Title:     "SS ARCHITECT'S",
		Signatory: "Authorised Signatory",
	}
}
