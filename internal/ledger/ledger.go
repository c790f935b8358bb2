// Package ledger holds the line items of one quotation and derives its totals.
//
// A Ledger is owned by a single caller and carries no locking. Every operation
// either completes or leaves the ledger exactly as it was.
package ledger

import (
	"strconv"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger is the ordered set of line items for one quotation session.
type Ledger struct {
	gstPercent *decimal.Decimal
	items      []model.LineItem
	subtotal   int64
}

// New returns an empty ledger with no GST.
func New() *Ledger {
	return &Ledger{}
}

// AddItem parses the raw form values, prices the row and appends it.
func (l *Ledger) AddItem(workArea, quantity, unit, rate string) (model.LineItem, error) {
	qty, err := parseDecimal("quantity", quantity)
	if err != nil {
		return model.LineItem{}, err
	}
	r, err := parseDecimal("rate", rate)
	if err != nil {
		return model.LineItem{}, err
	}
	u, ok := model.ParseUnit(unit)
	if !ok {
		return model.LineItem{}, common.NewFieldError("unit", unit, common.ErrInvalidNumber)
	}

	amount, ok := Amount(qty, r)
	if !ok {
		return model.LineItem{}, common.NewFieldError("quantity", quantity, common.ErrInvalidNumber)
	}

	item := model.LineItem{
		Serial:   len(l.items) + 1,
		WorkArea: strings.TrimSpace(workArea),
		Quantity: qty,
		Unit:     u,
		Rate:     r,
		Amount:   amount,
	}
	subtotal, ok := checkTotals(append(l.Items(), item), l.gstPercent)
	if !ok {
		return model.LineItem{}, common.NewFieldError("quantity", quantity, common.ErrInvalidNumber)
	}
	l.items = append(l.items, item)
	l.subtotal = subtotal

	return item, nil
}

// DuplicateLast appends a copy of the last row.
func (l *Ledger) DuplicateLast() (model.LineItem, error) {
	if len(l.items) == 0 {
		return model.LineItem{}, common.ErrEmptyLedger
	}

	item := l.items[len(l.items)-1].WithSerial(len(l.items) + 1)
	subtotal, ok := checkTotals(append(l.Items(), item), l.gstPercent)
	if !ok {
		return model.LineItem{}, common.NewFieldError("quantity", item.Quantity.String(), common.ErrInvalidNumber)
	}
	l.items = append(l.items, item)
	l.subtotal = subtotal

	return item, nil
}

// RemoveLast drops the last row.
func (l *Ledger) RemoveLast() error {
	if len(l.items) == 0 {
		return common.ErrEmptyLedger
	}
	return l.RemoveAt(len(l.items))
}

// RemoveAt drops the row with the given serial and renumbers the rest.
func (l *Ledger) RemoveAt(serial int) error {
	if len(l.items) == 0 {
		return common.ErrEmptyLedger
	}
	if serial < 1 || serial > len(l.items) {
		return common.NewFieldError("serial", strconv.Itoa(serial), common.ErrInvalidNumber)
	}

	kept := make([]model.LineItem, 0, len(l.items)-1)
	kept = append(kept, l.items[:serial-1]...)
	kept = append(kept, l.items[serial:]...)
	subtotal, ok := checkTotals(kept, l.gstPercent)
	if !ok {
		return common.NewFieldError("serial", strconv.Itoa(serial), common.ErrInvalidNumber)
	}
	l.items = kept
	l.subtotal = subtotal
	l.renumber()

	return nil
}

// Clear removes every row. The GST percentage is a form field and survives.
func (l *Ledger) Clear() {
	l.items = nil
	l.subtotal = 0
}

// SetGSTPercent applies a GST rate. An empty value removes the tax line.
func (l *Ledger) SetGSTPercent(value string) error {
	if strings.TrimSpace(value) == "" {
		l.gstPercent = nil
		return nil
	}

	pct, err := parseDecimal("GST percentage", value)
	if err != nil {
		return err
	}
	if pct.IsNegative() {
		return common.NewFieldError("GST percentage", value, common.ErrInvalidNumber)
	}
	if _, ok := checkTotals(l.items, &pct); !ok {
		return common.NewFieldError("GST percentage", value, common.ErrInvalidNumber)
	}

	l.gstPercent = &pct
	return nil
}

// Aggregates derives the totals from the current rows and GST rate.
func (l *Ledger) Aggregates() model.Aggregates {
	totals := model.Aggregates{
		Subtotal:   l.subtotal,
		GrandTotal: l.subtotal,
	}
	if l.gstPercent != nil {
		pct := *l.gstPercent
		totals.GSTPercent = &pct
		// Every mutation checks the totals fit, so this cannot overflow.
		totals.GSTAmount, _ = GSTAmount(l.subtotal, pct)
		totals.GrandTotal = l.subtotal + totals.GSTAmount
	}
	return totals
}

// Snapshot copies the rows and totals for rendering.
func (l *Ledger) Snapshot() model.Snapshot {
	return model.Snapshot{
		Items:  l.Items(),
		Totals: l.Aggregates(),
	}
}

// Items returns a copy of the rows in serial order.
func (l *Ledger) Items() []model.LineItem {
	items := make([]model.LineItem, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) renumber() {
	for i := range l.items {
		l.items[i] = l.items[i].WithSerial(i + 1)
	}
}

// checkTotals sums items and reports false when the subtotal, GST or grand
// total would not fit in an int64.
func checkTotals(items []model.LineItem, pct *decimal.Decimal) (int64, bool) {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromInt(item.Amount))
	}
	subtotal, ok := whole(sum)
	if !ok || pct == nil {
		return subtotal, ok
	}
	gst, ok := GSTAmount(subtotal, *pct)
	if !ok {
		return 0, false
	}
	if _, ok := whole(sum.Add(decimal.NewFromInt(gst))); !ok {
		return 0, false
	}
	return subtotal, true
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, common.NewFieldError(field, raw, common.ErrInvalidNumber)
	}
	return value, nil
}
