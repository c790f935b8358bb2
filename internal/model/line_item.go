package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit a line item is priced in.
type Unit string

const (
	// UnitSqft prices work by area in square feet.
	UnitSqft Unit = "SQFT"
	// UnitNos prices work by count.
	UnitNos Unit = "NOS"
)

// Units lists the supported units in display order.
var Units = []Unit{UnitSqft, UnitNos}

// ParseUnit resolves a raw unit label. Matching is case-insensitive; an empty
// or unknown label reports false.
func ParseUnit(raw string) (Unit, bool) {
	switch Unit(strings.ToUpper(strings.TrimSpace(raw))) {
	case UnitSqft:
		return UnitSqft, true
	case UnitNos:
		return UnitNos, true
	default:
		return "", false
	}
}

// LineItem is one priced row of work on a quotation.
// Items are never edited in place; the ledger replaces them when serials change.
type LineItem struct {
	WorkArea string
	Unit     Unit
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Amount   int64
	Serial   int
}

// WithSerial returns a copy of the item carrying a new serial number.
func (li LineItem) WithSerial(serial int) LineItem {
	li.Serial = serial
	return li
}

// QuantityText renders the quantity with its unit, e.g. "100 SQFT".
func (li LineItem) QuantityText() string {
	return fmt.Sprintf("%s %s", li.Quantity.String(), li.Unit)
}

// UnitLabel renders the per-unit label shown in the Unit column.
func (li LineItem) UnitLabel() string {
	return "PER " + string(li.Unit)
}

// RateText renders the rate as entered.
func (li LineItem) RateText() string {
	return li.Rate.String()
}

// AmountText renders the amount with the trailing "/-" suffix.
func (li LineItem) AmountText() string {
	return FormatAmount(li.Amount)
}

// Cells returns the display values of the row in column order.
func (li LineItem) Cells() []string {
	return []string{
		fmt.Sprintf("%d", li.Serial),
		li.WorkArea,
		li.QuantityText(),
		li.UnitLabel(),
		li.RateText(),
		li.AmountText(),
	}
}

// FormatAmount renders a whole-currency amount as "<N>/-".
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%d/-", amount)
}
