package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		raw    string
		want   Unit
		wantOK bool
	}{
		{raw: "SQFT", want: UnitSqft, wantOK: true},
		{raw: " sqft ", want: UnitSqft, wantOK: true},
		{raw: "Nos", want: UnitNos, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "RMT", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseUnit(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSaveMode(t *testing.T) {
	tests := []struct {
		raw    string
		want   SaveMode
		wantOK bool
	}{
		{raw: "ask_every_time", want: SaveModeAskEveryTime, wantOK: true},
		{raw: "Auto Save & Open", want: SaveModeAutoSaveOpen, wantOK: true},
		{raw: "auto-save-only", want: SaveModeAutoSaveOnly, wantOK: true},
		{raw: "QUICK PRINT", want: SaveModeQuickPrint, wantOK: true},
		{raw: "print later", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSaveMode(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveMode_AutoSaves(t *testing.T) {
	assert.False(t, SaveModeAskEveryTime.AutoSaves())
	assert.True(t, SaveModeAutoSaveOpen.AutoSaves())
	assert.True(t, SaveModeAutoSaveOnly.AutoSaves())
	assert.True(t, SaveModeQuickPrint.AutoSaves())
	assert.Equal(t, "Auto Save & Open", SaveModeAutoSaveOpen.Label())
}

func TestLineItem_Display(t *testing.T) {
	item := LineItem{
		Serial:   3,
		WorkArea: "False ceiling",
		Quantity: decimal.RequireFromString("120.50"),
		Unit:     UnitSqft,
		Rate:     decimal.RequireFromString("85"),
		Amount:   10243,
	}

	assert.Equal(t, "120.5 SQFT", item.QuantityText())
	assert.Equal(t, "PER SQFT", item.UnitLabel())
	assert.Equal(t, "85", item.RateText())
	assert.Equal(t, "10243/-", item.AmountText())
	assert.Equal(t, 7, item.WithSerial(7).Serial)
	assert.Equal(t, 3, item.Serial)
}

func TestNewQuotationHeader(t *testing.T) {
	h := NewQuotationHeader(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "05/03/2024", h.Date)
	assert.Empty(t, h.CustomerName)
}
