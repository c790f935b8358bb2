// Package render lays out a quotation for display.
//
// Preview produces the fixed-width text shown next to the form. Document
// produces absolute drawing instructions for a paginated A4 page that export
// sinks replay onto a PDF. Both are pure: they read a header and a ledger
// snapshot and never modify either.
package render
