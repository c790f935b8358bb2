package render

// Page geometry in PDF points with the origin at the top-left corner.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	marginLeft   = 50.0
	marginRight  = PageWidth - 50.0
	marginTop    = 50.0
	bottomLimit  = PageHeight - 60.0
	rowHeight    = 18.0
	totalsStep   = 16.0
	signatureGap = 50.0
)

// Table column x-positions. Content that is wider than its column overlaps
// the next one; nothing is wrapped or truncated.
var columnX = [...]float64{50, 90, 300, 360, 420, 480}

// Fonts used on the page.
var (
	fontTitle   = Font{Size: 16, Bold: true}
	fontCaption = Font{Size: 14, Bold: true}
	fontBody    = Font{Size: 10}
	fontBold    = Font{Size: 10, Bold: true}
	fontRow     = Font{Size: 9}
	fontGrand   = Font{Size: 11, Bold: true}
)

// Line widths.
const (
	ruleHeavy = 1.0
	ruleTable = 0.8
	ruleRow   = 0.3
)
