// Package parser loads workbooks and extracts per-sheet summaries.
package parser

// Scan bounds. All row and column indexes are 1-based and inclusive.
const (
	// HeaderColumnLimit is the last column read from the header row.
	HeaderColumnLimit = 49
	// FormulaRowLimit is the last row scanned for formulas.
	FormulaRowLimit = 99
	// FormulaColumnLimit is the last column scanned for formulas.
	FormulaColumnLimit = 49
	// FormulaLimit caps the number of formulas reported per sheet.
	FormulaLimit = 50
	// SampleRowLimit is the last row read for sample data.
	SampleRowLimit = 3
	// SampleColumnLimit is the last column read for sample data.
	SampleColumnLimit = 19
	// SampleValueLimit is the maximum length, in characters, of a sample value.
	SampleValueLimit = 100
)

// bound returns min(n, limit).
func bound(n, limit int) int {
	if n < limit {
		return n
	}
	return limit
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
