package models

// SheetSummary describes the shape of a single sheet.
type SheetSummary struct {
	// MaxRow is the highest row index containing data (0 for an empty sheet).
	MaxRow int `json:"max_row"`
	// MaxColumn is the highest column index containing data (0 for an empty sheet).
	MaxColumn int `json:"max_column"`
	// Headers lists the non-empty cells of the first row.
	Headers []HeaderInfo `json:"headers"`
	// Formulas lists formula cells in row-major order.
	Formulas []FormulaInfo `json:"formulas"`
	// SampleData holds the first non-empty rows of the sheet.
	SampleData []SampleRow `json:"sample_data"`
}

// NewSheetSummary returns a summary with non-nil, empty collections.
func NewSheetSummary(maxRow, maxColumn int) SheetSummary {
	return SheetSummary{
		MaxRow:     maxRow,
		MaxColumn:  maxColumn,
		Headers:    []HeaderInfo{},
		Formulas:   []FormulaInfo{},
		SampleData: []SampleRow{},
	}
}

// HeaderInfo describes one header cell.
type HeaderInfo struct {
	// Column is the 1-based column index.
	Column int `json:"column"`
	// Header is the cell value as a string.
	Header string `json:"header"`
	// Formula is set only when the header cell is itself a formula.
	Formula string `json:"formula,omitempty"`
}

// FormulaInfo describes one formula cell.
type FormulaInfo struct {
	// Cell is the coordinate label, e.g. "B2".
	Cell string `json:"cell"`
	// Formula is the formula text including the leading "=".
	Formula string `json:"formula"`
	// CalculatedValue mirrors Formula since formulas are not evaluated.
	// It is null when the formula text is empty.
	CalculatedValue *string `json:"calculated_value"`
	// Functions lists called function names (verbose mode only).
	Functions []string `json:"functions,omitempty"`
	// References lists cell and range operands (verbose mode only).
	References []string `json:"references,omitempty"`
}
