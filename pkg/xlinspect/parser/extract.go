package parser

import (
	"fmt"

	"github.com/ukaji3/xlinspect/pkg/xlinspect/models"
)

// Pass names used in PassError.
const (
	PassHeaders    = "headers"
	PassFormulas   = "formulas"
	PassSampleData = "sample_data"
)

// PassError reports a failure inside one extraction pass.
type PassError struct {
	Pass string
	Ref  string
	Err  error
}

func (e *PassError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s pass at %s: %v", e.Pass, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s pass: %v", e.Pass, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// ExtractOptions configures ExtractSheet.
type ExtractOptions struct {
	// Policy decides which literal values count as empty.
	Policy EmptyPolicy
	// TokenizeFormulas adds function and reference lists to formula entries.
	TokenizeFormulas bool
}

// ExtractSheet builds the summary of one sheet: headers from row 1,
// formulas in row-major order, and up to three sample rows.
func ExtractSheet(g Grid, opts ExtractOptions) (models.SheetSummary, error) {
	maxRow, maxCol := g.Dimensions()
	if maxRow < 0 {
		maxRow = 0
	}
	if maxCol < 0 {
		maxCol = 0
	}
	summary := models.NewSheetSummary(maxRow, maxCol)
	if maxRow == 0 || maxCol == 0 {
		return summary, nil
	}

	headers, err := ExtractHeaders(g, opts)
	if err != nil {
		return summary, err
	}
	formulas, err := ExtractFormulas(g, opts)
	if err != nil {
		return summary, err
	}
	samples, err := ExtractSampleData(g, opts)
	if err != nil {
		return summary, err
	}

	summary.Headers = headers
	summary.Formulas = formulas
	summary.SampleData = samples
	return summary, nil
}

// ExtractHeaders reads the non-empty cells of row 1 up to HeaderColumnLimit.
func ExtractHeaders(g Grid, opts ExtractOptions) ([]models.HeaderInfo, error) {
	maxRow, maxCol := g.Dimensions()
	headers := []models.HeaderInfo{}
	if maxRow < 1 {
		return headers, nil
	}

	for col := 1; col <= bound(maxCol, HeaderColumnLimit); col++ {
		cell, err := g.Cell(1, col)
		if err != nil {
			return nil, &PassError{Pass: PassHeaders, Ref: cellRef(col, 1), Err: err}
		}
		if cell.IsEmpty(opts.Policy) {
			continue
		}
		h := models.HeaderInfo{
			Column: col,
			Header: cell.Value,
		}
		if cell.IsFormula() {
			h.Formula = cell.Value
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// ExtractFormulas collects formula cells in row-major order within
// FormulaRowLimit x FormulaColumnLimit, stopping after FormulaLimit.
func ExtractFormulas(g Grid, opts ExtractOptions) ([]models.FormulaInfo, error) {
	maxRow, maxCol := g.Dimensions()
	formulas := []models.FormulaInfo{}

	lastRow := bound(maxRow, FormulaRowLimit)
	lastCol := bound(maxCol, FormulaColumnLimit)
	for row := 1; row <= lastRow; row++ {
		for col := 1; col <= lastCol; col++ {
			cell, err := g.Cell(row, col)
			if err != nil {
				return nil, &PassError{Pass: PassFormulas, Ref: cellRef(col, row), Err: err}
			}
			if !cell.IsFormula() {
				continue
			}

			info := models.FormulaInfo{
				Cell:    cell.Ref,
				Formula: cell.Value,
			}
			if cell.Value != "" {
				v := cell.Value
				info.CalculatedValue = &v
			}
			if opts.TokenizeFormulas {
				info.Functions, info.References = TokenizeFormula(cell.Value)
			}
			formulas = append(formulas, info)
			if len(formulas) == FormulaLimit {
				return formulas, nil
			}
		}
	}
	return formulas, nil
}

// ExtractSampleData reads up to SampleRowLimit rows of SampleColumnLimit
// columns, skipping rows without any non-empty cell.
func ExtractSampleData(g Grid, opts ExtractOptions) ([]models.SampleRow, error) {
	maxRow, maxCol := g.Dimensions()
	samples := []models.SampleRow{}

	lastCol := bound(maxCol, SampleColumnLimit)
	for row := 1; row <= bound(maxRow, SampleRowLimit); row++ {
		var sample models.SampleRow
		for col := 1; col <= lastCol; col++ {
			cell, err := g.Cell(row, col)
			if err != nil {
				return nil, &PassError{Pass: PassSampleData, Ref: cellRef(col, row), Err: err}
			}
			if cell.IsEmpty(opts.Policy) {
				continue
			}
			sample = append(sample, models.SampleValue{
				Column: col,
				Value:  truncate(cell.Value, SampleValueLimit),
			})
		}
		if len(sample) > 0 {
			samples = append(samples, sample)
		}
	}
	return samples, nil
}
