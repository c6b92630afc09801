package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetDimensions computes the highest row and column containing data.
// It takes the larger of the sheet's declared dimension range and the
// bounds of the cells holding a value or a formula. An empty sheet
// yields 0, 0.
func SheetDimensions(f *excelize.File, sheetName string) (maxRow, maxCol int, err error) {
	ref, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return 0, 0, err
	}
	if r, c, ok := parseDimensionRef(ref); ok {
		maxRow, maxCol = r, c
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, 0, err
	}
	scanRow, scanCol := findDataBounds(rows)
	if scanRow > maxRow {
		maxRow = scanRow
	}
	if scanCol > maxCol {
		maxCol = scanCol
	}
	return maxRow, maxCol, nil
}

// parseDimensionRef parses a declared dimension like "A1:D10" and returns
// its bottom-right corner. Single-cell refs are ignored because writers
// emit "A1" for sheets with no data.
func parseDimensionRef(ref string) (maxRow, maxCol int, ok bool) {
	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, false
	}

	if startRow > endRow {
		endRow = startRow
	}
	if startCol > endCol {
		endCol = startCol
	}
	return endRow, endCol, true
}

// findDataBounds returns the 1-based last row and column of rows as
// returned by GetRows, where trailing cells without a value or formula
// are already trimmed.
func findDataBounds(rows [][]string) (maxRow, maxCol int) {
	for rowIdx, row := range rows {
		if len(row) == 0 {
			continue
		}
		maxRow = rowIdx + 1
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return
}
