package parser

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// memGrid is an in-memory Grid built from string rows. Values starting
// with "=" are formulas; "TRUE"/"FALSE" are booleans; numeric strings are
// numbers; "" is an absent cell.
type memGrid struct {
	name   string
	rows   [][]string
	maxRow int
	maxCol int
	failAt string
}

func newMemGrid(rows ...[]string) *memGrid {
	g := &memGrid{name: "Sheet1", rows: rows}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			if r+1 > g.maxRow {
				g.maxRow = r + 1
			}
			if c+1 > g.maxCol {
				g.maxCol = c + 1
			}
		}
	}
	return g
}

func (g *memGrid) Name() string { return g.name }

func (g *memGrid) Dimensions() (int, int) { return g.maxRow, g.maxCol }

func (g *memGrid) Cell(row, col int) (Cell, error) {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	if ref == g.failAt {
		return Cell{}, errors.New("broken cell")
	}
	var v string
	if row-1 < len(g.rows) && col-1 < len(g.rows[row-1]) {
		v = g.rows[row-1][col-1]
	}
	switch {
	case strings.HasPrefix(v, FormulaPrefix):
		return NewFormulaCell(row, col, v), nil
	case v == "TRUE" || v == "FALSE":
		return NewLiteralCell(row, col, ValueBool, v), nil
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return NewLiteralCell(row, col, ValueNumber, v), nil
	}
	return NewLiteralCell(row, col, ValueString, v), nil
}

// saveWorkbook builds a workbook with fn, saves it under t.TempDir and
// returns its path.
func saveWorkbook(t *testing.T, fn func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	fn(f)

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
