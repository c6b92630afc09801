package parser

import (
	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only, formula-preserving view of an xlsx file.
type Workbook struct {
	file     *excelize.File
	date1904 bool
}

// Load opens the workbook at path.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	props, err := f.GetWorkbookProps()
	if err != nil {
		f.Close()
		return nil, err
	}
	wb := &Workbook{file: f}
	if props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns a grid over the named sheet with its dimensions resolved.
func (w *Workbook) Sheet(name string) (*SheetGrid, error) {
	maxRow, maxCol, err := SheetDimensions(w.file, name)
	if err != nil {
		return nil, err
	}
	return &SheetGrid{
		reader: newCellReader(w.file, name, w.date1904),
		name:   name,
		maxRow: maxRow,
		maxCol: maxCol,
	}, nil
}

// Grid is the read interface the sheet extractor works on.
type Grid interface {
	// Name returns the sheet name.
	Name() string
	// Dimensions returns the highest row and column containing data.
	Dimensions() (maxRow, maxCol int)
	// Cell returns the classified cell at a 1-based position.
	Cell(row, col int) (Cell, error)
}

// SheetGrid is a Grid backed by an excelize worksheet.
type SheetGrid struct {
	reader *cellReader
	name   string
	maxRow int
	maxCol int
}

// Name implements Grid.
func (g *SheetGrid) Name() string {
	return g.name
}

// Dimensions implements Grid.
func (g *SheetGrid) Dimensions() (int, int) {
	return g.maxRow, g.maxCol
}

// Cell implements Grid.
func (g *SheetGrid) Cell(row, col int) (Cell, error) {
	return g.reader.read(row, col)
}
