package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellKind classifies a cell.
type CellKind int

const (
	// CellEmpty is an absent cell or one without a value.
	CellEmpty CellKind = iota
	// CellLiteral holds a string, number, boolean, date or error value.
	CellLiteral
	// CellFormula holds a formula; its value is the formula text.
	CellFormula
)

// ValueType is the stored type of a literal value.
type ValueType int

const (
	ValueNone ValueType = iota
	ValueString
	ValueNumber
	ValueBool
	ValueDate
	ValueError
)

// EmptyPolicy decides which cell values count as "no value".
type EmptyPolicy int

const (
	// EmptyNull treats only absent cells and empty strings as empty.
	// Numeric zero and boolean FALSE are data.
	EmptyNull EmptyPolicy = iota
	// EmptyFalsy additionally treats numeric zero and boolean FALSE as empty.
	EmptyFalsy
)

// FormulaPrefix marks a value as formula text.
const FormulaPrefix = "="

// Cell is a single classified cell.
type Cell struct {
	Row    int
	Column int
	// Ref is the coordinate label, e.g. "A1".
	Ref   string
	Kind  CellKind
	Type  ValueType
	Value string
}

// IsFormula reports whether the cell holds a formula.
func (c Cell) IsFormula() bool {
	return c.Kind == CellFormula
}

// IsEmpty reports whether the cell carries no value under the given policy.
func (c Cell) IsEmpty(policy EmptyPolicy) bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellFormula:
		return c.Value == ""
	}
	if c.Value == "" {
		return true
	}
	if policy != EmptyFalsy {
		return false
	}
	switch c.Type {
	case ValueBool:
		return c.Value == "FALSE"
	case ValueNumber:
		f, err := strconv.ParseFloat(c.Value, 64)
		return err == nil && f == 0
	}
	return false
}

// NewFormulaCell builds a formula cell, normalizing the formula text to
// carry exactly one leading "=".
func NewFormulaCell(row, col int, formula string) Cell {
	return Cell{
		Row:    row,
		Column: col,
		Ref:    cellRef(col, row),
		Kind:   CellFormula,
		Type:   ValueString,
		Value:  FormulaPrefix + strings.TrimPrefix(formula, FormulaPrefix),
	}
}

// NewLiteralCell builds a literal cell. An empty value yields CellEmpty.
func NewLiteralCell(row, col int, typ ValueType, value string) Cell {
	c := Cell{
		Row:    row,
		Column: col,
		Ref:    cellRef(col, row),
		Kind:   CellLiteral,
		Type:   typ,
		Value:  value,
	}
	if value == "" {
		c.Kind = CellEmpty
		c.Type = ValueNone
	}
	return c
}

func cellRef(col, row int) string {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return ref
}

// cellReader reads classified cells from one excelize sheet. Formula
// cells are read as their formula text; cached results are ignored.
type cellReader struct {
	file     *excelize.File
	sheet    string
	date1904 bool
	formats  map[int]numFormat
}

func newCellReader(f *excelize.File, sheetName string, date1904 bool) *cellReader {
	return &cellReader{
		file:     f,
		sheet:    sheetName,
		date1904: date1904,
		formats:  make(map[int]numFormat),
	}
}

func (r *cellReader) read(row, col int) (Cell, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}

	formula, err := r.file.GetCellFormula(r.sheet, ref)
	if err != nil {
		return Cell{}, err
	}
	if formula != "" {
		return NewFormulaCell(row, col, formula), nil
	}

	raw, err := r.file.GetCellValue(r.sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return Cell{}, err
	}
	if raw == "" {
		return NewLiteralCell(row, col, ValueNone, ""), nil
	}

	cellType, err := r.file.GetCellType(r.sheet, ref)
	if err != nil {
		return Cell{}, err
	}
	format := numFormatGeneral
	if cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeUnset {
		if format, err = r.numFormat(ref); err != nil {
			return Cell{}, err
		}
	}
	typ, value := parseValue(cellType, raw, format, r.date1904)
	return NewLiteralCell(row, col, typ, value), nil
}

// numFormat classifies the number format applied to a cell, caching the
// result per style index.
func (r *cellReader) numFormat(ref string) (numFormat, error) {
	idx, err := r.file.GetCellStyle(r.sheet, ref)
	if err != nil {
		return numFormatGeneral, err
	}
	if kind, ok := r.formats[idx]; ok {
		return kind, nil
	}

	kind := numFormatGeneral
	if idx != 0 {
		style, err := r.file.GetStyle(idx)
		if err != nil {
			return numFormatGeneral, err
		}
		var custom string
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		kind = classifyNumFmt(style.NumFmt, custom)
	}
	r.formats[idx] = kind
	return kind, nil
}

// parseValue maps an excelize cell type and raw value to a ValueType and
// its string rendering. Numbers render in their shortest form, numbers
// with a date or time format render as dates, and booleans render as
// TRUE/FALSE.
func parseValue(cellType excelize.CellType, raw string, format numFormat, date1904 bool) (ValueType, string) {
	switch cellType {
	case excelize.CellTypeBool:
		switch raw {
		case "1", "TRUE", "true":
			return ValueBool, "TRUE"
		case "0", "FALSE", "false":
			return ValueBool, "FALSE"
		}
		return ValueBool, raw
	case excelize.CellTypeDate:
		return ValueDate, formatISODate(raw)
	case excelize.CellTypeError:
		return ValueError, raw
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return ValueString, raw
	}

	// Number cells, with or without a type attribute.
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if cellType == excelize.CellTypeNumber {
			return ValueNumber, raw
		}
		return ValueString, raw
	}
	if format != numFormatGeneral {
		if s, ok := formatSerial(v, format, date1904); ok {
			return ValueDate, s
		}
	}
	return ValueNumber, strconv.FormatFloat(v, 'f', -1, 64)
}
