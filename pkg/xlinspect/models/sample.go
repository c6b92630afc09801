package models

import (
	"bytes"
	"strconv"
)

// SampleValue is a single cell in a sample row.
type SampleValue struct {
	// Column is the 1-based column index.
	Column int
	// Value is the truncated string representation of the cell.
	Value string
}

// SampleRow maps synthetic column labels ("Col1", "Col2", ...) to values.
// It serializes as a JSON object with keys in ascending column order.
type SampleRow []SampleValue

// ColumnLabel returns the synthetic key used for a column in sample rows.
func ColumnLabel(col int) string {
	return "Col" + strconv.Itoa(col)
}

// Get returns the value stored under a label such as "Col3".
func (r SampleRow) Get(label string) (string, bool) {
	for _, v := range r {
		if ColumnLabel(v.Column) == label {
			return v.Value, true
		}
	}
	return "", false
}

// MarshalJSON implements json.Marshaler.
func (r SampleRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(ColumnLabel(v.Column))
		if err != nil {
			return nil, err
		}
		val, err := marshalValue(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
