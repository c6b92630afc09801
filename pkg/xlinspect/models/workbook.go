// Package models defines the data structures produced by workbook analysis.
package models

import (
	"bytes"
	"encoding/json"
)

// AnalysisResult is the workbook-level summary.
type AnalysisResult struct {
	// SheetNames lists sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its summary, serialized in workbook order.
	Sheets SheetMap `json:"sheets"`
}

// NewAnalysisResult returns an empty result ready to be filled in order.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		SheetNames: []string{},
		Sheets:     SheetMap{},
	}
}

// AddSheet appends a sheet summary, keeping SheetNames and Sheets aligned.
func (r *AnalysisResult) AddSheet(name string, summary SheetSummary) {
	r.SheetNames = append(r.SheetNames, name)
	r.Sheets = append(r.Sheets, SheetEntry{Name: name, Summary: summary})
}

// SheetEntry pairs a sheet name with its summary.
type SheetEntry struct {
	Name    string
	Summary SheetSummary
}

// SheetMap is an insertion-ordered mapping from sheet name to SheetSummary.
// It serializes as a JSON object whose keys keep workbook order.
type SheetMap []SheetEntry

// Get returns the summary for the named sheet.
func (m SheetMap) Get(name string) (SheetSummary, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Summary, true
		}
	}
	return SheetSummary{}, false
}

// MarshalJSON implements json.Marshaler.
func (m SheetMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := marshalValue(e.Summary)
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

// marshalValue encodes v without HTML escaping so that formula operators
// such as "<" and "&" survive verbatim.
func marshalValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
