// Package output serializes analysis results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/ukaji3/xlinspect/pkg/xlinspect/models"
)

// Indent is the per-level indentation of emitted JSON.
const Indent = "  "

// ToJSON renders the analysis result as indented JSON terminated by a
// newline.
func ToJSON(result *models.AnalysisResult) ([]byte, error) {
	return encode(result)
}

// SheetToJSON renders a single sheet summary as indented JSON.
func SheetToJSON(summary *models.SheetSummary) ([]byte, error) {
	return encode(summary)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
