package xlinspect

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ukaji3/xlinspect/pkg/xlinspect/models"
	"github.com/ukaji3/xlinspect/pkg/xlinspect/parser"
)

// Component names reported in ExtractionError beside the extraction passes.
const (
	// ComponentDimensions is the sheet dimension lookup.
	ComponentDimensions = "dimensions"
	// ComponentSheet covers sheet failures not tied to a single pass.
	ComponentSheet = "sheet"
)

// Analyze loads the workbook at path and summarizes every sheet in
// workbook order. It returns either a complete result or an error.
func Analyze(path string, opts Options) (*models.AnalysisResult, error) {
	log := opts.logger().With(zap.String("path", path))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	wb, err := parser.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}
	defer wb.Close()

	names := wb.SheetNames()
	log.Debug("workbook loaded", zap.Int("sheets", len(names)))

	result := models.NewAnalysisResult()
	for _, name := range names {
		summary, err := analyzeSheet(wb, name, opts)
		if err != nil {
			return nil, err
		}
		log.Debug("sheet analyzed",
			zap.String("sheet", name),
			zap.Int("max_row", summary.MaxRow),
			zap.Int("max_column", summary.MaxColumn),
			zap.Int("headers", len(summary.Headers)),
			zap.Int("formulas", len(summary.Formulas)),
			zap.Int("sample_rows", len(summary.SampleData)))
		result.AddSheet(name, summary)
	}

	return result, nil
}

func analyzeSheet(wb *parser.Workbook, name string, opts Options) (models.SheetSummary, error) {
	g, err := wb.Sheet(name)
	if err != nil {
		return models.SheetSummary{}, NewExtractionError(name, ComponentDimensions, err)
	}

	summary, err := parser.ExtractSheet(g, opts.extractOptions())
	if err != nil {
		return models.SheetSummary{}, NewExtractionError(name, failedComponent(err), err)
	}
	return summary, nil
}

// failedComponent names the extraction pass that produced err.
func failedComponent(err error) string {
	var pe *parser.PassError
	if errors.As(err, &pe) {
		return pe.Pass
	}
	return ComponentSheet
}
