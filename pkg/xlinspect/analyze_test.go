package xlinspect

import (
	"errors"
	"os"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/xlinspect/pkg/xlinspect/parser"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "B1", "Total")
	f.SetCellValue("Sheet1", "A2", "Alice")
	f.SetCellFormula("Sheet1", "B2", "B2*2")
	f.SetCellValue("Sheet1", "A3", 0)

	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	_, err = f.NewSheet("Lookup")
	require.NoError(t, err)
	f.SetCellValue("Lookup", "A1", "Key")
	f.SetCellFormula("Lookup", "B1", "VLOOKUP(A1,Sheet1!A:B,2,FALSE)")
	f.SetCellValue("Lookup", "C1", "Notes")

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestAnalyze(t *testing.T) {
	path := writeFixture(t)

	result, err := Analyze(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Sheet1", "Empty", "Lookup"}, result.SheetNames)
	require.Len(t, result.Sheets, len(result.SheetNames))
	for _, name := range result.SheetNames {
		_, ok := result.Sheets.Get(name)
		assert.True(t, ok, name)
	}

	sheet, _ := result.Sheets.Get("Sheet1")
	assert.Equal(t, 3, sheet.MaxRow)
	assert.Equal(t, 2, sheet.MaxColumn)
	require.Len(t, sheet.Headers, 2)
	assert.Equal(t, 1, sheet.Headers[0].Column)
	assert.Equal(t, "Name", sheet.Headers[0].Header)
	assert.Equal(t, 2, sheet.Headers[1].Column)
	assert.Equal(t, "Total", sheet.Headers[1].Header)

	require.Len(t, sheet.Formulas, 1)
	assert.Equal(t, "B2", sheet.Formulas[0].Cell)
	assert.Equal(t, "=B2*2", sheet.Formulas[0].Formula)
	require.NotNil(t, sheet.Formulas[0].CalculatedValue)
	assert.Equal(t, "=B2*2", *sheet.Formulas[0].CalculatedValue)
	assert.Empty(t, sheet.Formulas[0].Functions)

	require.Len(t, sheet.SampleData, 3)
	v, _ := sheet.SampleData[1].Get("Col1")
	assert.Equal(t, "Alice", v)
	v, _ = sheet.SampleData[1].Get("Col2")
	assert.Equal(t, "=B2*2", v)
	v, _ = sheet.SampleData[2].Get("Col1")
	assert.Equal(t, "0", v)

	empty, _ := result.Sheets.Get("Empty")
	assert.Equal(t, 0, empty.MaxRow)
	assert.Empty(t, empty.Headers)
	assert.Empty(t, empty.Formulas)
	assert.Empty(t, empty.SampleData)

	lookup, _ := result.Sheets.Get("Lookup")
	require.Len(t, lookup.Headers, 3)
	assert.Equal(t, "=VLOOKUP(A1,Sheet1!A:B,2,FALSE)", lookup.Headers[1].Formula)
}

func TestAnalyzeDatesAndDecimals(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Dates"))
	f.SetCellValue("Dates", "A1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	f.SetCellValue("Dates", "B1", "Rate")
	f.SetCellValue("Dates", "A2", time.Date(2024, 1, 3, 9, 45, 0, 0, time.UTC))
	f.SetCellDefault("Dates", "B2", "0.10000000000000001")

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	require.NoError(t, f.SaveAs(path))

	result, err := Analyze(path, DefaultOptions())
	require.NoError(t, err)

	sheet, ok := result.Sheets.Get("Dates")
	require.True(t, ok)
	require.Len(t, sheet.Headers, 2)
	assert.Equal(t, "2024-01-02 00:00:00", sheet.Headers[0].Header)

	require.Len(t, sheet.SampleData, 2)
	v, _ := sheet.SampleData[1].Get("Col1")
	assert.Equal(t, "2024-01-03 09:45:00", v)
	v, _ = sheet.SampleData[1].Get("Col2")
	assert.Equal(t, "0.1", v)
}

func TestAnalyzeFalsyPolicy(t *testing.T) {
	path := writeFixture(t)

	opts := DefaultOptions()
	opts.EmptyPolicy = EmptyFalsy
	result, err := Analyze(path, opts)
	require.NoError(t, err)

	sheet, _ := result.Sheets.Get("Sheet1")
	assert.Len(t, sheet.SampleData, 2)
}

func TestAnalyzeVerbose(t *testing.T) {
	path := writeFixture(t)

	core, logs := observer.New(zapcore.DebugLevel)
	opts := Options{Mode: ModeVerbose, Logger: zap.New(core)}
	result, err := Analyze(path, opts)
	require.NoError(t, err)

	lookup, _ := result.Sheets.Get("Lookup")
	require.Len(t, lookup.Formulas, 1)
	assert.Equal(t, []string{"VLOOKUP"}, lookup.Formulas[0].Functions)
	assert.Equal(t, []string{"A1", "Sheet1!A:B"}, lookup.Formulas[0].References)

	assert.Equal(t, 1, logs.FilterMessage("workbook loaded").Len())
	assert.Equal(t, 3, logs.FilterMessage("sheet analyzed").Len())
}

func TestAnalyzeMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	result, err := Analyze(path, DefaultOptions())
	assert.Nil(t, result)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestAnalyzeInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	result, err := Analyze(path, DefaultOptions())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("standard")
	require.NoError(t, err)
	assert.Equal(t, ModeStandard, m)

	m, err = ParseMode("verbose")
	require.NoError(t, err)
	assert.Equal(t, ModeVerbose, m)

	_, err = ParseMode("light")
	var me *InvalidModeError
	assert.ErrorAs(t, err, &me)
}

func TestExtractionErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewExtractionError("Sheet1", "formulas", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `extraction error in sheet "Sheet1" (formulas): boom`, err.Error())
}

func TestFailedComponent(t *testing.T) {
	pe := &parser.PassError{Pass: parser.PassFormulas, Ref: "B2", Err: errors.New("bad cell")}
	assert.Equal(t, parser.PassFormulas, failedComponent(pe))
	assert.Equal(t, parser.PassFormulas, failedComponent(fmt.Errorf("wrapped: %w", pe)))
	assert.Equal(t, ComponentSheet, failedComponent(errors.New("boom")))

	err := NewExtractionError("Sheet1", failedComponent(errors.New("boom")), errors.New("boom"))
	assert.Equal(t, `extraction error in sheet "Sheet1" (sheet): boom`, err.Error())
}
