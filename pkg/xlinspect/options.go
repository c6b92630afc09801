// Package xlinspect summarizes the structure of an xlsx workbook: sheet
// names, headers, formulas and a small sample of cell data.
package xlinspect

import (
	"go.uber.org/zap"

	"github.com/ukaji3/xlinspect/pkg/xlinspect/parser"
)

// Mode represents the level of detail in formula entries.
type Mode string

const (
	// ModeStandard reports cell, formula and calculated_value per formula.
	ModeStandard Mode = "standard"
	// ModeVerbose additionally lists called functions and referenced ranges.
	ModeVerbose Mode = "verbose"
)

// EmptyPolicy decides which cell values count as "no value".
type EmptyPolicy = parser.EmptyPolicy

const (
	// EmptyNull treats only absent cells and empty strings as empty.
	EmptyNull = parser.EmptyNull
	// EmptyFalsy also treats numeric zero and boolean FALSE as empty.
	EmptyFalsy = parser.EmptyFalsy
)

// Options configures analysis.
type Options struct {
	// Mode specifies the formula detail level (standard, verbose).
	Mode Mode
	// EmptyPolicy decides which values are skipped in headers and samples.
	EmptyPolicy EmptyPolicy
	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeStandard,
		EmptyPolicy: EmptyNull,
	}
}

// ShouldTokenizeFormulas returns whether formula entries list functions
// and references.
func (o Options) ShouldTokenizeFormulas() bool {
	return o.Mode == ModeVerbose
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) extractOptions() parser.ExtractOptions {
	return parser.ExtractOptions{
		Policy:           o.EmptyPolicy,
		TokenizeFormulas: o.ShouldTokenizeFormulas(),
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard:
		return ModeStandard, nil
	case ModeVerbose:
		return ModeVerbose, nil
	}
	return "", &InvalidModeError{Mode: s}
}
