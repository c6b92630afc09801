package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// numFormat classifies a cell number format.
type numFormat int

const (
	numFormatGeneral numFormat = iota
	numFormatDateTime
	numFormatTime
)

// Layouts used to render date and time cells.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	TimeLayout     = "15:04:05"
)

// builtInDateFormats lists the built-in number format ids that display
// dates or times.
var builtInDateFormats = map[int]numFormat{
	14: numFormatDateTime, 15: numFormatDateTime, 16: numFormatDateTime, 17: numFormatDateTime,
	18: numFormatTime, 19: numFormatTime, 20: numFormatTime, 21: numFormatTime,
	22: numFormatDateTime,
	27: numFormatDateTime, 28: numFormatDateTime, 29: numFormatDateTime, 30: numFormatDateTime,
	31: numFormatDateTime, 32: numFormatTime, 33: numFormatTime, 34: numFormatTime,
	35: numFormatTime, 36: numFormatDateTime,
	45: numFormatTime, 46: numFormatTime, 47: numFormatTime,
	50: numFormatDateTime, 51: numFormatDateTime, 52: numFormatDateTime, 53: numFormatDateTime,
	54: numFormatDateTime, 55: numFormatDateTime, 56: numFormatDateTime, 57: numFormatDateTime,
	58: numFormatDateTime,
}

var bracketed = regexp.MustCompile(`\[.*?\]`)

// classifyNumFmt returns the kind of a number format given its id and,
// for custom formats, its code.
func classifyNumFmt(id int, custom string) numFormat {
	if custom == "" {
		return builtInDateFormats[id]
	}
	return classifyFormatCode(custom)
}

// classifyFormatCode drops quoted text, escaped characters and bracketed
// sections, then counts date and number placeholders. A format with date
// placeholders and no digit placeholders displays a date or time.
func classifyFormatCode(code string) numFormat {
	// Only the first section applies to positive values.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	var b strings.Builder
	quoted, skip := false, false
	for _, c := range code {
		switch {
		case skip:
			skip = false
		case quoted:
			quoted = c != '"'
		case c == '"':
			quoted = true
		case c == '\\' || c == '_' || c == '*':
			skip = true
		default:
			b.WriteRune(c)
		}
	}
	reduced := strings.ToLower(bracketed.ReplaceAllString(b.String(), ""))
	if reduced == "general" || reduced == "@" {
		return numFormatGeneral
	}

	var hasDate, hasTime bool
	for _, c := range reduced {
		switch c {
		case '0', '#', '?':
			return numFormatGeneral
		case 'y', 'd':
			hasDate = true
		case 'm':
			// Ambiguous between month and minute; counts as a date part
			// unless the format also has hours or seconds.
			hasDate = hasDate || !strings.ContainsAny(reduced, "hs")
		case 'h', 's':
			hasTime = true
		}
	}
	switch {
	case hasDate:
		return numFormatDateTime
	case hasTime:
		return numFormatTime
	}
	return numFormatGeneral
}

// formatSerial renders an Excel serial date. Time formats render as a
// time of day only when the serial has no date part.
func formatSerial(serial float64, kind numFormat, date1904 bool) (string, bool) {
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	if kind == numFormatTime && serial < 1 {
		return t.Format(TimeLayout), true
	}
	return t.Format(DateTimeLayout), true
}

// formatISODate renders a cell stored with the ISO 8601 date type.
func formatISODate(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateTimeLayout)
		}
	}
	return raw
}
