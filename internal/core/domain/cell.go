package domain

import (
	"strconv"
	"strings"
)

// CellKind identifies which variant a CellValue holds.
type CellKind int

// Cell kinds.
const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	default:
		return "empty"
	}
}

// CellValue is a spreadsheet cell: a number, text, or nothing.
type CellValue struct {
	kind CellKind
	num  float64
	text string
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) CellValue {
	return CellValue{kind: CellNumber, num: f}
}

// TextCell returns a text cell.
func TextCell(s string) CellValue {
	return CellValue{kind: CellText, text: s}
}

// EmptyCell returns an empty cell.
func EmptyCell() CellValue {
	return CellValue{}
}

// ParseCell classifies raw cell text. Blank input is Empty; input that
// parses as a number (thousands separators and a leading currency sign
// are tolerated) is Number; anything else is Text.
func ParseCell(raw string) CellValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyCell()
	}
	if f, ok := parseLooseNumber(s); ok {
		return NumberCell(f)
	}
	return TextCell(s)
}

func parseLooseNumber(s string) (float64, bool) {
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Kind returns the variant held.
func (c CellValue) Kind() CellKind {
	return c.kind
}

// IsEmpty reports whether the cell holds nothing.
func (c CellValue) IsEmpty() bool {
	return c.kind == CellEmpty
}

// AsNumber coerces the cell to a number. Text that does not parse and
// empty cells yield def.
func (c CellValue) AsNumber(def float64) float64 {
	switch c.kind {
	case CellNumber:
		return c.num
	case CellText:
		if f, ok := parseLooseNumber(c.text); ok {
			return f
		}
	}
	return def
}

// AsText coerces the cell to text. Numbers render in shortest form.
func (c CellValue) AsText() string {
	switch c.kind {
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case CellText:
		return c.text
	default:
		return ""
	}
}
