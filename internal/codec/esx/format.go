package esx

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// FormatVersion is written to the root element's version attribute.
const FormatVersion = "1.0"

// Element and attribute names. Case-sensitive.
const (
	rootElement = "ESX"

	attrName      = "name"
	attrLabel     = "label"
	attrCategory  = "category"
	attrSynthetic = "synthetic"
	attrVersion   = "version"
)

// Fallback names used when ownership or titles are missing.
const (
	// FallbackLevelName names the level holding unassigned rooms and items.
	FallbackLevelName = domain.FallbackLevelName

	// FallbackRoomName names the room holding unassigned line items. It is
	// also the display room for photos whose room does not resolve.
	FallbackRoomName = domain.FallbackRoomName

	// UntitledProject replaces a missing project name on decode.
	UntitledProject = "Untitled Project"
)

const (
	dateLayout     = "2006-01-02"
	inchesPerFoot  = 12.0
	amountDecimals = 2

	// HeightFT carries four places so whole and hundredth inches survive
	// the conversion back.
	heightDecimals = 4
)

// escape encodes text content. The five reserved characters become named
// entities and a carriage return becomes a character reference so it
// survives end-of-line normalisation. Characters XML 1.0 cannot carry,
// including invalid UTF-8, are replaced with U+FFFD.
func escape(s string) string {
	return escapeXML(s, false)
}

// escapeAttr encodes an attribute value. It also references tab and line
// feed, which attribute-value normalisation would turn into spaces.
func escapeAttr(s string) string {
	return escapeXML(s, true)
}

func escapeXML(s string, inAttr bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case r == '\r':
			b.WriteString("&#xD;")
		case r == '\n' && inAttr:
			b.WriteString("&#xA;")
		case r == '\t' && inAttr:
			b.WriteString("&#x9;")
		case !isXMLChar(r):
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production. An
// invalid byte sequence decodes to U+FFFD, which is allowed, so it is
// written as the replacement character.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// formatAmount renders f with fixed two-decimal precision.
func formatAmount(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	s := strconv.FormatFloat(f, 'f', amountDecimals, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// formatHeight renders a height in inches as feet.
func formatHeight(inches float64) string {
	ft := inchesToFeet(inches)
	if math.IsNaN(ft) || math.IsInf(ft, 0) {
		ft = 0
	}
	s := strconv.FormatFloat(ft, 'f', heightDecimals, 64)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

// textOr returns the trimmed value, or def when it is blank.
func textOr(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

// numberOr parses s permissively, returning def for blank, non-numeric
// or non-finite content.
func numberOr(s string, def float64) float64 {
	f := domain.ParseCell(s).AsNumber(def)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
	"01/02/2006",
}

// timeOr parses s against the accepted layouts, returning nil when blank
// or unparseable.
func timeOr(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func feetToInches(ft float64) float64 {
	return math.Round(ft*inchesPerFoot*100) / 100
}

func inchesToFeet(in float64) float64 {
	return in / inchesPerFoot
}
