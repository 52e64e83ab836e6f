package services

import (
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

const (
	exportExtension    = ".esx"
	exportDateLayout   = "20060102"
	fallbackExportStem = "estimate"
	maxExportStemRunes = 64
)

// ExportFilename derives "<claim-or-name>_<YYYYMMDD>.esx" for a project.
// Characters outside letters, digits, '-' and '.' collapse to '_'.
func ExportFilename(project domain.Project, at time.Time) string {
	stem := sanitizeStem(project.ClaimNumber)
	if stem == "" {
		stem = sanitizeStem(project.Name)
	}
	if stem == "" {
		stem = fallbackExportStem
	}
	return stem + "_" + at.Format(exportDateLayout) + exportExtension
}

func sanitizeStem(s string) string {
	var b strings.Builder
	lastUnderscore := false
	runes := 0
	for _, r := range strings.TrimSpace(s) {
		if runes >= maxExportStemRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
		runes++
	}
	return strings.Trim(b.String(), "_.")
}
