package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 6, 9, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		project domain.Project
		want    string
	}{
		{"claim number", domain.Project{Name: "Smith", ClaimNumber: "CLM-2024-001"}, "CLM-2024-001_20240609.esx"},
		{"name fallback", domain.Project{Name: "Smith Residence"}, "Smith_Residence_20240609.esx"},
		{"unsafe characters", domain.Project{ClaimNumber: "a/b\\c:d*?"}, "a_b_c_d_20240609.esx"},
		{"blank claim", domain.Project{Name: "Jones", ClaimNumber: "   "}, "Jones_20240609.esx"},
		{"nothing usable", domain.Project{Name: "///"}, "estimate_20240609.esx"},
		{"empty", domain.Project{}, "estimate_20240609.esx"},
		{"leading dots", domain.Project{Name: "..hidden"}, "hidden_20240609.esx"},
		{"unicode letters", domain.Project{Name: "Café Müller"}, "Café_Müller_20240609.esx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFilename(tt.project, at))
		})
	}
}

func TestExportFilename_Truncates(t *testing.T) {
	long := domain.Project{Name: strings.Repeat("x", 200)}
	got := ExportFilename(long, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, strings.Repeat("x", maxExportStemRunes)+"_20240102.esx", got)
}
