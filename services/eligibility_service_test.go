package services

import (
	"testing"

	"kissan-konnect-api/models"
)

func rabiProgram() models.Program {
	return models.Program{
		ProgramID:   1,
		Title:       "Rabi Seed Subsidy",
		Season:      models.SeasonRabi,
		MinLandSize: floatPtr(1.0),
		MaxLandSize: floatPtr(4.0),
		IsActive:    true,
	}
}

func TestFilterEligible(t *testing.T) {
	tests := []struct {
		name     string
		program  models.Program
		landSize *float64
		season   string
		want     bool
	}{
		{
			name:     "matching season and land size",
			program:  rabiProgram(),
			landSize: floatPtr(2.0),
			season:   models.SeasonRabi,
			want:     true,
		},
		{
			name:     "season mismatch excludes",
			program:  rabiProgram(),
			landSize: floatPtr(2.0),
			season:   models.SeasonKharif,
			want:     false,
		},
		{
			name:     "land size above maximum excludes",
			program:  rabiProgram(),
			landSize: floatPtr(5.0),
			season:   models.SeasonRabi,
			want:     false,
		},
		{
			name:     "land size below minimum excludes",
			program:  rabiProgram(),
			landSize: floatPtr(0.5),
			season:   models.SeasonRabi,
			want:     false,
		},
		{
			name:     "bounds are inclusive",
			program:  rabiProgram(),
			landSize: floatPtr(4.0),
			season:   models.SeasonRabi,
			want:     true,
		},
		{
			name:    "no season requested keeps seasonal program",
			program: rabiProgram(),
			season:  "",
			want:    true,
		},
		{
			name: "any-season program matches every season",
			program: models.Program{
				Title: "Soil Health Card", Season: models.SeasonAny, IsActive: true,
			},
			landSize: floatPtr(100.0),
			season:   models.SeasonZaid,
			want:     true,
		},
		{
			name: "nil bounds mean unbounded",
			program: models.Program{
				Title: "Open Grant", Season: models.SeasonAny, IsActive: true,
			},
			landSize: floatPtr(500.0),
			season:   models.SeasonKharif,
			want:     true,
		},
		{
			name: "inactive program is never eligible",
			program: models.Program{
				Title: "Closed Program", Season: models.SeasonAny, IsActive: false,
			},
			landSize: floatPtr(2.0),
			season:   models.SeasonRabi,
			want:     false,
		},
		{
			name:     "nil land size skips bound checks",
			program:  rabiProgram(),
			landSize: nil,
			season:   models.SeasonRabi,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEligible([]models.Program{tt.program}, tt.landSize, tt.season)
			if kept := len(got) == 1; kept != tt.want {
				t.Fatalf("eligible=%v, want %v", kept, tt.want)
			}
		})
	}
}

func TestFilterEligibleSortsByTitle(t *testing.T) {
	programs := []models.Program{
		{Title: "Smallholder Equipment Grant", Season: models.SeasonAny, IsActive: true},
		{Title: "Kharif Input Subsidy", Season: models.SeasonAny, IsActive: true},
		{Title: "Soil Health Card", Season: models.SeasonAny, IsActive: true},
	}

	got := FilterEligible(programs, nil, "")
	if len(got) != 3 {
		t.Fatalf("expected 3 programs, got %d", len(got))
	}
	want := []string{"Kharif Input Subsidy", "Smallholder Equipment Grant", "Soil Health Card"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}
