package services

import (
	"sort"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"
)

// EligiblePrograms returns the active programs a farmer can apply to. The
// crop restriction happens in the query (through the program_crops join);
// season and land-size checks run in FilterEligible.
func EligiblePrograms(cropID *int, landSize *float64, season string) ([]models.Program, error) {
	query := config.DB.Model(&models.Program{}).Where("is_active = ?", true)
	if cropID != nil {
		query = query.
			Joins("JOIN program_crops ON program_crops.program_id = programs.program_id").
			Where("program_crops.crop_id = ?", *cropID)
	}

	var programs []models.Program
	if err := query.Find(&programs).Error; err != nil {
		return nil, err
	}

	return FilterEligible(programs, landSize, season), nil
}

// FilterEligible is a pure filter over a candidate read set. A program is
// kept when no season was requested, the program runs in any season, or the
// seasons match, and when the land size (if given) falls within the
// program's inclusive bounds, a nil bound meaning unbounded on that side.
// The result is sorted by program title.
func FilterEligible(programs []models.Program, landSize *float64, season string) []models.Program {
	eligible := make([]models.Program, 0, len(programs))
	for _, p := range programs {
		if !p.IsActive {
			continue
		}
		if season != "" && p.Season != "" && p.Season != models.SeasonAny && p.Season != season {
			continue
		}
		if landSize != nil {
			if p.MinLandSize != nil && *landSize < *p.MinLandSize {
				continue
			}
			if p.MaxLandSize != nil && *landSize > *p.MaxLandSize {
				continue
			}
		}
		eligible = append(eligible, p)
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Title < eligible[j].Title
	})
	return eligible
}
