package fetcher

import (
	"strings"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
)

// classification maps a case-insensitive name marker to a contest type and a
// coarse difficulty band. Per platform the list is ordered: the first marker
// found in the name wins, so more specific markers come first (an
// "Educational ... (Rated for Div. 2)" round must classify as educational).
type classification struct {
	marker      string
	contestType string
	difficulty  string
}

var classifications = map[string][]classification{
	models.PlatformCodeforces: {
		{"educational", models.ContestTypeEducational, "1600 and below"},
		{"global round", models.ContestTypeGlobal, "all levels"},
		{"div. 4", models.ContestTypeDiv4, "0-1399"},
		{"div. 3", models.ContestTypeDiv3, "1300-1599"},
		{"div. 2", models.ContestTypeDiv2, "1600-1899"},
		{"div. 1", models.ContestTypeDiv1, "1900+"},
	},
	models.PlatformCodechef: {
		{"starters", models.ContestTypeStarters, "all levels"},
		{"cook-off", models.ContestTypeCookoff, "1400+"},
		{"lunchtime", models.ContestTypeLunchtime, "1400+"},
		{"long", models.ContestTypeLong, "all levels"},
	},
	models.PlatformLeetcode: {
		{"biweekly", models.ContestTypeBiweekly, "all levels"},
		{"weekly", models.ContestTypeWeekly, "all levels"},
	},
}

// Classify derives contest type and difficulty from a contest name. Names
// with no recognizable marker get type "other" and no difficulty.
func Classify(platform, name string) (contestType, difficulty string) {
	lower := strings.ToLower(name)

	for _, c := range classifications[platform] {
		if strings.Contains(lower, c.marker) {
			return c.contestType, c.difficulty
		}
	}

	return models.ContestTypeOther, ""
}
