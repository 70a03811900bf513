package fetcher

import (
	"testing"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
)

func TestClassifyCodeforces(t *testing.T) {
	tests := []struct {
		name           string
		wantType       string
		wantDifficulty bool
	}{
		{"Codeforces Round 999 (Div. 2)", models.ContestTypeDiv2, true},
		{"Codeforces Round 1000 (Div. 1)", models.ContestTypeDiv1, true},
		{"Codeforces Round 950 (Div. 3)", models.ContestTypeDiv3, true},
		{"Codeforces Round 951 (Div. 4)", models.ContestTypeDiv4, true},
		{"Educational Codeforces Round 170 (Rated for Div. 2)", models.ContestTypeEducational, true},
		{"Codeforces Global Round 27", models.ContestTypeGlobal, true},
		{"April Fools Contest 2025", models.ContestTypeOther, false},
	}

	for _, tt := range tests {
		contestType, difficulty := Classify(models.PlatformCodeforces, tt.name)

		if contestType != tt.wantType {
			t.Errorf("Classify(%q) type = %q, want %q", tt.name, contestType, tt.wantType)
		}

		if tt.wantDifficulty && difficulty == "" {
			t.Errorf("Classify(%q) difficulty is empty, want non-empty", tt.name)
		}

		if !tt.wantDifficulty && difficulty != "" {
			t.Errorf("Classify(%q) difficulty = %q, want empty", tt.name, difficulty)
		}
	}
}

func TestClassifyDiv2Band(t *testing.T) {
	contestType, difficulty := Classify(models.PlatformCodeforces, "Codeforces Round 999 (Div. 2)")

	if contestType != models.ContestTypeDiv2 {
		t.Errorf("type = %q, want %q", contestType, models.ContestTypeDiv2)
	}

	if difficulty != "1600-1899" {
		t.Errorf("difficulty = %q, want %q", difficulty, "1600-1899")
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	contestType, _ := Classify(models.PlatformCodeforces, "CODEFORCES ROUND 999 (DIV. 2)")
	if contestType != models.ContestTypeDiv2 {
		t.Errorf("type = %q, want %q", contestType, models.ContestTypeDiv2)
	}
}

func TestClassifyCodechef(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
	}{
		{"Starters 150 (Rated till 5 stars)", models.ContestTypeStarters},
		{"CodeChef Cook-Off August 2025", models.ContestTypeCookoff},
		{"CodeChef Lunchtime July 2025", models.ContestTypeLunchtime},
		{"August Long Challenge 2025", models.ContestTypeLong},
		{"Some Invitational Contest", models.ContestTypeOther},
	}

	for _, tt := range tests {
		contestType, _ := Classify(models.PlatformCodechef, tt.name)
		if contestType != tt.wantType {
			t.Errorf("Classify(%q) type = %q, want %q", tt.name, contestType, tt.wantType)
		}
	}
}

func TestClassifyLeetcode(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
	}{
		{"Weekly Contest 415", models.ContestTypeWeekly},
		{"Biweekly Contest 140", models.ContestTypeBiweekly},
	}

	for _, tt := range tests {
		contestType, _ := Classify(models.PlatformLeetcode, tt.name)
		if contestType != tt.wantType {
			t.Errorf("Classify(%q) type = %q, want %q", tt.name, contestType, tt.wantType)
		}
	}
}

func TestClassifyUnknownPlatform(t *testing.T) {
	contestType, difficulty := Classify("topcoder", "SRM 800")

	if contestType != models.ContestTypeOther {
		t.Errorf("type = %q, want %q", contestType, models.ContestTypeOther)
	}

	if difficulty != "" {
		t.Errorf("difficulty = %q, want empty", difficulty)
	}
}
