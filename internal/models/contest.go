package models

import (
	"fmt"
	"time"
)

const (
	PlatformCodeforces = "codeforces"
	PlatformCodechef   = "codechef"
	PlatformLeetcode   = "leetcode"
)

const (
	ContestTypeDiv1        = "div1"
	ContestTypeDiv2        = "div2"
	ContestTypeDiv3        = "div3"
	ContestTypeDiv4        = "div4"
	ContestTypeEducational = "educational"
	ContestTypeGlobal      = "global"
	ContestTypeLong        = "long"
	ContestTypeCookoff     = "cookoff"
	ContestTypeLunchtime   = "lunchtime"
	ContestTypeStarters    = "starters"
	ContestTypeWeekly      = "weekly"
	ContestTypeBiweekly    = "biweekly"
	ContestTypeOther       = "other"
)

// Platforms lists every supported contest source.
var Platforms = []string{PlatformCodeforces, PlatformCodechef, PlatformLeetcode}

type Contest struct {
	BaseModel

	Platform        string    `gorm:"index;not null;uniqueIndex:idx_contest_identity" json:"platform"`
	Name            string    `gorm:"not null;uniqueIndex:idx_contest_identity" json:"name"`
	URL             string    `json:"url"`
	StartTime       time.Time `gorm:"index;not null;uniqueIndex:idx_contest_identity" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	Duration        string    `json:"duration"`         // "2h", "1h 30m"
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      string    `json:"difficulty,omitempty"`   // "1600-1899", free text
	ContestType     string    `gorm:"index" json:"contest_type"`
}

func (*Contest) TableName() string {
	return "contests"
}

// DedupKey identifies a contest across repeated fetches. The start time is
// rendered as RFC3339 in UTC so the key is deterministic regardless of the
// location attached to the parsed timestamp.
func (c *Contest) DedupKey() string {
	return fmt.Sprintf("%s|%s|%s", c.Platform, c.Name, c.StartTime.UTC().Format(time.RFC3339))
}

func (c *Contest) IsUpcoming() bool {
	return c.StartTime.After(time.Now())
}

func (c *Contest) IsRunning() bool {
	now := time.Now()
	return now.After(c.StartTime) && now.Before(c.EndTime)
}

func (c *Contest) IsFinished() bool {
	return time.Now().After(c.EndTime)
}

// TimeUntilStart is negative once the contest has started.
func (c *Contest) TimeUntilStart() time.Duration {
	return time.Until(c.StartTime)
}

// IsValidPlatform reports whether p is one of the supported sources.
func IsValidPlatform(p string) bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}
