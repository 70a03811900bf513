package models

// ContestPreference is per-user display filter state. It only narrows what
// list queries return; the notification pipeline never consults it.
type ContestPreference struct {
	BaseModel

	UserID             uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	User               User        `gorm:"foreignKey:UserID" json:"-"`
	MinRating          int         `gorm:"default:0" json:"min_rating"`
	MaxRating          int         `gorm:"default:4000" json:"max_rating"`
	MinDurationMinutes int         `gorm:"default:0" json:"min_duration_minutes"`
	MaxDurationMinutes int         `gorm:"default:0" json:"max_duration_minutes"` // 0 = unbounded
	PlatformTypes      JSONMap     `gorm:"type:jsonb;serializer:json" json:"platform_types,omitempty"`
	FavoriteContests   StringArray `gorm:"type:jsonb;serializer:json;default:'[]'" json:"favorite_contests"`
}

func (*ContestPreference) TableName() string {
	return "contest_preferences"
}

// AllowedTypes returns the contest-type allow-list for a platform. An absent
// or empty list allows every type.
func (p *ContestPreference) AllowedTypes(platform string) []string {
	if p.PlatformTypes == nil {
		return nil
	}

	raw, ok := p.PlatformTypes[platform]
	if !ok {
		return nil
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	types := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			types = append(types, s)
		}
	}
	return types
}

// Matches reports whether a contest passes this filter.
func (p *ContestPreference) Matches(c *Contest) bool {
	if p.MinDurationMinutes > 0 && c.DurationMinutes < p.MinDurationMinutes {
		return false
	}

	if p.MaxDurationMinutes > 0 && c.DurationMinutes > p.MaxDurationMinutes {
		return false
	}

	allowed := p.AllowedTypes(c.Platform)
	if len(allowed) == 0 {
		return true
	}

	for _, t := range allowed {
		if c.ContestType == t {
			return true
		}
	}
	return false
}
