package models

const (
	NotificationTiming1Hour  = "1hour"
	NotificationTiming3Hours = "3hours"
	NotificationTiming1Day   = "1day"
)

// NotificationPreference holds one row per user. A missing row means the
// defaults below; repositories create it lazily on first access.
type NotificationPreference struct {
	BaseModel

	UserID             uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User               User   `gorm:"foreignKey:UserID" json:"-"`
	EmailNotifications bool   `gorm:"default:true" json:"email_notifications"`
	NotificationTiming string `gorm:"default:'1hour'" json:"notification_timing"`
	NotifyCodeforces   bool   `gorm:"default:true" json:"notify_codeforces"`
	NotifyCodechef     bool   `gorm:"default:true" json:"notify_codechef"`
	NotifyLeetcode     bool   `gorm:"default:true" json:"notify_leetcode"`
}

func (*NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultNotificationPreference returns the row used when a user has never
// touched their settings: everything enabled, one hour before start.
func DefaultNotificationPreference(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:             userID,
		EmailNotifications: true,
		NotificationTiming: NotificationTiming1Hour,
		NotifyCodeforces:   true,
		NotifyCodechef:     true,
		NotifyLeetcode:     true,
	}
}

// PlatformEnabled maps a platform name to its notify flag. Unknown platforms
// are disabled rather than guessed at.
func (p *NotificationPreference) PlatformEnabled(platform string) bool {
	switch platform {
	case PlatformCodeforces:
		return p.NotifyCodeforces
	case PlatformCodechef:
		return p.NotifyCodechef
	case PlatformLeetcode:
		return p.NotifyLeetcode
	}
	return false
}

// Timing returns the configured timing, substituting the default for
// malformed or missing values.
func (p *NotificationPreference) Timing() string {
	switch p.NotificationTiming {
	case NotificationTiming1Hour, NotificationTiming3Hours, NotificationTiming1Day:
		return p.NotificationTiming
	}
	return NotificationTiming1Hour
}
