package models

// ContestReminder records notification intent and state for one user and one
// contest. At most one row exists per (user, contest) pair; Reminded flips
// from false to true when the email is actually dispatched and never back.
type ContestReminder struct {
	BaseModel

	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_contest" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
	ContestID uint    `gorm:"not null;uniqueIndex:idx_user_contest" json:"contest_id"`
	Contest   Contest `gorm:"foreignKey:ContestID" json:"-"`
	Reminded  bool    `gorm:"default:false" json:"reminded"`
}

func (*ContestReminder) TableName() string {
	return "contest_reminders"
}
