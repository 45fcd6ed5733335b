package model

import (
	"database/sql/driver"
	"time"
)

// CupsPerLevel is the lifetime cup count required per user level.
const CupsPerLevel = 500

// Role represents a user's role within their organization.
type Role string

const (
	RoleUser    Role = "User"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// Scan implements sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// User represents a registered user. The role is meaningful only relative to
// OrganizationID; a user without an organization is implicitly RoleUser.
type User struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Email           string     `gorm:"size:250;not null;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"size:250;not null" json:"-"`
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100;not null" json:"last_name"`
	Patronymic      string     `gorm:"size:100;default:''" json:"patronymic"`
	ProfileImage    string     `gorm:"size:500" json:"profile_image"`
	OrganizationID  *int64     `gorm:"index" json:"organization_id,omitempty"`
	Role            Role       `gorm:"size:20;not null;default:'User'" json:"role"`
	FullCupCount    int        `gorm:"not null;default:0" json:"full_cup_count"`
	NowCupCount     int        `gorm:"not null;default:0" json:"now_cup_count"`
	PurposeCupCount int        `gorm:"not null;default:0" json:"purpose_cup_count"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// ApplyAward credits amount cups to both counters and resets the current
// progress when a positive goal is reached. Cups above the goal are
// discarded, not carried into the next cycle. Returns true when the goal
// reset fired.
func (u *User) ApplyAward(amount int) bool {
	u.FullCupCount += amount
	u.NowCupCount += amount

	if u.PurposeCupCount > 0 && u.NowCupCount >= u.PurposeCupCount {
		u.NowCupCount = 0
		return true
	}
	return false
}

// Level derives the display level from the lifetime cup count.
func (u *User) Level() int {
	return u.FullCupCount / CupsPerLevel
}
