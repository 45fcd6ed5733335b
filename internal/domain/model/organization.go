package model

import (
	"time"
)

// Organization represents an organization. AdminID is fixed to the creating
// user for the organization's lifetime; there is no re-assignment operation.
type Organization struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"organization_id"`
	Name        string    `gorm:"size:250;not null" json:"organization_name"`
	Description string    `json:"description"`
	AdminID     int64     `gorm:"not null;index" json:"admin_id"`
	Website     string    `gorm:"size:250" json:"website"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}
