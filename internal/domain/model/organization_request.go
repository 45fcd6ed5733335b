package model

import (
	"database/sql/driver"
	"time"
)

// RequestStatus represents the state of a membership request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Scan implements sql.Scanner interface
func (s *RequestStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = RequestStatus(v)
	case []byte:
		*s = RequestStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s RequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// OrganizationRequest is a pending ask to join an organization, resolved by
// accept or reject. Repeated pending requests for the same pair are
// tolerated; decisioning only needs existence.
type OrganizationRequest struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"request_id"`
	UserID         int64         `gorm:"not null;index:idx_org_requests_user_org" json:"user_id"`
	OrganizationID int64         `gorm:"not null;index:idx_org_requests_user_org" json:"organization_id"`
	Status         RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (OrganizationRequest) TableName() string {
	return "organization_requests"
}
