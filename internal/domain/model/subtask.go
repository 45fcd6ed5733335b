package model

import (
	"database/sql/driver"
	"time"
)

// SubtaskStatus represents the state of a subtask.
type SubtaskStatus string

const (
	SubtaskStatusPending   SubtaskStatus = "pending"
	SubtaskStatusCompleted SubtaskStatus = "completed"
)

// Scan implements sql.Scanner interface
func (s *SubtaskStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubtaskStatus(v)
	case []byte:
		*s = SubtaskStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubtaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Subtask is a checklist entry of a task. Its status is mutable only while
// the parent task is in progress.
type Subtask struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"subtask_id"`
	TaskID      int64         `gorm:"not null;index" json:"task_id"`
	Title       string        `gorm:"size:250;not null" json:"title"`
	Description string        `json:"description"`
	Status      SubtaskStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subtask) TableName() string {
	return "subtasks"
}
