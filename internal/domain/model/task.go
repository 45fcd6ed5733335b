package model

import (
	"database/sql/driver"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
// Transitions are strictly forward: open -> in_progress -> completed.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Scan implements sql.Scanner interface
func (s *TaskStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = TaskStatus(v)
	case []byte:
		*s = TaskStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s TaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Task represents an assignable unit of work with subtasks, performers and a
// provisioned chat. RewardPoints is fixed at creation.
type Task struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"task_id"`
	OrganizationID int64      `gorm:"not null;index" json:"organization_id"`
	CreatorID      int64      `gorm:"not null;index" json:"creator_id"`
	Title          string     `gorm:"size:250;not null" json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `gorm:"size:20;not null;default:'open'" json:"status"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	FinishDate     time.Time  `gorm:"not null" json:"finish_date"`
	RewardPoints   int        `gorm:"not null;default:0" json:"reward_points"`
	ChatID         *int64     `gorm:"index" json:"chat_id,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Subtasks   []Subtask   `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	Performers []Performer `gorm:"foreignKey:TaskID" json:"performers,omitempty"`
	Images     []TaskImage `gorm:"foreignKey:TaskID" json:"images,omitempty"`
	Creator    *User       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}
