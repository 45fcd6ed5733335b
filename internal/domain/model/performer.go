package model

import (
	"time"
)

// Performer assigns a user to carry out a task. The task's creator is not
// automatically a performer.
type Performer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    int64     `gorm:"not null;uniqueIndex:idx_performers_task_user" json:"task_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_performers_task_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Performer) TableName() string {
	return "performers"
}
