package model

import (
	"time"
)

// TaskImage stores the durable URL of an image attached to a task. Only the
// URL returned by blob storage is persisted.
type TaskImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    int64     `gorm:"not null;index" json:"task_id"`
	ImageURL  string    `gorm:"size:500;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (TaskImage) TableName() string {
	return "task_images"
}
