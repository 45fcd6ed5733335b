package model

import (
	"time"
)

// Chat is the conversation record provisioned for a task. Message content
// and delivery are handled elsewhere; this service only creates, deactivates
// and removes the record alongside the task lifecycle.
type Chat struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"chat_id"`
	TaskID    int64     `gorm:"not null;index" json:"task_id"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Members []ChatMember `gorm:"foreignKey:ChatID" json:"members,omitempty"`
}

// TableName specifies the table name for GORM
func (Chat) TableName() string {
	return "chats"
}

// ChatMember links a user to a chat.
type ChatMember struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    int64     `gorm:"not null;uniqueIndex:idx_chat_members_chat_user" json:"chat_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_chat_members_chat_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ChatMember) TableName() string {
	return "chat_members"
}
