package provider

import (
	"context"
)

// BlobStorage uploads binary payloads and returns durable URLs. Only the
// returned URL is ever persisted.
type BlobStorage interface {
	// Upload stores data under the given folder and returns its public URL.
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}

// ChatProvisioner creates and retires the chat record attached to a task.
// Message content and delivery are outside this service; implementations
// must join the caller's transaction when one is active in ctx.
type ChatProvisioner interface {
	// CreateChat provisions a chat for the task with the given members and
	// returns its ID.
	CreateChat(ctx context.Context, taskID int64, memberIDs []int64) (int64, error)

	// DeactivateChat marks the chat inactive. Idempotent.
	DeactivateChat(ctx context.Context, chatID int64) error

	// RemoveChat deletes the chat record and its membership rows.
	RemoveChat(ctx context.Context, chatID int64) error
}
