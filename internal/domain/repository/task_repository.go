package repository

import (
	"context"
	"time"

	"cups-server/internal/domain/model"
)

// TaskRepository defines the interface for task storage operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error

	// GetByID loads a task with its subtasks, performers, images and creator.
	GetByID(ctx context.Context, id int64) (*model.Task, error)

	// GetForUpdate loads the bare task row under a SELECT ... FOR UPDATE lock
	// so concurrent lifecycle transitions on the same task serialize.
	GetForUpdate(ctx context.Context, id int64) (*model.Task, error)

	SetStatus(ctx context.Context, id int64, status model.TaskStatus) error

	SetChat(ctx context.Context, id int64, chatID int64) error

	AttachImages(ctx context.Context, taskID int64, imageURLs []string) error

	Delete(ctx context.Context, id int64) error

	DeleteImagesByTask(ctx context.Context, taskID int64) error

	// ListForUser returns tasks the user created or performs, whose
	// [start_date, finish_date] range overlaps the given window. Nil bounds
	// leave that side of the window open.
	ListForUser(ctx context.Context, userID int64, from, to *time.Time) ([]*model.Task, error)

	// ListAll returns all tasks overlapping the window.
	ListAll(ctx context.Context, from, to *time.Time) ([]*model.Task, error)

	ListIDsByOrganization(ctx context.Context, orgID int64) ([]int64, error)
}

// SubtaskRepository defines the interface for subtask storage operations.
type SubtaskRepository interface {
	CreateBatch(ctx context.Context, subtasks []*model.Subtask) error

	GetByID(ctx context.Context, taskID, subtaskID int64) (*model.Subtask, error)

	ListByTask(ctx context.Context, taskID int64) ([]*model.Subtask, error)

	SetStatus(ctx context.Context, subtaskID int64, status model.SubtaskStatus) error

	DeleteByTask(ctx context.Context, taskID int64) error
}

// PerformerRepository defines the interface for performer storage operations.
type PerformerRepository interface {
	CreateBatch(ctx context.Context, performers []*model.Performer) error

	ListByTask(ctx context.Context, taskID int64) ([]*model.Performer, error)

	Exists(ctx context.Context, taskID, userID int64) (bool, error)

	DeleteByTask(ctx context.Context, taskID int64) error
}
