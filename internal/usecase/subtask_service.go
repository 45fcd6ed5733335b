package usecase

import (
	"context"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
)

// SubtaskService enforces subtask status transitions and the all-complete
// predicate gating task completion.
type SubtaskService struct {
	taskRepo    domainRepo.TaskRepository
	subtaskRepo domainRepo.SubtaskRepository
	transactor  domainRepo.Transactor
	logger      *zap.Logger
}

// NewSubtaskService creates a new subtask service instance
func NewSubtaskService(
	taskRepo domainRepo.TaskRepository,
	subtaskRepo domainRepo.SubtaskRepository,
	transactor domainRepo.Transactor,
	logger *zap.Logger,
) *SubtaskService {
	return &SubtaskService{
		taskRepo:    taskRepo,
		subtaskRepo: subtaskRepo,
		transactor:  transactor,
		logger:      logger,
	}
}

// ToggleSubtask sets a subtask's status. The parent task must be in progress.
// Repeated calls with the same value are no-ops. The whole operation runs in
// one transaction so the task row lock covers both the status check and the
// write; a concurrent task completion cannot slip between them.
func (s *SubtaskService) ToggleSubtask(ctx context.Context, taskID, subtaskID int64, status model.SubtaskStatus) (*model.Subtask, error) {
	if status != model.SubtaskStatusPending && status != model.SubtaskStatusCompleted {
		return nil, errors.Validation("status must be 'pending' or 'completed'")
	}

	var subtask *model.Subtask
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != model.TaskStatusInProgress {
			return errors.InvalidState("subtasks can only be changed while the task is in progress")
		}

		subtask, err = s.subtaskRepo.GetByID(ctx, taskID, subtaskID)
		if err != nil {
			return err
		}

		if subtask.Status == status {
			return nil
		}

		if err := s.subtaskRepo.SetStatus(ctx, subtaskID, status); err != nil {
			return err
		}
		subtask.Status = status

		s.logger.Info("Subtask status changed",
			zap.Int64("task_id", taskID),
			zap.Int64("subtask_id", subtaskID),
			zap.String("status", string(status)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subtask, nil
}

// AllComplete reports whether the task has at least one subtask and every
// subtask is completed.
func (s *SubtaskService) AllComplete(ctx context.Context, taskID int64) (bool, error) {
	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return false, err
	}

	if len(subtasks) == 0 {
		return false, nil
	}
	for _, st := range subtasks {
		if st.Status != model.SubtaskStatusCompleted {
			return false, nil
		}
	}
	return true, nil
}
