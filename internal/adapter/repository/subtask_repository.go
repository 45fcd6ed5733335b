package repository

import (
	"context"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// subtaskRepository implements the SubtaskRepository interface
type subtaskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubtaskRepository creates a new subtask repository instance
func NewSubtaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubtaskRepository {
	return &subtaskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subtaskRepository) CreateBatch(ctx context.Context, subtasks []*model.Subtask) error {
	if len(subtasks) == 0 {
		return nil
	}

	if err := conn(ctx, r.db).Create(&subtasks).Error; err != nil {
		r.logger.Error("Failed to create subtasks", zap.Int("count", len(subtasks)), zap.Error(err))
		return errors.Storage("failed to create subtasks", err)
	}
	return nil
}

func (r *subtaskRepository) GetByID(ctx context.Context, taskID, subtaskID int64) (*model.Subtask, error) {
	var subtask model.Subtask

	err := conn(ctx, r.db).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		First(&subtask).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("subtask not found")
		}
		r.logger.Error("Failed to get subtask",
			zap.Int64("task_id", taskID),
			zap.Int64("subtask_id", subtaskID),
			zap.Error(err))
		return nil, errors.Storage("failed to get subtask", err)
	}

	return &subtask, nil
}

func (r *subtaskRepository) ListByTask(ctx context.Context, taskID int64) ([]*model.Subtask, error) {
	var subtasks []*model.Subtask

	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&subtasks).Error
	if err != nil {
		r.logger.Error("Failed to list subtasks", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, errors.Storage("failed to list subtasks", err)
	}
	return subtasks, nil
}

func (r *subtaskRepository) SetStatus(ctx context.Context, subtaskID int64, status model.SubtaskStatus) error {
	result := conn(ctx, r.db).Model(&model.Subtask{}).
		Where("id = ?", subtaskID).
		Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to set subtask status",
			zap.Int64("subtask_id", subtaskID),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return errors.Storage("failed to set subtask status", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("subtask not found")
	}
	return nil
}

func (r *subtaskRepository) DeleteByTask(ctx context.Context, taskID int64) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.Subtask{}).Error
	if err != nil {
		r.logger.Error("Failed to delete subtasks", zap.Int64("task_id", taskID), zap.Error(err))
		return errors.Storage("failed to delete subtasks", err)
	}
	return nil
}
