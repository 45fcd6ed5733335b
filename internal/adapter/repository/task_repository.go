package repository

import (
	"context"
	"time"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := conn(ctx, r.db).Create(task).Error; err != nil {
		r.logger.Error("Failed to create task", zap.String("title", task.Title), zap.Error(err))
		return errors.Storage("failed to create task", err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task

	err := conn(ctx, r.db).
		Preload("Subtasks").
		Preload("Performers").
		Preload("Performers.User").
		Preload("Images").
		Preload("Creator").
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("task not found")
		}
		r.logger.Error("Failed to get task", zap.Int64("task_id", id), zap.Error(err))
		return nil, errors.Storage("failed to get task", err)
	}

	return &task, nil
}

func (r *taskRepository) GetForUpdate(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task

	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("task not found")
		}
		r.logger.Error("Failed to lock task row", zap.Int64("task_id", id), zap.Error(err))
		return nil, errors.Storage("failed to lock task row", err)
	}

	return &task, nil
}

func (r *taskRepository) SetStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	result := conn(ctx, r.db).Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to set task status",
			zap.Int64("task_id", id),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return errors.Storage("failed to set task status", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("task not found")
	}
	return nil
}

func (r *taskRepository) SetChat(ctx context.Context, id int64, chatID int64) error {
	result := conn(ctx, r.db).Model(&model.Task{}).
		Where("id = ?", id).
		Update("chat_id", chatID)
	if result.Error != nil {
		r.logger.Error("Failed to attach chat to task", zap.Int64("task_id", id), zap.Error(result.Error))
		return errors.Storage("failed to attach chat to task", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("task not found")
	}
	return nil
}

func (r *taskRepository) AttachImages(ctx context.Context, taskID int64, imageURLs []string) error {
	if len(imageURLs) == 0 {
		return nil
	}

	images := make([]*model.TaskImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		images = append(images, &model.TaskImage{TaskID: taskID, ImageURL: url})
	}

	if err := conn(ctx, r.db).Create(&images).Error; err != nil {
		r.logger.Error("Failed to attach task images", zap.Int64("task_id", taskID), zap.Error(err))
		return errors.Storage("failed to attach task images", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&model.Task{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete task", zap.Int64("task_id", id), zap.Error(result.Error))
		return errors.Storage("failed to delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("task not found")
	}
	return nil
}

func (r *taskRepository) DeleteImagesByTask(ctx context.Context, taskID int64) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.TaskImage{}).Error
	if err != nil {
		r.logger.Error("Failed to delete task images", zap.Int64("task_id", taskID), zap.Error(err))
		return errors.Storage("failed to delete task images", err)
	}
	return nil
}

// applyWindow narrows the query to tasks whose [start_date, finish_date]
// range overlaps the requested window.
func applyWindow(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if to != nil {
		query = query.Where("tasks.start_date <= ?", *to)
	}
	if from != nil {
		query = query.Where("tasks.finish_date >= ?", *from)
	}
	return query
}

func (r *taskRepository) ListForUser(ctx context.Context, userID int64, from, to *time.Time) ([]*model.Task, error) {
	query := conn(ctx, r.db).
		Preload("Subtasks").
		Preload("Performers").
		Preload("Performers.User").
		Preload("Images").
		Joins("LEFT JOIN performers ON performers.task_id = tasks.id").
		Where("tasks.creator_id = ? OR performers.user_id = ?", userID, userID).
		Distinct("tasks.*")

	query = applyWindow(query, from, to)

	var tasks []*model.Task
	if err := query.Order("tasks.start_date").Find(&tasks).Error; err != nil {
		r.logger.Error("Failed to list tasks for user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.Storage("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListAll(ctx context.Context, from, to *time.Time) ([]*model.Task, error) {
	query := conn(ctx, r.db).
		Preload("Subtasks").
		Preload("Performers").
		Preload("Performers.User").
		Preload("Images")

	query = applyWindow(query, from, to)

	var tasks []*model.Task
	if err := query.Order("tasks.start_date").Find(&tasks).Error; err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, errors.Storage("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListIDsByOrganization(ctx context.Context, orgID int64) ([]int64, error) {
	var ids []int64

	err := conn(ctx, r.db).Model(&model.Task{}).
		Where("organization_id = ?", orgID).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Error("Failed to list organization task ids", zap.Int64("organization_id", orgID), zap.Error(err))
		return nil, errors.Storage("failed to list organization tasks", err)
	}
	return ids, nil
}
