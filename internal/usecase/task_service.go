package usecase

import (
	"context"
	"time"

	"cups-server/internal/domain/model"
	"cups-server/internal/domain/provider"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
)

// SubtaskInput describes a subtask created together with its task.
type SubtaskInput struct {
	Title       string
	Description string
}

// ImageInput carries a decoded image payload to be uploaded to blob storage.
type ImageInput struct {
	Data        []byte
	ContentType string
}

// CreateTaskInput collects everything a task is created with. All pieces are
// inserted in one transaction.
type CreateTaskInput struct {
	CreatorID      int64
	OrganizationID int64
	Title          string
	Description    string
	PerformerIDs   []int64
	Subtasks       []SubtaskInput
	StartDate      time.Time
	FinishDate     time.Time
	RewardPoints   int
	Images         []ImageInput
}

// TaskService owns the task state machine and orchestrates subtask gating,
// reward distribution and chat provisioning inside single transactions.
type TaskService struct {
	taskRepo      domainRepo.TaskRepository
	subtaskRepo   domainRepo.SubtaskRepository
	performerRepo domainRepo.PerformerRepository
	userRepo      domainRepo.UserRepository
	transactor    domainRepo.Transactor
	subtaskSvc    *SubtaskService
	rewardSvc     *RewardService
	storage       provider.BlobStorage
	chats         provider.ChatProvisioner
	logger        *zap.Logger
}

// NewTaskService creates a new task service instance
func NewTaskService(
	taskRepo domainRepo.TaskRepository,
	subtaskRepo domainRepo.SubtaskRepository,
	performerRepo domainRepo.PerformerRepository,
	userRepo domainRepo.UserRepository,
	transactor domainRepo.Transactor,
	subtaskSvc *SubtaskService,
	rewardSvc *RewardService,
	storage provider.BlobStorage,
	chats provider.ChatProvisioner,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		subtaskRepo:   subtaskRepo,
		performerRepo: performerRepo,
		userRepo:      userRepo,
		transactor:    transactor,
		subtaskSvc:    subtaskSvc,
		rewardSvc:     rewardSvc,
		storage:       storage,
		chats:         chats,
		logger:        logger,
	}
}

func (s *TaskService) validateCreateInput(in CreateTaskInput) error {
	switch {
	case in.Title == "":
		return errors.Validation("title is required")
	case len(in.PerformerIDs) == 0:
		return errors.Validation("at least one performer is required")
	case len(in.Subtasks) == 0:
		return errors.Validation("at least one subtask is required")
	case in.RewardPoints < 0:
		return errors.Validation("reward points must be non-negative")
	case in.FinishDate.Before(in.StartDate):
		return errors.Validation("finish date must not precede start date")
	}
	for _, st := range in.Subtasks {
		if st.Title == "" {
			return errors.Validation("subtask title is required")
		}
	}
	return nil
}

// CreateTask inserts the task, its subtasks and performer rows, provisions a
// chat with the performers and the creator as members, and uploads attached
// images, all atomically. A failed image upload aborts the whole creation.
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if err := s.validateCreateInput(in); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.GetByID(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator.OrganizationID == nil || *creator.OrganizationID != in.OrganizationID {
		return nil, errors.Forbidden("creator does not belong to the organization")
	}

	performers, err := s.userRepo.ListByIDs(ctx, in.PerformerIDs)
	if err != nil {
		return nil, err
	}
	if len(performers) != len(uniqueIDs(in.PerformerIDs)) {
		return nil, errors.NotFound("one or more performers not found")
	}
	for _, p := range performers {
		if p.OrganizationID == nil || *p.OrganizationID != in.OrganizationID {
			return nil, errors.Validation("all performers must belong to the organization")
		}
	}

	task := &model.Task{
		OrganizationID: in.OrganizationID,
		CreatorID:      in.CreatorID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         model.TaskStatusOpen,
		StartDate:      in.StartDate,
		FinishDate:     in.FinishDate,
		RewardPoints:   in.RewardPoints,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return err
		}

		subtasks := make([]*model.Subtask, 0, len(in.Subtasks))
		for _, st := range in.Subtasks {
			subtasks = append(subtasks, &model.Subtask{
				TaskID:      task.ID,
				Title:       st.Title,
				Description: st.Description,
				Status:      model.SubtaskStatusPending,
			})
		}
		if err := s.subtaskRepo.CreateBatch(ctx, subtasks); err != nil {
			return err
		}

		performerRows := make([]*model.Performer, 0, len(in.PerformerIDs))
		for _, userID := range uniqueIDs(in.PerformerIDs) {
			performerRows = append(performerRows, &model.Performer{TaskID: task.ID, UserID: userID})
		}
		if err := s.performerRepo.CreateBatch(ctx, performerRows); err != nil {
			return err
		}

		memberIDs := uniqueIDs(append(append([]int64{}, in.PerformerIDs...), in.CreatorID))
		chatID, err := s.chats.CreateChat(ctx, task.ID, memberIDs)
		if err != nil {
			return err
		}
		if err := s.taskRepo.SetChat(ctx, task.ID, chatID); err != nil {
			return err
		}
		task.ChatID = &chatID

		if len(in.Images) > 0 {
			urls := make([]string, 0, len(in.Images))
			for _, img := range in.Images {
				url, err := s.storage.Upload(ctx, img.Data, img.ContentType, "tasks")
				if err != nil {
					return err
				}
				urls = append(urls, url)
			}
			if err := s.taskRepo.AttachImages(ctx, task.ID, urls); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task created",
		zap.Int64("task_id", task.ID),
		zap.Int64("organization_id", in.OrganizationID),
		zap.Int64("creator_id", in.CreatorID),
		zap.Int("performers", len(in.PerformerIDs)),
		zap.Int("subtasks", len(in.Subtasks)),
		zap.Int("reward_points", in.RewardPoints))

	return s.taskRepo.GetByID(ctx, task.ID)
}

// StartTask moves an open task to in progress. Only a performer of the task
// may start it; the row lock serializes concurrent starts so the second one
// fails the status check instead of repeating side effects.
func (s *TaskService) StartTask(ctx context.Context, taskID, callerID int64) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != model.TaskStatusOpen {
			return errors.InvalidState("task can only be started from the open state")
		}

		isPerformer, err := s.performerRepo.Exists(ctx, taskID, callerID)
		if err != nil {
			return err
		}
		if !isPerformer {
			return errors.Forbidden("only a performer can start the task")
		}

		if err := s.taskRepo.SetStatus(ctx, taskID, model.TaskStatusInProgress); err != nil {
			return err
		}

		s.logger.Info("Task started", zap.Int64("task_id", taskID), zap.Int64("caller_id", callerID))
		return nil
	})
}

// CompleteTask finishes an in-progress task once every subtask is completed.
// Reward distribution, the status change and chat deactivation commit
// together or not at all.
func (s *TaskService) CompleteTask(ctx context.Context, taskID, callerID int64) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != model.TaskStatusInProgress {
			return errors.InvalidState("task can only be completed from the in_progress state")
		}

		allDone, err := s.subtaskSvc.AllComplete(ctx, taskID)
		if err != nil {
			return err
		}
		if !allDone {
			return errors.PreconditionFailed("subtasks incomplete")
		}

		performers, err := s.performerRepo.ListByTask(ctx, taskID)
		if err != nil {
			return err
		}
		for _, p := range performers {
			if _, err := s.rewardSvc.Award(ctx, p.UserID, task.RewardPoints); err != nil {
				return err
			}
		}

		if err := s.taskRepo.SetStatus(ctx, taskID, model.TaskStatusCompleted); err != nil {
			return err
		}

		if task.ChatID != nil {
			if err := s.chats.DeactivateChat(ctx, *task.ChatID); err != nil {
				return err
			}
		}

		s.logger.Info("Task completed",
			zap.Int64("task_id", taskID),
			zap.Int64("caller_id", callerID),
			zap.Int("performers_rewarded", len(performers)),
			zap.Int("reward_points", task.RewardPoints))
		return nil
	})
}

// DeleteTask removes the task with its subtasks, performer rows, images and
// chat in one transaction. Only the creator may delete, and only while the
// task is not completed.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID int64) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task.CreatorID != callerID {
			return errors.Forbidden("only the creator can delete the task")
		}
		if task.Status == model.TaskStatusCompleted {
			return errors.InvalidState("completed tasks cannot be deleted")
		}

		return s.removeTaskCascade(ctx, task)
	})
}

// removeTaskCascade deletes a task's dependent rows and the task itself. The
// caller is responsible for holding the task row lock and for policy checks.
func (s *TaskService) removeTaskCascade(ctx context.Context, task *model.Task) error {
	if err := s.subtaskRepo.DeleteByTask(ctx, task.ID); err != nil {
		return err
	}
	if err := s.performerRepo.DeleteByTask(ctx, task.ID); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteImagesByTask(ctx, task.ID); err != nil {
		return err
	}
	if task.ChatID != nil {
		if err := s.chats.RemoveChat(ctx, *task.ChatID); err != nil {
			return err
		}
	}
	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.logger.Info("Task deleted", zap.Int64("task_id", task.ID))
	return nil
}

// DeleteTasksByOrganization removes every task of an organization with the
// full cascade. Used by organization deletion; joins the caller's transaction.
func (s *TaskService) DeleteTasksByOrganization(ctx context.Context, orgID int64) error {
	ids, err := s.taskRepo.ListIDsByOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		task, err := s.taskRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.removeTaskCascade(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// GetTask returns a task with its subtasks, performers, images and creator.
func (s *TaskService) GetTask(ctx context.Context, taskID int64) (*model.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// ListTasksForUser returns tasks the user created or performs within the
// period window.
func (s *TaskService) ListTasksForUser(ctx context.Context, userID int64, filter PeriodFilter) ([]*model.Task, error) {
	from, to, err := filter.Window(time.Now())
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListForUser(ctx, userID, from, to)
}

// ListAllTasks returns all tasks within the period window.
func (s *TaskService) ListAllTasks(ctx context.Context, filter PeriodFilter) ([]*model.Task, error) {
	from, to, err := filter.Window(time.Now())
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListAll(ctx, from, to)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
