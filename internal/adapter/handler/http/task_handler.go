package http

import (
	"net/http"
	"time"

	"cups-server/internal/domain/model"
	"cups-server/internal/middleware/auth"
	"cups-server/internal/usecase"
	errs "cups-server/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TaskHandler handles task lifecycle HTTP requests
type TaskHandler struct {
	taskService    *usecase.TaskService
	subtaskService *usecase.SubtaskService
	logger         *zap.Logger
}

// NewTaskHandler creates a new task handler instance
func NewTaskHandler(taskService *usecase.TaskService, subtaskService *usecase.SubtaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		subtaskService: subtaskService,
		logger:         logger,
	}
}

type subtaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type createTaskRequest struct {
	OrganizationID int64            `json:"organization_id" validate:"required,gt=0"`
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description"`
	PerformerIDs   []int64          `json:"performer_ids" validate:"required,min=1,dive,gt=0"`
	Subtasks       []subtaskRequest `json:"subtasks" validate:"required,min=1,dive"`
	StartDate      time.Time        `json:"start_date" validate:"required"`
	FinishDate     time.Time        `json:"finish_date" validate:"required"`
	RewardPoints   int              `json:"reward_points" validate:"gte=0"`
	Images         []imagePayload   `json:"images" validate:"dive"`
}

type toggleSubtaskRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	images, err := decodeImages(req.Images)
	if err != nil {
		return errs.ToHTTPError(err)
	}

	subtasks := make([]usecase.SubtaskInput, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		subtasks = append(subtasks, usecase.SubtaskInput{Title: st.Title, Description: st.Description})
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), usecase.CreateTaskInput{
		CreatorID:      callerID,
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		PerformerIDs:   req.PerformerIDs,
		Subtasks:       subtasks,
		StartDate:      req.StartDate,
		FinishDate:     req.FinishDate,
		RewardPoints:   req.RewardPoints,
		Images:         images,
	})
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), taskID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// periodFilterFromQuery builds a PeriodFilter from query parameters. An
// explicit range takes precedence over the named period.
func periodFilterFromQuery(c echo.Context) (usecase.PeriodFilter, error) {
	filter := usecase.PeriodFilter{Period: c.QueryParam("period")}

	if startStr := c.QueryParam("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return filter, errs.Validation("start_date must be in YYYY-MM-DD format")
		}
		filter.Start = &start
	}
	if finishStr := c.QueryParam("finish_date"); finishStr != "" {
		finish, err := time.Parse("2006-01-02", finishStr)
		if err != nil {
			return filter, errs.Validation("finish_date must be in YYYY-MM-DD format")
		}
		filter.Finish = &finish
	}
	return filter, nil
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	filter, err := periodFilterFromQuery(c)
	if err != nil {
		return errs.ToHTTPError(err)
	}

	tasks, err := h.taskService.ListTasksForUser(c.Request().Context(), callerID, filter)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListAllTasks handles GET /api/tasks/all
func (h *TaskHandler) ListAllTasks(c echo.Context) error {
	filter, err := periodFilterFromQuery(c)
	if err != nil {
		return errs.ToHTTPError(err)
	}

	tasks, err := h.taskService.ListAllTasks(c.Request().Context(), filter)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// StartTask handles POST /api/tasks/:id/start
func (h *TaskHandler) StartTask(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.taskService.StartTask(c.Request().Context(), taskID, callerID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": string(model.TaskStatusInProgress)})
}

// CompleteTask handles POST /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.taskService.CompleteTask(c.Request().Context(), taskID, callerID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": string(model.TaskStatusCompleted)})
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), taskID, callerID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleSubtask handles PUT /api/tasks/:id/subtasks/:subtaskId
func (h *TaskHandler) ToggleSubtask(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	subtaskID, err := pathID(c, "subtaskId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req toggleSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	subtask, err := h.subtaskService.ToggleSubtask(c.Request().Context(), taskID, subtaskID, model.SubtaskStatus(req.Status))
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, subtask)
}

// CompleteSubtask handles POST /api/tasks/:id/subtasks/:subtaskId/complete.
// Deprecated: kept for older clients; PUT with a status body replaces it.
func (h *TaskHandler) CompleteSubtask(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	subtaskID, err := pathID(c, "subtaskId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	subtask, err := h.subtaskService.ToggleSubtask(c.Request().Context(), taskID, subtaskID, model.SubtaskStatusCompleted)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, subtask)
}
