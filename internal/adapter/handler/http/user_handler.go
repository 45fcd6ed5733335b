package http

import (
	"net/http"

	"cups-server/internal/middleware/auth"
	"cups-server/internal/usecase"
	errs "cups-server/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler handles profile and reward-related HTTP requests
type UserHandler struct {
	userService   *usecase.UserService
	rewardService *usecase.RewardService
	logger        *zap.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *usecase.UserService, rewardService *usecase.RewardService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:   userService,
		rewardService: rewardService,
		logger:        logger,
	}
}

type updateProfileRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Patronymic      string `json:"patronymic"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type profileImageRequest struct {
	Image imagePayload `json:"image" validate:"required"`
}

type setGoalRequest struct {
	PurposeCupCount int `json:"purpose_cup_count" validate:"required,gt=0"`
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/:id
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), callerID, userID, usecase.UpdateProfileInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Patronymic:      req.Patronymic,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfileImage handles PUT /api/users/:id/profile-image
func (h *UserHandler) UpdateProfileImage(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req profileImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	image, err := req.Image.decode()
	if err != nil {
		return errs.ToHTTPError(err)
	}

	url, err := h.userService.UpdateProfileImage(c.Request().Context(), callerID, userID, image)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile_image": url})
}

// SetGoal handles PUT /api/users/:id/goal
func (h *UserHandler) SetGoal(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	if callerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "users can only set their own goal"})
	}

	var req setGoalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.rewardService.SetGoal(c.Request().Context(), userID, req.PurposeCupCount); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"purpose_cup_count": req.PurposeCupCount})
}

// GetLevel handles GET /api/users/:id/level
func (h *UserHandler) GetLevel(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	level, err := h.rewardService.Level(c.Request().Context(), userID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"level": level})
}
