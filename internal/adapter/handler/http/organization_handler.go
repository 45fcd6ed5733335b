package http

import (
	"net/http"
	"strconv"

	"cups-server/internal/middleware/auth"
	"cups-server/internal/usecase"
	errs "cups-server/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrganizationHandler handles organization and membership HTTP requests
type OrganizationHandler struct {
	orgService *usecase.OrganizationService
	logger     *zap.Logger
}

// NewOrganizationHandler creates a new organization handler instance
func NewOrganizationHandler(orgService *usecase.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		logger:     logger,
	}
}

type createOrganizationRequest struct {
	Name        string `json:"organization_name" validate:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type updateOrganizationRequest struct {
	Name        string `json:"organization_name" validate:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type organizationImageRequest struct {
	Image imagePayload `json:"image" validate:"required"`
}

type toggleManagerRequest struct {
	MakeManager bool `json:"make_manager"`
}

// CreateOrganization handles POST /api/organizations
func (h *OrganizationHandler) CreateOrganization(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	org, err := h.orgService.CreateOrganization(c.Request().Context(), callerID, req.Name, req.Description, req.Website)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, org)
}

// GetOrganization handles GET /api/organizations/:id
func (h *OrganizationHandler) GetOrganization(c echo.Context) error {
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	org, err := h.orgService.GetOrganization(c.Request().Context(), orgID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, org)
}

// UpdateOrganization handles PUT /api/organizations/:id
func (h *OrganizationHandler) UpdateOrganization(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req updateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	org, err := h.orgService.UpdateOrganization(c.Request().Context(), callerID, orgID, req.Name, req.Description, req.Website)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, org)
}

// UpdateImage handles PUT /api/organizations/:id/image
func (h *OrganizationHandler) UpdateImage(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req organizationImageRequest
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

	url, err := h.orgService.UpdateImage(c.Request().Context(), callerID, orgID, image)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"image_url": url})
}

// DeleteOrganization handles DELETE /api/organizations/:id
func (h *OrganizationHandler) DeleteOrganization(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.orgService.DeleteOrganization(c.Request().Context(), callerID, orgID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestJoin handles POST /api/organizations/:id/join
func (h *OrganizationHandler) RequestJoin(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	request, err := h.orgService.RequestJoin(c.Request().Context(), callerID, orgID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, request)
}

// CheckRequest handles GET /api/organizations/:id/check-request/:userId
func (h *OrganizationHandler) CheckRequest(c echo.Context) error {
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	pending, err := h.orgService.HasPendingRequest(c.Request().Context(), userID, orgID)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"has_pending_request": pending})
}

// AcceptRequest handles POST /api/organizations/requests/:requestId/accept
func (h *OrganizationHandler) AcceptRequest(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.orgService.AcceptRequest(c.Request().Context(), callerID, requestID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "accepted"})
}

// RejectRequest handles POST /api/organizations/requests/:requestId/reject
func (h *OrganizationHandler) RejectRequest(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.orgService.RejectRequest(c.Request().Context(), callerID, requestID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "rejected"})
}

// ListRequests handles GET /api/organizations/:id/requests
func (h *OrganizationHandler) ListRequests(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	requests, err := h.orgService.ListPendingRequests(c.Request().Context(), callerID, orgID, c.QueryParam("name"))
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// ListParticipants handles GET /api/organizations/:id/participants
func (h *OrganizationHandler) ListParticipants(c echo.Context) error {
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	users, err := h.orgService.ListParticipants(c.Request().Context(), orgID, c.QueryParam("name"))
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// SearchMembers handles GET /api/organizations/:id/members/search
func (h *OrganizationHandler) SearchMembers(c echo.Context) error {
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit parameter"})
		}
		limit = parsed
	}

	users, err := h.orgService.SearchMembers(c.Request().Context(), orgID, c.QueryParam("query"), limit)
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Leave handles POST /api/organizations/:id/leave
func (h *OrganizationHandler) Leave(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.orgService.Leave(c.Request().Context(), callerID, orgID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "left"})
}

// ToggleManager handles PUT /api/organizations/:id/members/:userId/toggle-manager
func (h *OrganizationHandler) ToggleManager(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	var req toggleManagerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := h.orgService.ToggleManager(c.Request().Context(), callerID, orgID, userID, req.MakeManager); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
}

// RemoveUser handles DELETE /api/organizations/:id/members/:userId
func (h *OrganizationHandler) RemoveUser(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orgID, err := pathID(c, "id")
	if err != nil {
		return errs.ToHTTPError(err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return errs.ToHTTPError(err)
	}

	if err := h.orgService.RemoveUser(c.Request().Context(), callerID, orgID, userID); err != nil {
		return errs.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
