package http

import (
	"net/http"

	"cups-server/internal/usecase"
	errs "cups-server/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SearchHandler handles name lookup HTTP requests
type SearchHandler struct {
	searchService *usecase.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler instance
func NewSearchHandler(searchService *usecase.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c echo.Context) error {
	result, err := h.searchService.Search(c.Request().Context(), c.QueryParam("query"), c.QueryParam("filter"))
	if err != nil {
		return errs.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}
