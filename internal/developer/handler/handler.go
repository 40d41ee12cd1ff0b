// Package handler provides HTTP handlers for developer endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/middleware"
)

// Handler handles HTTP requests for developer endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new developer handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetMetrics handles GET /api/developers/:username/metrics request.
// @Summary Get pull request metrics of a developer
// @Tags Developers
// @Produce json
// @Param username path string true "Developer login"
// @Success 200 {object} model.DeveloperMetrics
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/developers/{username}/metrics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMetrics(c *gin.Context) {
	resp, err := h.service.GetMetrics(c.Request.Context(), middleware.ProviderToken(c), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles GET /api/developers?q= request.
// @Summary Search developers
// @Tags Developers
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} model.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/developers [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Search(c *gin.Context) {
	resp, err := h.service.SearchDevelopers(c.Request.Context(), middleware.ProviderToken(c), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUsernameRequired),
		errors.Is(err, model.ErrInvalidUsername),
		errors.Is(err, model.ErrQueryRequired):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, github.ErrMissingToken):
		errorResponse(c, "UNAUTHORIZED", "sign in required", http.StatusUnauthorized)
	case github.IsUnauthorized(err):
		h.logger.Warnw("GitHub rejected the provider token", "error", err)
		errorResponse(c, "UNAUTHORIZED", "GitHub token rejected, sign in again", http.StatusUnauthorized)
	default:
		h.logger.Errorw("developer request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
