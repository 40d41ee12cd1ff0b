// Package handler provides HTTP handlers for repository insights endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/middleware"
)

// Handler handles HTTP requests for repository insights endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new insights handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetInsights handles GET /api/repos/:owner/:repo/insights request.
// @Summary Get delivery and health insights of a repository
// @Tags Insights
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} model.RepoInsights
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/repos/{owner}/{repo}/insights [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetInsights(c *gin.Context) {
	resp, err := h.service.GetInsights(c.Request.Context(), middleware.ProviderToken(c), c.Param("owner"), c.Param("repo"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRepositoryRequired):
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		case errors.Is(err, github.ErrMissingToken):
			errorResponse(c, "UNAUTHORIZED", "sign in required", http.StatusUnauthorized)
		case github.IsUnauthorized(err):
			h.logger.Warnw("GitHub rejected the provider token", "error", err)
			errorResponse(c, "UNAUTHORIZED", "GitHub token rejected, sign in again", http.StatusUnauthorized)
		default:
			h.logger.Errorw("error getting repository insights", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
