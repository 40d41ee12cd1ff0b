// Package handler provides HTTP handlers for pull request endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/middleware"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/service"
)

// Handler handles HTTP requests for pull request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new pull request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// List handles GET /api/pullrequests request.
// @Summary List pull requests involving the signed-in user
// @Tags PullRequests
// @Produce json
// @Param q query string false "Extra search qualifiers"
// @Success 200 {object} model.ListResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/pullrequests [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), middleware.ProviderToken(c), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Timeline handles GET /api/pullrequests/:owner/:repo/:number/timeline request.
// @Summary Get the timeline of a pull request
// @Tags PullRequests
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param number path int true "Pull request number"
// @Success 200 {object} model.TimelineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/pullrequests/{owner}/{repo}/{number}/timeline [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Timeline(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "pull request number must be an integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Timeline(c.Request.Context(), middleware.ProviderToken(c), c.Param("owner"), c.Param("repo"), number)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidPullRequestRef):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrPullRequestNotFound):
		errorResponse(c, "NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, github.ErrMissingToken):
		errorResponse(c, "UNAUTHORIZED", "sign in required", http.StatusUnauthorized)
	case github.IsUnauthorized(err):
		h.logger.Warnw("GitHub rejected the provider token", "error", err)
		errorResponse(c, "UNAUTHORIZED", "GitHub token rejected, sign in again", http.StatusUnauthorized)
	default:
		h.logger.Errorw("pull request request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
