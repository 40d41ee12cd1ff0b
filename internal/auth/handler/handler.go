// Package handler provides HTTP handlers for the sign-in flow.
package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authModel "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
)

// Handler handles HTTP requests for auth endpoints.
type Handler struct {
	service service.Service
	session config.SessionConfig
	oauth   config.OAuthConfig
	logger  *zap.SugaredLogger
}

// New creates a new auth handler instance.
func New(svc service.Service, sessionCfg config.SessionConfig, oauthCfg config.OAuthConfig, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: svc,
		session: sessionCfg,
		oauth:   oauthCfg,
		logger:  logger,
	}
}

// Login handles GET /auth/login by redirecting to the broker.
func (h *Handler) Login(c *gin.Context) {
	sid := h.ensureSession(c)

	redirect, err := h.service.Login(c.Request.Context(), sid)
	if err != nil {
		h.logger.Errorw("error starting sign-in", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "could not start sign-in", http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, redirect)
}

// Callback handles GET /auth/callback, the broker redirect target.
// The browser is always redirected to a URL without the code.
func (h *Handler) Callback(c *gin.Context) {
	sid := h.ensureSession(c)

	result := h.service.HandleCallback(c.Request.Context(), sid, c.Request.URL)

	target := h.oauth.LoginPath
	if result.State == authModel.StateAuthenticated {
		target = h.oauth.PostLoginPath
	}
	c.Redirect(http.StatusFound, target)
}

// Exchange handles POST /auth/exchange for front ends that receive the
// redirect themselves and forward the URL they landed on.
func (h *Handler) Exchange(c *gin.Context) {
	var req authModel.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "url is required", http.StatusBadRequest)
		return
	}

	callbackURL, err := url.Parse(req.URL)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", authModel.ErrInvalidCallbackURL.Error(), http.StatusBadRequest)
		return
	}

	sid := h.ensureSession(c)
	c.JSON(http.StatusOK, h.service.HandleCallback(c.Request.Context(), sid, callbackURL))
}

// Session handles GET /auth/session.
func (h *Handler) Session(c *gin.Context) {
	status, err := h.service.Hydrate(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.logger.Errorw("error hydrating session", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	redirect, err := h.service.Logout(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.logger.Errorw("error logging out", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.clearCookie(c)
	c.JSON(http.StatusOK, authModel.LogoutResponse{Redirect: redirect})
}
