package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authModel "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/model"
)

const providerTokenKey = "provider_token"

// TokenSource resolves the provider token stored for a session.
type TokenSource interface {
	ProviderToken(ctx context.Context, sessionID string) (string, error)
}

// RequireProviderToken rejects requests whose session cookie does not map to
// a provider token with 401 UNAUTHORIZED. A failing session store yields
// 500 INTERNAL_ERROR. On success the token is available through ProviderToken.
func RequireProviderToken(src TokenSource, cookieName string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			return
		}

		token, err := src.ProviderToken(c.Request.Context(), sid)
		switch {
		case err != nil && !errors.Is(err, authModel.ErrUnauthenticated):
			logger.Errorw("failed to resolve provider token", "request_id", RequestID(c), "error", err)
			abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		case err != nil || token == "":
			logger.Debugw("session has no provider token", "request_id", RequestID(c), "error", err)
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			return
		}

		SetProviderToken(c, token)
		c.Next()
	}
}

// SetProviderToken stores token for ProviderToken.
func SetProviderToken(c *gin.Context, token string) {
	c.Set(providerTokenKey, token)
}

// ProviderToken returns the token set by RequireProviderToken.
func ProviderToken(c *gin.Context) string {
	return c.GetString(providerTokenKey)
}
