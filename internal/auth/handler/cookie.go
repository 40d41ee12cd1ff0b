package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionID returns the session id from the cookie, or "" when absent.
func (h *Handler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(h.session.CookieName)
	if err != nil {
		return ""
	}
	return id
}

// ensureSession returns the session id, issuing a new cookie when absent.
func (h *Handler) ensureSession(c *gin.Context) string {
	if id := h.sessionID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	h.setCookie(c, id, int(h.session.TTL.Seconds()))
	return id
}

func (h *Handler) clearCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, value, maxAge, "/", "", h.session.CookieSecure, true)
}
