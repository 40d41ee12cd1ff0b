// Package router provides auth module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/handler"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
)

// RegisterRoutes registers auth module routes.
func RegisterRoutes(r gin.IRouter, svc service.Service, cfg *config.Config, logger *zap.SugaredLogger) {
	h := handler.New(svc, cfg.Session, cfg.OAuth, logger)

	group := r.Group("/auth")
	group.GET("/login", h.Login)
	group.GET("/callback", h.Callback)
	group.POST("/exchange", h.Exchange)
	group.GET("/session", h.Session)
	group.POST("/logout", h.Logout)
}
