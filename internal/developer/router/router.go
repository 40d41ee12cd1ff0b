// Package router provides developer module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/handler"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
)

// RegisterRoutes registers developer module routes behind the session guard.
func RegisterRoutes(r gin.IRouter, factory github.Factory, cfg config.GitHubConfig, guard gin.HandlerFunc, logger *zap.SugaredLogger) {
	svc := service.New(factory, cfg, logger)
	h := handler.New(svc, logger)

	group := r.Group("/api/developers", guard)
	group.GET("", h.Search)
	group.GET("/:username/metrics", h.GetMetrics)
}
