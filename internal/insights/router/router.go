// Package router provides insights module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/handler"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/service"
)

// RegisterRoutes registers insights module routes behind the session guard.
func RegisterRoutes(r gin.IRouter, factory github.Factory, cfg config.GitHubConfig, guard gin.HandlerFunc, logger *zap.SugaredLogger) {
	svc := service.New(factory, cfg, logger)
	h := handler.New(svc, logger)

	r.GET("/api/repos/:owner/:repo/insights", guard, h.GetInsights)
}
