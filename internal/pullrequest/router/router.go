// Package router provides pull request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/handler"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/service"
)

// RegisterRoutes registers pull request module routes behind the session guard.
func RegisterRoutes(r gin.IRouter, factory github.Factory, cfg config.GitHubConfig, guard gin.HandlerFunc, logger *zap.SugaredLogger) {
	svc := service.New(factory, cfg, logger)
	h := handler.New(svc, logger)

	group := r.Group("/api/pullrequests", guard)
	group.GET("", h.List)
	group.GET("/:owner/:repo/:number/timeline", h.Timeline)
}
