// Package service provides business logic layer for the viewer's pull requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/model"
)

// Warnings attached to degraded list responses.
const (
	WarnViewerUnavailable = "signed-in user unavailable"
	WarnSearchFailed      = "pull request search failed"
	WarnDetailsFailed     = "pull request details unavailable"
)

// Service defines the interface for pull request operations.
type Service interface {
	// List returns the pull requests the viewer is involved in, narrowed by
	// the optional search qualifiers in query. Remote failures yield an
	// empty list with a warning.
	List(ctx context.Context, token, query string) (*model.ListResponse, error)

	// Timeline returns the ordered events of one pull request.
	Timeline(ctx context.Context, token, owner, repo string, number int) (*model.TimelineResponse, error)
}

type service struct {
	factory github.Factory
	cfg     config.GitHubConfig
	logger  *zap.SugaredLogger
}

// New creates a new pull request service instance.
func New(factory github.Factory, cfg config.GitHubConfig, logger *zap.SugaredLogger) Service {
	return &service{
		factory: factory,
		cfg:     cfg,
		logger:  logger,
	}
}

// List returns the pull requests the viewer is involved in.
func (s *service) List(ctx context.Context, token, query string) (*model.ListResponse, error) {
	s.logger.Debugw("List called", "query", query)

	client, err := s.factory.New(token)
	if err != nil {
		return nil, err
	}

	viewer, err := client.GetViewer(ctx)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	if err != nil {
		s.logger.Warnw("viewer fetch failed", "error", err)
		return degraded(WarnViewerUnavailable), nil
	}

	q := SearchQuery(viewer.Login, query)
	result, err := client.SearchIssues(ctx, q)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("pull request search: %w", err)
	}
	if err != nil {
		s.logger.Warnw("pull request search failed", "query", q, "error", err)
		return degraded(WarnSearchFailed), nil
	}

	details, err := github.FetchDetails(ctx, client, result.Items, s.cfg.DetailConcurrency)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("pull request details: %w", err)
	}
	if err != nil {
		s.logger.Warnw("pull request details failed", "query", q, "count", len(result.Items), "error", err)
		return degraded(WarnDetailsFailed), nil
	}

	resp := &model.ListResponse{
		PullRequests: make([]model.PullRequestSummary, 0, len(details)),
		Total:        result.TotalCount,
		Warnings:     []string{},
	}
	for _, d := range details {
		resp.PullRequests = append(resp.PullRequests, Summarize(d))
	}

	s.logger.Infow("List completed", "viewer", viewer.Login, "count", len(resp.PullRequests), "total", resp.Total)
	return resp, nil
}

// Timeline returns the ordered events of one pull request.
func (s *service) Timeline(ctx context.Context, token, owner, repo string, number int) (*model.TimelineResponse, error) {
	s.logger.Debugw("Timeline called", "owner", owner, "repo", repo, "number", number)

	if strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" || number <= 0 {
		return nil, model.ErrInvalidPullRequestRef
	}

	client, err := s.factory.New(token)
	if err != nil {
		return nil, err
	}

	d, err := client.GetPullRequestDetail(ctx, owner, repo, number)
	if err != nil {
		if errors.Is(err, github.ErrPullRequestNotFound) {
			return nil, model.ErrPullRequestNotFound
		}
		s.logger.Errorw("Timeline failed", "owner", owner, "repo", repo, "number", number, "error", err)
		return nil, fmt.Errorf("failed to fetch pull request: %w", err)
	}

	resp := &model.TimelineResponse{
		PullRequest: Summarize(d),
		Events:      Timeline(d),
	}

	s.logger.Infow("Timeline completed", "owner", owner, "repo", repo, "number", number, "events", len(resp.Events))
	return resp, nil
}

// SearchQuery builds the issue search for pull requests involving login.
// Extra qualifiers are appended as given.
func SearchQuery(login, extra string) string {
	q := "is:pr involves:" + login
	if extra = strings.TrimSpace(extra); extra != "" {
		q += " " + extra
	}
	return q
}

func degraded(warning string) *model.ListResponse {
	return &model.ListResponse{
		PullRequests: []model.PullRequestSummary{},
		Warnings:     []string{warning},
	}
}
