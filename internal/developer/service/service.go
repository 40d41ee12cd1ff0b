// Package service provides business logic layer for developer metrics.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
)

// Warnings attached to degraded responses.
const (
	WarnProfileUnavailable = "developer profile unavailable"
	WarnSearchFailed       = "pull request search failed; metrics are zero"
	WarnDetailsFailed      = "pull request details unavailable; metrics are zero"
	WarnUserSearchFailed   = "developer search failed"
)

// loginPattern matches GitHub logins: alphanumerics and single hyphens,
// not starting with a hyphen, at most 39 characters.
var loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9])*$`)

const maxLoginLength = 39

// Service defines the interface for developer metrics operations.
type Service interface {
	// GetMetrics returns the profile and pull request metrics of username.
	// Remote failures degrade to zero metrics with warnings instead of an error.
	GetMetrics(ctx context.Context, token, username string) (*model.DeveloperMetrics, error)

	// SearchDevelopers returns the first page of a user search.
	SearchDevelopers(ctx context.Context, token, query string) (*model.SearchResponse, error)
}

type service struct {
	factory github.Factory
	cfg     config.GitHubConfig
	logger  *zap.SugaredLogger
}

// New creates a new developer service instance.
func New(factory github.Factory, cfg config.GitHubConfig, logger *zap.SugaredLogger) Service {
	return &service{
		factory: factory,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetMetrics returns the profile and pull request metrics of username.
func (s *service) GetMetrics(ctx context.Context, token, username string) (*model.DeveloperMetrics, error) {
	username = strings.TrimSpace(username)
	s.logger.Debugw("GetMetrics called", "username", username)

	if username == "" {
		return nil, model.ErrUsernameRequired
	}
	if len(username) > maxLoginLength || !loginPattern.MatchString(username) {
		return nil, model.ErrInvalidUsername
	}

	client, err := s.factory.New(token)
	if err != nil {
		return nil, err
	}

	resp := &model.DeveloperMetrics{
		Profile:  model.Profile{Login: username},
		Warnings: []string{},
	}

	user, err := client.GetUser(ctx, username)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("developer profile: %w", err)
	}
	if err != nil {
		s.logger.Warnw("developer profile fetch failed", "username", username, "error", err)
		resp.Warnings = append(resp.Warnings, WarnProfileUnavailable)
	} else {
		resp.Profile = toProfile(user)
	}

	result, err := client.SearchIssues(ctx, "is:pr author:"+username)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("developer pull request search: %w", err)
	}
	if err != nil {
		s.logger.Warnw("developer pull request search failed", "username", username, "error", err)
		resp.Warnings = append(resp.Warnings, WarnSearchFailed)
		return resp, nil
	}

	details, err := github.FetchDetails(ctx, client, result.Items, s.cfg.DetailConcurrency)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("developer pull request details: %w", err)
	}
	if err != nil {
		s.logger.Warnw("developer pull request details failed", "username", username, "count", len(result.Items), "error", err)
		resp.Warnings = append(resp.Warnings, WarnDetailsFailed)
		return resp, nil
	}

	resp.Metrics = Aggregate(details)

	s.logger.Infow("GetMetrics completed", "username", username, "total_prs", resp.TotalPRs, "merged_prs", resp.MergedPRs)
	return resp, nil
}

// SearchDevelopers returns the first page of a user search.
func (s *service) SearchDevelopers(ctx context.Context, token, query string) (*model.SearchResponse, error) {
	query = strings.TrimSpace(query)
	s.logger.Debugw("SearchDevelopers called", "query", query)

	if query == "" {
		return nil, model.ErrQueryRequired
	}

	client, err := s.factory.New(token)
	if err != nil {
		return nil, err
	}

	users, err := client.SearchUsers(ctx, query)
	if github.IsUnauthorized(err) {
		return nil, fmt.Errorf("developer search: %w", err)
	}
	if err != nil {
		s.logger.Warnw("developer search failed", "query", query, "error", err)
		return &model.SearchResponse{Developers: []model.Developer{}, Warnings: []string{WarnUserSearchFailed}}, nil
	}

	devs := make([]model.Developer, 0, len(users))
	for _, u := range users {
		devs = append(devs, model.Developer{Login: u.Login, AvatarURL: u.AvatarURL, HTMLURL: u.HTMLURL})
	}

	s.logger.Infow("SearchDevelopers completed", "query", query, "count", len(devs))
	return &model.SearchResponse{Developers: devs, Total: len(devs), Warnings: []string{}}, nil
}

func toProfile(u *github.User) model.Profile {
	return model.Profile{
		Login:       u.Login,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		HTMLURL:     u.HTMLURL,
		Bio:         u.Bio,
		Company:     u.Company,
		Location:    u.Location,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
	}
}
