// Package service provides business logic layer for repository insights.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/model"
)

// Service defines the interface for repository insights operations.
type Service interface {
	// GetInsights computes the insights of owner/repo over the configured window.
	// Each metric is fetched independently; failed metrics are reported in
	// Unavailable and Warnings instead of failing the call.
	GetInsights(ctx context.Context, token, owner, repo string) (*model.RepoInsights, error)
}

type service struct {
	factory github.Factory
	window  time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

// New creates a new insights service instance.
func New(factory github.Factory, cfg config.GitHubConfig, logger *zap.SugaredLogger) Service {
	return &service{
		factory: factory,
		window:  cfg.InsightsWindow,
		now:     time.Now,
		logger:  logger,
	}
}

// fetch fills its part of the insights. metrics names what is lost on failure.
type fetch struct {
	metrics []string
	run     func(ctx context.Context) error
}

// GetInsights computes the insights of owner/repo.
func (s *service) GetInsights(ctx context.Context, token, owner, repo string) (*model.RepoInsights, error) {
	owner, repo = strings.TrimSpace(owner), strings.TrimSpace(repo)
	s.logger.Debugw("GetInsights called", "owner", owner, "repo", repo)

	if owner == "" || repo == "" {
		return nil, model.ErrRepositoryRequired
	}

	client, err := s.factory.New(token)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.Add(-s.window)
	out := &model.RepoInsights{
		Owner:         owner,
		Repo:          repo,
		WindowDays:    int(s.window.Hours() / 24),
		WeeklyCommits: []model.WeekCommits{},
	}

	fetches := []fetch{
		{
			metrics: []string{model.MetricDeploymentFrequency},
			run: func(ctx context.Context) error {
				releases, err := client.ListReleases(ctx, owner, repo)
				if err != nil {
					return err
				}
				out.DeploymentFrequency = DeploymentFrequency(releases, start, end)
				return nil
			},
		},
		{
			metrics: []string{model.MetricLeadTime, model.MetricChangeFailureRate},
			run: func(ctx context.Context) error {
				pulls, err := client.ListClosedPullRequests(ctx, owner, repo)
				if err != nil {
					return err
				}
				out.LeadTimeHours = LeadTimeHours(pulls, start, end)
				out.ChangeFailureRate = ChangeFailureRate(pulls, start, end)
				return nil
			},
		},
		{
			metrics: []string{model.MetricMeanTimeToRestore},
			run: func(ctx context.Context) error {
				issues, err := client.ListClosedIssues(ctx, owner, repo, bugLabel, start)
				if err != nil {
					return err
				}
				out.MeanTimeToRestoreHours = MeanTimeToRestoreHours(issues, start, end)
				return nil
			},
		},
		{
			metrics: []string{model.MetricOpenIssues},
			run: func(ctx context.Context) error {
				n, err := client.CountIssues(ctx, fmt.Sprintf("repo:%s/%s is:issue is:open", owner, repo))
				if err != nil {
					return err
				}
				out.OpenIssues = n
				return nil
			},
		},
		{
			metrics: []string{model.MetricOpenPullRequests},
			run: func(ctx context.Context) error {
				n, err := client.CountIssues(ctx, fmt.Sprintf("repo:%s/%s is:pr is:open", owner, repo))
				if err != nil {
					return err
				}
				out.OpenPullRequests = n
				return nil
			},
		},
		{
			metrics: []string{model.MetricWeeklyCommits},
			run: func(ctx context.Context) error {
				weeks, err := client.WeeklyCommitActivity(ctx, owner, repo)
				if err != nil {
					return err
				}
				out.WeeklyCommits = WeeklyHistogram(weeks)
				return nil
			},
		},
		{
			metrics: []string{model.MetricContributorCount},
			run: func(ctx context.Context) error {
				contributors, err := client.ListContributors(ctx, owner, repo)
				if err != nil {
					return err
				}
				out.ContributorCount = len(contributors)
				return nil
			},
		},
		{
			metrics: []string{model.MetricCommunityHealth},
			run: func(ctx context.Context) error {
				profile, err := client.CommunityProfile(ctx, owner, repo)
				if err != nil {
					return err
				}
				out.CommunityHealthScore = profile.HealthPercentage
				return nil
			},
		},
	}

	// Every fetch writes disjoint fields and its own slot of failed. Only a
	// rejected token aborts the group; other failures degrade one metric.
	failed := make([]error, len(fetches))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetches {
		g.Go(func() error {
			err := f.run(gctx)
			if github.IsUnauthorized(err) {
				return err
			}
			failed[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("repository insights %s/%s: %w", owner, repo, err)
	}

	out.Unavailable = []string{}
	out.Warnings = []string{}
	for i, err := range failed {
		if err == nil {
			continue
		}
		for _, m := range fetches[i].metrics {
			s.logger.Warnw("insight metric unavailable", "owner", owner, "repo", repo, "metric", m, "error", err)
			out.Unavailable = append(out.Unavailable, m)
			out.Warnings = append(out.Warnings, m+" unavailable")
		}
	}

	s.logger.Infow("GetInsights completed", "owner", owner, "repo", repo, "unavailable", len(out.Unavailable))
	return out, nil
}
