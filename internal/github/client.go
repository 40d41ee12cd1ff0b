// Package github is the client for the GitHub REST and GraphQL APIs used by
// the analytics services. Every call runs with the caller's provider token,
// honors context cancellation and retries transient failures.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"go.uber.org/zap"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

// Client defines the GitHub API operations used by the services.
type Client interface {
	// GetUser returns the profile of login.
	GetUser(ctx context.Context, login string) (*User, error)

	// GetViewer returns the profile of the token owner.
	GetViewer(ctx context.Context) (*User, error)

	// SearchUsers returns the first page of a user search.
	SearchUsers(ctx context.Context, query string) ([]SearchUser, error)

	// SearchIssues returns the first page of an issue/pull request search.
	SearchIssues(ctx context.Context, query string) (*SearchResult, error)

	// CountIssues returns the total_count of an issue/pull request search.
	CountIssues(ctx context.Context, query string) (int, error)

	// GetPullRequestDetail fetches one pull request through GraphQL.
	GetPullRequestDetail(ctx context.Context, owner, repo string, number int) (*PullRequestDetail, error)

	// ListReleases returns the most recent releases.
	ListReleases(ctx context.Context, owner, repo string) ([]Release, error)

	// ListClosedPullRequests returns the most recently updated closed pull requests.
	ListClosedPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)

	// ListClosedIssues returns issues with label closed since the given time.
	// Pull requests are filtered out.
	ListClosedIssues(ctx context.Context, owner, repo, label string, since time.Time) ([]Issue, error)

	// WeeklyCommitActivity returns the last year of weekly commit counts.
	// It returns an empty slice while GitHub is still computing the statistics.
	WeeklyCommitActivity(ctx context.Context, owner, repo string) ([]WeeklyCommits, error)

	// ListContributors returns all contributors, following pagination.
	ListContributors(ctx context.Context, owner, repo string) ([]Contributor, error)

	// CommunityProfile returns the community health report.
	CommunityProfile(ctx context.Context, owner, repo string) (*CommunityProfile, error)
}

// Factory creates clients bound to a provider token.
type Factory interface {
	New(token string) (Client, error)
}

// ErrMissingToken is returned when a client is requested without a token.
var ErrMissingToken = errors.New("github token is required")

type factory struct {
	cfg       config.GitHubConfig
	transport http.RoundTripper
	logger    *zap.SugaredLogger
}

// NewFactory creates a client factory. A nil transport uses http.DefaultTransport.
func NewFactory(cfg config.GitHubConfig, transport http.RoundTripper, logger *zap.SugaredLogger) Factory {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &factory{cfg: cfg, transport: transport, logger: logger}
}

// New builds REST and GraphQL clients for token.
func (f *factory) New(token string) (Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	// Host, token and transport are always set, so go-gh never falls back
	// to the gh CLI configuration of the machine.
	opts := api.ClientOptions{
		Host:         f.cfg.Host,
		AuthToken:    token,
		Transport:    f.transport,
		Timeout:      f.cfg.RequestTimeout,
		LogIgnoreEnv: true,
		Headers: map[string]string{
			"Accept":               "application/vnd.github+json",
			"X-GitHub-Api-Version": "2022-11-28",
		},
	}

	rest, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gql, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	retryCfg := f.cfg.Retry
	if retryCfg.Classifier == nil {
		retryCfg.Classifier = IsTransient
	}

	return &client{
		rest:     rest,
		gql:      gql,
		pageSize: f.cfg.SearchPageSize,
		retry:    retryCfg,
		logger:   f.logger,
	}, nil
}

type client struct {
	rest     *api.RESTClient
	gql      *api.GraphQLClient
	pageSize int
	retry    retry.Config
	logger   *zap.SugaredLogger
}

// get issues a GET request with retries and decodes the JSON body into out.
func (c *client) get(ctx context.Context, path string, out interface{}) error {
	start := time.Now()
	err := retry.Do(ctx, c.retry, func() error {
		return c.rest.DoWithContext(ctx, http.MethodGet, path, nil, out)
	})
	c.logger.Debugw("GitHub REST request", "path", path, "latency", time.Since(start), "error", err)
	return err
}

// query runs a GraphQL query with retries.
func (c *client) query(ctx context.Context, name, query string, vars map[string]interface{}, out interface{}) error {
	start := time.Now()
	err := retry.Do(ctx, c.retry, func() error {
		return c.gql.DoWithContext(ctx, query, vars, out)
	})
	c.logger.Debugw("GitHub GraphQL request", "query", name, "latency", time.Since(start), "error", err)
	return err
}

// IsNotFound reports whether err is a 404 from the GitHub API or a GraphQL
// NOT_FOUND error.
func IsNotFound(err error) bool {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}
	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) {
		for _, e := range gqlErr.Errors {
			if e.Type == "NOT_FOUND" {
				return true
			}
		}
	}
	return false
}

// IsTransient reports whether err is a GitHub failure worth retrying:
// a 5xx or 429 response, or a GraphQL RATE_LIMITED error.
func IsTransient(err error) bool {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}
	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) {
		for _, e := range gqlErr.Errors {
			if e.Type == "RATE_LIMITED" {
				return true
			}
		}
	}
	return false
}

// IsUnauthorized reports whether GitHub rejected the token.
func IsUnauthorized(err error) bool {
	var httpErr *api.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}
