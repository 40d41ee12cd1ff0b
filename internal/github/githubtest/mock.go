// Package githubtest provides testify mocks of the github client for service tests.
package githubtest

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
)

// Client is a mock implementation of github.Client.
type Client struct {
	mock.Mock
}

var _ github.Client = (*Client)(nil)

func (m *Client) GetUser(ctx context.Context, login string) (*github.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.User), args.Error(1)
}

func (m *Client) GetViewer(ctx context.Context) (*github.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.User), args.Error(1)
}

func (m *Client) SearchUsers(ctx context.Context, query string) ([]github.SearchUser, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.SearchUser), args.Error(1)
}

func (m *Client) SearchIssues(ctx context.Context, query string) (*github.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.SearchResult), args.Error(1)
}

func (m *Client) CountIssues(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *Client) GetPullRequestDetail(ctx context.Context, owner, repo string, number int) (*github.PullRequestDetail, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.PullRequestDetail), args.Error(1)
}

func (m *Client) ListReleases(ctx context.Context, owner, repo string) ([]github.Release, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Release), args.Error(1)
}

func (m *Client) ListClosedPullRequests(ctx context.Context, owner, repo string) ([]github.PullRequest, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.PullRequest), args.Error(1)
}

func (m *Client) ListClosedIssues(ctx context.Context, owner, repo, label string, since time.Time) ([]github.Issue, error) {
	args := m.Called(ctx, owner, repo, label, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Issue), args.Error(1)
}

func (m *Client) WeeklyCommitActivity(ctx context.Context, owner, repo string) ([]github.WeeklyCommits, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.WeeklyCommits), args.Error(1)
}

func (m *Client) ListContributors(ctx context.Context, owner, repo string) ([]github.Contributor, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Contributor), args.Error(1)
}

func (m *Client) CommunityProfile(ctx context.Context, owner, repo string) (*github.CommunityProfile, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.CommunityProfile), args.Error(1)
}

// Factory is a mock implementation of github.Factory.
type Factory struct {
	mock.Mock
}

var _ github.Factory = (*Factory)(nil)

func (m *Factory) New(token string) (github.Client, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(github.Client), args.Error(1)
}

// StaticFactory returns a factory that hands out c for any token.
func StaticFactory(c github.Client) *Factory {
	f := &Factory{}
	f.On("New", mock.Anything).Return(c, nil)
	return f
}
