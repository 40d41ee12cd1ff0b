package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

const (
	listPageSize = 100
	// maxContributorPages bounds contributor pagination.
	maxContributorPages = 10
)

func (c *client) GetUser(ctx context.Context, login string) (*User, error) {
	if login == "" {
		return nil, fmt.Errorf("login is required")
	}
	var user User
	if err := c.get(ctx, "users/"+url.PathEscape(login), &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", login, err)
	}
	return &user, nil
}

func (c *client) GetViewer(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "user", &user); err != nil {
		return nil, fmt.Errorf("get viewer: %w", err)
	}
	return &user, nil
}

func (c *client) SearchUsers(ctx context.Context, query string) ([]SearchUser, error) {
	var resp struct {
		Items []SearchUser `json:"items"`
	}
	path := fmt.Sprintf("search/users?q=%s&per_page=%d", url.QueryEscape(query), c.pageSize)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return resp.Items, nil
}

type searchIssueItem struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	State         string     `json:"state"`
	HTMLURL       string     `json:"html_url"`
	RepositoryURL string     `json:"repository_url"`
	Draft         bool       `json:"draft"`
	CreatedAt     time.Time  `json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at"`
	User          struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []Label `json:"labels"`
}

func (c *client) SearchIssues(ctx context.Context, query string) (*SearchResult, error) {
	var resp struct {
		TotalCount int               `json:"total_count"`
		Items      []searchIssueItem `json:"items"`
	}
	path := fmt.Sprintf("search/issues?q=%s&per_page=%d&page=1", url.QueryEscape(query), c.pageSize)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	result := &SearchResult{TotalCount: resp.TotalCount, Items: make([]IssueRef, 0, len(resp.Items))}
	for _, it := range resp.Items {
		owner, repo := repoFromURL(it.RepositoryURL)
		labels := make([]string, 0, len(it.Labels))
		for _, l := range it.Labels {
			labels = append(labels, l.Name)
		}
		result.Items = append(result.Items, IssueRef{
			Owner:     owner,
			Repo:      repo,
			Number:    it.Number,
			Title:     it.Title,
			State:     it.State,
			URL:       it.HTMLURL,
			Author:    it.User.Login,
			Draft:     it.Draft,
			CreatedAt: it.CreatedAt,
			ClosedAt:  it.ClosedAt,
			Labels:    labels,
		})
	}
	return result, nil
}

func (c *client) CountIssues(ctx context.Context, query string) (int, error) {
	var resp struct {
		TotalCount int `json:"total_count"`
	}
	path := fmt.Sprintf("search/issues?q=%s&per_page=1", url.QueryEscape(query))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return resp.TotalCount, nil
}

func (c *client) ListReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	var releases []Release
	path := fmt.Sprintf("%s/releases?per_page=%d", repoPath(owner, repo), listPageSize)
	if err := c.get(ctx, path, &releases); err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	return releases, nil
}

func (c *client) ListClosedPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	var pulls []PullRequest
	path := fmt.Sprintf("%s/pulls?state=closed&sort=updated&direction=desc&per_page=%d", repoPath(owner, repo), listPageSize)
	if err := c.get(ctx, path, &pulls); err != nil {
		return nil, fmt.Errorf("list closed pull requests: %w", err)
	}
	return pulls, nil
}

func (c *client) ListClosedIssues(ctx context.Context, owner, repo, label string, since time.Time) ([]Issue, error) {
	q := url.Values{}
	q.Set("state", "closed")
	q.Set("per_page", fmt.Sprint(listPageSize))
	if label != "" {
		q.Set("labels", label)
	}
	if !since.IsZero() {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}

	var all []Issue
	if err := c.get(ctx, repoPath(owner, repo)+"/issues?"+q.Encode(), &all); err != nil {
		return nil, fmt.Errorf("list closed issues: %w", err)
	}

	issues := make([]Issue, 0, len(all))
	for _, is := range all {
		if is.PullRequest != nil {
			continue
		}
		issues = append(issues, is)
	}
	return issues, nil
}

// WeeklyCommitActivity treats 202 Accepted, which GitHub returns while the
// statistics are being computed, as an empty histogram.
func (c *client) WeeklyCommitActivity(ctx context.Context, owner, repo string) ([]WeeklyCommits, error) {
	path := repoPath(owner, repo) + "/stats/commit_activity"

	weeks, err := retry.DoWithResult(ctx, c.retry, func() ([]WeeklyCommits, error) {
		resp, err := c.rest.RequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return []WeeklyCommits{}, nil
		}

		var out []WeeklyCommits
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode commit activity: %w", err)
		}
		return out, nil
	})
	c.logger.Debugw("GitHub REST request", "path", path, "weeks", len(weeks), "error", err)
	if err != nil {
		return nil, fmt.Errorf("weekly commit activity: %w", err)
	}
	return weeks, nil
}

func (c *client) ListContributors(ctx context.Context, owner, repo string) ([]Contributor, error) {
	var all []Contributor
	for page := 1; page <= maxContributorPages; page++ {
		var batch []Contributor
		path := fmt.Sprintf("%s/contributors?per_page=%d&page=%d", repoPath(owner, repo), listPageSize, page)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, fmt.Errorf("list contributors: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < listPageSize {
			break
		}
	}
	return all, nil
}

func (c *client) CommunityProfile(ctx context.Context, owner, repo string) (*CommunityProfile, error) {
	var profile CommunityProfile
	if err := c.get(ctx, repoPath(owner, repo)+"/community/profile", &profile); err != nil {
		return nil, fmt.Errorf("community profile: %w", err)
	}
	return &profile, nil
}

func repoPath(owner, repo string) string {
	return "repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

// repoFromURL extracts owner and repo from an API repository URL such as
// https://api.github.com/repos/octo/hello.
func repoFromURL(raw string) (owner, repo string) {
	parts := strings.Split(strings.TrimRight(raw, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}
