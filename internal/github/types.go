package github

import (
	"strings"
	"time"
)

// User is a GitHub user profile.
type User struct {
	Login       string    `json:"login"`
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchUser is one result of a user search.
type SearchUser struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// IssueRef is one issue or pull request returned by the issue search.
type IssueRef struct {
	Owner     string
	Repo      string
	Number    int
	Title     string
	State     string
	URL       string
	Author    string
	Draft     bool
	CreatedAt time.Time
	ClosedAt  *time.Time
	Labels    []string
}

// SearchResult is the first page of an issue search.
type SearchResult struct {
	TotalCount int
	Items      []IssueRef
}

// Review is a submitted pull request review.
type Review struct {
	Author      string
	State       string
	SubmittedAt *time.Time
}

// Review states reported by the GraphQL API.
const (
	ReviewApproved         = "APPROVED"
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewCommented        = "COMMENTED"
)

// PullRequestDetail holds the per pull request data used by the aggregations.
type PullRequestDetail struct {
	Owner       string
	Repo        string
	Number      int
	Title       string
	URL         string
	State       string
	IsDraft     bool
	Author      string
	CreatedAt   time.Time
	PublishedAt *time.Time
	ClosedAt    *time.Time
	MergedAt    *time.Time
	Additions   int
	Deletions   int
	Comments    int
	Reviews     []Review
	// LinkedIssues counts the issues this pull request closes.
	LinkedIssues int
	// ClosedIssues counts linked issues that are already closed.
	ClosedIssues int
}

// Merged reports whether the pull request was merged.
func (d *PullRequestDetail) Merged() bool {
	return d.MergedAt != nil && !d.MergedAt.IsZero()
}

// Reviewers returns the distinct review authors in submission order.
func (d *PullRequestDetail) Reviewers() []string {
	seen := make(map[string]struct{}, len(d.Reviews))
	out := make([]string, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		if r.Author == "" {
			continue
		}
		if _, ok := seen[r.Author]; ok {
			continue
		}
		seen[r.Author] = struct{}{}
		out = append(out, r.Author)
	}
	return out
}

// FirstReviewAt returns the earliest review submission time.
func (d *PullRequestDetail) FirstReviewAt() *time.Time {
	var first *time.Time
	for _, r := range d.Reviews {
		if r.SubmittedAt == nil {
			continue
		}
		if first == nil || r.SubmittedAt.Before(*first) {
			first = r.SubmittedAt
		}
	}
	return first
}

// CountReviews returns the number of reviews in the given state.
func (d *PullRequestDetail) CountReviews(state string) int {
	n := 0
	for _, r := range d.Reviews {
		if r.State == state {
			n++
		}
	}
	return n
}

// Release is a published repository release.
type Release struct {
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// PullRequest is a pull request from the repository pulls listing.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	MergedAt  *time.Time `json:"merged_at"`
	Labels    []Label    `json:"labels"`
}

// Issue is an issue from the repository issues listing.
type Issue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	Labels      []Label    `json:"labels"`
	PullRequest *struct{}  `json:"pull_request,omitempty"`
}

// Label is an issue or pull request label.
type Label struct {
	Name string `json:"name"`
}

// WeeklyCommits is one week of the commit activity histogram.
type WeeklyCommits struct {
	Week  int64 `json:"week"`
	Total int   `json:"total"`
	Days  []int `json:"days"`
}

// Contributor is a repository contributor.
type Contributor struct {
	Login         string `json:"login"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// CommunityProfile is the repository community health report.
type CommunityProfile struct {
	HealthPercentage int     `json:"health_percentage"`
	Description      *string `json:"description"`
	Documentation    *string `json:"documentation"`
	UpdatedAt        *string `json:"updated_at"`
}

// HasLabel reports whether labels contains name, ignoring case.
func HasLabel(labels []Label, name string) bool {
	for _, l := range labels {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}
