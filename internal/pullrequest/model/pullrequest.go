// Package model defines the pull request data transfer objects.
package model

import "time"

// PullRequestSummary is one row of the viewer's pull request list.
type PullRequestSummary struct {
	ID               string     `json:"id"`
	Owner            string     `json:"owner"`
	Repo             string     `json:"repo"`
	Number           int        `json:"number"`
	Title            string     `json:"title"`
	Author           string     `json:"author"`
	URL              string     `json:"url"`
	State            string     `json:"state"`
	IsDraft          bool       `json:"isDraft"`
	CreatedAt        time.Time  `json:"createdAt"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
	FirstReviewAt    *time.Time `json:"firstReviewAt,omitempty"`
	ClosedAt         *time.Time `json:"closedAt,omitempty"`
	MergedAt         *time.Time `json:"mergedAt,omitempty"`
	Additions        int        `json:"additions"`
	Deletions        int        `json:"deletions"`
	Comments         int        `json:"comments"`
	Reviewers        []string   `json:"reviewers"`
	ChangesRequested int        `json:"changesRequested"`

	// Durations formatted like "2d 1h", or "N/A" when an endpoint is missing.
	DraftTime  string `json:"draftTime"`
	ReviewTime string `json:"reviewTime"`
	CycleTime  string `json:"cycleTime"`
}

// ListResponse is the response of GET /api/pullrequests.
type ListResponse struct {
	PullRequests []PullRequestSummary `json:"pullRequests"`
	Total        int                  `json:"total"`
	Warnings     []string             `json:"warnings"`
}

// Timeline event types.
const (
	EventOpened         = "opened"
	EventReadyForReview = "ready_for_review"
	EventReviewed       = "reviewed"
	EventMerged         = "merged"
	EventClosed         = "closed"
)

// TimelineEvent is one step in the life of a pull request.
type TimelineEvent struct {
	Type  string    `json:"type"`
	Actor string    `json:"actor,omitempty"`
	State string    `json:"state,omitempty"`
	At    time.Time `json:"at"`
	// SincePrevious is the formatted time since the previous event; empty for the first one.
	SincePrevious string `json:"sincePrevious,omitempty"`
}

// TimelineResponse is the response of GET /api/pullrequests/:owner/:repo/:number/timeline.
type TimelineResponse struct {
	PullRequest PullRequestSummary `json:"pullRequest"`
	Events      []TimelineEvent    `json:"events"`
}
