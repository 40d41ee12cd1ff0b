package service

import (
	"fmt"
	"sort"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/stats"
)

// Summarize converts a pull request detail into a list row.
func Summarize(d *github.PullRequestDetail) model.PullRequestSummary {
	firstReview := d.FirstReviewAt()

	// A pull request opened as ready for review has no draft phase.
	published := d.PublishedAt
	if published == nil {
		published = &d.CreatedAt
	}

	return model.PullRequestSummary{
		ID:               fmt.Sprintf("%s/%s#%d", d.Owner, d.Repo, d.Number),
		Owner:            d.Owner,
		Repo:             d.Repo,
		Number:           d.Number,
		Title:            d.Title,
		Author:           d.Author,
		URL:              d.URL,
		State:            d.State,
		IsDraft:          d.IsDraft,
		CreatedAt:        d.CreatedAt,
		PublishedAt:      d.PublishedAt,
		FirstReviewAt:    firstReview,
		ClosedAt:         d.ClosedAt,
		MergedAt:         d.MergedAt,
		Additions:        d.Additions,
		Deletions:        d.Deletions,
		Comments:         d.Comments,
		Reviewers:        d.Reviewers(),
		ChangesRequested: d.CountReviews(github.ReviewChangesRequested),
		DraftTime:        stats.FormatBetween(&d.CreatedAt, d.PublishedAt),
		ReviewTime:       stats.FormatBetween(published, firstReview),
		CycleTime:        stats.FormatBetween(&d.CreatedAt, d.ClosedAt),
	}
}

// Timeline returns the ordered events of a pull request, each carrying the
// formatted time since the previous one.
func Timeline(d *github.PullRequestDetail) []model.TimelineEvent {
	events := []model.TimelineEvent{{Type: model.EventOpened, Actor: d.Author, At: d.CreatedAt}}

	if d.PublishedAt != nil && d.PublishedAt.After(d.CreatedAt) {
		events = append(events, model.TimelineEvent{Type: model.EventReadyForReview, Actor: d.Author, At: *d.PublishedAt})
	}
	for _, r := range d.Reviews {
		if r.SubmittedAt == nil {
			continue
		}
		events = append(events, model.TimelineEvent{Type: model.EventReviewed, Actor: r.Author, State: r.State, At: *r.SubmittedAt})
	}
	switch {
	case d.Merged():
		events = append(events, model.TimelineEvent{Type: model.EventMerged, At: *d.MergedAt})
	case d.ClosedAt != nil:
		events = append(events, model.TimelineEvent{Type: model.EventClosed, At: *d.ClosedAt})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})

	for i := 1; i < len(events); i++ {
		events[i].SincePrevious = stats.FormatBetween(&events[i-1].At, &events[i].At)
	}
	return events
}
