package service

import (
	"strings"
	"time"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/stats"
)

const (
	bugLabel = "bug"
	week     = 7 * 24 * time.Hour
)

// failureMarkers identify pull requests that repair a failed change, by
// title prefix or label.
var failureMarkers = []string{"revert", "hotfix", "bug"}

func within(t *time.Time, start, end time.Time) bool {
	return t != nil && !t.Before(start) && !t.After(end)
}

// DeploymentFrequency returns published releases per week in [start, end].
func DeploymentFrequency(releases []github.Release, start, end time.Time) float64 {
	weeks := float64(end.Sub(start)) / float64(week)
	if weeks <= 0 {
		return 0
	}
	n := 0
	for _, r := range releases {
		if r.Draft {
			continue
		}
		if within(r.PublishedAt, start, end) {
			n++
		}
	}
	return stats.Round(float64(n)/weeks, 2)
}

func mergedWithin(pulls []github.PullRequest, start, end time.Time) []github.PullRequest {
	var out []github.PullRequest
	for _, p := range pulls {
		if within(p.MergedAt, start, end) {
			out = append(out, p)
		}
	}
	return out
}

// LeadTimeHours returns the median created to merged hours of pull requests
// merged in [start, end].
func LeadTimeHours(pulls []github.PullRequest, start, end time.Time) float64 {
	merged := mergedWithin(pulls, start, end)
	hours := make([]float64, 0, len(merged))
	for _, p := range merged {
		hours = append(hours, stats.HoursBetween(p.CreatedAt, *p.MergedAt))
	}
	return stats.Round(stats.Median(hours), 2)
}

// IsFailureFix reports whether a pull request reverts or hotfixes a change.
func IsFailureFix(p github.PullRequest) bool {
	title := strings.ToLower(strings.TrimSpace(p.Title))
	for _, marker := range failureMarkers {
		if marker != bugLabel && strings.HasPrefix(title, marker) {
			return true
		}
		if github.HasLabel(p.Labels, marker) {
			return true
		}
	}
	return false
}

// ChangeFailureRate returns the percentage of pull requests merged in
// [start, end] that are failure fixes.
func ChangeFailureRate(pulls []github.PullRequest, start, end time.Time) float64 {
	merged := mergedWithin(pulls, start, end)
	failures := 0
	for _, p := range merged {
		if IsFailureFix(p) {
			failures++
		}
	}
	return stats.Round(stats.Percentage(failures, len(merged)), 2)
}

// MeanTimeToRestoreHours returns the mean open to close hours of issues
// closed in [start, end].
func MeanTimeToRestoreHours(issues []github.Issue, start, end time.Time) float64 {
	var hours []float64
	for _, is := range issues {
		if within(is.ClosedAt, start, end) {
			hours = append(hours, stats.HoursBetween(is.CreatedAt, *is.ClosedAt))
		}
	}
	return stats.Round(stats.Average(hours), 2)
}

// WeeklyHistogram converts the commit activity response into histogram bars.
func WeeklyHistogram(weeks []github.WeeklyCommits) []model.WeekCommits {
	out := make([]model.WeekCommits, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, model.WeekCommits{
			Week:  time.Unix(w.Week, 0).UTC(),
			Total: w.Total,
		})
	}
	return out
}
