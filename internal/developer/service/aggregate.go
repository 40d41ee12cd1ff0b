package service

import (
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/stats"
)

const maxScore = 10

// Aggregate reduces pull request details into developer metrics.
// An empty input yields zero for every field.
func Aggregate(details []*github.PullRequestDetail) model.Metrics {
	var m model.Metrics
	if len(details) == 0 {
		return m
	}

	var (
		leadTimes      []float64
		sizes          = make([]float64, 0, len(details))
		comments       = make([]float64, 0, len(details))
		changesRequest int
	)

	for _, d := range details {
		if d == nil {
			continue
		}
		m.TotalPRs++
		if d.Merged() {
			m.MergedPRs++
			leadTimes = append(leadTimes, stats.HoursBetween(d.CreatedAt, *d.MergedAt))
		}
		sizes = append(sizes, float64(d.Additions+d.Deletions))
		comments = append(comments, float64(d.Comments))
		changesRequest += d.CountReviews(github.ReviewChangesRequested)
		m.IssueResolutionScore += d.ClosedIssues
	}
	if m.TotalPRs == 0 {
		return m
	}

	m.MergeRate = stats.Round(stats.Ratio(m.MergedPRs, m.TotalPRs), 4)
	m.MedianLeadTimeHours = stats.Round(stats.Median(leadTimes), 2)
	m.MedianSize = stats.Median(sizes)
	m.AverageComments = stats.Round(stats.Average(comments), 2)
	m.FeedbackScore = changesRequest

	m.MergeSuccess = stats.Round(m.MergeRate*maxScore, 1)
	m.CycleEfficiency = stats.Round(stats.Clamp(maxScore-2*float64(changesRequest)/float64(m.TotalPRs), 0, maxScore), 1)
	m.SizeEfficiency = sizeScore(m.MedianSize)
	if m.MergedPRs > 0 {
		m.LeadTimeScore = leadTimeScore(m.MedianLeadTimeHours)
	}
	m.ReviewActivity = stats.Round(stats.Clamp(m.AverageComments, 0, maxScore), 1)

	return m
}

// sizeScore favors small changes.
func sizeScore(medianSize float64) float64 {
	switch {
	case medianSize <= 100:
		return 10
	case medianSize <= 250:
		return 8
	case medianSize <= 500:
		return 6
	case medianSize <= 1000:
		return 4
	default:
		return 2
	}
}

// leadTimeScore favors pull requests merged within a day.
func leadTimeScore(hours float64) float64 {
	switch {
	case hours <= 24:
		return 10
	case hours <= 72:
		return 8
	case hours <= 168:
		return 6
	case hours <= 336:
		return 4
	default:
		return 2
	}
}
