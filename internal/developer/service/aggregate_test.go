package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(hours int) *time.Time {
	t := base.Add(time.Duration(hours) * time.Hour)
	return &t
}

func detail(size, comments, changesRequested, closedIssues int, mergedAfter *int) *github.PullRequestDetail {
	d := &github.PullRequestDetail{
		CreatedAt:    base,
		Additions:    size / 2,
		Deletions:    size - size/2,
		Comments:     comments,
		ClosedIssues: closedIssues,
	}
	for i := 0; i < changesRequested; i++ {
		d.Reviews = append(d.Reviews, github.Review{Author: "r", State: github.ReviewChangesRequested})
	}
	d.Reviews = append(d.Reviews, github.Review{Author: "r", State: github.ReviewApproved})
	if mergedAfter != nil {
		d.MergedAt = at(*mergedAfter)
	}
	return d
}

func hours(h int) *int { return &h }

func TestAggregate_EmptyInputIsZero(t *testing.T) {
	assert.Equal(t, model.Metrics{}, Aggregate(nil))
	assert.Equal(t, model.Metrics{}, Aggregate([]*github.PullRequestDetail{}))
	assert.Equal(t, model.Metrics{}, Aggregate([]*github.PullRequestDetail{nil}))
}

func TestAggregate(t *testing.T) {
	details := []*github.PullRequestDetail{
		detail(80, 4, 1, 1, hours(10)),
		detail(200, 2, 0, 2, hours(30)),
		detail(1000, 0, 1, 0, nil),
	}

	m := Aggregate(details)

	assert.Equal(t, 3, m.TotalPRs)
	assert.Equal(t, 2, m.MergedPRs)
	assert.Equal(t, 0.6667, m.MergeRate)
	assert.Equal(t, 20.0, m.MedianLeadTimeHours)
	assert.Equal(t, 200.0, m.MedianSize)
	assert.Equal(t, 2.0, m.AverageComments)
	assert.Equal(t, 2, m.FeedbackScore)
	assert.Equal(t, 3, m.IssueResolutionScore)

	assert.Equal(t, 6.7, m.MergeSuccess)
	assert.Equal(t, 8.7, m.CycleEfficiency)
	assert.Equal(t, 8.0, m.SizeEfficiency)
	assert.Equal(t, 10.0, m.LeadTimeScore)
	assert.Equal(t, 2.0, m.ReviewActivity)
}

func TestAggregate_NothingMerged(t *testing.T) {
	m := Aggregate([]*github.PullRequestDetail{
		detail(20, 0, 0, 0, nil),
		detail(40, 0, 0, 0, nil),
	})

	assert.Equal(t, 2, m.TotalPRs)
	assert.Zero(t, m.MergeRate)
	assert.Zero(t, m.MedianLeadTimeHours)
	assert.Zero(t, m.LeadTimeScore)
	assert.Equal(t, 30.0, m.MedianSize)
	assert.Equal(t, 10.0, m.CycleEfficiency)
}

func TestAggregate_ScoresAreBounded(t *testing.T) {
	m := Aggregate([]*github.PullRequestDetail{
		detail(5000, 40, 9, 0, hours(24*30)),
	})

	assert.Equal(t, 0.0, m.CycleEfficiency)
	assert.Equal(t, 10.0, m.ReviewActivity)
	assert.Equal(t, 2.0, m.SizeEfficiency)
	assert.Equal(t, 2.0, m.LeadTimeScore)
	assert.Equal(t, 10.0, m.MergeSuccess)
}

func TestSizeScore(t *testing.T) {
	tests := []struct {
		size float64
		want float64
	}{
		{size: 0, want: 10},
		{size: 100, want: 10},
		{size: 101, want: 8},
		{size: 250, want: 8},
		{size: 400, want: 6},
		{size: 500, want: 6},
		{size: 900, want: 4},
		{size: 1000, want: 4},
		{size: 1500, want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sizeScore(tt.size), "size %v", tt.size)
	}
}

func TestLeadTimeScore(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{hours: 0, want: 10},
		{hours: 24, want: 10},
		{hours: 24.5, want: 8},
		{hours: 72, want: 8},
		{hours: 100, want: 6},
		{hours: 168, want: 6},
		{hours: 200, want: 4},
		{hours: 336, want: 4},
		{hours: 337, want: 2},
		{hours: 1500, want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, leadTimeScore(tt.hours), "lead time %v", tt.hours)
	}
}
