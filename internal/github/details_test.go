package github_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github/githubtest"
)

func refs(n int) []github.IssueRef {
	out := make([]github.IssueRef, n)
	for i := range out {
		out[i] = github.IssueRef{Owner: "octo", Repo: "hello", Number: i + 1}
	}
	return out
}

// detailFunc answers GetPullRequestDetail with fn. Other calls go to the mock.
type detailFunc struct {
	githubtest.Client
	fn func(ctx context.Context, number int) (*github.PullRequestDetail, error)
}

func (f *detailFunc) GetPullRequestDetail(ctx context.Context, _, _ string, number int) (*github.PullRequestDetail, error) {
	return f.fn(ctx, number)
}

func TestFetchDetails_KeepsOrder(t *testing.T) {
	c := &detailFunc{fn: func(_ context.Context, number int) (*github.PullRequestDetail, error) {
		// later refs finish first
		time.Sleep(time.Duration(10-number) * time.Millisecond)
		return &github.PullRequestDetail{Number: number}, nil
	}}

	details, err := github.FetchDetails(context.Background(), c, refs(5), 5)
	require.NoError(t, err)
	require.Len(t, details, 5)
	for i, d := range details {
		assert.Equal(t, i+1, d.Number)
	}
}

func TestFetchDetails_Empty(t *testing.T) {
	c := new(githubtest.Client)

	details, err := github.FetchDetails(context.Background(), c, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, details)
	c.AssertNotCalled(t, "GetPullRequestDetail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchDetails_FirstErrorCancelsRest(t *testing.T) {
	boom := errors.New("boom")
	var cancelled int32

	c := &detailFunc{fn: func(ctx context.Context, number int) (*github.PullRequestDetail, error) {
		if number == 1 {
			return nil, boom
		}
		select {
		case <-ctx.Done():
			atomic.AddInt32(&cancelled, 1)
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return &github.PullRequestDetail{Number: number}, nil
		}
	}}

	_, err := github.FetchDetails(context.Background(), c, refs(2), 2)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&cancelled))
}

func TestFetchDetails_LimitsConcurrency(t *testing.T) {
	var inFlight, peak int32

	c := &detailFunc{fn: func(_ context.Context, number int) (*github.PullRequestDetail, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &github.PullRequestDetail{Number: number}, nil
	}}

	_, err := github.FetchDetails(context.Background(), c, refs(10), 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestFetchDetails_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &detailFunc{fn: func(ctx context.Context, _ int) (*github.PullRequestDetail, error) {
		return nil, ctx.Err()
	}}

	_, err := github.FetchDetails(ctx, c, refs(3), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPullRequestDetail_Helpers(t *testing.T) {
	t1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	d := &github.PullRequestDetail{
		Reviews: []github.Review{
			{Author: "a", State: github.ReviewCommented, SubmittedAt: &t1},
			{Author: "", State: github.ReviewApproved},
			{Author: "b", State: github.ReviewChangesRequested, SubmittedAt: &t0},
			{Author: "a", State: github.ReviewApproved},
		},
	}

	assert.False(t, d.Merged())
	assert.Equal(t, []string{"a", "b"}, d.Reviewers())
	assert.Equal(t, t0, *d.FirstReviewAt())
	assert.Equal(t, 1, d.CountReviews(github.ReviewChangesRequested))
	assert.Nil(t, (&github.PullRequestDetail{}).FirstReviewAt())

	d.MergedAt = &t1
	assert.True(t, d.Merged())
}

func TestHasLabel(t *testing.T) {
	labels := []github.Label{{Name: "Bug"}, {Name: "docs"}}
	assert.True(t, github.HasLabel(labels, "bug"))
	assert.False(t, github.HasLabel(labels, "hotfix"))
	assert.False(t, github.HasLabel(nil, "bug"))
}
