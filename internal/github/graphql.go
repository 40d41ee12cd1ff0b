package github

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const pullRequestDetailQuery = `query PullRequestDetail($owner: String!, $repo: String!, $number: Int!) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $number) {
      number
      title
      url
      state
      isDraft
      createdAt
      publishedAt
      closedAt
      mergedAt
      additions
      deletions
      author { login }
      comments { totalCount }
      reviews(first: 100) {
        nodes {
          state
          submittedAt
          author { login }
        }
      }
      closingIssuesReferences(first: 50) {
        totalCount
        nodes { closed }
      }
    }
  }
}`

type pullRequestDetailResponse struct {
	Repository *struct {
		PullRequest *struct {
			Number      int        `json:"number"`
			Title       string     `json:"title"`
			URL         string     `json:"url"`
			State       string     `json:"state"`
			IsDraft     bool       `json:"isDraft"`
			CreatedAt   time.Time  `json:"createdAt"`
			PublishedAt *time.Time `json:"publishedAt"`
			ClosedAt    *time.Time `json:"closedAt"`
			MergedAt    *time.Time `json:"mergedAt"`
			Additions   int        `json:"additions"`
			Deletions   int        `json:"deletions"`
			Author      *struct {
				Login string `json:"login"`
			} `json:"author"`
			Comments struct {
				TotalCount int `json:"totalCount"`
			} `json:"comments"`
			Reviews struct {
				Nodes []struct {
					State       string     `json:"state"`
					SubmittedAt *time.Time `json:"submittedAt"`
					Author      *struct {
						Login string `json:"login"`
					} `json:"author"`
				} `json:"nodes"`
			} `json:"reviews"`
			ClosingIssuesReferences struct {
				TotalCount int `json:"totalCount"`
				Nodes      []struct {
					Closed bool `json:"closed"`
				} `json:"nodes"`
			} `json:"closingIssuesReferences"`
		} `json:"pullRequest"`
	} `json:"repository"`
}

// ErrPullRequestNotFound is returned when the repository or pull request does not exist.
var ErrPullRequestNotFound = errors.New("pull request not found")

func (c *client) GetPullRequestDetail(ctx context.Context, owner, repo string, number int) (*PullRequestDetail, error) {
	var resp pullRequestDetailResponse
	vars := map[string]interface{}{
		"owner":  owner,
		"repo":   repo,
		"number": number,
	}
	if err := c.query(ctx, "PullRequestDetail", pullRequestDetailQuery, vars, &resp); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%s/%s#%d: %w", owner, repo, number, ErrPullRequestNotFound)
		}
		return nil, fmt.Errorf("pull request detail %s/%s#%d: %w", owner, repo, number, err)
	}
	if resp.Repository == nil || resp.Repository.PullRequest == nil {
		return nil, fmt.Errorf("%s/%s#%d: %w", owner, repo, number, ErrPullRequestNotFound)
	}

	pr := resp.Repository.PullRequest
	detail := &PullRequestDetail{
		Owner:        owner,
		Repo:         repo,
		Number:       pr.Number,
		Title:        pr.Title,
		URL:          pr.URL,
		State:        pr.State,
		IsDraft:      pr.IsDraft,
		CreatedAt:    pr.CreatedAt,
		PublishedAt:  pr.PublishedAt,
		ClosedAt:     pr.ClosedAt,
		MergedAt:     pr.MergedAt,
		Additions:    pr.Additions,
		Deletions:    pr.Deletions,
		Comments:     pr.Comments.TotalCount,
		LinkedIssues: pr.ClosingIssuesReferences.TotalCount,
	}
	if pr.Author != nil {
		detail.Author = pr.Author.Login
	}
	for _, r := range pr.Reviews.Nodes {
		review := Review{State: r.State, SubmittedAt: r.SubmittedAt}
		if r.Author != nil {
			review.Author = r.Author.Login
		}
		detail.Reviews = append(detail.Reviews, review)
	}
	for _, is := range pr.ClosingIssuesReferences.Nodes {
		if is.Closed {
			detail.ClosedIssues++
		}
	}

	return detail, nil
}
