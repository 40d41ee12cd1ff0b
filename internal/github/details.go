package github

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchDetails fetches the detail of every ref concurrently, at most limit at
// a time. Results keep the order of refs. The first failure cancels the
// remaining fetches, as does cancelling ctx.
func FetchDetails(ctx context.Context, c Client, refs []IssueRef, limit int) ([]*PullRequestDetail, error) {
	details := make([]*PullRequestDetail, len(refs))
	if len(refs) == 0 {
		return details, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, ref := range refs {
		g.Go(func() error {
			d, err := c.GetPullRequestDetail(gctx, ref.Owner, ref.Repo, ref.Number)
			if err != nil {
				return err
			}
			details[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
