// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"fmt"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/migrate"
)

// issueComments fetches comments one issue at a time.
type issueComments struct {
	github    pipeline.IssueSource
	org, repo string
}

func (c *issueComments) IssueComments(ctx context.Context, number int) ([]migrate.Comment, error) {
	raw, err := c.github.ListIssueComments(ctx, c.org, c.repo, number)
	if err != nil {
		return nil, err
	}
	out := make([]migrate.Comment, 0, len(raw))
	for _, cm := range raw {
		out = append(out, toComment(cm))
	}
	return out, nil
}

// prefetchedComments serves lookups from a single repository-wide listing.
// The listing is loaded on first use.
type prefetchedComments struct {
	github    pipeline.IssueSource
	org, repo string
	byIssue   map[int][]migrate.Comment
}

func (c *prefetchedComments) IssueComments(ctx context.Context, number int) ([]migrate.Comment, error) {
	if c.byIssue == nil {
		raw, err := c.github.ListRepoComments(ctx, c.org, c.repo)
		if err != nil {
			return nil, fmt.Errorf("failed to prefetch comments: %w", err)
		}
		c.byIssue = make(map[int][]migrate.Comment)
		for _, cm := range raw {
			n, ok := issueNumberFromURL(cm.GetIssueURL())
			if !ok {
				continue
			}
			c.byIssue[n] = append(c.byIssue[n], toComment(cm))
		}
	}
	return c.byIssue[number], nil
}
