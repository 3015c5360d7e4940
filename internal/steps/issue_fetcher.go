// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/migrate"
)

// IssueFetcher lists the open issues of the source repository.
type IssueFetcher struct {
	github pipeline.IssueSource
}

// NewIssueFetcher creates a new issue fetcher step.
func NewIssueFetcher(deps *pipeline.Dependencies) *IssueFetcher {
	return &IssueFetcher{github: deps.GitHub}
}

// Name returns the step name.
func (s *IssueFetcher) Name() string {
	return "issue_fetcher"
}

// Run fetches every open issue in the order GitHub lists them.
func (s *IssueFetcher) Run(ctx *pipeline.Context) error {
	if s.github == nil {
		return errors.New("github client not configured")
	}

	gh := ctx.Config.GitHub
	raw, err := s.github.ListOpenIssues(ctx.Ctx, gh.Org, gh.Repo, gh.IncludePRs())
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	issues := make([]migrate.Issue, 0, len(raw))
	for _, issue := range raw {
		issues = append(issues, toIssue(issue))
	}

	log.Printf("[issue_fetcher] Found %d open issues in %s/%s", len(issues), gh.Org, gh.Repo)
	ctx.Issues = issues
	ctx.Result.Issues = len(issues)
	return nil
}

func toIssue(issue *github.Issue) migrate.Issue {
	out := migrate.Issue{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		CreatedAt:     issue.GetCreatedAt().Time,
		Author:        issue.GetUser().GetLogin(),
		Comments:      issue.GetComments(),
		URL:           issue.GetHTMLURL(),
		IsPullRequest: issue.IsPullRequest(),
		Assignees:     make([]string, 0, len(issue.Assignees)),
	}

	for _, a := range issue.Assignees {
		out.Assignees = append(out.Assignees, a.GetLogin())
	}

	if m := issue.Milestone; m != nil {
		out.Milestone = &migrate.Milestone{
			Title:       m.GetTitle(),
			Description: m.GetDescription(),
			CreatedAt:   m.GetCreatedAt().Time,
		}
		if m.DueOn != nil {
			due := m.DueOn.Time
			out.Milestone.DueOn = &due
		}
	}

	return out
}

func toComment(c *github.IssueComment) migrate.Comment {
	return migrate.Comment{
		Author:    c.GetUser().GetLogin(),
		CreatedAt: c.GetCreatedAt().Time,
		Body:      c.GetBody(),
	}
}

// issueNumberFromURL extracts the trailing issue number of a comment's issue_url.
func issueNumberFromURL(issueURL string) (int, bool) {
	idx := strings.LastIndex(issueURL, "/")
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(issueURL[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
