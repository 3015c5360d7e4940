// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// ListOpenIssues fetches every open issue in the repository, following pagination.
// Issues keep GitHub's default order, newest first.
// GitHub reports pull requests as issues; they are dropped unless includePRs is set.
func (c *Client) ListOpenIssues(ctx context.Context, org, repo string, includePRs bool) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			if !includePRs && issue.IsPullRequest() {
				continue
			}
			all = append(all, issue)
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListIssueComments fetches all comments on one issue in creation order.
func (c *Client) ListIssueComments(ctx context.Context, org, repo string, number int) ([]*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	return c.listComments(ctx, org, repo, number, opts)
}

// ListRepoComments fetches every issue comment in the repository.
func (c *Client) ListRepoComments(ctx context.Context, org, repo string) ([]*github.IssueComment, error) {
	sort := "created"
	direction := "asc"
	opts := &github.IssueListCommentsOptions{
		Sort:        &sort,
		Direction:   &direction,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	// Issue number 0 lists comments across the whole repository.
	return c.listComments(ctx, org, repo, 0, opts)
}

func (c *Client) listComments(ctx context.Context, org, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, error) {
	var all []*github.IssueComment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, org, repo, number, opts)
		if err != nil {
			if number == 0 {
				return nil, fmt.Errorf("failed to list repository comments: %w", err)
			}
			return nil, fmt.Errorf("failed to list comments for #%d: %w", number, err)
		}
		all = append(all, comments...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// EnsureWebhook registers a JSON web hook for all events pointing at hookURL.
// Nothing is created if a hook with the same URL already exists; created reports which happened.
func (c *Client) EnsureWebhook(ctx context.Context, org, repo, hookURL string) (bool, error) {
	if strings.TrimSpace(hookURL) == "" {
		return false, fmt.Errorf("webhook URL cannot be empty")
	}

	opts := &github.ListOptions{PerPage: 100}
	for {
		hooks, resp, err := c.client.Repositories.ListHooks(ctx, org, repo, opts)
		if err != nil {
			return false, fmt.Errorf("failed to list hooks: %w", err)
		}
		for _, h := range hooks {
			if h.Config != nil && h.Config.GetURL() == hookURL {
				return false, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	hook := &github.Hook{
		Name:   github.String("web"),
		Active: github.Bool(true),
		Events: []string{"*"},
		Config: &github.HookConfig{
			URL:         github.String(hookURL),
			ContentType: github.String("json"),
			InsecureSSL: github.String("0"),
		},
	}
	if _, _, err := c.client.Repositories.CreateHook(ctx, org, repo, hook); err != nil {
		return false, fmt.Errorf("failed to create hook: %w", err)
	}
	return true, nil
}

// GetFileContent fetches a file's decoded content at the given ref.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s/%s@%s: %w", org, repo, path, ref, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory, not a file", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}
	return []byte(content), nil
}
