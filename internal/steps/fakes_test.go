// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

type fakeGitHub struct {
	issues       []*github.Issue
	comments     map[int][]*github.IssueComment
	repoComments []*github.IssueComment
	hookCreated  bool
	err          error

	calls          []string
	includePRsSeen bool
}

func (f *fakeGitHub) ListOpenIssues(ctx context.Context, org, repo string, includePRs bool) ([]*github.Issue, error) {
	f.calls = append(f.calls, "ListOpenIssues")
	f.includePRsSeen = includePRs
	return f.issues, f.err
}

func (f *fakeGitHub) ListIssueComments(ctx context.Context, org, repo string, number int) ([]*github.IssueComment, error) {
	f.calls = append(f.calls, fmt.Sprintf("ListIssueComments#%d", number))
	return f.comments[number], f.err
}

func (f *fakeGitHub) ListRepoComments(ctx context.Context, org, repo string) ([]*github.IssueComment, error) {
	f.calls = append(f.calls, "ListRepoComments")
	return f.repoComments, f.err
}

func (f *fakeGitHub) EnsureWebhook(ctx context.Context, org, repo, hookURL string) (bool, error) {
	f.calls = append(f.calls, "EnsureWebhook")
	return f.hookCreated, f.err
}

type fakeTracker struct {
	users    []clubhouse.User
	projects []clubhouse.Project
	epics    []clubhouse.Epic
	err      error

	calls     []string
	createdEp []clubhouse.CreateEpicParams
	submitted [][]clubhouse.CreateStoryParams
}

func (f *fakeTracker) ListUsers(ctx context.Context) ([]clubhouse.User, error) {
	f.calls = append(f.calls, "ListUsers")
	return f.users, f.err
}

func (f *fakeTracker) ListProjects(ctx context.Context) ([]clubhouse.Project, error) {
	f.calls = append(f.calls, "ListProjects")
	return f.projects, f.err
}

func (f *fakeTracker) ListEpics(ctx context.Context) ([]clubhouse.Epic, error) {
	f.calls = append(f.calls, "ListEpics")
	return f.epics, f.err
}

func (f *fakeTracker) CreateEpic(ctx context.Context, params clubhouse.CreateEpicParams) (*clubhouse.Epic, error) {
	f.calls = append(f.calls, "CreateEpic")
	f.createdEp = append(f.createdEp, params)
	return &clubhouse.Epic{ID: int64(500 + len(f.createdEp)), Name: params.Name}, nil
}

func (f *fakeTracker) CreateStories(ctx context.Context, stories []clubhouse.CreateStoryParams) ([]clubhouse.Story, error) {
	f.calls = append(f.calls, "CreateStories")
	f.submitted = append(f.submitted, stories)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]clubhouse.Story, len(stories))
	for i, s := range stories {
		out[i] = clubhouse.Story{ID: int64(i + 1), Name: s.Name, ProjectID: s.ProjectID}
	}
	return out, nil
}

type fakePrompter struct {
	answer bool
	asked  []string
	err    error
}

func (f *fakePrompter) Confirm(question string) (bool, error) {
	f.asked = append(f.asked, question)
	return f.answer, f.err
}

func ghIssue(number int, title, author string, comments int, milestone string) *github.Issue {
	created := github.Timestamp{Time: time.Date(2020, 1, number, 0, 0, 0, 0, time.UTC)}
	issue := &github.Issue{
		Number:    github.Int(number),
		Title:     github.String(title),
		Body:      github.String(title + " body"),
		CreatedAt: &created,
		User:      &github.User{Login: github.String(author)},
		Comments:  github.Int(comments),
		HTMLURL:   github.String(fmt.Sprintf("https://github.com/acme/widgets/issues/%d", number)),
	}
	if milestone != "" {
		issue.Milestone = &github.Milestone{Title: github.String(milestone)}
	}
	return issue
}

func ghComment(number int, author, body string) *github.IssueComment {
	return &github.IssueComment{
		User:     &github.User{Login: github.String(author)},
		Body:     github.String(body),
		IssueURL: github.String(fmt.Sprintf("https://api.github.com/repos/acme/widgets/issues/%d", number)),
	}
}
