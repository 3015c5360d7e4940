// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package migrate converts GitHub issues into Clubhouse stories.
//
// It owns the user matching, milestone→epic resolution and story assembly rules.
// All network access goes through the small interfaces declared here.
package migrate

import (
	"context"
	"time"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// Issue is an open GitHub issue, read-only during a run.
type Issue struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	CreatedAt     time.Time  `json:"created_at"`
	Author        string     `json:"author"`
	Assignees     []string   `json:"assignees"`
	Comments      int        `json:"comments"`
	Milestone     *Milestone `json:"milestone,omitempty"`
	URL           string     `json:"url"`
	IsPullRequest bool       `json:"is_pull_request"`
}

// Milestone is the GitHub milestone an issue belongs to.
type Milestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// Comment is a single issue comment.
type Comment struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
}

// CommentSource fetches the comments of one issue in source order.
type CommentSource interface {
	IssueComments(ctx context.Context, number int) ([]Comment, error)
}

// EpicService is the part of the Clubhouse API the epic resolver uses.
type EpicService interface {
	ListEpics(ctx context.Context) ([]clubhouse.Epic, error)
	CreateEpic(ctx context.Context, params clubhouse.CreateEpicParams) (*clubhouse.Epic, error)
}

// StoryCreator submits stories in bulk.
type StoryCreator interface {
	CreateStories(ctx context.Context, stories []clubhouse.CreateStoryParams) ([]clubhouse.Story, error)
}
