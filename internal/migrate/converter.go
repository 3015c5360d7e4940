// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"
	"fmt"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// Converter turns GitHub issues into Clubhouse story payloads for one project.
type Converter struct {
	projectID int64
	users     *UserMapper
	epics     *EpicResolver
}

// NewConverter creates a converter for the given project.
func NewConverter(projectID int64, users *UserMapper, epics *EpicResolver) *Converter {
	return &Converter{
		projectID: projectID,
		users:     users,
		epics:     epics,
	}
}

// Convert builds the story for issue, appends it to batch and returns it with the resolved
// epic ID (0 when no epic applies). Comments are only fetched when the issue reports some.
func (c *Converter) Convert(ctx context.Context, issue Issue, comments CommentSource, batch *Batch) (clubhouse.CreateStoryParams, int64, error) {
	story := clubhouse.CreateStoryParams{
		Name:        issue.Title,
		Description: issue.Body,
		CreatedAt:   issue.CreatedAt,
		ProjectID:   c.projectID,
		ExternalID:  issue.URL,
		Comments:    []clubhouse.CreateCommentParams{},
	}

	story.RequestedByID = c.users.Resolve(issue.Author)
	story.OwnerIDs = c.users.ResolveAll(issue.Assignees)

	epicID, err := c.epics.Resolve(ctx, issue)
	if err != nil {
		return clubhouse.CreateStoryParams{}, 0, fmt.Errorf("failed to resolve epic for #%d: %w", issue.Number, err)
	}
	if epicID > 0 {
		id := epicID
		story.EpicID = &id
	}

	if issue.Comments > 0 {
		fetched, err := comments.IssueComments(ctx, issue.Number)
		if err != nil {
			return clubhouse.CreateStoryParams{}, 0, fmt.Errorf("failed to fetch comments for #%d: %w", issue.Number, err)
		}
		for _, cm := range fetched {
			story.Comments = append(story.Comments, clubhouse.CreateCommentParams{
				AuthorID:  c.users.Resolve(cm.Author),
				CreatedAt: cm.CreatedAt,
				Text:      cm.Body,
			})
		}
	}

	batch.Add(story)
	return story, epicID, nil
}
