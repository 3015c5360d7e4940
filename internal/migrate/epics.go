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

// EpicResolver finds or creates the Clubhouse epic matching an issue's milestone.
// The epic list is fetched once per resolver; created epics are appended to it.
type EpicResolver struct {
	service EpicService
	epics   []clubhouse.Epic
	fetched bool
	created int
}

// NewEpicResolver creates a resolver backed by service.
func NewEpicResolver(service EpicService) *EpicResolver {
	return &EpicResolver{service: service}
}

// Resolve returns the epic ID for the issue's milestone, or 0 if the issue has no milestone.
func (r *EpicResolver) Resolve(ctx context.Context, issue Issue) (int64, error) {
	if issue.Milestone == nil {
		return 0, nil
	}

	if !r.fetched {
		epics, err := r.service.ListEpics(ctx)
		if err != nil {
			return 0, err
		}
		r.epics = epics
		r.fetched = true
	}

	title := issue.Milestone.Title
	for _, e := range r.epics {
		if e.Name == title {
			return e.ID, nil
		}
	}

	params := clubhouse.CreateEpicParams{
		Name:        title,
		Description: issue.Milestone.Description,
		Deadline:    issue.Milestone.DueOn,
	}
	if !issue.Milestone.CreatedAt.IsZero() {
		createdAt := issue.Milestone.CreatedAt
		params.CreatedAt = &createdAt
	}

	epic, err := r.service.CreateEpic(ctx, params)
	if err != nil {
		return 0, err
	}
	if epic == nil {
		return 0, fmt.Errorf("epic %q was not returned after creation", title)
	}

	r.epics = append(r.epics, *epic)
	r.created++
	return epic.ID, nil
}

// Created reports how many epics this resolver has created.
func (r *EpicResolver) Created() int {
	return r.created
}
