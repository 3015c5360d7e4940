// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// DryRunEpicIDBase is the first placeholder ID handed out for simulated epics.
const DryRunEpicIDBase int64 = 900000000

// ErrDryRun is returned by write operations a dry run must never perform.
var ErrDryRun = errors.New("dry run: stories are not submitted")

// DryRunTracker reads from the wrapped tracker but never writes to it.
// CreateEpic answers with placeholder IDs and remembers what it would have created.
type DryRunTracker struct {
	inner pipeline.Tracker

	mu      sync.Mutex
	planned []string
}

// NewDryRunTracker wraps inner for a dry run.
func NewDryRunTracker(inner pipeline.Tracker) *DryRunTracker {
	return &DryRunTracker{inner: inner}
}

// ListUsers delegates to the wrapped tracker.
func (t *DryRunTracker) ListUsers(ctx context.Context) ([]clubhouse.User, error) {
	return t.inner.ListUsers(ctx)
}

// ListProjects delegates to the wrapped tracker.
func (t *DryRunTracker) ListProjects(ctx context.Context) ([]clubhouse.Project, error) {
	return t.inner.ListProjects(ctx)
}

// ListEpics delegates to the wrapped tracker.
func (t *DryRunTracker) ListEpics(ctx context.Context) ([]clubhouse.Epic, error) {
	return t.inner.ListEpics(ctx)
}

// CreateEpic simulates epic creation.
func (t *DryRunTracker) CreateEpic(ctx context.Context, params clubhouse.CreateEpicParams) (*clubhouse.Epic, error) {
	if params.Name == "" {
		return nil, errors.New("epic name is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.planned = append(t.planned, params.Name)
	log.Printf("[DryRun] Would create epic %q", params.Name)
	return &clubhouse.Epic{
		ID:          DryRunEpicIDBase + int64(len(t.planned)),
		Name:        params.Name,
		Description: params.Description,
		Deadline:    params.Deadline,
	}, nil
}

// CreateStories always fails with ErrDryRun.
func (t *DryRunTracker) CreateStories(ctx context.Context, stories []clubhouse.CreateStoryParams) ([]clubhouse.Story, error) {
	return nil, ErrDryRun
}

// PlannedEpics lists the names of epics a real run would create, in order.
func (t *DryRunTracker) PlannedEpics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.planned...)
}
