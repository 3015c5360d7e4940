// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"testing"

	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

func buildImport(t *testing.T, deps *pipeline.Dependencies) *pipeline.Pipeline {
	t.Helper()
	registry := pipeline.NewRegistry()
	RegisterAll(registry)

	p, err := registry.BuildFromNames(pipeline.ResolveSteps(nil, "import"), deps)
	require.NoError(t, err)
	return p
}

func importFixture() (*fakeGitHub, *fakeTracker) {
	gh := &fakeGitHub{
		issues: []*github.Issue{
			ghIssue(1, "Login fails", "alice", 1, "v1"),
			ghIssue(2, "Typo", "bob", 0, "v2"),
		},
		comments: map[int][]*github.IssueComment{
			1: {ghComment(1, "bob", "confirmed")},
		},
	}
	gh.issues[1].Assignees = []*github.User{{Login: github.String("alice")}, {Login: github.String("ghost")}}

	tracker := &fakeTracker{
		users: []clubhouse.User{
			{ID: "u-alice", Username: "Alice"},
			{ID: "u-bobby", Username: "bobby"},
		},
		projects: []clubhouse.Project{{ID: 7, Name: "Backend"}},
		epics:    []clubhouse.Epic{{ID: 42, Name: "v1"}},
	}
	return gh, tracker
}

func TestImportSubmitsOnce(t *testing.T) {
	gh, tracker := importFixture()
	deps := &pipeline.Dependencies{
		GitHub:    gh,
		Clubhouse: tracker,
		Prompter:  &fakePrompter{answer: true},
		Mapping:   mapping.Mapping{"bob": "bobby"},
	}

	ctx := newTestContext()
	require.NoError(t, buildImport(t, deps).Run(ctx))

	require.Len(t, tracker.submitted, 1)
	stories := tracker.submitted[0]
	require.Len(t, stories, 2)

	first := stories[0]
	assert.Equal(t, "Login fails", first.Name)
	assert.Equal(t, int64(7), first.ProjectID)
	assert.Equal(t, "u-alice", first.RequestedByID)
	require.NotNil(t, first.EpicID)
	assert.Equal(t, int64(42), *first.EpicID)
	require.Len(t, first.Comments, 1)
	assert.Equal(t, "u-bobby", first.Comments[0].AuthorID)
	assert.Equal(t, "https://github.com/acme/widgets/issues/1", first.ExternalID)

	second := stories[1]
	assert.Equal(t, "u-bobby", second.RequestedByID)
	assert.Equal(t, []string{"u-alice", ""}, second.OwnerIDs)
	require.NotNil(t, second.EpicID)
	assert.Equal(t, int64(501), *second.EpicID)
	assert.Empty(t, second.Comments)

	require.Len(t, tracker.createdEp, 1)
	assert.Equal(t, "v2", tracker.createdEp[0].Name)

	listEpics := 0
	for _, c := range tracker.calls {
		if c == "ListEpics" {
			listEpics++
		}
	}
	assert.Equal(t, 1, listEpics)

	assert.True(t, ctx.Result.Submitted)
	assert.Equal(t, 2, ctx.Result.StoriesSubmitted)
	assert.Equal(t, 2, ctx.Result.EpicsAligned)
	assert.Equal(t, 1, ctx.Result.EpicsCreated)
	assert.Equal(t, 2, ctx.Result.Users)
}

func TestImportAbortMakesNoSubmission(t *testing.T) {
	gh, tracker := importFixture()
	prompter := &fakePrompter{answer: false}
	deps := &pipeline.Dependencies{GitHub: gh, Clubhouse: tracker, Prompter: prompter}

	ctx := newTestContext()
	require.NoError(t, buildImport(t, deps).Run(ctx))

	assert.Empty(t, tracker.submitted)
	assert.NotContains(t, tracker.calls, "CreateStories")
	assert.True(t, ctx.Result.Aborted)
	assert.False(t, ctx.Result.Submitted)
	assert.Equal(t, 2, ctx.Batch.Len())
	require.Len(t, prompter.asked, 1)
	assert.Contains(t, prompter.asked[0], "2 issues")
}

func TestImportEmptyRepository(t *testing.T) {
	tracker := &fakeTracker{projects: []clubhouse.Project{{ID: 7, Name: "Backend"}}}
	deps := &pipeline.Dependencies{
		GitHub:    &fakeGitHub{},
		Clubhouse: tracker,
		AssumeYes: true,
	}

	ctx := newTestContext()
	require.NoError(t, buildImport(t, deps).Run(ctx))

	require.Len(t, tracker.submitted, 1)
	assert.NotNil(t, tracker.submitted[0])
	assert.Empty(t, tracker.submitted[0])
	assert.NotContains(t, tracker.calls, "ListEpics")
}

func TestImportDryRun(t *testing.T) {
	gh, tracker := importFixture()
	dry := NewDryRunTracker(tracker)
	deps := &pipeline.Dependencies{
		GitHub:    gh,
		Clubhouse: dry,
		DryRun:    true,
		AssumeYes: true,
	}

	ctx := newTestContext()
	require.NoError(t, buildImport(t, deps).Run(ctx))

	assert.Empty(t, tracker.submitted)
	assert.Empty(t, tracker.createdEp)
	assert.Equal(t, []string{"v2"}, dry.PlannedEpics())
	assert.Equal(t, 2, ctx.Batch.Len())
	assert.Equal(t, 1, ctx.Result.EpicsCreated)
	assert.Equal(t, "dry run", ctx.Result.SkipReason)
}

func TestImportProjectNotFoundStopsEarly(t *testing.T) {
	gh, tracker := importFixture()
	tracker.projects = nil
	deps := &pipeline.Dependencies{GitHub: gh, Clubhouse: tracker, AssumeYes: true}

	err := buildImport(t, deps).Run(newTestContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_resolver")
	assert.Empty(t, gh.calls)
	assert.Equal(t, []string{"ListProjects"}, tracker.calls)
}
