// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"errors"
	"log"

	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/migrate"
)

// StoryConverter converts every fetched issue into the run's batch.
type StoryConverter struct {
	github    pipeline.IssueSource
	clubhouse pipeline.Tracker
	mapping   mapping.Mapping
}

// NewStoryConverter creates a new story converter step.
func NewStoryConverter(deps *pipeline.Dependencies) *StoryConverter {
	return &StoryConverter{
		github:    deps.GitHub,
		clubhouse: deps.Clubhouse,
		mapping:   deps.Mapping,
	}
}

// Name returns the step name.
func (s *StoryConverter) Name() string {
	return "story_converter"
}

// Run converts issues in fetch order, reporting progress after each one.
func (s *StoryConverter) Run(ctx *pipeline.Context) error {
	if s.github == nil || s.clubhouse == nil {
		return errors.New("github and clubhouse clients are required")
	}
	if ctx.Project == nil {
		return errors.New("no project resolved")
	}

	gh := ctx.Config.GitHub
	var comments migrate.CommentSource = &issueComments{github: s.github, org: gh.Org, repo: gh.Repo}
	if gh.PrefetchComments {
		comments = &prefetchedComments{github: s.github, org: gh.Org, repo: gh.Repo}
	}

	users := migrate.NewUserMapper(ctx.Users, s.mapping)
	epics := migrate.NewEpicResolver(s.clubhouse)
	converter := migrate.NewConverter(ctx.Project.ID, users, epics)

	total := len(ctx.Issues)
	for i, issue := range ctx.Issues {
		if err := ctx.Ctx.Err(); err != nil {
			return err
		}

		_, epicID, err := converter.Convert(ctx.Ctx, issue, comments, ctx.Batch)
		if err != nil {
			return err
		}
		if epicID > 0 {
			ctx.Result.EpicsAligned++
		}
		ctx.ReportProgress(i+1, total)
	}

	ctx.Result.EpicsCreated = epics.Created()
	log.Printf("[story_converter] Converted %d issues, %d aligned with epics (%d epics created)",
		ctx.Batch.Len(), ctx.Result.EpicsAligned, ctx.Result.EpicsCreated)
	return nil
}
