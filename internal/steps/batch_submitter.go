// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"errors"
	"fmt"
	"log"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
)

// BatchSubmitter sends the accumulated stories in a single bulk call.
type BatchSubmitter struct {
	clubhouse pipeline.Tracker
	dryRun    bool
}

// NewBatchSubmitter creates a new batch submitter step.
func NewBatchSubmitter(deps *pipeline.Dependencies) *BatchSubmitter {
	return &BatchSubmitter{
		clubhouse: deps.Clubhouse,
		dryRun:    deps.DryRun,
	}
}

// Name returns the step name.
func (s *BatchSubmitter) Name() string {
	return "batch_submitter"
}

// Run submits the batch.
func (s *BatchSubmitter) Run(ctx *pipeline.Context) error {
	if s.dryRun {
		log.Printf("[batch_submitter] [DryRun] Would submit %d stories", ctx.Batch.Len())
		ctx.Result.SkipReason = "dry run"
		return pipeline.ErrSkipPipeline
	}
	if s.clubhouse == nil {
		return errors.New("clubhouse client not configured")
	}

	created, err := ctx.Batch.Submit(ctx.Ctx, s.clubhouse)
	if err != nil {
		return fmt.Errorf("failed to submit stories: %w", err)
	}

	log.Printf("[batch_submitter] Created %d stories", len(created))
	ctx.Result.StoriesSubmitted = len(created)
	ctx.Result.Submitted = true
	return nil
}
