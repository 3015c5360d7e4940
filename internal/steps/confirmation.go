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

// Confirmation asks the operator before anything is submitted.
type Confirmation struct {
	prompter  pipeline.Prompter
	assumeYes bool
}

// NewConfirmation creates a new confirmation step.
func NewConfirmation(deps *pipeline.Dependencies) *Confirmation {
	return &Confirmation{
		prompter:  deps.Prompter,
		assumeYes: deps.AssumeYes,
	}
}

// Name returns the step name.
func (s *Confirmation) Name() string {
	return "confirmation"
}

// Run stops the pipeline unless the operator agrees.
func (s *Confirmation) Run(ctx *pipeline.Context) error {
	if s.assumeYes {
		log.Printf("[confirmation] --yes given, not prompting")
		return nil
	}
	if s.prompter == nil {
		return errors.New("no prompter configured; pass --yes to import without confirmation")
	}

	question := fmt.Sprintf("Ready to import %d issues into %q, %d aligned with epics. Continue? [y/N] ",
		ctx.Batch.Len(), ctx.Result.Project, ctx.Result.EpicsAligned)

	ok, err := s.prompter.Confirm(question)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		ctx.Result.Aborted = true
		ctx.Result.SkipReason = "import not confirmed"
		return pipeline.ErrSkipPipeline
	}
	return nil
}
