// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package pipeline provides the step engine that sequences an import run.
// It defines the Step interface and the Context shared by all steps of a run.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/similigh/github2clubhouse/internal/core/config"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
	"github.com/similigh/github2clubhouse/internal/migrate"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g., the import was not confirmed).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic.
	// It should return ErrSkipPipeline to stop the pipeline gracefully,
	// or any other error to indicate failure.
	Run(ctx *Context) error
}

// Result summarises an import run.
type Result struct {
	RunID            string `json:"run_id"`
	Project          string `json:"project"`
	Users            int    `json:"users"`
	Issues           int    `json:"issues"`
	EpicsAligned     int    `json:"epics_aligned"`
	EpicsCreated     int    `json:"epics_created"`
	WebhookCreated   bool   `json:"webhook_created"`
	StoriesSubmitted int    `json:"stories_submitted"`
	Submitted        bool   `json:"submitted"`
	Aborted          bool   `json:"aborted"`
	SkipReason       string `json:"skip_reason,omitempty"`
}

// ProgressFunc is told how many issues have been converted so far.
type ProgressFunc func(current, total int)

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Config is the resolved configuration.
	Config *config.Config

	// Project is the target project, set once resolved.
	Project *clubhouse.Project

	// Users is the Clubhouse user snapshot for the run.
	Users []clubhouse.User

	// Issues are the open GitHub issues in fetch order.
	Issues []migrate.Issue

	// Batch accumulates converted stories until submission.
	Batch *migrate.Batch

	// Result accumulates the run summary.
	Result *Result

	// Progress, if set, is called after every converted issue.
	Progress ProgressFunc
}

// NewContext creates a new pipeline context for one import run.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	return &Context{
		Ctx:    ctx,
		Config: cfg,
		Batch:  migrate.NewBatch(),
		Result: &Result{RunID: uuid.NewString()},
	}
}

// ReportProgress forwards to Progress when one is set.
func (c *Context) ReportProgress(current, total int) {
	if c.Progress != nil {
		c.Progress(current, total)
	}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// Stops on the first error (unless it's ErrSkipPipeline, which is graceful).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				// Graceful early exit
				return nil
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
