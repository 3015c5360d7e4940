// Package pipeline provides step registration and preset workflow building.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// Registry holds registered step factories.
// Step factories create Step instances, allowing for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StepFactory
}

// StepFactory is a function that creates a Step.
// It receives dependencies (like clients, config) as parameters.
type StepFactory func(deps *Dependencies) (Step, error)

// IssueSource is the GitHub side of an import.
type IssueSource interface {
	ListOpenIssues(ctx context.Context, org, repo string, includePRs bool) ([]*github.Issue, error)
	ListIssueComments(ctx context.Context, org, repo string, number int) ([]*github.IssueComment, error)
	ListRepoComments(ctx context.Context, org, repo string) ([]*github.IssueComment, error)
	EnsureWebhook(ctx context.Context, org, repo, hookURL string) (bool, error)
}

// Tracker is the Clubhouse side of an import.
type Tracker interface {
	ListUsers(ctx context.Context) ([]clubhouse.User, error)
	ListProjects(ctx context.Context) ([]clubhouse.Project, error)
	ListEpics(ctx context.Context) ([]clubhouse.Epic, error)
	CreateEpic(ctx context.Context, params clubhouse.CreateEpicParams) (*clubhouse.Epic, error)
	CreateStories(ctx context.Context, stories []clubhouse.CreateStoryParams) ([]clubhouse.Story, error)
}

// Prompter asks the operator for a yes/no decision.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Dependencies holds the dependencies that can be injected into steps.
type Dependencies struct {
	GitHub    IssueSource
	Clubhouse Tracker
	Prompter  Prompter

	// Mapping is the username override table; nil means none.
	Mapping mapping.Mapping

	// DryRun simulates epic creation and never submits stories.
	DryRun bool

	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

// NewRegistry creates a new step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StepFactory),
	}
}

// Register adds a step factory to the registry.
func (r *Registry) Register(name string, factory StepFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a step factory by name.
func (r *Registry) Get(name string) (StepFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// BuildFromNames creates a pipeline from a list of step names.
func (r *Registry) BuildFromNames(names []string, deps *Dependencies) (*Pipeline, error) {
	var steps []Step
	for _, name := range names {
		factory, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
		step, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create step '%s': %w", name, err)
		}
		steps = append(steps, step)
	}
	return New(steps...), nil
}

// Presets defines the built-in workflow presets.
var Presets = map[string][]string{
	// prepare: everything up to and including conversion; safe to run under the TUI
	"prepare": {
		"project_resolver",
		"user_loader",
		"webhook_configurer",
		"issue_fetcher",
		"story_converter",
	},

	// submit: confirmation gate and the single bulk creation call
	"submit": {
		"confirmation",
		"batch_submitter",
	},

	// import: the full run, used when there is no TUI
	"import": {
		"project_resolver",
		"user_loader",
		"webhook_configurer",
		"issue_fetcher",
		"story_converter",
		"confirmation",
		"batch_submitter",
	},
}

// GetPreset returns the step names for a preset workflow.
func GetPreset(name string) ([]string, bool) {
	steps, ok := Presets[name]
	return steps, ok
}

// ResolveSteps determines the steps to use.
// Priority: explicit steps > workflow preset > default
func ResolveSteps(explicitSteps []string, workflow string) []string {
	if len(explicitSteps) > 0 {
		return explicitSteps
	}
	if workflow != "" {
		if preset, ok := GetPreset(workflow); ok {
			return preset
		}
	}
	// Default to the full import
	return Presets["import"]
}
