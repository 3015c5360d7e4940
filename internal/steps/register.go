// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package steps

import (
	"github.com/similigh/github2clubhouse/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("project_resolver", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewProjectResolver(deps), nil
	})

	r.Register("user_loader", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewUserLoader(deps), nil
	})

	r.Register("webhook_configurer", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewWebhookConfigurer(deps), nil
	})

	r.Register("issue_fetcher", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewIssueFetcher(deps), nil
	})

	r.Register("story_converter", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewStoryConverter(deps), nil
	})

	r.Register("confirmation", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewConfirmation(deps), nil
	})

	r.Register("batch_submitter", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewBatchSubmitter(deps), nil
	})
}
