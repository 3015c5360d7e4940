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

// WebhookConfigurer registers the Clubhouse integration webhook on the repository.
// It does nothing when no webhook URL is configured.
type WebhookConfigurer struct {
	github pipeline.IssueSource
	dryRun bool
}

// NewWebhookConfigurer creates a new webhook configurer step.
func NewWebhookConfigurer(deps *pipeline.Dependencies) *WebhookConfigurer {
	return &WebhookConfigurer{
		github: deps.GitHub,
		dryRun: deps.DryRun,
	}
}

// Name returns the step name.
func (s *WebhookConfigurer) Name() string {
	return "webhook_configurer"
}

// Run ensures a hook targeting the configured URL exists.
func (s *WebhookConfigurer) Run(ctx *pipeline.Context) error {
	hookURL := ctx.Config.GitHub.WebhookURL
	if hookURL == "" {
		log.Printf("[webhook_configurer] No webhook URL configured, skipping")
		return nil
	}

	org, repo := ctx.Config.GitHub.Org, ctx.Config.GitHub.Repo
	if s.dryRun {
		log.Printf("[webhook_configurer] [DryRun] Would ensure webhook %s on %s/%s", hookURL, org, repo)
		return nil
	}

	if s.github == nil {
		return errors.New("github client not configured")
	}

	created, err := s.github.EnsureWebhook(ctx.Ctx, org, repo, hookURL)
	if err != nil {
		return fmt.Errorf("failed to configure webhook: %w", err)
	}

	if created {
		log.Printf("[webhook_configurer] Created webhook %s on %s/%s", hookURL, org, repo)
	} else {
		log.Printf("[webhook_configurer] Webhook %s already present", hookURL)
	}
	ctx.Result.WebhookCreated = created
	return nil
}
