// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/similigh/github2clubhouse/internal/integrations/github"
)

var (
	webhookOrg  string
	webhookRepo string
	webhookURL  string
)

// webhookCmd registers the Clubhouse webhook without importing anything
var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Register the Clubhouse webhook on a repository",
	Long: `Register the Clubhouse GitHub integration webhook on a repository.
Nothing is changed when a hook with the same URL already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWebhook()
	},
}

func init() {
	rootCmd.AddCommand(webhookCmd)

	webhookCmd.Flags().StringVar(&webhookOrg, "org", "", "GitHub organisation or user")
	webhookCmd.Flags().StringVar(&webhookRepo, "repo", "", "GitHub repository name")
	webhookCmd.Flags().StringVar(&webhookURL, "url", "", "Webhook URL")
}

func runWebhook() {
	cfg := loadConfig(os.Stdout)
	cfg.ApplyEnv()
	if webhookOrg != "" {
		cfg.GitHub.Org = webhookOrg
	}
	if webhookRepo != "" {
		cfg.GitHub.Repo = webhookRepo
	}
	if webhookURL != "" {
		cfg.GitHub.WebhookURL = webhookURL
	}

	if cfg.GitHub.Org == "" || cfg.GitHub.Repo == "" || cfg.GitHub.Token == "" || cfg.GitHub.WebhookURL == "" {
		fmt.Println("❌ --org, --repo, --url and GITHUB_TOKEN are required")
		os.Exit(1)
	}

	ctx := context.Background()
	client := github.NewClient(ctx, cfg.GitHub.Token)

	created, err := client.EnsureWebhook(ctx, cfg.GitHub.Org, cfg.GitHub.Repo, cfg.GitHub.WebhookURL)
	if err != nil {
		fmt.Printf("❌ Error configuring webhook: %v\n", err)
		os.Exit(1)
	}

	if created {
		fmt.Printf("✓ Webhook created on %s/%s\n", cfg.GitHub.Org, cfg.GitHub.Repo)
	} else {
		fmt.Printf("ℹ Webhook already present on %s/%s\n", cfg.GitHub.Org, cfg.GitHub.Repo)
	}
}
