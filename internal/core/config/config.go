// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package config handles loading and merging importer configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// DefaultConfigPath is where an extends reference looks when it names no path.
const DefaultConfigPath = ".github/github2clubhouse.yaml"

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// GitHub configures the source repository.
	GitHub GitHubConfig `yaml:"github"`

	// Clubhouse configures the target workspace and project.
	Clubhouse ClubhouseConfig `yaml:"clubhouse"`

	// UserMapping is the path of the username override file.
	UserMapping string `yaml:"user_mapping,omitempty"`
}

// GitHubConfig holds source repository settings.
type GitHubConfig struct {
	Org        string `yaml:"org"`
	Repo       string `yaml:"repo"`
	Token      string `yaml:"token,omitempty"`
	WebhookURL string `yaml:"webhook_url,omitempty"`

	// IncludePullRequests keeps pull requests, which GitHub lists as issues.
	// nil means the default (true).
	IncludePullRequests *bool `yaml:"include_pull_requests,omitempty"`

	// PrefetchComments loads all repository comments in one listing instead of per issue.
	PrefetchComments bool `yaml:"prefetch_comments,omitempty"`
}

// ClubhouseConfig holds target workspace settings.
type ClubhouseConfig struct {
	APIURL  string `yaml:"api_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	Project string `yaml:"project"`
}

// IncludePRs reports whether pull requests should be imported.
func (g GitHubConfig) IncludePRs() bool {
	return g.IncludePullRequests == nil || *g.IncludePullRequests
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		return cfg, nil
	}

	// Fetch and parse the parent config
	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

// Default returns a config with only defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	// Search in common locations
	candidates := []string{
		".github/github2clubhouse.yaml",
		".github/github2clubhouse.yml",
		".github2clubhouse.yaml",
		".github2clubhouse.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// ApplyEnv fills unset credentials and endpoints from the environment.
func (c *Config) ApplyEnv() {
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.Clubhouse.APIKey == "" {
		c.Clubhouse.APIKey = os.Getenv("CLUBHOUSE_API_TOKEN")
	}
	if c.Clubhouse.APIKey == "" {
		c.Clubhouse.APIKey = os.Getenv("SHORTCUT_API_TOKEN")
	}
	if val := os.Getenv("CLUBHOUSE_API_URL"); val != "" && (c.Clubhouse.APIURL == "" || c.Clubhouse.APIURL == clubhouse.DefaultBaseURL) {
		c.Clubhouse.APIURL = val
	}
}

// Missing lists the required settings that are still empty.
func (c *Config) Missing() []string {
	var missing []string
	if c.GitHub.Org == "" {
		missing = append(missing, "github.org")
	}
	if c.GitHub.Repo == "" {
		missing = append(missing, "github.repo")
	}
	if c.GitHub.Token == "" {
		missing = append(missing, "github.token")
	}
	if c.Clubhouse.APIKey == "" {
		missing = append(missing, "clubhouse.api_key")
	}
	if c.Clubhouse.Project == "" {
		missing = append(missing, "clubhouse.project")
	}
	return missing
}

func parseRaw(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Clubhouse.APIURL == "" {
		c.Clubhouse.APIURL = clubhouse.DefaultBaseURL
	}
	if c.UserMapping == "" {
		c.UserMapping = mapping.DefaultPath
	}
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent

	// GitHub: override if any field is set
	if child.GitHub.Org != "" {
		result.GitHub.Org = child.GitHub.Org
	}
	if child.GitHub.Repo != "" {
		result.GitHub.Repo = child.GitHub.Repo
	}
	if child.GitHub.Token != "" {
		result.GitHub.Token = child.GitHub.Token
	}
	if child.GitHub.WebhookURL != "" {
		result.GitHub.WebhookURL = child.GitHub.WebhookURL
	}
	if child.GitHub.IncludePullRequests != nil {
		result.GitHub.IncludePullRequests = child.GitHub.IncludePullRequests
	}
	// PrefetchComments: always take the child value so it can turn the parent setting off
	result.GitHub.PrefetchComments = child.GitHub.PrefetchComments

	// Clubhouse: override if any field is set
	if child.Clubhouse.APIURL != "" && child.Clubhouse.APIURL != clubhouse.DefaultBaseURL {
		result.Clubhouse.APIURL = child.Clubhouse.APIURL
	}
	if child.Clubhouse.APIKey != "" {
		result.Clubhouse.APIKey = child.Clubhouse.APIKey
	}
	if child.Clubhouse.Project != "" {
		result.Clubhouse.Project = child.Clubhouse.Project
	}

	if child.UserMapping != "" && child.UserMapping != mapping.DefaultPath {
		result.UserMapping = child.UserMapping
	}

	result.Extends = ""

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	// Check for path
	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = DefaultConfigPath
	}

	return org, repo, branch, path, nil
}
