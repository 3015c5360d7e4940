// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/similigh/github2clubhouse/internal/core/config"
	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/integrations/github"
)

// loadConfig resolves the config file, following extends references through GitHub.
// A broken or missing file falls back to defaults. Notices go to w.
func loadConfig(w io.Writer) *config.Config {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		if cfgFile != "" {
			fmt.Fprintf(w, "Warning: config file %s not found. Using defaults.\n", cfgFile)
		} else if verbose {
			fmt.Fprintln(w, "No configuration file found. Using defaults and environment variables.")
		}
		return config.Default()
	}

	// Prepare fetcher for inheritance
	configToken := os.Getenv("GITHUB_TOKEN")
	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		if configToken == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}
		ghClient := github.NewClient(context.Background(), configToken)
		return ghClient.GetFileContent(context.Background(), org, repo, path, branch)
	}

	cfg, err := config.LoadWithInheritance(cfgPath, fetcher)
	if err != nil {
		fmt.Fprintf(w, "Warning: Failed to load config from %s: %v. Using defaults.\n", cfgPath, err)
		return config.Default()
	}
	if verbose {
		fmt.Fprintf(w, "Loaded config from %s\n", cfgPath)
	}
	return cfg
}

// loadMapping reads the override file. A missing file means no overrides.
func loadMapping(w io.Writer, path string) (mapping.Mapping, error) {
	m, err := mapping.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if verbose {
				fmt.Fprintf(w, "ℹ No user mapping file at %s, continuing without overrides\n", path)
			}
			return nil, nil
		}
		return nil, err
	}
	if verbose {
		fmt.Fprintf(w, "✓ Loaded %d user mappings from %s\n", len(m), path)
	}
	return m, nil
}
