// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package steps contains the modular "Lego block" pipeline steps.
// Each step implements the pipeline.Step interface.
package steps

import (
	"errors"
	"fmt"
	"log"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/migrate"
)

// ProjectResolver finds the target Clubhouse project by name.
type ProjectResolver struct {
	clubhouse pipeline.Tracker
}

// NewProjectResolver creates a new project resolver step.
func NewProjectResolver(deps *pipeline.Dependencies) *ProjectResolver {
	return &ProjectResolver{
		clubhouse: deps.Clubhouse,
	}
}

// Name returns the step name.
func (s *ProjectResolver) Name() string {
	return "project_resolver"
}

// Run lists the workspace projects and selects the configured one.
func (s *ProjectResolver) Run(ctx *pipeline.Context) error {
	if s.clubhouse == nil {
		return errors.New("clubhouse client not configured")
	}

	projects, err := s.clubhouse.ListProjects(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	project, err := migrate.FindProject(projects, ctx.Config.Clubhouse.Project)
	if err != nil {
		return err
	}

	log.Printf("[project_resolver] Using project %q (id %d)", project.Name, project.ID)
	ctx.Project = project
	ctx.Result.Project = project.Name
	return nil
}
