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

// UserLoader takes the Clubhouse user snapshot used for the whole run.
type UserLoader struct {
	clubhouse pipeline.Tracker
}

// NewUserLoader creates a new user loader step.
func NewUserLoader(deps *pipeline.Dependencies) *UserLoader {
	return &UserLoader{clubhouse: deps.Clubhouse}
}

// Name returns the step name.
func (s *UserLoader) Name() string {
	return "user_loader"
}

// Run fetches the workspace members.
func (s *UserLoader) Run(ctx *pipeline.Context) error {
	if s.clubhouse == nil {
		return errors.New("clubhouse client not configured")
	}

	users, err := s.clubhouse.ListUsers(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	log.Printf("[user_loader] Loaded %d Clubhouse users", len(users))
	ctx.Users = users
	ctx.Result.Users = len(users)
	return nil
}
