// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"errors"
	"fmt"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// ErrProjectNotFound means no Clubhouse project carries the configured name.
var ErrProjectNotFound = errors.New("clubhouse project not found")

// FindProject returns the project whose name equals name exactly.
func FindProject(projects []clubhouse.Project, name string) (*clubhouse.Project, error) {
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("couldn't find a Clubhouse project with the name %q: %w", name, ErrProjectNotFound)
}
