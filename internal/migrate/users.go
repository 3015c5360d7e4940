// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"strings"

	"github.com/similigh/github2clubhouse/internal/core/mapping"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// UserMapper resolves GitHub logins to Clubhouse user IDs.
type UserMapper struct {
	users     []clubhouse.User
	overrides mapping.Mapping
}

// NewUserMapper creates a mapper over a fixed user snapshot. overrides may be nil.
func NewUserMapper(users []clubhouse.User, overrides mapping.Mapping) *UserMapper {
	return &UserMapper{users: users, overrides: overrides}
}

// Resolve returns the Clubhouse user ID for a GitHub login, or "" when nothing matches.
//
// A Clubhouse user whose username equals the login (ignoring case) always wins.
// Otherwise the override mapping is consulted and its target username matched the same way.
func (m *UserMapper) Resolve(login string) string {
	if id, ok := m.findByUsername(login); ok {
		return id
	}

	if target, ok := m.overrides.Lookup(login); ok {
		if id, ok := m.findByUsername(target); ok {
			return id
		}
	}

	return ""
}

// ResolveAll resolves each login, keeping an empty slot for every unmatched one.
func (m *UserMapper) ResolveAll(logins []string) []string {
	ids := make([]string, len(logins))
	for i, login := range logins {
		ids[i] = m.Resolve(login)
	}
	return ids
}

func (m *UserMapper) findByUsername(username string) (string, bool) {
	if username == "" {
		return "", false
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u.ID, true
		}
	}
	return "", false
}
