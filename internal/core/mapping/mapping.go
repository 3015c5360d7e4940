// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package mapping loads the GitHub→Clubhouse username override file.
//
// Each non-blank line holds "githubUser,clubhouseUser". Lines starting with '#' are comments.
package mapping

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPath is the mapping file looked up in the working directory.
const DefaultPath = "usermapping.txt"

// Mapping maps a GitHub login to a Clubhouse username. Keys are matched exactly.
type Mapping map[string]string

// Lookup returns the Clubhouse username mapped to login.
func (m Mapping) Lookup(login string) (string, bool) {
	if m == nil {
		return "", false
	}
	target, ok := m[login]
	return target, ok
}

// ParseError reports a line that is not a two-field pair.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected 'githubUser,clubhouseUser', got %q", e.Line, e.Text)
}

// Parse reads a mapping from r.
func Parse(r io.Reader) (Mapping, error) {
	m := make(Mapping)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		source := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])
		if source == "" || target == "" {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		m[source] = target
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return m, nil
}

// LoadFile reads a mapping file. A missing file yields an error matching os.ErrNotExist.
func LoadFile(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("invalid mapping file %s: %w", path, err)
	}
	return m, nil
}
