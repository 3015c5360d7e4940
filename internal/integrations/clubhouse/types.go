// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package clubhouse provides a client for the Clubhouse (Shortcut) REST API v3.
package clubhouse

import "time"

// User is a workspace member reduced to what user matching needs.
type User struct {
	ID       string
	Username string
	Name     string
}

// member mirrors the /members response shape.
type member struct {
	ID      string `json:"id"`
	Profile struct {
		MentionName string `json:"mention_name"`
		Name        string `json:"name"`
	} `json:"profile"`
}

// Project is a Clubhouse project.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Epic is a Clubhouse epic.
type Epic struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// CreateEpicParams is the request body for creating an epic.
type CreateEpicParams struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// CreateCommentParams is a comment embedded in a story creation request.
type CreateCommentParams struct {
	AuthorID  string    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

// CreateStoryParams is a single story in a bulk creation request.
// OwnerIDs keeps one slot per source assignee, including unmapped ones.
type CreateStoryParams struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	CreatedAt     time.Time             `json:"created_at"`
	ProjectID     int64                 `json:"project_id"`
	RequestedByID string                `json:"requested_by_id,omitempty"`
	OwnerIDs      []string              `json:"owner_ids"`
	EpicID        *int64                `json:"epic_id,omitempty"`
	ExternalID    string                `json:"external_id,omitempty"`
	Comments      []CreateCommentParams `json:"comments"`
}

// Story is a created story as returned by the API.
type Story struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"project_id"`
	EpicID    *int64 `json:"epic_id,omitempty"`
	AppURL    string `json:"app_url"`
}

type bulkStoriesRequest struct {
	Stories []CreateStoryParams `json:"stories"`
}
