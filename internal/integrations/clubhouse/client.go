// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clubhouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// DefaultBaseURL is the public Shortcut API v3 endpoint.
const DefaultBaseURL = "https://api.app.shortcut.com/api/v3"

// APIError is returned for non-2xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clubhouse %s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the Clubhouse REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a client for the given API token.
// An empty baseURL selects DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// ListUsers returns every workspace member, disabled ones included.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var members []member
	if err := c.do(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]User, 0, len(members))
	for _, m := range members {
		users = append(users, User{
			ID:       m.ID,
			Username: m.Profile.MentionName,
			Name:     m.Profile.Name,
		})
	}
	return users, nil
}

// ListProjects returns every project in the workspace.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListEpics returns every epic in the workspace.
func (c *Client) ListEpics(ctx context.Context) ([]Epic, error) {
	var epics []Epic
	if err := c.do(ctx, http.MethodGet, "/epics", nil, &epics); err != nil {
		return nil, fmt.Errorf("failed to list epics: %w", err)
	}
	return epics, nil
}

// CreateEpic creates an epic and returns it with its assigned ID.
func (c *Client) CreateEpic(ctx context.Context, params CreateEpicParams) (*Epic, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("epic name cannot be empty")
	}

	var epic Epic
	if err := c.do(ctx, http.MethodPost, "/epics", params, &epic); err != nil {
		return nil, fmt.Errorf("failed to create epic %q: %w", params.Name, err)
	}
	return &epic, nil
}

// CreateStories creates all stories in a single bulk request.
func (c *Client) CreateStories(ctx context.Context, stories []CreateStoryParams) ([]Story, error) {
	if stories == nil {
		stories = []CreateStoryParams{}
	}

	var created []Story
	if err := c.do(ctx, http.MethodPost, "/stories/bulk", bulkStoriesRequest{Stories: stories}, &created); err != nil {
		return nil, fmt.Errorf("failed to create stories: %w", err)
	}
	return created, nil
}

// do sends a JSON request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Shortcut-Token", c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep error bodies short; they can echo request content.
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: truncateBody(respBody, maxErrorBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

const maxErrorBody = 200

// truncateBody cuts body to at most limit bytes without splitting a UTF-8 rune.
func truncateBody(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
