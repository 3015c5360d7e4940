// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v60/github"
)

// newTestClient points a Client at an httptest server.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	gh.BaseURL = base
	return &Client{client: gh}
}

func TestListOpenIssuesPaginatesAndFiltersPRs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("expected state=open, got %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "" {
			t.Errorf("expected GitHub's default order, got sort=%q", got)
		}
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", `<https://api.github.com/repos/org/repo/issues?page=2>; rel="next"`)
			io.WriteString(w, `[{"number": 1, "title": "first"}, {"number": 2, "title": "a pr", "pull_request": {"url": "x"}}]`)
		case "2":
			io.WriteString(w, `[{"number": 3, "title": "third"}]`)
		}
	})
	client := newTestClient(t, mux)

	issues, err := client.ListOpenIssues(context.Background(), "org", "repo", false)
	if err != nil {
		t.Fatalf("ListOpenIssues failed: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues without PRs, got %d", len(issues))
	}
	if issues[0].GetNumber() != 1 || issues[1].GetNumber() != 3 {
		t.Errorf("unexpected order: #%d, #%d", issues[0].GetNumber(), issues[1].GetNumber())
	}

	withPRs, err := client.ListOpenIssues(context.Background(), "org", "repo", true)
	if err != nil {
		t.Fatalf("ListOpenIssues failed: %v", err)
	}
	if len(withPRs) != 3 {
		t.Errorf("expected 3 items with PRs, got %d", len(withPRs))
	}
}

func TestListIssueComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/issues/5/comments", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "body": "one", "user": {"login": "alice"}}, {"id": 2, "body": "two", "user": {"login": "bob"}}]`)
	})
	client := newTestClient(t, mux)

	comments, err := client.ListIssueComments(context.Background(), "org", "repo", 5)
	if err != nil {
		t.Fatalf("ListIssueComments failed: %v", err)
	}
	if len(comments) != 2 || comments[0].GetBody() != "one" || comments[1].GetUser().GetLogin() != "bob" {
		t.Errorf("unexpected comments: %+v", comments)
	}
}

func TestListRepoComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/issues/comments", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sort"); got != "created" {
			t.Errorf("expected sort=created, got %q", got)
		}
		io.WriteString(w, `[{"id": 9, "body": "hi", "issue_url": "https://api.github.com/repos/org/repo/issues/4"}]`)
	})
	client := newTestClient(t, mux)

	comments, err := client.ListRepoComments(context.Background(), "org", "repo")
	if err != nil {
		t.Fatalf("ListRepoComments failed: %v", err)
	}
	if len(comments) != 1 || comments[0].GetID() != 9 {
		t.Errorf("unexpected comments: %+v", comments)
	}
}

func TestEnsureWebhook(t *testing.T) {
	tests := []struct {
		name        string
		existing    string
		wantCreated bool
	}{
		{"no hooks", `[]`, true},
		{"other hook", `[{"id": 1, "config": {"url": "https://example.com/other"}}]`, true},
		{"already registered", `[{"id": 1, "config": {"url": "https://example.com/hook"}}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/org/repo/hooks", func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodGet:
					io.WriteString(w, tt.existing)
				case http.MethodPost:
					created = true
					var hook github.Hook
					if err := json.NewDecoder(r.Body).Decode(&hook); err != nil {
						t.Fatalf("failed to decode hook: %v", err)
					}
					if hook.GetName() != "web" || hook.Config.GetContentType() != "json" {
						t.Errorf("unexpected hook payload: %+v", hook)
					}
					w.WriteHeader(http.StatusCreated)
					io.WriteString(w, `{"id": 2}`)
				}
			})
			client := newTestClient(t, mux)

			got, err := client.EnsureWebhook(context.Background(), "org", "repo", "https://example.com/hook")
			if err != nil {
				t.Fatalf("EnsureWebhook failed: %v", err)
			}
			if got != tt.wantCreated || created != tt.wantCreated {
				t.Errorf("expected created=%v, got returned=%v posted=%v", tt.wantCreated, got, created)
			}
		})
	}
}

func TestEnsureWebhookValidation(t *testing.T) {
	client := &Client{client: nil} // nil client for validation testing

	if _, err := client.EnsureWebhook(context.Background(), "org", "repo", " "); err == nil {
		t.Error("Expected error for empty webhook URL")
	}
}

func TestGetFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/contents/.github/github2clubhouse.yaml", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "main" {
			t.Errorf("expected ref=main, got %q", got)
		}
		encoded := base64.StdEncoding.EncodeToString([]byte("clubhouse:\n  project: Backend\n"))
		fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`, encoded)
	})
	client := newTestClient(t, mux)

	data, err := client.GetFileContent(context.Background(), "org", "repo", ".github/github2clubhouse.yaml", "main")
	if err != nil {
		t.Fatalf("GetFileContent failed: %v", err)
	}
	if string(data) != "clubhouse:\n  project: Backend\n" {
		t.Errorf("unexpected content %q", string(data))
	}
}
