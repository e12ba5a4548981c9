package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGitHubIssuesFiltersPullRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/app/issues" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"number": 12, "title": "Crash on launch", "body": "steps...", "html_url": "https://github.com/acme/app/issues/12"},
			{"number": 13, "title": "Fix crash", "html_url": "https://github.com/acme/app/pull/13", "pull_request": {"url": "x"}}
		]`))
	}))
	defer srv.Close()

	items, err := NewGitHubClient(srv.URL).Issues(context.Background(), "tok", "acme/app")
	if err != nil {
		t.Fatalf("Issues failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item (PR filtered), got %d", len(items))
	}
	if items[0].ID != "12" || items[0].Title != "Crash on launch" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestGitHubIssuesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := NewGitHubClient(srv.URL).Issues(context.Background(), "bad", "acme/app"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestGitLabIssuesParsesDueDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("PRIVATE-TOKEN"); got != "glpat" {
			t.Errorf("unexpected token header %q", got)
		}
		w.Write([]byte(`[{"iid": 4, "title": "Broken CI", "description": "d", "web_url": "https://gitlab.com/x/-/issues/4", "due_date": "2026-09-15"}]`))
	}))
	defer srv.Close()

	client := NewGitLabClient(func() string { return srv.URL })
	items, err := client.Issues(context.Background(), "glpat", "123")
	if err != nil {
		t.Fatalf("Issues failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].DueDate == nil || items[0].DueDate.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("due date not parsed: %v", items[0].DueDate)
	}
}

func TestSlackRemindersOKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
	}))
	defer srv.Close()

	_, err := NewSlackClient(srv.URL).Reminders(context.Background(), "xoxp")
	if err == nil {
		t.Fatal("expected error when ok=false")
	}
}

func TestSlackRemindersSkipsCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true, "reminders": [
			{"id": "Rm1", "text": "Ship release", "time": 1767225600},
			{"id": "Rm2", "text": "Done already", "time": 1767225600, "complete_ts": 1767000000}
		]}`))
	}))
	defer srv.Close()

	items, err := NewSlackClient(srv.URL).Reminders(context.Background(), "xoxp")
	if err != nil {
		t.Fatalf("Reminders failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "Rm1" {
		t.Errorf("expected only the incomplete reminder, got %+v", items)
	}
	if items[0].DueDate == nil {
		t.Error("reminder time not mapped to due date")
	}
}

func TestDiscordMessagesSkipsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot b0t" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`[
			{"id": "900", "content": "standup at 10", "channel_id": "42", "author": {"username": "ari"}},
			{"id": "901", "content": "", "channel_id": "42", "author": {"username": "bot"}}
		]`))
	}))
	defer srv.Close()

	items, err := NewDiscordClient(srv.URL).ChannelMessages(context.Background(), "b0t", "42")
	if err != nil {
		t.Fatalf("ChannelMessages failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "900" {
		t.Errorf("expected 1 item, got %+v", items)
	}
}

func TestFigmaProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Figma-Token"); got != "figd" {
			t.Errorf("unexpected token header %q", got)
		}
		w.Write([]byte(`{"name": "Design Team", "projects": [{"id": "777", "name": "Onboarding flow"}]}`))
	}))
	defer srv.Close()

	items, err := NewFigmaClient(srv.URL).Projects(context.Background(), "figd", "t1")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "777" || items[0].Title != "Onboarding flow" {
		t.Errorf("unexpected items: %+v", items)
	}
}
