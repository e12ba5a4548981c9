package aggregator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kanflow-backend/internal/integration/domain"
	"kanflow-backend/pkg/providers"
)

type fakeSource struct {
	provider domain.Provider
	items    []providers.Item
	err      error
	called   bool
}

func (f *fakeSource) Provider() domain.Provider { return f.provider }

func (f *fakeSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	f.called = true
	return f.items, f.err
}

type fakeBlacklist struct{ ids []string }

func (f *fakeBlacklist) Get() ([]string, error)             { return f.ids, nil }
func (f *fakeBlacklist) Add(id string) error                { f.ids = append(f.ids, id); return nil }
func (f *fakeBlacklist) RemoveByPrefix(prefix string) error { return nil }

func provider(key string) domain.Provider {
	p, ok := domain.ProviderByKey(key)
	if !ok {
		panic("unknown provider " + key)
	}
	return p
}

func connected(config map[string]string) domain.Integration {
	return domain.Integration{Connected: true, Config: config}
}

func TestConnectedProvidersAreNamespaced(t *testing.T) {
	gh := &fakeSource{provider: provider("github"), items: []providers.Item{
		{ID: "12", Title: "Crash on launch", URL: "https://github.com/acme/app/issues/12"},
	}}
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	zoom := &fakeSource{provider: provider("zoom"), items: []providers.Item{
		{ID: "88", Title: "Weekly sync", URL: "https://zoom.us/j/88", DueDate: &start},
	}}

	agg := New(&fakeBlacklist{}, gh, zoom)
	registry := domain.Registry{
		"github": connected(map[string]string{"token": "t", "repo": "acme/app"}),
		"zoom":   connected(map[string]string{"accountId": "a", "clientId": "c", "clientSecret": "s"}),
	}

	tasks := agg.ListExternalTasks(context.Background(), registry)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	// Zoom's position sentinel sorts it first among externals
	if tasks[0].ID != "zoom-88" {
		t.Errorf("expected zoom task first, got %s", tasks[0].ID)
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(start) {
		t.Errorf("zoom due date not derived from meeting start: %v", tasks[0].DueDate)
	}

	ghTask := tasks[1]
	if ghTask.ID != "gh-12" {
		t.Errorf("expected gh-12, got %s", ghTask.ID)
	}
	if !ghTask.IsExternal || ghTask.ExternalSource != "GitHub" {
		t.Errorf("external tagging wrong: %+v", ghTask)
	}
	if ghTask.UserID != "github" {
		t.Errorf("expected provider sentinel owner, got %s", ghTask.UserID)
	}
}

func TestDisconnectedAndMisconfiguredProvidersAreSkipped(t *testing.T) {
	gh := &fakeSource{provider: provider("github"), items: []providers.Item{{ID: "1", Title: "x"}}}
	gl := &fakeSource{provider: provider("gitlab"), items: []providers.Item{{ID: "2", Title: "y"}}}

	agg := New(&fakeBlacklist{}, gh, gl)
	registry := domain.Registry{
		// connected but missing required repo field
		"github": connected(map[string]string{"token": "t"}),
		// has config but not connected
		"gitlab": {Connected: false, Config: map[string]string{"token": "t", "projectId": "1"}},
	}

	tasks := agg.ListExternalTasks(context.Background(), registry)
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
	if gh.called || gl.called {
		t.Error("skipped providers must not be fetched")
	}
	for _, task := range tasks {
		if strings.HasPrefix(task.ID, "gh-") || strings.HasPrefix(task.ID, "gl-") {
			t.Errorf("unexpected task %s", task.ID)
		}
	}
}

func TestProviderFailureIsSwallowed(t *testing.T) {
	gh := &fakeSource{provider: provider("github"), err: errors.New("500 from api")}
	slack := &fakeSource{provider: provider("slack"), items: []providers.Item{{ID: "Rm1", Title: "Ship it"}}}

	agg := New(&fakeBlacklist{}, gh, slack)
	registry := domain.Registry{
		"github": connected(map[string]string{"token": "t", "repo": "a/b"}),
		"slack":  connected(map[string]string{"token": "xoxp"}),
	}

	tasks := agg.ListExternalTasks(context.Background(), registry)
	if len(tasks) != 1 || tasks[0].ID != "slack-Rm1" {
		t.Fatalf("expected the slack task to survive github's failure, got %+v", tasks)
	}
}

func TestHiddenTasksAreFiltered(t *testing.T) {
	gh := &fakeSource{provider: provider("github"), items: []providers.Item{
		{ID: "1", Title: "keep"},
		{ID: "2", Title: "hidden"},
	}}

	agg := New(&fakeBlacklist{ids: []string{"gh-2", "gl-9"}}, gh)
	registry := domain.Registry{"github": connected(map[string]string{"token": "t", "repo": "a/b"})}

	tasks := agg.ListExternalTasks(context.Background(), registry)
	if len(tasks) != 1 || tasks[0].ID != "gh-1" {
		t.Fatalf("expected gh-2 to be filtered, got %+v", tasks)
	}
}
