package usecase

import (
	"context"
	"errors"
	"testing"

	integrationdomain "kanflow-backend/internal/integration/domain"
	"kanflow-backend/internal/task/domain"
	"kanflow-backend/internal/task/repository"
)

type fakeMode struct{ guest bool }

func (f *fakeMode) IsGuestMode() bool { return f.guest }

// fakeRepo is an in-memory TaskRepository. When failAll is set, any call
// fails the test: it marks a store that must never be touched.
type fakeRepo struct {
	t         *testing.T
	name      string
	failAll   bool
	tasks     []*domain.Task
	updateErr error
}

func (f *fakeRepo) guard() {
	if f.failAll {
		f.t.Errorf("%s store must not be touched in this mode", f.name)
	}
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	f.guard()
	return f.tasks, nil
}

func (f *fakeRepo) Create(ctx context.Context, task *domain.Task) error {
	f.guard()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	f.guard()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, task := range f.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id string) error {
	f.guard()
	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) DeleteAll(ctx context.Context, userID string) error {
	f.guard()
	f.tasks = nil
	return nil
}

type fakeIntegrations struct{ registry integrationdomain.Registry }

func (f *fakeIntegrations) GetRegistry(userID string) (integrationdomain.Registry, error) {
	return f.registry, nil
}

func (f *fakeIntegrations) Connect(userID, provider string, config map[string]string) (integrationdomain.Registry, error) {
	return f.registry, nil
}

func (f *fakeIntegrations) Disconnect(userID, provider string) (integrationdomain.Registry, error) {
	return f.registry, nil
}

type fakeAggregator struct{ tasks []domain.Task }

func (f *fakeAggregator) ListExternalTasks(ctx context.Context, registry integrationdomain.Registry) []domain.Task {
	return f.tasks
}

type fakeBlacklist struct{ ids []string }

func (f *fakeBlacklist) Get() ([]string, error)             { return f.ids, nil }
func (f *fakeBlacklist) Add(id string) error                { f.ids = append(f.ids, id); return nil }
func (f *fakeBlacklist) RemoveByPrefix(prefix string) error { return nil }

func TestGuestModeNeverTouchesRemote(t *testing.T) {
	local := &fakeRepo{t: t, name: "local"}
	remote := &fakeRepo{t: t, name: "remote", failAll: true}
	uc := NewTaskUsecase(&fakeMode{guest: true}, local, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "ignored", CreateTaskRequest{Title: "guest task"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.UserID != "ignored" && task.UserID != repository.GuestUserID {
		t.Errorf("unexpected owner %q", task.UserID)
	}

	title := "renamed"
	if _, err := uc.UpdateTask(ctx, "ignored", task.ID, domain.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if err := uc.DeleteTask(ctx, "ignored", task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if err := uc.DeleteAllTasks(ctx, "ignored"); err != nil {
		t.Fatalf("DeleteAllTasks failed: %v", err)
	}
}

func TestExternalIDsAreImmutable(t *testing.T) {
	local := &fakeRepo{t: t, name: "local", failAll: true}
	remote := &fakeRepo{t: t, name: "remote", failAll: true}
	uc := NewTaskUsecase(&fakeMode{}, local, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})
	ctx := context.Background()

	for _, id := range []string{"gh-123", "gl-9", "sen-a1", "fig-77", "zoom-5", "slack-Rm1", "disc-900"} {
		title := "try"
		if _, err := uc.UpdateTask(ctx, "u1", id, domain.TaskPatch{Title: &title}); !errors.Is(err, ErrExternalReadOnly) {
			t.Errorf("UpdateTask(%s): expected ErrExternalReadOnly, got %v", id, err)
		}
		if err := uc.DeleteTask(ctx, "u1", id); !errors.Is(err, ErrExternalReadOnly) {
			t.Errorf("DeleteTask(%s): expected ErrExternalReadOnly, got %v", id, err)
		}
	}
}

func TestGetTasksMergesExternals(t *testing.T) {
	remote := &fakeRepo{t: t, name: "remote", tasks: []*domain.Task{
		{ID: "a", Title: "mine", Position: 0},
	}}
	agg := &fakeAggregator{tasks: []domain.Task{
		{ID: "gh-1", Title: "issue", IsExternal: true, Position: 1001},
	}}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local", failAll: true}, remote, &fakeIntegrations{}, agg, &fakeBlacklist{})

	tasks, err := uc.GetTasks(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[1].ID != "gh-1" {
		t.Errorf("externals must come after the authoritative list: %s, %s", tasks[0].ID, tasks[1].ID)
	}
}

func TestUpdateTimeoutIsDistinct(t *testing.T) {
	remote := &fakeRepo{t: t, name: "remote", updateErr: context.DeadlineExceeded}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local", failAll: true}, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})

	title := "x"
	_, err := uc.UpdateTask(context.Background(), "u1", "task-1", domain.TaskPatch{Title: &title})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	// A backend-reported failure must not look like a timeout
	remote.updateErr = repository.ErrNotFoundOrDenied
	_, err = uc.UpdateTask(context.Background(), "u1", "task-1", domain.TaskPatch{Title: &title})
	if errors.Is(err, ErrTimeout) || !errors.Is(err, repository.ErrNotFoundOrDenied) {
		t.Fatalf("expected ErrNotFoundOrDenied, got %v", err)
	}
}

func TestDeleteAllWithZeroTasksIsNoOp(t *testing.T) {
	remote := &fakeRepo{t: t, name: "remote"}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local", failAll: true}, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})

	if err := uc.DeleteAllTasks(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteAllTasks on empty store must succeed, got %v", err)
	}
}

func TestHideExternalTask(t *testing.T) {
	bl := &fakeBlacklist{}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local"}, &fakeRepo{t: t, name: "remote"}, &fakeIntegrations{}, &fakeAggregator{}, bl)

	if err := uc.HideExternalTask("gh-42"); err != nil {
		t.Fatalf("HideExternalTask failed: %v", err)
	}
	if len(bl.ids) != 1 || bl.ids[0] != "gh-42" {
		t.Errorf("id not blacklisted: %v", bl.ids)
	}

	if err := uc.HideExternalTask("plain-uuid"); !errors.Is(err, ErrNotExternal) {
		t.Errorf("expected ErrNotExternal, got %v", err)
	}
}

func TestSearchTasksToleratesTypos(t *testing.T) {
	remote := &fakeRepo{t: t, name: "remote", tasks: []*domain.Task{
		{ID: "1", Title: "Deploy staging environment"},
		{ID: "2", Title: "Write release notes", Description: "deployment summary"},
		{ID: "3", Title: "Water the plants"},
	}}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local", failAll: true}, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})

	tasks, err := uc.SearchTasks(context.Background(), "u1", "deploy")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(tasks))
	}
	// Title hits rank above description hits
	if tasks[0].ID != "1" {
		t.Errorf("expected title match first, got %s", tasks[0].ID)
	}

	// A transposition still finds the title match
	tasks, err = uc.SearchTasks(context.Background(), "u1", "depoly")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "1" {
		t.Errorf("expected typo to match task 1, got %d results", len(tasks))
	}

	// Blank query returns everything unfiltered
	tasks, err = uc.SearchTasks(context.Background(), "u1", "  ")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected all tasks for blank query, got %d", len(tasks))
	}
}

func TestStatsCountReviewSeparately(t *testing.T) {
	remote := &fakeRepo{t: t, name: "remote", tasks: []*domain.Task{
		{ID: "1", Status: domain.StatusTodo},
		{ID: "2", Status: domain.StatusInProgress},
		{ID: "3", Status: domain.StatusReview},
		{ID: "4", Status: domain.StatusDone},
		{ID: "5", Status: domain.StatusReview},
	}}
	uc := NewTaskUsecase(&fakeMode{}, &fakeRepo{t: t, name: "local", failAll: true}, remote, &fakeIntegrations{}, &fakeAggregator{}, &fakeBlacklist{})

	stats, err := uc.GetStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Review != 2 || stats.Todo != 1 || stats.InProgress != 1 || stats.Done != 1 || stats.Total != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
