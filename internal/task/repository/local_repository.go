package repository

import (
	"context"
	"time"

	"kanflow-backend/internal/task/domain"
	"kanflow-backend/pkg/localstore"

	"github.com/google/uuid"
)

const guestTasksKey = "guest_tasks"

// GuestUserID marks tasks created without an account.
const GuestUserID = "guest"

// localTaskRepository implements TaskRepository on top of the local sqlite
// key/value store. Guest mode is single-user and single-threaded, so the
// whole list is read-modify-written without locking.
type localTaskRepository struct {
	store *localstore.Store
}

// NewLocalTaskRepository creates the guest-mode TaskRepository
func NewLocalTaskRepository(store *localstore.Store) TaskRepository {
	return &localTaskRepository{store: store}
}

func (r *localTaskRepository) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		tasks = sampleTasks()
		if err := r.save(tasks); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *localTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.UserID = GuestUserID
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	if task.Position == 0 {
		task.Position = len(tasks)
	}
	tasks = append(tasks, task)
	return r.save(tasks)
}

func (r *localTaskRepository) Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if task.ID == id {
			applyPatch(task, patch)
			if err := r.save(tasks); err != nil {
				return nil, err
			}
			return task, nil
		}
	}
	return nil, ErrNotFound
}

func (r *localTaskRepository) Delete(ctx context.Context, userID, id string) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.save(tasks)
		}
	}
	return ErrNotFound
}

func (r *localTaskRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.save([]*domain.Task{})
}

func (r *localTaskRepository) load() ([]*domain.Task, error) {
	var tasks []*domain.Task
	if _, err := r.store.GetJSON(guestTasksKey, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *localTaskRepository) save(tasks []*domain.Task) error {
	return r.store.SetJSON(guestTasksKey, tasks)
}

func applyPatch(task *domain.Task, patch domain.TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = domain.ParseStatus(*patch.Status)
	}
	if patch.Priority != nil {
		task.Priority = domain.ParsePriority(*patch.Priority)
	}
	if patch.Position != nil {
		task.Position = *patch.Position
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			task.DueDate = nil
		} else if t, err := time.Parse(time.RFC3339, *patch.DueDate); err == nil {
			task.DueDate = &t
		}
	}
	if patch.ReminderAt != nil {
		if *patch.ReminderAt == "" {
			task.ReminderAt = nil
		} else if t, err := time.Parse(time.RFC3339, *patch.ReminderAt); err == nil {
			task.ReminderAt = &t
		}
	}
	task.UpdatedAt = time.Now()
}

// sampleTasks seeds the guest board on first use so a fresh install is not
// an empty screen.
func sampleTasks() []*domain.Task {
	now := time.Now()
	return []*domain.Task{
		{
			ID:          uuid.New().String(),
			UserID:      GuestUserID,
			Title:       "Welcome to Kanflow",
			Description: "This is a sample task. Tap to edit it, or swipe to delete.",
			Status:      domain.StatusTodo,
			Priority:    domain.PriorityMedium,
			Position:    0,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			UserID:      GuestUserID,
			Title:       "Connect your tools",
			Description: "Sign in and connect GitHub, GitLab or Zoom to see everything in one list.",
			Status:      domain.StatusTodo,
			Priority:    domain.PriorityLow,
			Position:    1,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
