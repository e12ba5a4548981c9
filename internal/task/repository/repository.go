package repository

import (
	"context"
	"errors"
	"time"

	"kanflow-backend/internal/task/domain"
)

var (
	// ErrNotFound is returned when the id does not exist in the store.
	ErrNotFound = errors.New("task not found")
	// ErrNotFoundOrDenied is returned when the backend reports zero rows
	// affected. Row-level security makes "missing" and "not yours"
	// indistinguishable from this side.
	ErrNotFoundOrDenied = errors.New("task not found or permission denied")
)

// TaskRepository defines the interface for task data access. The guest-mode
// local store and the backend store both implement it.
type TaskRepository interface {
	// List returns the user's tasks ordered by position ascending
	List(ctx context.Context, userID string) ([]*domain.Task, error)

	// Create stores a new task
	Create(ctx context.Context, task *domain.Task) error

	// Update applies a patch and returns the updated task
	Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task by id
	Delete(ctx context.Context, userID, id string) error

	// DeleteAll removes every task owned by the user; owning zero tasks
	// is a successful no-op
	DeleteAll(ctx context.Context, userID string) error
}

// ReminderRepository is the slice of the backend store the reminder
// scheduler needs.
type ReminderRepository interface {
	// FindPendingReminders returns tasks with reminder_at <= now,
	// reminder not yet sent and status not done
	FindPendingReminders(now time.Time) ([]*domain.Task, error)

	// MarkReminderSent marks a task's reminder as sent
	MarkReminderSent(id string) error
}
