package usecase

import (
	"context"

	"kanflow-backend/internal/task/domain"
)

// TaskUsecase is the facade every screen talks to. It resolves the session
// mode, picks the right store and merges in externally sourced tasks.
type TaskUsecase interface {
	// GetTasks returns the authoritative list plus, in authenticated
	// mode, tasks aggregated from connected providers
	GetTasks(ctx context.Context, userID string) ([]*domain.Task, error)

	// CreateTask stores a new task in the mode's store
	CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error)

	// UpdateTask patches a task; externally sourced ids are rejected
	UpdateTask(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task; externally sourced ids are rejected
	DeleteTask(ctx context.Context, userID, taskID string) error

	// DeleteAllTasks clears the user's tasks; zero owned tasks is a no-op
	DeleteAllTasks(ctx context.Context, userID string) error

	// HideExternalTask blacklists an external id so it disappears from
	// future fetches; the record in the source system is untouched
	HideExternalTask(taskID string) error

	// GetStats returns the dashboard breakdown by status
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)

	// SearchTasks filters the merged list with typo-tolerant matching on
	// title and description, best matches first
	SearchTasks(ctx context.Context, userID, query string) ([]*domain.Task, error)
}

// CreateTaskRequest carries the fields a new task may set.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Position    *int    `json:"position"`
	ReminderAt  *string `json:"reminder_at"`
}
