package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status represents the current state of a task on the board
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Task represents a board item. Tasks come from three places: created
// locally in guest mode (random id), stored in the backend (uuid), or
// materialized from a connected provider on every fetch (prefixed id,
// never persisted). Provider-sourced tasks are read-only here.
type Task struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	UserID         string     `json:"user_id" gorm:"index;not null"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status" gorm:"default:todo"`
	Priority       Priority   `json:"priority" gorm:"default:medium"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Position       int        `json:"position"`
	IsExternal     bool       `json:"is_external" gorm:"-"`
	ExternalSource string     `json:"external_source,omitempty" gorm:"-"`
	ExternalURL    string     `json:"external_url,omitempty" gorm:"-"`
	ReminderAt     *time.Time `json:"reminder_at,omitempty"`
	ReminderSent   bool       `json:"reminder_sent" gorm:"default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskPatch carries the fields an update may change; nil means "leave as is".
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Position    *int    `json:"position,omitempty"`
	ReminderAt  *string `json:"reminder_at,omitempty"`
}

// Stats is the dashboard breakdown by status.
type Stats struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Review     int `json:"review"`
	Done       int `json:"done"`
	Total      int `json:"total"`
}

// ParsePriority maps a request string to a Priority, defaulting to medium.
func ParsePriority(p string) Priority {
	switch p {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ParseStatus maps a request string to a Status, defaulting to todo.
func ParseStatus(s string) Status {
	switch s {
	case "in-progress":
		return StatusInProgress
	case "review":
		return StatusReview
	case "done":
		return StatusDone
	default:
		return StatusTodo
	}
}
