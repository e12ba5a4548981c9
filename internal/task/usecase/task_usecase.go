package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	integrationdomain "kanflow-backend/internal/integration/domain"
	integrationrepo "kanflow-backend/internal/integration/repository"
	integrationusecase "kanflow-backend/internal/integration/usecase"
	"kanflow-backend/internal/task/domain"
	"kanflow-backend/internal/task/repository"
	"kanflow-backend/pkg/fuzzy"

	"github.com/google/uuid"
)

var (
	// ErrTaskNotFound is surfaced when an id is absent from the store.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTimeout is surfaced when the backend update races past its
	// deadline. The request may still complete server-side; no
	// cancellation reaches the backend row.
	ErrTimeout = errors.New("request timed out")
	// ErrExternalReadOnly rejects edits to provider-sourced tasks.
	ErrExternalReadOnly = errors.New("external task is read-only")
	// ErrNotExternal rejects hiding an id without a provider prefix.
	ErrNotExternal = errors.New("not an external task")
)

// updateTimeout races the backend update; past it the user sees a timeout
// instead of a hung spinner.
const updateTimeout = 10 * time.Second

// ModeResolver reports which store the session uses.
type ModeResolver interface {
	IsGuestMode() bool
}

// ExternalAggregator materializes tasks from connected providers.
type ExternalAggregator interface {
	ListExternalTasks(ctx context.Context, registry integrationdomain.Registry) []domain.Task
}

// taskUsecase implements TaskUsecase
type taskUsecase struct {
	mode         ModeResolver
	localRepo    repository.TaskRepository
	remoteRepo   repository.TaskRepository
	integrations integrationusecase.IntegrationUsecase
	aggregator   ExternalAggregator
	blacklist    integrationrepo.BlacklistRepository
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(
	mode ModeResolver,
	localRepo, remoteRepo repository.TaskRepository,
	integrations integrationusecase.IntegrationUsecase,
	aggregator ExternalAggregator,
	blacklist integrationrepo.BlacklistRepository,
) TaskUsecase {
	return &taskUsecase{
		mode:         mode,
		localRepo:    localRepo,
		remoteRepo:   remoteRepo,
		integrations: integrations,
		aggregator:   aggregator,
		blacklist:    blacklist,
	}
}

func (u *taskUsecase) repo() repository.TaskRepository {
	if u.mode.IsGuestMode() {
		return u.localRepo
	}
	return u.remoteRepo
}

func (u *taskUsecase) GetTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	if u.mode.IsGuestMode() {
		return u.localRepo.List(ctx, repository.GuestUserID)
	}

	tasks, err := u.remoteRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.aggregator != nil && u.integrations != nil {
		registry, err := u.integrations.GetRegistry(userID)
		if err != nil {
			// The authoritative list is still useful on its own
			log.Printf("[Task] Failed to load integration registry, skipping externals: %v", err)
			return tasks, nil
		}
		for _, external := range u.aggregator.ListExternalTasks(ctx, registry) {
			e := external
			tasks = append(tasks, &e)
		}
	}
	return tasks, nil
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ParseStatus(req.Status),
		Priority:    domain.ParsePriority(req.Priority),
	}

	if req.DueDate != nil && *req.DueDate != "" {
		if t, err := time.Parse(time.RFC3339, *req.DueDate); err == nil {
			task.DueDate = &t
		}
	}
	if req.ReminderAt != nil && *req.ReminderAt != "" {
		if t, err := time.Parse(time.RFC3339, *req.ReminderAt); err == nil {
			task.ReminderAt = &t
		}
	}

	repo := u.repo()
	if req.Position != nil {
		task.Position = *req.Position
	} else {
		existing, err := repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		task.Position = len(existing)
	}

	if err := repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := rejectExternal(taskID, "edited"); err != nil {
		return nil, err
	}

	if u.mode.IsGuestMode() {
		task, err := u.localRepo.Update(ctx, repository.GuestUserID, taskID, patch)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return task, err
	}

	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	task, err := u.remoteRepo.Update(ctx, userID, taskID, patch)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := rejectExternal(taskID, "deleted"); err != nil {
		return err
	}

	if u.mode.IsGuestMode() {
		err := u.localRepo.Delete(ctx, repository.GuestUserID, taskID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return u.remoteRepo.Delete(ctx, userID, taskID)
}

func (u *taskUsecase) DeleteAllTasks(ctx context.Context, userID string) error {
	if u.mode.IsGuestMode() {
		return u.localRepo.DeleteAll(ctx, repository.GuestUserID)
	}
	return u.remoteRepo.DeleteAll(ctx, userID)
}

func (u *taskUsecase) HideExternalTask(taskID string) error {
	if _, ok := integrationdomain.ProviderForTaskID(taskID); !ok {
		return ErrNotExternal
	}
	return u.blacklist.Add(taskID)
}

func (u *taskUsecase) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	tasks, err := u.GetTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusReview:
			stats.Review++
		case domain.StatusDone:
			stats.Done++
		default:
			stats.Todo++
		}
	}
	return stats, nil
}

func (u *taskUsecase) SearchTasks(ctx context.Context, userID, query string) ([]*domain.Task, error) {
	tasks, err := u.GetTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return tasks, nil
	}

	var matched []*domain.Task
	for _, task := range tasks {
		if fuzzy.MatchTask(query, task.Title, task.Description) {
			matched = append(matched, task)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return fuzzy.ScoreTask(query, matched[i].Title, matched[i].Description) >
			fuzzy.ScoreTask(query, matched[j].Title, matched[j].Description)
	})
	return matched, nil
}

// rejectExternal fails any mutation of a provider-prefixed id with an error
// that points the user at the source system.
func rejectExternal(taskID, action string) error {
	if p, ok := integrationdomain.ProviderForTaskID(taskID); ok {
		return fmt.Errorf("%w: %s tasks cannot be %s here, manage them in %s",
			ErrExternalReadOnly, p.DisplayName, action, p.DisplayName)
	}
	return nil
}
