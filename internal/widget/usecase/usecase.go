package usecase

import (
	"context"
	"errors"

	"kanflow-backend/internal/widget/domain"
)

var (
	// ErrHabitNotFound is returned when toggling or deleting an unknown habit
	ErrHabitNotFound = errors.New("habit not found")
	// ErrNoteNotFound is returned when updating or deleting an unknown note
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidZone is returned for timezone names the tz database rejects
	ErrInvalidZone = errors.New("invalid timezone")
	// ErrNoWebhook is returned when a team-comms provider has no webhook configured
	ErrNoWebhook = errors.New("no webhook configured for provider")
)

// WidgetUsecase defines the interface for the dashboard widgets
type WidgetUsecase interface {
	// Habits
	ListHabits(userID string) ([]domain.Habit, error)
	AddHabit(userID, name string) ([]domain.Habit, error)
	ToggleHabitDay(userID, habitID, date string) ([]domain.Habit, error)
	DeleteHabit(userID, habitID string) ([]domain.Habit, error)

	// Water counter
	GetWater(userID string) (*domain.WaterState, error)
	AddWater(userID string) (*domain.WaterState, error)
	ResetWater(userID string) (*domain.WaterState, error)
	SetWaterTarget(userID string, target int) (*domain.WaterState, error)

	// Notes
	ListNotes(userID string) ([]domain.Note, error)
	SaveNote(userID string, note domain.Note) ([]domain.Note, error)
	DeleteNote(userID, noteID string) ([]domain.Note, error)

	// World clock
	GetWorldClocks(userID string) ([]domain.ClockReading, error)
	SetWorldClocks(userID string, entries []domain.ClockEntry) ([]domain.ClockReading, error)

	// Stopwatch (in-memory, lost on restart)
	StopwatchGet(userID string) *domain.StopwatchState
	StopwatchStart(userID string) *domain.StopwatchState
	StopwatchStop(userID string) *domain.StopwatchState
	StopwatchLap(userID string) *domain.StopwatchState
	StopwatchReset(userID string) *domain.StopwatchState

	// Quote of the moment
	RandomQuote(ctx context.Context) (*domain.Quote, error)

	// Team comms
	PostTeamMessage(ctx context.Context, userID, provider, text string) error
}
