package usecase

import (
	"sort"
	"time"

	integrationusecase "kanflow-backend/internal/integration/usecase"
	"kanflow-backend/internal/widget/domain"
	"kanflow-backend/internal/widget/repository"

	"github.com/google/uuid"
)

const (
	habitsKey     = "habits"
	waterKey      = "water"
	notesKey      = "notes"
	worldClockKey = "worldclock"

	defaultWaterTarget = 8
	dateLayout         = "2006-01-02"
)

type widgetUsecase struct {
	stateRepo    repository.StateRepository
	integrations integrationusecase.IntegrationUsecase
	quotes       *QuotesClient
	stopwatch    *stopwatchRegistry
	now          func() time.Time
}

// NewWidgetUsecase creates a new WidgetUsecase
func NewWidgetUsecase(
	stateRepo repository.StateRepository,
	integrations integrationusecase.IntegrationUsecase,
	quotes *QuotesClient,
) WidgetUsecase {
	return &widgetUsecase{
		stateRepo:    stateRepo,
		integrations: integrations,
		quotes:       quotes,
		stopwatch:    newStopwatchRegistry(),
		now:          time.Now,
	}
}

// --- habits ---

func (u *widgetUsecase) ListHabits(userID string) ([]domain.Habit, error) {
	habits, err := u.loadHabits(userID)
	if err != nil {
		return nil, err
	}
	u.fillStreaks(habits)
	return habits, nil
}

func (u *widgetUsecase) AddHabit(userID, name string) ([]domain.Habit, error) {
	habits, err := u.loadHabits(userID)
	if err != nil {
		return nil, err
	}
	habits = append(habits, domain.Habit{
		ID:   uuid.New().String(),
		Name: name,
		Days: map[string]bool{},
	})
	if err := u.stateRepo.SaveState(userID, habitsKey, habits); err != nil {
		return nil, err
	}
	u.fillStreaks(habits)
	return habits, nil
}

func (u *widgetUsecase) ToggleHabitDay(userID, habitID, date string) ([]domain.Habit, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, err
	}

	habits, err := u.loadHabits(userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range habits {
		if habits[i].ID != habitID {
			continue
		}
		found = true
		if habits[i].Days == nil {
			habits[i].Days = map[string]bool{}
		}
		if habits[i].Days[date] {
			delete(habits[i].Days, date)
		} else {
			habits[i].Days[date] = true
		}
	}
	if !found {
		return nil, ErrHabitNotFound
	}

	if err := u.stateRepo.SaveState(userID, habitsKey, habits); err != nil {
		return nil, err
	}
	u.fillStreaks(habits)
	return habits, nil
}

func (u *widgetUsecase) DeleteHabit(userID, habitID string) ([]domain.Habit, error) {
	habits, err := u.loadHabits(userID)
	if err != nil {
		return nil, err
	}

	kept := habits[:0]
	found := false
	for _, h := range habits {
		if h.ID == habitID {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return nil, ErrHabitNotFound
	}

	if err := u.stateRepo.SaveState(userID, habitsKey, kept); err != nil {
		return nil, err
	}
	u.fillStreaks(kept)
	return kept, nil
}

func (u *widgetUsecase) loadHabits(userID string) ([]domain.Habit, error) {
	var habits []domain.Habit
	if _, err := u.stateRepo.GetState(userID, habitsKey, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// fillStreaks computes the run of consecutive completed days ending today
// (or yesterday, so an unfinished today does not break the streak yet).
func (u *widgetUsecase) fillStreaks(habits []domain.Habit) {
	// Day keys follow the local calendar date, same as the toggles; walking
	// the absolute time across UTC day boundaries would skip today for any
	// zone east of UTC
	today, err := time.Parse(dateLayout, u.now().Format(dateLayout))
	if err != nil {
		return
	}
	for i := range habits {
		day := today
		if !habits[i].Days[day.Format(dateLayout)] {
			day = day.AddDate(0, 0, -1)
		}
		streak := 0
		for habits[i].Days[day.Format(dateLayout)] {
			streak++
			day = day.AddDate(0, 0, -1)
		}
		habits[i].Streak = streak
	}
}

// --- water counter ---

func (u *widgetUsecase) GetWater(userID string) (*domain.WaterState, error) {
	return u.loadWater(userID)
}

func (u *widgetUsecase) AddWater(userID string) (*domain.WaterState, error) {
	state, err := u.loadWater(userID)
	if err != nil {
		return nil, err
	}
	state.Count++
	if err := u.stateRepo.SaveState(userID, waterKey, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (u *widgetUsecase) ResetWater(userID string) (*domain.WaterState, error) {
	state, err := u.loadWater(userID)
	if err != nil {
		return nil, err
	}
	state.Count = 0
	if err := u.stateRepo.SaveState(userID, waterKey, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (u *widgetUsecase) SetWaterTarget(userID string, target int) (*domain.WaterState, error) {
	state, err := u.loadWater(userID)
	if err != nil {
		return nil, err
	}
	if target < 1 {
		target = 1
	}
	state.Target = target
	if err := u.stateRepo.SaveState(userID, waterKey, state); err != nil {
		return nil, err
	}
	return state, nil
}

// loadWater reads the counter and rolls it over to zero on a new day
func (u *widgetUsecase) loadWater(userID string) (*domain.WaterState, error) {
	today := u.now().Format(dateLayout)

	var state domain.WaterState
	found, err := u.stateRepo.GetState(userID, waterKey, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		state = domain.WaterState{Date: today, Target: defaultWaterTarget}
		if err := u.stateRepo.SaveState(userID, waterKey, &state); err != nil {
			return nil, err
		}
		return &state, nil
	}
	if state.Date != today {
		state.Date = today
		state.Count = 0
		if err := u.stateRepo.SaveState(userID, waterKey, &state); err != nil {
			return nil, err
		}
	}
	return &state, nil
}

// --- notes ---

func (u *widgetUsecase) ListNotes(userID string) ([]domain.Note, error) {
	return u.loadNotes(userID)
}

func (u *widgetUsecase) SaveNote(userID string, note domain.Note) ([]domain.Note, error) {
	notes, err := u.loadNotes(userID)
	if err != nil {
		return nil, err
	}

	note.UpdatedAt = u.now()
	if note.ID == "" {
		note.ID = uuid.New().String()
		notes = append(notes, note)
	} else {
		found := false
		for i := range notes {
			if notes[i].ID == note.ID {
				notes[i] = note
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNoteNotFound
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	if err := u.stateRepo.SaveState(userID, notesKey, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (u *widgetUsecase) DeleteNote(userID, noteID string) ([]domain.Note, error) {
	notes, err := u.loadNotes(userID)
	if err != nil {
		return nil, err
	}

	kept := notes[:0]
	found := false
	for _, n := range notes {
		if n.ID == noteID {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return nil, ErrNoteNotFound
	}

	if err := u.stateRepo.SaveState(userID, notesKey, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (u *widgetUsecase) loadNotes(userID string) ([]domain.Note, error) {
	var notes []domain.Note
	if _, err := u.stateRepo.GetState(userID, notesKey, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// --- world clock ---

var defaultClockEntries = []domain.ClockEntry{
	{Zone: "America/New_York", Label: "New York"},
	{Zone: "Europe/London", Label: "London"},
	{Zone: "Asia/Tokyo", Label: "Tokyo"},
}

func (u *widgetUsecase) GetWorldClocks(userID string) ([]domain.ClockReading, error) {
	var entries []domain.ClockEntry
	found, err := u.stateRepo.GetState(userID, worldClockKey, &entries)
	if err != nil {
		return nil, err
	}
	if !found || len(entries) == 0 {
		entries = defaultClockEntries
	}
	return u.resolveClocks(entries)
}

func (u *widgetUsecase) SetWorldClocks(userID string, entries []domain.ClockEntry) ([]domain.ClockReading, error) {
	readings, err := u.resolveClocks(entries)
	if err != nil {
		return nil, err
	}
	if err := u.stateRepo.SaveState(userID, worldClockKey, entries); err != nil {
		return nil, err
	}
	return readings, nil
}

func (u *widgetUsecase) resolveClocks(entries []domain.ClockEntry) ([]domain.ClockReading, error) {
	now := u.now()
	readings := make([]domain.ClockReading, 0, len(entries))
	for _, entry := range entries {
		loc, err := time.LoadLocation(entry.Zone)
		if err != nil {
			return nil, ErrInvalidZone
		}
		local := now.In(loc)
		readings = append(readings, domain.ClockReading{
			Zone:      entry.Zone,
			Label:     entry.Label,
			Time:      local.Format("15:04"),
			UTCOffset: local.Format("-07:00"),
		})
	}
	return readings, nil
}

// --- stopwatch ---

func (u *widgetUsecase) StopwatchGet(userID string) *domain.StopwatchState {
	return u.stopwatch.get(userID)
}

func (u *widgetUsecase) StopwatchStart(userID string) *domain.StopwatchState {
	return u.stopwatch.start(userID)
}

func (u *widgetUsecase) StopwatchStop(userID string) *domain.StopwatchState {
	return u.stopwatch.stop(userID)
}

func (u *widgetUsecase) StopwatchLap(userID string) *domain.StopwatchState {
	return u.stopwatch.lap(userID)
}

func (u *widgetUsecase) StopwatchReset(userID string) *domain.StopwatchState {
	return u.stopwatch.reset(userID)
}
