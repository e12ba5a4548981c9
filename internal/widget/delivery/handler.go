package delivery

import (
	"errors"
	"net/http"

	integrationusecase "kanflow-backend/internal/integration/usecase"
	"kanflow-backend/internal/widget/domain"
	"kanflow-backend/internal/widget/usecase"

	"github.com/gin-gonic/gin"
)

// WidgetHandler handles dashboard widget HTTP requests
type WidgetHandler struct {
	widgetUsecase usecase.WidgetUsecase
}

// NewWidgetHandler creates a new WidgetHandler
func NewWidgetHandler(widgetUsecase usecase.WidgetUsecase) *WidgetHandler {
	return &WidgetHandler{
		widgetUsecase: widgetUsecase,
	}
}

// --- habits ---

// ListHabits returns the user's habits with current streaks
// GET /api/widgets/habits
func (h *WidgetHandler) ListHabits(c *gin.Context) {
	habits, err := h.widgetUsecase.ListHabits(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// AddHabit creates a habit
// POST /api/widgets/habits
func (h *WidgetHandler) AddHabit(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habits, err := h.widgetUsecase.AddHabit(c.GetString("userID"), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habits": habits})
}

// ToggleHabitDay flips one day's completion for a habit
// POST /api/widgets/habits/:id/toggle
func (h *WidgetHandler) ToggleHabitDay(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habits, err := h.widgetUsecase.ToggleHabitDay(c.GetString("userID"), c.Param("id"), req.Date)
	if err != nil {
		if errors.Is(err, usecase.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// DeleteHabit removes a habit
// DELETE /api/widgets/habits/:id
func (h *WidgetHandler) DeleteHabit(c *gin.Context) {
	habits, err := h.widgetUsecase.DeleteHabit(c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// --- water ---

// GetWater returns today's glass counter
// GET /api/widgets/water
func (h *WidgetHandler) GetWater(c *gin.Context) {
	state, err := h.widgetUsecase.GetWater(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddWater increments today's counter
// POST /api/widgets/water/add
func (h *WidgetHandler) AddWater(c *gin.Context) {
	state, err := h.widgetUsecase.AddWater(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetWater zeroes today's counter
// POST /api/widgets/water/reset
func (h *WidgetHandler) ResetWater(c *gin.Context) {
	state, err := h.widgetUsecase.ResetWater(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetWaterTarget changes the daily goal
// PUT /api/widgets/water/target
func (h *WidgetHandler) SetWaterTarget(c *gin.Context) {
	var req struct {
		Target int `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.widgetUsecase.SetWaterTarget(c.GetString("userID"), req.Target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// --- notes ---

// ListNotes returns the user's notes, most recently updated first
// GET /api/widgets/notes
func (h *WidgetHandler) ListNotes(c *gin.Context) {
	notes, err := h.widgetUsecase.ListNotes(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// SaveNote creates a note, or updates it when an id is supplied
// POST /api/widgets/notes
func (h *WidgetHandler) SaveNote(c *gin.Context) {
	var note domain.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := h.widgetUsecase.SaveNote(c.GetString("userID"), note)
	if err != nil {
		if errors.Is(err, usecase.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote removes a note
// DELETE /api/widgets/notes/:id
func (h *WidgetHandler) DeleteNote(c *gin.Context) {
	notes, err := h.widgetUsecase.DeleteNote(c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// --- world clock ---

// GetWorldClocks resolves the configured timezones to current readings
// GET /api/widgets/worldclock
func (h *WidgetHandler) GetWorldClocks(c *gin.Context) {
	clocks, err := h.widgetUsecase.GetWorldClocks(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clocks": clocks})
}

// SetWorldClocks replaces the configured timezones
// PUT /api/widgets/worldclock
func (h *WidgetHandler) SetWorldClocks(c *gin.Context) {
	var req struct {
		Entries []domain.ClockEntry `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clocks, err := h.widgetUsecase.SetWorldClocks(c.GetString("userID"), req.Entries)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidZone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clocks": clocks})
}

// --- stopwatch ---

// GetStopwatch returns the current stopwatch snapshot
// GET /api/widgets/stopwatch
func (h *WidgetHandler) GetStopwatch(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgetUsecase.StopwatchGet(c.GetString("userID")))
}

// StopwatchAction runs one of start, stop, lap or reset
// POST /api/widgets/stopwatch/:action
func (h *WidgetHandler) StopwatchAction(c *gin.Context) {
	userID := c.GetString("userID")

	switch c.Param("action") {
	case "start":
		c.JSON(http.StatusOK, h.widgetUsecase.StopwatchStart(userID))
	case "stop":
		c.JSON(http.StatusOK, h.widgetUsecase.StopwatchStop(userID))
	case "lap":
		c.JSON(http.StatusOK, h.widgetUsecase.StopwatchLap(userID))
	case "reset":
		c.JSON(http.StatusOK, h.widgetUsecase.StopwatchReset(userID))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown stopwatch action"})
	}
}

// --- quote ---

// GetQuote returns a random motivational quote
// GET /api/widgets/quote
func (h *WidgetHandler) GetQuote(c *gin.Context) {
	quote, err := h.widgetUsecase.RandomQuote(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// --- team comms ---

// PostTeamMessage sends a message through a connected provider's webhook
// POST /api/widgets/team-message
func (h *WidgetHandler) PostTeamMessage(c *gin.Context) {
	var req struct {
		Provider string `json:"provider" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.widgetUsecase.PostTeamMessage(c.Request.Context(), c.GetString("userID"), req.Provider, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, integrationusecase.ErrUnknownProvider):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNoWebhook):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message sent"})
}
