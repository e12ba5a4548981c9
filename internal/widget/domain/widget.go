package domain

import "time"

// WidgetRecord is the generic key/value row backing persistent widget
// state, keyed by (user, widget key).
type WidgetRecord struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"primaryKey"`
	Data      string    `json:"data"` // JSON-encoded widget state
	UpdatedAt time.Time `json:"updated_at"`
}

func (WidgetRecord) TableName() string {
	return "widget_states"
}

// Habit is one tracked habit; Days maps "2006-01-02" dates to completion.
type Habit struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Days   map[string]bool `json:"days"`
	Streak int             `json:"streak"` // recomputed on read
}

// WaterState is the daily glass counter; Count resets when Date rolls over.
type WaterState struct {
	Date   string `json:"date"`
	Count  int    `json:"count"`
	Target int    `json:"target"`
}

// Note is a quick note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClockEntry is one configured world-clock timezone.
type ClockEntry struct {
	Zone  string `json:"zone"` // IANA name, e.g. "Asia/Tokyo"
	Label string `json:"label"`
}

// ClockReading is a resolved world-clock row.
type ClockReading struct {
	Zone      string `json:"zone"`
	Label     string `json:"label"`
	Time      string `json:"time"`
	UTCOffset string `json:"utc_offset"`
}

// Quote is a fetched motivational quote.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// StopwatchState is the in-memory stopwatch snapshot for one user.
type StopwatchState struct {
	Running   bool    `json:"running"`
	ElapsedMS int64   `json:"elapsed_ms"`
	Laps      []int64 `json:"laps"`
}
