package domain

import "time"

// RawRow is one decoded spreadsheet row, keyed by column header.
// Values are strings, float64 numbers or absent.
type RawRow map[string]any

// Draft holds the canonical fields mapped from a RawRow.
// A missing key means the source column was not present.
type Draft map[string]any

// Times holds phase magnitudes in milliseconds. All values are non-negative.
type Times struct {
	Setup     int64 `json:"setup"`
	Event     int64 `json:"event"`
	Dismantle int64 `json:"dismantle"`
	Duration  int64 `json:"duration"`
}

// EventRecord is a normalized venue booking.
type EventRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind,omitempty"`
	Start        time.Time `json:"start"`
	Setup        time.Time `json:"setup"`
	EventStart   time.Time `json:"eventStart"`
	EventEnd     time.Time `json:"eventEnd"`
	Dismantle    time.Time `json:"dismantle"`
	End          time.Time `json:"end"`
	Halls        []string  `json:"halls"`
	Progress     float64   `json:"progress"`
	Times        Times     `json:"times"`
	Dependencies string    `json:"dependencies,omitempty"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// Finished reports whether the booking window has ended at now.
func (r EventRecord) Finished(now time.Time) bool {
	return r.End.Before(now)
}

// ChartTask is the shape consumed by the timeline chart.
type ChartTask struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Progress     float64   `json:"progress"`
	Dependencies string    `json:"dependencies,omitempty"`
}

// Task returns the chart view of the record.
func (r EventRecord) Task() ChartTask {
	return ChartTask{
		ID:           r.ID,
		Name:         r.Name,
		Start:        r.Start,
		End:          r.End,
		Progress:     r.Progress,
		Dependencies: r.Dependencies,
	}
}
