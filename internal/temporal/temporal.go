// Package temporal derives completion progress, phase magnitudes and
// gradient stops from booking timestamps. Everything here is pure.
package temporal

import (
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Progress returns the elapsed share of [start, end] at now, in percent.
// A zero-length window counts as complete once now reaches start.
func Progress(now, start, end time.Time) float64 {
	if now.Before(start) {
		return 0
	}
	if !now.Before(end) {
		return 100
	}
	remaining := float64(end.Sub(now))
	total := float64(end.Sub(start))
	return clamp(100-(remaining/total)*100, 0, 100)
}

// Phases returns the phase magnitudes of a booking in milliseconds.
func Phases(start, setup, eventStart, eventEnd, dismantle, end time.Time) domain.Times {
	return domain.Times{
		Setup:     absMillis(start, setup),
		Event:     absMillis(eventStart, eventEnd),
		Dismantle: absMillis(dismantle, end),
		Duration:  absMillis(start, end),
	}
}

// RecordPhases returns the phase magnitudes of r.
func RecordPhases(r domain.EventRecord) domain.Times {
	return Phases(r.Start, r.Setup, r.EventStart, r.EventEnd, r.Dismantle, r.End)
}

// OrderWarnings lists every adjacent pair of r's timestamps that is out of
// order. The magnitudes in Times hide such inversions.
func OrderWarnings(r domain.EventRecord) []string {
	seq := []struct {
		name string
		t    time.Time
	}{
		{domain.FieldStart, r.Start},
		{domain.FieldSetup, r.Setup},
		{domain.FieldEventStart, r.EventStart},
		{domain.FieldEventEnd, r.EventEnd},
		{domain.FieldDismantle, r.Dismantle},
		{domain.FieldEnd, r.End},
	}
	var warnings []string
	for i := 1; i < len(seq); i++ {
		if seq[i].t.Before(seq[i-1].t) {
			warnings = append(warnings, seq[i].name+" is before "+seq[i-1].name)
		}
	}
	return warnings
}

func absMillis(a, b time.Time) int64 {
	d := a.Sub(b).Milliseconds()
	if d < 0 {
		return -d
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
