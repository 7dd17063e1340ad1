package fasting

import "time"

const (
	DefaultWaterGoal = 8
	MaxWaterGoal     = 20
)

// WaterState is the independent daily water-intake counter. The count
// resets automatically the first time it is read on a new day.
type WaterState struct {
	Count         int    `json:"count"`
	Goal          int    `json:"goal"`
	LastResetDate string `json:"last_reset_date"` // ISO date, e.g. 2026-08-29
}

// DefaultWaterState returns the counter for a user with no persisted data.
func DefaultWaterState(today time.Time) WaterState {
	return WaterState{
		Count:         0,
		Goal:          DefaultWaterGoal,
		LastResetDate: ISODate(today),
	}
}

// ISODate formats an instant as the ISO calendar date used for rollover.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Rollover applies the per-day auto reset: if the last reset was before
// today, the count drops to zero and the reset date moves to today. An
// unparseable stored date is treated as stale.
func (w WaterState) Rollover(now time.Time) WaterState {
	today := ISODate(now)
	if w.LastResetDate == today {
		return w
	}
	// ISO dates compare lexicographically; anything that is not today's
	// date (including corrupt values) triggers a reset.
	w.Count = 0
	w.LastResetDate = today
	return w
}

// Increment adds one glass.
func (w WaterState) Increment() WaterState {
	w.Count++
	return w
}

// Decrement removes one glass, never going below zero.
func (w WaterState) Decrement() WaterState {
	if w.Count > 0 {
		w.Count--
	}
	return w
}

// ClampWaterGoal clamps a configured daily goal to [0, 20].
func ClampWaterGoal(goal int) int {
	if goal < 0 {
		return 0
	}
	if goal > MaxWaterGoal {
		return MaxWaterGoal
	}
	return goal
}
