package fasting_test

import (
	"testing"
	"time"

	"github.com/nutrifast/backend/internal/fasting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(alarms []fasting.Alarm) map[string]time.Time {
	m := make(map[string]time.Time, len(alarms))
	for _, a := range alarms {
		m[a.Key.String()] = a.FireAt
	}
	return m
}

func TestFastingAlarmPlan(t *testing.T) {
	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	plan := fasting.FastingAlarmPlan(start, 16, start)
	keys := keysOf(plan)

	// milestones within and beyond the target are both scheduled while
	// still in the future; 24h fires only if the fast runs that long
	assert.Equal(t, start.Add(12*time.Hour), keys["milestone:12"])
	assert.Equal(t, start.Add(16*time.Hour), keys["milestone:16"])
	assert.Contains(t, keys, "milestone:24")

	// water reminders every 2h up to the target
	assert.Contains(t, keys, "water:2")
	assert.Contains(t, keys, "water:16")
	assert.NotContains(t, keys, "water:18")

	assert.Equal(t, start.Add(16*time.Hour), keys["goal_complete"])
}

func TestFastingAlarmPlanSkipsPastMarks(t *testing.T) {
	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	now := start.Add(13 * time.Hour)

	keys := keysOf(fasting.FastingAlarmPlan(start, 16, now))
	assert.NotContains(t, keys, "milestone:12")
	assert.NotContains(t, keys, "water:12")
	assert.Contains(t, keys, "milestone:16")
	assert.Contains(t, keys, "water:14")
}

func TestEatingAlarmPlan(t *testing.T) {
	windowStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	plan := fasting.EatingAlarmPlan(windowStart, 16, windowStart)
	keys := keysOf(plan)

	// 16h fast leaves an 8h window
	require.Contains(t, keys, "window_warning")
	require.Contains(t, keys, "window_closed")
	assert.Equal(t, windowStart.Add(7*time.Hour), keys["window_warning"])
	assert.Equal(t, windowStart.Add(8*time.Hour), keys["window_closed"])
}

func TestEatingAlarmPlanTinyWindow(t *testing.T) {
	windowStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	// 23h fast leaves a 1h window: no room for a warning
	keys := keysOf(fasting.EatingAlarmPlan(windowStart, 23, windowStart))
	assert.NotContains(t, keys, "window_warning")
	assert.Contains(t, keys, "window_closed")
}

func TestAllPossibleKeysCoversEveryPlan(t *testing.T) {
	all := make(map[string]bool)
	for _, k := range fasting.AllPossibleKeys() {
		all[k.String()] = true
	}

	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	for hours := fasting.MinCustomHours; hours <= fasting.MaxCustomHours; hours++ {
		for _, a := range fasting.FastingAlarmPlan(start, hours, start) {
			assert.True(t, all[a.Key.String()], "missing key %s for %dh fast", a.Key, hours)
		}
		for _, a := range fasting.EatingAlarmPlan(start, hours, start) {
			assert.True(t, all[a.Key.String()], "missing key %s for %dh window", a.Key, hours)
		}
	}
}
