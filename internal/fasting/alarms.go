package fasting

import (
	"fmt"
	"time"
)

// AlarmKind categorizes a scheduled notification.
type AlarmKind string

const (
	AlarmMilestone     AlarmKind = "milestone"
	AlarmWaterReminder AlarmKind = "water"
	AlarmGoalComplete  AlarmKind = "goal_complete"
	AlarmWindowWarning AlarmKind = "window_warning"
	AlarmWindowClosed  AlarmKind = "window_closed"
)

// WaterReminderInterval is the fixed spacing of water reminders during a fast.
const WaterReminderInterval = 2 * time.Hour

// Alarm is one point-in-time notification to schedule. Keys are semantic
// (kind plus hour offset), so the complete set of possible keys can be
// reconstructed for a cancel sweep without a registry of what was scheduled.
type Alarm struct {
	Key    AlarmKey
	FireAt time.Time
	Title  string
	Body   string
}

// AlarmKey uniquely addresses an alarm for later cancellation.
type AlarmKey struct {
	Kind AlarmKind
	Hour int // hour offset within the window; 0 for singleton kinds
}

// String renders the key in its wire form, e.g. "milestone:16".
func (k AlarmKey) String() string {
	if k.Hour > 0 {
		return fmt.Sprintf("%s:%d", k.Kind, k.Hour)
	}
	return string(k.Kind)
}

// FastingAlarmPlan computes the alarms for a fast started at start with the
// given target: every milestone mark still in the future, water reminders
// every two hours up to the target, and the goal-complete alarm.
func FastingAlarmPlan(start time.Time, targetHours int, now time.Time) []Alarm {
	var alarms []Alarm

	for _, m := range Milestones {
		if m.Hours <= 0 {
			continue
		}
		fireAt := start.Add(time.Duration(m.Hours) * time.Hour)
		if !fireAt.After(now) {
			continue
		}
		alarms = append(alarms, Alarm{
			Key:    AlarmKey{Kind: AlarmMilestone, Hour: m.Hours},
			FireAt: fireAt,
			Title:  m.Title,
			Body:   m.Description,
		})
	}

	for h := int(WaterReminderInterval.Hours()); h <= targetHours; h += int(WaterReminderInterval.Hours()) {
		fireAt := start.Add(time.Duration(h) * time.Hour)
		if !fireAt.After(now) {
			continue
		}
		alarms = append(alarms, Alarm{
			Key:    AlarmKey{Kind: AlarmWaterReminder, Hour: h},
			FireAt: fireAt,
			Title:  "Time for water",
			Body:   "Staying hydrated makes fasting easier.",
		})
	}

	goalAt := start.Add(time.Duration(targetHours) * time.Hour)
	if goalAt.After(now) {
		alarms = append(alarms, Alarm{
			Key:    AlarmKey{Kind: AlarmGoalComplete},
			FireAt: goalAt,
			Title:  "Fast complete",
			Body:   fmt.Sprintf("You made it through %d hours. Your eating window is open.", targetHours),
		})
	}

	return alarms
}

// EatingAlarmPlan computes the alarms for an eating window opened at
// windowStart: a warning one hour before close and the close itself. The
// warning is omitted for windows of an hour or less.
func EatingAlarmPlan(windowStart time.Time, targetHours int, now time.Time) []Alarm {
	var alarms []Alarm
	window := 24*time.Hour - time.Duration(targetHours)*time.Hour
	closeAt := windowStart.Add(window)

	if warnAt := closeAt.Add(-time.Hour); window > time.Hour && warnAt.After(now) {
		alarms = append(alarms, Alarm{
			Key:    AlarmKey{Kind: AlarmWindowWarning},
			FireAt: warnAt,
			Title:  "Eating window closing soon",
			Body:   "One hour left before your next fast begins.",
		})
	}
	if closeAt.After(now) {
		alarms = append(alarms, Alarm{
			Key:    AlarmKey{Kind: AlarmWindowClosed},
			FireAt: closeAt,
			Title:  "Eating window closed",
			Body:   "Your next fast starts now.",
		})
	}

	return alarms
}

// AllPossibleKeys enumerates every alarm key a session could ever have
// scheduled, regardless of schedule. A stop or restart cancels this whole
// set so no fire from a prior session can leak through.
func AllPossibleKeys() []AlarmKey {
	keys := []AlarmKey{
		{Kind: AlarmGoalComplete},
		{Kind: AlarmWindowWarning},
		{Kind: AlarmWindowClosed},
	}
	for _, m := range Milestones {
		keys = append(keys, AlarmKey{Kind: AlarmMilestone, Hour: m.Hours})
	}
	for h := int(WaterReminderInterval.Hours()); h <= MaxCustomHours; h += int(WaterReminderInterval.Hours()) {
		keys = append(keys, AlarmKey{Kind: AlarmWaterReminder, Hour: h})
	}
	return keys
}
