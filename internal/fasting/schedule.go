// Package fasting models intermittent-fasting schedules and the timer
// session state machine. Elapsed time is always derived from persisted
// absolute timestamps, never from a running counter, so the timer survives
// process death without drift correction.
package fasting

// Schedule identifies a fasting/eating split. Fixed presets carry their
// fasting hour count in the name; ScheduleCustom uses a user-chosen count.
type Schedule string

const (
	Schedule12_12  Schedule = "12:12"
	Schedule14_10  Schedule = "14:10"
	Schedule16_8   Schedule = "16:8"
	Schedule18_6   Schedule = "18:6"
	Schedule20_4   Schedule = "20:4"
	ScheduleCustom Schedule = "custom"
)

// DefaultSchedule is used when nothing is persisted yet or the stored
// value cannot be parsed.
const DefaultSchedule = Schedule16_8

var presetHours = map[Schedule]int{
	Schedule12_12: 12,
	Schedule14_10: 14,
	Schedule16_8:  16,
	Schedule18_6:  18,
	Schedule20_4:  20,
}

const (
	MinCustomHours = 1
	MaxCustomHours = 23
)

// ParseSchedule returns the schedule for a stored string, falling back to
// the default for unknown values.
func ParseSchedule(s string) Schedule {
	if _, ok := presetHours[Schedule(s)]; ok {
		return Schedule(s)
	}
	if Schedule(s) == ScheduleCustom {
		return ScheduleCustom
	}
	return DefaultSchedule
}

// FastingHours resolves the fasting hour count for the schedule. For the
// custom schedule the supplied hour count is used, clamped to valid bounds.
func (s Schedule) FastingHours(customHours int) int {
	if h, ok := presetHours[s]; ok {
		return h
	}
	return ClampCustomHours(customHours)
}

// ClampCustomHours clamps a custom fasting hour count to [1, 23].
func ClampCustomHours(hours int) int {
	if hours < MinCustomHours {
		return MinCustomHours
	}
	if hours > MaxCustomHours {
		return MaxCustomHours
	}
	return hours
}

// Milestone is a fixed elapsed-hour mark during a fast that triggers an
// informational notification.
type Milestone struct {
	Hours       int    `json:"hours"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Milestones is the ordered, immutable milestone table.
var Milestones = []Milestone{
	{Hours: 12, Title: "12 hours in", Description: "Glycogen stores are running low and fat burning picks up."},
	{Hours: 16, Title: "16 hours in", Description: "Ketone production is ramping up for steady energy."},
	{Hours: 18, Title: "18 hours in", Description: "Autophagy is kicking into gear."},
	{Hours: 24, Title: "A full day", Description: "Growth hormone rises to preserve muscle while fasting."},
}
