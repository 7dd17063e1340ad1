package fasting

import "time"

// State is the fasting timer lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateFasting    State = "fasting"
	StateEating     State = "eating"
)

// ParseState returns the state for a stored string, falling back to
// StateNotStarted for anything unrecognized.
func ParseState(s string) State {
	switch State(s) {
	case StateFasting, StateEating:
		return State(s)
	default:
		return StateNotStarted
	}
}

// Session is the persisted fasting session record. The stored state enum is
// a persistence detail: readers always go through Derive, which computes the
// effective state from the start timestamps and the current time.
type Session struct {
	State                 State      `json:"state"`
	FastingStartTime      *time.Time `json:"fasting_start_time,omitempty"`
	EatingWindowStartTime *time.Time `json:"eating_window_start_time,omitempty"`
	Schedule              Schedule   `json:"schedule"`
	CustomFastingHours    int        `json:"custom_fasting_hours"`
}

// DefaultSession is the record created on first use.
func DefaultSession() Session {
	return Session{
		State:              StateNotStarted,
		Schedule:           DefaultSchedule,
		CustomFastingHours: 16,
	}
}

// TargetHours resolves the fasting hour count for the session's schedule.
func (s Session) TargetHours() int {
	return s.Schedule.FastingHours(s.CustomFastingHours)
}

// TargetDuration is the fasting window length.
func (s Session) TargetDuration() time.Duration {
	return time.Duration(s.TargetHours()) * time.Hour
}

// EatingWindowDuration is the eating window length: the rest of the day.
func (s Session) EatingWindowDuration() time.Duration {
	return 24*time.Hour - s.TargetDuration()
}

// Status is the derived view of a session at a point in time.
type Status struct {
	State        State         `json:"state"`
	Elapsed      time.Duration `json:"elapsed"`
	Remaining    time.Duration `json:"remaining"`
	GoalReached  bool          `json:"goal_reached"`
	ProgressPct  float64       `json:"progress_pct"`
	WindowEndsAt *time.Time    `json:"window_ends_at,omitempty"`
}

// Derive computes the effective status of a session at the given instant.
// The stored enum is not trusted: a session persisted as FASTING whose goal
// has passed derives as EATING, with the eating window starting at the
// moment the goal was reached. It never mutates the session.
func Derive(s Session, now time.Time) Status {
	switch s.State {
	case StateFasting:
		if s.FastingStartTime == nil {
			return Status{State: StateNotStarted}
		}
		goalAt := s.FastingStartTime.Add(s.TargetDuration())
		if !now.Before(goalAt) {
			// Goal passed but no transition observed yet: derive the
			// eating window as having started at the goal instant.
			return deriveEating(s, goalAt, now)
		}
		elapsed := now.Sub(*s.FastingStartTime)
		return Status{
			State:        StateFasting,
			Elapsed:      elapsed,
			Remaining:    s.TargetDuration() - elapsed,
			ProgressPct:  progressPct(elapsed, s.TargetDuration()),
			WindowEndsAt: &goalAt,
		}
	case StateEating:
		if s.EatingWindowStartTime == nil {
			return Status{State: StateNotStarted}
		}
		return deriveEating(s, *s.EatingWindowStartTime, now)
	default:
		return Status{State: StateNotStarted}
	}
}

func deriveEating(s Session, windowStart, now time.Time) Status {
	window := s.EatingWindowDuration()
	closeAt := windowStart.Add(window)
	elapsed := now.Sub(windowStart)
	if elapsed < 0 {
		elapsed = 0
	}
	return Status{
		State:        StateEating,
		Elapsed:      elapsed,
		Remaining:    window - elapsed,
		GoalReached:  s.State == StateFasting || !now.Before(closeAt),
		ProgressPct:  progressPct(elapsed, window),
		WindowEndsAt: &closeAt,
	}
}

// progressPct = clamp(elapsedMinutes / targetMinutes * 100, 0, 100)
func progressPct(elapsed, target time.Duration) float64 {
	if target <= 0 {
		return 0
	}
	pct := elapsed.Minutes() / target.Minutes() * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// StartFast begins a fast at the given instant. Valid from any state; a
// fast started while one is in flight restarts the window.
func StartFast(s Session, now time.Time) Session {
	s.State = StateFasting
	s.FastingStartTime = &now
	s.EatingWindowStartTime = nil
	return s
}

// EndFast transitions FASTING -> EATING at the given instant, whether the
// goal was reached or the user stopped early.
func EndFast(s Session, now time.Time) Session {
	s.State = StateEating
	s.EatingWindowStartTime = &now
	return s
}

// Reset clears the session back to its defaulted record, keeping the
// selected schedule.
func Reset(s Session) Session {
	return Session{
		State:              StateNotStarted,
		Schedule:           s.Schedule,
		CustomFastingHours: s.CustomFastingHours,
	}
}

// Advance applies any transition the clock has made due, returning the
// updated session and whether anything changed. This is the lazy-advance
// hook: callers persist the result when changed is true.
func Advance(s Session, now time.Time) (Session, bool) {
	switch s.State {
	case StateFasting:
		if s.FastingStartTime == nil {
			return s, false
		}
		goalAt := s.FastingStartTime.Add(s.TargetDuration())
		if now.Before(goalAt) {
			return s, false
		}
		// Eating window opens at the goal instant, not at observation time.
		return EndFast(s, goalAt), true
	case StateEating:
		if s.EatingWindowStartTime == nil {
			return s, false
		}
		closeAt := s.EatingWindowStartTime.Add(s.EatingWindowDuration())
		if now.Before(closeAt) {
			return s, false
		}
		return StartFast(s, closeAt), true
	default:
		return s, false
	}
}
