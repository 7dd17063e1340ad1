package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrifast/backend/internal/fasting"
	"github.com/nutrifast/backend/internal/logger"
	"github.com/nutrifast/backend/internal/notify"
	"github.com/nutrifast/backend/internal/scheduler"
)

// SessionStore is the durable key-value gateway the fasting service reads
// and writes through. Implemented by fasting.Store on redis; faked in tests.
type SessionStore interface {
	LoadSession(ctx context.Context, userID string) (fasting.Session, error)
	SaveSession(ctx context.Context, userID string, sess fasting.Session) error
	LoadWater(ctx context.Context, userID string, now time.Time) (fasting.WaterState, error)
	SaveWater(ctx context.Context, userID string, w fasting.WaterState) error
	RemindersEnabled(ctx context.Context, userID string) (bool, error)
	SetRemindersEnabled(ctx context.Context, userID string, enabled bool) error
	ActiveUsers(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, userID string, active bool) error
	Clear(ctx context.Context, userID string) error
}

// FastingService owns the timer session lifecycle: transitions, alarm
// (re)scheduling and notification content. One logical session per user.
type FastingService struct {
	store  SessionStore
	alarms scheduler.AlarmService
	sink   notify.Sink
	now    func() time.Time
}

// NewFastingService creates the service. The alarm service is attached
// separately because its dispatch handler points back here.
func NewFastingService(store SessionStore, sink notify.Sink) *FastingService {
	return &FastingService{
		store: store,
		sink:  sink,
		now:   time.Now,
	}
}

// SetAlarmService attaches the alarm backend.
func (s *FastingService) SetAlarmService(alarms scheduler.AlarmService) {
	s.alarms = alarms
}

// SetClock overrides the time source, for tests.
func (s *FastingService) SetClock(now func() time.Time) {
	s.now = now
}

// FastingStatus is the session view returned to clients: always derived,
// never the raw stored record.
type FastingStatusResponse struct {
	Session fasting.Session    `json:"session"`
	Status  fasting.Status     `json:"status"`
	Water   fasting.WaterState `json:"water"`
}

// Status reads the session, lazily applying any transition the clock has
// made due before deriving the view. This is the pull-based advance: state
// moves when observed, or when an alarm fires.
func (s *FastingService) Status(ctx context.Context, userID uuid.UUID) (*FastingStatusResponse, error) {
	now := s.now()
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	sess, advanced, err := s.advance(ctx, userID, sess, now)
	if err != nil {
		return nil, err
	}
	if advanced {
		logger.InfoCtx(ctx, "fasting session advanced on read",
			"user_id", userID.String(), "state", string(sess.State))
	}

	water, err := s.store.LoadWater(ctx, userID.String(), now)
	if err != nil {
		return nil, err
	}

	return &FastingStatusResponse{
		Session: sess,
		Status:  fasting.Derive(sess, now),
		Water:   water,
	}, nil
}

// advance applies every transition that has come due, persisting and
// rescheduling alarms for each. A session untouched for days chains through
// the missed windows until it lands in the present.
func (s *FastingService) advance(ctx context.Context, userID uuid.UUID, sess fasting.Session, now time.Time) (fasting.Session, bool, error) {
	advanced := false
	for {
		next, changed := fasting.Advance(sess, now)
		if !changed {
			return sess, advanced, nil
		}
		if err := s.applyTransition(ctx, userID, next); err != nil {
			return sess, advanced, err
		}
		sess = next
		advanced = true
	}
}

// StartFast begins a fast now.
func (s *FastingService) StartFast(ctx context.Context, userID uuid.UUID) (fasting.Session, error) {
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return sess, err
	}
	sess = fasting.StartFast(sess, s.now())
	if err := s.applyTransition(ctx, userID, sess); err != nil {
		return sess, err
	}
	if err := s.store.SetActive(ctx, userID.String(), true); err != nil {
		return sess, err
	}
	return sess, nil
}

// StopFast ends the current fast, opening the eating window now whether or
// not the goal was reached.
func (s *FastingService) StopFast(ctx context.Context, userID uuid.UUID) (fasting.Session, error) {
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return sess, err
	}
	sess = fasting.EndFast(sess, s.now())
	return sess, s.applyTransition(ctx, userID, sess)
}

// NextFast closes the eating window early and starts the next fast now.
func (s *FastingService) NextFast(ctx context.Context, userID uuid.UUID) (fasting.Session, error) {
	return s.StartFast(ctx, userID)
}

// Reset clears the session and every alarm. Idempotent: resetting an idle
// session is a no-op.
func (s *FastingService) Reset(ctx context.Context, userID uuid.UUID) (fasting.Session, error) {
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return sess, err
	}
	sess = fasting.Reset(sess)
	if err := s.applyTransition(ctx, userID, sess); err != nil {
		return sess, err
	}
	return sess, s.store.SetActive(ctx, userID.String(), false)
}

// SelectSchedule switches the fasting schedule. Custom hours are clamped to
// their valid range. An in-flight window is rescheduled against the new
// target.
func (s *FastingService) SelectSchedule(ctx context.Context, userID uuid.UUID, schedule fasting.Schedule, customHours int) (fasting.Session, error) {
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return sess, err
	}
	sess.Schedule = schedule
	if schedule == fasting.ScheduleCustom {
		sess.CustomFastingHours = fasting.ClampCustomHours(customHours)
	}
	return sess, s.applyTransition(ctx, userID, sess)
}

// applyTransition settles a session change: cancel the complete possible
// alarm set, persist, then schedule the new set. Cancel-before-persist and
// persist-before-schedule; a crash between steps is tolerated because the
// next observation reconciles from persisted state.
func (s *FastingService) applyTransition(ctx context.Context, userID uuid.UUID, sess fasting.Session) error {
	if err := s.cancelAll(ctx, userID); err != nil {
		return err
	}
	if err := s.store.SaveSession(ctx, userID.String(), sess); err != nil {
		return err
	}
	return s.scheduleFor(ctx, userID, sess)
}

func (s *FastingService) cancelAll(ctx context.Context, userID uuid.UUID) error {
	if s.alarms == nil {
		return nil
	}
	for _, key := range fasting.AllPossibleKeys() {
		if err := s.alarms.Cancel(ctx, s.alarmKey(userID, key)); err != nil {
			return err
		}
	}
	return nil
}

func (s *FastingService) scheduleFor(ctx context.Context, userID uuid.UUID, sess fasting.Session) error {
	if s.alarms == nil {
		return nil
	}
	now := s.now()

	var plan []fasting.Alarm
	switch sess.State {
	case fasting.StateFasting:
		if sess.FastingStartTime != nil {
			plan = fasting.FastingAlarmPlan(*sess.FastingStartTime, sess.TargetHours(), now)
		}
	case fasting.StateEating:
		if sess.EatingWindowStartTime != nil {
			plan = fasting.EatingAlarmPlan(*sess.EatingWindowStartTime, sess.TargetHours(), now)
		}
	default:
		return nil
	}

	remindersOn, err := s.store.RemindersEnabled(ctx, userID.String())
	if err != nil {
		remindersOn = true
	}

	for _, alarm := range plan {
		if alarm.Key.Kind == fasting.AlarmWaterReminder && !remindersOn {
			continue
		}
		payload := scheduler.Payload{
			Kind:  string(alarm.Key.Kind),
			Title: alarm.Title,
			Body:  alarm.Body,
		}
		if err := s.alarms.ScheduleAt(ctx, s.alarmKey(userID, alarm.Key), alarm.FireAt, payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *FastingService) alarmKey(userID uuid.UUID, key fasting.AlarmKey) string {
	return fmt.Sprintf("user:%s:%s", userID, key)
}

// HandleAlarm is the scheduler's dispatch target: it advances the session
// if the alarm marks a transition and emits the notification.
func (s *FastingService) HandleAlarm(ctx context.Context, key string, payload scheduler.Payload) {
	userID, ok := parseAlarmUser(key)
	if !ok {
		logger.Warn("ignoring alarm with malformed key", "key", key)
		return
	}

	now := s.now()
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		logger.ErrorCtx(ctx, "failed to load session for alarm", "key", key, "error", err)
		return
	}
	if _, _, err := s.advance(ctx, userID, sess, now); err != nil {
		logger.ErrorCtx(ctx, "failed to advance session for alarm", "key", key, "error", err)
	}

	s.sink.Notify(ctx, userID, notify.Notification{
		Category: payload.Kind,
		Title:    payload.Title,
		Body:     payload.Body,
	})
}

// parseAlarmUser extracts the user from "user:<uuid>:<semantic key>".
func parseAlarmUser(key string) (uuid.UUID, bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 || parts[0] != "user" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Reconcile re-derives and re-schedules every active user's alarms from
// persisted state. Run at process start: no in-memory timer survives a
// restart, so the persisted record is the only source of truth.
func (s *FastingService) Reconcile(ctx context.Context) error {
	users, err := s.store.ActiveUsers(ctx)
	if err != nil {
		return err
	}
	for _, raw := range users {
		userID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		sess, err := s.store.LoadSession(ctx, raw)
		if err != nil {
			logger.Error("reconcile: failed to load session", "user_id", raw, "error", err)
			continue
		}
		sess, _, err = s.advance(ctx, userID, sess, s.now())
		if err != nil {
			logger.Error("reconcile: failed to advance session", "user_id", raw, "error", err)
			continue
		}
		if err := s.cancelAll(ctx, userID); err != nil {
			return err
		}
		if err := s.scheduleFor(ctx, userID, sess); err != nil {
			return err
		}
	}
	return nil
}

// AddWater increments today's glass count.
func (s *FastingService) AddWater(ctx context.Context, userID uuid.UUID) (fasting.WaterState, error) {
	return s.mutateWater(ctx, userID, fasting.WaterState.Increment)
}

// RemoveWater decrements today's glass count, never below zero.
func (s *FastingService) RemoveWater(ctx context.Context, userID uuid.UUID) (fasting.WaterState, error) {
	return s.mutateWater(ctx, userID, fasting.WaterState.Decrement)
}

// SetWaterGoal updates the configured daily goal, clamped to [0, 20].
func (s *FastingService) SetWaterGoal(ctx context.Context, userID uuid.UUID, goal int) (fasting.WaterState, error) {
	return s.mutateWater(ctx, userID, func(w fasting.WaterState) fasting.WaterState {
		w.Goal = fasting.ClampWaterGoal(goal)
		return w
	})
}

func (s *FastingService) mutateWater(ctx context.Context, userID uuid.UUID, fn func(fasting.WaterState) fasting.WaterState) (fasting.WaterState, error) {
	w, err := s.store.LoadWater(ctx, userID.String(), s.now())
	if err != nil {
		return w, err
	}
	w = fn(w)
	return w, s.store.SaveWater(ctx, userID.String(), w)
}

// SetRemindersEnabled toggles water reminders and reschedules the current
// window so the change takes effect immediately.
func (s *FastingService) SetRemindersEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error {
	if err := s.store.SetRemindersEnabled(ctx, userID.String(), enabled); err != nil {
		return err
	}
	sess, err := s.store.LoadSession(ctx, userID.String())
	if err != nil {
		return err
	}
	return s.applyTransition(ctx, userID, sess)
}
