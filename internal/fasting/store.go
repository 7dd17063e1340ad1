package fasting

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys per user, all primitive scalars. Timestamps are epoch millis,
// dates ISO strings, so a record written before a reboot reads back the same.
const (
	keyState        = "state"
	keyFastingStart = "fasting_start_ms"
	keyEatingStart  = "eating_start_ms"
	keySchedule     = "schedule"
	keyCustomHours  = "custom_hours"
	keyWaterCount   = "water_count"
	keyWaterReset   = "water_last_reset"
	keyWaterGoal    = "water_goal"
	keyReminders    = "reminders_enabled"
)

// Store is the durable key-value gateway for fasting session state, backed
// by redis. Corrupt or missing values fall back to documented defaults and
// are never surfaced as errors to the user.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a session store on the given redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) key(userID, field string) string {
	return fmt.Sprintf("fasting:%s:%s", userID, field)
}

func (s *Store) channel(userID string) string {
	return fmt.Sprintf("fasting:%s:updates", userID)
}

// LoadSession reads the session record for a user. A user with nothing
// persisted (or garbage persisted) gets the defaulted record.
func (s *Store) LoadSession(ctx context.Context, userID string) (Session, error) {
	vals, err := s.rdb.MGet(ctx,
		s.key(userID, keyState),
		s.key(userID, keyFastingStart),
		s.key(userID, keyEatingStart),
		s.key(userID, keySchedule),
		s.key(userID, keyCustomHours),
	).Result()
	if err != nil {
		return DefaultSession(), err
	}

	sess := DefaultSession()
	sess.State = ParseState(asString(vals[0]))
	sess.FastingStartTime = parseEpochMillis(asString(vals[1]))
	sess.EatingWindowStartTime = parseEpochMillis(asString(vals[2]))
	if v := asString(vals[3]); v != "" {
		sess.Schedule = ParseSchedule(v)
	}
	if n, err := strconv.Atoi(asString(vals[4])); err == nil {
		sess.CustomFastingHours = ClampCustomHours(n)
	}
	return sess, nil
}

// SaveSession persists the session record and publishes a change
// notification for observers.
func (s *Store) SaveSession(ctx context.Context, userID string, sess Session) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key(userID, keyState), string(sess.State), 0)
	setOrDelMillis(ctx, pipe, s.key(userID, keyFastingStart), sess.FastingStartTime)
	setOrDelMillis(ctx, pipe, s.key(userID, keyEatingStart), sess.EatingWindowStartTime)
	pipe.Set(ctx, s.key(userID, keySchedule), string(sess.Schedule), 0)
	pipe.Set(ctx, s.key(userID, keyCustomHours), strconv.Itoa(sess.CustomFastingHours), 0)
	pipe.Publish(ctx, s.channel(userID), string(sess.State))
	_, err := pipe.Exec(ctx)
	return err
}

// LoadWater reads the water counter, applying the day-rollover reset and
// persisting it when it happened so the reset survives the read.
func (s *Store) LoadWater(ctx context.Context, userID string, now time.Time) (WaterState, error) {
	vals, err := s.rdb.MGet(ctx,
		s.key(userID, keyWaterCount),
		s.key(userID, keyWaterGoal),
		s.key(userID, keyWaterReset),
	).Result()
	if err != nil {
		return DefaultWaterState(now), err
	}

	w := DefaultWaterState(now)
	if n, err := strconv.Atoi(asString(vals[0])); err == nil && n >= 0 {
		w.Count = n
	}
	if n, err := strconv.Atoi(asString(vals[1])); err == nil {
		w.Goal = ClampWaterGoal(n)
	}
	if v := asString(vals[2]); v != "" {
		w.LastResetDate = v
	}

	rolled := w.Rollover(now)
	if rolled != w {
		if err := s.SaveWater(ctx, userID, rolled); err != nil {
			return rolled, err
		}
	}
	return rolled, nil
}

// SaveWater persists the water counter.
func (s *Store) SaveWater(ctx context.Context, userID string, w WaterState) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key(userID, keyWaterCount), strconv.Itoa(w.Count), 0)
	pipe.Set(ctx, s.key(userID, keyWaterGoal), strconv.Itoa(w.Goal), 0)
	pipe.Set(ctx, s.key(userID, keyWaterReset), w.LastResetDate, 0)
	_, err := pipe.Exec(ctx)
	return err
}

// RemindersEnabled reads the reminder toggle, defaulting to enabled.
func (s *Store) RemindersEnabled(ctx context.Context, userID string) (bool, error) {
	v, err := s.rdb.Get(ctx, s.key(userID, keyReminders)).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	enabled, parseErr := strconv.ParseBool(v)
	if parseErr != nil {
		return true, nil
	}
	return enabled, nil
}

// SetRemindersEnabled persists the reminder toggle.
func (s *Store) SetRemindersEnabled(ctx context.Context, userID string, enabled bool) error {
	return s.rdb.Set(ctx, s.key(userID, keyReminders), strconv.FormatBool(enabled), 0).Err()
}

// Observe delivers the session record again after every save until the
// context is cancelled. The current record is sent first.
func (s *Store) Observe(ctx context.Context, userID string) (<-chan Session, error) {
	sub := s.rdb.Subscribe(ctx, s.channel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan Session, 1)
	if sess, err := s.LoadSession(ctx, userID); err == nil {
		out <- sess
	}

	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				sess, err := s.LoadSession(ctx, userID)
				if err != nil {
					continue
				}
				select {
				case out <- sess:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// activeSetKey tracks users with a session worth reconciling at boot.
const activeSetKey = "fasting:active_users"

// ActiveUsers lists users whose alarms should be re-derived at startup.
func (s *Store) ActiveUsers(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, activeSetKey).Result()
}

// SetActive adds or removes a user from the reconciliation set.
func (s *Store) SetActive(ctx context.Context, userID string, active bool) error {
	if active {
		return s.rdb.SAdd(ctx, activeSetKey, userID).Err()
	}
	return s.rdb.SRem(ctx, activeSetKey, userID).Err()
}

// Clear removes every persisted value for the user.
func (s *Store) Clear(ctx context.Context, userID string) error {
	fields := []string{
		keyState, keyFastingStart, keyEatingStart, keySchedule, keyCustomHours,
		keyWaterCount, keyWaterReset, keyWaterGoal, keyReminders,
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = s.key(userID, f)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	if err := s.rdb.SRem(ctx, activeSetKey, userID).Err(); err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel(userID), string(StateNotStarted)).Err()
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func parseEpochMillis(v string) *time.Time {
	if v == "" {
		return nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

func setOrDelMillis(ctx context.Context, pipe redis.Pipeliner, key string, t *time.Time) {
	if t == nil {
		pipe.Del(ctx, key)
		return
	}
	pipe.Set(ctx, key, strconv.FormatInt(t.UnixMilli(), 10), 0)
}
