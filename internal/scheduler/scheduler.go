// Package scheduler provides fire-once wall-clock alarms keyed by semantic
// identifiers. Alarms survive process restarts because the due-queue lives
// in redis; an in-memory implementation backs tests and single-node
// development.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrifast/backend/internal/logger"
)

// Payload is the notification content carried by an alarm.
type Payload struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AlarmService schedules and cancels fire-once alarms. Delivery is "as soon
// as possible at or after" the requested time. Cancelling a key that was
// never scheduled is a no-op, never an error.
type AlarmService interface {
	ScheduleAt(ctx context.Context, key string, fireAt time.Time, payload Payload) error
	Cancel(ctx context.Context, key string) error
}

// Handler receives a fired alarm.
type Handler func(ctx context.Context, key string, payload Payload)

const (
	dueSetKey     = "alarms:due"
	payloadMapKey = "alarms:payloads"
)

// RedisScheduler keeps the due-queue in a redis sorted set scored by fire
// time, with payloads in a companion hash.
type RedisScheduler struct {
	rdb          *redis.Client
	pollInterval time.Duration
	handler      Handler
}

// NewRedisScheduler creates a scheduler polling at the given interval.
func NewRedisScheduler(rdb *redis.Client, pollInterval time.Duration, handler Handler) *RedisScheduler {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &RedisScheduler{rdb: rdb, pollInterval: pollInterval, handler: handler}
}

// ScheduleAt registers (or reschedules) the alarm for the key.
func (s *RedisScheduler) ScheduleAt(ctx context.Context, key string, fireAt time.Time, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode alarm payload: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, dueSetKey, redis.Z{Score: float64(fireAt.UnixMilli()), Member: key})
	pipe.HSet(ctx, payloadMapKey, key, data)
	_, err = pipe.Exec(ctx)
	return err
}

// Cancel removes the alarm if present. Unknown keys are a no-op.
func (s *RedisScheduler) Cancel(ctx context.Context, key string) error {
	pipe := s.rdb.TxPipeline()
	pipe.ZRem(ctx, dueSetKey, key)
	pipe.HDel(ctx, payloadMapKey, key)
	_, err := pipe.Exec(ctx)
	return err
}

// Run polls for due alarms until the context is cancelled. The poll is
// best-effort timing only; correctness of the timer state never depends on
// a particular tick having fired.
func (s *RedisScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := s.dispatchDue(ctx, now); err != nil {
				logger.Error("alarm dispatch failed", "error", err)
			}
		}
	}
}

func (s *RedisScheduler) dispatchDue(ctx context.Context, now time.Time) error {
	keys, err := s.rdb.ZRangeByScore(ctx, dueSetKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.UnixMilli()),
	}).Result()
	if err != nil {
		return err
	}

	for _, key := range keys {
		data, err := s.rdb.HGet(ctx, payloadMapKey, key).Result()
		// Remove before handling so an alarm fires at most once even if
		// the handler panics or the payload is gone.
		if cancelErr := s.Cancel(ctx, key); cancelErr != nil {
			return cancelErr
		}
		if err != nil {
			continue
		}
		var payload Payload
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			logger.Warn("dropping alarm with corrupt payload", "key", key)
			continue
		}
		if s.handler != nil {
			s.handler(ctx, key, payload)
		}
	}
	return nil
}
