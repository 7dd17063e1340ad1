package scheduler

import (
	"context"
	"sync"
	"time"
)

type memoryAlarm struct {
	fireAt  time.Time
	payload Payload
}

// MemoryScheduler is an in-process AlarmService used by tests and
// single-node development. Firing is driven explicitly via Tick.
type MemoryScheduler struct {
	mu      sync.Mutex
	alarms  map[string]memoryAlarm
	handler Handler
}

// NewMemoryScheduler creates an in-memory scheduler.
func NewMemoryScheduler(handler Handler) *MemoryScheduler {
	return &MemoryScheduler{
		alarms:  make(map[string]memoryAlarm),
		handler: handler,
	}
}

// ScheduleAt registers (or reschedules) the alarm for the key.
func (s *MemoryScheduler) ScheduleAt(_ context.Context, key string, fireAt time.Time, payload Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms[key] = memoryAlarm{fireAt: fireAt, payload: payload}
	return nil
}

// Cancel removes the alarm if present; unknown keys are a no-op.
func (s *MemoryScheduler) Cancel(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.alarms, key)
	return nil
}

// Pending returns the keys currently scheduled.
func (s *MemoryScheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.alarms))
	for k := range s.alarms {
		keys = append(keys, k)
	}
	return keys
}

// FireAt reports the scheduled fire time for a key.
func (s *MemoryScheduler) FireAt(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alarms[key]
	return a.fireAt, ok
}

// Tick fires every alarm due at or before now.
func (s *MemoryScheduler) Tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []string
	for k, a := range s.alarms {
		if !a.fireAt.After(now) {
			due = append(due, k)
		}
	}
	fired := make(map[string]Payload, len(due))
	for _, k := range due {
		fired[k] = s.alarms[k].payload
		delete(s.alarms, k)
	}
	s.mu.Unlock()

	if s.handler == nil {
		return
	}
	for k, p := range fired {
		s.handler(ctx, k, p)
	}
}
