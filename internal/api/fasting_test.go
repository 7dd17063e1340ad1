package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrifast/backend/internal/fasting"
	"github.com/nutrifast/backend/internal/notify"
	"github.com/nutrifast/backend/internal/service"
)

// memorySessionStore is a map-backed service.SessionStore for handler tests.
type memorySessionStore struct {
	sessions  map[string]fasting.Session
	water     map[string]fasting.WaterState
	reminders map[string]bool
	active    map[string]bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions:  make(map[string]fasting.Session),
		water:     make(map[string]fasting.WaterState),
		reminders: make(map[string]bool),
		active:    make(map[string]bool),
	}
}

func (m *memorySessionStore) LoadSession(_ context.Context, userID string) (fasting.Session, error) {
	if sess, ok := m.sessions[userID]; ok {
		return sess, nil
	}
	return fasting.DefaultSession(), nil
}

func (m *memorySessionStore) SaveSession(_ context.Context, userID string, sess fasting.Session) error {
	m.sessions[userID] = sess
	return nil
}

func (m *memorySessionStore) LoadWater(_ context.Context, userID string, now time.Time) (fasting.WaterState, error) {
	if w, ok := m.water[userID]; ok {
		return w.Rollover(now), nil
	}
	return fasting.DefaultWaterState(now), nil
}

func (m *memorySessionStore) SaveWater(_ context.Context, userID string, w fasting.WaterState) error {
	m.water[userID] = w
	return nil
}

func (m *memorySessionStore) RemindersEnabled(_ context.Context, userID string) (bool, error) {
	if enabled, ok := m.reminders[userID]; ok {
		return enabled, nil
	}
	return true, nil
}

func (m *memorySessionStore) SetRemindersEnabled(_ context.Context, userID string, enabled bool) error {
	m.reminders[userID] = enabled
	return nil
}

func (m *memorySessionStore) ActiveUsers(_ context.Context) ([]string, error) {
	var users []string
	for id, on := range m.active {
		if on {
			users = append(users, id)
		}
	}
	return users, nil
}

func (m *memorySessionStore) SetActive(_ context.Context, userID string, active bool) error {
	m.active[userID] = active
	return nil
}

func (m *memorySessionStore) Clear(_ context.Context, userID string) error {
	delete(m.sessions, userID)
	delete(m.water, userID)
	delete(m.active, userID)
	return nil
}

func setupFastingRouter(t *testing.T, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fastingService := service.NewFastingService(newMemorySessionStore(), notify.LogSink{})
	handler := NewFastingHandler(fastingService, nil, nil)

	engine := gin.New()
	// Inject the authenticated user directly; auth itself is covered in
	// the middleware tests.
	engine.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestFastingStatusEndpoint(t *testing.T) {
	engine := setupFastingRouter(t, uuid.New())

	w := doRequest(t, engine, http.MethodGet, "/api/v1/fasting/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session fasting.Session    `json:"session"`
		Status  fasting.Status     `json:"status"`
		Water   fasting.WaterState `json:"water"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fasting.StateNotStarted, resp.Session.State)
	assert.Equal(t, 8, resp.Water.Goal)
}

func TestFastingStartStopFlow(t *testing.T) {
	engine := setupFastingRouter(t, uuid.New())

	w := doRequest(t, engine, http.MethodPost, "/api/v1/fasting/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session fasting.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fasting.StateFasting, resp.Session.State)

	w = doRequest(t, engine, http.MethodPost, "/api/v1/fasting/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fasting.StateEating, resp.Session.State)
}

func TestFastingScheduleEndpoint(t *testing.T) {
	engine := setupFastingRouter(t, uuid.New())

	w := doRequest(t, engine, http.MethodPut, "/api/v1/fasting/schedule",
		[]byte(`{"schedule":"custom","custom_hours":30}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session fasting.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fasting.ScheduleCustom, resp.Session.Schedule)
	assert.Equal(t, 23, resp.Session.CustomFastingHours)
}

func TestWaterEndpoints(t *testing.T) {
	engine := setupFastingRouter(t, uuid.New())

	w := doRequest(t, engine, http.MethodPost, "/api/v1/fasting/water", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Water fasting.WaterState `json:"water"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Water.Count)

	w = doRequest(t, engine, http.MethodDelete, "/api/v1/fasting/water", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Water.Count)

	w = doRequest(t, engine, http.MethodPut, "/api/v1/fasting/water/goal", []byte(`{"goal":12}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Water.Goal)
}
