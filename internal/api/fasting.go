package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrifast/backend/internal/fasting"
	"github.com/nutrifast/backend/internal/notify"
	"github.com/nutrifast/backend/internal/service"
	"github.com/nutrifast/backend/internal/types"
)

// SessionObserver streams session records as they change. Implemented by
// fasting.Store over redis pub/sub.
type SessionObserver interface {
	Observe(ctx context.Context, userID string) (<-chan fasting.Session, error)
}

type FastingHandler struct {
	fastingService *service.FastingService
	notifications  *notify.StoreSink
	observer       SessionObserver
}

func NewFastingHandler(fastingService *service.FastingService, notifications *notify.StoreSink, observer SessionObserver) *FastingHandler {
	return &FastingHandler{
		fastingService: fastingService,
		notifications:  notifications,
		observer:       observer,
	}
}

func (h *FastingHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/fasting")
	{
		group.GET("/status", h.Status)
		group.POST("/start", h.Start)
		group.POST("/stop", h.Stop)
		group.POST("/next", h.Next)
		group.POST("/reset", h.Reset)
		group.PUT("/schedule", h.SelectSchedule)
		group.POST("/water", h.AddWater)
		group.DELETE("/water", h.RemoveWater)
		group.PUT("/water/goal", h.SetWaterGoal)
		group.PUT("/reminders", h.SetReminders)
		group.GET("/notifications", h.Notifications)
		group.GET("/stream", h.Stream)
	}
}

// Stream pushes the session record over server-sent events after every
// change, starting with the current one.
func (h *FastingHandler) Stream(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.observer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "streaming is not available"})
		return
	}

	ch, err := h.observer.Observe(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to observe session"})
		return
	}

	c.Stream(func(w io.Writer) bool {
		sess, open := <-ch
		if !open {
			return false
		}
		c.SSEvent("session", sess)
		return true
	})
}

// Status is the main polling endpoint. Elapsed, remaining and progress are
// derived server-side so clients never compute timer math.
func (h *FastingHandler) Status(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.fastingService.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load fasting status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *FastingHandler) Start(c *gin.Context) {
	h.mutateSession(c, h.fastingService.StartFast)
}

func (h *FastingHandler) Stop(c *gin.Context) {
	h.mutateSession(c, h.fastingService.StopFast)
}

func (h *FastingHandler) Next(c *gin.Context) {
	h.mutateSession(c, h.fastingService.NextFast)
}

func (h *FastingHandler) Reset(c *gin.Context) {
	h.mutateSession(c, h.fastingService.Reset)
}

func (h *FastingHandler) mutateSession(c *gin.Context, fn func(ctx context.Context, userID uuid.UUID) (fasting.Session, error)) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sess, err := fn(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update fasting session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (h *FastingHandler) SelectSchedule(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SelectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.fastingService.SelectSchedule(c.Request.Context(), userID, fasting.ParseSchedule(req.Schedule), req.CustomHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (h *FastingHandler) AddWater(c *gin.Context) {
	h.mutateWater(c, h.fastingService.AddWater)
}

func (h *FastingHandler) RemoveWater(c *gin.Context) {
	h.mutateWater(c, h.fastingService.RemoveWater)
}

func (h *FastingHandler) mutateWater(c *gin.Context, fn func(ctx context.Context, userID uuid.UUID) (fasting.WaterState, error)) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	water, err := fn(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update water intake"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"water": water})
}

func (h *FastingHandler) SetWaterGoal(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.WaterGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	water, err := h.fastingService.SetWaterGoal(c.Request.Context(), userID, req.Goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update water goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"water": water})
}

func (h *FastingHandler) SetReminders(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.RemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.fastingService.SetRemindersEnabled(c.Request.Context(), userID, req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders_enabled": req.Enabled})
}

func (h *FastingHandler) Notifications(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.notifications.Recent(c.Request.Context(), userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": records})
}
