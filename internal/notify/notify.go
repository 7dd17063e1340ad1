// Package notify delivers fasting notifications. The core only decides
// content; rendering and transport belong to whatever sink is plugged in.
package notify

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/logger"
	"github.com/nutrifast/backend/internal/models"
)

// Notification is the content of one user-facing notification.
type Notification struct {
	Category string
	Title    string
	Body     string
}

// Sink shows a notification to a user. Fire-and-forget: failures degrade
// timeliness, never correctness.
type Sink interface {
	Notify(ctx context.Context, userID uuid.UUID, n Notification)
}

// LogSink writes notifications to the structured log. Used in development
// and as the fallback delivery path.
type LogSink struct{}

// Notify implements Sink.
func (LogSink) Notify(ctx context.Context, userID uuid.UUID, n Notification) {
	logger.InfoCtx(ctx, "notification",
		"user_id", userID.String(),
		"category", n.Category,
		"title", n.Title,
		"body", n.Body,
	)
}

// StoreSink persists notifications so clients can poll the history, and
// also logs them.
type StoreSink struct {
	db *gorm.DB
}

// NewStoreSink creates a sink persisting to the notifications table.
func NewStoreSink(db *gorm.DB) *StoreSink {
	return &StoreSink{db: db}
}

// Recent returns the newest notifications for a user, newest first.
func (s *StoreSink) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Notify implements Sink.
func (s *StoreSink) Notify(ctx context.Context, userID uuid.UUID, n Notification) {
	record := models.Notification{
		ID:       uuid.New(),
		UserID:   userID,
		Category: n.Category,
		Title:    n.Title,
		Body:     n.Body,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		logger.ErrorCtx(ctx, "failed to persist notification", "error", err)
	}
	LogSink{}.Notify(ctx, userID, n)
}
