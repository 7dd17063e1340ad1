package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a delivered fasting notification, persisted so clients
// can poll the history. Delivery itself is fire-and-forget.
type Notification struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Category  string    `gorm:"size:30;not null" json:"category"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
