package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile carries the body metrics and preferences that drive the
// nutrition targets. Targets themselves are never stored; they are
// recomputed from this record on every read.
type UserProfile struct {
	ID                uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username          string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	AvatarURL         string         `gorm:"size:255" json:"avatar_url"`
	Age               int            `gorm:"not null;default:30" json:"age"`
	Sex               string         `gorm:"size:10;not null;default:'female'" json:"sex"`
	WeightKg          float64        `gorm:"not null;default:70" json:"weight_kg"`
	HeightCm          float64        `gorm:"not null;default:170" json:"height_cm"`
	ActivityLevel     string         `gorm:"size:20;not null;default:'sedentary'" json:"activity_level"`
	WeightGoal        string         `gorm:"size:20;not null;default:'maintain'" json:"weight_goal"`
	MacroPreset       string         `gorm:"size:20;not null;default:'balanced'" json:"macro_preset"`
	CustomProteinPct  int            `gorm:"default:30" json:"custom_protein_pct"`
	CustomCarbsPct    int            `gorm:"default:40" json:"custom_carbs_pct"`
	CustomFatPct      int            `gorm:"default:30" json:"custom_fat_pct"`
	CalorieOverride   *int           `json:"calorie_override,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
