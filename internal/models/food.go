package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodEntry is one logged food item in the diary. Entries may come from
// manual input, a barcode scan or a food-database search result.
type FoodEntry struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Barcode     string         `gorm:"size:64;index" json:"barcode,omitempty"`
	MealTime    string         `gorm:"size:20;not null;default:'snack'" json:"meal_time"` // breakfast, lunch, dinner, snack
	ServingQty  float64        `gorm:"not null;default:1" json:"serving_qty"`
	ServingUnit string         `gorm:"size:30;default:'serving'" json:"serving_unit"`
	Calories    float64        `gorm:"not null" json:"calories"`
	Protein     float64        `json:"protein"`
	Carbs       float64        `json:"carbs"`
	Fat         float64        `json:"fat"`
	ConsumedAt  time.Time      `gorm:"not null;index" json:"consumed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// DailySummary aggregates a day of diary entries against the user's targets.
type DailySummary struct {
	Date           string  `json:"date"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	TargetCalories int     `json:"target_calories"`
	ProteinGrams   int     `json:"protein_grams"`
	CarbsGrams     int     `json:"carbs_grams"`
	FatGrams       int     `json:"fat_grams"`
	Entries        int     `json:"entries"`
}
