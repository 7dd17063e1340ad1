package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/models"
	"github.com/nutrifast/backend/internal/nutrition"
	"github.com/nutrifast/backend/internal/types"
)

// FoodService handles the food diary.
type FoodService struct {
	db      *gorm.DB
	profile *ProfileService
}

func NewFoodService(db *gorm.DB, profile *ProfileService) *FoodService {
	return &FoodService{db: db, profile: profile}
}

// CreateEntry logs one food item.
func (s *FoodService) CreateEntry(ctx context.Context, userID uuid.UUID, req types.CreateFoodEntryRequest) (*models.FoodEntry, error) {
	consumedAt := time.Now()
	if req.ConsumedAt != nil {
		consumedAt = *req.ConsumedAt
	}
	mealTime := req.MealTime
	if mealTime == "" {
		mealTime = "snack"
	}
	servingQty := req.ServingQty
	if servingQty <= 0 {
		servingQty = 1
	}

	entry := models.FoodEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Barcode:     req.Barcode,
		MealTime:    mealTime,
		ServingQty:  servingQty,
		ServingUnit: req.ServingUnit,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		ConsumedAt:  consumedAt,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns the diary for one calendar day.
func (s *FoodService) ListEntries(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.FoodEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Order("consumed_at ASC").
		Find(&entries).Error
	return entries, err
}

// UpdateEntry replaces the editable fields of an entry.
func (s *FoodService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req types.CreateFoodEntryRequest) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ? AND user_id = ?", entryID, userID).Error; err != nil {
		return nil, err
	}

	entry.Name = req.Name
	entry.Barcode = req.Barcode
	if req.MealTime != "" {
		entry.MealTime = req.MealTime
	}
	if req.ServingQty > 0 {
		entry.ServingQty = req.ServingQty
	}
	entry.ServingUnit = req.ServingUnit
	entry.Calories = req.Calories
	entry.Protein = req.Protein
	entry.Carbs = req.Carbs
	entry.Fat = req.Fat
	if req.ConsumedAt != nil {
		entry.ConsumedAt = *req.ConsumedAt
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes an entry from the diary.
func (s *FoodService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.FoodEntry{}, "id = ? AND user_id = ?", entryID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DailySummary aggregates a day of entries next to the user's current
// targets, which are recomputed from the profile here rather than stored.
func (s *FoodService) DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) (*models.DailySummary, error) {
	entries, err := s.ListEntries(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := models.DailySummary{
		Date:    day.Format("2006-01-02"),
		Entries: len(entries),
	}
	for _, e := range entries {
		summary.Calories += e.Calories
		summary.Protein += e.Protein
		summary.Carbs += e.Carbs
		summary.Fat += e.Fat
	}

	profile, err := s.profile.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	targets := s.profile.Targets(profile)
	summary.TargetCalories = targets.TargetCalories
	summary.ProteinGrams = targets.ProteinGrams
	summary.CarbsGrams = targets.CarbsGrams
	summary.FatGrams = targets.FatGrams

	return &summary, nil
}

// Targets exposes the recomputed targets for the summary endpoint.
func (s *FoodService) Targets(userID uuid.UUID) (*nutrition.Targets, error) {
	profile, err := s.profile.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	t := s.profile.Targets(profile)
	return &t, nil
}
