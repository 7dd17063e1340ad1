package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/models"
	"github.com/nutrifast/backend/internal/nutrition"
	"github.com/nutrifast/backend/internal/types"
)

var ErrInvalidMacroSplit = errors.New("custom macro percentages must sum to 100")

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the stored profile for a user.
func (s *ProfileService) GetProfile(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the requested changes and returns the updated
// record. A failed save surfaces to the caller; nothing is retried.
func (s *ProfileService) UpdateProfile(userID uuid.UUID, req types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Sex != nil {
		profile.Sex = *req.Sex
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.WeightGoal != nil {
		profile.WeightGoal = *req.WeightGoal
	}
	if req.MacroPreset != nil {
		profile.MacroPreset = *req.MacroPreset
	}
	if req.CustomProteinPct != nil {
		profile.CustomProteinPct = *req.CustomProteinPct
	}
	if req.CustomCarbsPct != nil {
		profile.CustomCarbsPct = *req.CustomCarbsPct
	}
	if req.CustomFatPct != nil {
		profile.CustomFatPct = *req.CustomFatPct
	}
	if req.CalorieOverride != nil {
		profile.CalorieOverride = req.CalorieOverride
	}
	if req.ClearOverride {
		profile.CalorieOverride = nil
	}

	if profile.MacroPreset == string(nutrition.PresetCustom) {
		sum := profile.CustomProteinPct + profile.CustomCarbsPct + profile.CustomFatPct
		if sum != 100 {
			return nil, ErrInvalidMacroSplit
		}
	}

	if err := s.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// SetAvatarURL records the uploaded avatar location.
func (s *ProfileService) SetAvatarURL(userID uuid.UUID, url string) error {
	return s.db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", url).Error
}

// Targets recomputes the nutrition targets from the stored profile. They
// are derived on every call, never persisted.
func (s *ProfileService) Targets(profile *models.UserProfile) nutrition.Targets {
	return nutrition.CalculateAllTargets(nutrition.Profile{
		Age:           profile.Age,
		Sex:           nutrition.Sex(profile.Sex),
		WeightKg:      profile.WeightKg,
		HeightCm:      profile.HeightCm,
		ActivityLevel: nutrition.ActivityLevel(profile.ActivityLevel),
		WeightGoal:    nutrition.WeightGoal(profile.WeightGoal),
		MacroPreset:   nutrition.MacroPreset(profile.MacroPreset),
		CustomMacros: nutrition.MacroSplit{
			ProteinPct: profile.CustomProteinPct,
			CarbsPct:   profile.CustomCarbsPct,
			FatPct:     profile.CustomFatPct,
		},
		CalorieOverride: profile.CalorieOverride,
	})
}
