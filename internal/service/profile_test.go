package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/models"
	"github.com/nutrifast/backend/internal/testhelpers"
	"github.com/nutrifast/backend/internal/types"
)

func seedProfile(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	profile := models.UserProfile{
		ID:            uuid.New(),
		UserID:        userID,
		Username:      "testuser",
		Age:           25,
		Sex:           "male",
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: "moderate",
		WeightGoal:    "maintain",
		MacroPreset:   "balanced",
	}
	require.NoError(t, db.Create(&profile).Error)
	return userID
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestUpdateProfileMergesFields(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewProfileService(db)
	userID := seedProfile(t, db)

	updated, err := svc.UpdateProfile(userID, types.UpdateProfileRequest{
		WeightKg:   floatPtr(72.5),
		WeightGoal: strPtr("lose"),
	})
	require.NoError(t, err)

	assert.Equal(t, 72.5, updated.WeightKg)
	assert.Equal(t, "lose", updated.WeightGoal)
	// Untouched fields survive.
	assert.Equal(t, 25, updated.Age)
	assert.Equal(t, "moderate", updated.ActivityLevel)
}

func TestUpdateProfileRejectsBadCustomSplit(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewProfileService(db)
	userID := seedProfile(t, db)

	_, err := svc.UpdateProfile(userID, types.UpdateProfileRequest{
		MacroPreset:      strPtr("custom"),
		CustomProteinPct: intPtr(50),
		CustomCarbsPct:   intPtr(30),
		CustomFatPct:     intPtr(30),
	})
	assert.ErrorIs(t, err, ErrInvalidMacroSplit)

	_, err = svc.UpdateProfile(userID, types.UpdateProfileRequest{
		MacroPreset:      strPtr("custom"),
		CustomProteinPct: intPtr(40),
		CustomCarbsPct:   intPtr(30),
		CustomFatPct:     intPtr(30),
	})
	assert.NoError(t, err)
}

func TestCalorieOverrideSetAndClear(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewProfileService(db)
	userID := seedProfile(t, db)

	updated, err := svc.UpdateProfile(userID, types.UpdateProfileRequest{
		CalorieOverride: intPtr(1800),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CalorieOverride)

	targets := svc.Targets(updated)
	assert.Equal(t, 1800, targets.TargetCalories)

	updated, err = svc.UpdateProfile(userID, types.UpdateProfileRequest{ClearOverride: true})
	require.NoError(t, err)
	assert.Nil(t, updated.CalorieOverride)

	targets = svc.Targets(updated)
	assert.NotEqual(t, 1800, targets.TargetCalories)
}

func TestTargetsFollowProfileChanges(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewProfileService(db)
	userID := seedProfile(t, db)

	profile, err := svc.GetProfile(userID)
	require.NoError(t, err)
	before := svc.Targets(profile)

	updated, err := svc.UpdateProfile(userID, types.UpdateProfileRequest{
		ActivityLevel: strPtr("extra_active"),
	})
	require.NoError(t, err)
	after := svc.Targets(updated)

	assert.Greater(t, after.TargetCalories, before.TargetCalories)
}

func TestGetProfileMissingUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewProfileService(db)

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
