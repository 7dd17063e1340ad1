package nutrition_test

import (
	"testing"

	"github.com/nutrifast/backend/internal/nutrition"
	"github.com/stretchr/testify/assert"
)

func TestCalculateBMR(t *testing.T) {
	// 10*70 + 6.25*175 - 5*30 + 5
	assert.Equal(t, 1673.75, nutrition.CalculateBMR(nutrition.SexMale, 70, 175, 30))
	// female variant subtracts 161 instead of adding 5
	assert.Equal(t, 1507.75, nutrition.CalculateBMR(nutrition.SexFemale, 70, 175, 30))
}

func TestCalculateBMRLinearity(t *testing.T) {
	base := nutrition.CalculateBMR(nutrition.SexMale, 70, 175, 30)
	assert.Equal(t, base+10, nutrition.CalculateBMR(nutrition.SexMale, 71, 175, 30))
	assert.Equal(t, base+6.25, nutrition.CalculateBMR(nutrition.SexMale, 70, 176, 30))
	assert.Equal(t, base-5, nutrition.CalculateBMR(nutrition.SexMale, 70, 175, 31))
}

func TestCalculateBMRDegenerateInputs(t *testing.T) {
	// Out-of-domain inputs are not validated here; the formula just runs.
	assert.Less(t, nutrition.CalculateBMR(nutrition.SexFemale, 1, 1, 120), 0.0)
}

func TestCalculateTDEE(t *testing.T) {
	assert.Equal(t, 2594.3125, nutrition.CalculateTDEE(1673.75, 1.55))
}

func TestActivityMultiplierFallback(t *testing.T) {
	assert.Equal(t, 1.2, nutrition.ActivityLevel("couch").Multiplier())
	assert.Equal(t, 1.9, nutrition.ActivityExtraActive.Multiplier())
}

func TestCalculateTargetCalories(t *testing.T) {
	assert.Equal(t, 2094, nutrition.CalculateTargetCalories(2594.3125, -500))
	assert.Equal(t, 2594, nutrition.CalculateTargetCalories(2594.3125, 0))
	// round half-up
	assert.Equal(t, 2001, nutrition.CalculateTargetCalories(2000.5, 0))
}

func TestCalculateMacroGrams(t *testing.T) {
	protein, carbs, fat := nutrition.CalculateMacroGrams(2000, 30, 40, 30)
	assert.Equal(t, 150, protein)
	assert.Equal(t, 200, carbs)
	assert.Equal(t, 67, fat)

	// Independent rounding means the grams never get reconciled back to the
	// calorie target; 150*4+200*4+67*9 != 2000 and that is fine.
	assert.NotEqual(t, 2000, protein*4+carbs*4+fat*9)
}

func TestCalculateAllTargets(t *testing.T) {
	profile := nutrition.Profile{
		Age:           30,
		Sex:           nutrition.SexMale,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: nutrition.ActivityModerate,
		WeightGoal:    nutrition.GoalLoseFast,
		MacroPreset:   nutrition.PresetBalanced,
	}

	targets := nutrition.CalculateAllTargets(profile)
	assert.Equal(t, 1673.75, targets.BMR)
	assert.Equal(t, 2594.3125, targets.TDEE)
	assert.Equal(t, 2094, targets.TargetCalories)

	// pure function: same input, same output
	assert.Equal(t, targets, nutrition.CalculateAllTargets(profile))
}

func TestCalculateAllTargetsCalorieOverride(t *testing.T) {
	override := 1800
	profile := nutrition.Profile{
		Age:             30,
		Sex:             nutrition.SexFemale,
		WeightKg:        60,
		HeightCm:        165,
		ActivityLevel:   nutrition.ActivityLight,
		WeightGoal:      nutrition.GoalMaintain,
		MacroPreset:     nutrition.PresetHighProtein,
		CalorieOverride: &override,
	}

	targets := nutrition.CalculateAllTargets(profile)
	assert.Equal(t, 1800, targets.TargetCalories)
	// macros are computed off the override, not the TDEE-derived number
	assert.Equal(t, 180, targets.ProteinGrams) // 1800*0.40/4
}

func TestCalculateAllTargetsCustomMacros(t *testing.T) {
	profile := nutrition.Profile{
		Age:           25,
		Sex:           nutrition.SexMale,
		WeightKg:      80,
		HeightCm:      180,
		ActivityLevel: nutrition.ActivitySedentary,
		WeightGoal:    nutrition.GoalMaintain,
		MacroPreset:   nutrition.PresetCustom,
		CustomMacros:  nutrition.MacroSplit{ProteinPct: 50, CarbsPct: 25, FatPct: 25},
	}

	targets := nutrition.CalculateAllTargets(profile)
	expectedProtein, _, _ := nutrition.CalculateMacroGrams(targets.TargetCalories, 50, 25, 25)
	assert.Equal(t, expectedProtein, targets.ProteinGrams)
}
