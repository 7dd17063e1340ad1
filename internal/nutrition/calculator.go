// Package nutrition implements the calorie and macro target calculations.
// All functions are pure: inputs are assumed to be validated upstream and
// out-of-range values simply produce degenerate numbers.
package nutrition

import "math"

// Sex is the biological sex category used by the Mifflin-St Jeor equation.
// The formula only distinguishes these two variants.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel categorizes habitual daily activity.
type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "sedentary"
	ActivityLight       ActivityLevel = "light"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityActive      ActivityLevel = "active"
	ActivityExtraActive ActivityLevel = "extra_active"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// This is the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:   1.2,
	ActivityLight:       1.375,
	ActivityModerate:    1.55,
	ActivityActive:      1.725,
	ActivityExtraActive: 1.9,
}

// Multiplier returns the TDEE multiplier for the activity level, falling
// back to sedentary for unknown values.
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[ActivitySedentary]
}

// WeightGoal is the user's weight-change intent, each mapping to a signed
// daily calorie adjustment applied on top of TDEE.
type WeightGoal string

const (
	GoalLoseFast   WeightGoal = "lose_fast"
	GoalLose       WeightGoal = "lose"
	GoalMaintain   WeightGoal = "maintain"
	GoalGain       WeightGoal = "gain"
	GoalGainFast   WeightGoal = "gain_fast"
)

var goalAdjustments = map[WeightGoal]float64{
	GoalLoseFast: -500,
	GoalLose:     -250,
	GoalMaintain: 0,
	GoalGain:     300,
	GoalGainFast: 500,
}

// Adjustment returns the signed calorie adjustment for the goal, falling
// back to maintenance for unknown values.
func (g WeightGoal) Adjustment() float64 {
	if adj, ok := goalAdjustments[g]; ok {
		return adj
	}
	return 0
}

// MacroPreset names a fixed protein/carbs/fat percentage split.
type MacroPreset string

const (
	PresetBalanced    MacroPreset = "balanced"
	PresetHighProtein MacroPreset = "high_protein"
	PresetLowCarb     MacroPreset = "low_carb"
	PresetKeto        MacroPreset = "keto"
	PresetCustom      MacroPreset = "custom"
)

// MacroSplit is a percentage allocation of calories across macros.
// The three values sum to 100.
type MacroSplit struct {
	ProteinPct int
	CarbsPct   int
	FatPct     int
}

var presetSplits = map[MacroPreset]MacroSplit{
	PresetBalanced:    {ProteinPct: 30, CarbsPct: 40, FatPct: 30},
	PresetHighProtein: {ProteinPct: 40, CarbsPct: 30, FatPct: 30},
	PresetLowCarb:     {ProteinPct: 40, CarbsPct: 20, FatPct: 40},
	PresetKeto:        {ProteinPct: 25, CarbsPct: 5, FatPct: 70},
}

// Split returns the percentage split for the preset. For PresetCustom (or
// an unknown preset) the provided custom split is returned.
func (p MacroPreset) Split(custom MacroSplit) MacroSplit {
	if s, ok := presetSplits[p]; ok {
		return s
	}
	return custom
}

// Profile carries the body metrics and preferences the calculator needs.
type Profile struct {
	Age             int
	Sex             Sex
	WeightKg        float64
	HeightCm        float64
	ActivityLevel   ActivityLevel
	WeightGoal      WeightGoal
	MacroPreset     MacroPreset
	CustomMacros    MacroSplit
	CalorieOverride *int
}

// Targets is the derived set of daily targets. It is always recomputed from
// the profile, never stored.
type Targets struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"target_calories"`
	ProteinGrams   int     `json:"protein_grams"`
	CarbsGrams     int     `json:"carbs_grams"`
	FatGrams       int     `json:"fat_grams"`
}

// CalculateBMR computes basal metabolic rate via Mifflin-St Jeor:
// 10*kg + 6.25*cm - 5*age, +5 for the male variant, -161 for the female.
func CalculateBMR(sex Sex, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return base + 5
	}
	return base - 161
}

// CalculateTDEE scales BMR by the activity multiplier.
func CalculateTDEE(bmr, activityMultiplier float64) float64 {
	return bmr * activityMultiplier
}

// CalculateTargetCalories applies the goal adjustment to TDEE and rounds
// half-up to the nearest calorie.
func CalculateTargetCalories(tdee, calorieAdjustment float64) int {
	return int(math.Round(tdee + calorieAdjustment))
}

// CalculateMacroGrams converts a calorie target and percentage split into
// gram targets. Protein and carbs count 4 kcal per gram, fat 9. Each macro
// rounds independently, so the gram values do not reconstruct the calorie
// target exactly; that is the intended contract.
func CalculateMacroGrams(calories, proteinPct, carbsPct, fatPct int) (protein, carbs, fat int) {
	protein = int(math.Round(float64(calories) * float64(proteinPct) / 100 / 4))
	carbs = int(math.Round(float64(calories) * float64(carbsPct) / 100 / 4))
	fat = int(math.Round(float64(calories) * float64(fatPct) / 100 / 9))
	return protein, carbs, fat
}

// CalculateAllTargets composes the full pipeline: BMR, TDEE, target
// calories (honoring the calorie override when set), then the macro split.
func CalculateAllTargets(p Profile) Targets {
	bmr := CalculateBMR(p.Sex, p.WeightKg, p.HeightCm, p.Age)
	tdee := CalculateTDEE(bmr, p.ActivityLevel.Multiplier())

	calories := CalculateTargetCalories(tdee, p.WeightGoal.Adjustment())
	if p.CalorieOverride != nil {
		calories = *p.CalorieOverride
	}

	split := p.MacroPreset.Split(p.CustomMacros)
	protein, carbs, fat := CalculateMacroGrams(calories, split.ProteinPct, split.CarbsPct, split.FatPct)

	return Targets{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: calories,
		ProteinGrams:   protein,
		CarbsGrams:     carbs,
		FatGrams:       fat,
	}
}
