package types

import "time"

// RegisterRequest is the body for POST /api/v1/auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body for POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body for PUT /api/v1/profile. Pointer fields
// distinguish "not sent" from zero values; range validation happens at this
// boundary so the calculator itself never has to.
type UpdateProfileRequest struct {
	Age              *int     `json:"age" binding:"omitempty,gte=13,lte=120"`
	Sex              *string  `json:"sex" binding:"omitempty,oneof=male female"`
	WeightKg         *float64 `json:"weight_kg" binding:"omitempty,gte=30,lte=300"`
	HeightCm         *float64 `json:"height_cm" binding:"omitempty,gte=100,lte=250"`
	ActivityLevel    *string  `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active extra_active"`
	WeightGoal       *string  `json:"weight_goal" binding:"omitempty,oneof=lose_fast lose maintain gain gain_fast"`
	MacroPreset      *string  `json:"macro_preset" binding:"omitempty,oneof=balanced high_protein low_carb keto custom"`
	CustomProteinPct *int     `json:"custom_protein_pct" binding:"omitempty,gte=0,lte=100"`
	CustomCarbsPct   *int     `json:"custom_carbs_pct" binding:"omitempty,gte=0,lte=100"`
	CustomFatPct     *int     `json:"custom_fat_pct" binding:"omitempty,gte=0,lte=100"`
	CalorieOverride  *int     `json:"calorie_override" binding:"omitempty,gte=0"`
	ClearOverride    bool     `json:"clear_override"`
}

// CreateFoodEntryRequest is the body for POST /api/v1/foods
type CreateFoodEntryRequest struct {
	Name        string     `json:"name" binding:"required"`
	Barcode     string     `json:"barcode"`
	MealTime    string     `json:"meal_time" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	ServingQty  float64    `json:"serving_qty"`
	ServingUnit string     `json:"serving_unit"`
	Calories    float64    `json:"calories" binding:"required,gte=0"`
	Protein     float64    `json:"protein" binding:"gte=0"`
	Carbs       float64    `json:"carbs" binding:"gte=0"`
	Fat         float64    `json:"fat" binding:"gte=0"`
	ConsumedAt  *time.Time `json:"consumed_at"`
}

// CreateRecipeRequest is the body for POST /api/v1/recipes
type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     int      `json:"servings" binding:"omitempty,gte=1"`
	Calories     float64  `json:"calories" binding:"gte=0"`
	Protein      float64  `json:"protein" binding:"gte=0"`
	Carbs        float64  `json:"carbs" binding:"gte=0"`
	Fat          float64  `json:"fat" binding:"gte=0"`
}

// SelectScheduleRequest is the body for PUT /api/v1/fasting/schedule
type SelectScheduleRequest struct {
	Schedule    string `json:"schedule" binding:"required"`
	CustomHours int    `json:"custom_hours"`
}

// WaterGoalRequest is the body for PUT /api/v1/fasting/water/goal
type WaterGoalRequest struct {
	Goal int `json:"goal"`
}

// RemindersRequest is the body for PUT /api/v1/fasting/reminders
type RemindersRequest struct {
	Enabled bool `json:"enabled"`
}
