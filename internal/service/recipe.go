package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/models"
	"github.com/nutrifast/backend/internal/types"
)

// RecipeService handles the recipe library.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// MacroVector builds the normalized macro embedding for similarity search.
// Calories are scaled down so they don't dominate the gram dimensions.
func MacroVector(calories, protein, carbs, fat float64) pgvector.Vector {
	return pgvector.NewVector([]float32{
		float32(calories / 100),
		float32(protein),
		float32(carbs),
		float32(fat),
	})
}

// CreateRecipe creates a new recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req types.CreateRecipeRequest) (*models.Recipe, error) {
	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}
	recipe := models.Recipe{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Servings:     servings,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		MacroVector:  MacroVector(req.Calories, req.Protein, req.Carbs, req.Fat),
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe's fields, recomputing the macro vector.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req types.CreateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.ImageURL = req.ImageURL
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	if req.Servings > 0 {
		recipe.Servings = req.Servings
	}
	recipe.Calories = req.Calories
	recipe.Protein = req.Protein
	recipe.Carbs = req.Carbs
	recipe.Fat = req.Fat
	recipe.MacroVector = MacroVector(req.Calories, req.Protein, req.Carbs, req.Fat)

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe deletes a recipe owned by the user.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetImageURL records the uploaded photo's URL on a recipe the user owns.
func (s *RecipeService) SetImageURL(ctx context.Context, userID, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRecipes lists recipes for a user.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchRecipes finds recipes by keyword.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		// Ingredients is jsonb on postgres; cast before lowering. CAST(... AS TEXT)
		// works on both postgres and sqlite.
		dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(ingredients AS TEXT)) LIKE ?",
			like, like, like)
	}
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SimilarRecipes orders the user's recipes by macro-profile distance from
// the given recipe. On postgres this uses the pgvector column; other
// dialects fall back to returning recipes in the same category.
func (s *RecipeService) SimilarRecipes(ctx context.Context, userID, id uuid.UUID, limit int) ([]models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	var recipes []models.Recipe
	if s.db.Dialector.Name() == "postgres" {
		err = s.db.WithContext(ctx).
			Select("*, macro_vector <-> ? AS macro_distance", recipe.MacroVector).
			Where("user_id = ? AND id <> ?", userID, id).
			Order("macro_distance ASC").
			Limit(limit).
			Find(&recipes).Error
	} else {
		err = s.db.WithContext(ctx).
			Where("user_id = ? AND id <> ? AND category = ?", userID, id, recipe.Category).
			Limit(limit).
			Find(&recipes).Error
	}
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
