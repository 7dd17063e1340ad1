package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/testhelpers"
	"github.com/nutrifast/backend/internal/types"
)

func seedRecipe(t *testing.T, svc *RecipeService, userID uuid.UUID, req types.CreateRecipeRequest) uuid.UUID {
	t.Helper()
	recipe, err := svc.CreateRecipe(context.Background(), userID, req)
	require.NoError(t, err)
	return recipe.ID
}

func TestCreateRecipeDefaults(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()

	recipe, err := svc.CreateRecipe(context.Background(), userID, types.CreateRecipeRequest{
		Name:     "Overnight oats",
		Calories: 350,
		Protein:  12,
		Carbs:    55,
		Fat:      9,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, recipe.Servings)
	assert.Equal(t, MacroVector(350, 12, 55, 9), recipe.MacroVector)
}

func TestUpdateRecipeRecomputesMacroVector(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	id := seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Chili", Calories: 400, Protein: 30})

	updated, err := svc.UpdateRecipe(ctx, userID, id, types.CreateRecipeRequest{
		Name:     "Leaner chili",
		Calories: 320,
		Protein:  35,
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaner chili", updated.Name)
	assert.Equal(t, MacroVector(320, 35, 0, 0), updated.MacroVector)

	// Another user can't touch it.
	_, err = svc.UpdateRecipe(ctx, uuid.New(), id, types.CreateRecipeRequest{Name: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRecipeOwnership(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	id := seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Smoothie", Calories: 180})

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, uuid.New(), id), gorm.ErrRecordNotFound)
	require.NoError(t, svc.DeleteRecipe(ctx, userID, id))
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, userID, id), gorm.ErrRecordNotFound)
}

func TestSetImageURLOwnership(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	id := seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Frittata", Calories: 290})

	assert.ErrorIs(t, svc.SetImageURL(ctx, uuid.New(), id, "https://example.com/x.jpg"), gorm.ErrRecordNotFound)
	require.NoError(t, svc.SetImageURL(ctx, userID, id, "https://example.com/frittata.jpg"))

	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/frittata.jpg", recipe.ImageURL)
}

func TestSearchRecipesMatchesIngredients(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name:        "Green curry",
		Ingredients: []string{"Coconut milk", "green beans", "tofu"},
		Calories:    420,
	})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name:        "Tomato soup",
		Ingredients: []string{"tomatoes", "basil"},
		Calories:    150,
	})
	// Same keyword, different user: must stay out of the results.
	seedRecipe(t, svc, uuid.New(), types.CreateRecipeRequest{
		Name:        "Coconut bars",
		Ingredients: []string{"coconut", "oats"},
		Calories:    210,
	})

	// The keyword appears only in the ingredient list, not name or description.
	results, err := svc.SearchRecipes(ctx, userID, "coconut")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Green curry", results[0].Name)

	all, err := svc.SearchRecipes(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSimilarRecipesFallsBackToCategory(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	id := seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Pad thai", Category: "dinner", Calories: 600})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Stir fry", Category: "dinner", Calories: 450})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{Name: "Granola", Category: "breakfast", Calories: 380})

	similar, err := svc.SimilarRecipes(ctx, userID, id, 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "Stir fry", similar[0].Name)
}

func TestSearchRecipesOnPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name:        "Lentil stew",
		Description: "Weeknight staple",
		Ingredients: []string{"Red lentils", "carrots", "cumin"},
		Calories:    380,
	})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name:        "Caprese salad",
		Ingredients: []string{"mozzarella", "tomatoes"},
		Calories:    280,
	})

	// Keyword match against the jsonb ingredient column, case-insensitive.
	results, err := svc.SearchRecipes(ctx, userID, "LENTILS")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Lentil stew", results[0].Name)

	results, err = svc.SearchRecipes(ctx, userID, "weeknight")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSimilarRecipesOrdersByMacroDistance(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	ctx := context.Background()

	id := seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name: "Grilled chicken", Calories: 400, Protein: 45, Carbs: 5, Fat: 12,
	})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name: "Baked salmon", Calories: 420, Protein: 40, Carbs: 2, Fat: 20,
	})
	seedRecipe(t, svc, userID, types.CreateRecipeRequest{
		Name: "Pasta bake", Calories: 700, Protein: 18, Carbs: 90, Fat: 25,
	})

	similar, err := svc.SimilarRecipes(ctx, userID, id, 5)
	require.NoError(t, err)
	require.Len(t, similar, 2)

	// Nearest macro profile first; the source recipe never appears.
	assert.Equal(t, "Baked salmon", similar[0].Name)
	assert.Equal(t, "Pasta bake", similar[1].Name)
	for _, r := range similar {
		assert.NotEqual(t, id, r.ID)
	}
}
