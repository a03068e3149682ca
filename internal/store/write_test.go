package store

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/recipebot/internal/recipe"
)

func TestAddRecipe_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r, err := s.AddRecipe(ctx, "блины", recipe.Refs("мука", "яйца", "молоко"))
	require.NoError(t, err)

	assert.Equal(t, "блины", r.Name)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, recipe.DefaultInstructions, r.Instructions)
	assert.Len(t, r.Ingredients, 3)

	assert.Equal(t, 1, countRows(t, s.db, "recipes"))
	assert.Equal(t, 3, countRows(t, s.db, "ingredients"))
	assert.Equal(t, 3, countRows(t, s.db, "recipe_ingredients"))
}

func TestAddRecipe_DuplicateIngredientsCollapse(t *testing.T) {
	s := createTestStore(t)

	mustAddRecipe(t, s, "блины", "мука", "мука", "яйца")

	assert.Equal(t, 2, countRows(t, s.db, "recipe_ingredients"))
	assert.Equal(t, 2, countRows(t, s.db, "ingredients"))
}

func TestAddRecipe_NormalizesIngredientNames(t *testing.T) {
	s := createTestStore(t)

	r := mustAddRecipe(t, s, "Омлет", "  ЯЙЦА ", "Молоко", "яйца", "")

	names := []string{}
	for _, ref := range r.Ingredients {
		names = append(names, ref.Name)
	}
	assert.Equal(t, []string{"яйца", "молоко"}, names)

	got, err := s.GetIngredientNames(context.Background(), "Омлет")
	require.NoError(t, err)
	assert.Equal(t, []string{"молоко", "яйца"}, got)
}

func TestAddRecipe_SharesExistingIngredients(t *testing.T) {
	s := createTestStore(t)

	mustAddRecipe(t, s, "блины", "мука", "яйца")
	before := ingredientIDs(t, s)

	mustAddRecipe(t, s, "оладьи", "мука", "кефир")
	after := ingredientIDs(t, s)

	assert.Equal(t, before["мука"], after["мука"], "existing ingredient must be reused")
	assert.Len(t, after, 3)
}

func TestAddRecipe_AlreadyExists(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustAddRecipe(t, s, "блины", "мука", "яйца")
	ingredientsBefore := ingredientIDs(t, s)

	_, err := s.AddRecipe(ctx, "блины", recipe.Refs("сахар", "соль"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists), "got %v", err)

	// State equals the state after the first add.
	assert.Equal(t, 1, countRows(t, s.db, "recipes"))
	assert.Equal(t, ingredientsBefore, ingredientIDs(t, s))
	assert.Equal(t, 2, countRows(t, s.db, "recipe_ingredients"))
}

func TestAddRecipe_NamesAreCaseSensitive(t *testing.T) {
	s := createTestStore(t)

	mustAddRecipe(t, s, "Блины", "мука")
	mustAddRecipe(t, s, "блины", "мука")

	names, err := s.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Блины", "блины"}, names)
}

func TestAddRecipe_WithoutIngredients(t *testing.T) {
	s := createTestStore(t)

	r := mustAddRecipe(t, s, "вода")
	assert.Empty(t, r.Ingredients)
	assert.Equal(t, 0, countRows(t, s.db, "recipe_ingredients"))
}

func TestAddRecipe_Quantity(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	refs := []recipe.IngredientRef{
		recipe.WithQuantity("Мука", "200 г"),
		{Name: "яйца"},
		recipe.WithQuantity("мука", "300 г"), // duplicate: first quantity wins
	}
	_, err := s.AddRecipe(ctx, "блины", refs)
	require.NoError(t, err)

	got, err := s.GetIngredients(ctx, "блины")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "мука", got[0].Name)
	require.NotNil(t, got[0].Quantity)
	assert.Equal(t, "200 г", *got[0].Quantity)

	assert.Equal(t, "яйца", got[1].Name)
	assert.Nil(t, got[1].Quantity)
}

func TestAddRecipe_ConcurrentSameName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	const writers = 8
	var created, duplicates atomic.Int32

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := s.AddRecipe(ctx, "борщ", recipe.Refs("свекла", "капуста"))
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrAlreadyExists):
				duplicates.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(writers-1), duplicates.Load())
	assert.Equal(t, 1, countRows(t, s.db, "recipes"))
	assert.Equal(t, 2, countRows(t, s.db, "recipe_ingredients"))
}

func TestSetInstructions_NumbersSteps(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustAddRecipe(t, s, "блины", "мука", "яйца", "молоко")

	err := s.SetInstructions(ctx, "блины", []string{"смешать муку и яйца", "добавить молоко", "жарить"})
	require.NoError(t, err)

	got, err := s.GetInstructions(ctx, "блины")
	require.NoError(t, err)
	assert.Equal(t, "1. смешать муку и яйца\n2. добавить молоко\n3. жарить", got)
}

func TestSetInstructions_Overwrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustAddRecipe(t, s, "чай")
	require.NoError(t, s.SetInstructions(ctx, "чай", []string{"вскипятить воду", "заварить"}))
	require.NoError(t, s.SetInstructions(ctx, "чай", []string{"заварить пакетик"}))

	got, err := s.GetInstructions(ctx, "чай")
	require.NoError(t, err)
	assert.Equal(t, "1. заварить пакетик", got)
}

func TestSetInstructions_NotFoundDoesNotCreate(t *testing.T) {
	s := createTestStore(t)

	err := s.SetInstructions(context.Background(), "призрак", []string{"шаг"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.Equal(t, 0, countRows(t, s.db, "recipes"))
}

func TestDeleteRecipe_RemovesRecipeAndReclaims(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustAddRecipe(t, s, "блины", "мука", "яйца", "молоко")
	mustAddRecipe(t, s, "оладьи", "мука", "кефир")

	reclaimed, err := s.DeleteRecipe(ctx, "блины")
	require.NoError(t, err)
	assert.Equal(t, int64(2), reclaimed) // яйца, молоко

	names, err := s.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"оладьи"}, names)

	ids := ingredientIDs(t, s)
	assert.Contains(t, ids, "мука", "shared ingredient must survive")
	assert.NotContains(t, ids, "яйца")
	assert.NotContains(t, ids, "молоко")

	found, err := s.FindBySubset(ctx, []string{"мука", "яйца", "молоко", "кефир"})
	require.NoError(t, err)
	assert.Equal(t, []string{"оладьи"}, found)
}

func TestDeleteRecipe_ReaddCreatesFreshIngredient(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustAddRecipe(t, s, "блины", "мука")
	oldID := ingredientIDs(t, s)["мука"]

	_, err := s.DeleteRecipe(ctx, "блины")
	require.NoError(t, err)
	assert.Equal(t, 0, countRows(t, s.db, "ingredients"))

	mustAddRecipe(t, s, "хлеб", "Мука")
	newID := ingredientIDs(t, s)["мука"]

	assert.NotEmpty(t, newID)
	assert.NotEqual(t, oldID, newID, "reclaimed ingredient must get a new row")
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	s := createTestStore(t)
	mustAddRecipe(t, s, "блины", "мука")

	_, err := s.DeleteRecipe(context.Background(), "оладьи")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.Equal(t, 1, countRows(t, s.db, "recipes"))
	assert.Equal(t, 1, countRows(t, s.db, "ingredients"))
}

func TestDeleteRecipe_NoDanglingLinks(t *testing.T) {
	s := createTestStore(t)

	mustAddRecipe(t, s, "блины", "мука", "яйца")
	_, err := s.DeleteRecipe(context.Background(), "блины")
	require.NoError(t, err)

	var dangling int
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM recipe_ingredients ri
		LEFT JOIN recipes r ON r.id = ri.recipe_id
		LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE r.id IS NULL OR i.id IS NULL
	`).Scan(&dangling)
	require.NoError(t, err)
	assert.Equal(t, 0, dangling)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.withTx(ctx, "test", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO recipes (id, name) VALUES ('r', 'x')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRows(t, s.db, "recipes"))
}
