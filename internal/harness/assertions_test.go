package harness

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebot/internal/recipe"
)

type fakeState struct {
	names       []string
	ingredients []recipe.Ingredient
	err         error
}

func (f fakeState) ListNames(context.Context) ([]string, error) { return f.names, f.err }
func (f fakeState) Count(context.Context) (int, error)          { return len(f.names), f.err }
func (f fakeState) Ingredients(context.Context) ([]recipe.Ingredient, error) {
	return f.ingredients, f.err
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	st := fakeState{
		names:       []string{"Блины", "Омлет"},
		ingredients: []recipe.Ingredient{{ID: "id-1", Name: "мука"}, {ID: "id-2", Name: "яйца"}},
	}

	errs := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertRecipeList, Names: []string{"Блины", "Омлет"}},
		{Type: AssertRecipeCount, Count: 2},
		{Type: AssertIngredientPresent, Ingredient: "  МУКА "},
		{Type: AssertIngredientAbsent, Ingredient: "сахар"},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	st := fakeState{
		names:       []string{"Омлет"},
		ingredients: []recipe.Ingredient{{ID: "id-1", Name: "яйца"}},
	}

	errs := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertRecipeList, Names: []string{"Блины"}},
		{Type: AssertRecipeCount, Count: 3},
		{Type: AssertIngredientPresent, Ingredient: "мука"},
		{Type: AssertIngredientAbsent, Ingredient: "яйца"},
		{Type: "final_state"},
	})

	require.Len(t, errs, 5)
	assert.Contains(t, errs[0], "assertions[0]")
	assert.Contains(t, errs[0], `["Омлет"]`)
	assert.Contains(t, errs[1], "1 recipes")
	assert.Contains(t, errs[2], "ingredient мука present")
	assert.Contains(t, errs[3], "ingredient яйца absent")
	assert.Contains(t, errs[4], `unknown assertion type "final_state"`)
}

func TestEvaluateAssertions_EmptyListMatchesNil(t *testing.T) {
	errs := EvaluateAssertions(context.Background(), fakeState{}, []Assertion{
		{Type: AssertRecipeList},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_StoreError(t *testing.T) {
	st := fakeState{err: errors.New("disk I/O error")}

	errs := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertRecipeCount, Count: 0},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "disk I/O error")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{Type: AssertRecipeCount, Expected: "2 recipes", Actual: "1 recipes"}
	assert.Equal(t, "Assertion failed: recipe_count\n  Expected: 2 recipes\n  Actual: 1 recipes", err.Error())
}
