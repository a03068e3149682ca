package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/recipebot/internal/recipe"
)

// StateReader is the store surface assertions read from.
type StateReader interface {
	ListNames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Ingredients(ctx context.Context) ([]recipe.Ingredient, error)
}

// AssertionError describes a failed assertion.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(ctx context.Context, st StateReader, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(ctx, st, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(ctx context.Context, st StateReader, a Assertion) error {
	switch a.Type {
	case AssertRecipeList:
		return assertRecipeList(ctx, st, a)
	case AssertRecipeCount:
		return assertRecipeCount(ctx, st, a)
	case AssertIngredientPresent:
		return assertIngredient(ctx, st, a, true)
	case AssertIngredientAbsent:
		return assertIngredient(ctx, st, a, false)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertRecipeList(ctx context.Context, st StateReader, a Assertion) error {
	names, err := st.ListNames(ctx)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}
	want := a.Names
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(names, want) {
		return &AssertionError{
			Type:     AssertRecipeList,
			Expected: fmt.Sprintf("%q", want),
			Actual:   fmt.Sprintf("%q", names),
		}
	}
	return nil
}

func assertRecipeCount(ctx context.Context, st StateReader, a Assertion) error {
	n, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("count recipes: %w", err)
	}
	if n != a.Count {
		return &AssertionError{
			Type:     AssertRecipeCount,
			Expected: fmt.Sprintf("%d recipes", a.Count),
			Actual:   fmt.Sprintf("%d recipes", n),
		}
	}
	return nil
}

// assertIngredient checks whether the ingredient table holds a.Ingredient.
// The name is normalized the same way the store normalizes on write.
func assertIngredient(ctx context.Context, st StateReader, a Assertion, present bool) error {
	ingredients, err := st.Ingredients(ctx)
	if err != nil {
		return fmt.Errorf("list ingredients: %w", err)
	}
	name := recipe.NormalizeIngredient(a.Ingredient)
	found := slices.ContainsFunc(ingredients, func(i recipe.Ingredient) bool {
		return i.Name == name
	})
	if found == present {
		return nil
	}

	expected, actual := "ingredient "+name+" present", "absent"
	if !present {
		expected, actual = "ingredient "+name+" absent", "present"
	}
	return &AssertionError{Type: a.Type, Expected: expected, Actual: actual}
}
