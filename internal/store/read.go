package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/recipebot/internal/recipe"
)

// FindBySubset returns the name of every recipe whose full ingredient set is
// contained in requested. Recipes without ingredients always qualify.
// Requested names are normalized before matching.
//
// A recipe qualifies iff no linked ingredient is missing from requested.
// Results are ordered by name (binary collation) and never nil.
func (s *Store) FindBySubset(ctx context.Context, requested []string) ([]string, error) {
	names := recipe.NormalizeSet(requested)

	// With nothing requested only ingredient-less recipes qualify.
	missing := "1 = 1"
	args := make([]any, 0, len(names))
	if len(names) > 0 {
		missing = "i.name NOT IN (" + placeholders(len(names)) + ")"
		for _, n := range names {
			args = append(args, n)
		}
	}

	query := `
		SELECT r.name
		FROM recipes r
		WHERE NOT EXISTS (
			SELECT 1
			FROM recipe_ingredients ri
			JOIN ingredients i ON i.id = ri.ingredient_id
			WHERE ri.recipe_id = r.id AND ` + missing + `
		)
		ORDER BY r.name COLLATE BINARY ASC
	`

	var found []string
	err := s.withTx(ctx, "find by subset", func(tx *sql.Tx) error {
		var err error
		found, err = queryStrings(ctx, tx, query, args...)
		if err != nil {
			return fmt.Errorf("find by subset: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetInstructions returns a recipe's instructions, or ErrNotFound.
func (s *Store) GetInstructions(ctx context.Context, name string) (string, error) {
	var instructions string
	err := s.withTx(ctx, "get instructions", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT instructions FROM recipes WHERE name = ?
		`, name).Scan(&instructions)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("get instructions: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return instructions, nil
}

// GetIngredients returns a recipe's ingredients as (name, quantity?) pairs
// ordered by name. A recipe without ingredients yields an empty slice;
// a missing recipe yields ErrNotFound.
func (s *Store) GetIngredients(ctx context.Context, name string) ([]recipe.IngredientRef, error) {
	refs := []recipe.IngredientRef{}
	err := s.withTx(ctx, "get ingredients", func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM recipes WHERE name = ?`, name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("get ingredients: select recipe: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT i.name, ri.quantity
			FROM recipe_ingredients ri
			JOIN ingredients i ON i.id = ri.ingredient_id
			WHERE ri.recipe_id = ?
			ORDER BY i.name COLLATE BINARY ASC
		`, id)
		if err != nil {
			return fmt.Errorf("get ingredients: query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				ref      recipe.IngredientRef
				quantity sql.NullString
			)
			if err := rows.Scan(&ref.Name, &quantity); err != nil {
				return fmt.Errorf("get ingredients: scan: %w", err)
			}
			if quantity.Valid {
				q := quantity.String
				ref.Quantity = &q
			}
			refs = append(refs, ref)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("get ingredients: iterate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// GetIngredientNames returns only the names from GetIngredients.
func (s *Store) GetIngredientNames(ctx context.Context, name string) ([]string, error) {
	refs, err := s.GetIngredients(ctx, name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	return names, nil
}

// ListNames returns all recipe names sorted ascending. Never nil.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.withTx(ctx, "list names", func(tx *sql.Tx) error {
		var err error
		names, err = queryStrings(ctx, tx, `
			SELECT name FROM recipes ORDER BY name COLLATE BINARY ASC
		`)
		if err != nil {
			return fmt.Errorf("list names: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Count returns the number of stored recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.withTx(ctx, "count", func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ingredients returns every stored ingredient row ordered by name.
func (s *Store) Ingredients(ctx context.Context) ([]recipe.Ingredient, error) {
	ingredients := []recipe.Ingredient{}
	err := s.withTx(ctx, "list ingredients", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name FROM ingredients ORDER BY name COLLATE BINARY ASC
		`)
		if err != nil {
			return fmt.Errorf("list ingredients: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var ing recipe.Ingredient
			if err := rows.Scan(&ing.ID, &ing.Name); err != nil {
				return fmt.Errorf("list ingredients: scan: %w", err)
			}
			ingredients = append(ingredients, ing)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// queryStrings runs a single-column query and collects the values.
// Returns an empty slice (not nil) when no rows match.
func queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return values, nil
}

// placeholders returns "?, ?, ?" with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
