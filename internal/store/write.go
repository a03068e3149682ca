package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/recipebot/internal/recipe"
)

// AddRecipe stores a new recipe with default instructions and links it to its
// ingredients. Ingredient names are normalized; each name resolves to an
// existing ingredient row or a new one. Blank names are skipped and duplicate
// names collapse to a single link (the first quantity wins).
//
// Returns ErrAlreadyExists if a recipe with exactly this name is stored.
// The whole operation is atomic: on any error nothing is written.
func (s *Store) AddRecipe(ctx context.Context, name string, ingredients []recipe.IngredientRef) (recipe.Recipe, error) {
	created := recipe.Recipe{
		ID:           s.ids.Generate(),
		Name:         name,
		Instructions: recipe.DefaultInstructions,
		Ingredients:  []recipe.IngredientRef{},
	}

	err := s.withTx(ctx, "add recipe", func(tx *sql.Tx) error {
		exists, err := recipeExists(ctx, tx, name)
		if err != nil {
			return fmt.Errorf("add recipe: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipes (id, name, instructions)
			VALUES (?, ?, ?)
		`, created.ID, name, created.Instructions)
		if err != nil {
			// A concurrent writer on another connection may have won the race.
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
			}
			return fmt.Errorf("add recipe: insert recipe: %w", err)
		}

		seen := make(map[string]bool, len(ingredients))
		for _, ref := range ingredients {
			ingName := recipe.NormalizeIngredient(ref.Name)
			if ingName == "" || seen[ingName] {
				continue
			}
			seen[ingName] = true

			ingID, err := s.upsertIngredient(ctx, tx, ingName)
			if err != nil {
				return fmt.Errorf("add recipe: %w", err)
			}

			var quantity sql.NullString
			if ref.Quantity != nil && *ref.Quantity != "" {
				quantity = sql.NullString{String: *ref.Quantity, Valid: true}
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity)
				VALUES (?, ?, ?)
				ON CONFLICT(recipe_id, ingredient_id) DO NOTHING
			`, created.ID, ingID, quantity)
			if err != nil {
				return fmt.Errorf("add recipe: link %q: %w", ingName, err)
			}

			stored := recipe.IngredientRef{Name: ingName}
			if quantity.Valid {
				q := quantity.String
				stored.Quantity = &q
			}
			created.Ingredients = append(created.Ingredients, stored)
		}
		return nil
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	return created, nil
}

// upsertIngredient returns the id of the ingredient with the given normalized
// name, creating the row when it does not exist yet.
func (s *Store) upsertIngredient(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ingredients (id, name)
		VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, s.ids.Generate(), name)
	if err != nil {
		return "", fmt.Errorf("upsert ingredient %q: %w", name, err)
	}

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM ingredients WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("select ingredient %q: %w", name, err)
	}
	return id, nil
}

// SetInstructions overwrites a recipe's instructions with numbered steps,
// one per line: "1. step". Returns ErrNotFound if no recipe has that name;
// nothing is created in that case.
func (s *Store) SetInstructions(ctx context.Context, name string, steps []string) error {
	instructions := recipe.FormatSteps(steps)

	return s.withTx(ctx, "set instructions", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE recipes SET instructions = ? WHERE name = ?
		`, instructions, name)
		if err != nil {
			return fmt.Errorf("set instructions: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("set instructions: rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil
	})
}

// DeleteRecipe removes a recipe and its links, then reclaims every ingredient
// no longer referenced by any recipe. Returns the number of reclaimed
// ingredients, or ErrNotFound if no recipe has that name.
func (s *Store) DeleteRecipe(ctx context.Context, name string) (reclaimed int64, err error) {
	err = s.withTx(ctx, "delete recipe", func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM recipes WHERE name = ?`, name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("delete recipe: select: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
			return fmt.Errorf("delete recipe: links: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete recipe: recipe: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			DELETE FROM ingredients
			WHERE NOT EXISTS (
				SELECT 1 FROM recipe_ingredients ri
				WHERE ri.ingredient_id = ingredients.id
			)
		`)
		if err != nil {
			return fmt.Errorf("delete recipe: reclaim ingredients: %w", err)
		}

		reclaimed, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete recipe: rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reclaimed, nil
}

// recipeExists reports whether a recipe with exactly this name is stored.
func recipeExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check recipe %q: %w", name, err)
	}
	return count > 0, nil
}
