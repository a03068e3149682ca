package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/roach88/recipebot/internal/recipe"
	"github.com/roach88/recipebot/internal/testutil"
)

// createTestStore creates a new isolated in-memory store with sequential ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", WithIDGenerator(testutil.NewSequentialIDs("id")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustAddRecipe adds a recipe with plain ingredient names or fails the test.
func mustAddRecipe(t *testing.T, s *Store, name string, ingredients ...string) recipe.Recipe {
	t.Helper()
	r, err := s.AddRecipe(context.Background(), name, recipe.Refs(ingredients...))
	if err != nil {
		t.Fatalf("AddRecipe(%q) failed: %v", name, err)
	}
	return r
}

// ingredientIDs maps ingredient name to id for every stored ingredient.
func ingredientIDs(t *testing.T, s *Store) map[string]string {
	t.Helper()
	ings, err := s.Ingredients(context.Background())
	if err != nil {
		t.Fatalf("Ingredients() failed: %v", err)
	}
	ids := make(map[string]string, len(ings))
	for _, ing := range ings {
		ids[ing.Name] = ing.ID
	}
	return ids
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
