// Package store provides SQLite-backed durable storage for recipes.
//
// The store keeps three relations:
//   - Ingredients: normalized, globally unique names
//   - Recipes: case-sensitive unique names with free-text instructions
//   - Recipe Ingredients: (recipe_id, ingredient_id) links with an optional quantity
//
// # Critical Patterns
//
// Scoped Transactions
//   - Every exported operation runs inside withTx
//   - The transaction commits on success and rolls back on every other exit path
//   - Partial writes across tables are never observable
//
// Eager Reclamation
//   - DeleteRecipe removes every ingredient left without links in the same transaction
//
// Deterministic Query Results
//   - Name listings use ORDER BY name COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Expected failures are reported as ErrNotFound and ErrAlreadyExists and are
// meant to be checked with errors.Is.
package store
