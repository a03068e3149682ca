// Package recipe provides the domain types shared by the store, the command
// parser and the dialog dispatcher.
//
// This package contains type definitions and pure helpers only. All other
// internal packages may import recipe; recipe imports nothing internal.
//
// Key constraints:
//   - Ingredient names are always passed through NormalizeIngredient before
//     they are stored or compared
//   - Recipe names are kept exactly as entered (case-sensitive)
//   - Quantity is optional on every ingredient reference
package recipe
