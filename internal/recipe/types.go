package recipe

// DefaultInstructions is stored for a recipe until steps are added.
const DefaultInstructions = "Инструкции не указаны"

// Recipe is a stored recipe with its ingredient references.
type Recipe struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Instructions string          `json:"instructions"`
	Ingredients  []IngredientRef `json:"ingredients"`
}

// Ingredient is a stored ingredient row.
type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"` // Normalized, unique
}

// IngredientRef names an ingredient as used by one recipe.
// Quantity is nil when the recipe does not say how much is needed.
type IngredientRef struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity,omitempty"`
}

// String renders the reference the way replies show it: "мука" or "мука (200 г)".
func (r IngredientRef) String() string {
	if r.Quantity == nil || *r.Quantity == "" {
		return r.Name
	}
	return r.Name + " (" + *r.Quantity + ")"
}

// Refs builds quantity-less references from plain ingredient names.
func Refs(names ...string) []IngredientRef {
	refs := make([]IngredientRef, len(names))
	for i, name := range names {
		refs[i] = IngredientRef{Name: name}
	}
	return refs
}

// WithQuantity returns a reference carrying the given quantity.
func WithQuantity(name, quantity string) IngredientRef {
	return IngredientRef{Name: name, Quantity: &quantity}
}
