package command

// Intent is the classified purpose of an utterance.
type Intent int

const (
	Unknown Intent = iota
	Help
	Greeting
	AddRecipe
	AddSteps
	DeleteRecipe
	FindByIngredients
	GetInstructions
	GetIngredients
	ListAll
	Count
)

var intentNames = map[Intent]string{
	Unknown:           "unknown",
	Help:              "help",
	Greeting:          "greeting",
	AddRecipe:         "add_recipe",
	AddSteps:          "add_steps",
	DeleteRecipe:      "delete_recipe",
	FindByIngredients: "find_by_ingredients",
	GetInstructions:   "get_instructions",
	GetIngredients:    "get_ingredients",
	ListAll:           "list_all",
	Count:             "count",
}

// String returns the snake_case name used in logs.
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}
