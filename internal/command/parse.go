package command

import (
	"strings"

	"github.com/roach88/recipebot/internal/recipe"
)

// Delimiters used inside commands.
const (
	ingredientsDelimiter = " с ингредиентами "
	stepsDelimiter       = ":"
	stepSeparator        = ";"
	listSeparator        = ","
)

// Command is a classified utterance with its extracted arguments.
// Only the fields relevant to Intent are set.
type Command struct {
	Intent Intent

	// Name is the recipe name as said (AddRecipe, AddSteps, DeleteRecipe,
	// GetInstructions, GetIngredients).
	Name string

	// Ingredients are the recipe's ingredients (AddRecipe).
	Ingredients []recipe.IngredientRef

	// Requested is the normalized ingredient set to search with (FindByIngredients).
	Requested []string

	// Steps are the cooking steps in order (AddSteps).
	Steps []string
}

// extractor builds a Command from an utterance whose trigger matched at m.
type extractor func(u utterance, m span) (Command, error)

type rule struct {
	intent   Intent
	triggers []string
	extract  extractor
}

// rules is evaluated top to bottom; the first matching trigger wins.
var rules = []rule{
	{Help, []string{"помощь", "что ты умеешь"}, nil},
	{Greeting, []string{"привет"}, nil},
	{AddRecipe, []string{"добавь рецепт"}, extractAddRecipe},
	{AddSteps, []string{"добавить действия для готовки"}, extractAddSteps},
	{DeleteRecipe, []string{"удали рецепт", "удалить рецепт"}, requireName(DeleteRecipe)},
	{FindByIngredients, []string{"что приготовить из"}, extractFind},
	{GetInstructions, []string{"как приготовить"}, requireName(GetInstructions)},
	{GetIngredients, []string{"что нужно для"}, requireName(GetIngredients)},
	{ListAll, []string{"все рецепты"}, nil},
	{Count, []string{"сколько рецептов", "количество рецептов"}, nil},
}

// Parse classifies text into a Command.
// Unrecognized text yields Intent Unknown and a nil error.
// A recognized command with missing arguments yields a *ParseError.
func Parse(text string) (Command, error) {
	u := newUtterance(text)

	for _, r := range rules {
		for _, trigger := range r.triggers {
			m, ok := u.find(trigger, 0)
			if !ok {
				continue
			}
			if r.extract == nil {
				return Command{Intent: r.intent}, nil
			}
			return r.extract(u, m)
		}
	}

	return Command{Intent: Unknown}, nil
}

// extractAddRecipe handles "добавь рецепт <name> с ингредиентами <a>, <b (qty)>".
func extractAddRecipe(u utterance, m span) (Command, error) {
	d, ok := u.find(ingredientsDelimiter, m.end)
	if !ok {
		return Command{}, malformed(AddRecipe, "missing %q delimiter", strings.TrimSpace(ingredientsDelimiter))
	}

	name := u.text(m.end, d.start)
	if name == "" {
		return Command{}, malformed(AddRecipe, "recipe name is empty")
	}

	return Command{
		Intent:      AddRecipe,
		Name:        name,
		Ingredients: parseIngredients(u.rest(d.end)),
	}, nil
}

// addStepsPrefixWords is the number of leading words before the recipe
// name in an AddSteps command ("добавить действия для готовки").
const addStepsPrefixWords = 4

// extractAddSteps handles "добавить действия для готовки <name>: <step>; <step>".
// The name is whatever follows the first four words of the text before the
// first ':'.
func extractAddSteps(u utterance, _ span) (Command, error) {
	c, ok := u.find(stepsDelimiter, 0)
	if !ok {
		return Command{}, malformed(AddSteps, "missing %q before steps", stepsDelimiter)
	}

	var name string
	if words := strings.Fields(u.text(0, c.start)); len(words) > addStepsPrefixWords {
		name = strings.Join(words[addStepsPrefixWords:], " ")
	}
	if name == "" {
		return Command{}, malformed(AddSteps, "recipe name is empty")
	}

	var steps []string
	for _, step := range strings.Split(u.rest(c.end), stepSeparator) {
		if step = strings.TrimSpace(step); step != "" {
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		return Command{}, malformed(AddSteps, "no steps given")
	}

	return Command{Intent: AddSteps, Name: name, Steps: steps}, nil
}

// extractFind handles "что приготовить из <a>, <b>".
func extractFind(u utterance, m span) (Command, error) {
	requested := recipe.NormalizeSet(strings.Split(u.rest(m.end), listSeparator))
	if len(requested) == 0 {
		return Command{}, emptyArgument(FindByIngredients, "ingredient list")
	}
	return Command{Intent: FindByIngredients, Requested: requested}, nil
}

// requireName returns an extractor taking the text after the trigger as the
// recipe name.
func requireName(intent Intent) extractor {
	return func(u utterance, m span) (Command, error) {
		name := u.rest(m.end)
		if name == "" {
			return Command{}, emptyArgument(intent, "recipe name")
		}
		return Command{Intent: intent, Name: name}, nil
	}
}

// parseIngredients splits a comma-separated list. An item may carry a
// quantity in trailing parentheses: "мука (200 г)".
func parseIngredients(list string) []recipe.IngredientRef {
	refs := []recipe.IngredientRef{}
	for _, item := range strings.Split(list, listSeparator) {
		name, quantity := splitQuantity(strings.TrimSpace(item))
		name = recipe.NormalizeIngredient(name)
		if name == "" {
			continue
		}
		ref := recipe.IngredientRef{Name: name}
		if quantity != "" {
			ref.Quantity = &quantity
		}
		refs = append(refs, ref)
	}
	return refs
}

func splitQuantity(item string) (name, quantity string) {
	if !strings.HasSuffix(item, ")") {
		return item, ""
	}
	open := strings.LastIndex(item, "(")
	if open <= 0 {
		return item, ""
	}
	return strings.TrimSpace(item[:open]), strings.TrimSpace(item[open+1 : len(item)-1])
}
