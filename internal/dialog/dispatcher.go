package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/recipebot/internal/command"
	"github.com/roach88/recipebot/internal/recipe"
	"github.com/roach88/recipebot/internal/store"
)

// RecipeStore is the persistence the Dispatcher needs.
// *store.Store implements it; expected failures are store.ErrNotFound and
// store.ErrAlreadyExists, anything else is treated as a storage failure.
type RecipeStore interface {
	AddRecipe(ctx context.Context, name string, ingredients []recipe.IngredientRef) (recipe.Recipe, error)
	SetInstructions(ctx context.Context, name string, steps []string) error
	DeleteRecipe(ctx context.Context, name string) (int64, error)
	FindBySubset(ctx context.Context, requested []string) ([]string, error)
	GetInstructions(ctx context.Context, name string) (string, error)
	GetIngredients(ctx context.Context, name string) ([]recipe.IngredientRef, error)
	ListNames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Dispatcher maps parsed commands to store operations and renders replies.
type Dispatcher struct {
	store  RecipeStore
	logger *slog.Logger
}

// New creates a Dispatcher. A nil logger discards log output.
func New(st RecipeStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{store: st, logger: logger}
}

// Handle answers one turn. It never fails: errors become reply text.
func (d *Dispatcher) Handle(ctx context.Context, turn Turn) Reply {
	text := TextWelcome
	if !turn.NewSession {
		text = d.respond(ctx, turn)
	}
	return Reply{
		Text:        text,
		Suggestions: Suggestions(),
		EndSession:  false,
	}
}

func (d *Dispatcher) respond(ctx context.Context, turn Turn) string {
	cmd, err := command.Parse(turn.Utterance)
	if err != nil {
		d.logger.DebugContext(ctx, "unparseable command", "user_id", turn.UserID, "error", err)
		return guidanceFor(err)
	}

	d.logger.DebugContext(ctx, "dispatching", "user_id", turn.UserID, "intent", cmd.Intent.String())

	text, err := d.dispatch(ctx, cmd)
	if err != nil {
		d.logger.ErrorContext(ctx, "store failure",
			"user_id", turn.UserID,
			"intent", cmd.Intent.String(),
			"error", err,
		)
		return TextStoreFailure
	}
	return text
}

// dispatch runs the store operation for cmd. Expected store outcomes are
// rendered into the returned text; a non-nil error is a storage failure.
func (d *Dispatcher) dispatch(ctx context.Context, cmd command.Command) (string, error) {
	switch cmd.Intent {
	case command.Help:
		return TextHelp, nil
	case command.Greeting:
		return TextGreeting, nil
	case command.AddRecipe:
		return d.addRecipe(ctx, cmd)
	case command.AddSteps:
		return d.addSteps(ctx, cmd)
	case command.DeleteRecipe:
		return d.deleteRecipe(ctx, cmd)
	case command.FindByIngredients:
		return d.findByIngredients(ctx, cmd)
	case command.GetInstructions:
		return d.getInstructions(ctx, cmd)
	case command.GetIngredients:
		return d.getIngredients(ctx, cmd)
	case command.ListAll:
		return d.listAll(ctx)
	case command.Count:
		return d.count(ctx)
	default:
		return TextUnknown, nil
	}
}

func (d *Dispatcher) addRecipe(ctx context.Context, cmd command.Command) (string, error) {
	created, err := d.store.AddRecipe(ctx, cmd.Name, cmd.Ingredients)
	if errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Sprintf(fmtRecipeExists, cmd.Name), nil
	}
	if err != nil {
		return "", err
	}
	if len(created.Ingredients) == 0 {
		return fmt.Sprintf(fmtRecipeAddedNo, created.Name), nil
	}
	return fmt.Sprintf(fmtRecipeAdded, created.Name, joinRefs(created.Ingredients)), nil
}

func (d *Dispatcher) addSteps(ctx context.Context, cmd command.Command) (string, error) {
	err := d.store.SetInstructions(ctx, cmd.Name, cmd.Steps)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf(fmtNotFound, cmd.Name), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(fmtStepsSaved, cmd.Name, len(cmd.Steps)), nil
}

func (d *Dispatcher) deleteRecipe(ctx context.Context, cmd command.Command) (string, error) {
	reclaimed, err := d.store.DeleteRecipe(ctx, cmd.Name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf(fmtNotFound, cmd.Name), nil
	}
	if err != nil {
		return "", err
	}
	d.logger.DebugContext(ctx, "recipe deleted", "recipe", cmd.Name, "reclaimed_ingredients", reclaimed)
	return fmt.Sprintf(fmtDeleted, cmd.Name), nil
}

func (d *Dispatcher) findByIngredients(ctx context.Context, cmd command.Command) (string, error) {
	names, err := d.store.FindBySubset(ctx, cmd.Requested)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return TextNothingFound, nil
	}
	return fmt.Sprintf(fmtFound, strings.Join(names, ", ")), nil
}

func (d *Dispatcher) getInstructions(ctx context.Context, cmd command.Command) (string, error) {
	instructions, err := d.store.GetInstructions(ctx, cmd.Name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf(fmtNotFound, cmd.Name), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(fmtInstructions, cmd.Name, instructions), nil
}

func (d *Dispatcher) getIngredients(ctx context.Context, cmd command.Command) (string, error) {
	refs, err := d.store.GetIngredients(ctx, cmd.Name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf(fmtNotFound, cmd.Name), nil
	}
	if err != nil {
		return "", err
	}
	if len(refs) == 0 {
		return fmt.Sprintf(fmtNoIngredients, cmd.Name), nil
	}
	return fmt.Sprintf(fmtIngredients, cmd.Name, joinRefs(refs)), nil
}

func (d *Dispatcher) listAll(ctx context.Context) (string, error) {
	names, err := d.store.ListNames(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return TextNoRecipes, nil
	}
	return fmt.Sprintf(fmtList, strings.Join(names, ", ")), nil
}

func (d *Dispatcher) count(ctx context.Context) (string, error) {
	n, err := d.store.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(fmtCount, n), nil
}

// guidanceFor picks the usage hint for a parse failure.
func guidanceFor(err error) string {
	var pe *command.ParseError
	if !errors.As(err, &pe) {
		return TextUnknown
	}
	switch pe.Intent {
	case command.AddRecipe:
		return GuideAddRecipe
	case command.AddSteps:
		return GuideAddSteps
	case command.DeleteRecipe:
		return GuideDelete
	case command.FindByIngredients:
		return GuideFind
	case command.GetInstructions:
		return GuideInstructions
	case command.GetIngredients:
		return GuideIngredients
	default:
		return TextUnknown
	}
}

func joinRefs(refs []recipe.IngredientRef) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, ", ")
}
