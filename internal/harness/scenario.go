package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Scenario is a scripted dialog with expectations on every reply and on
// the final store state.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the dialog demonstrates.
	Description string `yaml:"description"`

	// UserID is attached to every turn. Defaults to DefaultUserID.
	UserID string `yaml:"user_id,omitempty"`

	// Turns are played in order against one store.
	Turns []TurnStep `yaml:"turns"`

	// Assertions are checked after the last turn.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// TurnStep is one user utterance and what its reply must look like.
type TurnStep struct {
	Say        string  `yaml:"say"`
	NewSession bool    `yaml:"new_session,omitempty"`
	Expect     *Expect `yaml:"expect,omitempty"`
}

// Expect constrains a reply text. All given constraints must hold.
type Expect struct {
	Contains    []string `yaml:"contains,omitempty"`
	NotContains []string `yaml:"not_contains,omitempty"`
	Equals      *string  `yaml:"equals,omitempty"`
}

// Assertion checks the store after the dialog.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Names is the exact, ordered recipe list (recipe_list).
	Names []string `yaml:"names,omitempty"`

	// Count is the expected number of recipes (recipe_count).
	Count int `yaml:"count,omitempty"`

	// Ingredient is the ingredient name to look for
	// (ingredient_present, ingredient_absent).
	Ingredient string `yaml:"ingredient,omitempty"`
}

// Assertion type constants.
const (
	AssertRecipeList        = "recipe_list"
	AssertRecipeCount       = "recipe_count"
	AssertIngredientPresent = "ingredient_present"
	AssertIngredientAbsent  = "ingredient_absent"
)

// DefaultUserID is used when a scenario does not name a user.
const DefaultUserID = "scenario-user"

// LoadScenario reads, validates and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario validates data against the scenario schema and decodes it.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Schema validation already rejects unknown fields; KnownFields keeps
	// the struct and the schema from drifting apart.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if scenario.UserID == "" {
		scenario.UserID = DefaultUserID
	}
	return &scenario, nil
}

// validateDocument unifies a decoded YAML document with #Scenario.
func validateDocument(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

// formatSchemaError flattens CUE's error list into one message.
func formatSchemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
