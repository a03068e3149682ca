package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/recipebot/internal/dialog"
	"github.com/roach88/recipebot/internal/store"
	"github.com/roach88/recipebot/internal/testutil"
)

// Harness plays scenario turns against one store.
type Harness struct {
	store      *store.Store
	dispatcher *dialog.Dispatcher
}

// Run plays scenario on a fresh in-memory store and evaluates its
// expectations and assertions. A non-nil error means the scenario could
// not be run at all; failed checks are reported in the Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialIDs("id")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:      st,
		dispatcher: dialog.New(st, nil),
	}

	userID := scenario.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	result := NewResult()
	for i, step := range scenario.Turns {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		reply := h.dispatcher.Handle(ctx, dialog.Turn{
			NewSession: step.NewSession,
			UserID:     userID,
			Utterance:  step.Say,
		})
		result.Exchanges = append(result.Exchanges, Exchange{
			Say:        step.Say,
			NewSession: step.NewSession,
			Reply:      reply.Text,
		})
		for _, msg := range checkExpect(step.Expect, reply.Text) {
			result.AddError(fmt.Sprintf("turn %d (%q): %s", i, step.Say, msg))
		}
	}

	for _, msg := range EvaluateAssertions(ctx, st, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// checkExpect returns one message per violated constraint.
func checkExpect(e *Expect, text string) []string {
	if e == nil {
		return nil
	}
	var msgs []string
	if e.Equals != nil && text != *e.Equals {
		msgs = append(msgs, fmt.Sprintf("reply %q, want %q", text, *e.Equals))
	}
	for _, s := range e.Contains {
		if !strings.Contains(text, s) {
			msgs = append(msgs, fmt.Sprintf("reply %q does not contain %q", text, s))
		}
	}
	for _, s := range e.NotContains {
		if strings.Contains(text, s) {
			msgs = append(msgs, fmt.Sprintf("reply %q contains %q", text, s))
		}
	}
	return msgs
}
