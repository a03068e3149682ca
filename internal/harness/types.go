package harness

import "strings"

// Exchange is one played turn and the reply it produced.
type Exchange struct {
	Say        string `json:"say"`
	NewSession bool   `json:"new_session,omitempty"`
	Reply      string `json:"reply"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Exchanges are the turns in the order they were played.
	Exchanges []Exchange `json:"exchanges"`

	// Errors describes every failed expectation or assertion.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:      true,
		Exchanges: []Exchange{},
		Errors:    []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Transcript renders the exchanges as
//
//	> utterance
//	< reply
//
// with a blank line between exchanges. A new-session turn is marked
// "[new session]".
func (r *Result) Transcript() string {
	var b strings.Builder
	for i, ex := range r.Exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(">")
		if ex.NewSession {
			b.WriteString(" [new session]")
		}
		if ex.Say != "" {
			b.WriteString(" ")
			b.WriteString(ex.Say)
		}
		b.WriteString("\n")
		for _, line := range strings.Split(ex.Reply, "\n") {
			b.WriteString("< ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
