package dialog

// Turn is one incoming user utterance.
type Turn struct {
	NewSession bool   `json:"is_new_session"`
	UserID     string `json:"user_id"`
	Utterance  string `json:"utterance"`
}

// Suggestion is a button offered with a reply.
type Suggestion struct {
	Label  string `json:"label"`
	Hidden bool   `json:"hidden"`
}

// Reply is the answer to one Turn.
type Reply struct {
	Text        string       `json:"text"`
	Suggestions []Suggestion `json:"suggestions"`
	EndSession  bool         `json:"end_session"`
}

var suggestionLabels = []string{
	"Добавить рецепт ...",
	"Добавить действия для готовки ...",
	"Удалить рецепт ...",
	"Все рецепты",
	"Что приготовить из ...",
	"Как приготовить ...",
	"Что нужно для ...",
	"Помощь",
}

// Suggestions returns the fixed suggestion set sent with every reply.
// Each call returns a fresh slice.
func Suggestions() []Suggestion {
	out := make([]Suggestion, len(suggestionLabels))
	for i, label := range suggestionLabels {
		out[i] = Suggestion{Label: label, Hidden: true}
	}
	return out
}
