// Package harness runs scripted dialogs against the real parser, dispatcher
// and store.
//
// A scenario is a YAML document listing turns (what the user says and what
// the reply must or must not contain) followed by assertions on the final
// store state. Scenario documents are checked against an embedded CUE
// schema before they are decoded, so typos and wrong types are reported
// with their path instead of being silently ignored.
//
// Each scenario runs on a fresh in-memory store with sequential IDs, so
// its transcript is deterministic and can be compared against a golden
// file:
//
//	> Добавь рецепт Блины с ингредиентами мука, яйца
//	< Рецепт 'Блины' добавлен. Ингредиенты: мука, яйца.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
package harness
