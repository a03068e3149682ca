package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebot/internal/dialog"
)

func executeSay(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewSayCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSay_PersistsAcrossInvocations(t *testing.T) {
	db := filepath.Join(t.TempDir(), "recipes.db")

	out, err := executeSay(t, "text", "--db", db, "Добавь", "рецепт", "Блины", "с", "ингредиентами", "мука,", "яйца")
	require.NoError(t, err)
	assert.Equal(t, "Рецепт 'Блины' добавлен. Ингредиенты: мука, яйца.\n", out)

	out, err = executeSay(t, "text", "--db", db, "что приготовить из яйца, мука, соль")
	require.NoError(t, err)
	assert.Equal(t, "Из этих ингредиентов можно приготовить: Блины.\n", out)
}

func TestSay_NewSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "recipes.db")

	out, err := executeSay(t, "text", "--db", db, "--new-session")
	require.NoError(t, err)
	assert.Equal(t, dialog.TextWelcome+"\n", out)
}

func TestSay_JSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "recipes.db")

	out, err := executeSay(t, "json", "--db", db, "помощь")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   dialog.Reply `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, dialog.TextHelp, resp.Data.Text)
	assert.Len(t, resp.Data.Suggestions, 8)
	assert.False(t, resp.Data.EndSession)
}

func TestSay_MissingUtterance(t *testing.T) {
	_, err := executeSay(t, "text", "--db", filepath.Join(t.TempDir(), "recipes.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "utterance is required")
}

func TestSay_BadDatabasePath(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "recipes.db")

	_, err := executeSay(t, "text", "--db", db, "привет")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestSay_DatabaseFromEnvironment(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("RECIPEBOT_DB", db)

	_, err := executeSay(t, "text", "Добавь рецепт Суп с ингредиентами вода")
	require.NoError(t, err)

	out, err := executeSay(t, "text", "сколько рецептов")
	require.NoError(t, err)
	assert.Equal(t, "Всего рецептов: 1.\n", out)
}
