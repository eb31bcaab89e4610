package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RequiresDatabaseFlag(t *testing.T) {
	_, err := execute(t, "history")
	require.Error(t, err)
}

func TestHistory_EmptyLog(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decisions.db")

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no decisions recorded")
}

func TestHistory_JSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decisions.db")

	_, err := execute(t, "prove", "--db", db, "A & B")
	require.NoError(t, err)

	out, err := execute(t, "--format", "json", "history", "--db", db)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 1)

	entry, ok := entries[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "refutable", entry["verdict"])
	assert.Equal(t, "(A & B)", entry["formula"])
	assert.Equal(t, float64(1), entry["seq"])
}
