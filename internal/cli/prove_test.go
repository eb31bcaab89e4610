package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProve_Tautology(t *testing.T) {
	out, err := execute(t, "prove", "A -> A")
	require.NoError(t, err)

	assert.Contains(t, out, "tautology\n")
	assert.Contains(t, out, "1. | ~(A -> A)    Assume")
	assert.Contains(t, out, "9. (A -> A)    ~ elim. 8")
}

func TestProve_Refutable(t *testing.T) {
	out, err := execute(t, "prove", "A & B")
	require.NoError(t, err)
	assert.Contains(t, out, "refutable: A=false B=false")
}

func TestProve_Check(t *testing.T) {
	out, err := execute(t, "prove", "--check", "(A & B) -> A")
	require.NoError(t, err)
	assert.Contains(t, out, "tautology")
}

func TestProve_ParseError(t *testing.T) {
	out, err := execute(t, "prove", "q")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestProve_StepBudget(t *testing.T) {
	_, err := execute(t, "prove", "--max-steps", "1", "A -> A")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "step budget")
}

func TestProve_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "prove", "A & B")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "refutable", data["verdict"])
	assert.Equal(t, "(A & B)", data["formula"])
	assert.Equal(t, map[string]interface{}{"A": false, "B": false}, data["valuation"])
}

func TestProve_RecordsAndListsDecisions(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decisions.db")

	out, err := execute(t, "prove", "--db", db, "A -> A")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded: ")

	out, err = execute(t, "prove", "--db", db, "A & B")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded: ")

	out, err = execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "tautology\t(A -> A)")
	assert.Contains(t, out, "refutable\t(A & B)")
}
