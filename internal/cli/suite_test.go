package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suite.cue"), []byte(content), 0o644))
	return dir
}

const smokeSuite = `
suite: {
	name:        "smoke"
	description: "one tautology, one refutable"
	case: identity: {
		formula: "A -> A"
		expect:  "tautology"
	}
	case: conjunction: {
		formula: "A & B"
		expect:  "refutable"
		valuation: A: false
	}
}
`

func TestSuite_Passes(t *testing.T) {
	dir := writeSuite(t, smokeSuite)

	out, err := execute(t, "suite", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: smoke (2 cases)")
}

func TestSuite_VerboseTranscript(t *testing.T) {
	dir := writeSuite(t, smokeSuite)

	out, err := execute(t, "--verbose", "suite", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario: smoke")
	assert.Contains(t, out, "== A -> A")
	assert.Contains(t, out, "verdict: tautology")
}

func TestSuite_WrongExpectation(t *testing.T) {
	dir := writeSuite(t, `
suite: {
	name: "wrong"
	case: identity: {
		formula: "A -> A"
		expect:  "refutable"
	}
}
`)

	_, err := execute(t, "suite", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "got tautology, want refutable")
}

func TestSuite_MissingDir(t *testing.T) {
	_, err := execute(t, "suite", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadSuite(t *testing.T) {
	dir := writeSuite(t, smokeSuite)

	suite, err := LoadSuite(dir)
	require.NoError(t, err)

	assert.Equal(t, "smoke", suite.Name)
	require.Len(t, suite.Cases, 2)

	// Cases come back in label order.
	assert.Equal(t, "conjunction", suite.Cases[0].Name)
	assert.Equal(t, "A & B", suite.Cases[0].Formula)
	assert.Equal(t, map[string]bool{"A": false}, suite.Cases[0].Valuation)
	assert.Equal(t, "identity", suite.Cases[1].Name)
}

func TestLoadSuite_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cue     string
		wantErr string
	}{
		{
			name:    "no suite struct",
			cue:     `other: {}`,
			wantErr: `no top-level "suite"`,
		},
		{
			name:    "missing name",
			cue:     `suite: case: x: {formula: "A", expect: "refutable"}`,
			wantErr: "suite.name",
		},
		{
			name:    "no cases",
			cue:     `suite: name: "empty"`,
			wantErr: `no "case" map`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSuite(t, tt.cue)
			_, err := LoadSuite(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSuite_NoCUEFiles(t *testing.T) {
	_, err := LoadSuite(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files found")
}
