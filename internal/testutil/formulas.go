// Package testutil provides shared helpers for tests: a parse helper
// that fails the test instead of returning an error, and a curated
// corpus of classical tautologies and refutable formulas.
package testutil

import (
	"testing"

	"github.com/roach88/sequitur/internal/parser"
	"github.com/roach88/sequitur/internal/sl"
)

// MustParse parses formula text, failing the test on error.
func MustParse(t *testing.T, text string) sl.Formula {
	t.Helper()
	f, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("MustParse(%q): %v", text, err)
	}
	return f
}

// Tautologies is a corpus of classical tautologies covering every
// connective and the standard named argument forms.
var Tautologies = []string{
	"A -> A",
	"A v ~A",
	"~(A & ~A)",
	"A <-> A",
	"(A & B) -> A",
	"(A & B) -> B",
	"A -> (A v B)",
	"B -> (A v B)",
	"A -> (B -> A)",
	"~~A -> A",
	"A -> ~~A",
	"((A -> B) & A) -> B",
	"((A -> B) & ~B) -> ~A",
	"((A v B) & ~A) -> B",
	"((A -> B) & (B -> C)) -> (A -> C)",
	"(A -> B) <-> (~B -> ~A)",
	"(A -> B) -> (~B -> ~A)",
	"~(A & B) <-> (~A v ~B)",
	"~(A v B) <-> (~A & ~B)",
	"(A <-> B) -> (A -> B)",
	"((A -> B) -> A) -> A",
	"(((A -> C) & (B -> C)) & (A v B)) -> C",
}

// Refutables is a corpus of satisfiable non-tautologies.
var Refutables = []string{
	"A",
	"~A",
	"A & B",
	"A & ~A",
	"A v B",
	"A -> B",
	"A <-> B",
	"(A -> B) -> (B -> A)",
	"(A v B) -> (A & B)",
	"(A v B) -> C",
	"(A -> C) v (B & ~C)",
}
