package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/sl"
)

// Verdict is a sealed interface for the two outcomes of Decide.
// Only Tautology and Refutable implement it.
type Verdict interface {
	isVerdict() // Sealed - only these types implement it
	String() string
}

// Tautology reports that the formula is true under every valuation,
// witnessed by a complete derivation.
type Tautology struct {
	// Proof is the full derivation: assumption of the negation, every
	// DNF rewrite, the reductio rows, and the final target formula
	// with all scopes discharged.
	Proof *derivation.Derivation
}

func (Tautology) isVerdict() {}

func (t Tautology) String() string {
	return "tautology"
}

// Refutable reports that the formula is false under Valuation.
type Refutable struct {
	// Valuation falsifies the formula. It covers every letter of the
	// original formula; it need not be the only falsifying valuation.
	Valuation sl.Valuation
}

func (Refutable) isVerdict() {}

func (r Refutable) String() string {
	letters := make([]byte, 0, len(r.Valuation))
	for l := range r.Valuation {
		letters = append(letters, l)
	}
	for i := 1; i < len(letters); i++ {
		for j := i; j > 0 && letters[j-1] > letters[j]; j-- {
			letters[j-1], letters[j] = letters[j], letters[j-1]
		}
	}
	var b strings.Builder
	b.WriteString("refutable:")
	for _, l := range letters {
		fmt.Fprintf(&b, " %c=%t", l, r.Valuation[l])
	}
	return b.String()
}
