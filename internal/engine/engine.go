package engine

import (
	"fmt"

	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/normalize"
	"github.com/roach88/sequitur/internal/sl"
)

// DefaultMaxSteps is the default step budget for one decision attempt.
// Generous: a typical textbook formula decides in well under a hundred
// steps.
const DefaultMaxSteps = 10000

// Option configures a decision attempt.
type Option func(*config)

type config struct {
	maxSteps int
}

// WithMaxSteps overrides the step budget for the attempt.
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.maxSteps = n
	}
}

// Decide determines whether f is a tautology.
//
// It returns Tautology with a complete derivation, or Refutable with a
// falsifying valuation. The procedure is total over well-formed
// formulas; the only error cases are the step budget (hardening, see
// WithMaxSteps) and internal invariant violations, which indicate a
// defect rather than anything about f.
func Decide(f sl.Formula, opts ...Option) (Verdict, error) {
	cfg := config{maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := derivation.New()
	q := derivation.NewQuota(cfg.maxSteps)

	// Assume the opposite.
	negated := sl.Not(f)
	d.Append(negated, derivation.RuleAssume, nil)

	// Reduce the negation to disjunctive normal form.
	dnf, err := normalize.DNF(d, q, negated)
	if err != nil {
		return nil, err
	}

	// A valuation satisfying the negation falsifies the target.
	if valuation, found := FindCounterexample(dnf, sl.Letters(f)); found {
		return Refutable{Valuation: valuation}, nil
	}

	// No counterexample exists: complete the derivation.
	p := &prover{d: d, q: q}
	concluded, err := p.reductio(dnf, nil)
	if err != nil {
		return nil, err
	}
	if concluded != f {
		// A literal branch returned without finding a contradiction.
		// FindCounterexample ruled that out, so this is a defect in
		// the search, not a property of f.
		return nil, fmt.Errorf("proof search concluded %v instead of %v", concluded, f)
	}

	return Tautology{Proof: d}, nil
}
