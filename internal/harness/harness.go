package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/sequitur/internal/check"
	"github.com/roach88/sequitur/internal/engine"
	"github.com/roach88/sequitur/internal/parser"
	"github.com/roach88/sequitur/internal/sl"
)

// CaseResult is the outcome of one scenario case.
type CaseResult struct {
	// Input is the case's formula text.
	Input string

	// Verdict is the engine's answer.
	Verdict engine.Verdict
}

// Result is the outcome of running a scenario.
type Result struct {
	// Scenario is the scenario that produced this result.
	Scenario *Scenario

	// Cases holds one result per scenario case, in order.
	Cases []CaseResult
}

// Run executes a scenario: every case is parsed and decided, each
// verdict is checked against the case's expectation, and every proof
// is re-verified by the checker before it counts. The first failing
// case aborts the run with an error.
func Run(scenario *Scenario) (*Result, error) {
	result := &Result{Scenario: scenario}

	for i, c := range scenario.Cases {
		formula, err := parser.Parse(c.Input)
		if err != nil {
			return nil, fmt.Errorf("cases[%d]: %w", i, err)
		}

		verdict, err := engine.Decide(formula)
		if err != nil {
			return nil, fmt.Errorf("cases[%d]: %w", i, err)
		}

		if err := verifyCase(c, formula, verdict); err != nil {
			return nil, fmt.Errorf("cases[%d] (%s): %w", i, c.Input, err)
		}

		result.Cases = append(result.Cases, CaseResult{Input: c.Input, Verdict: verdict})
	}

	return result, nil
}

func verifyCase(c Case, formula sl.Formula, verdict engine.Verdict) error {
	switch v := verdict.(type) {
	case engine.Tautology:
		if c.Expect != ExpectTautology {
			return fmt.Errorf("got tautology, want %s", c.Expect)
		}
		// Proofs only count once the checker accepts them.
		if err := check.Target(v.Proof, formula); err != nil {
			return fmt.Errorf("proof rejected: %w", err)
		}

	case engine.Refutable:
		if c.Expect != ExpectRefutable {
			return fmt.Errorf("got refutable, want %s", c.Expect)
		}
		if formula.Eval(v.Valuation) {
			return fmt.Errorf("valuation %v does not falsify the formula", v.Valuation)
		}
		for letter, want := range c.Valuation {
			if got := v.Valuation[letter[0]]; got != want {
				return fmt.Errorf("valuation pins %s=%t, got %t", letter, want, got)
			}
		}

	default:
		return fmt.Errorf("unknown verdict %T", verdict)
	}
	return nil
}

// Transcript renders the result deterministically for golden
// comparison: a scenario header, then one block per case with the
// verdict and either the full derivation or the counterexample.
func (r *Result) Transcript() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario.Name)

	for _, c := range r.Cases {
		fmt.Fprintf(&b, "\n== %s\n", c.Input)
		switch v := c.Verdict.(type) {
		case engine.Tautology:
			b.WriteString("verdict: tautology\n")
			b.WriteString(v.Proof.String())
		case engine.Refutable:
			b.WriteString("verdict: refutable\n")
			fmt.Fprintf(&b, "counterexample:%s\n", renderValuation(v.Valuation))
		}
	}
	return b.String()
}

func renderValuation(v sl.Valuation) string {
	letters := make([]byte, 0, len(v))
	for l := range v {
		letters = append(letters, l)
	}
	for i := 1; i < len(letters); i++ {
		for j := i; j > 0 && letters[j-1] > letters[j]; j-- {
			letters[j-1], letters[j] = letters[j], letters[j-1]
		}
	}
	var b strings.Builder
	for _, l := range letters {
		fmt.Fprintf(&b, " %c=%t", l, v[l])
	}
	return b.String()
}
