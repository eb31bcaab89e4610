// Package harness runs conformance scenarios against the decision
// procedure.
//
// A scenario is a YAML file naming formulas and the verdicts they must
// produce. The harness parses and decides each case, re-verifies every
// produced proof with the checker, and renders a deterministic
// transcript. Transcripts are compared against golden files in tests:
// the proof engine's tie-breaks are fixed, so for a given formula the
// derivation - and therefore the transcript - never changes.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Expected verdict values in scenario files.
const (
	ExpectTautology = "tautology"
	ExpectRefutable = "refutable"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases lists the formulas to decide, in order.
	Cases []Case `yaml:"cases"`
}

// Case is one formula with its expected outcome.
type Case struct {
	// Input is the formula text handed to the parser.
	Input string `yaml:"input"`

	// Expect is "tautology" or "refutable".
	Expect string `yaml:"expect"`

	// Valuation optionally pins values in the falsifying valuation.
	// Subset match - only the listed letters are checked. Only valid
	// with expect: refutable.
	Valuation map[string]bool `yaml:"valuation,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Input == "" {
			return fmt.Errorf("cases[%d]: input is required", i)
		}
		switch c.Expect {
		case ExpectTautology:
			if len(c.Valuation) > 0 {
				return fmt.Errorf("cases[%d]: valuation is only valid with expect: refutable", i)
			}
		case ExpectRefutable:
		default:
			return fmt.Errorf("cases[%d]: expect must be %q or %q, got %q", i, ExpectTautology, ExpectRefutable, c.Expect)
		}
		for letter := range c.Valuation {
			if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
				return fmt.Errorf("cases[%d]: valuation letter %q is not an uppercase sentence letter", i, letter)
			}
		}
	}
	return nil
}
