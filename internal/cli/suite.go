package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sequitur/internal/harness"
)

// SuiteOptions holds flags for the suite command.
type SuiteOptions struct {
	*RootOptions
}

// suiteResult is the JSON payload for a suite invocation.
type suiteResult struct {
	Suite  string `json:"suite"`
	Cases  int    `json:"cases"`
	Passed bool   `json:"passed"`
}

// NewSuiteCommand creates the suite command.
func NewSuiteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuiteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suite <dir>",
		Short: "Run a CUE suite of formulas against the decider",
		Long: `Run a CUE-defined suite of formulas against the decision procedure.

Every case is parsed and decided, verdicts are compared against the
suite's expectations, and every proof is re-verified by the checker.
The first failing case aborts the run with exit code 1.

Example:
  sequitur suite ./suites/classical`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, args[0], cmd)
		},
	}

	return cmd
}

func runSuite(opts *SuiteOptions, dir string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	suite, err := LoadSuite(dir)
	if err != nil {
		_ = formatter.Error(ErrCodeSuiteBuild, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}
	slog.Debug("suite loaded", "name", suite.Name, "cases", len(suite.Cases))

	result, err := harness.Run(suiteScenario(suite))
	if err != nil {
		_ = formatter.Error(ErrCodeSuiteFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "suite failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(suiteResult{
			Suite:  suite.Name,
			Cases:  len(result.Cases),
			Passed: true,
		})
	}
	if opts.Verbose {
		return formatter.Text(result.Transcript())
	}
	return formatter.Text(fmt.Sprintf("ok: %s (%d cases)\n", suite.Name, len(result.Cases)))
}

// suiteScenario converts a CUE suite into a harness scenario so both
// front ends share one verification path.
func suiteScenario(suite *Suite) *harness.Scenario {
	scenario := &harness.Scenario{
		Name:        suite.Name,
		Description: suite.Description,
	}
	for _, c := range suite.Cases {
		scenario.Cases = append(scenario.Cases, harness.Case{
			Input:     c.Formula,
			Expect:    c.Expect,
			Valuation: c.Valuation,
		})
	}
	return scenario
}
