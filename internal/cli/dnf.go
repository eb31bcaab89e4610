package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/engine"
	"github.com/roach88/sequitur/internal/normalize"
	"github.com/roach88/sequitur/internal/parser"
)

// DNFOptions holds flags for the dnf command.
type DNFOptions struct {
	*RootOptions
	MaxSteps int
}

// dnfResult is the JSON payload for a dnf invocation.
type dnfResult struct {
	Input string `json:"input"`
	DNF   string `json:"dnf"`
	Trace string `json:"trace"`
	Steps int    `json:"steps"`
}

// NewDNFCommand creates the dnf command.
func NewDNFCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DNFOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dnf <formula>",
		Short: "Rewrite a formula into disjunctive normal form",
		Long: `Rewrite a sentential logic formula into disjunctive normal form,
printing every intermediate rewrite as a numbered derivation row.

Example:
  sequitur dnf "~(A v B)"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDNF(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", engine.DefaultMaxSteps, "step budget for the rewrite")

	return cmd
}

func runDNF(opts *DNFOptions, input string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formula, err := parser.Parse(input)
	if err != nil {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid formula", err)
	}

	// The rewrite trace needs a row to start from, so the formula is
	// entered as its own assumption.
	d := derivation.New()
	q := derivation.NewQuota(opts.MaxSteps)
	d.Append(formula, derivation.RuleAssume, nil)

	dnf, err := normalize.DNF(d, q, formula)
	if err != nil {
		_ = formatter.Error(ErrCodeDecide, err.Error(), nil)
		return WrapExitError(ExitCommandError, "rewrite failed", err)
	}
	slog.Debug("rewrite complete", "steps", q.Current(), "rows", len(d.Rows()))

	result := dnfResult{
		Input: input,
		DNF:   dnf.String(),
		Trace: d.String(),
		Steps: q.Current(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Text(result.Trace + "dnf: " + result.DNF + "\n")
}
