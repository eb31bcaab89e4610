package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sequitur/internal/check"
	"github.com/roach88/sequitur/internal/engine"
	"github.com/roach88/sequitur/internal/parser"
	"github.com/roach88/sequitur/internal/sl"
	"github.com/roach88/sequitur/internal/store"
)

// ProveOptions holds flags for the prove command.
type ProveOptions struct {
	*RootOptions
	Database string
	Check    bool
	MaxSteps int

	// Tokens allows overriding the decision token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.TokenGenerator
}

// proveResult is the JSON payload for a prove invocation.
type proveResult struct {
	ID        string          `json:"id,omitempty"`
	Input     string          `json:"input"`
	Formula   string          `json:"formula"`
	Verdict   string          `json:"verdict"`
	Valuation map[string]bool `json:"valuation,omitempty"`
	Proof     string          `json:"proof,omitempty"`
	ProofRows int             `json:"proof_rows,omitempty"`
}

// NewProveCommand creates the prove command.
func NewProveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prove <formula>",
		Short: "Decide whether a formula is a tautology",
		Long: `Decide whether a sentential logic formula is a tautology.

For a tautology the full natural deduction derivation is printed; for a
refutable formula a falsifying valuation is printed instead. With --db
the verdict is appended to the decision log.

Example:
  sequitur prove "A -> A"
  sequitur prove --check --db ./decisions.db "(A & B) -> A"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite decision log (optional)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "re-verify the produced proof with the independent checker")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", engine.DefaultMaxSteps, "step budget for the decision attempt")

	return cmd
}

func runProve(opts *ProveOptions, input string, cmd *cobra.Command) error {
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
	slog.Debug("formula parsed", "input", input, "formula", formula.String())

	verdict, err := engine.Decide(formula, engine.WithMaxSteps(opts.MaxSteps))
	if err != nil {
		_ = formatter.Error(ErrCodeDecide, err.Error(), nil)
		return WrapExitError(ExitCommandError, "decision failed", err)
	}

	result := proveResult{
		Input:   input,
		Formula: formula.String(),
	}

	switch v := verdict.(type) {
	case engine.Tautology:
		result.Verdict = "tautology"
		result.Proof = v.Proof.String()
		result.ProofRows = len(v.Proof.Rows())

		if opts.Check {
			if err := check.Target(v.Proof, formula); err != nil {
				_ = formatter.Error(ErrCodeProofCheck, err.Error(), nil)
				return WrapExitError(ExitFailure, "proof rejected by checker", err)
			}
			slog.Debug("proof verified", "rows", result.ProofRows)
		}

	case engine.Refutable:
		result.Verdict = "refutable"
		result.Valuation = make(map[string]bool, len(v.Valuation))
		for letter, value := range v.Valuation {
			result.Valuation[string(letter)] = value
		}
	}

	if opts.Database != "" {
		id, err := recordVerdict(cmd.Context(), opts, input, formula, verdict)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record decision", err)
		}
		result.ID = id
		slog.Debug("decision recorded", "id", id, "db", opts.Database)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Text(renderProveResult(result, verdict))
}

// renderProveResult builds the human-readable output: the verdict line,
// then either the derivation or nothing (the valuation is already part
// of the refutable verdict line).
func renderProveResult(result proveResult, verdict engine.Verdict) string {
	var b strings.Builder
	b.WriteString(verdict.String())
	b.WriteByte('\n')
	if t, ok := verdict.(engine.Tautology); ok {
		b.WriteString(t.Proof.String())
	}
	if result.ID != "" {
		fmt.Fprintf(&b, "recorded: %s\n", result.ID)
	}
	return b.String()
}

// recordVerdict appends the verdict to the decision log and returns the
// freshly stamped decision token.
func recordVerdict(ctx context.Context, opts *ProveOptions, input string, formula sl.Formula, verdict engine.Verdict) (string, error) {
	tokens := opts.Tokens
	if tokens == nil {
		tokens = engine.UUIDv7Generator{}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing decision log", "error", closeErr)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	dec := store.Decision{
		ID:      tokens.Generate(),
		Input:   input,
		Formula: formula.String(),
	}
	switch v := verdict.(type) {
	case engine.Tautology:
		dec.Verdict = store.VerdictTautology
		dec.ProofRows = len(v.Proof.Rows())
	case engine.Refutable:
		dec.Verdict = store.VerdictRefutable
		dec.Valuation = v.Valuation
	}

	if err := st.RecordDecision(ctx, dec); err != nil {
		return "", err
	}
	return dec.ID, nil
}

// configureLogging routes slog to stderr at a level set by the verbose
// flag, matching every subcommand.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
