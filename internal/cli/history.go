package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sequitur/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// historyEntry is one decision in the JSON payload.
type historyEntry struct {
	Seq       int64           `json:"seq"`
	ID        string          `json:"id"`
	Input     string          `json:"input"`
	Formula   string          `json:"formula"`
	Verdict   string          `json:"verdict"`
	Valuation map[string]bool `json:"valuation,omitempty"`
	ProofRows int             `json:"proof_rows,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recorded decision log",
		Long: `List every decision recorded in the log, oldest first.

Example:
  sequitur history --db ./decisions.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite decision log (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open decision log", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing decision log", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	decisions, err := st.ListDecisions(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list decisions", err)
	}

	if opts.Format == "json" {
		entries := make([]historyEntry, 0, len(decisions))
		for _, dec := range decisions {
			entry := historyEntry{
				Seq:       dec.Seq,
				ID:        dec.ID,
				Input:     dec.Input,
				Formula:   dec.Formula,
				Verdict:   dec.Verdict,
				ProofRows: dec.ProofRows,
			}
			if dec.Valuation != nil {
				entry.Valuation = make(map[string]bool, len(dec.Valuation))
				for letter, value := range dec.Valuation {
					entry.Valuation[string(letter)] = value
				}
			}
			entries = append(entries, entry)
		}
		return formatter.Success(entries)
	}

	var b strings.Builder
	for _, dec := range decisions {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\n", dec.Seq, dec.ID, dec.Verdict, dec.Formula)
	}
	if len(decisions) == 0 {
		b.WriteString("no decisions recorded\n")
	}
	return formatter.Text(b.String())
}
