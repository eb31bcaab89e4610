package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/sequitur/internal/sl"
)

// Verdict values stored in the decision log.
const (
	VerdictTautology = "tautology"
	VerdictRefutable = "refutable"
)

// Decision is one row of the decision log.
type Decision struct {
	// ID is the decision token (UUIDv7 in production).
	ID string

	// Input is the text as the user supplied it.
	Input string

	// Formula is the canonical rendering of the parsed formula.
	Formula string

	// Verdict is VerdictTautology or VerdictRefutable.
	Verdict string

	// Valuation is the falsifying valuation for refutable formulas,
	// nil for tautologies.
	Valuation sl.Valuation

	// ProofRows is the derivation length for tautologies, 0 otherwise.
	ProofRows int

	// Seq is the decision's monotonic position in the log.
	Seq int64
}

// RecordDecision appends a decision to the log. The seq is assigned
// from the log's current tail inside the insert, so concurrent
// processes sharing a database still get a monotonic sequence.
// Writes are idempotent on the decision id: recording the same id
// twice leaves the first row in place.
func (s *Store) RecordDecision(ctx context.Context, dec Decision) error {
	valuationJSON, err := marshalValuation(dec.Valuation)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decisions (id, input, formula, verdict, valuation, proof_rows, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM decisions))
		ON CONFLICT(id) DO NOTHING
	`,
		dec.ID,
		dec.Input,
		dec.Formula,
		dec.Verdict,
		valuationJSON,
		dec.ProofRows,
	)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// ListDecisions returns the whole decision log in deterministic order:
// ORDER BY seq ASC, id ASC.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ListDecisions(ctx context.Context) ([]Decision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input, formula, verdict, valuation, proof_rows, seq
		FROM decisions
		ORDER BY seq ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	decisions := []Decision{}
	for rows.Next() {
		dec, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, dec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return decisions, nil
}

// GetDecision returns the decision with the given id, or sql.ErrNoRows
// wrapped if none exists.
func (s *Store) GetDecision(ctx context.Context, id string) (Decision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, input, formula, verdict, valuation, proof_rows, seq
		FROM decisions
		WHERE id = ?
	`, id)
	return scanDecision(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(r rowScanner) (Decision, error) {
	var dec Decision
	var valuationJSON sql.NullString
	if err := r.Scan(&dec.ID, &dec.Input, &dec.Formula, &dec.Verdict, &valuationJSON, &dec.ProofRows, &dec.Seq); err != nil {
		return Decision{}, fmt.Errorf("scan decision: %w", err)
	}
	if valuationJSON.Valid && valuationJSON.String != "" {
		valuation, err := unmarshalValuation(valuationJSON.String)
		if err != nil {
			return Decision{}, fmt.Errorf("decision %s: %w", dec.ID, err)
		}
		dec.Valuation = valuation
	}
	return dec, nil
}

// marshalValuation serializes a valuation as a JSON object keyed by
// single-letter strings. Nil valuations become NULL.
func marshalValuation(v sl.Valuation) (any, error) {
	if v == nil {
		return nil, nil
	}
	m := make(map[string]bool, len(v))
	for letter, value := range v {
		m[string(letter)] = value
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal valuation: %w", err)
	}
	return string(data), nil
}

func unmarshalValuation(data string) (sl.Valuation, error) {
	var m map[string]bool
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("unmarshal valuation: %w", err)
	}
	v := make(sl.Valuation, len(m))
	for letter, value := range m {
		if len(letter) != 1 {
			return nil, fmt.Errorf("invalid valuation letter %q", letter)
		}
		v[letter[0]] = value
	}
	return v, nil
}
