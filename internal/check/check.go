// Package check verifies that a completed derivation is well-formed.
//
// The checker is independent of the proof engine: it re-derives
// nothing and trusts nothing, walking the rows once and validating
// each against its named rule and cited rows. Structural rules
// (& intro, & elim, -> intro, v elim) are checked by shape; exchange
// rules are checked semantically, by truth-table equivalence of the
// row with its cited predecessor.
//
// A derivation that passes has dense 1..N indices, only backward
// citations, a consistent scope count on every row, every assumption
// discharged exactly once, and every row justified. Together with a
// final row equal to the target formula, that makes the derivation a
// machine-checked proof.
package check

import (
	"errors"
	"fmt"

	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/sl"
)

// RowError reports the first row that failed verification.
type RowError struct {
	// Index is the 1-based row that failed.
	Index int

	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Index, e.Message)
}

// IsRowError returns true if the error is a RowError.
// Uses errors.As to handle wrapped errors.
func IsRowError(err error) bool {
	var re *RowError
	return errors.As(err, &re)
}

// Derivation verifies a completed derivation. It fails fast on the
// first violation. A nil return means every row is justified, every
// scope was discharged, and the log's bookkeeping invariants hold.
func Derivation(d *derivation.Derivation) error {
	rows := d.Rows()
	if len(rows) == 0 {
		return errors.New("empty derivation")
	}

	// Assumption rows still awaiting discharge, innermost last.
	var openAssumptions []int
	scopeCount := 0

	for i, row := range rows {
		if row.Index != i+1 {
			return &RowError{Index: row.Index, Message: fmt.Sprintf("index out of sequence, want %d", i+1)}
		}
		for _, c := range row.Citations {
			if c < 1 || c >= row.Index {
				return &RowError{Index: row.Index, Message: fmt.Sprintf("citation %d is not an earlier row", c)}
			}
		}

		switch row.Rule {
		case derivation.RuleAssume:
			scopeCount++
			openAssumptions = append(openAssumptions, row.Index)
		case derivation.RuleArrowIntro:
			scopeCount--
		}
		if row.OpenScopes != scopeCount {
			return &RowError{Index: row.Index, Message: fmt.Sprintf("open scope count %d, want %d", row.OpenScopes, scopeCount)}
		}

		if err := checkRule(rows, row, &openAssumptions); err != nil {
			return err
		}
	}

	if len(openAssumptions) > 0 {
		return &RowError{Index: openAssumptions[len(openAssumptions)-1], Message: "assumption never discharged"}
	}
	return nil
}

// Target additionally verifies that the derivation proves formula:
// it must be well-formed and conclude with the formula itself on a
// row with no open scopes.
func Target(d *derivation.Derivation, formula sl.Formula) error {
	if err := Derivation(d); err != nil {
		return err
	}
	rows := d.Rows()
	last := rows[len(rows)-1]
	if last.Formula != formula {
		return &RowError{Index: last.Index, Message: fmt.Sprintf("concludes %v, want %v", last.Formula, formula)}
	}
	return nil
}

func checkRule(rows []derivation.Row, row derivation.Row, openAssumptions *[]int) error {
	cited := func(i int) derivation.Row { return rows[row.Citations[i]-1] }

	switch row.Rule {
	case derivation.RuleAssume:
		if len(row.Citations) != 0 {
			return &RowError{Index: row.Index, Message: "assumption must not cite rows"}
		}
		return nil

	case derivation.RuleAndIntro:
		if len(row.Citations) != 2 {
			return &RowError{Index: row.Index, Message: "conjunction introduction needs two citations"}
		}
		conj, ok := row.Formula.(sl.Binary)
		if !ok || conj.Op != sl.OpAnd {
			return &RowError{Index: row.Index, Message: "conjunction introduction must derive a conjunction"}
		}
		a, b := cited(0).Formula, cited(1).Formula
		if !(conj.Left == a && conj.Right == b) && !(conj.Left == b && conj.Right == a) {
			return &RowError{Index: row.Index, Message: "conjuncts do not match the cited rows"}
		}
		return nil

	case derivation.RuleAndElim:
		if len(row.Citations) != 1 {
			return &RowError{Index: row.Index, Message: "conjunction elimination needs one citation"}
		}
		conj, ok := cited(0).Formula.(sl.Binary)
		if !ok || conj.Op != sl.OpAnd {
			return &RowError{Index: row.Index, Message: "cited row is not a conjunction"}
		}
		if row.Formula != conj.Left && row.Formula != conj.Right {
			return &RowError{Index: row.Index, Message: "formula is not a conjunct of the cited row"}
		}
		return nil

	case derivation.RuleArrowIntro:
		if len(row.Citations) != 2 {
			return &RowError{Index: row.Index, Message: "arrow introduction needs two citations"}
		}
		assumptionRow, rhsRow := cited(0), cited(1)
		if assumptionRow.Rule != derivation.RuleAssume {
			return &RowError{Index: row.Index, Message: "first citation must be an assumption"}
		}
		if len(*openAssumptions) == 0 || (*openAssumptions)[len(*openAssumptions)-1] != assumptionRow.Index {
			return &RowError{Index: row.Index, Message: "discharge is not LIFO on the innermost assumption"}
		}
		*openAssumptions = (*openAssumptions)[:len(*openAssumptions)-1]
		want := sl.Implies(assumptionRow.Formula, rhsRow.Formula)
		if row.Formula != want {
			return &RowError{Index: row.Index, Message: fmt.Sprintf("formula %v does not discharge the cited rows", row.Formula)}
		}
		return nil

	case derivation.RuleOrElim:
		if len(row.Citations) != 3 {
			return &RowError{Index: row.Index, Message: "disjunction elimination needs three citations"}
		}
		disj, ok := cited(0).Formula.(sl.Binary)
		if !ok || disj.Op != sl.OpOr {
			return &RowError{Index: row.Index, Message: "first citation is not a disjunction"}
		}
		if cited(1).Formula != sl.Implies(disj.Left, row.Formula) {
			return &RowError{Index: row.Index, Message: "left branch implication does not match"}
		}
		if cited(2).Formula != sl.Implies(disj.Right, row.Formula) {
			return &RowError{Index: row.Index, Message: "right branch implication does not match"}
		}
		return nil

	case derivation.RuleNegElim:
		if len(row.Citations) != 1 {
			return &RowError{Index: row.Index, Message: "negation elimination needs one citation"}
		}
		imp, ok := cited(0).Formula.(sl.Binary)
		if !ok || imp.Op != sl.OpImplies {
			return &RowError{Index: row.Index, Message: "cited row is not an implication"}
		}
		if imp.Left != sl.Not(row.Formula) {
			return &RowError{Index: row.Index, Message: "antecedent is not the negation of the derived formula"}
		}
		if !unsatisfiable(imp.Right) {
			return &RowError{Index: row.Index, Message: "consequent of the cited implication is satisfiable"}
		}
		return nil

	case derivation.RuleAnyContra:
		if len(row.Citations) != 1 {
			return &RowError{Index: row.Index, Message: "contradiction rule needs one citation"}
		}
		if !unsatisfiable(cited(0).Formula) {
			return &RowError{Index: row.Index, Message: "cited row is not a contradiction"}
		}
		return nil

	case derivation.RuleArrowExch, derivation.RuleIffExch, derivation.RuleDeMorgan,
		derivation.RuleDoubleNeg, derivation.RuleDistrib:
		if len(row.Citations) != 1 {
			return &RowError{Index: row.Index, Message: "exchange rule needs one citation"}
		}
		if !equivalent(cited(0).Formula, row.Formula) {
			return &RowError{Index: row.Index, Message: "exchange is not truth-preserving"}
		}
		return nil

	default:
		return &RowError{Index: row.Index, Message: fmt.Sprintf("unknown rule %q", row.Rule)}
	}
}

// equivalent reports whether a and b agree under every valuation of
// their combined letters.
func equivalent(a, b sl.Formula) bool {
	letters := sl.Letters(sl.And(a, b))
	for _, v := range sl.Valuations(letters) {
		if a.Eval(v) != b.Eval(v) {
			return false
		}
	}
	return true
}

// unsatisfiable reports whether f is false under every valuation.
func unsatisfiable(f sl.Formula) bool {
	for _, v := range sl.Valuations(sl.Letters(f)) {
		if f.Eval(v) {
			return false
		}
	}
	return true
}
