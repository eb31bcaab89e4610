// Package derivation implements the append-only proof log.
//
// A Derivation is the single mutable object threaded through one
// decision attempt. It records numbered rows, tracks the stack of open
// assumptions (scopes), and collects the literals (ions) derived while
// each scope is open. Rows are append-only: nothing is ever rewritten
// or removed, and row indices form a dense 1..N sequence.
//
// The Derivation is exclusively owned by its decision attempt and is
// mutated strictly sequentially. It must never be shared across
// concurrent attempts.
package derivation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sequitur/internal/sl"
)

// Rule names appearing in derivation rows. The exchange rules are
// logged by the normalizer; the intro/elim rules by the proof engine.
const (
	RuleAssume     = "Assume"
	RuleArrowExch  = "-> exch."
	RuleIffExch    = "<->/v exch."
	RuleDeMorgan   = "De Morgan's"
	RuleDoubleNeg  = "~~ elim."
	RuleDistrib    = "&/v exch."
	RuleAndElim    = "& elim"
	RuleAndIntro   = "& intro."
	RuleArrowIntro = "-> intro."
	RuleOrElim     = "v elim."
	RuleNegElim    = "~ elim."
	RuleAnyContra  = "Any Contra."
)

// Row is one line of a derivation.
type Row struct {
	// Index is the 1-based row number. Indices are dense: row k is
	// always the k-th row appended.
	Index int

	// OpenScopes is the number of assumptions open when the row was
	// appended. An "Assume" row counts its own newly opened scope.
	OpenScopes int

	// Formula is the sentence derived on this row.
	Formula sl.Formula

	// Rule names the rule that justified the row.
	Rule string

	// Citations lists the rows this one follows from. Every citation
	// is strictly smaller than Index.
	Citations []int
}

// Ion is a literal recorded while a scope is open. Ions are only used
// for contradiction detection and are never removed.
type Ion struct {
	// Row is the derivation row on which the literal appeared.
	Row int

	// Positive is true for a bare atom, false for a negated atom.
	Positive bool

	// Letter is the sentence letter of the literal.
	Letter byte
}

// Scope tracks one undischarged assumption.
type Scope struct {
	// AssumptionRow is the index of the "Assume" row that opened it.
	AssumptionRow int

	// ID is globally unique within the derivation and monotonically
	// assigned. Scope IDs let the proof engine detect discharges that
	// happen inside recursive calls.
	ID int

	// Ions are the literals derived while this scope was open,
	// in recording order.
	Ions []Ion
}

// NoScope is the sentinel returned by CurrentScopeID when no
// assumption is open. Real scope IDs start at 1.
const NoScope = 0

// Derivation is an append-only proof log with a scope stack.
// One instance per decision attempt; not safe for concurrent use.
type Derivation struct {
	rows        []Row
	scopes      []Scope // stack: newest last
	nextScopeID int
}

// New creates an empty derivation.
func New() *Derivation {
	return &Derivation{nextScopeID: 1}
}

// LastIndex returns the index of the last row, or 0 if empty.
func (d *Derivation) LastIndex() int {
	return len(d.rows)
}

// Append adds a new row deriving formula by rule from the cited rows.
// If rule is "Assume", a fresh scope is pushed before the row's open
// scope count is computed, so the assumption row reflects the scope it
// opens. Returns the new row's index.
func (d *Derivation) Append(formula sl.Formula, rule string, citations []int) int {
	index := len(d.rows) + 1

	if rule == RuleAssume {
		d.scopes = append(d.scopes, Scope{
			AssumptionRow: index,
			ID:            d.nextScopeID,
		})
		d.nextScopeID++
	}

	d.rows = append(d.rows, Row{
		Index:      index,
		OpenScopes: len(d.scopes),
		Formula:    formula,
		Rule:       rule,
		Citations:  citations,
	})
	return index
}

// Exchange appends a row citing only the immediately preceding row.
// This is the shape of every rewrite step logged by the normalizer.
func (d *Derivation) Exchange(formula sl.Formula, rule string) int {
	return d.Append(formula, rule, []int{d.LastIndex()})
}

// AddIon attaches an ion to the innermost open scope.
// Fails if no scope is open.
func (d *Derivation) AddIon(ion Ion) error {
	if len(d.scopes) == 0 {
		return errors.New("no open scope to record ion in")
	}
	top := &d.scopes[len(d.scopes)-1]
	top.Ions = append(top.Ions, ion)
	return nil
}

// CurrentScopeID returns the ID of the innermost open scope, or
// NoScope if the stack is empty.
func (d *Derivation) CurrentScopeID() int {
	if len(d.scopes) == 0 {
		return NoScope
	}
	return d.scopes[len(d.scopes)-1].ID
}

// PopScope discharges the innermost open scope and returns it.
// Only the proof engine's arrow-introduction step may call this;
// scopes are popped strictly LIFO.
func (d *Derivation) PopScope() (Scope, error) {
	if len(d.scopes) == 0 {
		return Scope{}, errors.New("no open scope to discharge")
	}
	top := d.scopes[len(d.scopes)-1]
	d.scopes = d.scopes[:len(d.scopes)-1]
	return top, nil
}

// OpenScopes returns the open scopes, oldest first.
// Callers must not mutate the returned slice.
func (d *Derivation) OpenScopes() []Scope {
	return d.scopes
}

// Rows returns all rows in order. Callers must not mutate the
// returned slice.
func (d *Derivation) Rows() []Row {
	return d.rows
}

// Formula returns the formula on the given 1-based row.
func (d *Derivation) Formula(index int) (sl.Formula, error) {
	if index < 1 || index > len(d.rows) {
		return nil, fmt.Errorf("row %d out of range 1..%d", index, len(d.rows))
	}
	return d.rows[index-1].Formula, nil
}

// String renders the derivation as numbered rows: one " |" scope bar
// per open scope, then the formula, the rule name, and a comma-joined
// citation list.
func (d *Derivation) String() string {
	var b strings.Builder
	for _, row := range d.rows {
		b.WriteString(strconv.Itoa(row.Index))
		b.WriteByte('.')
		for i := 0; i < row.OpenScopes; i++ {
			b.WriteString(" |")
		}
		b.WriteByte(' ')
		b.WriteString(row.Formula.String())
		b.WriteString("    ")
		b.WriteString(row.Rule)
		if len(row.Citations) > 0 {
			b.WriteByte(' ')
			for i, c := range row.Citations {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.Itoa(c))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
