// Package normalize rewrites formulas into disjunctive normal form.
//
// The rewrite engine is a fixpoint driver over single-step functions:
// a step function either returns the formula unchanged (no rule
// applies) or performs exactly one rewrite and names the rule it used.
// The driver reapplies the step until it no-ops, logging every change
// as an exchange row in the derivation.
//
// Three passes run in a fixed order:
//
//  1. remove arrows: -> and <-> are replaced by &, v, ~ equivalents
//  2. push negations: ~~ collapses and De Morgan's moves ~ onto atoms
//  3. distribute: conjunctions over disjunctions, yielding DNF
//
// All passes share one tie-break: probe the left subsentence, then the
// right, before rewriting the node itself. The result contains only
// literals, conjunctions of literals, and disjunctions of such
// conjunctions, and is logically equivalent to the input.
package normalize

import (
	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/sl"
)

// A step performs at most one rewrite. It returns the (possibly
// unchanged) formula and the name of the rule applied, or an empty
// rule name if nothing applied.
type step func(f sl.Formula) (sl.Formula, string)

// DNF rewrites f into disjunctive normal form, logging every rewrite
// as an exchange row in d. Each logged step consumes one unit of the
// quota; the only possible error is a *derivation.StepsExceededError.
func DNF(d *derivation.Derivation, q *derivation.Quota, f sl.Formula) (sl.Formula, error) {
	passes := []step{removeArrows, pushNegations, distribute}
	for _, pass := range passes {
		next, err := fixpoint(d, q, f, pass)
		if err != nil {
			return nil, err
		}
		f = next
	}
	return f, nil
}

// fixpoint applies fn until it no-ops, logging each rewrite.
func fixpoint(d *derivation.Derivation, q *derivation.Quota, f sl.Formula, fn step) (sl.Formula, error) {
	next, rule := fn(f)
	for next != f {
		if err := q.Check(); err != nil {
			return nil, err
		}
		d.Exchange(next, rule)
		f = next
		next, rule = fn(f)
	}
	return f, nil
}

// subsentence probes fn on both sides of a binary formula, left first.
// If either side rewrites, the rebuilt formula and the rule are
// returned; otherwise the formula comes back unchanged.
func subsentence(b sl.Binary, fn step) (sl.Formula, string) {
	if next, rule := fn(b.Left); rule != "" {
		return sl.Binary{Op: b.Op, Left: next, Right: b.Right}, rule
	}
	if next, rule := fn(b.Right); rule != "" {
		return sl.Binary{Op: b.Op, Left: b.Left, Right: next}, rule
	}
	return b, ""
}

// removeArrows rewrites the leftmost arrow:
//
//	(P -> Q)   =>  (~P v Q)
//	(P <-> Q)  =>  ((P & Q) v (~P & ~Q))
func removeArrows(f sl.Formula) (sl.Formula, string) {
	switch f := f.(type) {
	case sl.Atom:
		return f, ""

	case sl.Negation:
		next, rule := removeArrows(f.Operand)
		if rule == "" {
			return f, ""
		}
		return sl.Negation{Operand: next}, rule

	case sl.Binary:
		// Subsentences first: leftmost arrow wins.
		if next, rule := subsentence(f, removeArrows); rule != "" {
			return next, rule
		}

		switch f.Op {
		case sl.OpImplies:
			return sl.Or(sl.Not(f.Left), f.Right), derivation.RuleArrowExch
		case sl.OpIff:
			return sl.Or(
				sl.And(f.Left, f.Right),
				sl.And(sl.Not(f.Left), sl.Not(f.Right)),
			), derivation.RuleIffExch
		default:
			return f, ""
		}
	}
	return f, ""
}

// pushNegations rewrites the leftmost reducible negation: double
// negations collapse once their operand is stable, and De Morgan's
// moves negations inside conjunctions and disjunctions.
func pushNegations(f sl.Formula) (sl.Formula, string) {
	switch f := f.(type) {
	case sl.Atom:
		return f, ""

	case sl.Negation:
		switch inner := f.Operand.(type) {
		case sl.Atom:
			// ~P with P atomic is already a literal.
			return f, ""

		case sl.Negation:
			// Stabilize the inner operand before collapsing ~~.
			next, rule := pushNegations(inner.Operand)
			if next != inner.Operand {
				return sl.Not(sl.Not(next)), rule
			}
			return inner.Operand, derivation.RuleDoubleNeg

		case sl.Binary:
			// Negations inside the subsentences go first.
			if next, rule := subsentence(inner, pushNegations); rule != "" {
				return sl.Negation{Operand: next}, rule
			}
			if inner.Op == sl.OpAnd {
				// ~(P & Q) => (~P v ~Q)
				return sl.Or(sl.Not(inner.Left), sl.Not(inner.Right)), derivation.RuleDeMorgan
			}
			// ~(P v Q) => (~P & ~Q)
			return sl.And(sl.Not(inner.Left), sl.Not(inner.Right)), derivation.RuleDeMorgan
		}

	case sl.Binary:
		return subsentence(f, pushNegations)
	}
	return f, ""
}

// distribute rewrites the leftmost conjunction that has a disjunctive
// immediate operand:
//
//	((P v Q) & R)  =>  ((P & R) v (Q & R))
//	(P & (Q v R))  =>  ((P & Q) v (P & R))
func distribute(f sl.Formula) (sl.Formula, string) {
	switch f := f.(type) {
	case sl.Atom, sl.Negation:
		return f, ""

	case sl.Binary:
		if next, rule := subsentence(f, distribute); rule != "" {
			return next, rule
		}

		if f.Op == sl.OpOr {
			return f, ""
		}

		if left, ok := f.Left.(sl.Binary); ok && left.Op == sl.OpOr {
			return sl.Or(
				sl.And(left.Left, f.Right),
				sl.And(left.Right, f.Right),
			), derivation.RuleDistrib
		}
		if right, ok := f.Right.(sl.Binary); ok && right.Op == sl.OpOr {
			return sl.Or(
				sl.And(f.Left, right.Left),
				sl.And(f.Left, right.Right),
			), derivation.RuleDistrib
		}
		return f, ""
	}
	return f, ""
}
