package engine

import (
	"fmt"

	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/sl"
)

// prover holds the state of one reductio search: the derivation being
// extended and the step budget shared with the normalizer.
type prover struct {
	d *derivation.Derivation
	q *derivation.Quota
}

// reductio extends the derivation from the DNF formula on the last row
// toward a contradiction, discharging assumptions as it goes. goal,
// when non-nil, forces the branch to converge on a specific conclusion
// (used to unify the two arms of a disjunction elimination).
//
// Dispatch is on the formula's shape. A literal records an ion and
// scans the open scopes for its opposite; a disjunction splits into
// two assumed branches; a conjunction is eliminated left-first; a
// conditional only appears once branches have discharged, and at an
// empty scope stack it is the final (~Target -> contradiction)
// implication, which negation elimination rewrites to the target.
func (p *prover) reductio(f sl.Formula, goal sl.Formula) (sl.Formula, error) {
	if err := p.q.Check(); err != nil {
		return nil, err
	}

	switch f := f.(type) {
	case sl.Atom:
		return p.contradictionCheck(f, goal)

	case sl.Negation:
		return p.contradictionCheck(f, goal)

	case sl.Binary:
		switch f.Op {
		case sl.OpOr:
			concluded, err := p.orElim(f.Left, f.Right, goal)
			if err != nil {
				return nil, err
			}
			imp, err := p.arrowIntro(concluded)
			if err != nil {
				return nil, err
			}
			return p.reductio(imp, nil)

		case sl.OpAnd:
			return p.andElim(f, goal)

		case sl.OpImplies:
			if len(p.d.OpenScopes()) > 0 {
				// Branches above still have assumptions to
				// discharge; hand the implication back up.
				return f, nil
			}
			return p.negElim(f)
		}
	}
	return nil, fmt.Errorf("reductio: unexpected formula shape %v", f)
}

// contradictionCheck records f as an ion and scans all open scopes,
// oldest first and in recording order within a scope, for an ion with
// the same letter and opposite polarity. On a match it derives the
// contradiction (letter & ~letter), redirects to goal if one is
// forced, discharges the innermost assumption, and recurses on the
// resulting implication. With no match the literal comes back
// unchanged; for a genuine tautology that never happens.
func (p *prover) contradictionCheck(f sl.Formula, goal sl.Formula) (sl.Formula, error) {
	row := p.d.LastIndex()
	positive, letter, err := literal(f)
	if err != nil {
		return nil, err
	}

	if err := p.d.AddIon(derivation.Ion{Row: row, Positive: positive, Letter: letter}); err != nil {
		return nil, err
	}

	for _, scope := range p.d.OpenScopes() {
		for _, ion := range scope.Ions {
			if ion.Letter != letter || ion.Positive == positive {
				continue
			}

			// Contradiction found.
			next := sl.And(sl.Prop(letter), sl.Not(sl.Prop(letter)))
			p.d.Append(next, derivation.RuleAndIntro, []int{ion.Row, row})

			if goal != nil && next != goal {
				// From a contradiction, anything follows.
				p.d.Exchange(goal, derivation.RuleAnyContra)
				next = goal
				goal = nil
			}

			imp, err := p.arrowIntro(next)
			if err != nil {
				return nil, err
			}
			return p.reductio(imp, goal)
		}
	}

	return f, nil
}

// andElim derives the left conjunct and recurses. If that call
// discharged a scope, its result is final and the right conjunct is
// never touched; otherwise the right conjunct is derived and followed.
func (p *prover) andElim(f sl.Binary, goal sl.Formula) (sl.Formula, error) {
	row := p.d.LastIndex()
	p.d.Append(f.Left, derivation.RuleAndElim, []int{row})

	scopeID := p.d.CurrentScopeID()
	next, err := p.reductio(f.Left, goal)
	if err != nil {
		return nil, err
	}
	if scopeID != p.d.CurrentScopeID() {
		return next, nil
	}

	p.d.Append(f.Right, derivation.RuleAndElim, []int{row})
	return p.reductio(f.Right, goal)
}

// orElim proves the disjunction's conclusion by cases: assume the left
// disjunct and run it to a conclusion, then assume the right disjunct
// with that conclusion forced as goal, and close with a disjunction
// elimination citing the disjunction row and both branch conclusions.
// An already-forced goal is threaded into the left branch, so nested
// disjunctions converge on the conclusion their caller needs.
func (p *prover) orElim(lhs, rhs sl.Formula, goal sl.Formula) (sl.Formula, error) {
	disjunctRow := p.d.LastIndex()

	p.d.Append(lhs, derivation.RuleAssume, nil)
	firstArrow, err := p.reductio(lhs, goal)
	if err != nil {
		return nil, err
	}
	leftRow := p.d.LastIndex()

	arrow, ok := firstArrow.(sl.Binary)
	if !ok || arrow.Op != sl.OpImplies {
		return nil, fmt.Errorf("disjunction elimination: left branch concluded %v, want an implication", firstArrow)
	}
	conclusion := arrow.Right

	p.d.Append(rhs, derivation.RuleAssume, nil)
	if _, err := p.reductio(rhs, conclusion); err != nil {
		return nil, err
	}
	rightRow := p.d.LastIndex()

	p.d.Append(conclusion, derivation.RuleOrElim, []int{disjunctRow, leftRow, rightRow})
	return conclusion, nil
}

// arrowIntro discharges the innermost assumption: it pops the scope,
// forms (assumption -> rhs), and appends the implication citing the
// assumption row and the row rhs was derived on.
func (p *prover) arrowIntro(rhs sl.Formula) (sl.Formula, error) {
	scope, err := p.d.PopScope()
	if err != nil {
		return nil, err
	}

	lhs, err := p.d.Formula(scope.AssumptionRow)
	if err != nil {
		return nil, err
	}
	rhsRow := p.d.LastIndex()

	imp := sl.Implies(lhs, rhs)
	p.d.Append(imp, derivation.RuleArrowIntro, []int{scope.AssumptionRow, rhsRow})
	return imp, nil
}

// negElim closes the proof: f is (~Target -> contradiction) with no
// scopes open, so the target follows by negation elimination.
func (p *prover) negElim(f sl.Binary) (sl.Formula, error) {
	neg, ok := f.Left.(sl.Negation)
	if !ok {
		return nil, fmt.Errorf("negation elimination: antecedent %v is not a negation", f.Left)
	}
	p.d.Exchange(neg.Operand, derivation.RuleNegElim)
	return neg.Operand, nil
}

// literal splits an atom or negated atom into polarity and letter.
func literal(f sl.Formula) (positive bool, letter byte, err error) {
	switch f := f.(type) {
	case sl.Atom:
		return true, f.Letter, nil
	case sl.Negation:
		if atom, ok := f.Operand.(sl.Atom); ok {
			return false, atom.Letter, nil
		}
	}
	return false, 0, fmt.Errorf("reductio reached non-literal %v in literal position", f)
}
