package engine

import "github.com/roach88/sequitur/internal/sl"

// FindCounterexample searches a DNF formula for a satisfying
// valuation. letters must list every sentence letter of the original
// formula; the returned valuation covers all of them, defaulting to
// false, with the satisfied disjunct's positive literals set true.
//
// The decomposition is structural: the DNF tree is split into
// disjuncts and each disjunct into its literal conjuncts. A disjunct
// whose positive and negative letters overlap (P & ~P) is
// unsatisfiable and skipped. The first satisfiable disjunct, left to
// right, wins.
func FindCounterexample(dnf sl.Formula, letters []byte) (sl.Valuation, bool) {
	for _, disjunct := range disjuncts(dnf) {
		positives := make(map[byte]bool)
		negatives := make(map[byte]bool)
		for _, lit := range conjuncts(disjunct) {
			switch lit := lit.(type) {
			case sl.Atom:
				positives[lit.Letter] = true
			case sl.Negation:
				if atom, ok := lit.Operand.(sl.Atom); ok {
					negatives[atom.Letter] = true
				}
			}
		}

		if overlaps(positives, negatives) {
			continue
		}

		valuation := make(sl.Valuation, len(letters))
		for _, l := range letters {
			valuation[l] = false
		}
		for l := range positives {
			valuation[l] = true
		}
		return valuation, true
	}
	return nil, false
}

// disjuncts flattens the top-level disjunction structure of a DNF tree.
func disjuncts(f sl.Formula) []sl.Formula {
	if b, ok := f.(sl.Binary); ok && b.Op == sl.OpOr {
		return append(disjuncts(b.Left), disjuncts(b.Right)...)
	}
	return []sl.Formula{f}
}

// conjuncts flattens the conjunction structure of one DNF disjunct.
func conjuncts(f sl.Formula) []sl.Formula {
	if b, ok := f.(sl.Binary); ok && b.Op == sl.OpAnd {
		return append(conjuncts(b.Left), conjuncts(b.Right)...)
	}
	return []sl.Formula{f}
}

func overlaps(a, b map[byte]bool) bool {
	for l := range a {
		if b[l] {
			return true
		}
	}
	return false
}
