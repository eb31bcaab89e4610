package sl

import "sort"

// Formula is a sealed interface representing a sentential-logic formula.
// Only Atom, Negation, and Binary implement it.
type Formula interface {
	isFormula() // Sealed - only these types implement it
	String() string
	Eval(v Valuation) bool
}

// Valuation assigns a truth value to each sentence letter.
// Letters absent from the map evaluate to false.
type Valuation map[byte]bool

// Op identifies the main connective of a Binary formula.
type Op int

const (
	_ Op = iota
	OpAnd
	OpOr
	OpImplies
	OpIff
)

func (op Op) String() string {
	switch op {
	case OpAnd:
		return "&"
	case OpOr:
		return "v"
	case OpImplies:
		return "->"
	case OpIff:
		return "<->"
	default:
		return "?"
	}
}

// Atom is a single sentence letter, always an uppercase ASCII letter.
type Atom struct {
	Letter byte
}

func (Atom) isFormula() {}

func (a Atom) String() string {
	return string(a.Letter)
}

func (a Atom) Eval(v Valuation) bool {
	return v[a.Letter]
}

// Negation is ~P.
type Negation struct {
	Operand Formula
}

func (Negation) isFormula() {}

func (n Negation) String() string {
	return "~" + n.Operand.String()
}

func (n Negation) Eval(v Valuation) bool {
	return !n.Operand.Eval(v)
}

// Binary is a formula whose main connective is binary: &, v, ->, <->.
type Binary struct {
	Op    Op
	Left  Formula
	Right Formula
}

func (Binary) isFormula() {}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (b Binary) Eval(v Valuation) bool {
	switch b.Op {
	case OpAnd:
		return b.Left.Eval(v) && b.Right.Eval(v)
	case OpOr:
		return b.Left.Eval(v) || b.Right.Eval(v)
	case OpImplies:
		return !b.Left.Eval(v) || b.Right.Eval(v)
	case OpIff:
		return b.Left.Eval(v) == b.Right.Eval(v)
	default:
		return false
	}
}

// Constructors for programmatic formula building.

// Prop creates an atomic formula for the given letter.
func Prop(letter byte) Formula {
	return Atom{Letter: letter}
}

// Not creates a negation.
func Not(f Formula) Formula {
	return Negation{Operand: f}
}

// And creates a conjunction.
func And(left, right Formula) Formula {
	return Binary{Op: OpAnd, Left: left, Right: right}
}

// Or creates a disjunction.
func Or(left, right Formula) Formula {
	return Binary{Op: OpOr, Left: left, Right: right}
}

// Implies creates a conditional.
func Implies(left, right Formula) Formula {
	return Binary{Op: OpImplies, Left: left, Right: right}
}

// Iff creates a biconditional.
func Iff(left, right Formula) Formula {
	return Binary{Op: OpIff, Left: left, Right: right}
}

// Letters returns the distinct sentence letters occurring in f,
// sorted ascending for deterministic iteration.
func Letters(f Formula) []byte {
	seen := make(map[byte]bool)
	collectLetters(f, seen)
	letters := make([]byte, 0, len(seen))
	for l := range seen {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

func collectLetters(f Formula, seen map[byte]bool) {
	switch f := f.(type) {
	case Atom:
		seen[f.Letter] = true
	case Negation:
		collectLetters(f.Operand, seen)
	case Binary:
		collectLetters(f.Left, seen)
		collectLetters(f.Right, seen)
	}
}

// Valuations enumerates every valuation over the given letters.
// With n letters it yields 2^n maps, in a fixed order (letter i follows
// bit i of the counter). Used by the checker and by equivalence tests.
func Valuations(letters []byte) []Valuation {
	n := len(letters)
	all := make([]Valuation, 0, 1<<n)
	for bits := 0; bits < 1<<n; bits++ {
		v := make(Valuation, n)
		for i, l := range letters {
			v[l] = bits&(1<<i) != 0
		}
		all = append(all, v)
	}
	return all
}

// IsLiteral reports whether f is an atom or a negated atom.
func IsLiteral(f Formula) bool {
	switch f := f.(type) {
	case Atom:
		return true
	case Negation:
		_, ok := f.Operand.(Atom)
		return ok
	default:
		return false
	}
}
