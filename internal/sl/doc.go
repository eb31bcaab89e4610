// Package sl defines the formula model for sentential logic.
//
// A Formula is an immutable tree built from three node kinds:
//
//   - Atom: a single uppercase sentence letter (A..Z)
//   - Negation: ~P
//   - Binary: (P & Q), (P v Q), (P -> Q), (P <-> Q)
//
// The Formula interface is sealed - only these three types implement it.
// All node types are comparable value types, so structural equality is
// plain ==. Formulas are never mutated after construction; every
// transformation builds a new tree.
//
// Rendering uses the surface syntax accepted by the parser, so
// String() output re-parses to an equal formula.
package sl
