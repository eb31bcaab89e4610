// Package engine implements the decision procedure for sentential logic.
//
// Decide answers, for any well-formed formula, whether it is a
// tautology. The procedure is constructive in both directions: a
// tautology comes back with a complete natural-deduction derivation,
// and a non-tautology comes back with a falsifying valuation.
//
// Control flow for one decision attempt:
//
//  1. Assume the negation of the target (opens the outermost scope).
//  2. Rewrite the negation to disjunctive normal form, logging every
//     step (internal/normalize).
//  3. Search the DNF for a satisfying valuation. If one exists it
//     falsifies the target: return Refutable.
//  4. Otherwise run reductio ad absurdum over the DNF tree: every
//     literal path meets a contradicting ion, assumptions discharge
//     via arrow introduction, and negation elimination on the final
//     implication yields the target: return Tautology.
//
// The whole attempt is single-threaded and deterministic. It shares
// exactly one mutable Derivation, owned by the attempt, and never
// blocks. A step budget (WithMaxSteps) turns a would-be runaway into a
// clean StepsExceededError; for well-formed input the default budget
// is never reached.
package engine
