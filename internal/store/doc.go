// Package store persists the decision log.
//
// The log records one row per decided formula: the input text, the
// verdict, and for refutable formulas the falsifying valuation. It
// deliberately does not persist derivations - a proof is recomputed on
// demand, and the engine is deterministic, so storing verdicts is
// enough to reconstruct any past decision.
//
// Storage is SQLite in WAL mode with a single writer, mirroring the
// engine's strictly sequential execution model. Writes are idempotent
// on the decision id.
package store
