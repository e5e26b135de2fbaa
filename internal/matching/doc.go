// Package matching is the ranking core of the service: static
// preference-compatibility scoring, the behavioral signal ledger, the
// static/behavioral blend, and the exploration-aware ranker.
//
// Every function here is pure with respect to its inputs — no I/O, no
// clocks, no hidden state. The one deliberate exception is the Ranker's
// exploration shuffle, which draws from the random source injected at
// construction; pass a seeded source to make ranking reproducible in tests.
//
// Basic usage:
//
//	ledger := matching.NewLedger(userID, signals, nowMs)
//	ranker := matching.NewRanker(nil)
//	feed := ranker.Rank(candidates, prefs, ledger)
//
// Recording an interaction returns a fresh ledger with affinities
// recomputed over the decayed signal window:
//
//	ledger = matching.Record(ledger, signal, nowMs)
//
// Callers own serialization of Record per user; see the signal use case.
package matching
