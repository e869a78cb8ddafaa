// Package network implements the indexed And-Inverter Graph that the rest of
// this module mutates: dense integer node identities, ordered per-node fanin
// edges with complement flags, insertion-ordered fanout back-references, a
// stack-shaped checkpoint store, and a synchronous Action-broadcast bus that
// lets Analyzers keep incrementally-updated mirrors of the network coherent.
//
// Network is intentionally NOT safe for concurrent use: each scheduler worker
// owns a private Network plus private Analyzer state, and cross-goroutine
// sharing is restricted to the job queue (see package scheduler). This is a
// deliberate divergence from the teacher package's sync.RWMutex-guarded
// Graph — the RRR core's concurrency model places exactly one goroutine per
// Network for the network's entire lifetime.
//
// Configuration follows the functional-options idiom used throughout this
// module (NewNetwork(opts ...Option)); structural contract violations
// (mutating a destroyed node, injecting a cycle) panic at the detection site
// per the module's error-handling policy, since they indicate a caller bug
// rather than bad input.
package network
