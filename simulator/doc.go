// Package simulator implements bit-parallel, incremental AIG simulation
// (§4.3): per-node raw []uint64 word vectors, a lazily-drained dirty set fed
// by network.Action subscriptions, care-set computation via shadow
// re-simulation, sound redundancy/feasibility tests, and counter-example
// fusion for the SAT analyzer's counter-examples (full PrimaryInput
// assignments from the solver model; no reverse justification narrows them
// to a partial cube).
//
// Node values live in flat []uint64 slices rather than *bitset.BitSet: the
// inner loop is full-word AND/OR/XOR/ANDNOT with no random-bit addressing,
// the same tradeoff the source's raw word arrays make. Package pattern is
// still bitset-backed because ReadStimuli and counter-example fusion do need
// addressed single-bit access.
package simulator
