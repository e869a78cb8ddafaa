// Package rrrsub is a Reduce/Resubstitution AIG Synthesizer: a library and
// CLI for loading, optimizing, and persisting combinational And-Inverter
// Graphs.
//
// The module is organized under per-concern subpackages rather than a flat
// root API:
//
//	network/     — the AIG itself: nodes, fanins, complemented edges,
//	               checkpoint save/load (no structural hashing)
//	traverse/    — topological order, reachability, fanin/fanout walks
//	pattern/     — packed simulation-vector storage for random or file-loaded patterns
//	simulator/   — pattern propagation over a network
//	sat/         — CNF encoding and SAT-backed equivalence checking
//	bdd/         — BDD-backed canonical-form equivalence checking
//	analyzer/    — the simulator+SAT combinator used as the default equivalence oracle
//	optimizer/   — the reduce/resubstitution passes and their cost function
//	partitioner/ — window extraction/reinsertion for partitioned optimization
//	scheduler/   — multi-job, multi-flow, multi-threaded optimization driver
//	aiger/       — AIGER ("aag"/"aig") exchange-format reader/writer
//	cmd/ssr/     — the command-line front end wiring all of the above together
package rrrsub
