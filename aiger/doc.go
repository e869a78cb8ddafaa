// Package aiger is a minimal reader/writer for the AIGER And-Inverter Graph
// exchange format (both the "aag" ASCII and "aig" binary variants),
// sufficient to round-trip a network.Network (§6 "Persisted state"). Only
// the combinational subset is supported: latches are rejected with
// ErrLatchesUnsupported, and symbol tables / witness traces are not
// produced or consumed. Every And node written or read must be strictly
// 2-input, matching the format's own AND-gate record shape.
package aiger
