// Package partitioner implements window extraction/re-insertion for the
// scheduler's partitioning mode (§4.8): Extract pulls a k-hop neighborhood
// of a seed node out as a standalone network, and (*Window).Insert wires a
// (possibly re-optimized) window back by PI/PO correspondence.
package partitioner
