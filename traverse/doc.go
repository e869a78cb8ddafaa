// Package traverse provides iteration primitives over a network.View:
// topological order, transitive fanin/fanout cones, and the pruned update
// walk used after a fanin rewrite. It is the Go-idiomatic reshaping of the
// original "callback coroutine" traversal idiom (§9 of the design notes):
// rather than a caller-supplied visitor callback driving hidden recursion,
// each entry point returns either a plain slice (TopologicalOrder) or an
// explicit Iterator with Next() (NodeID, bool) (ForEachInt,
// ForEachIntReverse, ForEachTfi, ForEachTfo), and the legacy
// predicate-callback shape (func(NodeID) bool returning "keep going") is kept
// only where early pruning genuinely matters (ForEachTfosUpdate).
package traverse
