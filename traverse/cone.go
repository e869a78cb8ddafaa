package traverse

import "github.com/katalvlaran/rrrsub/network"

// ForEachTfi returns an Iterator over the transitive fanin cone of roots
// (every root plus every node reachable by following fanin edges), each id
// appearing exactly once, in topological order (every fanin before its
// consumer) — the order §4.1 requires so a caller can recompute values
// bottom-up in a single pass. Built by intersecting TopologicalOrder's global
// order with the ancestor set gathered by a plain reachability walk, since a
// subsequence of a topological order is itself a valid topological order of
// the restricted edge relation.
func ForEachTfi(v network.View, roots []network.NodeID) *Iterator {
	return coneInTopoOrder(v, roots, func(id network.NodeID) []network.NodeID {
		fanins := v.Fanins(id)
		out := make([]network.NodeID, len(fanins))
		for i, fi := range fanins {
			out[i] = fi.Node
		}
		return out
	})
}

// ForEachTfo returns an Iterator over the transitive fanout cone of roots
// (every root plus every node reachable by following fanout edges), each id
// appearing exactly once, in topological order (every fanin before its
// consumer).
func ForEachTfo(v network.View, roots []network.NodeID) *Iterator {
	return coneInTopoOrder(v, roots, func(id network.NodeID) []network.NodeID {
		fanouts := v.Fanouts(id)
		out := make([]network.NodeID, len(fanouts))
		for i, fo := range fanouts {
			out[i] = fo.Consumer
		}
		return out
	})
}

// coneInTopoOrder gathers the set reachable from roots via next (plain
// visited-set walk; order here is irrelevant, only membership matters), then
// filters the view's global TopologicalOrder down to that set. Returns an
// empty Iterator if the view contains a cycle (I3 should make this
// unreachable against a real Network).
func coneInTopoOrder(v network.View, roots []network.NodeID, next func(network.NodeID) []network.NodeID) *Iterator {
	inCone := make(map[network.NodeID]bool, len(roots))
	queue := append([]network.NodeID(nil), roots...)
	for _, id := range roots {
		inCone[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nxt := range next(id) {
			if !inCone[nxt] {
				inCone[nxt] = true
				queue = append(queue, nxt)
			}
		}
	}

	order, err := TopologicalOrder(v)
	if err != nil {
		return newIterator(nil)
	}
	filtered := make([]network.NodeID, 0, len(inCone))
	for _, id := range order {
		if inCone[id] {
			filtered = append(filtered, id)
		}
	}
	return newIterator(filtered)
}

// ForEachTfosUpdate walks the transitive fanout cone of roots in topological
// order, invoking visit(id) for each node reached. A node other than a root
// is only reached once some fanin of it was itself reached and its visit
// call returned true — if visit returns false, that node's own consumers are
// not activated, which is the pruning the original "callback coroutine" idiom
// used (§9): an incremental Analyzer update legitimately needs to stop
// propagating once it proves a node's care-set/value is unchanged. Processing
// the view's global TopologicalOrder in order (rather than a FIFO frontier)
// guarantees every node's fanins — and so its activation state — are decided
// before the node itself is considered, which a level-by-level BFS cannot
// guarantee on a general DAG.
func ForEachTfosUpdate(v network.View, roots []network.NodeID, visit func(network.NodeID) bool) {
	order, err := TopologicalOrder(v)
	if err != nil {
		return
	}
	active := make(map[network.NodeID]bool, len(roots))
	for _, id := range roots {
		active[id] = true
	}
	for _, id := range order {
		if !active[id] {
			continue
		}
		if !visit(id) {
			continue
		}
		for _, fo := range v.Fanouts(id) {
			active[fo.Consumer] = true
		}
	}
}
