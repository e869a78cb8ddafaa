package traverse

import (
	"errors"

	"github.com/katalvlaran/rrrsub/network"
)

// ErrCycleDetected is returned by TopologicalOrder when the view's fanin
// graph contains a cycle (I3 violation — should never happen against a
// Network that only exposes cycle-safe mutators, but traverse treats it as
// a checkable error rather than assuming the invariant).
var ErrCycleDetected = errors.New("traverse: cycle detected")

// Iterator yields NodeIDs one at a time; Next returns (id, true) while
// values remain and (network.NoNode, false) once exhausted.
type Iterator struct {
	ids []network.NodeID
	pos int
}

// Next advances the iterator.
func (it *Iterator) Next() (network.NodeID, bool) {
	if it.pos >= len(it.ids) {
		return network.NoNode, false
	}
	id := it.ids[it.pos]
	it.pos++
	return id, true
}

// Len reports the number of ids remaining, including the one Next would
// return next.
func (it *Iterator) Len() int { return len(it.ids) - it.pos }

func newIterator(ids []network.NodeID) *Iterator {
	return &Iterator{ids: ids}
}
