package optimizer

import (
	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/network"
)

// reduceFanin tests every fanin of id for redundancy under the active
// analyzer, removing each one that tests redundant (skipping any fanin just
// added during the current resubstitution pass). It does not run Propagate
// itself; GreedyReduce does that when the node is left with one or zero
// fanins. Returns true if at least one fanin was removed.
func (d *Driver) reduceFanin(id network.NodeID, removeUnused bool) bool {
	removed := false
	added := d.newFanins[id]
	for idx := 0; idx < d.ntk.NumFanins(id); idx++ {
		if added != nil {
			fi, _, err := d.ntk.GetFanin(id, idx)
			if err == nil && added[fi] {
				continue
			}
		}
		if !d.ana.CheckRedundancy(id, idx) {
			continue
		}
		fi, _, err := d.ntk.GetFanin(id, idx)
		if err != nil {
			continue
		}
		if err := d.ntk.RemoveFanin(id, idx); err != nil {
			continue
		}
		removed = true
		idx--
		if removeUnused && d.ntk.IsInt(fi) && d.ntk.NumFanouts(fi) == 0 {
			_ = d.ntk.RemoveUnused(fi)
		}
	}
	return removed
}

// GreedyReduce walks internal nodes in reverse creation order, testing every
// fanin of every node with ≥2 fanins for redundancy; on any removal it
// restarts from the most-recently-created node (mirroring the source's
// RemoveRedundancy, whose loop resets to the reverse-begin iterator after a
// successful reduction since a removal can expose new redundancy upstream).
// After a full pass with no removals the network is certified irredundant
// under the active analyzer (§4.7).
func (d *Driver) GreedyReduce(deadline rng.Deadline) {
	for {
		ints := d.ntk.Ints()
		reducedAny := false
		for i := len(ints) - 1; i >= 0; i-- {
			if deadline.Exceeded() {
				return
			}
			id := ints[i]
			if !d.ntk.IsInt(id) {
				continue
			}
			if d.ntk.NumFanouts(id) == 0 {
				_ = d.ntk.RemoveUnused(id)
				continue
			}
			reduced := d.reduceFanin(id, false)
			if d.ntk.IsInt(id) && d.ntk.NumFanins(id) <= 1 {
				_ = d.ntk.Propagate(id)
			}
			if reduced {
				reducedAny = true
				break // restart the pass (source: it = vInts.rbegin()).
			}
		}
		if !reducedAny {
			return
		}
	}
}
