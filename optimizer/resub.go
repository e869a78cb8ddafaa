package optimizer

import (
	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/network"
)

// candidates returns PIs followed by internal nodes, the pool SingleAdd and
// MultiAdd scan over (the source's vCands = GetPis() + GetInts()).
func (d *Driver) candidates() []network.NodeID {
	pis := d.ntk.Pis()
	ints := d.ntk.Ints()
	out := make([]network.NodeID, 0, len(pis)+len(ints))
	out = append(out, pis...)
	out = append(out, ints...)
	return out
}

// singleAdd scans cands[start:] for the first node not in id's TFO and not
// already a fanin, adds it as a new fanin (trying both polarities via
// CheckFeasibility), and returns the index just past the one it consumed
// (or len(cands) if none qualified). Mirrors the source's SingleAdd.
func (d *Driver) singleAdd(id network.NodeID, cands []network.NodeID, start int) int {
	d.markTfo(id)
	for _, fi := range d.ntk.Fanins(id) {
		d.marks[fi.Node] = true
	}
	defer func() {
		for _, fi := range d.ntk.Fanins(id) {
			d.marks[fi.Node] = false
		}
	}()

	i := start
	for ; i < len(cands); i++ {
		cand := cands[i]
		if !d.ntk.IsInt(cand) && !d.ntk.IsPi(cand) {
			continue
		}
		if d.marks[cand] {
			continue
		}
		if d.ana.CheckFeasibility(id, cand, false) {
			d.ntk.AddFanin(id, cand, false)
		} else if d.ntk.UseComplementedEdges() && d.ana.CheckFeasibility(id, cand, true) {
			d.ntk.AddFanin(id, cand, true)
		} else {
			continue
		}
		d.markNewFanin(id, cand)
		i++
		break
	}
	return i
}

// multiAdd is singleAdd's batch form: it keeps adding qualifying candidates
// until nMax additions (0 means unbounded) or the candidate list is
// exhausted, returning the number added.
func (d *Driver) multiAdd(id network.NodeID, cands []network.NodeID, nMax int) int {
	d.markTfo(id)
	for _, fi := range d.ntk.Fanins(id) {
		d.marks[fi.Node] = true
	}
	defer func() {
		for _, fi := range d.ntk.Fanins(id) {
			d.marks[fi.Node] = false
		}
	}()

	added := 0
	for _, cand := range cands {
		if !d.ntk.IsInt(cand) && !d.ntk.IsPi(cand) {
			continue
		}
		if d.marks[cand] {
			continue
		}
		if d.ana.CheckFeasibility(id, cand, false) {
			d.ntk.AddFanin(id, cand, false)
		} else if d.ntk.UseComplementedEdges() && d.ana.CheckFeasibility(id, cand, true) {
			d.ntk.AddFanin(id, cand, true)
		} else {
			continue
		}
		d.markNewFanin(id, cand)
		added++
		if nMax > 0 && added == nMax {
			break
		}
	}
	return added
}

func (d *Driver) markNewFanin(id, fi network.NodeID) {
	set := d.newFanins[id]
	if set == nil {
		set = make(map[network.NodeID]bool)
		d.newFanins[id] = set
	}
	set[fi] = true
}

// trivialDecompose splits id's fanin list roughly in half via
// network.TrivialDecompose, a no-op when id has too few fanins to split.
func (d *Driver) trivialDecompose(id network.NodeID) {
	n := d.ntk.NumFanins(id)
	if n < 3 {
		return
	}
	k := n / 2
	if k < 2 {
		k = 2
	}
	_, _ = d.ntk.TrivialDecompose(id, k)
}

// SingleResub implements the source's SingleResub: for each internal node
// (reverse creation order), optionally TrivialCollapse, then repeatedly
// SingleAdd + GreedyReduce until no candidate qualifies, accepting the
// result only if greedy is false or the new cost does not regress (§4.7).
func (d *Driver) SingleResub(greedy bool, deadline rng.Deadline) {
	slot := -1
	if greedy {
		slot = d.ntk.Save()
	}
	cost := d.cost(d.ntk)

	ints := d.ntk.Ints()
	for i := len(ints) - 1; i >= 0; i-- {
		if deadline.Exceeded() {
			break
		}
		id := ints[i]
		if !d.ntk.IsInt(id) {
			continue
		}
		if d.ntk.NumFanouts(id) == 0 || d.ntk.NumFanins(id) <= 1 {
			continue
		}
		_ = d.ntk.TrivialCollapse(id)
		cands := d.candidates()

		pos := 0
		for {
			if deadline.Exceeded() {
				break
			}
			pos = d.singleAdd(id, cands, pos)
			if pos >= len(cands) {
				break
			}
			d.GreedyReduce(deadline)
			d.newFanins = make(map[network.NodeID]map[network.NodeID]bool)

			if !d.ntk.IsInt(id) {
				cost = d.cost(d.ntk)
				if greedy {
					_ = d.ntk.SaveAt(slot)
				}
				break
			}
			newCost := d.cost(d.ntk)
			if greedy {
				if newCost <= cost {
					_ = d.ntk.SaveAt(slot)
					cost = newCost
				} else {
					_ = d.ntk.Load(slot)
				}
			} else {
				cost = newCost
			}
		}
		if d.ntk.IsInt(id) {
			d.trivialDecompose(id)
		}
	}
	if greedy {
		_ = d.ntk.PopBack()
	}
}

// MultiResub implements the source's MultiResub: for each internal node,
// TrivialCollapse then MultiAdd up to nMax new fanins in one batch, reduce
// twice (once with the new edges exempt, dropping existing edges they made
// redundant, once more after newFanins is cleared so the just-added
// exemption no longer applies and redundant new edges go too), and accept/reject
// greedily (§4.7).
func (d *Driver) MultiResub(greedy bool, nMax int, deadline rng.Deadline) {
	slot := -1
	if greedy {
		slot = d.ntk.Save()
	}
	cost := d.cost(d.ntk)

	ints := d.ntk.Ints()
	for i := len(ints) - 1; i >= 0; i-- {
		if deadline.Exceeded() {
			break
		}
		id := ints[i]
		if !d.ntk.IsInt(id) {
			continue
		}
		if d.ntk.NumFanouts(id) == 0 || d.ntk.NumFanins(id) <= 1 {
			continue
		}
		_ = d.ntk.TrivialCollapse(id)
		cands := d.candidates()
		d.multiAdd(id, cands, nMax)
		d.GreedyReduce(deadline)
		d.newFanins = make(map[network.NodeID]map[network.NodeID]bool)
		d.GreedyReduce(deadline)

		newCost := d.cost(d.ntk)
		if greedy {
			if newCost <= cost {
				_ = d.ntk.SaveAt(slot)
				cost = newCost
			} else {
				_ = d.ntk.Load(slot)
			}
		}
		if d.ntk.IsInt(id) {
			d.trivialDecompose(id)
		}
	}
	if greedy {
		_ = d.ntk.PopBack()
	}
}
