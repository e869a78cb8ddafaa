package optimizer

import (
	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/network"
)

// Exhaustive runs the stack-based exhaustive search variant of §4.7: at
// each level it tries, in order, every (target, candidate) fanin addition
// that tests feasible; a successful addition recurses one level deeper
// looking for a further improvement. A single "best" checkpoint slot is
// saved once up front and kept current with SaveAt on every improving
// trial (mirroring SingleResub/MultiResub's greedy accept and
// scheduler.runFlow2's best-tracking loop); a trial that does not improve
// on the best seen so far is reverted via Load rather than discarded via
// PopBack, so the network always holds the best state found by the time a
// level returns. targetChoices/faninChoices record which index was tried
// at each level and vvActions mirrors the same stack with the Action log
// produced by that level's trial; each level pops its entries again before
// it returns, so the stacks are empty once Exhaustive returns. The search ends when every
// top-level (target, candidate) pair has been exhausted, at which point
// Exhaustive commits the best checkpoint into the network and pops it.
func (d *Driver) Exhaustive(deadline rng.Deadline) {
	d.targetChoices = nil
	d.faninChoices = nil
	d.vvActions = nil
	best := d.ntk.Save()
	bestCost := d.cost(d.ntk)
	d.exhaustiveLevel(deadline, best, &bestCost)
	_ = d.ntk.Load(best)
	_ = d.ntk.PopBack()
}

func (d *Driver) exhaustiveLevel(deadline rng.Deadline, best int, bestCost *float64) {
	targets := d.ntk.Ints()
	cands := d.candidates()

	for tIdx := 0; tIdx < len(targets); tIdx++ {
		target := targets[tIdx]
		if !d.ntk.IsInt(target) || d.ntk.NumFanouts(target) == 0 {
			continue
		}
		d.markTfo(target)

		for fIdx := 0; fIdx < len(cands); fIdx++ {
			if deadline.Exceeded() {
				return
			}
			cand := cands[fIdx]
			if !d.ntk.IsInt(cand) && !d.ntk.IsPi(cand) {
				continue
			}
			if d.marks[cand] {
				continue
			}

			complement := false
			feasible := d.ana.CheckFeasibility(target, cand, false)
			if !feasible && d.ntk.UseComplementedEdges() {
				feasible = d.ana.CheckFeasibility(target, cand, true)
				complement = true
			}
			if !feasible {
				continue
			}

			d.targetChoices = append(d.targetChoices, tIdx)
			d.faninChoices = append(d.faninChoices, fIdx)

			var trial []network.Action
			h := d.ntk.AddCallback(func(a network.Action) { trial = append(trial, a) })
			d.ntk.AddFanin(target, cand, complement)
			d.GreedyReduce(deadline)
			d.ntk.DeleteCallback(h)
			d.vvActions = append(d.vvActions, trial)

			newCost := d.cost(d.ntk)
			if newCost < *bestCost {
				*bestCost = newCost
				_ = d.ntk.SaveAt(best)
				d.exhaustiveLevel(deadline, best, bestCost)
			} else {
				_ = d.ntk.Load(best)
			}

			d.targetChoices = d.targetChoices[:len(d.targetChoices)-1]
			d.faninChoices = d.faninChoices[:len(d.faninChoices)-1]
			d.vvActions = d.vvActions[:len(d.vvActions)-1]
		}
	}
}
