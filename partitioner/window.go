package partitioner

import "github.com/katalvlaran/rrrsub/network"

// CycleStrategy selects how Extract avoids introducing a combinational
// cycle when a window is later re-inserted as a black box (§4.8).
type CycleStrategy int

const (
	// StrategyPullIn grows the window, pulling in any external node that
	// would otherwise let a window output's fanout reach back to a window
	// input, iterating to a fixpoint.
	StrategyPullIn CycleStrategy = iota
	// StrategyDropOutputs shrinks the window instead, dropping any output
	// whose fanout can reach a window input (and that output's
	// window-internal-only fanin cone), iterating to a fixpoint.
	StrategyDropOutputs
)

// Window is a standalone sub-network extracted from a larger one, together
// with the PI/PO correspondence needed to wire it back in.
type Window struct {
	ntk *network.Network

	// inputs[i] is the original network's node id corresponding to the
	// window's i-th PrimaryInput.
	inputs []network.NodeID
	// outputs[j] is the original network's node id corresponding to the
	// window's j-th PrimaryOutput (the node that drove it before
	// extraction).
	outputs []network.NodeID

	// core is the set of original-network node ids that were pulled into
	// the window's internal logic. Insert uses it to tell an output's
	// external consumers (which must be redirected to the rebuilt logic)
	// apart from consumers that were themselves part of the old window
	// (which die along with the rest of the old core on Sweep).
	core map[network.NodeID]bool
}

// Network returns the standalone sub-network, suitable for handing to an
// optimizer.Driver.
func (w *Window) Network() *network.Network { return w.ntk }

// Inputs returns the original-network node ids corresponding to the
// window's PrimaryInputs, in PI-index order.
func (w *Window) Inputs() []network.NodeID { return w.inputs }

// Outputs returns the original-network node ids corresponding to the
// window's PrimaryOutputs, in PO-index order.
func (w *Window) Outputs() []network.NodeID { return w.outputs }

// Nodes returns the original-network node ids the window pulled into its
// core, in no particular order. Callers extracting multiple windows from
// the same network concurrently (scheduler's Flow3) use this to detect and
// reject overlapping in-flight windows before committing to Insert.
func (w *Window) Nodes() []network.NodeID {
	out := make([]network.NodeID, 0, len(w.core))
	for id := range w.core {
		out = append(out, id)
	}
	return out
}
