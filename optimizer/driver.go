package optimizer

import (
	"github.com/katalvlaran/rrrsub/analyzer"
	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/rs/zerolog"
)

// Flow selects which optimizer passes Run executes, mirroring the CLI's -X
// values (§4.7, §6).
type Flow int

const (
	// FlowReduceOnly runs GreedyReduce to a fixpoint.
	FlowReduceOnly Flow = iota
	// FlowResubOnly runs SingleResub then MultiResub (each greedy).
	FlowResubOnly
	// FlowReduceThenResub runs GreedyReduce, then SingleResub, then MultiResub
	// — the default entry-point sequence (original's Optimizer::Run).
	FlowReduceThenResub
	// FlowExhaustive runs the stack-based exhaustive search instead of the
	// greedy passes.
	FlowExhaustive
)

// Driver owns a network and an Analyzer and implements the optimizer passes
// of §4.7 on top of them.
type Driver struct {
	ntk *network.Network
	ana analyzer.Analyzer
	cbH network.CallbackHandle

	cost CostFunc
	rnd  *rng.Source

	// target/marks realize the source's MarkTfo memoization: vMarks stays
	// valid as long as target is unchanged.
	target network.NodeID
	marks  map[network.NodeID]bool

	// newFanins mirrors mapNewFanins: per-node set of fanins added during
	// the current resubstitution pass, exempted from immediate removal by
	// ReduceFanin.
	newFanins map[network.NodeID]map[network.NodeID]bool

	// Exhaustive search state (§4.7): targetChoices/faninChoices are the
	// two index stacks ("which node to add a new fanin to" / "which
	// candidate to add"), vvActions mirrors them one-for-one with the
	// Action log recorded during that level's trial.
	targetChoices []int
	faninChoices  []int
	vvActions     [][]network.Action

	log zerolog.Logger
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithCostFunc overrides the acceptance metric (default DefaultCost).
func WithCostFunc(f CostFunc) Option {
	return func(d *Driver) { d.cost = f }
}

// WithSeed seeds the Driver's randomness (CLI -R per §6). The seeded
// generator is stored on the Driver, but no pass in this package draws from
// it: GreedyReduce, SingleResub, MultiResub and Exhaustive are all
// deterministic.
func WithSeed(seed int64) Option {
	return func(d *Driver) { d.rnd = rng.New(seed) }
}

// WithVerbosity sets the structured-logging verbosity (CLI -O per §6).
func WithVerbosity(level int) Option {
	return func(d *Driver) { d.log = xlog.WithComponent("optimizer", level) }
}

// New builds a Driver over ntk using ana for redundancy/feasibility queries.
func New(ntk *network.Network, ana analyzer.Analyzer, opts ...Option) *Driver {
	d := &Driver{
		ntk:       ntk,
		ana:       ana,
		cost:      DefaultCost,
		rnd:       rng.New(1),
		target:    network.NoNode,
		newFanins: make(map[network.NodeID]map[network.NodeID]bool),
		log:       xlog.WithComponent("optimizer", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cbH = ntk.AddCallback(d.onAction)
	ana.AssignNetwork(ntk, false)
	return d
}

func (d *Driver) onAction(act network.Action) {
	switch act.Kind {
	case network.ActionRemoveFanin, network.ActionAddFanin:
		if act.ID != d.target {
			d.target = network.NoNode
		}
	case network.ActionRemoveBuffer, network.ActionRemoveConst:
		if act.ID == d.target {
			d.target = network.NoNode
		}
	case network.ActionTrivialDecompose:
		d.target = network.NoNode
	}
}

// markTfo memoizes id's transitive fanout (including id itself) into
// d.marks, recomputing only when the target changed since the last call.
func (d *Driver) markTfo(id network.NodeID) {
	if id == d.target {
		return
	}
	d.target = id
	d.marks = make(map[network.NodeID]bool, d.ntk.NumNodes())
	d.marks[id] = true
	var stack []network.NodeID
	stack = append(stack, id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, fo := range d.ntk.Fanouts(cur) {
			if !d.marks[fo.Consumer] {
				d.marks[fo.Consumer] = true
				stack = append(stack, fo.Consumer)
			}
		}
	}
}

// Run dispatches to the pass sequence named by flow, stopping early (with
// whatever improvement has been made so far) once deadline expires (§5
// Cancellation: soft only).
func (d *Driver) Run(flow Flow, deadline rng.Deadline) {
	switch flow {
	case FlowReduceOnly:
		d.GreedyReduce(deadline)
	case FlowResubOnly:
		d.SingleResub(true, deadline)
		d.MultiResub(true, 0, deadline)
	case FlowReduceThenResub:
		d.GreedyReduce(deadline)
		d.SingleResub(true, deadline)
		d.MultiResub(true, 0, deadline)
	case FlowExhaustive:
		d.Exhaustive(deadline)
	}
}

// Cost reports the current network's cost under the Driver's CostFunc.
func (d *Driver) Cost() float64 { return d.cost(d.ntk) }
