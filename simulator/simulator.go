package simulator

import (
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/pattern"
	"github.com/rs/zerolog"
)

// Simulator mirrors a network.Network's logic values across a fixed set of
// input patterns, kept coherent via an Action subscription (§4.3).
type Simulator struct {
	ntk    *network.Network
	cbH    network.CallbackHandle
	words  int
	values [][]uint64 // indexed by NodeID

	stale   map[network.NodeID]bool // sUpdates: cones needing a TFO resim
	fUpdate network.NodeID          // node needing a single-node resim, NoNode if none

	target network.NodeID // current CheckRedundancy/CheckFeasibility subject

	pats *pattern.Store

	locked []*lockSet // per-PI, which pattern slots a counter-example has fused
	pivot  uint       // round-robin eviction cursor when no compatible slot exists

	log zerolog.Logger
}

// Option configures a Simulator at construction time.
type Option func(*Simulator)

// WithVerbosity sets the structured-logging verbosity (CLI -S per §6).
func WithVerbosity(level int) Option {
	return func(s *Simulator) { s.log = xlog.WithComponent("simulator", level) }
}

// New allocates a Simulator over pats (the stimulus/reference-output store);
// its word count is taken as pats.NumPatterns()/64.
func New(pats *pattern.Store, opts ...Option) *Simulator {
	s := &Simulator{
		words:   int(pats.NumPatterns() / 64),
		pats:    pats,
		stale:   make(map[network.NodeID]bool),
		fUpdate: network.NoNode,
		target:  network.NoNode,
		log:     xlog.WithComponent("simulator", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssignNetwork subscribes the Simulator to ntk's Action bus. If reuse is
// false, all prior state (values, dirty sets, target) is discarded and the
// whole network is scheduled for a from-scratch simulation.
func (s *Simulator) AssignNetwork(ntk *network.Network, reuse bool) {
	if s.ntk != nil {
		s.ntk.DeleteCallback(s.cbH)
	}
	s.ntk = ntk
	s.cbH = ntk.AddCallback(s.onAction)
	if !reuse {
		s.values = nil
		s.stale = make(map[network.NodeID]bool)
		s.fUpdate = network.NoNode
		s.target = network.NoNode
	}
	s.growValues()
	for id := 0; id < ntk.NumNodes(); id++ {
		nid := network.NodeID(id)
		if ntk.Live(nid) {
			s.stale[nid] = true
		}
	}
}

func (s *Simulator) growValues() {
	n := s.ntk.NumNodes()
	for len(s.values) < n {
		s.values = append(s.values, make([]uint64, s.words))
	}
}

// onAction reacts to every broadcast Action, marking the minimum set of
// nodes that need re-simulation (§4.3 Incremental update).
func (s *Simulator) onAction(a network.Action) {
	s.growValues()
	switch a.Kind {
	case network.ActionAddFanin, network.ActionSortFanins:
		s.stale[a.ID] = true
	case network.ActionRemoveFanin:
		s.fUpdate = a.ID
	case network.ActionRemoveBuffer, network.ActionRemoveConst:
		for _, fo := range a.Fanouts {
			s.stale[fo.Consumer] = true
		}
		if s.target == a.ID {
			s.target = network.NoNode
		}
	case network.ActionTrivialCollapse, network.ActionTrivialDecompose:
		s.stale[a.ID] = true
	case network.ActionRemoveUnused:
		// dead code; nothing downstream can observe its value changing.
	case network.ActionLoad, network.ActionPopBack:
		s.target = network.NoNode
		for id := 0; id < s.ntk.NumNodes(); id++ {
			nid := network.NodeID(id)
			if s.ntk.Live(nid) {
				s.stale[nid] = true
			}
		}
	}
}

// SetTarget marks id as the current redundancy/feasibility subject. Ingest
// marks it stale after fusing a counter-example; a LOAD, a POP_BACK or the
// target's removal as a buffer or constant clears it. CareSet takes its
// target as an argument and does not read it.
func (s *Simulator) SetTarget(id network.NodeID) { s.target = id }
