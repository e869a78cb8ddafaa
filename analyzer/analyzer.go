package analyzer

import "github.com/katalvlaran/rrrsub/network"

// Analyzer is the common contract satisfied by simulator.Simulator,
// bdd.Analyzer, sat.Analyzer, and Combinator (§4.3/§4.4/§4.5/§4.6).
type Analyzer interface {
	AssignNetwork(ntk *network.Network, reuse bool)
	CheckRedundancy(id network.NodeID, idx int) bool
	CheckFeasibility(id, fi network.NodeID, c bool) bool
}

// Kind names the four Analyzer choices. cmd/ssr does not use Kind: it
// selects through its -a/-b booleans, with the Combinator as the default,
// and no CLI flag selects the simulator alone.
type Kind int

const (
	// KindSimulator uses bit-parallel pattern simulation alone.
	KindSimulator Kind = iota
	// KindBDD uses the exact BDD-based CSPF analyzer alone (-a).
	KindBDD
	// KindSAT uses the exact SAT miter analyzer alone (-b).
	KindSAT
	// KindCombined layers simulator-first, SAT-confirm (Combinator).
	KindCombined
)

func (k Kind) String() string {
	switch k {
	case KindSimulator:
		return "simulator"
	case KindBDD:
		return "bdd"
	case KindSAT:
		return "sat"
	case KindCombined:
		return "combined"
	default:
		return "unknown"
	}
}
