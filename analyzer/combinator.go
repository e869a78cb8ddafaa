package analyzer

import (
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/rs/zerolog"
)

// ceSource is satisfied by sat.Analyzer: exposes the counter-example
// extracted from the most recent SAT-confirmed refutation.
type ceSource interface {
	LastCounterExample() map[int]bool
}

// ceSink is satisfied by simulator.Simulator: accepts a counter-example for
// fusion into the pattern store (§4.3).
type ceSink interface {
	Ingest(assignment map[int]bool) error
}

// Combinator implements the §4.6 simulator-first / SAT-confirm strategy:
// the cheap bit-parallel simulator is queried first; a "not redundant"
// ("not feasible") verdict is sound over the sampled patterns and trusted
// immediately, but a "redundant" ("feasible") verdict is only sampled-
// consistent, not exhaustive, so it is confirmed with the exact SAT
// analyzer. A SAT refutation is fed back into the simulator's pattern store
// as a fresh counter-example, sharpening future sampled tests.
type Combinator struct {
	sim     Analyzer
	confirm Analyzer

	log zerolog.Logger
}

// Option configures a Combinator at construction time.
type Option func(*Combinator)

// WithVerbosity sets the structured-logging verbosity (CLI -Q per §6).
func WithVerbosity(level int) Option {
	return func(c *Combinator) { c.log = xlog.WithComponent("analyzer", level) }
}

// NewCombinator builds a Combinator from a cheap sampled analyzer (normally
// *simulator.Simulator) and an exact confirming analyzer (normally
// *sat.Analyzer).
func NewCombinator(sim, confirm Analyzer, opts ...Option) *Combinator {
	c := &Combinator{sim: sim, confirm: confirm, log: xlog.WithComponent("analyzer", 0)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AssignNetwork delegates to both underlying analyzers.
func (c *Combinator) AssignNetwork(ntk *network.Network, reuse bool) {
	c.sim.AssignNetwork(ntk, reuse)
	c.confirm.AssignNetwork(ntk, reuse)
}

// CheckRedundancy reports whether the fanin at position idx of And node id
// can be removed without changing any PrimaryOutput.
func (c *Combinator) CheckRedundancy(id network.NodeID, idx int) bool {
	if !c.sim.CheckRedundancy(id, idx) {
		return false // sampled refutation is sound: trust it, skip SAT.
	}
	if c.confirm.CheckRedundancy(id, idx) {
		return true
	}
	c.feedCounterExample()
	return false
}

// CheckFeasibility reports whether a new fanin (fi, c) can be added to And
// node id while preserving PrimaryOutput functionality.
func (c *Combinator) CheckFeasibility(id, fi network.NodeID, complement bool) bool {
	if !c.sim.CheckFeasibility(id, fi, complement) {
		return false
	}
	if c.confirm.CheckFeasibility(id, fi, complement) {
		return true
	}
	c.feedCounterExample()
	return false
}

func (c *Combinator) feedCounterExample() {
	src, ok := c.confirm.(ceSource)
	if !ok {
		return
	}
	ce := src.LastCounterExample()
	if ce == nil {
		return
	}
	sink, ok := c.sim.(ceSink)
	if !ok {
		return
	}
	if err := sink.Ingest(ce); err != nil {
		c.log.Warn().Err(err).Msg("failed to fuse SAT counter-example into simulator")
	}
}

var _ Analyzer = (*Combinator)(nil)
