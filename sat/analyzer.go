package sat

import (
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
	"github.com/rs/zerolog"
)

// Analyzer implements the miter-based redundancy/feasibility tests of §4.5:
// encode the network once ("copy A"), then for the node under test encode a
// second, locally-modified recomputation of just its transitive fanout
// ("copy B"), and assert that some paired PrimaryOutput differs. UNSAT means
// no PI assignment can tell the two copies apart, i.e. the candidate
// mutation is safe.
type Analyzer struct {
	ntk *network.Network
	cbH network.CallbackHandle

	newSolver func() Solver

	target        network.NodeID
	lastOutcome   Outcome
	lastCounterEx map[int]bool

	conflictLimit int

	log zerolog.Logger
}

// Option configures an Analyzer at construction time.
type Option func(*Analyzer)

// WithConflictLimit sets the per-query conflict budget passed to Solve
// (CLI -C per §6); 0 means unbounded.
func WithConflictLimit(n int) Option {
	return func(a *Analyzer) { a.conflictLimit = n }
}

// WithVerbosity sets the structured-logging verbosity (CLI -Q per §6).
func WithVerbosity(level int) Option {
	return func(a *Analyzer) { a.log = xlog.WithComponent("sat", level) }
}

// WithSolverFactory overrides the Solver implementation used per query.
// Defaults to a fresh *DPLL per call, since the reference solver has no
// incremental clause-retraction API and each query encodes a different
// miter.
func WithSolverFactory(f func() Solver) Option {
	return func(a *Analyzer) { a.newSolver = f }
}

// New allocates an Analyzer. It holds no network until AssignNetwork.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		target:      network.NoNode,
		newSolver:   func() Solver { return NewDPLL() },
		lastOutcome: Undef,
		log:         xlog.WithComponent("sat", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssignNetwork subscribes to ntk's Action bus (§4.5 Reset rules). Since
// every query re-encodes the miter from scratch, the only state an Action
// needs to reset is the current target and any stale counter-example.
func (a *Analyzer) AssignNetwork(ntk *network.Network, reuse bool) {
	if a.ntk != nil {
		a.ntk.DeleteCallback(a.cbH)
	}
	a.ntk = ntk
	a.cbH = ntk.AddCallback(a.onAction)
	if !reuse {
		a.target = network.NoNode
		a.lastCounterEx = nil
	}
}

func (a *Analyzer) onAction(act network.Action) {
	switch act.Kind {
	case network.ActionRemoveFanin, network.ActionAddFanin:
		if act.ID != a.target {
			// lazy re-encode: nothing cached to invalidate under this
			// implementation's "rebuild miter every query" design.
		}
	case network.ActionRemoveBuffer, network.ActionRemoveConst, network.ActionLoad, network.ActionPopBack:
		if act.ID == a.target || act.Kind == network.ActionLoad || act.Kind == network.ActionPopBack {
			a.target = network.NoNode
		}
	}
}

// LastOutcome returns the three-valued result (Sat/Unsat/Undef) of the most
// recent CheckRedundancy/CheckFeasibility call.
func (a *Analyzer) LastOutcome() Outcome { return a.lastOutcome }

// LastCounterExample returns the PrimaryInput-index -> value assignment
// extracted from the most recent Sat outcome, or nil. It holds every
// PrimaryInput's value from the solver model; it is not narrowed to a
// partial cube.
func (a *Analyzer) LastCounterExample() map[int]bool { return a.lastCounterEx }

// CheckRedundancy reports whether the fanin at position idx of And node id
// can be removed without changing any PrimaryOutput (§4.5).
func (a *Analyzer) CheckRedundancy(id network.NodeID, idx int) bool {
	a.target = id
	fanins := a.ntk.Fanins(id)
	if idx < 0 || idx >= len(fanins) {
		return false
	}
	ins := make([]network.Fanin, 0, len(fanins)-1)
	for j, fi := range fanins {
		if j == idx {
			continue
		}
		ins = append(ins, fi)
	}
	return a.checkMiterFanins(id, ins)
}

// CheckFeasibility reports whether a new fanin (fi, c) can be added to And
// node id while preserving PrimaryOutput functionality (§4.5).
func (a *Analyzer) CheckFeasibility(id, fi network.NodeID, c bool) bool {
	a.target = id
	fanins := a.ntk.Fanins(id)
	ins := make([]network.Fanin, 0, len(fanins)+1)
	ins = append(ins, fanins...)
	ins = append(ins, network.Fanin{Node: fi, Complement: c})
	return a.checkMiterFanins(id, ins)
}

// checkMiterFanins encodes copy A, then a copy-B recomputation of id (driven
// by ins instead of id's real fanins) propagated through id's transitive
// fanout, and solves the miter (§4.5).
func (a *Analyzer) checkMiterFanins(id network.NodeID, ins []network.Fanin) bool {
	order, err := traverse.TopologicalOrder(a.ntk)
	if err != nil {
		a.lastOutcome = Undef
		return false
	}
	solver := a.newSolver()

	varA := make(map[network.NodeID]int, len(order))
	for _, nid := range order {
		varA[nid] = solver.NewVar()
	}
	edgeLitA := func(fi network.Fanin) Lit {
		l := Lit{Var: varA[fi.Node]}
		if fi.Complement {
			l = l.Not()
		}
		return l
	}
	for _, nid := range order {
		a.encodeGate(solver, nid, varA[nid], edgeLitA)
	}

	tfo := a.tfoSet(id)

	varB := make(map[network.NodeID]int, len(tfo))
	varB[id] = solver.NewVar()
	litIns := make([]Lit, len(ins))
	for i, fi := range ins {
		litIns[i] = edgeLitA(fi)
	}
	solver.AddAnd(varB[id], litIns)

	litOf := func(nid network.NodeID) func(network.Fanin) Lit {
		return func(fi network.Fanin) Lit {
			var base int
			if v, ok := varB[fi.Node]; ok {
				base = v
			} else {
				base = varA[fi.Node]
			}
			l := Lit{Var: base}
			if fi.Complement {
				l = l.Not()
			}
			return l
		}
	}
	for _, nid := range order {
		if nid == id || !tfo[nid] {
			continue
		}
		varB[nid] = solver.NewVar()
		a.encodeGate(solver, nid, varB[nid], litOf(nid))
	}

	var xorVars []int
	for _, po := range a.ntk.Pos() {
		if !tfo[po] {
			continue
		}
		xv := solver.NewVar()
		solver.AddXor(xv, Lit{Var: varA[po]}, Lit{Var: varB[po]})
		xorVars = append(xorVars, xv)
	}

	if len(xorVars) == 0 {
		// Target has no downstream effect: trivial UNSAT (§4.5).
		a.lastOutcome = Unsat
		a.lastCounterEx = nil
		return true
	}

	negOr := solver.NewVar()
	negIns := make([]Lit, len(xorVars))
	for i, xv := range xorVars {
		negIns[i] = Lit{Var: xv, Neg: true}
	}
	solver.AddAnd(negOr, negIns)

	outcome, model := solver.Solve([]Lit{{Var: negOr, Neg: true}}, a.conflictLimit)
	a.lastOutcome = outcome
	switch outcome {
	case Unsat:
		a.lastCounterEx = nil
		return true
	case Sat:
		a.lastCounterEx = a.extractCounterExample(varA, model)
		return false
	default: // Undef: cannot confirm, refuse the candidate move (§7).
		a.lastCounterEx = nil
		return false
	}
}

func (a *Analyzer) encodeGate(solver Solver, id network.NodeID, v int, edgeLit func(network.Fanin) Lit) {
	typ, err := a.ntk.GetNodeType(id)
	if err != nil {
		return
	}
	switch typ {
	case network.KindConstant:
		solver.AddConst(v, false)
	case network.KindPrimaryInput:
		// free variable: no clauses.
	case network.KindAnd:
		fanins := a.ntk.Fanins(id)
		ins := make([]Lit, len(fanins))
		for i, fi := range fanins {
			ins[i] = edgeLit(fi)
		}
		solver.AddAnd(v, ins)
	case network.KindPrimaryOutput:
		fanins := a.ntk.Fanins(id)
		solver.AddBuffer(v, edgeLit(fanins[0]))
	}
}

func (a *Analyzer) tfoSet(root network.NodeID) map[network.NodeID]bool {
	visited := map[network.NodeID]bool{root: true}
	queue := []network.NodeID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, fo := range a.ntk.Fanouts(id) {
			if !visited[fo.Consumer] {
				visited[fo.Consumer] = true
				queue = append(queue, fo.Consumer)
			}
		}
	}
	return visited
}

func (a *Analyzer) extractCounterExample(varA map[network.NodeID]int, model []bool) map[int]bool {
	out := make(map[int]bool, len(a.ntk.Pis()))
	for i, pi := range a.ntk.Pis() {
		v := varA[pi]
		if v < len(model) {
			out[i] = model[v]
		}
	}
	return out
}
