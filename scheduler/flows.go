package scheduler

import (
	"sync"

	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/optimizer"
	"github.com/katalvlaran/rrrsub/partitioner"
)

// runFlow0 runs the optimizer's default pass sequence once (§4.9 Flow 0).
func (s *Scheduler) runFlow0(drv *optimizer.Driver, deadline rng.Deadline) {
	drv.Run(optimizer.FlowReduceThenResub, deadline)
}

// maxTransStochHops bounds Flow1's post-fixpoint restructuring hop.
const maxTransStochHops = 4

// runFlow1 implements TransStoch (§4.9 Flow 1): alternate optimizer passes
// with a modeled ABC-compress step until a round makes no further
// improvement, then take up to maxTransStochHops bounded restructuring hops.
func (s *Scheduler) runFlow1(ntk *network.Network, drv *optimizer.Driver, deadline rng.Deadline) {
	prev := drv.Cost()
	for !deadline.Exceeded() {
		drv.Run(optimizer.FlowReduceThenResub, deadline)
		cur := compressStep(ntk, s.cost)
		if cur >= prev {
			break
		}
		prev = cur
	}
	for hop := 0; hop < maxTransStochHops && !deadline.Exceeded(); hop++ {
		before := compressStep(ntk, s.cost)
		drv.Run(optimizer.FlowReduceOnly, deadline)
		if s.cost(ntk) >= before {
			break
		}
	}
}

// deepSynRounds is the number of optimizer+compress rounds DeepSyn runs
// after each randomly composed restructuring sequence.
const deepSynRounds = 3

// runFlow2 implements DeepSyn (§4.9 Flow 2): each iteration randomly
// composes 1-4 restructuring passes, then runs deepSynRounds rounds of
// optimizer+compress, keeping the best network seen via a checkpoint.
func (s *Scheduler) runFlow2(ntk *network.Network, drv *optimizer.Driver, seed int64, deadline rng.Deadline) {
	rnd := rng.New(seed)
	best := ntk.Save()
	bestCost := s.cost(ntk)

	restructureKinds := []restructureKind{restructureDCH, restructureIF, restructureMFS, restructureFX}
	for !deadline.Exceeded() {
		n := 1 + rnd.Intn(4)
		for i := 0; i < n && !deadline.Exceeded(); i++ {
			kind := restructureKinds[rnd.Intn(len(restructureKinds))]
			s.log.Debug().Str("pass", kind.String()).Msg("deepsyn restructuring pass")
			namedCompressStep(ntk, s.cost, kind)
		}
		for r := 0; r < deepSynRounds && !deadline.Exceeded(); r++ {
			drv.Run(optimizer.FlowReduceThenResub, deadline)
			compressStep(ntk, s.cost)
		}

		cur := s.cost(ntk)
		if cur < bestCost {
			bestCost = cur
			_ = ntk.SaveAt(best)
		} else if deadline.Exceeded() {
			break
		} else {
			_ = ntk.Load(best)
		}
	}
	_ = ntk.Load(best)
	_ = ntk.PopBack()
}

// runFlow3 is the partitioning-mode driver (§4.9 last bullet, §4.8): while
// extractable And nodes remain, pull a window, hand it to its own private
// optimizer, and reinsert, bounded to nParallelPartitions windows in flight
// at once. Extract/Insert touch the shared network and are mutex-guarded;
// each window's optimizer pass runs on a private sub-network copy and needs
// no lock. claimed records every node id owned by any window extracted so
// far (claims are not released after Insert) so two concurrently extracted
// windows can never overlap — without
// it, a second extraction racing between a first window's Extract and
// Insert could claim nodes the first window is about to sweep away. Per
// Run's doc comment, this flow's job-level draining is forced
// non-deterministic regardless of WithDeterministic — that forcing lives in
// Run, not here.
func (s *Scheduler) runFlow3(ntk *network.Network, seed int64, deadline rng.Deadline) {
	var mu sync.Mutex
	claimed := make(map[network.NodeID]bool)
	sem := make(chan struct{}, max(1, s.nParallelPartitions))
	var wg sync.WaitGroup

	mu.Lock()
	seeds := append([]network.NodeID(nil), ntk.Ints()...)
	mu.Unlock()

	for _, id := range seeds {
		if deadline.Exceeded() {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(seedNode network.NodeID) {
			defer wg.Done()
			defer func() { <-sem }()
			s.runOneWindow(&mu, claimed, ntk, seedNode, seed, deadline)
		}(id)
	}
	wg.Wait()
}

func (s *Scheduler) runOneWindow(mu *sync.Mutex, claimed map[network.NodeID]bool, ntk *network.Network, seedNode network.NodeID, seed int64, deadline rng.Deadline) {
	mu.Lock()
	if claimed[seedNode] {
		mu.Unlock()
		return
	}
	win, err := partitioner.Extract(ntk, seedNode, s.partitionHops, partitioner.StrategyPullIn)
	if err != nil {
		mu.Unlock()
		return
	}
	nodes := win.Nodes()
	for _, id := range nodes {
		if claimed[id] {
			mu.Unlock()
			return // overlaps a window already claimed; skip this round
		}
	}
	for _, id := range nodes {
		claimed[id] = true
	}
	mu.Unlock()

	subAna := s.newAnalyzer(win.Network(), seed)
	subDrv := optimizer.New(win.Network(), subAna, optimizer.WithCostFunc(s.cost), optimizer.WithSeed(seed))
	subDrv.Run(optimizer.FlowReduceThenResub, deadline)

	mu.Lock()
	defer mu.Unlock()
	if err := win.Insert(ntk); err != nil {
		s.log.Warn().Err(err).Msg("window re-insertion failed")
		return
	}
	compressStep(ntk, s.cost)
}
