package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/internal/testnet"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/scheduler"
)

// buildRedundant mirrors the optimizer package's scenario: u = a AND b;
// target = u AND b; PO = target. Its optimum cost is 1 (the single And u).
func buildRedundant() *network.Network {
	ntk, _ := buildRedundantWithTarget()
	return ntk
}

func buildRedundantWithTarget() (*network.Network, network.NodeID) {
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})
	return ntk, target
}

func TestRun_Flow0SingleThreadReducesCost(t *testing.T) {
	r := require.New(t)
	sched := scheduler.New()

	jobs := []scheduler.Job{{Ntk: buildRedundant(), Seed: 1}}
	results := sched.Run(scheduler.Flow0, jobs, rng.NewDeadline(time.Second))

	r.Len(results, 1)
	r.True(results[0].Improved)
	r.Equal(0, results[0].JobIndex)
}

func TestRun_DoesNotMutateCallersNetwork(t *testing.T) {
	r := require.New(t)
	sched := scheduler.New()

	orig, target := buildRedundantWithTarget()
	before := orig.NumFanins(target)

	jobs := []scheduler.Job{{Ntk: orig, Seed: 1}}
	_ = sched.Run(scheduler.Flow0, jobs, rng.NewDeadline(time.Second))

	r.Equal(before, orig.NumFanins(target), "Run must optimize a private clone, not the caller's network")
}

func TestRun_DeterministicMultiThreadPreservesJobOrder(t *testing.T) {
	r := require.New(t)
	sched := scheduler.New(scheduler.WithThreads(4), scheduler.WithDeterministic(true))

	const n = 8
	jobs := make([]scheduler.Job, n)
	for i := range jobs {
		jobs[i] = scheduler.Job{Ntk: buildRedundant(), Seed: int64(i)}
	}

	results := sched.Run(scheduler.Flow0, jobs, rng.NewDeadline(2*time.Second))
	r.Len(results, n)
	for i, res := range results {
		r.Equal(i, res.JobIndex)
		r.True(res.Improved)
	}
}

func TestRun_Flow3PartitioningOnLargerRandomNetworkStaysWellFormed(t *testing.T) {
	r := require.New(t)
	sched := scheduler.New(scheduler.WithParallelPartitions(3), scheduler.WithPartitionHops(2))

	jobs := make([]scheduler.Job, 4)
	for i := range jobs {
		ntk, err := testnet.RandomDAG(6, 40, 0.25, int64(i))
		r.NoError(err)
		jobs[i] = scheduler.Job{Ntk: ntk, Seed: int64(i)}
	}

	results := sched.Run(scheduler.Flow3, jobs, rng.NewDeadline(3*time.Second))
	r.Len(results, len(jobs))
	for i, res := range results {
		r.NotNil(res.Ntk, "job %d", i)
		for _, po := range res.Ntk.Pos() {
			fi, _, err := res.Ntk.GetFanin(po, 0)
			r.NoError(err)
			r.True(res.Ntk.Live(fi), "job %d: every PO must still be driven by a live node", i)
		}
	}
}

func TestRun_Flow3PartitioningReinsertsWindows(t *testing.T) {
	r := require.New(t)
	sched := scheduler.New(scheduler.WithParallelPartitions(2), scheduler.WithPartitionHops(1))

	jobs := []scheduler.Job{{Ntk: buildRedundant(), Seed: 1}}
	results := sched.Run(scheduler.Flow3, jobs, rng.NewDeadline(time.Second))

	r.Len(results, 1)
	r.NotNil(results[0].Ntk)
	// whatever the outcome, the resulting network must still have exactly
	// one PO driven by a live node.
	po := results[0].Ntk.Pos()[0]
	fi, _, err := results[0].Ntk.GetFanin(po, 0)
	r.NoError(err)
	r.True(results[0].Ntk.Live(fi))
}
