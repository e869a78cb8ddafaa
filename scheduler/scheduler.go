package scheduler

import (
	"container/heap"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rrrsub/analyzer"
	"github.com/katalvlaran/rrrsub/internal/rng"
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/optimizer"
	"github.com/katalvlaran/rrrsub/pattern"
	"github.com/katalvlaran/rrrsub/simulator"
)

// Flow selects which scheduler-level strategy Run executes per job,
// mirroring the CLI's -Y values (§4.9, §6).
type Flow int

const (
	// Flow0 runs the optimizer once per job.
	Flow0 Flow = iota
	// Flow1 is TransStoch: optimizer/compress alternation to a fixpoint,
	// then a bounded restructuring hop.
	Flow1
	// Flow2 is DeepSyn: randomly composed restructuring passes plus
	// repeated optimizer/compress rounds, tracking the best result seen.
	Flow2
	// Flow3 is the partitioning-mode driver (§4.8/§4.9).
	Flow3
)

// Job is one unit of scheduler work: a network to optimize and the seed its
// stochastic passes (Flow2's pass composition) and its analyzers use.
type Job struct {
	Ntk  *network.Network
	Seed int64
}

// Result is the outcome of running a Flow over one Job. Ntk is the job's
// private, possibly-optimized network clone; Improved reports whether its
// cost dropped below the pre-optimization baseline (§4.9 "Acceptance").
type Result struct {
	JobIndex int
	Ntk      *network.Network
	Cost     float64
	Improved bool
}

// AnalyzerFactory builds the Analyzer a job's optimizer pass should use,
// sized to the job's own network and seeded for reproducibility (§8
// scenario 6).
type AnalyzerFactory func(ntk *network.Network, seed int64) analyzer.Analyzer

func defaultAnalyzerFactory(ntk *network.Network, seed int64) analyzer.Analyzer {
	pats := pattern.NewRandom(ntk.NumPis(), 4, seed)
	return simulator.New(pats)
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithThreads sets the worker pool size (CLI -J). n<=1 runs every job
// inline on the calling goroutine.
func WithThreads(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.threads = n
		}
	}
}

// WithDeterministic requests job-index-ordered result delivery in
// multi-threaded mode (§5 Ordering guarantees). See Run's doc comment for
// the one case (Flow3) where this is not honored.
func WithDeterministic(det bool) Option {
	return func(s *Scheduler) { s.deterministic = det }
}

// WithCostFunc overrides the acceptance metric every job's optimizer uses
// (default optimizer.DefaultCost).
func WithCostFunc(f optimizer.CostFunc) Option {
	return func(s *Scheduler) { s.cost = f }
}

// WithAnalyzerFactory overrides how each job builds its private Analyzer
// (default: a simulator.Simulator over a fresh random pattern store).
func WithAnalyzerFactory(f AnalyzerFactory) Option {
	return func(s *Scheduler) { s.newAnalyzer = f }
}

// WithPartitionHops sets Flow3's window radius (CLI -K).
func WithPartitionHops(hops int) Option {
	return func(s *Scheduler) { s.partitionHops = hops }
}

// WithParallelPartitions bounds how many windows Flow3 may have extracted
// and mid-optimization at once (CLI -B).
func WithParallelPartitions(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.nParallelPartitions = n
		}
	}
}

// WithVerbosity sets the scheduler's structured-logging verbosity.
func WithVerbosity(level int) Option {
	return func(s *Scheduler) { s.log = xlog.WithComponent("scheduler", level) }
}

// Scheduler fans Jobs out across a worker pool and runs one of the four
// Flows over each (§4.9).
type Scheduler struct {
	threads             int
	deterministic       bool
	cost                optimizer.CostFunc
	newAnalyzer         AnalyzerFactory
	partitionHops       int
	nParallelPartitions int
	log                 zerolog.Logger
}

// New builds a Scheduler; by default single-threaded, non-deterministic
// (moot with one thread), using optimizer.DefaultCost and
// defaultAnalyzerFactory.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		threads:             1,
		cost:                optimizer.DefaultCost,
		newAnalyzer:         defaultAnalyzerFactory,
		partitionHops:       2,
		nParallelPartitions: 1,
		log:                 xlog.WithComponent("scheduler", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes flow over every job and returns one Result per job, indexed
// by the job's position in jobs. In multi-threaded mode with
// WithDeterministic(true), results are still delivered to the caller in
// job-index order regardless of completion order (§5) — except under Flow3,
// whose partitioning path forces non-deterministic draining internally even
// though the original documentation describes that flow as "deterministic
// anyways" (§9's flagged-as-possibly-buggy source behavior, preserved here
// rather than silently fixed).
func (s *Scheduler) Run(flow Flow, jobs []Job, deadline rng.Deadline) []Result {
	if s.threads <= 1 || len(jobs) <= 1 {
		return s.runSequential(flow, jobs, deadline)
	}
	deterministic := s.deterministic && flow != Flow3
	return s.runParallel(flow, jobs, deadline, deterministic)
}

func (s *Scheduler) runSequential(flow Flow, jobs []Job, deadline rng.Deadline) []Result {
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = s.runOne(i, job, flow, deadline)
		if deadline.Exceeded() {
			for j := i + 1; j < len(jobs); j++ {
				results[j] = Result{JobIndex: j, Ntk: jobs[j].Ntk, Cost: s.cost(jobs[j].Ntk)}
			}
			break
		}
	}
	return results
}

func (s *Scheduler) runParallel(flow Flow, jobs []Job, deadline rng.Deadline, deterministic bool) []Result {
	pending := make(chan int, len(jobs))
	for i := range jobs {
		pending <- i
	}
	close(pending)

	finished := make(chan Result, len(jobs))
	var g errgroup.Group
	for w := 0; w < s.threads; w++ {
		g.Go(func() error {
			for idx := range pending {
				finished <- s.runOne(idx, jobs[idx], flow, deadline)
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(finished)
	}()

	results := make([]Result, len(jobs))
	if !deterministic {
		for r := range finished {
			results[r.JobIndex] = r
		}
		return results
	}

	// Deterministic draining: buffer out-of-order completions in a min-heap
	// keyed by job index, releasing only the next-in-sequence result (§5
	// "dispatcher blocks until the next job id in sequence is ready").
	h := &resultHeap{}
	heap.Init(h)
	next := 0
	for r := range finished {
		heap.Push(h, r)
		for h.Len() > 0 && (*h)[0].JobIndex == next {
			results[next] = heap.Pop(h).(Result)
			next++
		}
	}
	return results
}

func (s *Scheduler) runOne(idx int, job Job, flow Flow, deadline rng.Deadline) Result {
	ntk := job.Ntk.Clone()
	baseline := s.cost(ntk)
	ana := s.newAnalyzer(ntk, job.Seed)
	drv := optimizer.New(ntk, ana, optimizer.WithCostFunc(s.cost), optimizer.WithSeed(job.Seed))

	switch flow {
	case Flow0:
		s.runFlow0(drv, deadline)
	case Flow1:
		s.runFlow1(ntk, drv, deadline)
	case Flow2:
		s.runFlow2(ntk, drv, job.Seed, deadline)
	case Flow3:
		s.runFlow3(ntk, job.Seed, deadline)
	}

	final := s.cost(ntk)
	return Result{JobIndex: idx, Ntk: ntk, Cost: final, Improved: final < baseline}
}
