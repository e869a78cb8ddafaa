// Package scheduler fans optimizer jobs out across a worker pool (§4.9).
// Flow0 runs the optimizer once per job; Flow1 ("TransStoch") and Flow2
// ("DeepSyn") alternate optimizer passes with a modeled ABC-compress step
// until no further improvement; Flow3 drives partitioner-based window
// optimization. Each job owns a private network.Network clone and Analyzer
// (§5: Network, Analyzer, and Optimizer are not thread-safe), with
// cross-thread sharing restricted to the job queue and the shared ABC frame.
package scheduler
