// Package optimizer implements the redundancy-removal optimizer of §4.7:
// greedy fanin reduction, single/multi-add resubstitution with greedy
// accept/reject via checkpoints, and an exhaustive search variant. It ports
// only the variant the original's Perform/ssr entry points actually drive
// (original_source/src/rrrOptimizer.h); the rrrOptimizer2.h and
// rrrUrOptimizer.h research forks are not ported (see DESIGN.md).
package optimizer
