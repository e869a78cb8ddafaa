// Package sat defines the §6 SAT service boundary as the Solver interface
// plus a small reference DPLL implementation, and implements the miter-based
// Analyzer of §4.5 on top of it. Production deployments can satisfy Solver
// with a cgo MiniSat binding without touching Analyzer.
package sat
