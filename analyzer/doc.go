// Package analyzer defines the common Analyzer interface satisfied by
// simulator.Simulator, bdd.Analyzer, and sat.Analyzer, plus Combinator, which
// layers a simulator-first / SAT-confirm strategy on top of them (§4.6).
package analyzer
