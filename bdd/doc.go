// Package bdd defines the §6 BDD service boundary as the Manager interface
// plus one reference ROBDD implementation, and implements the CSPF
// (Complete/Single-output Permissible Function) Analyzer of §4.4 on top of
// it. Production deployments can satisfy Manager with a cgo-wrapped CUDD
// binding without touching Analyzer; no suitable pure-Go CUDD-equivalent
// exists in the example pack or the wider ecosystem, so the reference table
// here is the only implementation this module ships.
package bdd
