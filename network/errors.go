package network

import "errors"

// Sentinel errors for user-reachable failure modes. Structural contract
// violations (§7) are not in this list: they panic at the detection site
// because they indicate a programmer error, not bad input.
var (
	// ErrNodeNotFound is returned by accessors given an id outside the live range.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrNotAnd is returned when a mutation requiring an And node targets a
	// different kind.
	ErrNotAnd = errors.New("network: node is not an And")

	// ErrIndexOutOfRange is returned by fanin-index accessors and mutators.
	ErrIndexOutOfRange = errors.New("network: fanin index out of range")

	// ErrInvalidSlot is returned by Load/PopBack when the checkpoint slot
	// does not exist.
	ErrInvalidSlot = errors.New("network: invalid checkpoint slot")

	// ErrTooFewFanins is returned by TrivialDecompose when k does not leave
	// a valid split (I2).
	ErrTooFewFanins = errors.New("network: too few fanins for requested split")

	// ErrNodeInUse is returned by RemoveUnused when id still has fanouts.
	ErrNodeInUse = errors.New("network: node still has fanouts")

	// ErrNotPo is returned by SetPoFanin when the target is not a
	// PrimaryOutput.
	ErrNotPo = errors.New("network: node is not a PrimaryOutput")
)
