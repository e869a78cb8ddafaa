package aiger

import "errors"

var (
	// ErrLatchesUnsupported is returned when a header declares L>0 latches.
	// Sequential semantics are an explicit Non-goal.
	ErrLatchesUnsupported = errors.New("aiger: latches not supported")

	// ErrBadHeader is returned when the magic or the five header fields
	// cannot be parsed.
	ErrBadHeader = errors.New("aiger: malformed header")

	// ErrTruncated is returned when the input ends before the header's
	// declared counts are satisfied.
	ErrTruncated = errors.New("aiger: truncated input")

	// ErrMalformedAnd is returned when an AND-gate record cannot be parsed,
	// or (on write) when an And node has other than exactly two fanins.
	ErrMalformedAnd = errors.New("aiger: malformed and gate")

	// ErrBadLiteral is returned when a literal names a variable outside the
	// header's declared range.
	ErrBadLiteral = errors.New("aiger: literal out of range")
)
