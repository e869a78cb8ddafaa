package scheduler

import (
	"sync"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/optimizer"
)

// abcFrame models the single shared external ABC session of §5/§9: only one
// worker at a time may be mid-restructuring-step, regardless of how many
// scheduler threads are running. The real ABC binary is outside this
// module's scope, so the frame guards a no-op cost-reporting hook instead
// of an actual subprocess call.
var abcFrame struct {
	mu   sync.Mutex
	open bool
}

// Init opens the shared ABC frame for the duration of a scheduler run. Safe
// to call more than once; Teardown is its counterpart.
func Init() {
	abcFrame.mu.Lock()
	defer abcFrame.mu.Unlock()
	abcFrame.open = true
}

// Teardown closes the shared ABC frame.
func Teardown() {
	abcFrame.mu.Lock()
	defer abcFrame.mu.Unlock()
	abcFrame.open = false
}

// restructureKind names the ABC-style restructuring passes DeepSyn composes
// (§4.9 Flow 2). None has an embedded implementation here — each maps to the
// same compressStep hook — but the label is kept for logging so a run's
// trace still reads like the original's pass sequence.
type restructureKind int

const (
	restructureDCH restructureKind = iota
	restructureIF
	restructureMFS
	restructureFX
	restructureCompress
)

func (k restructureKind) String() string {
	switch k {
	case restructureDCH:
		return "dch"
	case restructureIF:
		return "if"
	case restructureMFS:
		return "mfs"
	case restructureFX:
		return "fx"
	case restructureCompress:
		return "compress2"
	default:
		return "unknown"
	}
}

// compressStep models one ABC-style restructuring pass ("&if -K 6; &mfs;
// &st" in the original). It serializes on the shared frame the way a real
// call into a single external ABC process would, and reports the resulting
// cost; with no embedded ABC binary, the pass itself leaves ntk unchanged.
// A caller that never ran Init still gets a frame — the shared session opens
// lazily on first use.
func compressStep(ntk *network.Network, cost optimizer.CostFunc) float64 {
	return namedCompressStep(ntk, cost, restructureCompress)
}

// namedCompressStep is compressStep plus a restructureKind label for the
// caller's log trace. runFlow2 uses this directly so a DeepSyn run's log
// reads like the original tool's randomly composed pass sequence even
// though every kind maps to the same no-op hook.
func namedCompressStep(ntk *network.Network, cost optimizer.CostFunc, kind restructureKind) float64 {
	abcFrame.mu.Lock()
	defer abcFrame.mu.Unlock()
	if !abcFrame.open {
		abcFrame.open = true
	}
	_ = kind // logged by the caller, which holds the Scheduler's logger
	return cost(ntk)
}
