package network

// AddCallback registers fn as an Action subscriber and returns a handle for
// later removal via DeleteCallback. Each mutator emits its Action(s) to each
// live subscriber, in subscription order, before the next mutation begins
// (§4.1 Guarantees): one Action per call, except Sweep, which emits one per
// removed node. The construction calls AddPi, AddAnd and AddPo emit none.
func (n *Network) AddCallback(fn func(Action)) CallbackHandle {
	h := n.nextHandle
	n.nextHandle++
	n.callbacks = append(n.callbacks, callbackEntry{handle: h, fn: fn, active: true})
	return h
}

// DeleteCallback removes the subscriber registered under h. Deleting an
// unknown or already-removed handle is a no-op.
func (n *Network) DeleteCallback(h CallbackHandle) {
	for i := range n.callbacks {
		if n.callbacks[i].handle == h {
			n.callbacks[i].active = false
			return
		}
	}
}

// broadcast delivers a to every active subscriber, in subscription order.
func (n *Network) broadcast(a Action) {
	n.log.Trace().Stringer("kind", a.Kind).Int("id", int(a.ID)).Msg("action")
	for _, cb := range n.callbacks {
		if cb.active {
			cb.fn(a)
		}
	}
}
