// Package input listens for global key events and exposes them to the
// orchestrator as control flags.
package input

import "sync/atomic"

// ControlFlags are written by the listener goroutine and read by the
// orchestrator; both fields are atomics because they cross goroutines
// without a shared lock.
type ControlFlags struct {
	killRequested atomic.Bool
	networkPanel  atomic.Bool
}

// RequestKill marks that the operator asked for the kill prompt.
func (f *ControlFlags) RequestKill() {
	f.killRequested.Store(true)
}

// TakeKillRequest reads and clears the kill request in one step.
func (f *ControlFlags) TakeKillRequest() bool {
	return f.killRequested.Swap(false)
}

// ToggleNetworkPanel flips the network panel flag and returns the new state.
func (f *ControlFlags) ToggleNetworkPanel() bool {
	for {
		old := f.networkPanel.Load()
		if f.networkPanel.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// NetworkPanelActive reports whether the network panel is shown.
func (f *ControlFlags) NetworkPanelActive() bool {
	return f.networkPanel.Load()
}
