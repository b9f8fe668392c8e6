package input

import (
	"testing"
	"time"

	ui "github.com/gizak/termui/v3"
)

func key(id string) ui.Event {
	return ui.Event{Type: ui.KeyboardEvent, ID: id}
}

// runListener feeds events through a running listener and waits for it to
// drain them.
func runListener(l *Listener, events ...ui.Event) {
	ch := make(chan ui.Event, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)

	done := make(chan struct{})
	go func() {
		l.Run(ch)
		close(done)
	}()
	<-done
}

func TestKillKeySetsFlag(t *testing.T) {
	flags := &ControlFlags{}
	l := NewListener(flags, "k", "n")

	runListener(l, key("k"))

	if !flags.TakeKillRequest() {
		t.Error("Expected kill request after pressing the kill key")
	}
	// Read-and-clear: a second read sees nothing.
	if flags.TakeKillRequest() {
		t.Error("Kill request must be cleared after being taken")
	}
}

func TestNetworkKeyToggles(t *testing.T) {
	flags := &ControlFlags{}
	l := NewListener(flags, "k", "n")

	runListener(l, key("n"))
	if !flags.NetworkPanelActive() {
		t.Error("Expected network panel active after first toggle")
	}

	runListener(l, key("n"))
	if flags.NetworkPanelActive() {
		t.Error("Expected network panel inactive after second toggle")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	flags := &ControlFlags{}
	l := NewListener(flags, "k", "n")

	runListener(l, key("x"), key("<Enter>"), key("1"))

	if flags.TakeKillRequest() || flags.NetworkPanelActive() {
		t.Error("Unbound keys must not change flags")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, id := range []string{"q", "<C-c>"} {
		flags := &ControlFlags{}
		l := NewListener(flags, "k", "n")

		runListener(l, key(id))

		select {
		case <-l.Quit():
		case <-time.After(time.Second):
			t.Errorf("Expected quit channel closed after %q", id)
		}
	}
}

func TestCaptureForwardsRawKeys(t *testing.T) {
	flags := &ControlFlags{}
	l := NewListener(flags, "k", "n")

	keys := l.Capture()
	runListener(l, key("k"), key("3"), key("<Enter>"))

	// While captured, bindings are not interpreted.
	if flags.TakeKillRequest() {
		t.Error("Kill key must be forwarded raw during capture")
	}

	want := []string{"k", "3", "<Enter>"}
	for _, expected := range want {
		select {
		case got := <-keys:
			if got != expected {
				t.Errorf("Expected forwarded key %q, got %q", expected, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("Missing forwarded key %q", expected)
		}
	}

	l.Release()
	runListener(l, key("k"))
	if !flags.TakeKillRequest() {
		t.Error("Bindings must resume after Release")
	}
}

func TestResizeForwarded(t *testing.T) {
	flags := &ControlFlags{}
	l := NewListener(flags, "k", "n")

	runListener(l, ui.Event{
		Type:    ui.ResizeEvent,
		ID:      "<Resize>",
		Payload: ui.Resize{Width: 120, Height: 40},
	})

	select {
	case r := <-l.Resizes():
		if r.Width != 120 || r.Height != 40 {
			t.Errorf("Unexpected resize payload: %+v", r)
		}
	case <-time.After(time.Second):
		t.Error("Expected a forwarded resize")
	}
}
