package input

import (
	"sync"

	ui "github.com/gizak/termui/v3"

	"github.com/sour-cli/sysmon/logger"
)

// Resize is a terminal size change forwarded to the orchestrator.
type Resize struct {
	Width  int
	Height int
}

// Listener consumes the raw terminal event stream for the process lifetime.
// It never calls into rendering; its only outputs are flag mutations and the
// quit/resize channels. During the kill sub-flow the orchestrator captures
// the stream and receives raw key IDs instead.
type Listener struct {
	flags      *ControlFlags
	killKey    string
	networkKey string

	quit     chan struct{}
	quitOnce sync.Once
	resize   chan Resize

	mu      sync.Mutex
	capture chan string

	log *logger.Logger
}

// NewListener creates a Listener updating flags on the given key bindings.
func NewListener(flags *ControlFlags, killKey, networkKey string) *Listener {
	return &Listener{
		flags:      flags,
		killKey:    killKey,
		networkKey: networkKey,
		quit:       make(chan struct{}),
		resize:     make(chan Resize, 1),
		log:        logger.Get(),
	}
}

// Run consumes events until the stream closes. It blocks and is meant to be
// launched as a goroutine; it is abandoned at process exit, never joined.
func (l *Listener) Run(events <-chan ui.Event) {
	for e := range events {
		switch e.Type {
		case ui.ResizeEvent:
			if payload, ok := e.Payload.(ui.Resize); ok {
				// Only the latest size matters.
				select {
				case l.resize <- Resize{Width: payload.Width, Height: payload.Height}:
				default:
				}
			}
		case ui.KeyboardEvent:
			l.handleKey(e.ID)
		}
	}
}

func (l *Listener) handleKey(key string) {
	if ch := l.captureChan(); ch != nil {
		select {
		case ch <- key:
		default:
		}
		return
	}

	switch key {
	case l.killKey:
		l.flags.RequestKill()
	case l.networkKey:
		active := l.flags.ToggleNetworkPanel()
		l.log.Component("input").Debugf("network panel toggled: %v", active)
	case "q", "<C-c>":
		l.RequestQuit()
	}
}

// RequestQuit closes the quit channel. Safe to call more than once and from
// any goroutine (the signal handler uses it too).
func (l *Listener) RequestQuit() {
	l.quitOnce.Do(func() { close(l.quit) })
}

// Quit is closed when the operator asked to exit.
func (l *Listener) Quit() <-chan struct{} {
	return l.quit
}

// Resizes delivers terminal size changes.
func (l *Listener) Resizes() <-chan Resize {
	return l.resize
}

// Capture switches the listener to raw forwarding: subsequent key IDs are
// delivered on the returned channel instead of being interpreted as
// bindings. The caller must Release when done.
func (l *Listener) Capture() <-chan string {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.capture = make(chan string, 8)
	return l.capture
}

// Release ends raw forwarding and resumes normal key handling.
func (l *Listener) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.capture = nil
}

func (l *Listener) captureChan() chan string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.capture
}
