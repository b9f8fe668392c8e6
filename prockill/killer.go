// Package prockill terminates a process and its descendants.
package prockill

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/sour-cli/sysmon/logger"
)

const pollInterval = 100 * time.Millisecond

// Killer force-terminates process trees with a bounded wait for exit.
// Termination is best-effort: every failure comes back as a human-readable
// error, never a crash.
type Killer struct {
	waitTimeout time.Duration
	log         *logger.Logger
}

// New creates a Killer waiting up to waitTimeout for the tree to exit.
func New(waitTimeout time.Duration) *Killer {
	if waitTimeout <= 0 {
		waitTimeout = 3 * time.Second
	}
	return &Killer{
		waitTimeout: waitTimeout,
		log:         logger.Get(),
	}
}

// KillTree force-kills pid's descendants, then pid itself, then waits up to
// the configured timeout for everything to exit.
func (k *Killer) KillTree(pid int32) error {
	log := k.log.Component("prockill")

	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("process %d not found: %w", pid, err)
	}

	// Children first so the parent cannot respawn them mid-kill. Enumeration
	// errors mean no accessible children, which is fine.
	children, err := p.Children()
	if err != nil {
		children = nil
	}
	for _, child := range children {
		if err := child.Kill(); err != nil {
			log.Debugf("failed to kill child %d of %d: %v", child.Pid, pid, err)
		}
	}

	if err := p.Kill(); err != nil {
		return fmt.Errorf("could not kill process %d: %w", pid, err)
	}

	if !k.waitGone(p, children) {
		return fmt.Errorf("process %d did not exit within %s", pid, k.waitTimeout)
	}

	log.Infof("Killed process %d and %d children", pid, len(children))
	return nil
}

// waitGone polls until the process and its children are gone or the timeout
// expires.
func (k *Killer) waitGone(p *process.Process, children []*process.Process) bool {
	deadline := time.Now().Add(k.waitTimeout)
	for {
		alive := false
		if running, err := p.IsRunning(); err == nil && running {
			alive = true
		}
		for _, child := range children {
			if alive {
				break
			}
			if running, err := child.IsRunning(); err == nil && running {
				alive = true
			}
		}

		if !alive {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
