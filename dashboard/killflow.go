package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sour-cli/sysmon/models"
)

// runKillFlow suspends the normal render loop, shows a selectable process
// list and collects a 1-based index from raw keys. The process list is frozen
// for the whole flow so the typed index always refers to what is on screen.
func (o *Orchestrator) runKillFlow() {
	log := o.log.Component("dashboard")
	log.Info("Entering kill sub-flow")

	procs := o.sampler.TopProcesses(o.cfg.TopProcessCount)

	keys := o.source.Capture()
	defer o.source.Release()

	outcome := o.promptAndKill(procs, keys)

	o.renderer.RenderKillPrompt(procs, "", outcome)
	if o.cfg.KillPause > 0 {
		time.Sleep(o.cfg.KillPause)
	}
	log.Info("Leaving kill sub-flow")
}

// promptAndKill runs the selection loop and returns the outcome message.
func (o *Orchestrator) promptAndKill(procs []models.ProcessInfo, keys <-chan string) string {
	log := o.log.Component("dashboard")

	typed := ""
	o.renderer.RenderKillPrompt(procs, typed, "")

	for {
		key, ok := <-keys
		if !ok {
			// Input source shut down mid-flow.
			return "Cancelled."
		}

		switch {
		case len(key) == 1 && key >= "0" && key <= "9":
			typed += key
		case key == "<Backspace>" || key == "<C-8>":
			if typed != "" {
				typed = typed[:len(typed)-1]
			}
		case key == "<Enter>":
			idx, err := strconv.Atoi(typed)
			if err != nil || idx < 1 || idx > len(procs) {
				log.Debugf("Kill selection %q rejected", typed)
				return "Cancelled."
			}
			target := procs[idx-1]
			log.Infof("Killing %s (pid %d)", target.Name, target.PID)
			if err := o.killer.KillTree(target.PID); err != nil {
				log.Warnf("Kill of pid %d failed: %v", target.PID, err)
				return fmt.Sprintf("Kill failed: %v", err)
			}
			return fmt.Sprintf("Killed %s (pid %d) and its children.", target.Name, target.PID)
		case key == "<Escape>" || key == "<C-c>":
			return "Cancelled."
		default:
			// Any other printable key abandons the flow rather than being
			// silently swallowed.
			if len(key) == 1 {
				return "Cancelled."
			}
			continue
		}

		o.renderer.RenderKillPrompt(procs, typed, "")
	}
}
