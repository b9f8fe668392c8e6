// Package dashboard runs the render loop and the interactive kill sub-flow.
package dashboard

import (
	"time"

	"github.com/sour-cli/sysmon/input"
	"github.com/sour-cli/sysmon/logger"
	"github.com/sour-cli/sysmon/models"
	"github.com/sour-cli/sysmon/storage"
)

// Sampler supplies metric snapshots once per tick.
type Sampler interface {
	Sample() models.SystemSnapshot
	TopProcesses(limit int) []models.ProcessInfo
	Partitions() []models.PartitionInfo
}

// SpeedtestRunner is the on-demand throughput probe.
type SpeedtestRunner interface {
	// Start launches a run unless one is active; it must never block on the
	// probe itself.
	Start() bool
	View() models.SpeedtestView
}

// ProcessKiller terminates a process tree.
type ProcessKiller interface {
	KillTree(pid int32) error
}

// Renderer draws view-models. It must return well within a tick interval.
type Renderer interface {
	Render(vm *models.ViewModel)
	RenderKillPrompt(procs []models.ProcessInfo, typed, status string)
	Resize(width, height int)
}

// InputSource is the listener surface the orchestrator consumes.
type InputSource interface {
	Quit() <-chan struct{}
	Resizes() <-chan input.Resize
	// Capture switches the source to raw key forwarding for the kill
	// sub-flow; Release resumes normal handling.
	Capture() <-chan string
	Release()
}

// Config holds orchestrator settings.
type Config struct {
	// TickInterval is the render loop period.
	TickInterval time.Duration
	// TopProcessCount is how many processes to display and offer for kill.
	TopProcessCount int
	// KillPause is how long the kill outcome stays on screen.
	KillPause time.Duration
	// KeysHelp is the header help line.
	KeysHelp string
	// NetHistorySize bounds the download-rate history sparkline.
	NetHistorySize int
}

// Orchestrator owns the render loop. All rendering happens on the goroutine
// that calls Run; background producers only ever touch shared state the
// orchestrator reads through locks or atomics.
type Orchestrator struct {
	cfg      Config
	sampler  Sampler
	worker   SpeedtestRunner
	killer   ProcessKiller
	renderer Renderer
	flags    *input.ControlFlags
	source   InputSource

	netHistory *storage.SampleRing
	log        *logger.Logger
}

// New creates an Orchestrator.
func New(cfg Config, sampler Sampler, worker SpeedtestRunner, killer ProcessKiller,
	renderer Renderer, flags *input.ControlFlags, source InputSource) *Orchestrator {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.TopProcessCount <= 0 {
		cfg.TopProcessCount = 10
	}
	if cfg.NetHistorySize <= 0 {
		cfg.NetHistorySize = 200
	}

	return &Orchestrator{
		cfg:        cfg,
		sampler:    sampler,
		worker:     worker,
		killer:     killer,
		renderer:   renderer,
		flags:      flags,
		source:     source,
		netHistory: storage.NewSampleRing(cfg.NetHistorySize),
		log:        logger.Get(),
	}
}

// Run drives the render loop until quit is requested. Background goroutines
// are abandoned on return; shutdown is best-effort by design.
func (o *Orchestrator) Run() {
	log := o.log.Component("dashboard")
	log.Infof("Render loop started with %v interval", o.cfg.TickInterval)

	ticker := time.NewTicker(o.cfg.TickInterval)
	defer ticker.Stop()

	o.tick()

	for {
		select {
		case <-o.source.Quit():
			log.Info("Quit requested, leaving render loop")
			return
		case r := <-o.source.Resizes():
			o.renderer.Resize(r.Width, r.Height)
			o.tick()
		case <-ticker.C:
			o.tick()
			// The sub-flow owns the terminal; it must never run
			// concurrently with a tick, so it is entered from the loop
			// goroutine itself.
			if o.flags.TakeKillRequest() {
				o.runKillFlow()
			}
		}
	}
}

// tick samples, decides on speedtest activation and renders one frame. The
// network flag is read once so the displayed panel and the launch decision
// agree within the tick.
func (o *Orchestrator) tick() {
	snap := o.sampler.Sample()
	procs := o.sampler.TopProcesses(o.cfg.TopProcessCount)
	parts := o.sampler.Partitions()

	o.netHistory.Append(snap.NetRecvRate)

	networkPanel := o.flags.NetworkPanelActive()
	st := o.worker.View()
	if networkPanel && !st.Running && st.Result == "" && st.Err == "" {
		if o.worker.Start() {
			st = o.worker.View()
		}
	}

	o.renderer.Render(&models.ViewModel{
		Snapshot:     snap,
		Processes:    procs,
		Partitions:   parts,
		Speedtest:    st,
		NetworkPanel: networkPanel,
		NetHistory:   o.netHistory.Values(),
		Keys:         o.cfg.KeysHelp,
	})
}
