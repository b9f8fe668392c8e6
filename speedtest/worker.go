// Package speedtest runs the external throughput probe and captures live
// throughput samples while it executes.
package speedtest

import (
	"bufio"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"sync"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"

	"github.com/sour-cli/sysmon/collector"
	"github.com/sour-cli/sysmon/config"
	"github.com/sour-cli/sysmon/logger"
	"github.com/sour-cli/sysmon/models"
	"github.com/sour-cli/sysmon/storage"
)

// CounterFunc returns cumulative network byte counters. Injected in tests.
type CounterFunc func() (sent, recv uint64, err error)

// Worker runs the throughput probe as a background goroutine. At most one
// run is active at a time; Start while running is a no-op. One mutex guards
// the whole record so the renderer never observes a partially updated state
// (e.g. running=false before the result text is final).
type Worker struct {
	mu      sync.Mutex
	running bool
	result  strings.Builder
	errText string
	samples *storage.SampleRing

	command        []string
	sampleInterval time.Duration
	waitTimeout    time.Duration
	counters       CounterFunc
	log            *logger.Logger
}

// New creates a Worker configured from cfg, sampling live throughput from
// the host network counters.
func New(cfg *config.SpeedtestConfig) *Worker {
	return &Worker{
		samples:        storage.NewSampleRing(cfg.MaxSamples),
		command:        cfg.Command,
		sampleInterval: cfg.SampleInterval,
		waitTimeout:    cfg.WaitTimeout,
		counters:       hostCounters,
		log:            logger.Get(),
	}
}

func hostCounters() (uint64, uint64, error) {
	counters, err := gnet.IOCounters(false)
	if err != nil {
		return 0, 0, err
	}
	if len(counters) == 0 {
		return 0, 0, nil
	}
	return counters[0].BytesSent, counters[0].BytesRecv, nil
}

// Start launches a probe run unless one is already active. It returns true
// if a new run was started. Prior result, error and samples are cleared on
// start and remain visible until then.
func (w *Worker) Start() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return false
	}
	w.running = true
	w.result.Reset()
	w.errText = ""
	w.samples.Reset()

	go w.run()
	return true
}

// View returns a consistent copy of the worker state for rendering.
func (w *Worker) View() models.SpeedtestView {
	w.mu.Lock()
	defer w.mu.Unlock()

	return models.SpeedtestView{
		Running: w.running,
		Result:  w.result.String(),
		Err:     w.errText,
		Samples: w.samples.Values(),
	}
}

// run executes one probe attempt. Failures never cross the goroutine
// boundary; they end up in errText for the render path to show.
func (w *Worker) run() {
	log := w.log.Component("speedtest")

	path, err := exec.LookPath(w.command[0])
	if err != nil {
		w.finish(fmt.Sprintf("%s not found on PATH (install with: pip install %s)",
			w.command[0], w.command[0]))
		return
	}

	cmd := exec.Command(path, w.command[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		w.finish(fmt.Sprintf("failed to open probe output: %v", err))
		return
	}
	if err := cmd.Start(); err != nil {
		w.finish(fmt.Sprintf("failed to start probe: %v", err))
		return
	}

	log.Infof("Probe started: %s", strings.Join(w.command, " "))

	// Live throughput sampling runs alongside the output reader and stops
	// when the output stream ends.
	done := make(chan struct{})
	go w.sampleLoop(done)

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			w.appendLine(line)
		}
	}
	readErr := scanner.Err()
	close(done)

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	var errText string
	select {
	case err := <-waitCh:
		if err != nil {
			errText = fmt.Sprintf("probe exited with error: %v", err)
		}
	case <-time.After(w.waitTimeout):
		errText = fmt.Sprintf("probe did not exit within %s", w.waitTimeout)
	}
	if readErr != nil && errText == "" {
		errText = fmt.Sprintf("failed reading probe output: %v", readErr)
	}

	if errText != "" {
		log.Warn(errText)
	} else {
		log.Info("Probe completed")
	}
	w.finish(errText)
}

// sampleLoop derives instantaneous throughput estimates from the raw network
// counters with its own tracker state, independent of the dashboard sampler.
func (w *Worker) sampleLoop(done <-chan struct{}) {
	var rates collector.RateTracker

	ticker := time.NewTicker(w.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			sent, recv, err := w.counters()
			if err != nil {
				continue
			}
			sentRate, recvRate := rates.Rates(sent, recv, time.Now())
			mbps := math.Max(sentRate, recvRate) * 8 / 1_000_000
			w.appendSample(mbps)
		}
	}
}

func (w *Worker) appendLine(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result.Len() > 0 {
		w.result.WriteByte('\n')
	}
	w.result.WriteString(line)
}

func (w *Worker) appendSample(mbps float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples.Append(mbps)
}

func (w *Worker) finish(errText string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errText = errText
	w.running = false
}
