// sysmon is a terminal system monitor: live CPU, memory, disk and network
// gauges, a top-process table, an on-demand speedtest panel and an
// interactive process killer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tui "github.com/gizak/termui/v3"
	"github.com/sirupsen/logrus"

	"github.com/sour-cli/sysmon/collector"
	"github.com/sour-cli/sysmon/config"
	"github.com/sour-cli/sysmon/dashboard"
	"github.com/sour-cli/sysmon/input"
	"github.com/sour-cli/sysmon/logger"
	"github.com/sour-cli/sysmon/prockill"
	"github.com/sour-cli/sysmon/speedtest"
	"github.com/sour-cli/sysmon/ui"
)

const version = "1.0.0"

const killWaitTimeout = 3 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sysmon %s\n", version)
		return
	}

	if err := run(*configPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "sysmon: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.Get()
	if err := log.Init(&cfg.Logging, filepath.Dir(configPath)); err != nil {
		fmt.Fprintf(os.Stderr, "sysmon: file logging disabled: %v\n", err)
	}
	defer log.Close()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	for _, err := range cfg.Validate() {
		log.Warnf("Config: %v", err)
	}

	log.Infof("sysmon %s starting", version)

	flags := &input.ControlFlags{}
	listener := input.NewListener(flags, cfg.Keys.Kill, cfg.Keys.NetworkPanel)

	provider := collector.NewSystemProvider()
	sampler := collector.NewSampler(provider, cfg.Monitoring.DiskPath)
	worker := speedtest.New(&cfg.Speedtest)
	killer := prockill.New(killWaitTimeout)

	// Sample once before the UI takes the terminal: the first CPU reading
	// primes gopsutil and the first net reading primes the rate tracker, so
	// the opening frame shows real rates instead of zeros.
	sampler.Sample()

	if err := tui.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	renderer := ui.NewDashboard()

	go listener.Run(tui.PollEvents())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		listener.RequestQuit()
	}()

	orch := dashboard.New(dashboard.Config{
		TickInterval:    cfg.Monitoring.TickInterval,
		TopProcessCount: cfg.Monitoring.TopProcessCount,
		KillPause:       1500 * time.Millisecond,
		KeysHelp: fmt.Sprintf("[%s] kill process  [%s] network panel  [q] quit",
			cfg.Keys.Kill, cfg.Keys.NetworkPanel),
		NetHistorySize: cfg.Speedtest.MaxSamples,
	}, sampler, worker, killer, renderer, flags, listener)

	orch.Run()

	tui.Close()
	log.Info("sysmon stopped")
	fmt.Fprintln(os.Stderr, "Exiting sysmon...")
	return nil
}
