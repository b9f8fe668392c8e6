package collector

import (
	"sort"
	"time"

	"github.com/sour-cli/sysmon/logger"
	"github.com/sour-cli/sysmon/models"
)

// Sampler produces SystemSnapshots and top-process listings. It is called
// once per tick from the orchestrator goroutine and is not reentrant.
type Sampler struct {
	provider Provider
	diskPath string
	rates    RateTracker
	log      *logger.Logger

	// now is stubbed in tests.
	now func() time.Time
}

// NewSampler creates a Sampler reading from provider. diskPath selects the
// filesystem for the disk gauge.
func NewSampler(provider Provider, diskPath string) *Sampler {
	return &Sampler{
		provider: provider,
		diskPath: diskPath,
		log:      logger.Get(),
		now:      time.Now,
	}
}

// Sample reads all system metrics and returns a fresh snapshot. A failed
// read degrades its field to zero rather than failing the whole snapshot;
// the dashboard must keep rendering.
func (s *Sampler) Sample() models.SystemSnapshot {
	now := s.now()
	snap := models.SystemSnapshot{Timestamp: now}

	if cpu, err := s.provider.CPUPercent(); err == nil {
		snap.CPUPercent = cpu
	} else {
		s.log.Component("sampler").Debugf("cpu read failed: %v", err)
	}

	if memPct, err := s.provider.MemoryPercent(); err == nil {
		snap.MemPercent = memPct
	} else {
		s.log.Component("sampler").Debugf("memory read failed: %v", err)
	}

	if diskPct, err := s.provider.DiskPercent(s.diskPath); err == nil {
		snap.DiskPercent = diskPct
	} else {
		s.log.Component("sampler").Debugf("disk read failed: %v", err)
	}

	if sent, recv, err := s.provider.NetCounters(); err == nil {
		snap.NetSentRate, snap.NetRecvRate = s.rates.Rates(sent, recv, now)
	} else {
		s.log.Component("sampler").Debugf("net counters read failed: %v", err)
	}

	if boot, err := s.provider.BootTime(); err == nil {
		snap.Uptime = now.Sub(boot)
	}

	if hostname, err := s.provider.Hostname(); err == nil {
		snap.Hostname = hostname
	}

	return snap
}

// TopProcesses returns at most limit processes sorted by CPU usage
// descending. Ties keep their enumeration order. Single best-effort pass:
// processes that vanish mid-enumeration are skipped by the provider.
func (s *Sampler) TopProcesses(limit int) []models.ProcessInfo {
	if limit <= 0 {
		limit = 10
	}

	procs, err := s.provider.Processes()
	if err != nil {
		s.log.Component("sampler").Debugf("process listing failed: %v", err)
		return nil
	}

	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})

	if len(procs) > limit {
		procs = procs[:limit]
	}
	return procs
}

// Partitions lists mounted filesystems, degrading to empty on failure.
func (s *Sampler) Partitions() []models.PartitionInfo {
	parts, err := s.provider.Partitions()
	if err != nil {
		s.log.Component("sampler").Debugf("partition listing failed: %v", err)
		return nil
	}
	return parts
}
