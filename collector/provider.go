// Package collector provides host metric sampling for the dashboard.
package collector

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/sour-cli/sysmon/models"
)

// Provider is the OS metrics source consumed by the sampler. The production
// implementation is SystemProvider; tests inject fakes.
type Provider interface {
	CPUPercent() (float64, error)
	MemoryPercent() (float64, error)
	DiskPercent(path string) (float64, error)
	// NetCounters returns cumulative bytes sent and received across all
	// interfaces since boot.
	NetCounters() (sent, recv uint64, err error)
	BootTime() (time.Time, error)
	Hostname() (string, error)
	// Processes enumerates running processes. Entries that vanish
	// mid-enumeration are omitted.
	Processes() ([]models.ProcessInfo, error)
	Partitions() ([]models.PartitionInfo, error)
}

// SystemProvider reads metrics from the host via gopsutil.
type SystemProvider struct{}

// NewSystemProvider creates a SystemProvider.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

// CPUPercent returns the overall CPU usage since the previous call.
func (p *SystemProvider) CPUPercent() (float64, error) {
	percentages, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) == 0 {
		return 0, nil
	}
	return percentages[0], nil
}

// MemoryPercent returns the RAM usage percentage.
func (p *SystemProvider) MemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// DiskPercent returns the usage percentage of the filesystem at path.
func (p *SystemProvider) DiskPercent(path string) (float64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}

// NetCounters returns cumulative network byte counters summed over all
// interfaces.
func (p *SystemProvider) NetCounters() (uint64, uint64, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return 0, 0, err
	}
	if len(counters) == 0 {
		return 0, 0, nil
	}
	return counters[0].BytesSent, counters[0].BytesRecv, nil
}

// BootTime returns the host boot time.
func (p *SystemProvider) BootTime() (time.Time, error) {
	boot, err := host.BootTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(boot), 0), nil
}

// Hostname returns the machine name.
func (p *SystemProvider) Hostname() (string, error) {
	return os.Hostname()
}

// Processes enumerates running processes. A process that exits between
// listing and reading is skipped, never an error.
func (p *SystemProvider) Processes() ([]models.ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	infos := make([]models.ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.Name()
		if err != nil {
			// Exited between enumeration and read.
			continue
		}

		info := models.ProcessInfo{
			PID:  proc.Pid,
			Name: name,
		}
		if cpuPct, err := proc.CPUPercent(); err == nil {
			info.CPUPercent = cpuPct
		}
		if memPct, err := proc.MemoryPercent(); err == nil {
			info.MemPercent = float64(memPct)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Partitions lists mounted filesystems.
func (p *SystemProvider) Partitions() ([]models.PartitionInfo, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	infos := make([]models.PartitionInfo, 0, len(parts))
	for _, part := range parts {
		if part.Fstype == "" {
			continue
		}
		infos = append(infos, models.PartitionInfo{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			FSType:     part.Fstype,
		})
	}
	return infos, nil
}
