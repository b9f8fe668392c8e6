// Package models defines data structures shared between the sampler,
// the speedtest worker and the renderer.
package models

import "time"

// SystemSnapshot is a point-in-time read of host metrics. It is created
// fresh every tick and never shared across ticks.
type SystemSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	// CPUPercent is the overall CPU usage percentage (0-100).
	CPUPercent float64 `json:"cpu_percent"`
	// MemPercent is the RAM usage percentage (0-100).
	MemPercent float64 `json:"mem_percent"`
	// DiskPercent is the usage percentage of the monitored filesystem.
	DiskPercent float64 `json:"disk_percent"`
	// NetSentRate is the upload rate in bytes per second.
	NetSentRate float64 `json:"net_sent_rate"`
	// NetRecvRate is the download rate in bytes per second.
	NetRecvRate float64 `json:"net_recv_rate"`
	// Uptime is the time since boot.
	Uptime time.Duration `json:"uptime"`
	// Hostname is the machine name.
	Hostname string `json:"hostname"`
}

// ProcessInfo describes one running process.
type ProcessInfo struct {
	PID  int32  `json:"pid"`
	Name string `json:"name"`
	// CPUPercent is the CPU usage percentage of this process.
	CPUPercent float64 `json:"cpu_percent"`
	// MemPercent is the memory usage percentage of this process.
	MemPercent float64 `json:"mem_percent"`
}

// PartitionInfo describes a mounted filesystem.
type PartitionInfo struct {
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	FSType     string `json:"fs_type"`
}

// SpeedtestView is a consistent copy of the speedtest worker state taken
// under its lock. Samples are instantaneous throughput estimates in Mbps,
// oldest first.
type SpeedtestView struct {
	Running bool      `json:"running"`
	Result  string    `json:"result"`
	Err     string    `json:"error"`
	Samples []float64 `json:"samples"`
}

// ViewModel is everything the renderer needs for one frame.
type ViewModel struct {
	Snapshot     SystemSnapshot
	Processes    []ProcessInfo
	Partitions   []PartitionInfo
	Speedtest    SpeedtestView
	NetworkPanel bool
	// NetHistory is the recent download-rate history in bytes/sec,
	// oldest first, used for the network sparkline.
	NetHistory []float64
	// Keys is the help line describing the active key bindings.
	Keys string
}
