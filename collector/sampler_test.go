package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/sour-cli/sysmon/models"
)

// fakeProvider returns canned metrics, with per-field failure switches.
type fakeProvider struct {
	cpu, mem, disk   float64
	sent, recv       uint64
	boot             time.Time
	hostname         string
	procs            []models.ProcessInfo
	parts            []models.PartitionInfo
	failCPU, failMem bool
	failNet          bool
	failProcs        bool
}

func (f *fakeProvider) CPUPercent() (float64, error) {
	if f.failCPU {
		return 0, errors.New("cpu unavailable")
	}
	return f.cpu, nil
}

func (f *fakeProvider) MemoryPercent() (float64, error) {
	if f.failMem {
		return 0, errors.New("mem unavailable")
	}
	return f.mem, nil
}

func (f *fakeProvider) DiskPercent(path string) (float64, error) { return f.disk, nil }

func (f *fakeProvider) NetCounters() (uint64, uint64, error) {
	if f.failNet {
		return 0, 0, errors.New("net unavailable")
	}
	return f.sent, f.recv, nil
}

func (f *fakeProvider) BootTime() (time.Time, error) { return f.boot, nil }
func (f *fakeProvider) Hostname() (string, error)    { return f.hostname, nil }

func (f *fakeProvider) Processes() ([]models.ProcessInfo, error) {
	if f.failProcs {
		return nil, errors.New("proc listing unavailable")
	}
	// Fresh slice per enumeration, like a real listing.
	return append([]models.ProcessInfo(nil), f.procs...), nil
}

func (f *fakeProvider) Partitions() ([]models.PartitionInfo, error) { return f.parts, nil }

func newTestSampler(p Provider) *Sampler {
	s := NewSampler(p, "/")
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSample(t *testing.T) {
	boot := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &fakeProvider{cpu: 42.5, mem: 61.0, disk: 73.2, hostname: "testhost", boot: boot}
	s := newTestSampler(p)

	snap := s.Sample()

	if snap.CPUPercent != 42.5 || snap.MemPercent != 61.0 || snap.DiskPercent != 73.2 {
		t.Errorf("Unexpected gauge values: %+v", snap)
	}
	if snap.Hostname != "testhost" {
		t.Errorf("Expected hostname testhost, got %q", snap.Hostname)
	}
	if snap.Uptime != 2*time.Hour {
		t.Errorf("Expected 2h uptime, got %v", snap.Uptime)
	}
	// First sample always has zero rates.
	if snap.NetSentRate != 0 || snap.NetRecvRate != 0 {
		t.Errorf("Expected zero rates on first sample, got %+v", snap)
	}
}

func TestSampleNetRates(t *testing.T) {
	p := &fakeProvider{sent: 1000, recv: 2000}
	s := NewSampler(p, "/")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	s.Sample()

	p.sent, p.recv = 3000, 10000
	current = base.Add(2 * time.Second)
	snap := s.Sample()

	if snap.NetSentRate != 1000 {
		t.Errorf("Expected sent rate 1000 B/s, got %v", snap.NetSentRate)
	}
	if snap.NetRecvRate != 4000 {
		t.Errorf("Expected recv rate 4000 B/s, got %v", snap.NetRecvRate)
	}
}

func TestSampleDegradesFailedFields(t *testing.T) {
	p := &fakeProvider{cpu: 42.5, mem: 61.0, disk: 73.2, failCPU: true, failNet: true}
	s := newTestSampler(p)

	snap := s.Sample()

	if snap.CPUPercent != 0 {
		t.Errorf("Expected degraded CPU field, got %v", snap.CPUPercent)
	}
	// The other fields must survive.
	if snap.MemPercent != 61.0 || snap.DiskPercent != 73.2 {
		t.Errorf("Healthy fields must not degrade: %+v", snap)
	}
}

func TestTopProcessesOrderAndTruncation(t *testing.T) {
	p := &fakeProvider{procs: []models.ProcessInfo{
		{PID: 1, Name: "idle", CPUPercent: 0.1},
		{PID: 2, Name: "busy", CPUPercent: 88.0},
		{PID: 3, Name: "tied-a", CPUPercent: 5.0},
		{PID: 4, Name: "tied-b", CPUPercent: 5.0},
		{PID: 5, Name: "medium", CPUPercent: 22.0},
	}}
	s := newTestSampler(p)

	top := s.TopProcesses(3)

	if len(top) != 3 {
		t.Fatalf("Expected 3 processes, got %d", len(top))
	}
	if top[0].PID != 2 || top[1].PID != 5 {
		t.Errorf("Unexpected ordering: %+v", top)
	}
	// Stable sort keeps tied entries in enumeration order.
	if top[2].PID != 3 {
		t.Errorf("Expected tied-a before tied-b, got %+v", top[2])
	}
}

func TestTopProcessesStability(t *testing.T) {
	procs := []models.ProcessInfo{
		{PID: 10, CPUPercent: 3},
		{PID: 11, CPUPercent: 3},
		{PID: 12, CPUPercent: 3},
		{PID: 13, CPUPercent: 9},
	}
	p := &fakeProvider{procs: procs}
	s := newTestSampler(p)

	full := s.TopProcesses(10)

	// Removing a process must not change the relative order of the rest.
	reduced := append([]models.ProcessInfo{}, procs[0], procs[2], procs[3])
	p.procs = reduced
	partial := s.TopProcesses(10)

	if full[1].PID != 10 || full[2].PID != 11 || full[3].PID != 12 {
		t.Errorf("Unexpected full ordering: %+v", full)
	}
	if partial[1].PID != 10 || partial[2].PID != 12 {
		t.Errorf("Relative order changed after removal: %+v", partial)
	}
}

func TestTopProcessesListingFailure(t *testing.T) {
	p := &fakeProvider{failProcs: true}
	s := newTestSampler(p)

	if top := s.TopProcesses(5); top != nil {
		t.Errorf("Expected nil on listing failure, got %+v", top)
	}
}
