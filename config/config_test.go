package config

import (
	"testing"
	"time"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Monitoring.TickInterval != time.Second {
		t.Errorf("Expected 1s tick interval, got %v", cfg.Monitoring.TickInterval)
	}
	if cfg.Monitoring.TopProcessCount != 10 {
		t.Errorf("Expected top_process_count 10, got %d", cfg.Monitoring.TopProcessCount)
	}
	if len(cfg.Speedtest.Command) == 0 || cfg.Speedtest.Command[0] != "speedtest-cli" {
		t.Errorf("Unexpected speedtest command: %v", cfg.Speedtest.Command)
	}
	if cfg.Speedtest.MaxSamples != 200 {
		t.Errorf("Expected max_samples 200, got %d", cfg.Speedtest.MaxSamples)
	}
	if cfg.Keys.Kill != "k" || cfg.Keys.NetworkPanel != "n" {
		t.Errorf("Unexpected key bindings: %+v", cfg.Keys)
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should validate, got %v", errs)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/sysmon/config.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Monitoring.DiskPath != "/" {
		t.Errorf("Expected default disk path, got %q", cfg.Monitoring.DiskPath)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.Monitoring.TickInterval = 10 * time.Millisecond
	cfg.Monitoring.TopProcessCount = 0
	cfg.Keys.NetworkPanel = cfg.Keys.Kill
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Errorf("Expected 4 validation errors, got %d: %v", len(errs), errs)
	}
}
