package collector

import (
	"testing"
	"time"
)

func TestRatesFirstCallIsZero(t *testing.T) {
	var tr RateTracker
	sent, recv := tr.Rates(1000, 2000, time.Now())
	if sent != 0 || recv != 0 {
		t.Errorf("Expected zero rates on first call, got %v/%v", sent, recv)
	}
}

func TestRatesDerivative(t *testing.T) {
	var tr RateTracker
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tr.Rates(1000, 2000, t0)
	sent, recv := tr.Rates(3000, 6000, t0.Add(2*time.Second))

	if sent != 1000 {
		t.Errorf("Expected sent rate 1000 B/s, got %v", sent)
	}
	if recv != 2000 {
		t.Errorf("Expected recv rate 2000 B/s, got %v", recv)
	}
}

func TestRatesZeroElapsed(t *testing.T) {
	var tr RateTracker
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tr.Rates(1000, 2000, t0)
	sent, recv := tr.Rates(9000, 9000, t0)

	// Same timestamp must not divide by zero.
	if sent != 0 || recv != 0 {
		t.Errorf("Expected zero rates for zero elapsed, got %v/%v", sent, recv)
	}
}

func TestRatesCounterReset(t *testing.T) {
	var tr RateTracker
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tr.Rates(5000, 5000, t0)
	sent, recv := tr.Rates(100, 7000, t0.Add(time.Second))

	// A counter decrease is a reset, reported as zero rate, never negative.
	if sent != 0 {
		t.Errorf("Expected zero sent rate after counter reset, got %v", sent)
	}
	if recv != 2000 {
		t.Errorf("Expected recv rate 2000 B/s, got %v", recv)
	}

	// The reset value becomes the new baseline.
	sent, _ = tr.Rates(600, 7000, t0.Add(2*time.Second))
	if sent != 500 {
		t.Errorf("Expected sent rate 500 B/s after re-priming, got %v", sent)
	}
}
