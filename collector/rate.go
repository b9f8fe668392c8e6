package collector

import "time"

// RateTracker derives byte rates from monotonic counters. Each consumer of
// network rates owns its own tracker: the sampler reads once per tick while
// the speedtest worker samples far more often, and sharing previous-counter
// state between them would corrupt both derivatives.
//
// RateTracker is not safe for concurrent use; every instance has exactly one
// owner goroutine.
type RateTracker struct {
	lastSent uint64
	lastRecv uint64
	lastTime time.Time
	primed   bool
}

// Rates returns the sent/recv rates in bytes per second given the current
// cumulative counters. The first call primes the tracker and returns zero
// rates, as does a degenerate elapsed time. A counter decrease (reset) yields
// a zero rate for that direction, never a negative one.
func (t *RateTracker) Rates(sent, recv uint64, now time.Time) (sentRate, recvRate float64) {
	if t.primed {
		elapsed := now.Sub(t.lastTime).Seconds()
		if elapsed > 0 {
			if sent >= t.lastSent {
				sentRate = float64(sent-t.lastSent) / elapsed
			}
			if recv >= t.lastRecv {
				recvRate = float64(recv-t.lastRecv) / elapsed
			}
		}
	}

	t.lastSent = sent
	t.lastRecv = recv
	t.lastTime = now
	t.primed = true

	return sentRate, recvRate
}
