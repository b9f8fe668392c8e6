// Package storage provides thread-safe bounded storage for metric samples.
package storage

import "sync"

// SampleRing is a thread-safe circular buffer of float64 samples. When full,
// appending drops the oldest sample, so it always holds the most recent
// window.
type SampleRing struct {
	mu       sync.RWMutex
	data     []float64
	head     int // index where the next sample will be written
	count    int
	capacity int
}

// NewSampleRing creates a SampleRing holding at most capacity samples.
func NewSampleRing(capacity int) *SampleRing {
	if capacity <= 0 {
		capacity = 200
	}
	return &SampleRing{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Append adds a sample, overwriting the oldest one if the ring is full.
func (r *SampleRing) Append(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[r.head] = v
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
}

// Values returns all stored samples in chronological order. The returned
// slice is a copy and safe to hold across further appends.
func (r *SampleRing) Values() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]float64, r.count)
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		result[i] = r.data[(start+i)%r.capacity]
	}
	return result
}

// Latest returns the most recent sample, or false if the ring is empty.
func (r *SampleRing) Latest() (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return 0, false
	}
	return r.data[(r.head-1+r.capacity)%r.capacity], true
}

// Len returns the number of samples currently stored.
func (r *SampleRing) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Cap returns the maximum number of samples the ring can hold.
func (r *SampleRing) Cap() int {
	return r.capacity
}

// Reset removes all samples.
func (r *SampleRing) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head = 0
	r.count = 0
}
