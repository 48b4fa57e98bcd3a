package sink

import (
	"context"
	"sync"

	"github.com/darrenvechain/flight-telemetry/telemetry"
)

// Memory keeps written samples in memory. It can be switched unavailable to
// stand in for storage that has gone away, e.g. an unmounted SD card.
type Memory struct {
	mu          sync.Mutex
	samples     []telemetry.Sample
	unavailable bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Write(_ context.Context, sample telemetry.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrUnavailable
	}
	m.samples = append(m.samples, sample)
	return nil
}

// SetAvailable toggles whether writes succeed.
func (m *Memory) SetAvailable(available bool) {
	m.mu.Lock()
	m.unavailable = !available
	m.mu.Unlock()
}

// Samples returns a copy of everything written so far.
func (m *Memory) Samples() []telemetry.Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]telemetry.Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}
