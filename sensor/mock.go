package sensor

import (
	"errors"
	"math"
)

// ErrMockFailure is returned by Mock on injected failures.
var ErrMockFailure = errors.New("sensor: mock read failure")

// Mock generates a deterministic sine wave for demo mode and tests.
type Mock struct {
	name      string
	amplitude float64
	offset    float64
	period    int // reads per full cycle
	reads     int
	// FailEvery makes every n-th read fail. Zero disables failures.
	FailEvery int
}

// NewMock creates a mock source oscillating around offset.
func NewMock(name string, offset, amplitude float64, period int) *Mock {
	if period <= 0 {
		period = 1
	}
	return &Mock{
		name:      name,
		amplitude: amplitude,
		offset:    offset,
		period:    period,
	}
}

func (m *Mock) Name() string {
	return m.name
}

func (m *Mock) Read() (float64, error) {
	m.reads++
	if m.FailEvery > 0 && m.reads%m.FailEvery == 0 {
		return 0, ErrMockFailure
	}
	phase := 2 * math.Pi * float64(m.reads-1) / float64(m.period)
	return m.offset + m.amplitude*math.Sin(phase), nil
}
