package config

import "time"

const (
	// Queue sizing. Each 100 samples is one second of data at 100 Hz.
	QueueCapacity = 3000

	// Sampling
	TickInterval = 10 * time.Millisecond // 100 Hz, pad and ascent rate

	// Draining to storage
	DrainEvery        = 10  // ticks between drain passes
	DrainBatch        = 500 // max samples written per channel per pass
	FinalDrainTimeout = 5 * time.Second
)

// DefaultChannels are the mock instruments sampled in demo mode.
var DefaultChannels = []string{"baro", "accel", "gyro"}
