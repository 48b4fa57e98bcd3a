package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/darrenvechain/flight-telemetry/config"
	"github.com/darrenvechain/flight-telemetry/sensor"
	"github.com/darrenvechain/flight-telemetry/sink"
	"github.com/darrenvechain/flight-telemetry/telemetry"
	"github.com/ethereum/go-ethereum/common/mclock"
)

type Options struct {
	Capacity   int           // per channel
	Interval   time.Duration // between ticks
	DrainEvery int           // ticks between drain passes
	DrainBatch int           // per channel per pass, <= 0 drains everything
}

func DefaultOptions() Options {
	return Options{
		Capacity:   config.QueueCapacity,
		Interval:   config.TickInterval,
		DrainEvery: config.DrainEvery,
		DrainBatch: config.DrainBatch,
	}
}

type ChannelStats struct {
	Name    string
	Pending int
	Dropped uint64
}

type source struct {
	sensor  sensor.Source
	channel *telemetry.Channel
	full    bool
	logger  *slog.Logger
}

// Recorder samples its sources on every tick into one channel each and
// periodically drains the channels into a sink. Samples stay queued while
// the sink is failing.
type Recorder struct {
	clock   mclock.Clock
	sink    sink.Sink
	opts    Options
	sources []*source
	ticks   uint64
	status  atomic.Int32
	logger  *slog.Logger
}

func New(clock mclock.Clock, s sink.Sink, opts Options, sources ...sensor.Source) *Recorder {
	defaults := DefaultOptions()
	if opts.Capacity <= 0 {
		opts.Capacity = defaults.Capacity
	}
	if opts.Interval <= 0 {
		opts.Interval = defaults.Interval
	}
	if opts.DrainEvery <= 0 {
		opts.DrainEvery = defaults.DrainEvery
	}

	r := &Recorder{
		clock:  clock,
		sink:   s,
		opts:   opts,
		logger: slog.With("component", "recorder"),
	}
	for _, src := range sources {
		r.sources = append(r.sources, &source{
			sensor:  src,
			channel: telemetry.NewChannel(src.Name(), opts.Capacity),
			logger:  slog.With("channel", src.Name()),
		})
	}
	r.status.Store(Initialised)
	return r
}

func (r *Recorder) Status() int {
	return int(r.status.Load())
}

// Tick reads every source once and queues the readings.
func (r *Recorder) Tick() {
	now := r.clock.Now()
	r.ticks++
	for _, src := range r.sources {
		value, err := src.sensor.Read()
		if err != nil {
			src.logger.Warn("failed to read sensor", "err", err)
			continue
		}
		accepted := src.channel.Record(now, value)
		if !accepted && !src.full {
			src.logger.Warn("channel full, dropping samples", "pending", src.channel.Pending())
		}
		src.full = !accepted
	}
}

// Drain writes queued samples of every channel to the sink. It stops at the
// first failing write and marks the recorder Backlogged.
func (r *Recorder) Drain(ctx context.Context) error {
	return r.drain(ctx, r.opts.DrainBatch)
}

func (r *Recorder) drain(ctx context.Context, batch int) error {
	for _, src := range r.sources {
		n, err := src.channel.Drain(ctx, r.sink, batch)
		if err != nil {
			if ctx.Err() == nil && r.status.CompareAndSwap(Recording, Backlogged) {
				src.logger.Warn("storage unavailable, caching samples", "err", err, "pending", src.channel.Pending())
			}
			return fmt.Errorf("drain %s: %w", src.channel.Name(), err)
		}
		if n > 0 {
			src.logger.Debug("drained", "amount", n, "pending", src.channel.Pending())
		}
	}
	if r.status.CompareAndSwap(Backlogged, Recording) {
		r.logger.Info("storage recovered")
	}
	return nil
}

// Run ticks every Options.Interval until ctx is cancelled, then makes a last
// attempt to drain what is still queued.
func (r *Recorder) Run(ctx context.Context) error {
	r.status.Store(Recording)
	r.logger.Info("starting recorder", "channels", len(r.sources), "interval", r.opts.Interval)

	timer := r.clock.NewTimer(r.opts.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.finalDrain(ctx)
			r.status.Store(Stopped)
			r.logger.Info("stopping recorder", "ticks", r.ticks)
			return nil
		case <-timer.C():
			r.Tick()
			if r.ticks%uint64(r.opts.DrainEvery) == 0 {
				// failures are logged by Drain, samples stay queued for the next pass
				_ = r.Drain(ctx)
			}
			timer.Reset(r.opts.Interval)
		}
	}
}

func (r *Recorder) finalDrain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.FinalDrainTimeout)
	defer cancel()
	if err := r.drain(ctx, 0); err != nil {
		r.logger.Error("failed to drain on shutdown", "err", err)
	}
}

// Stats must not be called concurrently with Run.
func (r *Recorder) Stats() []ChannelStats {
	stats := make([]ChannelStats, 0, len(r.sources))
	for _, src := range r.sources {
		stats = append(stats, ChannelStats{
			Name:    src.channel.Name(),
			Pending: src.channel.Pending(),
			Dropped: src.channel.Dropped(),
		})
	}
	return stats
}
