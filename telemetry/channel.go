package telemetry

import (
	"context"

	"github.com/darrenvechain/flight-telemetry/queue"
	"github.com/ethereum/go-ethereum/common/mclock"
)

// Writer persists one sample. Returning an error leaves the sample queued.
type Writer interface {
	Write(ctx context.Context, sample Sample) error
}

// Channel caches the readings of one instrument until they are drained.
// It is not safe for concurrent use.
type Channel struct {
	name    string
	samples *queue.Queue[Sample]
	nextSeq uint64
	dropped uint64
}

func NewChannel(name string, capacity int) *Channel {
	return &Channel{
		name:    name,
		samples: queue.New[Sample](capacity),
	}
}

func (c *Channel) Name() string {
	return c.name
}

// Record queues a reading taken at t. It returns false when the channel is
// full and the reading was dropped. Dropped readings still use up a sequence
// number so the gap shows up downstream.
func (c *Channel) Record(t mclock.AbsTime, value float64) bool {
	sample := Sample{
		Channel: c.name,
		Seq:     c.nextSeq,
		Time:    t,
		Value:   value,
	}
	c.nextSeq++
	if !c.samples.Enqueue(sample) {
		c.dropped++
		return false
	}
	return true
}

// Pending returns the number of queued samples.
func (c *Channel) Pending() int {
	return c.samples.Len()
}

// Dropped returns how many readings were discarded because the channel was full.
func (c *Channel) Dropped() uint64 {
	return c.dropped
}

// Drain writes up to max queued samples to w, oldest first. A sample is only
// removed once w accepted it. Draining stops at the first write error, which
// is returned together with the number of samples written. max <= 0 drains
// everything.
func (c *Channel) Drain(ctx context.Context, w Writer, max int) (int, error) {
	written := 0
	for max <= 0 || written < max {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		sample, ok := c.samples.Peek()
		if !ok {
			break
		}
		if err := w.Write(ctx, sample); err != nil {
			return written, err
		}
		c.samples.Dequeue()
		written++
	}
	return written, nil
}
