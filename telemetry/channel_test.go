package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/mclock"
)

type recordingWriter struct {
	samples []Sample
	failAt  int // fail the write with this index (1-based), 0 never fails
	calls   int
}

var errWrite = errors.New("write failed")

func (w *recordingWriter) Write(_ context.Context, sample Sample) error {
	w.calls++
	if w.failAt != 0 && w.calls == w.failAt {
		return errWrite
	}
	w.samples = append(w.samples, sample)
	return nil
}

func TestChannel_Record(t *testing.T) {
	c := NewChannel("baro", 2)
	if !c.Record(10, 1.5) || !c.Record(20, 2.5) {
		t.Fatalf("expected samples to be accepted")
	}
	if c.Record(30, 3.5) {
		t.Errorf("expected third sample to be dropped")
	}

	if c.Pending() != 2 {
		t.Errorf("expected 2 pending, got %d", c.Pending())
	}
	if c.Dropped() != 1 {
		t.Errorf("expected 1 dropped, got %d", c.Dropped())
	}

	// the next accepted sample skips the dropped sequence number
	w := &recordingWriter{}
	if _, err := c.Drain(context.Background(), w, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Record(40, 4.5)
	if _, err := c.Drain(context.Background(), w, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedSeq := []uint64{0, 1, 3}
	if len(w.samples) != len(expectedSeq) {
		t.Fatalf("expected %d samples, got %v", len(expectedSeq), w.samples)
	}
	for i, s := range w.samples {
		if s.Seq != expectedSeq[i] {
			t.Errorf("expected seq %d, got %d", expectedSeq[i], s.Seq)
		}
		if s.Channel != "baro" {
			t.Errorf("expected channel baro, got %s", s.Channel)
		}
	}
	if w.samples[2].Time != mclock.AbsTime(40) || w.samples[2].Value != 4.5 {
		t.Errorf("unexpected sample %v", w.samples[2])
	}
}

func TestChannel_DrainStopsOnError(t *testing.T) {
	c := NewChannel("accel", 10)
	for i := 0; i < 5; i++ {
		c.Record(mclock.AbsTime(i), float64(i))
	}

	w := &recordingWriter{failAt: 3}
	n, err := c.Drain(context.Background(), w, 0)
	if !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 written, got %d", n)
	}
	if c.Pending() != 3 {
		t.Errorf("expected 3 pending, got %d", c.Pending())
	}

	// the failed sample is retried first
	n, err = c.Drain(context.Background(), w, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 written, got %d", n)
	}
	for i, s := range w.samples {
		if s.Seq != uint64(i) {
			t.Errorf("expected seq %d, got %d", i, s.Seq)
		}
	}
}

func TestChannel_DrainMax(t *testing.T) {
	c := NewChannel("gyro", 10)
	for i := 0; i < 5; i++ {
		c.Record(mclock.AbsTime(i), float64(i))
	}

	n, err := c.Drain(context.Background(), &recordingWriter{}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || c.Pending() != 3 {
		t.Errorf("expected 2 written and 3 pending, got %d and %d", n, c.Pending())
	}
}

func TestChannel_DrainCancelled(t *testing.T) {
	c := NewChannel("gyro", 10)
	c.Record(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := c.Drain(ctx, &recordingWriter{}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 0 || c.Pending() != 1 {
		t.Errorf("expected nothing drained, got %d written and %d pending", n, c.Pending())
	}
}
