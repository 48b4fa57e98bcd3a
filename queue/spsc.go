package queue

import "sync/atomic"

// SPSC is a fixed-size FIFO ring queue for exactly one producer goroutine and
// one consumer goroutine. It follows the same drop-newest policy as Queue.
//
// Only the producer may call Enqueue. Only the consumer may call Peek and
// Dequeue. Len, IsEmpty and Cap are safe from either side but may be stale.
type SPSC[T any] struct {
	data []T
	// read and write are unbounded counters, reduced modulo len(data) on access.
	// write is only stored by the producer, read only by the consumer.
	read  atomic.Uint64
	write atomic.Uint64
}

// NewSPSC creates a new single-producer/single-consumer queue with a given capacity.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity <= 0 {
		panic("queue: capacity must be positive")
	}
	return &SPSC[T]{
		data: make([]T, capacity),
	}
}

// Enqueue adds an element at the back of the queue, returning false if the
// queue was full and the element was dropped.
func (q *SPSC[T]) Enqueue(element T) bool {
	w := q.write.Load()
	if w-q.read.Load() == uint64(len(q.data)) {
		return false
	}
	q.data[w%uint64(len(q.data))] = element
	// publish the slot before the consumer can observe the new counter
	q.write.Store(w + 1)
	return true
}

// Peek returns the oldest element without removing it.
func (q *SPSC[T]) Peek() (T, bool) {
	r := q.read.Load()
	if r == q.write.Load() {
		var zeroValue T
		return zeroValue, false
	}
	return q.data[r%uint64(len(q.data))], true
}

// Dequeue removes and returns the oldest element. It is a no-op when empty.
func (q *SPSC[T]) Dequeue() (T, bool) {
	r := q.read.Load()
	if r == q.write.Load() {
		var zeroValue T
		return zeroValue, false
	}
	element := q.data[r%uint64(len(q.data))]
	q.read.Store(r + 1)
	return element, true
}

// IsEmpty reports whether the queue holds no elements.
func (q *SPSC[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of queued elements.
func (q *SPSC[T]) Len() int {
	// load read first so the difference can never be negative
	r := q.read.Load()
	return int(q.write.Load() - r)
}

// Cap returns the fixed capacity of the queue.
func (q *SPSC[T]) Cap() int {
	return len(q.data)
}
