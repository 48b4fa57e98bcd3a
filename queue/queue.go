package queue

// Queue represents a fixed-size FIFO ring queue with a generic type.
// When full, new elements are dropped and the queued ones are kept.
// It is NOT safe for concurrent use, see SPSC for that.
type Queue[T any] struct {
	data   []T
	head   int
	length int
}

// New creates a new queue with a given capacity. The backing storage is
// allocated once and never grows.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("queue: capacity must be positive")
	}
	return &Queue[T]{
		data: make([]T, capacity),
	}
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.length == 0
}

// IsFull reports whether the next Enqueue will be dropped.
func (q *Queue[T]) IsFull() bool {
	return q.length == len(q.data)
}

// Enqueue adds a new element at the back of the queue. If the queue is full
// the element is discarded, the queue is left untouched and false is returned.
func (q *Queue[T]) Enqueue(element T) bool {
	if q.IsFull() {
		return false
	}
	q.data[q.index(q.length)] = element
	q.length++
	return true
}

// Peek returns the oldest element without removing it from the queue.
func (q *Queue[T]) Peek() (T, bool) {
	if q.length == 0 {
		var zeroValue T
		return zeroValue, false
	}
	return q.data[q.head], true
}

// Dequeue removes and returns the oldest element from the queue.
// It is a no-op on an empty queue.
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.length == 0 {
		var zeroValue T
		return zeroValue, false
	}
	// the vacated slot keeps its value until a later Enqueue overwrites it
	element := q.data[q.head]
	q.head = q.index(1)
	q.length--
	return element, true
}

// Newest returns the newest element without removing it from the queue.
func (q *Queue[T]) Newest() (T, bool) {
	if q.length == 0 {
		var zeroValue T
		return zeroValue, false
	}
	return q.data[q.index(q.length-1)], true
}

// Len returns the number of elements currently in the queue.
func (q *Queue[T]) Len() int {
	return q.length
}

// Cap returns the fixed capacity of the queue.
func (q *Queue[T]) Cap() int {
	return len(q.data)
}

// Contains accepts a callback to check if an element is in the queue.
func (q *Queue[T]) Contains(matcher func(T) bool) bool {
	found := false
	q.Each(func(element T) bool {
		found = matcher(element)
		return !found
	})
	return found
}

// Each calls fn for every element from oldest to newest until fn returns false.
func (q *Queue[T]) Each(fn func(T) bool) {
	for i := 0; i < q.length; i++ {
		if !fn(q.data[q.index(i)]) {
			return
		}
	}
}

// Reset empties the queue while keeping its storage.
func (q *Queue[T]) Reset() {
	q.head = 0
	q.length = 0
}

// index maps the offset from head to a slot in data.
func (q *Queue[T]) index(offset int) int {
	return (q.head + offset) % len(q.data)
}
