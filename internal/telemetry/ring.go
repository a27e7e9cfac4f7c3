package telemetry

// ring is a fixed-capacity FIFO buffer. Adding to a full ring evicts the
// oldest item. Not safe for concurrent use; callers hold their own lock.
type ring[T any] struct {
	buf  []T
	head int
	size int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity <= 0 {
		capacity = 100
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) add(item T) {
	r.buf[r.head] = item
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// items returns the contents oldest first.
func (r *ring[T]) items() []T {
	out := make([]T, r.size)
	if r.size < len(r.buf) {
		copy(out, r.buf[:r.size])
		return out
	}
	copy(out, r.buf[r.head:])
	copy(out[len(r.buf)-r.head:], r.buf[:r.head])
	return out
}

func (r *ring[T]) clear() {
	r.head = 0
	r.size = 0
}
