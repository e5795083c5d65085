package pipeline

import (
	"fmt"
	"sync"
)

// OrderedBuffer hands values to a release callback in ordinal order,
// holding back values that arrive early. Parallel frame workers finish out
// of order; the buffer lets the frame sink observe them in sequence.
//
// Release runs with the buffer locked, so it is never called concurrently.
type OrderedBuffer[T any] struct {
	next    int
	pending map[int]T
	release func(ordinal int, v T) error
	err     error
	mu      sync.Mutex
}

// NewOrderedBuffer creates a buffer whose first released ordinal is first.
func NewOrderedBuffer[T any](first int, release func(ordinal int, v T) error) *OrderedBuffer[T] {
	return &OrderedBuffer[T]{
		next:    first,
		pending: make(map[int]T, defaultPendingCapacity),
		release: release,
	}
}

// Put adds the value for ordinal and releases every value that is now in
// sequence. After a release fails, Put keeps returning that error and
// releases nothing further.
func (b *OrderedBuffer[T]) Put(ordinal int, v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return b.err
	}
	if ordinal < b.next {
		return fmt.Errorf("ordinal %d already released", ordinal)
	}
	if _, dup := b.pending[ordinal]; dup {
		return fmt.Errorf("ordinal %d already pending", ordinal)
	}
	b.pending[ordinal] = v

	for {
		ready, ok := b.pending[b.next]
		if !ok {
			return nil
		}
		delete(b.pending, b.next)
		if err := b.release(b.next, ready); err != nil {
			b.err = err
			return err
		}
		b.next++
	}
}

// Pending returns the number of values held back waiting for an earlier
// ordinal.
func (b *OrderedBuffer[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
