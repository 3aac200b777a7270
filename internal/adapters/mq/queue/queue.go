// Package queue carries pointer events from request handlers to the single
// dispatcher that owns the tooltip state.
//
// Enqueue never blocks: a full queue rejects the event so callers can shed
// load instead of piling up behind the dispatcher.
package queue

import (
	"context"
	"sync"

	"github.com/okian/peloton/internal/domain/interaction"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/pkg/metrics"
)

const defaultQueueCapacity = 64

// Result is what the dispatcher answers for one event.
type Result struct {
	Tooltip interaction.Tooltip
	Err     error
}

// Event is a pointer event plus the channel its result is delivered on.
// Reply must be buffered with room for one Result.
type Event struct {
	model.PointerEvent
	Reply chan<- Result
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event, failing with ErrFull or ErrClosed.
	Enqueue(ctx context.Context, e Event) error

	// Dequeue returns the channel events are delivered on. It is closed
	// once the queue is closed and drained.
	Dequeue() <-chan Event

	// Len returns the number of pending events.
	Len() int

	// Close stops accepting events.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

// Enqueue adds an event to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.reject("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		q.reject("context_cancelled")
		return err
	}

	select {
	case q.events <- e:
		metrics.UpdateQueue(len(q.events), q.capacity)
		return nil
	default:
		q.reject("queue_full")
		return ErrFull
	}
}

func (q *InMemoryQueue) reject(reason string) {
	metrics.RecordQueueEnqueueError(reason)
	metrics.RecordErrorByComponent("queue", reason)
}

// Dequeue returns the receive side of the queue. There is exactly one
// channel, so a single consumer sees events in enqueue order.
func (q *InMemoryQueue) Dequeue() <-chan Event {
	return q.events
}

// Len returns the number of pending events.
func (q *InMemoryQueue) Len() int {
	size := len(q.events)
	metrics.UpdateQueue(size, q.capacity)
	return size
}

// Cap returns the queue capacity.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close stops accepting events. Pending events stay readable.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
