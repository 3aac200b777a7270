// Package worker runs the single pointer dispatcher.
//
// Exactly one goroutine reads the queue and calls the Handler, so handler
// invocations never overlap and the state they touch needs no lock.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/peloton/internal/adapters/mq/queue"
	"github.com/okian/peloton/internal/domain/interaction"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/pkg/logger"
	"github.com/okian/peloton/pkg/metrics"
)

// ErrStopped is replied to events still pending when the dispatcher stops.
var ErrStopped = errors.New("dispatcher stopped")

// Handler applies one pointer event.
type Handler interface {
	Handle(ctx context.Context, e model.PointerEvent) (interaction.Tooltip, error)
}

// Queue defines how the dispatcher receives events.
type Queue interface {
	Dequeue() <-chan queue.Event
}

// Dispatcher feeds queued pointer events to a Handler, one at a time.
type Dispatcher struct {
	queue   Queue
	handler Handler
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewDispatcher creates a dispatcher. Call Run to start it.
func NewDispatcher(q Queue, h Handler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		queue:    q,
		handler:  h,
		name:     "dispatcher",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.Get().Named(d.name)
	}
	return d
}

// Run processes events until ctx is done, Shutdown is called or the queue
// is closed and drained. Events left behind are answered with ErrStopped.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)

	events := d.queue.Dequeue()
	for {
		// Stop signals win over pending events.
		select {
		case <-ctx.Done():
			d.drain(events)
			return
		case <-d.shutdown:
			d.drain(events)
			return
		default:
		}

		select {
		case <-ctx.Done():
			d.drain(events)
			return
		case <-d.shutdown:
			d.drain(events)
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			d.process(ctx, e)
		}
	}
}

// Shutdown stops the dispatcher and waits for it to exit.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	select {
	case <-d.shutdown:
	default:
		close(d.shutdown)
	}

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		d.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (d *Dispatcher) Done() <-chan struct{} { return d.done }

func (d *Dispatcher) process(ctx context.Context, e queue.Event) { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	tip, err := d.handler.Handle(ctx, e.PointerEvent)
	if !e.At.IsZero() {
		metrics.RecordDispatchLatency(float64(time.Since(e.At).Microseconds()) / 1000)
	}
	if err != nil {
		metrics.RecordErrorByComponent("dispatcher", "handle_error")
		d.logger.Debug(ctx, "pointer event rejected",
			logger.String("event_id", e.ID),
			logger.String("kind", string(e.Kind)),
			logger.Error(err),
		)
	} else {
		if mErr := metrics.RecordPointerEvent(string(e.Kind)); mErr != nil {
			d.logger.Warn(ctx, "unrecorded pointer event", logger.Error(mErr))
		}
		metrics.UpdateTooltipActive(tip.State == interaction.Active)
	}
	reply(e, queue.Result{Tooltip: tip, Err: err})
}

func (d *Dispatcher) drain(events <-chan queue.Event) {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			reply(e, queue.Result{Err: ErrStopped})
		default:
			return
		}
	}
}

func reply(e queue.Event, r queue.Result) { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	if e.Reply == nil {
		return
	}
	select {
	case e.Reply <- r:
	default:
	}
}
