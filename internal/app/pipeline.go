// Package app wires the chart pipeline: fetch once, build the chart, draw it
// on demand and drive the tooltip from serialized pointer events.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/peloton/internal/adapters/mq/queue"
	"github.com/okian/peloton/internal/adapters/mq/worker"
	"github.com/okian/peloton/internal/adapters/source"
	"github.com/okian/peloton/internal/adapters/surface"
	"github.com/okian/peloton/internal/domain/interaction"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/internal/domain/plot"
	"github.com/okian/peloton/internal/domain/timeparse"
	"github.com/okian/peloton/internal/render"
	"github.com/okian/peloton/pkg/logger"
	"github.com/okian/peloton/pkg/metrics"
)

const (
	defaultQueueSize = 64
	shutdownTimeout  = 5 * time.Second
)

// Pipeline owns one chart and its tooltip.
type Pipeline struct {
	ID string

	src       source.Source
	layout    render.Layout
	queueSize int
	logger    logger.Logger

	mu      sync.RWMutex
	chart   *render.Chart
	loading sync.Mutex

	// Only the dispatcher goroutine touches ctrl.
	ctrl       *interaction.Controller
	tip        atomic.Pointer[interaction.Tooltip]
	queue      *queue.InMemoryQueue
	dispatcher *worker.Dispatcher
	started    bool
	stopped    bool

	enters   atomic.Int64
	leaves   atomic.Int64
	rejected atomic.Int64
}

// Stats is a snapshot for monitoring.
type Stats struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	Started       bool   `json:"started"`
	Loaded        bool   `json:"loaded"`
	Records       int    `json:"records"`
	State         string `json:"state"`
	Enters        int64  `json:"enters"`
	Leaves        int64  `json:"leaves"`
	Rejected      int64  `json:"rejected"`
	QueueLength   int    `json:"queueLength"`
	QueueCapacity int    `json:"queueCapacity"`
}

// Initialize creates a pipeline reading from src. Nothing is fetched until
// Load.
func Initialize(src source.Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		ID:        uuid.NewString(),
		src:       src,
		layout:    render.DefaultLayout(),
		queueSize: defaultQueueSize,
		ctrl:      interaction.NewController(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("pipeline")
	}
	p.logger = p.logger.With(logger.String("pipeline_id", p.ID))
	tip := p.ctrl.Tooltip()
	p.tip.Store(&tip)
	return p
}

// Start runs the pointer dispatcher. It is safe to call more than once.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrStopped
	}
	if p.started {
		return nil
	}

	p.queue = queue.NewInMemoryQueue(queue.WithCapacity(p.queueSize))
	p.dispatcher = worker.NewDispatcher(p.queue, pointerHandler{p: p},
		worker.WithLogger(p.logger.Named("dispatcher")),
	)
	go p.dispatcher.Run(ctx)

	p.started = true
	p.logger.Info(ctx, "pipeline started",
		logger.String("source", p.src.Location()),
		logger.Int("queue_size", p.queueSize),
	)
	return nil
}

// Stop drains the dispatcher. Pending pointer events fail with ErrStopped.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.stopped = true
		p.mu.Unlock()
		return
	}
	p.stopped = true
	q, d := p.queue, p.dispatcher
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = q.Close()
	err := d.Shutdown(ctx)
	if err != nil {
		p.logger.Warn(ctx, "dispatcher did not stop cleanly", logger.Error(err))
	}
	p.logger.Info(ctx, "pipeline stopped", logger.Bool("clean", err == nil))
}

// Load fetches the dataset once and builds the chart. On any error nothing
// is kept and a later Load may retry.
func (p *Pipeline) Load(ctx context.Context) error {
	p.loading.Lock()
	defer p.loading.Unlock()

	if _, err := p.Chart(); err == nil {
		return nil
	}

	start := time.Now()
	records, err := p.src.Fetch(ctx)
	metrics.RecordFetch(float64(time.Since(start).Milliseconds()))
	if err != nil {
		kind := "unknown"
		var fe *source.FetchError
		if errors.As(err, &fe) {
			kind = string(fe.Kind)
		}
		metrics.RecordFetchError(kind)
		metrics.RecordErrorByComponent("source", kind)
		p.logger.Error(ctx, "dataset fetch failed", logger.String("source", p.src.Location()), logger.Error(err))
		return err
	}

	chart, err := render.Build(records, p.layout)
	if err != nil {
		if errors.Is(err, timeparse.ErrParse) {
			metrics.RecordParseError()
		}
		metrics.RecordErrorByComponent("pipeline", "build")
		p.logger.Error(ctx, "chart build failed", logger.Int("records", len(records)), logger.Error(err))
		return fmt.Errorf("build chart: %w", err)
	}

	p.mu.Lock()
	p.chart = chart
	p.mu.Unlock()

	metrics.UpdateRecordsLoaded(len(records))
	p.logger.Info(ctx, "chart loaded",
		logger.Int("records", len(records)),
		logger.Int("markers", len(chart.Markers)),
		logger.Float64("fetch_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// Chart returns the loaded chart.
func (p *Pipeline) Chart() (*render.Chart, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.chart == nil {
		return nil, ErrNotLoaded
	}
	return p.chart, nil
}

// Markers returns the plotted markers in dataset order.
func (p *Pipeline) Markers() ([]plot.Marker, error) {
	chart, err := p.Chart()
	if err != nil {
		return nil, err
	}
	out := make([]plot.Marker, len(chart.Markers))
	copy(out, chart.Markers)
	return out, nil
}

// Render draws the chart on canvas.
func (p *Pipeline) Render(canvas surface.Canvas) error {
	chart, err := p.Chart()
	if err != nil {
		return err
	}
	start := time.Now()
	if err := render.Draw(canvas, chart); err != nil {
		metrics.RecordErrorByComponent("render", "draw")
		return err
	}
	metrics.RecordRender(surfaceName(canvas), float64(time.Since(start).Microseconds())/1000, len(chart.Markers))
	return nil
}

// SVG renders the chart as an SVG document.
func (p *Pipeline) SVG() ([]byte, error) {
	chart, err := p.Chart()
	if err != nil {
		return nil, err
	}
	doc := surface.NewSVG(chart.Width, chart.SurfaceHeight())
	if err := p.Render(doc); err != nil {
		return nil, err
	}
	return doc.Bytes()
}

func surfaceName(c surface.Canvas) string {
	switch c.(type) {
	case *surface.SVG:
		return "svg"
	case *surface.Recorder:
		return "recorder"
	default:
		return "other"
	}
}

// Enter reports the pointer entering marker index at (x, y) and returns the
// resulting tooltip.
func (p *Pipeline) Enter(ctx context.Context, index int, x, y float64) (interaction.Tooltip, error) {
	return p.submit(ctx, model.PointerEvent{Kind: model.PointerEnter, Index: index, X: x, Y: y})
}

// Leave reports the pointer leaving the active marker.
func (p *Pipeline) Leave(ctx context.Context) (interaction.Tooltip, error) {
	return p.submit(ctx, model.PointerEvent{Kind: model.PointerLeave, Index: -1})
}

func (p *Pipeline) submit(ctx context.Context, e model.PointerEvent) (interaction.Tooltip, error) {
	p.mu.RLock()
	started, stopped, loaded := p.started, p.stopped, p.chart != nil
	q, d := p.queue, p.dispatcher
	p.mu.RUnlock()

	switch {
	case stopped || !started:
		return interaction.Tooltip{}, ErrStopped
	case !loaded:
		return interaction.Tooltip{}, ErrNotLoaded
	}

	e.ID = uuid.NewString()
	e.At = time.Now()
	reply := make(chan queue.Result, 1)
	if err := q.Enqueue(ctx, queue.Event{PointerEvent: e, Reply: reply}); err != nil {
		p.rejected.Add(1)
		switch {
		case errors.Is(err, queue.ErrFull):
			return interaction.Tooltip{}, ErrBackpressure
		case errors.Is(err, queue.ErrClosed):
			return interaction.Tooltip{}, ErrStopped
		default:
			return interaction.Tooltip{}, err
		}
	}

	select {
	case r := <-reply:
		return result(r)
	case <-d.Done():
		select {
		case r := <-reply:
			return result(r)
		default:
			return interaction.Tooltip{}, ErrStopped
		}
	case <-ctx.Done():
		return interaction.Tooltip{}, ctx.Err()
	}
}

func result(r queue.Result) (interaction.Tooltip, error) {
	if errors.Is(r.Err, worker.ErrStopped) {
		return interaction.Tooltip{}, ErrStopped
	}
	return r.Tooltip, r.Err
}

// Tooltip returns the latest tooltip state.
func (p *Pipeline) Tooltip() interaction.Tooltip {
	return *p.tip.Load()
}

// Stats returns a monitoring snapshot.
func (p *Pipeline) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := Stats{
		ID:       p.ID,
		Source:   p.src.Location(),
		Started:  p.started && !p.stopped,
		Loaded:   p.chart != nil,
		State:    p.Tooltip().State.String(),
		Enters:   p.enters.Load(),
		Leaves:   p.leaves.Load(),
		Rejected: p.rejected.Load(),
	}
	if p.chart != nil {
		s.Records = len(p.chart.Markers)
	}
	if p.queue != nil {
		s.QueueLength = p.queue.Len()
		s.QueueCapacity = p.queue.Cap()
	}
	return s
}

// pointerHandler applies events on the dispatcher goroutine.
type pointerHandler struct {
	p *Pipeline
}

func (h pointerHandler) Handle(_ context.Context, e model.PointerEvent) (interaction.Tooltip, error) {
	p := h.p
	chart, err := p.Chart()
	if err != nil {
		return interaction.Tooltip{}, err
	}

	var tip interaction.Tooltip
	switch e.Kind {
	case model.PointerEnter:
		if e.Index < 0 || e.Index >= len(chart.Markers) {
			p.rejected.Add(1)
			return p.ctrl.Tooltip(), fmt.Errorf("%w: %d", ErrUnknownMarker, e.Index)
		}
		tip = p.ctrl.Enter(e.Index, chart.Markers[e.Index].Record, interaction.Point{X: e.X, Y: e.Y})
		p.enters.Add(1)
	case model.PointerLeave:
		tip = p.ctrl.Leave()
		p.leaves.Add(1)
	default:
		p.rejected.Add(1)
		return p.ctrl.Tooltip(), fmt.Errorf("unknown pointer event kind %q", e.Kind)
	}
	p.tip.Store(&tip)
	return tip, nil
}
