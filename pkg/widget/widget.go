// Package widget drives a visit-counter display. A Controller resolves
// its counter name, fetches the count through the cached client, and
// schedules a single delayed increment per session so rapid reloads are
// not double counted.
package widget

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pagehits/counthub/pkg/client"
)

// State is the controller's rendering state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateDisplayed
	StateError
)

// Renderer receives display updates. Implementations draw into whatever
// surface hosts the widget.
type Renderer interface {
	RenderPlaceholder()
	RenderCount(count int64)
	RenderError()
}

// DefaultIncrementDelay absorbs rapid reloads before the automatic
// increment fires.
const DefaultIncrementDelay = time.Second

// Options configure a Controller.
type Options struct {
	// Name is the explicit counter name. When empty it is derived from Page.
	Name string
	// Page is the hosting page path used to derive the name.
	Page string
	// IncrementDelay overrides DefaultIncrementDelay when positive.
	IncrementDelay time.Duration
	// OnAutoIncrement, if set, observes the outcome of the scheduled
	// increment: the fresh counter on success, nil on failure.
	OnAutoIncrement func(*client.Counter)
	Logger          *zap.Logger
}

// Controller wires the cache layer to a Renderer.
type Controller struct {
	cc       *client.CachedClient
	renderer Renderer
	logger   *zap.Logger
	name     string
	delay    time.Duration
	onAuto   func(*client.Counter)

	mu    sync.Mutex
	state State
	count int64

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

func NewController(cc *client.CachedClient, renderer Renderer, opts Options) *Controller {
	name := opts.Name
	if name == "" {
		name = DeriveName(opts.Page)
	}
	delay := opts.IncrementDelay
	if delay <= 0 {
		delay = DefaultIncrementDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		cc:       cc,
		renderer: renderer,
		logger:   logger,
		name:     name,
		delay:    delay,
		onAuto:   opts.OnAutoIncrement,
		state:    StateIdle,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Name returns the resolved counter name.
func (w *Controller) Name() string { return w.name }

// State returns the current rendering state.
func (w *Controller) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Count returns the last rendered count.
func (w *Controller) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Activate fetches and renders the count, then schedules the
// de-duplicated automatic increment if this session has not counted
// the page yet.
func (w *Controller) Activate(ctx context.Context) {
	w.setState(StateLoading)
	w.renderer.RenderPlaceholder()

	counter := w.cc.FetchCounter(ctx, w.name)
	if counter == nil {
		w.setState(StateError)
		w.renderer.RenderError()
		return
	}
	w.display(counter.Count)

	if !w.cc.HasVisited(ctx, w.name) {
		w.scheduleIncrement()
	}
}

// scheduleIncrement fires once after the delay. The task is not
// cancelled by later controller calls; only Close stops a timer that
// has not fired yet.
func (w *Controller) scheduleIncrement() {
	w.pending.Add(1)
	go func() {
		defer w.pending.Done()

		timer := time.NewTimer(w.delay)
		defer timer.Stop()
		select {
		case <-w.ctx.Done():
			return
		case <-timer.C:
		}

		counter := w.cc.UpdateCounter(w.ctx, w.name, client.ActionIncrement)
		if counter == nil {
			// Leave the session unmarked so a later activation retries.
			w.logger.Warn("auto increment failed", zap.String("name", w.name))
			if w.onAuto != nil {
				w.onAuto(nil)
			}
			return
		}
		w.cc.MarkVisited(w.ctx, w.name)
		w.display(counter.Count)
		if w.onAuto != nil {
			w.onAuto(counter)
		}
	}()
}

// Refresh re-fetches the count and re-renders it.
func (w *Controller) Refresh(ctx context.Context) {
	w.render(w.cc.FetchCounter(ctx, w.name))
}

// Get returns the current counter, cached or fetched. Nil on failure.
func (w *Controller) Get(ctx context.Context) *client.Counter {
	return w.cc.FetchCounter(ctx, w.name)
}

// Increment bumps the count immediately, bypassing the one-per-session
// policy, and re-renders.
func (w *Controller) Increment(ctx context.Context) *client.Counter {
	counter := w.cc.UpdateCounter(ctx, w.name, client.ActionIncrement)
	w.render(counter)
	return counter
}

// Reset zeroes the count and re-renders.
func (w *Controller) Reset(ctx context.Context) *client.Counter {
	counter := w.cc.UpdateCounter(ctx, w.name, client.ActionReset)
	w.render(counter)
	return counter
}

// ClearCache drops the cached snapshot for this widget's counter.
func (w *Controller) ClearCache(ctx context.Context) {
	w.cc.ClearCache(ctx, w.name)
}

// Close cancels a scheduled increment that has not fired and waits for
// in-flight work. The controller must not be used afterwards.
func (w *Controller) Close() {
	w.cancel()
	w.pending.Wait()
}

func (w *Controller) render(counter *client.Counter) {
	if counter == nil {
		w.setState(StateError)
		w.renderer.RenderError()
		return
	}
	w.display(counter.Count)
}

func (w *Controller) display(count int64) {
	w.mu.Lock()
	w.state = StateDisplayed
	w.count = count
	w.mu.Unlock()
	w.renderer.RenderCount(count)
}

func (w *Controller) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}
