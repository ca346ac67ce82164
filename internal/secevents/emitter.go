package secevents

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/timex"
)

const (
	defaultQueueSize     = 64
	defaultNotifyTimeout = 5 * time.Second
)

// Emitter publishes events in the background. Emit never blocks the caller
// and never reports failure; delivery errors are only logged.
type Emitter struct {
	notifier Notifier
	logger   logging.Logger
	clock    timex.Clock
	timeout  time.Duration

	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

type Option func(*Emitter)

func WithClock(c timex.Clock) Option { return func(e *Emitter) { e.clock = c } }

func WithTimeout(d time.Duration) Option { return func(e *Emitter) { e.timeout = d } }

func WithQueueSize(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.queue = make(chan Event, n)
		}
	}
}

// NewEmitter starts the delivery worker. Call Close to stop it.
func NewEmitter(n Notifier, l logging.Logger, opts ...Option) *Emitter {
	e := &Emitter{
		notifier: n,
		logger:   l.With("module", "secevents"),
		clock:    timex.SystemClock{},
		timeout:  defaultNotifyTimeout,
		queue:    make(chan Event, defaultQueueSize),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(e)
	}
	go e.run()
	return e
}

// Emit queues an event of type t. ctx only feeds log records; delivery runs
// with its own deadline so a cancelled caller does not lose the event.
func (e *Emitter) Emit(ctx context.Context, t Type, actorID string, metadata map[string]any) {
	ev := New(t, actorID, metadata, e.clock.Now())

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.logger.Warn(ctx, "security event dropped: emitter closed", "event_type", t)
		return
	}

	select {
	case e.queue <- ev:
	default:
		e.logger.Warn(ctx, "security event dropped: queue full", "event_type", t)
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for ev := range e.queue {
		e.deliver(ev)
	}
}

func (e *Emitter) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			e.logger.Error(ctx, "security event notifier panicked", "event_type", ev.Type, "panic", p)
		}
	}()

	if err := e.notifier.Notify(ctx, ev); err != nil {
		e.logger.Warn(ctx, "security event not delivered", "event_type", ev.Type, "error", err)
		return
	}
	e.logger.Debug(ctx, "security event delivered", "event_type", ev.Type, "event_id", ev.ID)
}

// Close stops accepting events and waits until queued ones are delivered.
func (e *Emitter) Close() {
	e.once.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()
	})
	<-e.done
}
