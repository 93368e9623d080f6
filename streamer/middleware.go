package streamer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// Middleware transforms a Dispatcher by wrapping it. The returned
// dispatcher typically delegates to the original while adding
// cross-cutting behavior (logging, metrics, counting).
type Middleware[Q Request, R any] func(Dispatcher[Q, R]) Dispatcher[Q, R]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (wraps everything else).
//
// Chain(a, b, c)(dispatcher) is equivalent to a(b(c(dispatcher))).
func Chain[Q Request, R any](middlewares ...Middleware[Q, R]) Middleware[Q, R] {
	return func(inner Dispatcher[Q, R]) Dispatcher[Q, R] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithDispatchLogging returns a Middleware that logs each dispatch at
// debug level and, once the operation settles, its duration. The
// settlement watcher never reads the outcome, only its timing.
func WithDispatchLogging[Q Request, R any](log *logger.Logger) Middleware[Q, R] {
	return func(inner Dispatcher[Q, R]) Dispatcher[Q, R] {
		return &loggingDispatcher[Q, R]{inner: inner, log: log}
	}
}

type loggingDispatcher[Q Request, R any] struct {
	inner Dispatcher[Q, R]
	log   *logger.Logger
}

func (l *loggingDispatcher[Q, R]) Dispatch(ctx context.Context, req Q) *InFlight[R] {
	id := req.ID()
	start := time.Now()
	op := l.inner.Dispatch(ctx, req)
	l.log.Debug("request dispatched", logger.Fields(logger.FieldRequestID, id))

	go func() {
		select {
		case <-op.Done():
			l.log.Debug("request settled", logger.Fields(
				logger.FieldRequestID, id,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			))
		case <-ctx.Done():
		}
	}()
	return op
}

// WithDispatchMetrics returns a Middleware that records each request's
// dispatch-to-settlement latency on the streamer.request.duration
// histogram. Outcome-level metrics (yields, failures) are recorded by
// the engine itself, so this middleware only measures timing.
func WithDispatchMetrics[Q Request, R any](metrics *observability.Metrics) Middleware[Q, R] {
	return func(inner Dispatcher[Q, R]) Dispatcher[Q, R] {
		return &metricsDispatcher[Q, R]{inner: inner, metrics: metrics}
	}
}

type metricsDispatcher[Q Request, R any] struct {
	inner   Dispatcher[Q, R]
	metrics *observability.Metrics
}

func (m *metricsDispatcher[Q, R]) Dispatch(ctx context.Context, req Q) *InFlight[R] {
	start := time.Now()
	op := m.inner.Dispatch(ctx, req)

	go func() {
		select {
		case <-op.Done():
			m.metrics.RecordRequestDuration(ctx, time.Since(start))
		case <-ctx.Done():
		}
	}()
	return op
}

// WithDispatchCounting returns a Middleware whose wrapped dispatcher
// exposes the Counters capability: Sent increments on every dispatch,
// Received once the operation settles.
//
// The engine detects Counters on the dispatcher it is handed, so when
// combining middlewares put WithDispatchCounting first in Chain: the
// first middleware is outermost and stays visible to New.
func WithDispatchCounting[Q Request, R any]() Middleware[Q, R] {
	return func(inner Dispatcher[Q, R]) Dispatcher[Q, R] {
		return &countingDispatcher[Q, R]{inner: inner}
	}
}

type countingDispatcher[Q Request, R any] struct {
	inner    Dispatcher[Q, R]
	sent     atomic.Int64
	received atomic.Int64
}

func (c *countingDispatcher[Q, R]) Dispatch(ctx context.Context, req Q) *InFlight[R] {
	op := c.inner.Dispatch(ctx, req)
	c.sent.Add(1)

	go func() {
		select {
		case <-op.Done():
			c.received.Add(1)
		case <-ctx.Done():
		}
	}()
	return op
}

// Sent reports how many requests have been dispatched.
func (c *countingDispatcher[Q, R]) Sent() int64 { return c.sent.Load() }

// Received reports how many dispatched requests have settled.
func (c *countingDispatcher[Q, R]) Received() int64 { return c.received.Load() }
