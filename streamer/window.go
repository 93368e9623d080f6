package streamer

import (
	"context"

	apperrors "github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/stream"
)

// window is one prefetch batch: up to N in-flight operations plus the
// channel their completions land on, in completion order.
type window[R any] struct {
	entries   int
	completed chan completionEntry[R]
}

func newWindow[R any](n int) *window[R] {
	return &window[R]{completed: make(chan completionEntry[R], n)}
}

// dispatchInto dispatches req and registers its completion with w.
func (s *Streamer[Q, R]) dispatchInto(ctx context.Context, w *window[R], req Q) {
	id := req.ID()
	op := s.dispatch(ctx, req)
	w.entries++
	go watchCompletion(ctx, id, op, w.completed)
}

// runWindowed keeps at most prefetch dispatched-but-unyielded requests
// outstanding. It drains one window in completion order, refilling one
// request into the next window per yielded result, then swaps windows
// until the source is exhausted and the last window has drained.
func (s *Streamer[Q, R]) runWindowed(ctx context.Context, src stream.Iterator[Q], out chan<- item[R], log *logger.Logger) (int, error) {
	defer src.Close()

	n := s.prefetch
	exhausted := false

	// markExhausted fires the end-of-input hook exactly once.
	markExhausted := func() {
		if !exhausted {
			exhausted = true
			s.hooks.HandleEndOfInput(ctx)
		}
	}

	// Fill the initial window.
	cur := newWindow[R](n)
	for cur.entries < n {
		req, ok, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, s.emitFault(ctx, out, log, err)
		}
		if !ok {
			markExhausted()
			break
		}
		s.dispatchInto(ctx, cur, req)
	}

	// Empty input is a caller usage error, not an engine fault: report
	// it and end the stream with zero results.
	if cur.entries == 0 {
		log.Error("received an empty request stream, check the caller's input iterator",
			logger.Fields("code", string(apperrors.ErrCodeEmptyInput), "prefetch", n))
		return 0, nil
	}

	yielded := 0
	for cur.entries > 0 {
		s.reportCounters(log)
		next := newWindow[R](n)
		for received := 0; received < cur.entries; received++ {
			select {
			case entry := <-cur.completed:
				res := s.consume(ctx, entry)
				if !s.emit(ctx, out, res) {
					return yielded, ctx.Err()
				}
				yielded++
				// One slot freed, one slot refilled.
				if !exhausted {
					req, ok, err := src.Next(ctx)
					if err != nil {
						if ctx.Err() != nil {
							return yielded, ctx.Err()
						}
						return yielded, s.emitFault(ctx, out, log, err)
					}
					if ok {
						s.dispatchInto(ctx, next, req)
					} else {
						markExhausted()
					}
				}
			case <-ctx.Done():
				return yielded, ctx.Err()
			}
		}
		cur = next
	}
	return yielded, nil
}

// reportCounters logs the dispatcher's sent/received counters before a
// drain pass. Gated on the debug toggle, the logger's debug level, and
// the dispatcher actually exposing Counters.
func (s *Streamer[Q, R]) reportCounters(log *logger.Logger) {
	if !s.debug || s.counters == nil || !log.DebugEnabled() {
		return
	}
	sent := s.counters.Sent()
	received := s.counters.Received()
	log.Debug("dispatcher counters", logger.Fields(
		"sent", sent,
		"received", received,
		"pending", sent-received,
	))
}
