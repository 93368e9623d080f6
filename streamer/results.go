package streamer

import (
	"context"

	apperrors "github.com/kbukum/streamkit/errors"
)

// item carries a result or a terminal error through the engine's output
// channel.
type item[R any] struct {
	res Result[R]
	err error
}

// Results is the pull side of a stream: a lazy, forward-only sequence of
// results. It satisfies stream.Iterator[Result[R]], so the stream
// package's terminals work on it directly.
//
// Results is single-use and must be consumed from one goroutine.
type Results[R any] struct {
	ch     <-chan item[R]
	cancel context.CancelFunc
	err    error
	done   bool
	closed bool
}

// Next returns the next result. Returns (zero, false, nil) when the
// stream is exhausted and (zero, false, err) after a terminal failure
// such as a broken request source.
//
// Per-request failures are not terminal: they arrive as results whose
// Err field is set.
func (r *Results[R]) Next(ctx context.Context) (Result[R], bool, error) {
	var zero Result[R]
	if r.closed {
		return zero, false, apperrors.StreamClosed()
	}
	if r.done {
		return zero, false, r.err
	}
	// A dead ctx never consumes a result, even if one is ready.
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	select {
	case it, open := <-r.ch:
		if !open {
			r.done = true
			return zero, false, nil
		}
		if it.err != nil {
			r.done = true
			r.err = it.err
			return zero, false, it.err
		}
		return it.res, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Collect pulls every remaining result into a slice, then closes the
// stream.
func (r *Results[R]) Collect(ctx context.Context) ([]Result[R], error) {
	defer r.Close()
	var out []Result[R]
	for {
		res, ok, err := r.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, res)
	}
}

// ForEach pulls every remaining result and calls fn for each, then
// closes the stream. Iteration stops at the first terminal error or
// error from fn.
func (r *Results[R]) ForEach(ctx context.Context, fn func(context.Context, Result[R]) error) error {
	defer r.Close()
	for {
		res, ok, err := r.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, res); err != nil {
			return err
		}
	}
}

// Close abandons the stream and releases the engine's goroutines.
// Already-dispatched operations run to completion inside the dispatcher
// and their outcomes are discarded. Close is idempotent; Next returns a
// STREAM_CLOSED error afterwards.
func (r *Results[R]) Close() error {
	if !r.closed {
		r.closed = true
		r.cancel()
	}
	return nil
}
