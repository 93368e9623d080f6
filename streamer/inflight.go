package streamer

import "context"

// InFlight represents one dispatched request's eventual outcome. It is
// created by a Dispatcher, resolved exactly once with Complete or Fail,
// and its outcome is observed exactly once by the engine at the point
// the corresponding result is yielded.
type InFlight[R any] struct {
	done chan struct{}
	val  R
	err  error
}

// NewInFlight returns an unresolved operation. The dispatcher resolves
// it later from whatever goroutine performs the work.
func NewInFlight[R any]() *InFlight[R] {
	return &InFlight[R]{done: make(chan struct{})}
}

// Resolved returns an operation already completed with val.
func Resolved[R any](val R) *InFlight[R] {
	op := NewInFlight[R]()
	op.Complete(val)
	return op
}

// Failed returns an operation already failed with err. Dispatchers that
// cannot even submit a request should return this instead of panicking.
func Failed[R any](err error) *InFlight[R] {
	op := NewInFlight[R]()
	op.Fail(err)
	return op
}

// Complete resolves the operation with a value.
// Resolving an operation twice panics.
func (f *InFlight[R]) Complete(val R) {
	f.val = val
	close(f.done)
}

// Fail resolves the operation with an error.
// Resolving an operation twice panics.
func (f *InFlight[R]) Fail(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the operation settles.
// The channel conveys completion only, never the outcome.
func (f *InFlight[R]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the operation has been resolved.
func (f *InFlight[R]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Outcome blocks until the operation settles and returns its value or
// error. ctx bounds the wait.
func (f *InFlight[R]) Outcome(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
