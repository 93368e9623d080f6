package streamer

import "context"

// Dispatcher hands requests to the transport that actually performs
// them.
//
// Dispatch must return promptly with a handle to the request's eventual
// outcome. Ordinary per-request failures must surface through the
// returned operation, never synchronously: a dispatcher that cannot even
// submit should return Failed(err).
//
// A Dispatcher may be shared across concurrent streams and must tolerate
// concurrent Dispatch calls.
type Dispatcher[Q Request, R any] interface {
	Dispatch(ctx context.Context, req Q) *InFlight[R]
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc[Q Request, R any] func(ctx context.Context, req Q) *InFlight[R]

// Dispatch calls f.
func (f DispatchFunc[Q, R]) Dispatch(ctx context.Context, req Q) *InFlight[R] {
	return f(ctx, req)
}

// Counters is an optional capability a Dispatcher may implement to
// expose how many requests it has sent and how many responses came
// back. The engine checks for it once at construction and includes the
// counters in its debug diagnostics when present.
type Counters interface {
	Sent() int64
	Received() int64
}
