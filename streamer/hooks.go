package streamer

import "context"

// Hooks are the two extension points the engine offers around result
// delivery.
type Hooks[R any] interface {
	// HandleResult transforms a raw outcome before it reaches the
	// caller. An error marks that result as failed without affecting
	// the rest of the stream.
	HandleResult(ctx context.Context, result R) (R, error)
	// HandleEndOfInput is invoked exactly once when the request source
	// is exhausted, before the stream finishes draining. Use it for
	// out-of-band "no more requests" signaling to the transport.
	HandleEndOfInput(ctx context.Context)
}

// NopHooks is the default Hooks implementation: identity transform and a
// no-op end-of-input signal.
type NopHooks[R any] struct{}

func (NopHooks[R]) HandleResult(_ context.Context, result R) (R, error) { return result, nil }

func (NopHooks[R]) HandleEndOfInput(context.Context) {}

// HookFuncs adapts plain functions to the Hooks interface.
// Nil fields keep the default behavior.
type HookFuncs[R any] struct {
	OnResult     func(ctx context.Context, result R) (R, error)
	OnEndOfInput func(ctx context.Context)
}

func (h HookFuncs[R]) HandleResult(ctx context.Context, result R) (R, error) {
	if h.OnResult == nil {
		return result, nil
	}
	return h.OnResult(ctx, result)
}

func (h HookFuncs[R]) HandleEndOfInput(ctx context.Context) {
	if h.OnEndOfInput != nil {
		h.OnEndOfInput(ctx)
	}
}
