package streamer

// Result is one yielded item: the outcome of a single request,
// correlated back to its originating request id.
type Result[R any] struct {
	// RequestID identifies the request this result answers.
	RequestID string
	// Value is the transformed outcome. Meaningful only when Err is nil.
	Value R
	// Err carries the request's failure, if it failed. A failed result
	// does not affect other in-flight or future requests.
	Err error
}

// Failed reports whether the request failed.
func (r Result[R]) Failed() bool { return r.Err != nil }
