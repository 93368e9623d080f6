package streamer

import "github.com/google/uuid"

// Request is a unit of work with an identifier that is unique and stable
// for the request's lifetime. The payload shape is transport-defined.
type Request interface {
	ID() string
}

// Envelope wraps an arbitrary payload with a generated request id, for
// payloads that carry no identifier of their own.
type Envelope[T any] struct {
	RequestID string
	Payload   T
}

// NewEnvelope wraps payload with a freshly minted unique id.
func NewEnvelope[T any](payload T) Envelope[T] {
	return Envelope[T]{RequestID: uuid.NewString(), Payload: payload}
}

// ID returns the envelope's request id.
func (e Envelope[T]) ID() string { return e.RequestID }
