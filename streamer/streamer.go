package streamer

import (
	"context"
	goerrors "errors"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/stream"
)

// Streamer coordinates the dispatch/result lifecycle for a sequence of
// requests: it reads requests from a source, hands each to its
// Dispatcher in source order, and re-emits outcomes to the caller in
// completion order, each correlated to its request id and consumed
// exactly once.
//
// A zero prefetch dispatches every request as soon as it is read. A
// positive prefetch bounds dispatched-but-unyielded requests to that
// window size.
type Streamer[Q Request, R any] struct {
	dispatcher Dispatcher[Q, R]
	hooks      Hooks[R]
	counters   Counters
	settings
}

// New builds a Streamer around a dispatcher. The dispatcher's optional
// Counters capability is detected here, once.
func New[Q Request, R any](d Dispatcher[Q, R], opts ...Option) *Streamer[Q, R] {
	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}
	s := &Streamer[Q, R]{
		dispatcher: d,
		hooks:      NopHooks[R]{},
		settings:   st,
	}
	if c, ok := d.(Counters); ok {
		s.counters = c
	}
	return s
}

// WithHooks sets the streamer's hooks, replacing the defaults.
// It returns the streamer for chaining.
func (s *Streamer[Q, R]) WithHooks(h Hooks[R]) *Streamer[Q, R] {
	if h != nil {
		s.hooks = h
	}
	return s
}

// Prefetch returns the configured window size; zero means unbounded.
func (s *Streamer[Q, R]) Prefetch() int { return s.prefetch }

// Stream starts streaming requests from src and returns the pull surface
// for the results. The stream runs until src is exhausted and every
// dispatched operation has been yielded, a terminal error occurs, or the
// returned Results is closed. src is closed when the stream ends.
//
// Requests are dispatched strictly in source order; results are yielded
// strictly in completion order, which may differ.
func (s *Streamer[Q, R]) Stream(ctx context.Context, src stream.Iterator[Q]) *Results[R] {
	sctx, cancel := context.WithCancel(ctx)
	out := make(chan item[R])
	go s.run(sctx, src, out)
	return &Results[R]{ch: out, cancel: cancel}
}

func (s *Streamer[Q, R]) run(ctx context.Context, src stream.Iterator[Q], out chan<- item[R]) {
	defer close(out)

	mode := "stream.unbounded"
	if s.prefetch > 0 {
		mode = "stream.windowed"
	}
	streamID := uuid.NewString()
	log := s.log.WithFields(map[string]interface{}{logger.FieldStreamID: streamID})
	log.Debug("stream starting", logger.Fields("mode", mode, "prefetch", s.prefetch))

	oc := observability.NewOperationContext(s.service, mode, streamID, s.metrics)
	var span trace.Span
	if s.tracing {
		ctx, span = oc.StartSpanForOperation(ctx, observability.SpanStream)
		observability.SetSpanAttribute(ctx, observability.AttrPrefetch, s.prefetch)
	} else if s.metrics != nil {
		s.metrics.RecordStreamStart(ctx)
	}

	var yielded int
	var err error
	if s.prefetch > 0 {
		yielded, err = s.runWindowed(ctx, src, out, log)
	} else {
		yielded, err = s.runUnbounded(ctx, src, out, log)
	}

	status := "ok"
	switch {
	case err == nil:
	case goerrors.Is(err, context.Canceled), goerrors.Is(err, context.DeadlineExceeded):
		status = "canceled"
	default:
		status = "error"
	}
	if s.tracing {
		observability.SetSpanAttribute(ctx, observability.AttrResultCount, yielded)
		oc.EndOperation(ctx, span, status, err)
	} else if s.metrics != nil {
		s.metrics.RecordStreamEnd(ctx, s.service, mode, status, oc.Duration())
	}
	log.Debug("stream finished", logger.Fields("status", status, "results", yielded))
}

// completionEntry pairs a request id with its settled operation. One is
// pushed onto a completion channel the instant the operation finishes,
// without touching the outcome.
type completionEntry[R any] struct {
	id string
	op *InFlight[R]
}

// watchCompletion signals completion of op. It never reads the outcome:
// consumption happens at the yield point so failures stay visible there.
func watchCompletion[R any](ctx context.Context, id string, op *InFlight[R], completions chan<- completionEntry[R]) {
	select {
	case <-op.Done():
		select {
		case completions <- completionEntry[R]{id: id, op: op}:
		case <-ctx.Done():
		}
	case <-ctx.Done():
	}
}

// runUnbounded dispatches every request as soon as it is read and yields
// results as their operations settle. It ends once the source is
// exhausted and every dispatched operation has been yielded.
func (s *Streamer[Q, R]) runUnbounded(ctx context.Context, src stream.Iterator[Q], out chan<- item[R], log *logger.Logger) (int, error) {
	pending := newPendingSet()
	completions := make(chan completionEntry[R])
	exhausted := make(chan struct{})
	allHandled := make(chan struct{})
	fault := make(chan error, 1)
	var handledOnce sync.Once
	closeAllHandled := func() { handledOnce.Do(func() { close(allHandled) }) }

	// Producer: read, dispatch, watch. Never delays dispatch for
	// concurrency reasons. It owns src, so it alone closes it.
	go func() {
		defer src.Close()
		for {
			if ctx.Err() != nil {
				return
			}
			req, ok, err := src.Next(ctx)
			if err != nil {
				if ctx.Err() == nil {
					fault <- err
				}
				return
			}
			if !ok {
				break
			}
			id := req.ID()
			pending.add(id)
			op := s.dispatch(ctx, req)
			go watchCompletion(ctx, id, op, completions)
		}
		s.hooks.HandleEndOfInput(ctx)
		close(exhausted)
		// Empty input, or everything already yielded.
		if pending.empty() {
			closeAllHandled()
		}
	}()

	yielded := 0
	for {
		select {
		case err := <-fault:
			return yielded, s.emitFault(ctx, out, log, err)
		default:
		}

		select {
		case entry := <-completions:
			pending.remove(entry.id)
			res := s.consume(ctx, entry)
			if !s.emit(ctx, out, res) {
				return yielded, ctx.Err()
			}
			yielded++
			if pending.empty() {
				select {
				case <-exhausted:
					closeAllHandled()
				default:
				}
			}
		case <-allHandled:
			return yielded, nil
		case err := <-fault:
			return yielded, s.emitFault(ctx, out, log, err)
		case <-ctx.Done():
			return yielded, ctx.Err()
		}
	}
}

// dispatch hands req to the dispatcher and returns the in-flight
// operation.
func (s *Streamer[Q, R]) dispatch(ctx context.Context, req Q) *InFlight[R] {
	op := s.dispatcher.Dispatch(ctx, req)
	if s.metrics != nil {
		s.metrics.RecordDispatch(ctx)
	}
	return op
}

// consume reads the settled operation's outcome, exactly once, and
// applies the result hook. Failures surface here and only here.
func (s *Streamer[Q, R]) consume(ctx context.Context, entry completionEntry[R]) Result[R] {
	if s.metrics != nil {
		s.metrics.RecordSettled(ctx)
	}
	// The entry is only queued after the operation settled.
	val, err := entry.op.val, entry.op.err
	if err == nil {
		val, err = s.hooks.HandleResult(ctx, val)
	}
	if err != nil {
		err = requestError(entry.id, err)
		if s.metrics != nil {
			s.metrics.RecordFailure(ctx, string(apperrors.CodeOf(err)))
		}
		return Result[R]{RequestID: entry.id, Err: err}
	}
	return Result[R]{RequestID: entry.id, Value: val}
}

// requestError normalizes a per-request failure, keeping structured
// errors as they are.
func requestError(id string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.RequestFailed(id, err)
}

// emit delivers one result to the caller. Returns false if the stream
// context ended first.
func (s *Streamer[Q, R]) emit(ctx context.Context, out chan<- item[R], res Result[R]) bool {
	select {
	case out <- item[R]{res: res}:
		if s.metrics != nil {
			status := "ok"
			if res.Err != nil {
				status = "error"
			}
			s.metrics.RecordYield(ctx, status)
		}
		return true
	case <-ctx.Done():
		return false
	}
}

// emitFault reports a broken request source and terminates the stream
// with a SOURCE_FAILED error.
func (s *Streamer[Q, R]) emitFault(ctx context.Context, out chan<- item[R], log *logger.Logger, err error) error {
	serr := apperrors.SourceFailed(err)
	log.WithError(err).Error("request source failed")
	if s.metrics != nil {
		s.metrics.RecordFailure(ctx, string(apperrors.ErrCodeSourceFailed))
	}
	select {
	case out <- item[R]{err: serr}:
	case <-ctx.Done():
	}
	return serr
}

// pendingSet tracks dispatched request ids whose results have not yet
// been yielded. The producer adds, the consumer removes.
type pendingSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newPendingSet() *pendingSet {
	return &pendingSet{ids: make(map[string]struct{})}
}

func (p *pendingSet) add(id string) {
	p.mu.Lock()
	p.ids[id] = struct{}{}
	p.mu.Unlock()
}

func (p *pendingSet) remove(id string) {
	p.mu.Lock()
	delete(p.ids, id)
	p.mu.Unlock()
}

func (p *pendingSet) empty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids) == 0
}
