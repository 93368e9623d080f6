// Package streamer coordinates the dispatch/result lifecycle for a
// possibly unbounded sequence of requests: requests are read from a
// source, handed to a Dispatcher in source order, and their outcomes are
// re-emitted to the caller as a lazy sequence in completion order, each
// correlated to its originating request exactly once.
//
// Two flow-control policies are available. With no prefetch every request
// is dispatched the moment it is read. With a positive prefetch the
// engine keeps a sliding window of at most N dispatched-but-unyielded
// requests, giving the dispatcher backpressure.
//
//	d := streamer.DispatchFunc[Req, Resp](submit)
//	s := streamer.New[Req, Resp](d, streamer.WithPrefetch(32))
//
//	results := s.Stream(ctx, stream.FromChan(requests))
//	defer results.Close()
//	for {
//	    res, ok, err := results.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    if res.Failed() {
//	        log.Warn("request failed", logger.Fields("request_id", res.RequestID))
//	        continue
//	    }
//	    use(res.Value)
//	}
//
// Per-request failures ride inside their Result and leave the rest of the
// stream untouched. A failing request source terminates the stream with a
// SOURCE_FAILED error from Next.
package streamer
