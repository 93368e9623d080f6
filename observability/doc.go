// Package observability provides OpenTelemetry tracing and metrics integration
// for streaming workloads.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanStream)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	metrics.RecordDispatch(ctx)
//
// Stream-level tracking ties a span and the stream metrics together:
//
//	oc := observability.NewOperationContext("my-service", "stream.windowed", streamID, metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanStream)
//	defer oc.EndOperation(ctx, span, "ok", nil)
package observability
