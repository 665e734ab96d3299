// Package observability initializes OpenTelemetry tracing for the client.
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracing, "tatva", log)
//	defer observability.Shutdown(ctx, tp, log)
//
//	ctx, span := observability.StartSpan(ctx, "vendors.list")
//	defer span.End()
//
// The HTTP pipeline starts a client span for every call and propagates
// the trace context, so spans started here become their parents.
package observability
