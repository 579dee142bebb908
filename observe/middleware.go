package observe

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestMiddleware returns HTTP middleware that traces each request
// and logs method, path, status, and duration on completion.
func RequestMiddleware(obs Observer) func(http.Handler) http.Handler {
	tracer := obs.Tracer()
	logger := obs.Logger()
	durationHist, _ := obs.Meter().Float64Histogram(
		"warden.http.duration_ms",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.route", r.URL.Path),
				),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			elapsed := time.Since(start)
			span.SetAttributes(attribute.Int("http.status_code", rec.status))
			if durationHist != nil {
				durationHist.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.Int("http.status_code", rec.status),
				))
			}

			logger.Info(ctx, "http request",
				Field{Key: "method", Value: r.Method},
				Field{Key: "path", Value: r.URL.Path},
				Field{Key: "status", Value: rec.status},
				Field{Key: "duration_ms", Value: elapsed.Milliseconds()},
			)
		})
	}
}
