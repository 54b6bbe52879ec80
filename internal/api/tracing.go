package api

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// withTracing wraps handlers in a server span named after the logical
// operation (api.inspect, api.create_job, ...) so traces line up with
// the worker's consumer spans.
func (s *Server) withTracing(next http.Handler) http.Handler {
	if s.tracer == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r.URL.Path)
		ctx, span := s.tracer.Start(r.Context(), spanName(r.Method, route), trace.WithSpanKind(trace.SpanKindServer))
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", r.URL.Path),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func spanName(method, route string) string {
	switch {
	case route == "/v1/inspect":
		return "api.inspect"
	case route == "/v1/jobs" && method == http.MethodPost:
		return "api.create_job"
	case strings.HasSuffix(route, "/start"):
		return "api.start_job"
	case route == "/v1/jobs/{id}":
		return "api.get_job"
	default:
		return method + " " + route
	}
}
