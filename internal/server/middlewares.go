package server

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// withMethodMiddleware rejects requests with the wrong HTTP method.
func withMethodMiddleware(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next(w, r)
	}
}

// withAuthorizationMiddleware rejects requests the authorizer does not
// accept.
func withAuthorizationMiddleware(authz Authorizer, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := authz.Authorize(r); err != nil {
			handleError(w, err)
			return
		}

		next(w, r)
	}
}

// withRequestBodyLimitMiddleware caps the request body size.
func withRequestBodyLimitMiddleware(limit int64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next(w, r)
	}
}

// withObservabilityMiddleware traces and logs every request.
func (s *Server) withObservabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		ctx, span := s.tp.Start(
			r.Context(),
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.url", r.URL.String()),
				attribute.String("http.host", r.Host),
				attribute.String("http.remote_addr", r.RemoteAddr),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		// Wrapped response writer to capture the status code
		wrw := &customResponseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrw, r.WithContext(ctx))

		duration := time.Since(startTime)
		span.SetAttributes(attribute.Int("http.status_code", wrw.status))

		logFields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrw.status),
			zap.Duration("duration_ms", duration),
		}

		msg := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		switch {
		case wrw.status >= 500:
			s.logger.Error(msg, logFields...)
			span.RecordError(fmt.Errorf("server error: %s", http.StatusText(wrw.status)))
		case wrw.status >= 400:
			s.logger.Warn(msg, logFields...)
			span.RecordError(fmt.Errorf("client error: %s", http.StatusText(wrw.status)))
		default:
			s.logger.Info(msg, logFields...)
		}
	})
}

// customResponseWriter captures the response status code.
type customResponseWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code before delegating.
func (w *customResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
