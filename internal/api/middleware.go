package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLogger puts a request-scoped logger in the context and writes one
// line per request once the route has been resolved, tagged with the route
// pattern and, for session routes, the session ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
		})
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(logger.NewContext(r.Context(), log)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
			if id := rctx.URLParam("id"); id != "" {
				log = log.WithField("session_id", id)
			}
		}
		log = log.WithFields(map[string]any{
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		})

		switch {
		case status >= 500:
			log.Error("%s -> %d", route, status)
		case status >= 400:
			log.Warn("%s -> %d", route, status)
		default:
			log.Info("%s -> %d", route, status)
		}
	})
}

// recoverer turns a handler panic into an INTERNAL_ERROR response unless the
// handler had already started writing.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log := logger.FromContext(r.Context())
			log.Error("panic recovered: %v", rec)
			log.Debug("%s", debug.Stack())

			if ww, ok := w.(middleware.WrapResponseWriter); ok && ww.Status() != 0 {
				return
			}
			writeError(w, errors.NewInternalError(nil), nil)
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeaders marks every response as uncacheable JSON-only content.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
