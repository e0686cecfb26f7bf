package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"shareit/internal/metrics"
	"shareit/internal/models"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestIDMiddleware ensures every request carries an X-Request-Id, generating
// one when the client sent none, and echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(models.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(models.HeaderRequestID, requestID)
		}
		w.Header().Set(models.HeaderRequestID, requestID)
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs every request with its route template, status and
// duration, and feeds the Prometheus counters.
func LoggingMiddleware(logger *zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			dur := time.Since(start)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tmpl
				}
			}

			metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))
			metrics.ObserveHTTP(endpoint, dur.Seconds())

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", r.Header.Get(models.HeaderRequestID)).
				Int("status", recorder.status).
				Dur("duration", dur).
				Msg("http request")
		})
	}
}
