package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/teris-io/shortid"
)

// Metric names registered by the server at startup.
const (
	MetricRequestsTotal = "RequestsTotal"
	MetricErrorsTotal   = "ErrorsTotal"
)

func (s *GroupSpaceApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeJson(w, errResp.StatusCode, errResp)
				return
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *GroupSpaceApp) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId, err := shortid.Generate()
		if err != nil {
			// logging id only, the request proceeds without one
			s.log.Printf("generate request id: %v", err)
		}
		w.Header().Set("X-Request-Id", requestId)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.stats.Incr(MetricRequestsTotal)
		if rec.status >= http.StatusInternalServerError {
			s.stats.Incr(MetricErrorsTotal)
		}

		s.log.Printf("%s %s %s %d %s", requestId, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
