package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/leeforge/webresult/logging"
)

// TraceIDHeader carries the trace id in both directions.
const TraceIDHeader = "X-Trace-ID"

// TraceID reuses the inbound X-Trace-ID or mints a UUIDv7, echoes it on the
// response and stores it where logging and the renderers can find it.
func TraceID() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = newTraceID()
			}

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(logging.SetTraceID(r.Context(), traceID)))
		})
	}
}

// GetTraceID returns the trace id of r, or "".
func GetTraceID(r *http.Request) string {
	return logging.GetTraceID(r.Context())
}

func newTraceID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
