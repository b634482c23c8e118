package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leeforge/webresult/logging"
	"github.com/leeforge/webresult/render/httpresult"
	"github.com/leeforge/webresult/response"
)

// Recover turns a handler panic into a 500 Error Response. http.ErrAbortHandler
// is re-raised so net/http can abort the connection. When the handler had
// already started the response, the panic is only logged.
func Recover(w *httpresult.Writer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			tw := &trackingWriter{ResponseWriter: rw}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logging.FromContext(r.Context()).Error("http.panic.recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Bool("response_started", tw.started),
					zap.Stack("stack"),
				)
				if tw.started {
					return
				}
				// The panic value stays in the log, never in the body.
				w.Write(rw, r, response.FailWith(
					response.ErrorObjectf(http.StatusInternalServerError, "unexpected server error").
						With(response.WithStatusTitle()),
				))
			}()
			next.ServeHTTP(tw, r)
		})
	}
}

// trackingWriter records whether anything reached the client.
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
