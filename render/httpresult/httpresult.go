// Package httpresult renders response.Result values on net/http, and
// therefore on any router built on it such as chi.
package httpresult

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leeforge/webresult/logging"
	"github.com/leeforge/webresult/render"
	"github.com/leeforge/webresult/response"
)

// PanicFn is called after the fallback body has been written for a Result
// that could not be encoded.
type PanicFn func(http.ResponseWriter, *http.Request, error)

// DefaultPanicFn treats an unencodable Result as a programming error.
func DefaultPanicFn(_ http.ResponseWriter, _ *http.Request, err error) {
	panic(err)
}

// HandlerFunc is a handler that answers with a Result.
type HandlerFunc func(*http.Request) response.Result

// Writer renders Results. The zero value is not usable, use New.
type Writer struct {
	panicFn   PanicFn
	logger    logging.Logger
	localizer *response.Localizer
	traceIDs  bool
	observer  Observer
}

// Observer is told about every Result a Writer renders.
type Observer interface {
	// ObserveResult receives the response status and the number of error
	// objects, 0 for success.
	ObserveResult(status, errors int)
	ObserveEncodeFailure()
}

// Option configures a Writer.
type Option func(*Writer)

// WithPanicFn replaces DefaultPanicFn.
func WithPanicFn(fn PanicFn) Option {
	return func(w *Writer) {
		if fn != nil {
			w.panicFn = fn
		}
	}
}

// WithLogger pins the logger. Without it the request logger stored by
// logging.HTTPMiddleware (or the global one) is used.
func WithLogger(l logging.Logger) Option {
	return func(w *Writer) {
		w.logger = l
	}
}

// WithLocalizer translates error titles and details using the request's
// Accept-Language header.
func WithLocalizer(l *response.Localizer) Option {
	return func(w *Writer) {
		w.localizer = l
	}
}

// WithTraceIDs fills the id of error objects that have none with the
// request trace id.
func WithTraceIDs() Option {
	return func(w *Writer) {
		w.traceIDs = true
	}
}

// WithObserver reports rendered Results to o, typically a metrics.Collector.
func WithObserver(o Observer) Option {
	return func(w *Writer) {
		w.observer = o
	}
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{panicFn: DefaultPanicFn}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Default is used by the package-level helpers.
var Default = New()

// Write renders res on rw with the Default writer.
func Write(rw http.ResponseWriter, r *http.Request, res response.Result) {
	Default.Write(rw, r, res)
}

// Handle adapts fn with the Default writer.
func Handle(fn HandlerFunc) http.Handler {
	return Default.Handler(fn)
}

// Handler adapts fn to http.Handler.
func (w *Writer) Handler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		w.Write(rw, r, fn(r))
	})
}

// Write renders res on rw. Nothing must have been written to rw yet.
func (w *Writer) Write(rw http.ResponseWriter, r *http.Request, res response.Result) {
	res = w.prepare(r, res)
	log := w.requestLogger(r)

	out, err := render.Render(res)
	if err != nil {
		log.Error("render.encode_failed", zap.Error(err))
		if w.observer != nil {
			w.observer.ObserveEncodeFailure()
		}
		w.writeRendered(rw, r, render.Fallback())
		w.panicFn(rw, r, err)
		return
	}

	errCount := 0
	if errs, failed := res.Errors(); failed {
		errCount = errs.Len()
		log.Debug("render.failure",
			zap.Int("status", out.Status),
			zap.Int("errors", errCount),
		)
	}
	if w.observer != nil {
		w.observer.ObserveResult(out.Status, errCount)
	}
	w.writeRendered(rw, r, out)
}

func (w *Writer) prepare(r *http.Request, res response.Result) response.Result {
	if res.IsOk() {
		return res
	}
	if w.localizer != nil {
		res = res.Localize(w.localizer.Printer(r.Header.Get("Accept-Language")))
	}
	if w.traceIDs {
		if traceID := logging.GetTraceID(r.Context()); traceID != "" {
			res = res.MapErrors(func(e response.ErrorObject) response.ErrorObject {
				if e.ID == "" {
					e.ID = traceID
				}
				return e
			})
		}
	}
	return res
}

func (w *Writer) writeRendered(rw http.ResponseWriter, r *http.Request, out *render.Rendered) {
	h := rw.Header()
	for k, v := range out.Header {
		h[k] = v
	}
	rw.WriteHeader(out.Status)
	if _, err := rw.Write(out.Body); err != nil {
		w.requestLogger(r).Error("render.write_failed", zap.Error(err))
	}
}

func (w *Writer) requestLogger(r *http.Request) logging.Logger {
	if w.logger == nil {
		return logging.FromContext(r.Context())
	}
	return logging.WithContext(w.logger, r.Context())
}
