package logging

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	// TraceIDKey is the context key for the request trace id.
	TraceIDKey ctxKey = "trace_id"
)

type loggerKey struct{}

// WithContext adds the trace id carried by ctx to logger.
func WithContext(logger Logger, ctx context.Context) Logger {
	if traceID := GetTraceID(ctx); traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}

// GetTraceID returns the trace id stored in ctx or "".
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(TraceIDKey).(string)
	return s
}

// SetTraceID stores traceID in ctx.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// FromContext returns the request logger, or Global when none is stored.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
			return l
		}
	}
	return Global()
}

// ToContext stores logger in ctx.
func ToContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
