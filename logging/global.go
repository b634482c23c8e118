package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	globalLogger Logger
	globalMu     sync.RWMutex
)

// Global returns the process logger, creating a default one on first use.
func Global() Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewLogger(DefaultConfig())
	}
	return globalLogger
}

// SetGlobal replaces the process logger.
func SetGlobal(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Init installs a logger built from cfg as the process logger.
func Init(cfg Config) Logger {
	l := NewLogger(cfg)
	SetGlobal(l)
	return l
}

func Info(msg string, fields ...zap.Field)  { Global().Info(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Global().Error(msg, fields...) }

// Sync flushes the process logger.
func Sync() error {
	return Global().Sync()
}
