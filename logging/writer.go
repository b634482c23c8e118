package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	openWriters   []*lumberjack.Logger
	openWritersMu sync.Mutex
)

func newFileWriter(cfg Config, level string) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Director, level+".log"),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	openWritersMu.Lock()
	openWriters = append(openWriters, w)
	openWritersMu.Unlock()
	return w
}

// getWriteSyncer returns nil when cfg has neither a directory nor terminal output.
func getWriteSyncer(cfg Config, level string) zapcore.WriteSyncer {
	var syncers []zapcore.WriteSyncer
	if cfg.LogInTerminal {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if cfg.Director != "" {
		syncers = append(syncers, zapcore.AddSync(newFileWriter(cfg, level)))
	}
	switch len(syncers) {
	case 0:
		return nil
	case 1:
		return syncers[0]
	default:
		return zapcore.NewMultiWriteSyncer(syncers...)
	}
}

// CloseAllWriters closes every rotated file opened by NewLogger.
func CloseAllWriters() error {
	openWritersMu.Lock()
	defer openWritersMu.Unlock()

	var lastErr error
	for _, w := range openWriters {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	openWriters = nil
	return lastErr
}
