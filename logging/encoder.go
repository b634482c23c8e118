package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func timeEncoder(cfg Config) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(cfg.Prefix + t.Format(cfg.TimeFormat))
	}
}

// GetEncoder returns a JSON or console encoder for cfg.
func GetEncoder(cfg Config) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     timeEncoder(cfg),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if cfg.Format == "console" {
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// getZapCores builds one core per level at or above cfg.Level so every
// level lands in its own file.
func getZapCores(cfg Config) []zapcore.Core {
	enc := GetEncoder(cfg)
	cores := make([]zapcore.Core, 0, 7)
	for level := cfg.ZapLevel(); level <= zapcore.FatalLevel; level++ {
		ws := getWriteSyncer(cfg, level.String())
		if ws == nil {
			continue
		}
		cores = append(cores, zapcore.NewCore(enc, ws, exactLevel(level)))
	}
	return cores
}

func exactLevel(level zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool { return l == level }
}
