package logging

import (
	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"
)

// Config is the logging section of the service configuration.
type Config struct {
	// Director is the directory for rotated log files. Empty disables file output.
	Director string `mapstructure:"director" json:"director" yaml:"director"`

	// Level is the minimum level (debug, info, warn, error, dpanic, panic, fatal).
	Level string `mapstructure:"level" json:"level" yaml:"level" default:"info"`

	// Format is json or console.
	Format string `mapstructure:"format" json:"format" yaml:"format" default:"json"`

	Prefix     string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" yaml:"time-format" default:"2006-01-02T15:04:05.000Z07:00"`

	// LogInTerminal mirrors every entry to stdout.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" yaml:"log-in-terminal"`

	MaxAge     int  `mapstructure:"max-age" json:"maxAge" yaml:"max-age" default:"7"`
	MaxSize    int  `mapstructure:"max-size" json:"maxSize" yaml:"max-size" default:"100"`
	MaxBackups int  `mapstructure:"max-backups" json:"maxBackups" yaml:"max-backups" default:"10"`
	Compress   bool `mapstructure:"compress" json:"compress" yaml:"compress"`

	ShowLineNumber bool `mapstructure:"show-line-number" json:"showLineNumber" yaml:"show-line-number"`
}

// DefaultConfig logs info and above as JSON to stdout only.
func DefaultConfig() Config {
	cfg := Config{LogInTerminal: true}
	cfg.applyDefaults()
	return cfg
}

// ZapLevel converts Level, falling back to info for unknown names.
func (c Config) ZapLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (c *Config) applyDefaults() {
	// Only zero fields are filled, so explicit values survive.
	_ = defaults.Set(c)
}
