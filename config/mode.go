package config

import (
	"os"
	"strings"
)

// ModeEnvKey selects the environment mode.
const ModeEnvKey = "GO_ENV_MODE"

type Mode string

const (
	DevMode  Mode = "development"
	ProMode  Mode = "production"
	TestMode Mode = "test"
)

// ParseMode maps common spellings onto a Mode; unknown values are DevMode.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// CurrentMode reads GO_ENV_MODE.
func CurrentMode() Mode {
	return ParseMode(os.Getenv(ModeEnvKey))
}

// fileSuffixes lists the per-mode file name suffixes, most generic first.
func (m Mode) fileSuffixes() []string {
	switch m {
	case ProMode:
		return []string{"production", "prod"}
	case TestMode:
		return []string{"test"}
	default:
		return []string{"development", "dev"}
	}
}
