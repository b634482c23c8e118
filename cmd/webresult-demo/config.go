package main

import (
	"github.com/leeforge/webresult/config"
	"github.com/leeforge/webresult/logging"
)

type ServerConfig struct {
	Addr         string `mapstructure:"addr" default:":8080"`
	MaxBodyBytes int64  `mapstructure:"max-body-bytes" default:"1048576"`
}

type PaginationConfig struct {
	DefaultLimit uint64 `mapstructure:"default-limit" default:"100"`
	MaxLimit     uint64 `mapstructure:"max-limit" default:"1000"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Logging    logging.Config   `mapstructure:"logging"`
}

// loadConfig reads config/*.yaml (or $CONFIG_PATH) with WEBRESULT_*
// environment overrides. Missing files leave the defaults in place.
func loadConfig() (Config, error) {
	opts := config.DefaultConfigOptions()
	opts.EnvPrefix = "webresult"
	opts.AllowMissing = true

	c, err := config.NewConfig(opts)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Logging: logging.DefaultConfig()}
	if err := c.BindWithDefaults(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
