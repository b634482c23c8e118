// Package config loads layered viper configuration into structs.
//
// Files are read from BasePath in this order, later files overriding
// earlier ones: <name>.<type>, <name>.local.<type>, then for each mode
// suffix <name>.<mode>.<type> and <name>.<mode>.local.<type>. Environment
// variables (KEY_SUBKEY, optionally prefixed) override every file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type ConfigOptions struct {
	BasePath  string
	FileName  string
	FileType  string
	EnvPrefix string
	// Mode overrides GO_ENV_MODE when set.
	Mode Mode
	// AllowMissing accepts a directory without any config file.
	AllowMissing bool
	WatchAble    bool
	OnChange     func(e fsnotify.Event)
}

func DefaultConfigOptions() ConfigOptions {
	basePath := os.Getenv("CONFIG_PATH")
	if basePath == "" {
		basePath = "config"
	}
	return ConfigOptions{
		BasePath: basePath,
		FileName: "config",
		FileType: "yaml",
	}
}

type Config struct {
	instance   *viper.Viper
	opts       ConfigOptions
	files      []string
	watchOnce  sync.Once
	watchMutex sync.RWMutex
}

func NewConfig(optsArr ...ConfigOptions) (*Config, error) {
	opts := DefaultConfigOptions()
	if len(optsArr) > 0 {
		opts = optsArr[0]
	}
	if opts.Mode == "" {
		opts.Mode = CurrentMode()
	}

	files := configFilePaths(opts)
	if len(files) == 0 && !opts.AllowMissing {
		return nil, fmt.Errorf("config: no configuration files found in %s", opts.BasePath)
	}

	v, err := load(opts, files)
	if err != nil {
		return nil, err
	}
	return &Config{instance: v, opts: opts, files: files}, nil
}

// Files lists the files that were merged, in order.
func (c *Config) Files() []string {
	return append([]string(nil), c.files...)
}

// Bind decodes the configuration into instance, a pointer. With WatchAble
// set, instance is decoded again whenever a loaded file changes.
func (c *Config) Bind(instance any) error {
	if c == nil || c.instance == nil {
		return fmt.Errorf("config: instance is nil")
	}
	if instance == nil {
		return fmt.Errorf("config: target is nil")
	}

	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	if err := c.instance.Unmarshal(instance); err != nil {
		return fmt.Errorf("config: unmarshal (path: %s, file: %s.%s): %w",
			c.opts.BasePath, c.opts.FileName, c.opts.FileType, err)
	}

	if c.opts.WatchAble && len(c.files) > 0 {
		c.watchOnce.Do(func() { c.watch(instance) })
	}
	return nil
}

// BindWithDefaults fills `default` tags for anything the files and the
// environment left unset.
func (c *Config) BindWithDefaults(instance any) error {
	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("config: set defaults: %w", err)
	}
	if err := c.Bind(instance); err != nil {
		return err
	}
	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("config: set defaults after unmarshal: %w", err)
	}
	return nil
}

func (c *Config) Get(key string) any {
	c.watchMutex.RLock()
	defer c.watchMutex.RUnlock()
	return c.instance.Get(key)
}

func (c *Config) Set(key string, value any) {
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()
	c.instance.Set(key, value)
}

// watch reloads every file on change since any of them may override keys.
func (c *Config) watch(instance any) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	for _, f := range c.files {
		_ = w.Add(f)
	}

	go func() {
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
					continue
				}
				c.reload(instance, e)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (c *Config) reload(instance any, e fsnotify.Event) {
	v, err := load(c.opts, c.files)
	if err != nil {
		return
	}

	c.watchMutex.Lock()
	c.instance = v
	err = v.Unmarshal(instance)
	c.watchMutex.Unlock()

	if err == nil && c.opts.OnChange != nil {
		c.opts.OnChange(e)
	}
}

func load(opts ConfigOptions, files []string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType(opts.FileType)

	for _, path := range files {
		tmp := viper.New()
		tmp.SetConfigFile(path)
		if err := tmp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := v.MergeConfigMap(tmp.AllSettings()); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()
	applyEnvOverrides(v, opts.EnvPrefix)

	return v, nil
}

// applyEnvOverrides copies environment values over file keys so that
// Unmarshal, which ignores AutomaticEnv for keys it does not know, sees them.
func applyEnvOverrides(v *viper.Viper, envPrefix string) {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(replacer.Replace(key))
		if envPrefix != "" {
			envKey = strings.ToUpper(envPrefix) + "_" + envKey
		}
		if value, ok := os.LookupEnv(envKey); ok && value != "" {
			v.Set(key, value)
		}
	}
}

func configFilePaths(opts ConfigOptions) []string {
	names := []string{opts.FileName, opts.FileName + ".local"}
	for _, suffix := range opts.Mode.fileSuffixes() {
		names = append(names,
			opts.FileName+"."+suffix,
			opts.FileName+"."+suffix+".local",
		)
	}

	var files []string
	for _, name := range names {
		path := filepath.Join(opts.BasePath, name+"."+opts.FileType)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	return files
}
