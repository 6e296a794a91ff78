// Package config loads ctxtree settings: the content-selection regexes,
// the debounce window, watcher ignore globs and the state directory.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved configuration for one workspace.
type Config struct {
	InclusionRegex string        `mapstructure:"inclusion_regex"`
	ExclusionRegex string        `mapstructure:"exclusion_regex"`
	DebounceMs     int           `mapstructure:"debounce_ms"`
	Ignore         []string      `mapstructure:"ignore"`
	StateDir       string        `mapstructure:"state_dir"`
	PollInterval   time.Duration `mapstructure:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InclusionRegex: ".*",
		ExclusionRegex: "",
		DebounceMs:     400,
		Ignore: []string{
			".git/**",
			"**/.git/**",
			"node_modules/**",
			"**/node_modules/**",
			"**/*.tmp",
			"**/*.log",
		},
		StateDir: ".ctxtree",
	}
}

// DebounceWindow converts the configured milliseconds to a duration.
func (c Config) DebounceWindow() time.Duration {
	if c.DebounceMs <= 0 {
		return 400 * time.Millisecond
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Load reads `.ctxtree.yaml` from the workspace root, layered over the
// defaults and the CTXTREE_* environment. A missing config file is not an
// error; the defaults apply.
func Load(workspaceRoot string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".ctxtree")
	v.SetConfigType("yaml")
	v.AddConfigPath(workspaceRoot)
	v.SetEnvPrefix("CTXTREE")
	v.AutomaticEnv()

	v.SetDefault("inclusion_regex", cfg.InclusionRegex)
	v.SetDefault("exclusion_regex", cfg.ExclusionRegex)
	v.SetDefault("debounce_ms", cfg.DebounceMs)
	v.SetDefault("ignore", cfg.Ignore)
	v.SetDefault("state_dir", cfg.StateDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
