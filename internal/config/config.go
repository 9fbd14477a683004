// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads bentomake settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/goplus/bento/internal/env"
	"github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BENTO_"

const maxConfigFileSize = 1 << 20

// Config holds bentomake settings.
type Config struct {
	BuildDir string        `koanf:"build_dir"`
	DistDir  string        `koanf:"dist_dir"`
	Jobs     int           `koanf:"jobs"`
	Log      LogConfig     `koanf:"log"`
	Metrics  MetricsConfig `koanf:"metrics"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsConfig controls the per-command metrics textfile.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
	// File defaults to <build_dir>/metrics.prom.
	File string `koanf:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BuildDir: "build",
		DistDir:  "dist",
		Jobs:     runtime.NumCPU(),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads settings with this precedence, highest first:
//
//  1. BENTO_* environment variables (BENTO_LOG_LEVEL -> log.level)
//  2. the YAML file at path, or the default config file when path is empty
//  3. Default()
//
// A missing default config file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := env.ConfigFile()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		content, err := readConfigFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, err
		}
	}

	if err := k.Load(kenv.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config file %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps BENTO_LOG_LEVEL to log.level and BENTO_BUILD_DIR to
// build_dir: only the first underscore after a section name splits.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(key, "_")
	if ok && (section == "log" || section == "metrics") {
		return section + "." + field
	}
	return key
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.BuildDir == "" {
		return errors.New("build_dir must not be empty")
	}
	if c.DistDir == "" {
		return errors.New("dist_dir must not be empty")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}
