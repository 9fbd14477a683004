// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/internal/builtin"
	"github.com/goplus/bento/internal/cmddata"
	"github.com/goplus/bento/internal/config"
	"github.com/goplus/bento/internal/driver"
	"github.com/goplus/bento/internal/env"
	"github.com/goplus/bento/internal/hookfile"
	"github.com/goplus/bento/internal/lockedfile"
	"github.com/goplus/bento/internal/logging"
	"github.com/goplus/bento/internal/metrics"
	"github.com/goplus/bento/pkgs/pkgdesc"
	"go.uber.org/zap"
)

// session is everything one invocation works with.
type session struct {
	cfg     *config.Config
	global  *commands.GlobalContext
	driver  *driver.Driver
	log     *zap.Logger
	metrics *metrics.Recorder

	metricsFile string
	unlock      func() error
}

// openSession loads configuration, the package description, persisted
// arguments and the hook file. With lock set it holds the build directory
// lock until close.
func openSession(opts *Options, gf *globalFlags, lock bool) (s *session, err error) {
	top := opts.Dir
	if top == "" {
		if top, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	top, err = filepath.Abs(top)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(gf.configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", builtin.ErrConfiguration, err)
	}
	if gf.buildDir != "" {
		cfg.BuildDir = gf.buildDir
	}
	if gf.verbose && cfg.Log.Level == "warn" {
		cfg.Log.Level = "info"
	}
	if gf.logLevel != "" {
		cfg.Log.Level = gf.logLevel
	}
	log, err := logging.New(cfg.Log, opts.Stderr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", commands.ErrUsage, err)
	}

	pkg, err := loadPackage(top, gf.bentoInfo)
	if err != nil {
		return nil, err
	}

	s = &session{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	buildDir := env.Resolve(top, cfg.BuildDir)
	storePath := ""
	data := cmddata.New()
	if lock {
		s.unlock, err = lockedfile.MutexAt(filepath.Join(buildDir, ".lock")).Lock()
		if err != nil {
			return nil, err
		}
		storePath = filepath.Join(buildDir, cmddata.FileName)
		if data, err = cmddata.Load(storePath); err != nil {
			return nil, err
		}
	}

	s.global = commands.NewGlobalContext(data)
	if err = builtin.Register(s.global, pkg, builtin.Options{Jobs: cfg.Jobs}); err != nil {
		return nil, err
	}
	if pkg != nil && pkg.HookFile != "" {
		hf, err := hookfile.Load(filepath.Join(pkg.Dir, filepath.FromSlash(pkg.HookFile)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pkgdesc.ErrInvalidPackage, err)
		}
		hf.SetStdout(opts.Stdout)
		hf.SetStderr(opts.Stderr)
		if err := hf.Apply(s.global); err != nil {
			return nil, err
		}
	}

	if cfg.Metrics.Enabled {
		s.metrics = metrics.New()
		s.metricsFile = cfg.Metrics.File
		if s.metricsFile == "" {
			s.metricsFile = filepath.Join(buildDir, "metrics.prom")
		}
	}
	s.driver = driver.New(s.global, driver.Options{
		Session: &commands.Session{
			Pkg:      pkg,
			TopDir:   top,
			BuildDir: buildDir,
			DistDir:  env.Resolve(top, cfg.DistDir),
			Logger:   log,
			Stdout:   opts.Stdout,
		},
		StorePath: storePath,
		Metrics:   s.metrics,
	})
	return s, nil
}

// loadPackage finds and parses the package description. A missing default
// description yields a nil package; commands needing one fail when run.
func loadPackage(top, bentoInfo string) (*pkgdesc.Package, error) {
	if bentoInfo == "" {
		path, err := pkgdesc.Find(top)
		if errors.Is(err, pkgdesc.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return pkgdesc.ParseFile(path)
	}
	path := bentoInfo
	if !filepath.IsAbs(path) {
		path = filepath.Join(top, path)
	}
	if filepath.Dir(filepath.Clean(path)) != top {
		return nil, fmt.Errorf("%w: %s is not in the top directory %s", commands.ErrUsage, bentoInfo, top)
	}
	return pkgdesc.ParseFile(path)
}

func (s *session) close() {
	if s.metrics != nil && s.metricsFile != "" {
		if err := s.metrics.WriteFile(s.metricsFile); err != nil {
			s.log.Warn("failed to write metrics", zap.String("path", s.metricsFile), zap.Error(err))
		}
	}
	if s.unlock != nil {
		if err := s.unlock(); err != nil {
			s.log.Warn("failed to release build directory lock", zap.Error(err))
		}
	}
	_ = s.log.Sync()
}
