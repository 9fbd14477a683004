// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver runs a target command together with the commands it
// depends on.
package driver

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/internal/metrics"
	"go.uber.org/zap"
)

// Options configures a Driver.
type Options struct {
	Session *commands.Session
	// StorePath is where command argv is saved after each successful
	// command. Empty keeps it in memory only.
	StorePath string
	Metrics   *metrics.Recorder
}

// Driver runs pipelines against one GlobalContext.
type Driver struct {
	g    *commands.GlobalContext
	opts Options
	ran  map[string]bool
}

// New returns a Driver for g.
func New(g *commands.GlobalContext, opts Options) *Driver {
	if opts.Session == nil {
		opts.Session = &commands.Session{}
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = zap.NewNop()
	}
	if opts.Session.Stdout == nil {
		opts.Session.Stdout = io.Discard
	}
	return &Driver{g: g, opts: opts, ran: make(map[string]bool)}
}

// Ran reports whether name already ran in this session.
func (d *Driver) Ran(name string) bool {
	return d.ran[name]
}

// Run runs the dependencies of target and then target. argv is the
// explicit argument list of target; nil replays the one stored by its last
// successful run. Dependencies always replay their stored argv.
//
// A command runs at most once per Driver. Running a target that already
// ran is a no-op when argv is nil or equal to the argv it ran with, and a
// usage error when argv differs.
func (d *Driver) Run(ctx context.Context, target string, argv []string) error {
	if !d.g.IsCommandRegistered(target) {
		return fmt.Errorf("%w: unknown command %q", commands.ErrUsage, target)
	}
	if WantsHelp(argv) {
		_, err := io.WriteString(d.opts.Session.Stdout, d.Usage(target))
		return err
	}
	deps, err := d.g.RetrieveDependencies(target)
	if err != nil {
		return err
	}

	for _, name := range deps {
		if !d.g.IsCommandRegistered(name) {
			return fmt.Errorf("%w: command %q required by %q is not registered", commands.ErrUsage, name, target)
		}
	}

	for _, name := range deps {
		if d.ran[name] {
			continue
		}
		if err := d.runOne(ctx, name, d.g.CommandData().Get(name)); err != nil {
			return err
		}
	}
	if d.ran[target] {
		if argv != nil && !slices.Equal(argv, d.g.CommandData().Get(target)) {
			return fmt.Errorf("%w: command %q already ran in this session with different arguments", commands.ErrUsage, target)
		}
		return nil
	}
	if argv == nil {
		argv = d.g.CommandData().Get(target)
	}
	return d.runOne(ctx, target, argv)
}

func (d *Driver) runOne(ctx context.Context, name string, argv []string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := d.opts.Session.Logger.With(zap.String("command", name))
	log.Info("running command", zap.Strings("argv", argv))

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		d.opts.Metrics.ObserveCommand(name, elapsed, err)
		if err != nil {
			log.Error("command failed", zap.Duration("duration", elapsed), zap.Error(err))
			return
		}
		log.Info("command finished", zap.Duration("duration", elapsed))
	}()

	cmd, err := d.g.RetrieveCommand(name)
	if err != nil {
		return err
	}
	cctx, err := d.newContext(name, argv)
	if err != nil {
		return &commands.ExecutionError{Command: name, Stage: commands.StageContext, Err: err}
	}
	cctx.Ctx = ctx

	if err := d.runHooks(cctx, commands.StagePreHook, d.g.RetrievePreHooks(name)); err != nil {
		return err
	}
	if err := cmd.Run(cctx); err != nil {
		return &commands.ExecutionError{Command: name, Stage: commands.StageRun, Err: err}
	}
	if err := d.runHooks(cctx, commands.StagePostHook, d.g.RetrievePostHooks(name)); err != nil {
		return err
	}

	d.ran[name] = true
	data := d.g.CommandData()
	data.Set(name, argv)
	if d.opts.StorePath != "" {
		if err := data.Save(d.opts.StorePath); err != nil {
			return fmt.Errorf("failed to save arguments of %q: %w", name, err)
		}
	}
	return nil
}

func (d *Driver) newContext(name string, argv []string) (*commands.Context, error) {
	factory := commands.ContextFactory(commands.NewContext)
	if d.g.IsCommandContextRegistered(name) {
		f, err := d.g.RetrieveCommandContext(name)
		if err != nil {
			return nil, err
		}
		factory = f
	}
	return factory(d.g, d.opts.Session, name, argv)
}

func (d *Driver) runHooks(cctx *commands.Context, stage commands.Stage, hooks []commands.Hook) error {
	phase := "pre"
	if stage == commands.StagePostHook {
		phase = "post"
	}
	for i, hook := range hooks {
		err := hook(cctx)
		d.opts.Metrics.ObserveHook(cctx.Name, phase, err)
		if err != nil {
			return &commands.ExecutionError{Command: cctx.Name, Stage: stage, Hook: i + 1, Err: err}
		}
	}
	return nil
}

// Usage returns the help text of the command called name.
func (d *Driver) Usage(name string) string {
	opts, err := d.g.RetrieveOptionsContext(name)
	if err != nil {
		opts = commands.NewOptionsContext("")
	}
	usage := opts.Usage(name)
	if cmd, err := d.g.RetrieveCommand(name); err == nil {
		if desc, ok := cmd.(commands.Describer); ok {
			usage = desc.Short() + "\n\n" + usage
		}
	}
	return usage
}

// WantsHelp reports whether argv asks for help before any "--".
func WantsHelp(argv []string) bool {
	for _, arg := range argv {
		switch arg {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}
