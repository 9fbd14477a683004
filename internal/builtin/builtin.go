// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package builtin registers the commands every package gets: configure,
// build, install, sdist and parse.
package builtin

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/internal/store"
	"github.com/goplus/bento/pkgs/backend"
	"github.com/goplus/bento/pkgs/backend/shell"
	"github.com/goplus/bento/pkgs/pkgdesc"
)

// ErrConfiguration reports a bad or missing configuration.
var ErrConfiguration = errors.New("configuration error")

const (
	// SchemeFile holds the directories and flag values chosen by configure.
	SchemeFile = "config.json"
	// ManifestFile lists the files produced by build, by category.
	ManifestFile = "build_manifest.json"

	schemeKind   = "scheme"
	manifestKind = "build_manifest"
	flagPrefix   = "flag:"
)

// Options configures the built-in commands.
type Options struct {
	// Backend builds extensions. Defaults to a shell backend writing into
	// <build>/ext.
	Backend backend.Builder
	// Jobs is the default number of extensions built at once.
	Jobs int
}

// Register registers the built-in commands of pkg on g together with their
// options and ordering.
func Register(g *commands.GlobalContext, pkg *pkgdesc.Package, opts Options) error {
	if opts.Jobs < 1 {
		opts.Jobs = runtime.NumCPU()
	}
	cmds := []struct {
		name    string
		cmd     commands.Command
		public  bool
		options *commands.OptionsContext
	}{
		{"configure", configure{}, true, configureOptions(pkg)},
		{"build", &build{backend: opts.Backend}, true, buildOptions(opts.Jobs)},
		{"install", install{}, true, installOptions()},
		{"sdist", sdist{}, true, sdistOptions()},
		{"parse", parse{}, false, commands.NewOptionsContext("parse")},
	}
	for _, c := range cmds {
		if err := g.RegisterCommand(c.name, c.cmd, c.public); err != nil {
			return err
		}
		if err := g.RegisterOptionsContext(c.name, c.options); err != nil {
			return err
		}
	}
	g.SetBefore("build", "configure")
	g.SetBefore("install", "build")
	return nil
}

func defaultBackend(ctx *commands.Context) backend.Builder {
	return shell.New(filepath.Join(ctx.BuildDir, "ext"))
}

// Scheme is the result of configure: installation directories and flag
// values.
type Scheme map[string]string

// Flags returns the configured package flag values.
func (s Scheme) Flags() map[string]bool {
	flags := make(map[string]bool)
	for k, v := range s {
		if name, ok := strings.CutPrefix(k, flagPrefix); ok {
			flags[name] = v == "true"
		}
	}
	return flags
}

// LoadScheme reads the scheme saved by configure in buildDir.
func LoadScheme(buildDir string) (Scheme, error) {
	scheme, err := store.Load[string](filepath.Join(buildDir, SchemeFile), schemeKind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if len(scheme) == 0 {
		return nil, fmt.Errorf("%w: package not configured, run configure first", ErrConfiguration)
	}
	return scheme, nil
}

func saveScheme(buildDir string, scheme Scheme) error {
	return store.Save(filepath.Join(buildDir, SchemeFile), schemeKind, scheme)
}

// File is one file to install: Source is relative to the package
// directory unless absolute, Name is relative to the scheme directory Dir.
type File struct {
	Source string `json:"source"`
	Dir    string `json:"dir"`
	Name   string `json:"name"`
}

// Manifest maps a category (modules, data, extensions) to its files.
type Manifest map[string][]File

// LoadManifest reads the manifest written by build in buildDir.
func LoadManifest(buildDir string) (Manifest, error) {
	m, err := store.Load[[]File](filepath.Join(buildDir, ManifestFile), manifestKind)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: nothing built, run build first", ErrConfiguration)
	}
	return m, nil
}

func saveManifest(buildDir string, m Manifest) error {
	return store.Save(filepath.Join(buildDir, ManifestFile), manifestKind, m)
}

func requirePackage(ctx *commands.Context) (*pkgdesc.Package, error) {
	if ctx.Pkg == nil {
		return nil, fmt.Errorf("%w: no package description", pkgdesc.ErrNotFound)
	}
	return ctx.Pkg, nil
}
