// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/pkgs/pkgdesc"
	"go.uber.org/zap"
)

const DefaultPrefix = "/usr/local"

// installation directories and their default relative to the prefix
var schemeDirs = []struct {
	name, sub, usage string
}{
	{"bindir", "bin", "user executables [PREFIX/bin]"},
	{"libdir", "lib", "object code libraries [PREFIX/lib]"},
	{"datadir", "share", "read-only data [PREFIX/share]"},
}

func configureOptions(pkg *pkgdesc.Package) *commands.OptionsContext {
	o := commands.NewOptionsContext("configure [options]")
	must(o.AddGroup("dirs", "Installation directories"))
	must(o.AddOption(commands.Option{Name: "prefix", Usage: "install architecture-independent files in PREFIX", Default: DefaultPrefix}, "dirs"))
	for _, d := range schemeDirs {
		must(o.AddOption(commands.Option{Name: d.name, Usage: d.usage}, "dirs"))
	}
	if pkg != nil && len(pkg.Flags) > 0 {
		must(o.AddGroup("flags", "Optional features"))
		for _, f := range pkg.Flags {
			must(o.AddOption(commands.Option{
				Name:    f.Name,
				Usage:   f.Description,
				Default: strconv.FormatBool(f.Default),
				Bool:    true,
			}, "flags"))
		}
	}
	return o
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

type configure struct{}

func (configure) Short() string { return "Configure the package" }

func (configure) Run(ctx *commands.Context) error {
	pkg, err := requirePackage(ctx)
	if err != nil {
		return err
	}
	prefix := ctx.Flag("prefix")
	if !filepath.IsAbs(prefix) {
		return fmt.Errorf("%w: prefix must be an absolute path, got %q", ErrConfiguration, prefix)
	}
	scheme := Scheme{"prefix": filepath.Clean(prefix)}
	for _, d := range schemeDirs {
		dir := ctx.Flag(d.name)
		if dir == "" {
			dir = filepath.Join(scheme["prefix"], d.sub)
		} else if !filepath.IsAbs(dir) {
			return fmt.Errorf("%w: %s must be an absolute path, got %q", ErrConfiguration, d.name, dir)
		}
		scheme[d.name] = filepath.Clean(dir)
	}
	for _, f := range pkg.Flags {
		scheme[flagPrefix+f.Name] = strconv.FormatBool(ctx.BoolFlag(f.Name))
	}

	if err := os.MkdirAll(ctx.BuildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	if err := saveScheme(ctx.BuildDir, scheme); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	ctx.Logger.Info("configured", zap.String("package", pkg.Name), zap.String("prefix", scheme["prefix"]))
	return nil
}
