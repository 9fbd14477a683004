// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/bento/commands"
	"go.uber.org/zap"
)

func installOptions() *commands.OptionsContext {
	o := commands.NewOptionsContext("install [options]")
	must(o.AddOption(commands.Option{Name: "destdir", Usage: "staging directory prepended to every installed path"}, ""))
	must(o.AddOption(commands.Option{Name: "dry-run", Shorthand: "n", Usage: "list the files without installing them", Bool: true}, ""))
	return o
}

type install struct{}

func (install) Short() string { return "Install the built package" }

func (install) Run(ctx *commands.Context) error {
	pkg, err := requirePackage(ctx)
	if err != nil {
		return err
	}
	scheme, err := LoadScheme(ctx.BuildDir)
	if err != nil {
		return err
	}
	m, err := LoadManifest(ctx.BuildDir)
	if err != nil {
		return err
	}
	destdir := ctx.Flag("destdir")
	dryRun := ctx.BoolFlag("dry-run")

	categories := make([]string, 0, len(m))
	for c := range m {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	n := 0
	for _, c := range categories {
		for _, f := range m[c] {
			dir, ok := scheme[f.Dir]
			if !ok {
				return fmt.Errorf("%w: unknown install directory %q", ErrConfiguration, f.Dir)
			}
			src := filepath.FromSlash(f.Source)
			if !filepath.IsAbs(src) {
				src = filepath.Join(pkg.Dir, src)
			}
			dst := filepath.Join(dir, filepath.FromSlash(f.Name))
			if destdir != "" {
				dst = filepath.Join(destdir, dst)
			}
			if dryRun {
				fmt.Fprintf(ctx.Stdout, "%s -> %s\n", src, dst)
				continue
			}
			if err := copyFile(src, dst); err != nil {
				return fmt.Errorf("failed to install %s: %w", f.Name, err)
			}
			n++
		}
	}
	ctx.Logger.Info("installed", zap.Int("files", n), zap.Bool("dry_run", dryRun))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
