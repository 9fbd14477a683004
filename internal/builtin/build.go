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
	"github.com/goplus/bento/internal/par"
	"github.com/goplus/bento/pkgs/backend"
	"github.com/goplus/bento/pkgs/pkgdesc"
	"go.uber.org/zap"
)

func buildOptions(jobs int) *commands.OptionsContext {
	o := commands.NewOptionsContext("build [options]")
	must(o.AddOption(commands.Option{
		Name:      "jobs",
		Shorthand: "j",
		Usage:     "number of extensions built in parallel",
		Default:   strconv.Itoa(jobs),
	}, ""))
	return o
}

type build struct {
	backend backend.Builder
}

func (*build) Short() string { return "Build the package" }

func (b *build) Run(ctx *commands.Context) error {
	pkg, err := requirePackage(ctx)
	if err != nil {
		return err
	}
	scheme, err := LoadScheme(ctx.BuildDir)
	if err != nil {
		return err
	}
	jobs, err := strconv.Atoi(ctx.Flag("jobs"))
	if err != nil || jobs < 1 {
		return fmt.Errorf("%w: invalid --jobs %q", commands.ErrUsage, ctx.Flag("jobs"))
	}

	m := Manifest{}
	for _, mod := range pkg.Resolve(scheme.Flags()) {
		f, err := sourceFile(pkg, mod, "libdir")
		if err != nil {
			return err
		}
		m["modules"] = append(m["modules"], f)
	}
	for _, data := range pkg.DataFiles {
		f, err := sourceFile(pkg, data, "datadir")
		if err != nil {
			return err
		}
		m["data"] = append(m["data"], f)
	}

	bk := b.backend
	if bk == nil {
		bk = defaultBackend(ctx)
	}
	outputs, err := par.Map(pkg.Extensions, jobs, func(ext pkgdesc.Extension) ([]string, error) {
		sources := make([]string, len(ext.Sources))
		for i, src := range ext.Sources {
			sources[i] = filepath.Join(pkg.Dir, filepath.FromSlash(src))
		}
		ctx.Logger.Debug("building extension", zap.String("extension", ext.Name), zap.Strings("sources", sources))
		return bk.Extension(ctx.Ctx, ext.Name, sources)
	})
	if err != nil {
		return err
	}
	for _, files := range outputs {
		for _, out := range files {
			m["extensions"] = append(m["extensions"], File{Source: out, Dir: "libdir", Name: filepath.Base(out)})
		}
	}

	if err := saveManifest(ctx.BuildDir, m); err != nil {
		return fmt.Errorf("failed to save build manifest: %w", err)
	}
	ctx.Logger.Info("built", zap.Int("modules", len(m["modules"])), zap.Int("extensions", len(m["extensions"])))
	return nil
}

// sourceFile checks that rel exists in the package directory.
func sourceFile(pkg *pkgdesc.Package, rel, dir string) (File, error) {
	path := filepath.Join(pkg.Dir, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		return File{}, &backend.BuildError{Unit: rel, Err: err}
	}
	if info.IsDir() {
		return File{}, &backend.BuildError{Unit: rel, Err: fmt.Errorf("%s is a directory", rel)}
	}
	return File{Source: filepath.ToSlash(rel), Dir: dir, Name: filepath.ToSlash(rel)}, nil
}
