// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/pkgs/pkgdesc"
	"go.uber.org/zap"
)

func sdistOptions() *commands.OptionsContext {
	o := commands.NewOptionsContext("sdist [options]")
	must(o.AddOption(commands.Option{Name: "output-dir", Shorthand: "o", Usage: "directory receiving the archive [DIST_DIR]"}, ""))
	return o
}

type sdist struct{}

func (sdist) Short() string { return "Create a source distribution" }

func (sdist) Run(ctx *commands.Context) error {
	pkg, err := requirePackage(ctx)
	if err != nil {
		return err
	}
	dir := ctx.Flag("output-dir")
	if dir == "" {
		dir = ctx.DistDir
	}
	if dir == "" {
		dir = filepath.Join(pkg.Dir, "dist")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create dist directory: %w", err)
	}
	dest := filepath.Join(dir, pkg.DistName()+".zip")
	files := SourceFiles(pkg)
	if err := zipFiles(pkg.Dir, files, pkg.DistName(), dest); err != nil {
		os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintln(ctx.Stdout, dest)
	ctx.Logger.Info("source distribution written", zap.String("path", dest), zap.Int("files", len(files)))
	return nil
}

// SourceFiles lists the files of a source distribution, relative to the
// package directory and slash separated, sorted.
func SourceFiles(pkg *pkgdesc.Package) []string {
	var files []string
	add := func(f string) {
		if f != "" {
			files = append(files, path.Clean(filepath.ToSlash(f)))
		}
	}
	if pkg.File != "" {
		if rel, err := filepath.Rel(pkg.Dir, pkg.File); err == nil {
			add(rel)
		}
	}
	add(pkg.HookFile)
	for _, m := range pkg.AllModules() {
		add(m)
	}
	for _, d := range pkg.DataFiles {
		add(d)
	}
	for _, ext := range pkg.Extensions {
		for _, s := range ext.Sources {
			add(s)
		}
	}
	slices.Sort(files)
	return slices.Compact(files)
}

// zipFiles writes the files, read from srcDir, to a zip archive at dest
// under the top directory prefix.
func zipFiles(srcDir string, files []string, prefix, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range files {
		if err := addFile(w, filepath.Join(srcDir, filepath.FromSlash(name)), prefix+"/"+name); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

func addFile(w *zip.Writer, src, name string) error {
	file, err := os.Open(src)
	if err != nil {
		return err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}
