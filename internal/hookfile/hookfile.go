// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hookfile loads bento hook files and applies them to a session.
package hookfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unsafe"

	"github.com/goplus/bento/bscript"
	"github.com/goplus/bento/commands"
	bixgo "github.com/goplus/bento/internal/ixgo"
	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
)

// File is a loaded hook file.
type File struct {
	Path string

	structElem reflect.Value
	startups   []func(g *commands.GlobalContext) error
	decls      []bscript.Decl
}

// Load interprets the hook file at path and records its declarations.
// Nothing is registered until Apply.
func Load(path string) (*File, error) {
	base := filepath.Base(path)
	structName, ok := strings.CutSuffix(base, bixgo.Ext)
	if !ok || structName == "" {
		return nil, fmt.Errorf("failed to load hook file: name must end with %s: %s", bixgo.Ext, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load hook file: %w", err)
	}

	ctx := ixgo.NewContext(0)
	source, err := xgobuild.BuildFile(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("failed to build hook file %s: %w", path, err)
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return nil, fmt.Errorf("failed to load hook file %s: %w", path, err)
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return nil, err
	}
	if err = interp.RunInit(); err != nil {
		return nil, err
	}
	typ, ok := interp.GetType(structName)
	if !ok {
		return nil, fmt.Errorf("failed to load hook file: class not found: %s", structName)
	}
	val := reflect.New(typ)
	class := val.Elem()

	val.Interface().(interface{ Main() }).Main()

	return &File{
		Path:       path,
		structElem: class,
		startups:   valueOf(class, "fStartup").([]func(g *commands.GlobalContext) error),
		decls:      valueOf(class, "decls").([]bscript.Decl),
	}, nil
}

// Decls returns the ordering and hook declarations in source order.
func (f *File) Decls() []bscript.Decl {
	return append([]bscript.Decl{}, f.decls...)
}

// Apply runs the startup functions of f, then registers its ordering
// constraints and hooks on g. The first error stops it.
func (f *File) Apply(g *commands.GlobalContext) error {
	for i, startup := range f.startups {
		if err := startup(g); err != nil {
			return fmt.Errorf("%s: startup #%d failed: %w", f.Path, i+1, err)
		}
	}
	for _, d := range f.decls {
		switch d.Kind {
		case bscript.DeclPreHook:
			g.AddPreHook(d.Hook, d.Command)
		case bscript.DeclPostHook:
			g.AddPostHook(d.Hook, d.Command)
		case bscript.DeclBefore:
			g.SetBefore(d.Command, d.Other)
		case bscript.DeclAfter:
			g.SetAfter(d.Command, d.Other)
		default:
			return fmt.Errorf("%s: unknown declaration kind %d", f.Path, d.Kind)
		}
	}
	return nil
}

// SetStdout sets the writer used by shell commands the hooks run.
func (f *File) SetStdout(w io.Writer) {
	if f.structElem.IsValid() {
		setValue(f.structElem, "fout", w)
	}
}

// SetStderr sets the error writer used by shell commands the hooks run.
func (f *File) SetStderr(w io.Writer) {
	if f.structElem.IsValid() {
		setValue(f.structElem, "ferr", w)
	}
}

// unexportValueOf makes an unexported field readable and settable.
func unexportValueOf(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

func valueOf(elem reflect.Value, name string) any {
	return unexportValueOf(elem.FieldByName(name)).Interface()
}

func setValue(elem reflect.Value, name string, v any) {
	field := elem.FieldByName(name)
	if !field.IsValid() || v == nil {
		return
	}
	unexportValueOf(field).Set(reflect.ValueOf(v))
}
