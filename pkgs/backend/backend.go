// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend defines how the build command compiles native
// extensions.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSources is returned for an extension without source files.
var ErrNoSources = errors.New("no sources")

// Builder compiles one extension and returns the files it produced.
// Implementations are synchronous and report failures as *BuildError.
type Builder interface {
	Extension(ctx context.Context, name string, sources []string) ([]string, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, name string, sources []string) ([]string, error)

func (f BuilderFunc) Extension(ctx context.Context, name string, sources []string) ([]string, error) {
	return f(ctx, name, sources)
}

// BuildError reports a failed build of Unit.
type BuildError struct {
	Unit string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build %s: %v", e.Unit, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
