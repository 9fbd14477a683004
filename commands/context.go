// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"io"

	"github.com/goplus/bento/pkgs/pkgdesc"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Session holds the state shared by every command of one invocation.
type Session struct {
	Pkg      *pkgdesc.Package
	TopDir   string
	BuildDir string
	DistDir  string
	Logger   *zap.Logger
	Stdout   io.Writer
}

// Context is what a command and its hooks see while running.
type Context struct {
	Name   string
	Argv   []string
	Flags  *pflag.FlagSet
	Global *GlobalContext
	// Ctx is canceled when the pipeline is.
	Ctx context.Context

	*Session
}

// ContextFactory builds the Context of the command called name.
type ContextFactory func(g *GlobalContext, s *Session, name string, argv []string) (*Context, error)

// NewContext is the ContextFactory used for commands without a registered
// one. argv is parsed with the command's OptionsContext when there is one.
func NewContext(g *GlobalContext, s *Session, name string, argv []string) (*Context, error) {
	opts, err := g.RetrieveOptionsContext(name)
	if err != nil {
		opts = NewOptionsContext("")
	}
	fs, err := opts.Parse(name, argv)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &Session{}
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Stdout == nil {
		s.Stdout = io.Discard
	}
	return &Context{
		Name:    name,
		Argv:    append([]string{}, argv...),
		Flags:   fs,
		Global:  g,
		Ctx:     context.Background(),
		Session: s,
	}, nil
}

// Flag returns the string value of the named flag, or "" if the command
// has no such flag.
func (c *Context) Flag(name string) string {
	if c.Flags == nil {
		return ""
	}
	f := c.Flags.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// BoolFlag reports whether the named flag is set to true.
func (c *Context) BoolFlag(name string) bool {
	return c.Flag(name) == "true"
}

// Changed reports whether the named flag was given on the command line.
func (c *Context) Changed(name string) bool {
	return c.Flags != nil && c.Flags.Changed(name)
}

// Args returns the positional arguments left after flag parsing.
func (c *Context) Args() []string {
	if c.Flags == nil {
		return nil
	}
	return c.Flags.Args()
}
