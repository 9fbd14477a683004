// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

var (
	ErrUnknownGroup   = errors.New("unknown option group")
	ErrDuplicateGroup = errors.New("duplicate option group")
	ErrDuplicateOpt   = errors.New("duplicate option")
)

// Option declares one command-line option of a command.
type Option struct {
	Name      string
	Shorthand string
	Usage     string
	Default   string
	// Bool options take no value on the command line.
	Bool bool
}

type optionGroup struct {
	name    string
	title   string
	options []string
}

// OptionsContext describes how a command parses its argv.
type OptionsContext struct {
	usage   string
	options []Option
	groups  []*optionGroup
}

// NewOptionsContext returns an OptionsContext with the given usage line.
func NewOptionsContext(usage string) *OptionsContext {
	return &OptionsContext{usage: usage}
}

// AddGroup declares an option group shown under title in help output.
func (o *OptionsContext) AddGroup(name, title string) error {
	if o.group(name) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, name)
	}
	o.groups = append(o.groups, &optionGroup{name: name, title: title})
	return nil
}

// AddOption adds opt, optionally inside group.
func (o *OptionsContext) AddOption(opt Option, group string) error {
	if opt.Name == "" {
		return errors.New("option without name")
	}
	if o.lookup(opt.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateOpt, opt.Name)
	}
	if group != "" {
		g := o.group(group)
		if g == nil {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
		}
		g.options = append(g.options, opt.Name)
	}
	o.options = append(o.options, opt)
	return nil
}

// Options returns the declared options in declaration order.
func (o *OptionsContext) Options() []Option {
	return slices.Clone(o.options)
}

// Parse parses argv against a fresh flag set. -h and --help yield
// pflag.ErrHelp.
func (o *OptionsContext) Parse(name string, argv []string) (*pflag.FlagSet, error) {
	fs := o.flagSet(name, nil)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUsage, name, err)
	}
	return fs, nil
}

// Usage renders the help text of the command called name.
func (o *OptionsContext) Usage(name string) string {
	var b strings.Builder
	usage := o.usage
	if usage == "" {
		usage = name + " [options]"
	}
	fmt.Fprintf(&b, "Usage: %s\n", usage)

	grouped := make(map[string]bool)
	for _, g := range o.groups {
		for _, opt := range g.options {
			grouped[opt] = true
		}
	}
	var rest []string
	for _, opt := range o.options {
		if !grouped[opt.Name] {
			rest = append(rest, opt.Name)
		}
	}
	if len(rest) > 0 {
		fmt.Fprintf(&b, "\nOptions:\n%s", o.flagSet(name, rest).FlagUsages())
	}
	for _, g := range o.groups {
		if len(g.options) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n%s", g.title, o.flagSet(name, g.options).FlagUsages())
	}
	return b.String()
}

// flagSet builds a flag set holding the named options, or all of them when
// names is nil.
func (o *OptionsContext) flagSet(name string, names []string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	for _, opt := range o.options {
		if names != nil && !slices.Contains(names, opt.Name) {
			continue
		}
		if opt.Bool {
			fs.BoolP(opt.Name, opt.Shorthand, opt.Default == "true", opt.Usage)
		} else {
			fs.StringP(opt.Name, opt.Shorthand, opt.Default, opt.Usage)
		}
	}
	return fs
}

func (o *OptionsContext) lookup(name string) int {
	for i, opt := range o.options {
		if opt.Name == name {
			return i
		}
	}
	return -1
}

func (o *OptionsContext) group(name string) *optionGroup {
	for _, g := range o.groups {
		if g.name == name {
			return g
		}
	}
	return nil
}
