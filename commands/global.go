// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/goplus/bento/internal/cmddata"
	"github.com/goplus/bento/internal/hooks"
	"github.com/goplus/bento/internal/registry"
	"github.com/goplus/bento/internal/schedule"
)

// GlobalContext is the registration and lookup surface of one session.
// It only delegates to its collaborators.
type GlobalContext struct {
	commands  *registry.Registry[Command]
	contexts  *registry.Registry[ContextFactory]
	options   *registry.Registry[*OptionsContext]
	scheduler *schedule.Scheduler
	hooks     *hooks.Registry[Hook]
	data      *cmddata.Provider
}

// NewGlobalContext returns an empty GlobalContext backed by data. A nil
// data gets an empty in-memory provider.
func NewGlobalContext(data *cmddata.Provider) *GlobalContext {
	if data == nil {
		data = cmddata.New()
	}
	return &GlobalContext{
		commands:  registry.New[Command]("command"),
		contexts:  registry.New[ContextFactory]("command context"),
		options:   registry.New[*OptionsContext]("options context"),
		scheduler: schedule.New(),
		hooks:     hooks.New[Hook](),
		data:      data,
	}
}

func visibility(public bool) registry.Visibility {
	if public {
		return registry.Public
	}
	return registry.Private
}

// RegisterCommand binds name to cmd. Registering a bound name fails with
// registry.ErrDuplicate.
func (g *GlobalContext) RegisterCommand(name string, cmd Command, public bool) error {
	return g.commands.Register(name, cmd, visibility(public))
}

// OverrideCommand replaces the command bound to name.
func (g *GlobalContext) OverrideCommand(name string, cmd Command) error {
	return g.commands.Replace(name, cmd)
}

func (g *GlobalContext) RetrieveCommand(name string) (Command, error) {
	return g.commands.Retrieve(name)
}

func (g *GlobalContext) IsCommandRegistered(name string) bool {
	return g.commands.IsRegistered(name)
}

// CommandNames lists registered commands in registration order.
func (g *GlobalContext) CommandNames(publicOnly bool) []string {
	if publicOnly {
		return g.commands.PublicNames()
	}
	return g.commands.Names()
}

func (g *GlobalContext) RegisterCommandContext(name string, factory ContextFactory) error {
	return g.contexts.Register(name, factory, registry.Public)
}

func (g *GlobalContext) RetrieveCommandContext(name string) (ContextFactory, error) {
	return g.contexts.Retrieve(name)
}

func (g *GlobalContext) IsCommandContextRegistered(name string) bool {
	return g.contexts.IsRegistered(name)
}

func (g *GlobalContext) RegisterOptionsContext(name string, opts *OptionsContext) error {
	return g.options.Register(name, opts, registry.Public)
}

func (g *GlobalContext) RetrieveOptionsContext(name string) (*OptionsContext, error) {
	return g.options.Retrieve(name)
}

func (g *GlobalContext) IsOptionsContextRegistered(name string) bool {
	return g.options.IsRegistered(name)
}

// AddOptionGroup adds a group to the options context of cmd.
func (g *GlobalContext) AddOptionGroup(cmd, group, title string) error {
	opts, err := g.options.Retrieve(cmd)
	if err != nil {
		return err
	}
	return opts.AddGroup(group, title)
}

// AddOption adds opt to the options context of cmd. group may be empty.
func (g *GlobalContext) AddOption(cmd string, opt Option, group string) error {
	opts, err := g.options.Retrieve(cmd)
	if err != nil {
		return err
	}
	return opts.AddOption(opt, group)
}

// SetBefore declares that prev runs before cmd.
func (g *GlobalContext) SetBefore(cmd, prev string) {
	g.scheduler.SetBefore(cmd, prev)
}

// SetAfter declares that next runs after cmd.
func (g *GlobalContext) SetAfter(cmd, next string) {
	g.scheduler.SetAfter(cmd, next)
}

// RetrieveDependencies returns the commands to run before cmd, in order.
func (g *GlobalContext) RetrieveDependencies(cmd string) ([]string, error) {
	return g.scheduler.Order(cmd)
}

func (g *GlobalContext) AddPreHook(hook Hook, cmd string) {
	g.hooks.AddPre(hook, cmd)
}

func (g *GlobalContext) AddPostHook(hook Hook, cmd string) {
	g.hooks.AddPost(hook, cmd)
}

func (g *GlobalContext) RetrievePreHooks(cmd string) []Hook {
	return g.hooks.Pre(cmd)
}

func (g *GlobalContext) RetrievePostHooks(cmd string) []Hook {
	return g.hooks.Post(cmd)
}

// CommandData returns the argv store of the session.
func (g *GlobalContext) CommandData() *cmddata.Provider {
	return g.data
}
