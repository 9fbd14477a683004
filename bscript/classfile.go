// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bscript is the classfile framework of bento hook files
// (*_bento.gox).
//
// A hook file looks like:
//
//	startup g => {
//		return g.registerCommand("doc", commands.CommandFunc(runDoc), true)
//	}
//
//	preHook "build", ctx => {
//		echo "building", ctx.Pkg.Name
//		return nil
//	}
//
//	before "doc", "build"
package bscript

import (
	"github.com/goplus/bento/commands"
	"github.com/qiniu/x/gsh"
)

const GopPackage = true

// DeclKind is the kind of a hook file declaration.
type DeclKind int

const (
	DeclPreHook DeclKind = iota
	DeclPostHook
	DeclBefore
	DeclAfter
)

// Decl is one declaration of a hook file, in source order. Other is the
// second command of DeclBefore and DeclAfter; Hook is set for hook kinds.
type Decl struct {
	Kind    DeclKind
	Command string
	Other   string
	Hook    commands.Hook
}

// HookApp is the class of a hook file.
type HookApp struct {
	gsh.App

	fStartup []func(g *commands.GlobalContext) error
	decls    []Decl
}

func (p *HookApp) app() *gsh.App {
	return &p.App
}

// Startup registers f to run with the session's GlobalContext before any
// command runs. Startup functions may register commands and options.
func (p *HookApp) Startup(f func(g *commands.GlobalContext) error) {
	p.fStartup = append(p.fStartup, f)
}

// PreHook runs f before every run of cmd.
func (p *HookApp) PreHook(cmd string, f func(ctx *commands.Context) error) {
	p.decls = append(p.decls, Decl{Kind: DeclPreHook, Command: cmd, Hook: f})
}

// PostHook runs f after every successful run of cmd.
func (p *HookApp) PostHook(cmd string, f func(ctx *commands.Context) error) {
	p.decls = append(p.decls, Decl{Kind: DeclPostHook, Command: cmd, Hook: f})
}

// Before declares that prev runs before cmd.
func (p *HookApp) Before(cmd, prev string) {
	p.decls = append(p.decls, Decl{Kind: DeclBefore, Command: cmd, Other: prev})
}

// After declares that next runs after cmd.
func (p *HookApp) After(cmd, next string) {
	p.decls = append(p.decls, Decl{Kind: DeclAfter, Command: cmd, Other: next})
}

// Gopt_HookApp_Main is main entry of this classfile.
func Gopt_HookApp_Main(this interface {
	app() *gsh.App
	MainEntry()
}) {
	this.MainEntry()
	gsh.InitApp(this.app())
}
