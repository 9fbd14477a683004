// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands is the API shared by the orchestration driver, the
// built-in commands and hook files.
package commands

import (
	"errors"
	"fmt"
)

// ErrUsage marks errors caused by how the tool was invoked.
var ErrUsage = errors.New("usage error")

// Command is a named unit of work in the pipeline.
type Command interface {
	Run(ctx *Context) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(ctx *Context) error

func (f CommandFunc) Run(ctx *Context) error { return f(ctx) }

// Describer is implemented by commands that have a one-line description.
type Describer interface {
	Short() string
}

// Hook runs immediately before or after a command. A non-nil error aborts
// the pipeline.
type Hook func(ctx *Context) error

// Stage is the part of a command's execution that failed.
type Stage string

const (
	StageContext  Stage = "context"
	StagePreHook  Stage = "pre-hook"
	StageRun      Stage = "run"
	StagePostHook Stage = "post-hook"
)

// ExecutionError reports a failure while running a command or one of its
// hooks.
type ExecutionError struct {
	Command string
	Stage   Stage
	// Hook is the 1-based index of the failing hook for hook stages.
	Hook int
	Err  error
}

func (e *ExecutionError) Error() string {
	switch e.Stage {
	case StagePreHook, StagePostHook:
		return fmt.Sprintf("%s #%d of command %q failed: %v", e.Stage, e.Hook, e.Command, e.Err)
	case StageContext:
		return fmt.Sprintf("command %q: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
