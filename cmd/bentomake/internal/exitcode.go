// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"errors"

	"github.com/goplus/bento/commands"
	"github.com/goplus/bento/internal/builtin"
	"github.com/goplus/bento/pkgs/backend"
	"github.com/goplus/bento/pkgs/pkgdesc"
)

// Exit statuses of bentomake.
const (
	ExitOK             = 0
	ExitUsage          = 1
	ExitParse          = 2
	ExitExecution      = 4
	ExitConfiguration  = 8
	ExitBuild          = 16
	ExitInvalidPackage = 32
	ExitOther          = 1
)

// ExitCode maps err to an exit status. The most specific kind found in
// the chain wins.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		buildErr *backend.BuildError
		parseErr *pkgdesc.ParseError
		execErr  *commands.ExecutionError
	)
	switch {
	case errors.As(err, &buildErr):
		return ExitBuild
	case errors.Is(err, builtin.ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, pkgdesc.ErrInvalidPackage):
		return ExitInvalidPackage
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.Is(err, commands.ErrUsage), errors.Is(err, pkgdesc.ErrNotFound):
		return ExitUsage
	case errors.As(err, &execErr):
		return ExitExecution
	}
	return ExitOther
}
