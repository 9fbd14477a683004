// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ixgo registers the bento classfile project and the Go packages
// hook files may use with the ixgo interpreter.
package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/bento/internal/ixgo/pkg/github.com/goplus/bento/bscript"
	_ "github.com/goplus/bento/internal/ixgo/pkg/github.com/goplus/bento/commands"
	_ "github.com/goplus/bento/internal/ixgo/pkg/github.com/qiniu/x/gsh"
)

// Ext is the file suffix of hook files.
const Ext = "_bento.gox"

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   Ext,
		Class: "HookApp",
		PkgPaths: []string{
			"github.com/goplus/bento/bscript",
		},
		Import: []*modfile.Import{
			{
				Name: "commands",
				Path: "github.com/goplus/bento/commands",
			},
		},
	})
}
