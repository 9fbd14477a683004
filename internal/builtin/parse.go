// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"github.com/goplus/bento/commands"
	"gopkg.in/yaml.v3"
)

type parse struct{}

func (parse) Short() string { return "Print the parsed package description" }

func (parse) Run(ctx *commands.Context) error {
	pkg, err := requirePackage(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(ctx.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(pkg); err != nil {
		return err
	}
	return enc.Close()
}
