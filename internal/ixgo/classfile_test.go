// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ixgo

import (
	"testing"

	"github.com/goplus/ixgo"
)

func TestRegisteredPackages(t *testing.T) {
	tests := []struct {
		path  string
		funcs []string
		types []string
	}{
		{"github.com/qiniu/x/gsh", []string{"Gopt_App_Main", "InitApp", "Getenv"}, []string{"App"}},
		{"github.com/goplus/bento/bscript", []string{"Gopt_HookApp_Main"}, []string{"HookApp"}},
		{"github.com/goplus/bento/commands", nil, []string{"GlobalContext", "Context", "Option"}},
	}
	for _, tt := range tests {
		pkg, ok := ixgo.LookupPackage(tt.path)
		if !ok {
			t.Errorf("%s is not registered", tt.path)
			continue
		}
		for _, name := range tt.funcs {
			if _, ok := pkg.Funcs[name]; !ok {
				t.Errorf("%s: missing func %s", tt.path, name)
			}
		}
		for _, name := range tt.types {
			if _, ok := pkg.NamedTypes[name]; !ok {
				t.Errorf("%s: missing type %s", tt.path, name)
			}
		}
	}
	for _, path := range []string{"github.com/qiniu/x/gsh", "github.com/goplus/bento/bscript"} {
		pkg, _ := ixgo.LookupPackage(path)
		if pkg == nil {
			continue
		}
		if _, ok := pkg.UntypedConsts["GopPackage"]; !ok {
			t.Errorf("%s: missing GopPackage", path)
		}
	}
}
