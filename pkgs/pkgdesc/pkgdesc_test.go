// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkgdesc

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const yamlDesc = `
name: foo
version: "1.2"
summary: a toy package
hook_file: Hooks_bento.gox
flags:
  - name: debug
    description: debug flag
    default: true
modules: [foo/__init__.py]
conditional_modules:
  - flag: debug
    modules: [foo/debug.py]
    else: [foo/release.py]
data_files: [data/config.ini]
extensions:
  - name: foo._speedups
    sources: [src/speedups.c]
`

const tomlDesc = `
name = "foo"
version = "1.2"
summary = "a toy package"
hook_file = "Hooks_bento.gox"
modules = ["foo/__init__.py"]
data_files = ["data/config.ini"]

[[flags]]
name = "debug"
description = "debug flag"
default = true

[[conditional_modules]]
flag = "debug"
modules = ["foo/debug.py"]
else = ["foo/release.py"]

[[extensions]]
name = "foo._speedups"
sources = ["src/speedups.c"]
`

func TestParse_Formats(t *testing.T) {
	for _, tt := range []struct {
		name string
		data string
	}{
		{"bento.yaml", yamlDesc},
		{"bento.toml", tomlDesc},
	} {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := Parse(tt.name, []byte(tt.data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if pkg.Name != "foo" || pkg.Version != "1.2" || pkg.HookFile != "Hooks_bento.gox" {
				t.Errorf("unexpected package header: %+v", pkg)
			}
			if len(pkg.Extensions) != 1 || pkg.Extensions[0].Name != "foo._speedups" {
				t.Errorf("unexpected extensions: %+v", pkg.Extensions)
			}
			if got := pkg.DistName(); got != "foo-1.2.0" {
				t.Errorf("DistName() = %q, want %q", got, "foo-1.2.0")
			}
		})
	}
}

func TestParse_DefaultVersion(t *testing.T) {
	pkg, err := Parse("bento.yaml", []byte("name: foo\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkg.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", pkg.Version, DefaultVersion)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		data      string
		wantParse bool
	}{
		{"bad yaml", "bento.yaml", "name: [unterminated", true},
		{"unknown yaml field", "bento.yaml", "name: foo\nfloupi: 1\n", true},
		{"bad toml", "bento.toml", "name = ", true},
		{"unknown toml field", "bento.toml", "name = \"foo\"\nfloupi = 1\n", true},
		{"unsupported format", "bento.info", "Name: foo", true},
		{"empty", "bento.yaml", "", false},
		{"bad version", "bento.yaml", "name: foo\nversion: one\n", false},
		{"undeclared flag", "bento.yaml", "name: foo\nconditional_modules:\n  - flag: nope\n", false},
		{"extension without sources", "bento.yaml", "name: foo\nextensions:\n  - name: x\n", false},
		{"module outside package", "bento.yaml", "name: foo\nmodules: [../../outside.py]\n", false},
		{"absolute module", "bento.yaml", "name: foo\nmodules: [/etc/passwd]\n", false},
		{"empty module", "bento.yaml", "name: foo\nmodules: [\"\"]\n", false},
		{"conditional module outside package", "bento.yaml", "name: foo\nflags:\n  - name: d\nconditional_modules:\n  - flag: d\n    else: [a/../../b.py]\n", false},
		{"data file outside package", "bento.yaml", "name: foo\ndata_files: [../share/x.dat]\n", false},
		{"extension source outside package", "bento.yaml", "name: foo\nextensions:\n  - name: x\n    sources: [/tmp/x.c]\n", false},
		{"extension name with separator", "bento.yaml", "name: foo\nextensions:\n  - name: ../x\n    sources: [x.c]\n", false},
		{"hook file outside package", "bento.yaml", "name: foo\nhook_file: ../hooks_bento.gox\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var perr *ParseError
			if tt.wantParse {
				if !errors.As(err, &perr) {
					t.Errorf("expected *ParseError, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPackage) {
				t.Errorf("expected ErrInvalidPackage, got %v", err)
			}
		})
	}
}

func TestParse_NestedPaths(t *testing.T) {
	data := "name: foo\nmodules: [pkg/foo.py, ./pkg/bar.py]\ndata_files: [share/..data/x.dat]\n"
	if _, err := Parse("bento.yaml", []byte(data)); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
}

func TestPackage_Resolve(t *testing.T) {
	pkg, err := Parse("bento.yaml", []byte(yamlDesc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name   string
		values map[string]bool
		want   []string
	}{
		{"default", nil, []string{"foo/__init__.py", "foo/debug.py"}},
		{"debug off", map[string]bool{"debug": false}, []string{"foo/__init__.py", "foo/release.py"}},
		{"debug on", map[string]bool{"debug": true}, []string{"foo/__init__.py", "foo/debug.py"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pkg.Resolve(tt.values); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}

	want := []string{"foo/__init__.py", "foo/debug.py", "foo/release.py"}
	if got := pkg.AllModules(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllModules() = %v, want %v", got, want)
	}
}

func TestFindAndParseFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find on empty dir: got %v, want ErrNotFound", err)
	}

	path := filepath.Join(dir, "bento.toml")
	if err := os.WriteFile(path, []byte(tomlDesc), 0o644); err != nil {
		t.Fatalf("failed to write description: %v", err)
	}
	found, err := Find(dir)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != path {
		t.Errorf("Find = %q, want %q", found, path)
	}

	pkg, err := ParseFile(found)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	abs, _ := filepath.Abs(dir)
	if pkg.Dir != abs {
		t.Errorf("Dir = %q, want %q", pkg.Dir, abs)
	}
}
