// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goplus/bento/pkgs/backend"
)

func skipWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX true/false as compiler")
	}
}

func TestExtension(t *testing.T) {
	skipWindows(t)
	t.Setenv("CC", "true")
	out := t.TempDir()

	got, err := New(out).Extension(context.Background(), "_speedups", []string{"a.c", "b.c"})
	if err != nil {
		t.Fatalf("Extension failed: %v", err)
	}
	want := filepath.Join(out, "_speedups"+libSuffix())
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Extension() = %v, want [%s]", got, want)
	}
}

func TestExtensionFailure(t *testing.T) {
	skipWindows(t)
	t.Setenv("CC", "false")

	_, err := New(t.TempDir()).Extension(context.Background(), "_speedups", []string{"a.c"})
	var be *backend.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Extension error = %v, want *backend.BuildError", err)
	}
	if be.Unit != "_speedups" {
		t.Errorf("BuildError.Unit = %q", be.Unit)
	}
}

func TestExtensionEnvOverride(t *testing.T) {
	skipWindows(t)
	t.Setenv("CC", "false")
	s := New(t.TempDir())
	s.Env("CC", "true")
	if _, err := s.Extension(context.Background(), "ext", []string{"a.c"}); err != nil {
		t.Fatalf("Env(CC) not honored: %v", err)
	}
}

func TestExtensionNoSources(t *testing.T) {
	_, err := New(t.TempDir()).Extension(context.Background(), "ext", nil)
	if !errors.Is(err, backend.ErrNoSources) {
		t.Fatalf("Extension error = %v, want ErrNoSources", err)
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("BENTO_SHELL_CC", "clang -m64")
	s := New(t.TempDir())
	if got := s.getenv("BENTO_SHELL_CC"); got != "clang -m64" {
		t.Errorf("getenv from process = %q", got)
	}
	s.Env("BENTO_SHELL_CC", "gcc")
	if got := s.getenv("BENTO_SHELL_CC"); got != "gcc" {
		t.Errorf("getenv with override = %q", got)
	}
	if got := s.getenv("BENTO_SHELL_UNSET"); got != "" {
		t.Errorf("getenv of unset variable = %q", got)
	}
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv([]string{"B=1", "A=2", "bad"}, map[string]string{"A": "3", "C": "4"})
	if strings.Join(got, ",") != "A=3,B=1,C=4" {
		t.Fatalf("mergeEnv() = %v", got)
	}
}

func TestMain(m *testing.M) {
	os.Unsetenv("CFLAGS")
	os.Unsetenv("LDFLAGS")
	os.Exit(m.Run())
}
