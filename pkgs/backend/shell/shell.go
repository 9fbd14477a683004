// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell builds extensions by invoking the C compiler named by $CC.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/goplus/bento/pkgs/backend"
	"github.com/qiniu/x/gsh"
)

// DefaultCC is the compiler used when $CC is unset.
const DefaultCC = "cc"

// Shell compiles each extension into a shared library under OutDir.
type Shell struct {
	OutDir string
	// Stderr receives compiler diagnostics. Defaults to os.Stderr.
	Stderr io.Writer

	env map[string]string
}

var _ backend.Builder = (*Shell)(nil)

// New returns a Shell writing into outDir.
func New(outDir string) *Shell {
	return &Shell{OutDir: outDir, env: map[string]string{}}
}

// Env sets an environment variable for compiler invocations.
func (s *Shell) Env(key, val string) {
	if s.env == nil {
		s.env = map[string]string{}
	}
	s.env[key] = val
}

// Extension compiles sources into OutDir/<name><suffix>.
func (s *Shell) Extension(ctx context.Context, name string, sources []string) ([]string, error) {
	if len(sources) == 0 {
		return nil, &backend.BuildError{Unit: name, Err: backend.ErrNoSources}
	}
	if err := os.MkdirAll(s.OutDir, 0755); err != nil {
		return nil, &backend.BuildError{Unit: name, Err: err}
	}
	out := filepath.Join(s.OutDir, name+libSuffix())

	cc := strings.Fields(s.getenv("CC"))
	if len(cc) == 0 {
		cc = []string{DefaultCC}
	}
	args := append(cc[1:], "-shared", "-fPIC", "-o", out)
	args = append(args, strings.Fields(s.getenv("CFLAGS"))...)
	args = append(args, sources...)
	args = append(args, strings.Fields(s.getenv("LDFLAGS"))...)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, cc[0], args...)
	cmd.Stderr = &stderr
	if s.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, s.Stderr)
	}
	if len(s.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), s.env)
	}
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &backend.BuildError{Unit: name, Err: err}
	}
	return []string{out}, nil
}

func (s *Shell) getenv(key string) string {
	if v, ok := s.env[key]; ok {
		return v
	}
	return gsh.Getenv(os.Environ(), key)
}

func libSuffix() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	}
	return ".so"
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
