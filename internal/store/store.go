// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists small keyed state files under the build directory.
//
// Every file is a self-describing JSON envelope:
//
//	{
//	  "version": 1,
//	  "kind": "cmd_argv",
//	  "entries": { "<key>": <value>, ... }
//	}
//
// The kind ties a file to its owner so that one state file is never decoded
// as another. Writes go through a temp file and a rename, so a crash
// mid-write leaves the previous content in place.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Version is the envelope format version written by Save.
const Version = 1

// ErrCorrupt reports a state file that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt state file")

type envelope[V any] struct {
	Version int          `json:"version"`
	Kind    string       `json:"kind"`
	Entries map[string]V `json:"entries"`
}

// Load reads the entries stored at path.
//
// A missing file yields an empty map. A file that exists but is not a valid
// envelope of the given kind yields an error wrapping ErrCorrupt.
func Load[V any](path, kind string) (map[string]V, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]V), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var env envelope[V]
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, corruptf(path, "%v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, corruptf(path, "trailing content")
	}
	if env.Version != Version {
		return nil, corruptf(path, "unsupported version %d", env.Version)
	}
	if env.Kind != kind {
		return nil, corruptf(path, "kind is %q, want %q", env.Kind, kind)
	}
	if env.Entries == nil {
		env.Entries = make(map[string]V)
	}
	return env.Entries, nil
}

// Save atomically replaces the file at path with entries.
func Save[V any](path, kind string, entries map[string]V) error {
	if entries == nil {
		entries = make(map[string]V)
	}
	data, err := json.MarshalIndent(envelope[V]{
		Version: Version,
		Kind:    kind,
		Entries: entries,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func corruptf(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrCorrupt, path, fmt.Sprintf(format, args...))
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	// Directories cannot be opened for sync on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
