// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockedfile provides an inter-process mutex backed by an advisory
// lock on a file.
package lockedfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupported is returned on platforms without file locking.
var ErrUnsupported = errors.New("file locking is not supported on this platform")

// A Mutex is held by at most one process at a time. The zero Mutex is not
// usable; use MutexAt.
type Mutex struct {
	path string
}

// MutexAt returns a Mutex whose lock file is path. The file and its parent
// directory are created on first Lock.
func MutexAt(path string) *Mutex {
	if path == "" {
		panic("lockedfile.MutexAt: empty path")
	}
	return &Mutex{path: path}
}

func (mu *Mutex) String() string {
	return fmt.Sprintf("lockedfile.Mutex(%s)", mu.path)
}

// Lock blocks until the lock is acquired and returns the function that
// releases it.
func (mu *Mutex) Lock() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(mu.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(mu.path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lock(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", mu.path, err)
	}
	return func() error {
		err := unlock(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to unlock %s: %w", mu.path, err)
		}
		return nil
	}, nil
}
