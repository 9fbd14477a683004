// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockedfile

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestMutexExcludes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ".lock")
	mu := MutexAt(path)

	unlock, err := mu.Lock()
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		// A second open file description contends with the first.
		unlock2, err := MutexAt(path).Lock()
		if err != nil {
			t.Errorf("second Lock failed: %v", err)
			return
		}
		close(acquired)
		if err := unlock2(); err != nil {
			t.Errorf("second unlock failed: %v", err)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock succeeded while the mutex was held")
	case <-time.After(50 * time.Millisecond):
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second Lock not acquired after unlock")
	}
	wg.Wait()
}

func TestMutexRelock(t *testing.T) {
	mu := MutexAt(filepath.Join(t.TempDir(), ".lock"))
	for i := 0; i < 2; i++ {
		unlock, err := mu.Lock()
		if err != nil {
			t.Fatalf("Lock #%d failed: %v", i, err)
		}
		if err := unlock(); err != nil {
			t.Fatalf("unlock #%d failed: %v", i, err)
		}
	}

	unlock, err := mu.Lock()
	if err != nil {
		t.Fatal(err)
	}
	if err := unlock(); err != nil {
		t.Fatal(err)
	}
	if err := unlock(); err == nil {
		t.Error("second release of the same lock succeeded")
	}
}

func TestMutexAtEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MutexAt(\"\") did not panic")
		}
	}()
	MutexAt("")
}
