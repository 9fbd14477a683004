// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Chain(t *testing.T) {
	s := New()
	s.SetBefore("install", "build")
	s.SetBefore("build", "configure")

	got, err := s.Order("install")
	require.NoError(t, err)
	assert.Equal(t, []string{"configure", "build"}, got)

	got, err = s.Order("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"configure"}, got)

	got, err = s.Order("configure")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrder_SetAfter(t *testing.T) {
	s := New()
	s.SetAfter("configure", "build")
	s.SetAfter("build", "install")

	got, err := s.Order("install")
	require.NoError(t, err)
	assert.Equal(t, []string{"configure", "build"}, got)
}

func TestOrder_UnknownTarget(t *testing.T) {
	s := New()
	s.SetBefore("build", "configure")

	got, err := s.Order("sdist")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.False(t, s.Known("sdist"))
}

func TestOrder_Diamond(t *testing.T) {
	s := New()
	s.SetBefore("install", "build_ext")
	s.SetBefore("install", "build_py")
	s.SetBefore("build_ext", "configure")
	s.SetBefore("build_py", "configure")

	got, err := s.Order("install")
	require.NoError(t, err)
	assert.Equal(t, []string{"configure", "build_ext", "build_py"}, got)
}

func TestOrder_DeclarationOrderMatters(t *testing.T) {
	s := New()
	s.SetBefore("c", "b")
	s.SetBefore("c", "a")

	got, err := s.Order("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestOrder_DuplicateEdgeIdempotent(t *testing.T) {
	once := New()
	once.SetBefore("install", "build")
	once.SetBefore("build", "configure")

	twice := New()
	twice.SetBefore("install", "build")
	twice.SetBefore("install", "build")
	twice.SetBefore("build", "configure")
	twice.SetAfter("configure", "build")

	want, err := once.Order("install")
	require.NoError(t, err)
	got, err := twice.Order("install")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"build"}, twice.Before("install"))
}

func TestOrder_DoesNotMutate(t *testing.T) {
	s := New()
	s.SetBefore("install", "build")
	s.SetBefore("build", "configure")
	names := s.Names()

	first, err := s.Order("install")
	require.NoError(t, err)
	second, err := s.Order("install")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, names, s.Names())
}

func TestOrder_Cycle(t *testing.T) {
	s := New()
	s.SetBefore("a", "b")
	s.SetBefore("b", "a")

	got, err := s.Order("a")
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrCycle)

	var cerr *CycleError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "a", cerr.Target)
	assert.Equal(t, []string{"a", "b", "a"}, cerr.Path)
	assert.Equal(t, []Edge{{Cmd: "a", Before: "b"}, {Cmd: "b", Before: "a"}}, cerr.Edges)
}

func TestOrder_CycleDeep(t *testing.T) {
	s := New()
	s.SetBefore("install", "build")
	s.SetBefore("build", "configure")
	s.SetBefore("configure", "prepare")
	s.SetBefore("prepare", "build")

	_, err := s.Order("install")
	var cerr *CycleError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"build", "configure", "prepare", "build"}, cerr.Path)
	assert.Contains(t, err.Error(), "build -> configure -> prepare -> build")
}

func TestOrder_SelfEdge(t *testing.T) {
	s := New()
	s.SetBefore("build", "build")

	_, err := s.Order("build")
	require.ErrorIs(t, err, ErrCycle)
}

func TestOrder_CycleNotReachable(t *testing.T) {
	s := New()
	s.SetBefore("x", "y")
	s.SetBefore("y", "x")
	s.SetBefore("install", "build")

	got, err := s.Order("install")
	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, got)
}

func TestOrder_LongChain(t *testing.T) {
	s := New()
	const n = 20000
	for i := 1; i < n; i++ {
		s.SetBefore(fmt.Sprint(i), fmt.Sprint(i-1))
	}
	got, err := s.Order(fmt.Sprint(n - 1))
	require.NoError(t, err)
	require.Len(t, got, n-1)
	assert.Equal(t, "0", got[0])
	assert.Equal(t, fmt.Sprint(n-2), got[n-2])
}

// reachable returns every node reachable from target through before-edges.
func reachable(s *Scheduler, target string) map[string]bool {
	seen := map[string]bool{}
	var walk func(string)
	walk = func(n string) {
		for _, p := range s.before[n] {
			if !seen[p] {
				seen[p] = true
				walk(p)
			}
		}
	}
	walk(target)
	return seen
}

func TestOrder_RandomDAG(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		s := New()
		const nodes = 30
		// Edges only point from higher to lower index, so the graph is a DAG.
		for i := 0; i < 80; i++ {
			a, b := rng.Intn(nodes), rng.Intn(nodes)
			if a == b {
				continue
			}
			if a < b {
				a, b = b, a
			}
			s.SetBefore(fmt.Sprint(a), fmt.Sprint(b))
		}
		target := fmt.Sprint(nodes - 1)
		got, err := s.Order(target)
		require.NoError(t, err)

		want := reachable(s, target)
		require.Len(t, got, len(want))
		pos := make(map[string]int, len(got))
		for i, n := range got {
			require.True(t, want[n], "unexpected %s", n)
			_, dup := pos[n]
			require.False(t, dup, "duplicate %s", n)
			pos[n] = i
		}
		pos[target] = len(got)
		for cmd := range pos {
			for _, prev := range s.before[cmd] {
				assert.Less(t, pos[prev], pos[cmd], "%s must precede %s", prev, cmd)
			}
		}
		assert.False(t, slices.Contains(got, target))
	}
}
