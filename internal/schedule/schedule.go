// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schedule orders commands according to declared before/after
// constraints.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrCycle is wrapped by every *CycleError.
var ErrCycle = errors.New("cycle detected")

// Edge records that Before must run before Cmd.
type Edge struct {
	Cmd    string
	Before string
}

// CycleError reports a cycle found while ordering Target.
type CycleError struct {
	Target string
	// Path is the closed cycle, e.g. [install build install], where each
	// name requires the next one to run before it.
	Path  []string
	Edges []Edge
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s (ordering %q)", ErrCycle, strings.Join(e.Path, " -> "), e.Target)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Scheduler holds "must run before" edges between command names.
//
// The zero value is not usable; call New.
type Scheduler struct {
	before map[string][]string
	known  map[string]bool
	names  []string
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		before: make(map[string][]string),
		known:  make(map[string]bool),
	}
}

func (s *Scheduler) register(name string) {
	if !s.known[name] {
		s.known[name] = true
		s.names = append(s.names, name)
	}
}

// SetBefore declares that prev must run before cmd. Declaring the same edge
// twice has no further effect.
func (s *Scheduler) SetBefore(cmd, prev string) {
	s.register(cmd)
	s.register(prev)
	if !slices.Contains(s.before[cmd], prev) {
		s.before[cmd] = append(s.before[cmd], prev)
	}
}

// SetAfter declares that next must run after cmd.
func (s *Scheduler) SetAfter(cmd, next string) {
	s.SetBefore(next, cmd)
}

// Known reports whether name appeared in any edge declaration.
func (s *Scheduler) Known(name string) bool {
	return s.known[name]
}

// Names returns every known name in first-seen order.
func (s *Scheduler) Names() []string {
	return slices.Clone(s.names)
}

// Before returns the direct predecessors of cmd in declaration order.
func (s *Scheduler) Before(cmd string) []string {
	return slices.Clone(s.before[cmd])
}

type frame struct {
	name string
	next int
}

// Order returns the commands that must run before target, in an order where
// every command follows all of its predecessors. target itself is excluded.
//
// The walk is depth-first over predecessors in declaration order, so the
// result is stable for a fixed sequence of declarations. A cycle reachable
// from target yields a *CycleError.
func (s *Scheduler) Order(target string) ([]string, error) {
	done := make(map[string]bool)
	onStack := map[string]bool{target: true}
	stack := []frame{{name: target}}
	var out []string

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		preds := s.before[top.name]
		if top.next < len(preds) {
			prev := preds[top.next]
			top.next++
			if onStack[prev] {
				return nil, s.cycleError(target, stack, prev)
			}
			if done[prev] {
				continue
			}
			onStack[prev] = true
			stack = append(stack, frame{name: prev})
			continue
		}
		delete(onStack, top.name)
		done[top.name] = true
		out = append(out, top.name)
		stack = stack[:len(stack)-1]
	}
	return out[:len(out)-1], nil
}

// cycleError builds the error for the back edge stack[top] -> prev.
func (s *Scheduler) cycleError(target string, stack []frame, prev string) error {
	start := 0
	for i, f := range stack {
		if f.name == prev {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.name)
	}
	path = append(path, prev)

	edges := make([]Edge, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		edges = append(edges, Edge{Cmd: path[i], Before: path[i+1]})
	}
	return &CycleError{Target: target, Path: path, Edges: edges}
}
