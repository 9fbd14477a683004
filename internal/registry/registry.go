// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry implements the name to implementation maps used for
// commands, command contexts and option contexts.
package registry

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotFound    = errors.New("not registered")
	ErrDuplicate   = errors.New("already registered")
	ErrInvalidName = errors.New("invalid name")
)

// Visibility controls whether a name shows up in user-facing listings.
type Visibility int

const (
	Public Visibility = iota
	Private
)

type entry[T any] struct {
	impl T
	vis  Visibility
}

// Registry binds names to implementations of type T.
//
// A name can be bound once; Register on a bound name fails with
// ErrDuplicate and leaves the first binding in place.
type Registry[T any] struct {
	kind    string
	entries map[string]entry[T]
	order   []string
}

// New returns an empty registry. kind names what is registered ("command",
// "command context", ...) and only appears in error messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:    kind,
		entries: make(map[string]entry[T]),
	}
}

// Register binds name to impl.
func (r *Registry[T]) Register(name string, impl T, vis Visibility) error {
	if name == "" {
		return fmt.Errorf("%s: %w: empty name", r.kind, ErrInvalidName)
	}
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%s %q: %w", r.kind, name, ErrDuplicate)
	}
	r.entries[name] = entry[T]{impl: impl, vis: vis}
	r.order = append(r.order, name)
	return nil
}

// Replace rebinds an already registered name, keeping its visibility and
// position.
func (r *Registry[T]) Replace(name string, impl T) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%s %q: %w", r.kind, name, ErrNotFound)
	}
	e.impl = impl
	r.entries[name] = e
	return nil
}

// Retrieve returns the implementation bound to name.
func (r *Registry[T]) Retrieve(name string) (T, error) {
	e, ok := r.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", r.kind, name, ErrNotFound)
	}
	return e.impl, nil
}

// IsRegistered reports whether name is bound.
func (r *Registry[T]) IsRegistered(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Visibility returns the visibility name was registered with.
func (r *Registry[T]) Visibility(name string) (Visibility, bool) {
	e, ok := r.entries[name]
	return e.vis, ok
}

// Names returns all bound names in registration order.
func (r *Registry[T]) Names() []string {
	return slices.Clone(r.order)
}

// PublicNames returns the public names in registration order.
func (r *Registry[T]) PublicNames() []string {
	names := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if r.entries[name].vis == Public {
			names = append(names, name)
		}
	}
	return names
}
