// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hooks keeps the pre- and post-hooks registered for each command.
package hooks

import "slices"

// Phase tells whether a hook runs before or after its command.
type Phase int

const (
	Pre Phase = iota
	Post
)

func (p Phase) String() string {
	switch p {
	case Pre:
		return "pre"
	case Post:
		return "post"
	}
	return "unknown"
}

// Registry maps a command name to its hooks in registration order.
// It never runs the hooks itself.
type Registry[H any] struct {
	pre  map[string][]H
	post map[string][]H
}

// New returns an empty Registry.
func New[H any]() *Registry[H] {
	return &Registry[H]{
		pre:  make(map[string][]H),
		post: make(map[string][]H),
	}
}

// Add appends hook to the list of cmd for the given phase.
func (r *Registry[H]) Add(phase Phase, hook H, cmd string) {
	switch phase {
	case Pre:
		r.pre[cmd] = append(r.pre[cmd], hook)
	case Post:
		r.post[cmd] = append(r.post[cmd], hook)
	default:
		panic("hooks: invalid phase")
	}
}

// AddPre appends a pre-hook for cmd.
func (r *Registry[H]) AddPre(hook H, cmd string) { r.Add(Pre, hook, cmd) }

// AddPost appends a post-hook for cmd.
func (r *Registry[H]) AddPost(hook H, cmd string) { r.Add(Post, hook, cmd) }

// Pre returns the pre-hooks of cmd.
func (r *Registry[H]) Pre(cmd string) []H { return r.Hooks(Pre, cmd) }

// Post returns the post-hooks of cmd.
func (r *Registry[H]) Post(cmd string) []H { return r.Hooks(Post, cmd) }

// Hooks returns a copy of the hooks of cmd for phase, empty when none.
func (r *Registry[H]) Hooks(phase Phase, cmd string) []H {
	var list []H
	switch phase {
	case Pre:
		list = r.pre[cmd]
	case Post:
		list = r.post[cmd]
	}
	if len(list) == 0 {
		return []H{}
	}
	return slices.Clone(list)
}
