// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmddata records the argument vector each command was last run
// with, so later runs can replay it.
package cmddata

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/goplus/bento/internal/store"
)

// FileName is the name of the argv store inside the build directory.
const FileName = ".cmd_argv.json"

const kind = "cmd_argv"

// Provider maps a command name to the argv it was last invoked with.
type Provider struct {
	mu   sync.Mutex
	argv map[string][]string
}

// New returns an empty Provider.
func New() *Provider {
	return &Provider{argv: make(map[string][]string)}
}

// Load reads the provider persisted at path. A missing file yields an empty
// provider; an unreadable or corrupt file is an error.
func Load(path string) (*Provider, error) {
	entries, err := store.Load[[]arg](path, kind)
	if err != nil {
		return nil, err
	}
	p := New()
	for name, args := range entries {
		argv := make([]string, len(args))
		for i, a := range args {
			argv[i] = string(a)
		}
		p.argv[name] = argv
	}
	return p, nil
}

// Set records argv for the named command, replacing any prior value.
func (p *Provider) Set(name string, argv []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.argv[name] = clone(argv)
}

// Get returns the argv last recorded for name, or an empty slice.
func (p *Provider) Get(name string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.argv[name])
}

// Has reports whether argv was ever recorded for name.
func (p *Provider) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.argv[name]
	return ok
}

// Names returns the recorded command names in sorted order.
func (p *Provider) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.argv))
	for name := range p.argv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the whole mapping to path atomically.
func (p *Provider) Save(path string) error {
	p.mu.Lock()
	entries := make(map[string][]arg, len(p.argv))
	for name, argv := range p.argv {
		args := make([]arg, len(argv))
		for i, a := range argv {
			args[i] = arg(a)
		}
		entries[name] = args
	}
	p.mu.Unlock()
	return store.Save(path, kind, entries)
}

// arg is one argv element on disk. Valid UTF-8 is stored as a JSON string;
// anything else as {"base64": "..."} so the bytes survive unchanged.
type arg string

type rawArg struct {
	Base64 string `json:"base64"`
}

func (a arg) MarshalJSON() ([]byte, error) {
	if utf8.ValidString(string(a)) {
		return json.Marshal(string(a))
	}
	return json.Marshal(rawArg{Base64: base64.StdEncoding.EncodeToString([]byte(a))})
}

func (a *arg) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = arg(s)
		return nil
	}
	var raw rawArg
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("argv element: %w", err)
	}
	b, err := base64.StdEncoding.DecodeString(raw.Base64)
	if err != nil {
		return fmt.Errorf("argv element: %w", err)
	}
	*a = arg(b)
	return nil
}

func clone(argv []string) []string {
	if argv == nil {
		return []string{}
	}
	return slices.Clone(argv)
}
