// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkgdesc reads package description files (bento.yaml, bento.toml).
package pkgdesc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is used when a description does not set a version.
const DefaultVersion = "0.0.0"

// FileNames lists the description file names Find looks for, in order.
var FileNames = []string{"bento.yaml", "bento.yml", "bento.toml"}

var (
	ErrInvalidPackage = errors.New("invalid package")
	ErrNotFound       = errors.New("no package description found")
)

// ParseError reports a description file that cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Flag is a user-selectable boolean, passed to configure as --<name>=<bool>.
type Flag struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	Default     bool   `yaml:"default" toml:"default"`
}

// Conditional selects Modules when Flag is true and Else otherwise.
type Conditional struct {
	Flag    string   `yaml:"flag" toml:"flag"`
	Modules []string `yaml:"modules" toml:"modules"`
	Else    []string `yaml:"else" toml:"else"`
}

// Extension is a native unit compiled by the build backend.
type Extension struct {
	Name    string   `yaml:"name" toml:"name"`
	Sources []string `yaml:"sources" toml:"sources"`
}

// Package is a parsed package description.
type Package struct {
	Name        string        `yaml:"name" toml:"name"`
	Version     string        `yaml:"version" toml:"version"`
	Summary     string        `yaml:"summary" toml:"summary"`
	Description string        `yaml:"description" toml:"description"`
	License     string        `yaml:"license" toml:"license"`
	HookFile    string        `yaml:"hook_file" toml:"hook_file"`
	Flags       []Flag        `yaml:"flags" toml:"flags"`
	Modules     []string      `yaml:"modules" toml:"modules"`
	Conditional []Conditional `yaml:"conditional_modules" toml:"conditional_modules"`
	DataFiles   []string      `yaml:"data_files" toml:"data_files"`
	Extensions  []Extension   `yaml:"extensions" toml:"extensions"`

	// Dir is the directory holding the description file.
	Dir string `yaml:"-" toml:"-"`
	// File is the path the description was read from.
	File string `yaml:"-" toml:"-"`
}

// Find returns the first description file found in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// ParseFile reads and validates the description at path. The format follows
// the file extension.
func ParseFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	pkg.File = abs
	pkg.Dir = filepath.Dir(abs)
	return pkg, nil
}

// Parse decodes data; name selects the format by extension and is used in
// error messages.
func Parse(name string, data []byte) (*Package, error) {
	var pkg Package
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &pkg)
		if err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &ParseError{Path: name, Err: fmt.Errorf("unknown field %q", undecoded[0].String())}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&pkg); err != nil && err != io.EOF {
			return nil, &ParseError{Path: name, Err: err}
		}
	default:
		return nil, &ParseError{Path: name, Err: fmt.Errorf("unsupported format %q", ext)}
	}
	if pkg.Version == "" {
		pkg.Version = DefaultVersion
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Validate checks the fields the commands rely on.
func (p *Package) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPackage)
	}
	if !semver.IsValid("v" + p.Version) {
		return fmt.Errorf("%w: version %q is not a semantic version", ErrInvalidPackage, p.Version)
	}
	flags := make(map[string]bool, len(p.Flags))
	for _, f := range p.Flags {
		if f.Name == "" {
			return fmt.Errorf("%w: flag without name", ErrInvalidPackage)
		}
		if flags[f.Name] {
			return fmt.Errorf("%w: duplicate flag %q", ErrInvalidPackage, f.Name)
		}
		flags[f.Name] = true
	}
	for _, c := range p.Conditional {
		if !flags[c.Flag] {
			return fmt.Errorf("%w: conditional modules use undeclared flag %q", ErrInvalidPackage, c.Flag)
		}
	}
	exts := make(map[string]bool, len(p.Extensions))
	for _, ext := range p.Extensions {
		if ext.Name == "" {
			return fmt.Errorf("%w: extension without name", ErrInvalidPackage)
		}
		if exts[ext.Name] {
			return fmt.Errorf("%w: duplicate extension %q", ErrInvalidPackage, ext.Name)
		}
		if len(ext.Sources) == 0 {
			return fmt.Errorf("%w: extension %q has no sources", ErrInvalidPackage, ext.Name)
		}
		if strings.ContainsAny(ext.Name, `/\`) || ext.Name == "." || ext.Name == ".." {
			return fmt.Errorf("%w: extension name %q is not a plain name", ErrInvalidPackage, ext.Name)
		}
		for _, src := range ext.Sources {
			if err := checkPath("extension source", src); err != nil {
				return err
			}
		}
		exts[ext.Name] = true
	}
	if p.HookFile != "" {
		if err := checkPath("hook file", p.HookFile); err != nil {
			return err
		}
	}
	for _, m := range p.AllModules() {
		if err := checkPath("module", m); err != nil {
			return err
		}
	}
	for _, d := range p.DataFiles {
		if err := checkPath("data file", d); err != nil {
			return err
		}
	}
	return nil
}

// checkPath requires a path relative to the package directory that stays
// inside it.
func checkPath(what, p string) error {
	slashed := filepath.ToSlash(p)
	switch {
	case p == "":
		return fmt.Errorf("%w: empty %s path", ErrInvalidPackage, what)
	case filepath.IsAbs(p), strings.HasPrefix(slashed, "/"), filepath.VolumeName(p) != "":
		return fmt.Errorf("%w: %s %q must be relative to the package directory", ErrInvalidPackage, what, p)
	}
	for _, elem := range strings.Split(slashed, "/") {
		if elem == ".." {
			return fmt.Errorf("%w: %s %q leaves the package directory", ErrInvalidPackage, what, p)
		}
	}
	return nil
}

// FlagDefaults returns the default value of every declared flag.
func (p *Package) FlagDefaults() map[string]bool {
	m := make(map[string]bool, len(p.Flags))
	for _, f := range p.Flags {
		m[f.Name] = f.Default
	}
	return m
}

// Resolve returns the module list for the given flag values. Flags missing
// from values take their declared default.
func (p *Package) Resolve(values map[string]bool) []string {
	mods := append([]string{}, p.Modules...)
	defaults := p.FlagDefaults()
	for _, c := range p.Conditional {
		on, ok := values[c.Flag]
		if !ok {
			on = defaults[c.Flag]
		}
		if on {
			mods = append(mods, c.Modules...)
		} else {
			mods = append(mods, c.Else...)
		}
	}
	return mods
}

// AllModules returns every module named by the description, whatever the
// flag values.
func (p *Package) AllModules() []string {
	mods := append([]string{}, p.Modules...)
	for _, c := range p.Conditional {
		mods = append(mods, c.Modules...)
		mods = append(mods, c.Else...)
	}
	return mods
}

// DistName returns "<name>-<version>" with the version in canonical form.
func (p *Package) DistName() string {
	v := strings.TrimPrefix(semver.Canonical("v"+p.Version), "v")
	if v == "" {
		v = p.Version
	}
	return p.Name + "-" + v
}
