// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"os"
	"path/filepath"
)

// ConfigFile returns the default location of the user configuration file.
// The file may not exist.
func ConfigFile() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "bento", "config.yaml"), nil
}

// Resolve returns dir as is when it is absolute and joined to top
// otherwise.
func Resolve(top, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(top, dir)
}
