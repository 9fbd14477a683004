// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix && !windows

package lockedfile

import "os"

func lock(*os.File) error { return ErrUnsupported }

func unlock(*os.File) error { return ErrUnsupported }
