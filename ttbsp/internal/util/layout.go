// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LayoutPaths lists the locations of the memory layout listing relative to
// the kernel source tree (single crate and workspace layouts).
var LayoutPaths = []string{
	"src/bsp/raspberrypi/memory.rs",
	"kernel/src/bsp/raspberrypi/memory.rs",
}

// FindLayout tries to find the memory layout listing in dir or in any of
// its parent directories. The search stops at the directory that contains
// Cargo.lock (the root of the kernel workspace).
func FindLayout(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, rel := range LayoutPaths {
			path := filepath.Join(dir, filepath.FromSlash(rel))
			fi, err := os.Stat(path)
			if err == nil {
				if !fi.Mode().IsRegular() {
					return "", fmt.Errorf("%s is not a regular file", path)
				}
				return path, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
		}
		_, err = os.Stat(filepath.Join(dir, "Cargo.lock"))
		if err == nil {
			break // found the workspace root but no layout, stop here
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf(
		"memory layout listing (%s) not found", LayoutPaths[0],
	)
}
