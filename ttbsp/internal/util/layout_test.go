// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}
}

func TestFindLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.lock"), "")
	want := filepath.Join(root, "kernel", "src", "bsp", "raspberrypi", "memory.rs")
	writeFile(t, want, "pub const END: usize = 0x4000_0000;\n")
	deep := filepath.Join(root, "kernel", "src", "memory", "mmu")
	if err := os.MkdirAll(deep, 0o777); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{root, filepath.Join(root, "kernel"), deep} {
		got, err := FindLayout(dir)
		if err != nil {
			t.Fatalf("FindLayout(%s): %v", dir, err)
		}
		if got != want {
			t.Errorf("FindLayout(%s) = %s, want %s", dir, got, want)
		}
	}
}

func TestFindLayoutStopsAtWorkspaceRoot(t *testing.T) {
	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, "src", "bsp", "raspberrypi", "memory.rs"), "")
	root := filepath.Join(outer, "workspace")
	writeFile(t, filepath.Join(root, "Cargo.lock"), "")
	if got, err := FindLayout(root); err == nil {
		t.Errorf("FindLayout(%s) = %s, want error", root, got)
	}
}

func TestFindLayoutNotRegular(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "src", "bsp", "raspberrypi", "memory.rs")
	if err := os.MkdirAll(dir, 0o777); err != nil {
		t.Fatal(err)
	}
	if got, err := FindLayout(root); err == nil {
		t.Errorf("FindLayout(%s) = %s, want error", root, got)
	}
}
