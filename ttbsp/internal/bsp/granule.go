// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsp

import "strconv"

// Granule is the size of the translation unit used by a board family,
// stored as log2 of the size.
type Granule uint8

const Granule64KiB Granule = 16

// Size returns the granule size in bytes.
func (g Granule) Size() uint64 { return 1 << g }

func (g Granule) String() string {
	if g == Granule64KiB {
		return "64KiB"
	}
	return "Granule(" + strconv.Itoa(int(g)) + ")"
}
