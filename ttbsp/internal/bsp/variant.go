// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsp

import (
	"fmt"
	"strconv"
)

// Variant selects one board of the family. The order of the supported
// variants matches the order of the END constants in the memory layout
// listing of the kernel: RPi3 is the first one, RPi4 the second one.
type Variant int

const (
	NoVariant Variant = iota
	RPi3
	RPi4

	numVariants = iota - 1
)

var variantNames = [...]string{
	RPi3: "rpi3",
	RPi4: "rpi4",
}

// Supported reports whether v is one of the known board variants.
func (v Variant) Supported() bool {
	return v > NoVariant && int(v) <= numVariants
}

// Index returns the position of v in the variant enumeration (RPi3 is 0).
func (v Variant) Index() (int, error) {
	if !v.Supported() {
		return -1, fmt.Errorf("%w: %s", ErrUnsupportedVariant, v)
	}
	return int(v) - 1, nil
}

func (v Variant) String() string {
	if v.Supported() {
		return variantNames[v]
	}
	if v == NoVariant {
		return "none"
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}

// ParseVariant returns the variant named s (eg. "rpi4").
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if name != "" && name == s {
			return Variant(v), nil
		}
	}
	if s == "" {
		return NoVariant, fmt.Errorf("%w: no board variant selected", ErrUnsupportedVariant)
	}
	return NoVariant, fmt.Errorf("%w: %q", ErrUnsupportedVariant, s)
}

// Variants returns all supported variants in the enumeration order.
func Variants() []Variant {
	vs := make([]Variant, numVariants)
	for i := range vs {
		vs[i] = Variant(i + 1)
	}
	return vs
}
