// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsp

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/coreos/go-semver/semver"
	"github.com/ghodss/yaml"
)

// TableVersion is the version of the layout table format understood by
// this package. Tables with the same major version are accepted.
var TableVersion = semver.Version{Major: 1}

// TableLayout is the structured replacement of TextLayout: a versioned YAML
// document that lists the layout constants of every variant by name.
//
//	version: 1.0.0
//	family: raspberrypi
//	variants:
//	  rpi3: {phys_addr_space_end: "0x4001_0000"}
//	  rpi4: {phys_addr_space_end: "0xFF85_0000"}
type TableLayout struct {
	Version  string                  `json:"version"`
	Family   string                  `json:"family,omitempty"`
	Variants map[string]VariantTable `json:"variants"`
}

// VariantTable holds the layout constants of one variant.
type VariantTable struct {
	PhysAddrSpaceEnd Literal `json:"phys_addr_space_end"`
}

// Literal is a numeric layout constant. A quoted value is kept as text and
// read as hexadecimal, the same way as in the kernel sources. An unquoted
// value has already been converted to an integer by the YAML decoder
// (0xFF85_0000 included) and is kept as its exact decimal representation.
type Literal struct {
	Text   string
	Number string
}

// UnmarshalJSON implements json.Unmarshaler. Parsing is deferred to Value
// so the errors returned by it can be tested with errors.Is.
func (l *Literal) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*l = Literal{}
		return nil
	case len(data) != 0 && data[0] == '"':
		*l = Literal{}
		return json.Unmarshal(data, &l.Text)
	}
	*l = Literal{Number: string(data)}
	return nil
}

// IsZero reports whether the literal was absent.
func (l Literal) IsZero() bool { return l.Text == "" && l.Number == "" }

// Value returns the value of the literal.
func (l Literal) Value() (uint64, error) {
	if l.Number == "" {
		return ParseHexLiteral(l.Text)
	}
	u, err := strconv.ParseUint(l.Number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: %s is not an unsigned 64-bit integer",
			ErrMalformedLiteral, l.Number,
		)
	}
	return u, nil
}

// ParseTableLayout decodes and validates the YAML layout table in data.
func ParseTableLayout(data []byte) (*TableLayout, error) {
	t := new(TableLayout)
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("layout table: %w", err)
	}
	if t.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrTableVersion)
	}
	v, err := semver.NewVersion(t.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableVersion, err)
	}
	if v.Major != TableVersion.Major {
		return nil, fmt.Errorf(
			"%w: %s, want %d.x.x", ErrTableVersion, v, TableVersion.Major,
		)
	}
	return t, nil
}

// PhysAddrSpaceEnd implements Layout.
func (t *TableLayout) PhysAddrSpaceEnd(v Variant) (uint64, error) {
	if _, err := v.Index(); err != nil {
		return 0, err
	}
	vt, ok := t.Variants[v.String()]
	if !ok || vt.PhysAddrSpaceEnd.IsZero() {
		return 0, fmt.Errorf(
			"%w: no phys_addr_space_end for %s in the layout table",
			ErrConstantNotFound, v,
		)
	}
	end, err := vt.PhysAddrSpaceEnd.Value()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", v, err)
	}
	return end, nil
}
