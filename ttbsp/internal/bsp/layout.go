// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Layout provides the per variant memory layout constants of a board family.
type Layout interface {
	// PhysAddrSpaceEnd returns the upper bound of the physical address
	// space of the supported variant v.
	PhysAddrSpaceEnd(v Variant) (uint64, error)
}

// EndMarker marks the declarations of the end of the physical address space
// in the memory layout listing.
const EndMarker = "pub const END"

var (
	endDecl = regexp.MustCompile(`\b` + EndMarker + `\b`)
	hexLit  = regexp.MustCompile(`\b(?:0[xX]([0-9A-Fa-f_]+)|([0-9][0-9A-Fa-f_]*))(?:[ui](?:8|16|32|64|128|size))?\b`)
)

// TextLayout is the memory layout listing of the kernel (the source of its
// memory map module) split into lines.
type TextLayout []string

// ReadTextLayout reads the listing from r.
func ReadTextLayout(r io.Reader) (TextLayout, error) {
	var tl TextLayout
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		tl = append(tl, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tl, nil
}

// ParseTextLayout splits src into lines.
func ParseTextLayout(src string) TextLayout {
	return strings.Split(src, "\n")
}

// EndDecls returns the lines that declare the end of the physical address
// space, in the listing order.
func (tl TextLayout) EndDecls() []string {
	var decls []string
	for _, line := range tl {
		if endDecl.MatchString(line) {
			decls = append(decls, line)
		}
	}
	return decls
}

// PhysAddrSpaceEnd implements Layout. The n-th END declaration of the
// listing belongs to the variant with index n.
func (tl TextLayout) PhysAddrSpaceEnd(v Variant) (uint64, error) {
	i, err := v.Index()
	if err != nil {
		return 0, err
	}
	decls := tl.EndDecls()
	if i >= len(decls) {
		return 0, fmt.Errorf(
			"%w: %s needs END declaration #%d, listing has %d",
			ErrConstantNotFound, v, i+1, len(decls),
		)
	}
	end, err := ParseHexLiteral(decls[i])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", v, err)
	}
	return end, nil
}

// ParseHexLiteral extracts the only hexadecimal literal embedded in line and
// returns its value. The 0x prefix is optional, the digits may be separated
// by underscores and may be followed by an integer type suffix (eg. usize).
// Without the prefix the literal must start with a decimal digit so it cannot
// be confused with an identifier.
func ParseHexLiteral(line string) (uint64, error) {
	ms := hexLit.FindAllStringSubmatch(line, -1)
	switch len(ms) {
	case 0:
		return 0, fmt.Errorf("%w: no literal in %q", ErrMalformedLiteral, line)
	case 1:
	default:
		return 0, fmt.Errorf("%w: %d literals in %q", ErrMalformedLiteral, len(ms), line)
	}
	digits := ms[0][1] + ms[0][2]
	digits = strings.ReplaceAll(digits, "_", "")
	u, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedLiteral, ms[0][0], err)
	}
	return u, nil
}
