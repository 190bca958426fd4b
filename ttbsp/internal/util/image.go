// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var (
	ErrNoSymbol  = errors.New("symbol not found")
	ErrNotMapped = errors.New("address not mapped by any loadable segment")
)

type Segment struct {
	Vaddr  uint64 // address in the memory during execution
	Paddr  uint64 // phisical load address
	Offset uint64 // offset in the ELF file to the beggining of the segment data
	Filesz uint64 // number of bytes stored in the file
	Memsz  uint64 // number of bytes occupied in the memory (Memsz >= Filesz)
}

// Image is the kernel ELF image reduced to its symbol table and loadable
// segments.
type Image struct {
	Segments []*Segment        // sorted by Vaddr
	Symbols  map[string]uint64 // symbol values
}

// OpenImage reads the ELF file name.
func OpenImage(name string) (*Image, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadImage(r)
}

// ReadImage reads the ELF image from r.
func ReadImage(r io.ReaderAt) (*Image, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img := &Image{Symbols: make(map[string]uint64)}
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		img.Segments = append(img.Segments, &Segment{
			p.Vaddr, p.Paddr, p.Off, p.Filesz, p.Memsz,
		})
	}
	sort.Slice(
		img.Segments,
		func(i, j int) bool {
			return img.Segments[i].Vaddr < img.Segments[j].Vaddr
		},
	)
	syms, err := f.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, err
	}
	for _, s := range syms {
		if s.Name == "" {
			continue
		}
		if _, ok := img.Symbols[s.Name]; ok {
			// Local symbols may be duplicated, keep the first one.
			continue
		}
		img.Symbols[s.Name] = s.Value
	}
	return img, nil
}

// SymbolValue returns the value of the named symbol.
func (img *Image) SymbolValue(name string) (uint64, error) {
	v, ok := img.Symbols[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSymbol, name)
	}
	return v, nil
}

func (img *Image) segment(addr uint64, inFile bool) *Segment {
	for _, s := range img.Segments {
		size := s.Memsz
		if inFile {
			size = s.Filesz
		}
		if s.Vaddr <= addr && addr-s.Vaddr < size {
			return s
		}
	}
	return nil
}

// VirtToPhys translates the virtual address to the physical load address
// using the program headers.
func (img *Image) VirtToPhys(addr uint64) (uint64, error) {
	s := img.segment(addr, false)
	if s == nil {
		return 0, fmt.Errorf("%w: %#x", ErrNotMapped, addr)
	}
	return s.Paddr + addr - s.Vaddr, nil
}

// VirtAddrToFileOffset returns the offset in the ELF file of the byte loaded
// at the virtual address. Addresses that belong to the zero filled part of a
// segment (eg. .bss) have no file offset.
func (img *Image) VirtAddrToFileOffset(addr uint64) (uint64, error) {
	s := img.segment(addr, true)
	if s == nil {
		return 0, fmt.Errorf("%w: %#x not backed by file data", ErrNotMapped, addr)
	}
	return s.Offset + addr - s.Vaddr, nil
}
