// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bsp describes the board specific memory layout facts needed to
// embed the precomputed kernel translation tables into the kernel image.
package bsp

import (
	"fmt"

	"k8s.io/klog"
)

// Names of the kernel symbols read by New.
const (
	SymVirtAddrSpaceSize        = "__kernel_virt_addr_space_size"
	SymKernelTables             = "KERNEL_TABLES"
	SymPhysKernelTablesBaseAddr = "PHYS_KERNEL_TABLES_BASE_ADDR"
)

// Image resolves kernel symbols and maps the kernel virtual addresses to the
// physical ones and to the offsets in the kernel image file.
type Image interface {
	SymbolValue(name string) (uint64, error)
	VirtToPhys(addr uint64) (uint64, error)
	VirtAddrToFileOffset(addr uint64) (uint64, error)
}

// Descriptor provides the layout facts of one kernel build for one board
// variant. All derived values are computed on demand from the image and the
// layout which must not change during the Descriptor lifetime.
type Descriptor struct {
	Granule                 Granule
	KernelVirtAddrSpaceSize uint64

	variant Variant
	img     Image
	layout  Layout

	kernelTables             uint64 // virtual address of KERNEL_TABLES
	physKernelTablesBaseAddr uint64 // virtual address of PHYS_KERNEL_TABLES_BASE_ADDR
}

// New returns the descriptor of the kernel image img built for the variant v
// of the board family that uses the translation granule g. It fails if any of
// the required symbols cannot be resolved.
func New(g Granule, img Image, layout Layout, v Variant) (*Descriptor, error) {
	d := &Descriptor{Granule: g, variant: v, img: img, layout: layout}
	var err error
	for _, s := range []struct {
		name string
		val  *uint64
	}{
		{SymVirtAddrSpaceSize, &d.KernelVirtAddrSpaceSize},
		{SymKernelTables, &d.kernelTables},
		{SymPhysKernelTablesBaseAddr, &d.physKernelTablesBaseAddr},
	} {
		if *s.val, err = img.SymbolValue(s.name); err != nil {
			return nil, fmt.Errorf("bsp: %w", err)
		}
		klog.V(1).Infof("%s = %#x", s.name, *s.val)
	}
	return d, nil
}

// NewRaspberryPi returns the descriptor of a Raspberry Pi 3 or 4 kernel.
func NewRaspberryPi(img Image, layout Layout, v Variant) (*Descriptor, error) {
	return New(Granule64KiB, img, layout, v)
}

// Variant returns the board variant the descriptor was created for.
func (d *Descriptor) Variant() Variant { return d.variant }

// KernelTablesVirtAddr returns the virtual address of the kernel tables.
func (d *Descriptor) KernelTablesVirtAddr() uint64 { return d.kernelTables }

// PhysKernelTablesBaseAddrVirtAddr returns the virtual address of the word
// that holds the physical address of the kernel tables.
func (d *Descriptor) PhysKernelTablesBaseAddrVirtAddr() uint64 {
	return d.physKernelTablesBaseAddr
}

// PhysAddrOfKernelTables returns the physical address of the kernel tables.
func (d *Descriptor) PhysAddrOfKernelTables() (uint64, error) {
	return d.img.VirtToPhys(d.kernelTables)
}

// PhysAddrOfPhysKernelTablesBaseAddr returns the physical address of the word
// that holds the physical address of the kernel tables.
func (d *Descriptor) PhysAddrOfPhysKernelTablesBaseAddr() (uint64, error) {
	return d.img.VirtToPhys(d.physKernelTablesBaseAddr)
}

// KernelTablesOffsetInFile returns the offset of the kernel tables in the
// kernel image file.
func (d *Descriptor) KernelTablesOffsetInFile() (uint64, error) {
	return d.img.VirtAddrToFileOffset(d.kernelTables)
}

// PhysKernelTablesBaseAddrOffsetInFile returns the offset of the word that
// holds the physical address of the kernel tables in the kernel image file.
func (d *Descriptor) PhysKernelTablesBaseAddrOffsetInFile() (uint64, error) {
	return d.img.VirtAddrToFileOffset(d.physKernelTablesBaseAddr)
}

// PhysAddrSpaceEndPage returns the upper bound of the physical address space
// of the selected board variant as read from the memory layout.
func (d *Descriptor) PhysAddrSpaceEndPage() (uint64, error) {
	if !d.variant.Supported() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedVariant, d.variant)
	}
	return d.layout.PhysAddrSpaceEnd(d.variant)
}
