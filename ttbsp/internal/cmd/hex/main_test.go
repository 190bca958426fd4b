// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/embeddedgo/kerneltools/ttbsp/internal/bsp"
	"github.com/marcinbor85/gohex"
)

type image struct {
	syms      map[string]uint64
	physDelta uint64
}

func (img *image) SymbolValue(name string) (uint64, error) {
	v, ok := img.syms[name]
	if !ok {
		return 0, errors.New("no symbol " + name)
	}
	return v, nil
}

func (img *image) VirtToPhys(addr uint64) (uint64, error) {
	return addr - img.physDelta, nil
}

func (img *image) VirtAddrToFileOffset(addr uint64) (uint64, error) {
	return 0, errors.New("not used")
}

func newDescriptor(t *testing.T, physDelta uint64) *bsp.Descriptor {
	t.Helper()
	img := &image{
		syms: map[string]uint64{
			bsp.SymVirtAddrSpaceSize:        0x4000_0000,
			bsp.SymKernelTables:             0xffff_ffff_c002_0000,
			bsp.SymPhysKernelTablesBaseAddr: 0xffff_ffff_c001_0008,
		},
		physDelta: physDelta,
	}
	d, err := bsp.NewRaspberryPi(img, bsp.TextLayout(nil), bsp.RPi4)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestWrite(t *testing.T) {
	d := newDescriptor(t, 0xffff_ffff_c000_0000-0x8_0000)
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatal(err)
	}
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(&buf); err != nil {
		t.Fatal(err)
	}
	segs := mem.GetDataSegments()
	if len(segs) != 1 {
		t.Fatalf("got %d data segments, want 1", len(segs))
	}
	if segs[0].Address != 0x9_0008 {
		t.Errorf("segment address = %#x, want %#x", segs[0].Address, 0x9_0008)
	}
	if len(segs[0].Data) != 8 {
		t.Fatalf("segment length = %d, want 8", len(segs[0].Data))
	}
	if v := binary.LittleEndian.Uint64(segs[0].Data); v != 0xa_0000 {
		t.Errorf("patched value = %#x, want %#x", v, 0xa_0000)
	}
}

func TestWriteAddressTooHigh(t *testing.T) {
	d := newDescriptor(t, 0)
	var buf bytes.Buffer
	if err := Write(&buf, d); err == nil {
		t.Fatal("Write() succeeded for a base address above 4 GiB")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "kernel.hex")
	if err := WriteFile(name, newDescriptor(t, 0)); err == nil {
		t.Fatal("WriteFile() succeeded for a base address above 4 GiB")
	}
	if _, err := os.Stat(name); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("%s left behind after a failed WriteFile: %v", name, err)
	}
	if err := WriteFile(name, newDescriptor(t, 0xffff_ffff_c000_0000-0x8_0000)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		t.Fatal(err)
	}
	if segs := mem.GetDataSegments(); len(segs) != 1 || segs[0].Address != 0x9_0008 {
		t.Errorf("data segments = %+v, want one at %#x", segs, 0x9_0008)
	}
}
