// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/embeddedgo/kerneltools/ttbsp/internal/bsp"
	"github.com/embeddedgo/kerneltools/ttbsp/internal/util"
	"github.com/marcinbor85/gohex"
	"k8s.io/klog"
)

const Descr = "write the kernel tables base address as an Intel HEX patch record"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	bf := util.AddBoardFlags(fs)
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		util.Fatal("%s: too many arguments", cmd)
	}
	defer klog.Flush()
	elf, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".hex")
	d, err := bf.Descriptor(elf)
	util.FatalErr(elf, err)
	util.FatalErr("dumpintelhex", WriteFile(out, d))
}

// WriteFile writes the Intel HEX patch record to the named file. The file is
// not created if the record cannot be computed.
func WriteFile(name string, d *bsp.Descriptor) error {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return err
	}
	return os.WriteFile(name, buf.Bytes(), 0o666)
}

// Write writes the Intel HEX file that stores the physical address of the
// kernel tables (64-bit little-endian) at the physical address of the
// PHYS_KERNEL_TABLES_BASE_ADDR word.
func Write(w io.Writer, d *bsp.Descriptor) error {
	tables, err := d.PhysAddrOfKernelTables()
	if err != nil {
		return err
	}
	at, err := d.PhysAddrOfPhysKernelTablesBaseAddr()
	if err != nil {
		return err
	}
	if uint64(uint32(at)) != at {
		return fmt.Errorf("the target address %#x doesn't fit in 32 bits", at)
	}
	klog.V(1).Infof("patch %#x: %#x", at, tables)
	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], tables)
	mem := gohex.NewMemory()
	if err := mem.AddBinary(uint32(at), word[:]); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, 16)
}
