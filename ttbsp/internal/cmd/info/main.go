// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/kerneltools/ttbsp/internal/bsp"
	"github.com/embeddedgo/kerneltools/ttbsp/internal/util"
	"k8s.io/klog"
)

const Descr = "print the board memory layout facts of the kernel image"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] [ELF]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	bf := util.AddBoardFlags(fs)
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		util.Fatal("%s: too many arguments", cmd)
	}
	defer klog.Flush()
	elf, _ := util.InOutFiles(fs.Arg(0), ".elf", "", "")
	d, err := bf.Descriptor(elf)
	util.FatalErr(elf, err)
	util.FatalErr("", Write(os.Stdout, d))
}

// Write prints all values provided by d, one per line.
func Write(w io.Writer, d *bsp.Descriptor) error {
	for _, v := range []struct {
		name, val string
	}{
		{"variant", d.Variant().String()},
		{"granule", fmt.Sprintf("%s (%#x)", d.Granule, d.Granule.Size())},
		{"kernel_virt_addr_space_size", fmt.Sprintf("%#x", d.KernelVirtAddrSpaceSize)},
	} {
		if _, err := fmt.Fprintf(w, "%-44s %s\n", v.name+":", v.val); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name string
		f    func() (uint64, error)
	}{
		{"phys_addr_of_kernel_tables", d.PhysAddrOfKernelTables},
		{"kernel_tables_offset_in_file", d.KernelTablesOffsetInFile},
		{"phys_kernel_tables_base_addr_offset_in_file", d.PhysKernelTablesBaseAddrOffsetInFile},
		{"phys_addr_space_end_page", d.PhysAddrSpaceEndPage},
	} {
		u, err := v.f()
		if err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
		if _, err := fmt.Fprintf(w, "%-44s %#x\n", v.name+":", u); err != nil {
			return err
		}
	}
	return nil
}
