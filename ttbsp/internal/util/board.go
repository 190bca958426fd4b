// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"flag"
	"os"
	"strings"

	"github.com/embeddedgo/kerneltools/ttbsp/internal/bsp"
	"k8s.io/klog"
)

// BoardFlags are the command line options that select the board variant and
// the source of its memory layout.
type BoardFlags struct {
	BSP    string
	Layout string
	Table  string
}

// AddBoardFlags defines the board selection options and the klog options in
// fs.
func AddBoardFlags(fs *flag.FlagSet) *BoardFlags {
	bf := new(BoardFlags)
	var names []string
	for _, v := range bsp.Variants() {
		names = append(names, v.String())
	}
	fs.StringVar(
		&bf.BSP, "bsp", os.Getenv("BSP"),
		"board `variant`: "+strings.Join(names, ", ")+" (default $BSP)",
	)
	fs.StringVar(
		&bf.Layout, "layout", "",
		"memory layout listing `FILE` (default: search for "+
			LayoutPaths[0]+")",
	)
	fs.StringVar(
		&bf.Table, "table", "",
		"structured layout table `FILE` (YAML), overrides -layout",
	)
	klog.InitFlags(fs)
	return bf
}

// OpenLayout loads the memory layout selected by the -table or -layout option.
func (bf *BoardFlags) OpenLayout() (bsp.Layout, error) {
	if bf.Table != "" {
		if bf.Layout != "" {
			Warn("-layout %s ignored, using -table %s", bf.Layout, bf.Table)
		}
		klog.V(1).Infof("layout table: %s", bf.Table)
		data, err := os.ReadFile(bf.Table)
		if err != nil {
			return nil, err
		}
		return bsp.ParseTableLayout(data)
	}
	name := bf.Layout
	if name == "" {
		var err error
		if name, err = FindLayout("."); err != nil {
			return nil, err
		}
	}
	klog.V(1).Infof("layout listing: %s", name)
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bsp.ReadTextLayout(f)
}

// Descriptor reads the ELF image and the layout and returns the descriptor of
// the selected Raspberry Pi variant.
func (bf *BoardFlags) Descriptor(elf string) (*bsp.Descriptor, error) {
	v, err := bsp.ParseVariant(bf.BSP)
	if err != nil {
		return nil, err
	}
	layout, err := bf.OpenLayout()
	if err != nil {
		return nil, err
	}
	img, err := OpenImage(elf)
	if err != nil {
		return nil, err
	}
	return bsp.NewRaspberryPi(img, layout, v)
}
