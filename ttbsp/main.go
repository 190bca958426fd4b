// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ttbsp resolves the board specific memory layout facts of a Raspberry Pi
// kernel image that are needed to embed its precomputed translation tables.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/embeddedgo/kerneltools/ttbsp/internal/cmd/hex"
	"github.com/embeddedgo/kerneltools/ttbsp/internal/cmd/info"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"hex":  {hex.Descr, hex.Main},
	"info": {info.Descr, info.Main},
}

func printToolList() {
	names := make([]string, 0, len(tools))
	for k := range tools {
		names = append(names, k)
	}
	slices.Sort(names)
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  ttbsp COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1], os.Args[2:])
}
