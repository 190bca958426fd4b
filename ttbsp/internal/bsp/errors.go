// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsp

import "errors"

var (
	ErrUnsupportedVariant = errors.New("unsupported board variant")
	ErrConstantNotFound   = errors.New("constant not found for variant")
	ErrMalformedLiteral   = errors.New("malformed hexadecimal literal")
	ErrTableVersion       = errors.New("unsupported layout table version")
)
