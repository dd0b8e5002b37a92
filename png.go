// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image/png"
	"io"
)

// PNG writes a PNG image displaying the code to w.
func (c *Code) PNG(w io.Writer) error {
	if !c.valid() {
		return ErrArgs
	}
	return png.Encode(w, c.Image())
}
