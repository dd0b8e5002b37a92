// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.valid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	scale, bord := c.Scale, c.Border
	length := scale * (c.Size + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	blank := make([]byte, len(row))
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(blank); err != nil {
			return err
		}
	}
	for y := 0; y < c.Size; y++ {
		copy(row, blank)
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			px := (bord + x) * scale
			for i := 0; i < scale; i++ {
				row[px>>3] |= 0x80 >> (px & 7)
				px++
			}
		}
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(blank); err != nil {
			return err
		}
	}
	return b.Flush()
}
