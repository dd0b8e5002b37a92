// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/jerey17/qr/gf256"

// AddCheckBytes pads b to the data codeword capacity of the given
// version and level, splits it into error correction blocks and
// returns the interleaved data and check codewords ready for
// placement.  It panics if b holds more bits than fit.
func (b *Bits) AddCheckBytes(v Version, l Level) []byte {
	nd := v.DataBytes(l)
	if b.Bits() > nd*8 {
		panic("qr: too much data")
	}

	// terminator, byte alignment and pad codewords
	b.write(0, min(4, nd*8-b.Bits()))
	if n := -b.Bits() & 7; n != 0 {
		b.write(0, n)
	}
	for i := 0; b.Bits() < nd*8; i++ {
		b.write([2]uint32{0xec, 0x11}[i&1], 8)
	}

	data := b.Bytes()
	if len(data) != nd {
		panic("qr: internal error")
	}

	nblock := int(blockCount[l][v])
	check := int(blockEC[l][v])
	total := v.Codewords()
	long := total % nblock        // number of long blocks, placed last
	dlen := total/nblock - check  // data bytes in a short block

	rs := gf256.NewRSEncoder(Field, check)
	blocks := make([][]byte, nblock)
	ecc := make([]byte, nblock*check)
	off := 0
	for i := range blocks {
		n := dlen
		if i >= nblock-long {
			n++
		}
		blocks[i] = data[off : off+n]
		rs.ECC(blocks[i], ecc[i*check:])
		off += n
	}
	if off != nd {
		panic("qr: internal error")
	}

	// interleave data codewords, then check codewords
	out := make([]byte, 0, total)
	for i := 0; i <= dlen; i++ {
		for _, blk := range blocks {
			if i < len(blk) {
				out = append(out, blk[i])
			}
		}
	}
	for i := 0; i < check; i++ {
		for j := 0; j < nblock; j++ {
			out = append(out, ecc[j*check+i])
		}
	}
	if len(out) != total {
		panic("qr: internal error")
	}
	return out
}
