// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "errors"

// ErrRange is returned when a value does not fit in the requested
// bit width.
var ErrRange = errors.New("qr: value out of range")

// Bits is an append-only bit buffer.  Bits are packed into bytes most
// significant first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the data codewords of
// a QR code of the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataBytes(l))}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the written bits packed into bytes.  Bytes panics if
// the bit count is not a multiple of 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Bit reports whether bit i is set.
func (b *Bits) Bit(i int) bool {
	return b.b[i>>3]>>(7-i&7)&1 != 0
}

// Append appends the nbit low bits of v, most significant first.
// It returns ErrRange if v does not fit in nbit bits.
func (b *Bits) Append(v uint32, nbit int) error {
	if nbit < 0 || nbit > 32 || nbit < 32 && v>>nbit != 0 {
		return ErrRange
	}
	b.write(v, nbit)
	return nil
}

// write appends the nbit low bits of v, most significant first.
// The caller guarantees that the value fits.
func (b *Bits) write(v uint32, nbit int) {
	for nbit > 0 {
		if b.nbit&7 == 0 {
			b.b = append(b.b, 0)
		}
		free := 8 - b.nbit&7
		n := nbit
		if n > free {
			n = free
		}
		chunk := v >> uint(nbit-n) & (1<<uint(n) - 1)
		b.b[len(b.b)-1] |= byte(chunk << uint(free-n))
		b.nbit += n
		nbit -= n
	}
}
