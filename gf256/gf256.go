// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois field GF(256)
// and Reed-Solomon coding over it.
package gf256

// A Field represents an instance of GF(256) defined by a reduction
// polynomial and a generator element α.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp table, doubled to avoid modular reduction
}

// NewField returns the field defined by the given reduction polynomial
// and generator.  The polynomial must be of degree 8 and the generator
// must generate the multiplicative group of the field, or NewField
// panics.
func NewField(poly, generator int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: reduction polynomial out of range")
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: generator does not generate the field")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = polyMul(x, generator, poly)
	}
	f.log[0] = 255
	return &f
}

// polyMul multiplies x by y in GF(2)[X] modulo poly.
func polyMul(x, y, poly int) int {
	z := 0
	for ; y != 0; y >>= 1 {
		if y&1 != 0 {
			z ^= x
		}
		x <<= 1
		if x&0x100 != 0 {
			x ^= poly
		}
	}
	return z
}

// Exp returns α**e.
func (f *Field) Exp(e int) byte {
	return f.exp[e%255]
}

// Log returns the discrete logarithm of x, or -1 for x == 0.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Mul returns the product of x and y.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Inv returns the multiplicative inverse of x.  Inv panics if x == 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		panic("gf256: inverse of zero")
	}
	return f.exp[255-int(f.log[x])]
}
