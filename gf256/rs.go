// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

// An RSEncoder implements Reed-Solomon encoding over a field, with a
// fixed number of check bytes.  It is not safe for concurrent use.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte // generator polynomial sans the leading 1, highest degree first
	p   []byte // scratch buffer
}

// NewRSEncoder returns an encoder generating c check bytes over f.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, gen: f.gen(c)}
}

// gen returns the coefficients of the degree e generator polynomial
// ∏ (X - α**i) for 0 ≤ i < e, highest degree first, omitting the
// leading 1.
func (f *Field) gen(e int) []byte {
	g := make([]byte, 1, e+1)
	g[0] = 1
	for i := 0; i < e; i++ {
		// multiply g by (X - α**i)
		r := f.Exp(i)
		g = append(g, 0)
		for j := len(g) - 1; j > 0; j-- {
			g[j] ^= f.Mul(g[j-1], r)
		}
		// g[0] keeps its leading 1
	}
	return g[1:]
}

// ECC writes the check bytes for data into check, which must be at
// least c bytes long.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}

	// Polynomial long division of data·X**c by the generator;
	// the remainder is the check bytes.
	n := len(data) + rs.c
	if cap(rs.p) < n {
		rs.p = make([]byte, n)
	}
	p := rs.p[:n]
	copy(p, data)
	for i := len(data); i < n; i++ {
		p[i] = 0
	}
	f := rs.f
	for i := 0; i < len(data); i++ {
		k := p[i]
		if k == 0 {
			continue
		}
		for j, g := range rs.gen {
			p[i+1+j] ^= f.Mul(g, k)
		}
	}
	copy(check, p[len(data):])
}
