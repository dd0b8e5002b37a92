// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import "errors"

// ErrCorrupt is returned when a codeword has more errors than its
// check bytes can correct.
var ErrCorrupt = errors.New("gf256: too many errors to correct")

// Decode corrects up to c/2 byte errors in data, whose last c bytes
// are Reed-Solomon check bytes, in place.  It returns the number of
// corrected bytes.
func (f *Field) Decode(data []byte, c int) (int, error) {
	synd, ok := f.syndromes(data, c)
	if ok {
		return 0, nil
	}
	sigma, omega, err := f.euclid(monomial(c, 1), synd, c)
	if err != nil {
		return 0, err
	}
	locs, err := f.chien(sigma)
	if err != nil {
		return 0, err
	}
	for i, loc := range locs {
		pos := len(data) - 1 - f.Log(loc)
		if pos < 0 {
			return 0, ErrCorrupt
		}
		data[pos] ^= f.magnitude(omega, locs, i)
	}
	return len(locs), nil
}

// A poly is a polynomial over GF(256), coefficients highest degree
// first, with no leading zeros unless zero itself.
type poly []byte

func monomial(degree int, coef byte) poly {
	p := make(poly, degree+1)
	p[0] = coef
	return p
}

func (p poly) norm() poly {
	for len(p) > 1 && p[0] == 0 {
		p = p[1:]
	}
	return p
}

func (p poly) degree() int  { return len(p) - 1 }
func (p poly) isZero() bool { return len(p) == 1 && p[0] == 0 }

// coef returns the coefficient of the X**d term.
func (p poly) coef(d int) byte { return p[len(p)-1-d] }

func (f *Field) eval(p poly, x byte) byte {
	var y byte
	for _, v := range p {
		y = f.Mul(y, x) ^ v
	}
	return y
}

func (f *Field) add(p, q poly) poly {
	if len(p) < len(q) {
		p, q = q, p
	}
	r := make(poly, len(p))
	copy(r, p)
	for i, v := range q {
		r[len(r)-len(q)+i] ^= v
	}
	return r.norm()
}

func (f *Field) scale(p poly, c byte) poly {
	if c == 0 {
		return poly{0}
	}
	r := make(poly, len(p))
	for i, v := range p {
		r[i] = f.Mul(v, c)
	}
	return r
}

// mulMono multiplies p by coef·X**degree.
func (f *Field) mulMono(p poly, degree int, coef byte) poly {
	if coef == 0 || p.isZero() {
		return poly{0}
	}
	r := make(poly, len(p)+degree)
	for i, v := range p {
		r[i] = f.Mul(v, coef)
	}
	return r.norm()
}

// syndromes evaluates data at the first c powers of α and reports
// whether all syndromes are zero.
func (f *Field) syndromes(data []byte, c int) (poly, bool) {
	s := make(poly, c)
	ok := true
	for i := 0; i < c; i++ {
		v := f.eval(data, f.Exp(i))
		s[len(s)-1-i] = v
		if v != 0 {
			ok = false
		}
	}
	return s.norm(), ok
}

// euclid runs the extended Euclidean algorithm on a and b, stopping
// when the remainder degree drops below c/2, and returns the error
// locator and evaluator polynomials.
func (f *Field) euclid(a, b poly, c int) (sigma, omega poly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rLast, r := a, b
	tLast, t := poly{0}, poly{1}

	for r.degree() >= c/2 {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.isZero() {
			return nil, nil, ErrCorrupt
		}
		r = rLastLast
		q := poly{0}
		dlt := rLast.coef(rLast.degree())
		inv := f.Inv(dlt)
		for !r.isZero() && r.degree() >= rLast.degree() {
			shift := r.degree() - rLast.degree()
			scale := f.Mul(r.coef(r.degree()), inv)
			q = f.add(q, f.mulMono(poly{1}, shift, scale))
			r = f.add(r, f.mulMono(rLast, shift, scale))
		}
		t = f.add(f.mul(q, tLast), tLastLast)
		if r.degree() >= rLast.degree() {
			return nil, nil, ErrCorrupt
		}
	}

	sigmaTilde := t.coef(0)
	if sigmaTilde == 0 {
		return nil, nil, ErrCorrupt
	}
	inv := f.Inv(sigmaTilde)
	return f.scale(t, inv), f.scale(r, inv), nil
}

func (f *Field) mul(p, q poly) poly {
	if p.isZero() || q.isZero() {
		return poly{0}
	}
	r := make(poly, len(p)+len(q)-1)
	for i, v := range p {
		if v == 0 {
			continue
		}
		for j, w := range q {
			r[i+j] ^= f.Mul(v, w)
		}
	}
	return r.norm()
}

// chien searches for the roots of the error locator polynomial and
// returns the error locations.
func (f *Field) chien(sigma poly) ([]byte, error) {
	n := sigma.degree()
	if n == 1 {
		return []byte{sigma.coef(1)}, nil
	}
	locs := make([]byte, 0, n)
	for i := 1; i < 256 && len(locs) < n; i++ {
		if f.eval(sigma, byte(i)) == 0 {
			locs = append(locs, f.Inv(byte(i)))
		}
	}
	if len(locs) != n {
		return nil, ErrCorrupt
	}
	return locs, nil
}

// magnitude computes the Forney error magnitude for location i.
func (f *Field) magnitude(omega poly, locs []byte, i int) byte {
	xiInv := f.Inv(locs[i])
	var denom byte = 1
	for j, loc := range locs {
		if j == i {
			continue
		}
		denom = f.Mul(denom, 1^f.Mul(loc, xiInv))
	}
	return f.Mul(f.eval(omega, xiInv), f.Inv(denom))
}
