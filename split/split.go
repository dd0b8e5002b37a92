// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package split splits text into QR code segments.
//
// The splitter classifies the input into runs of characters sharing
// the same candidate encoding modes and chooses the sequence of
// segments with the shortest encoding, switching between numeric,
// alphanumeric, byte and kanji modes as needed.
package split // import "github.com/jerey17/qr/split"

import (
	"errors"
	"unicode/utf8"

	"github.com/jerey17/qr/coding"
)

// Error correction levels.
const (
	L = coding.L
	M = coding.M
	Q = coding.Q
	H = coding.H
)

var (
	ErrLongText     = coding.ErrLongText
	ErrNotEncodable = errors.New("qr: text not encodable in requested charset")
)

// Options control text splitting.  The zero value splits UTF-8 text
// with kanji mode enabled.
type Options struct {
	// Latin1 encodes byte mode segments as ISO 8859-1 rather than
	// UTF-8.  Text containing characters above U+00FF outside of
	// kanji mode segments is then rejected.
	Latin1 bool

	// NoKanji disables kanji mode segments.  Kanji text is still
	// encodable in byte mode unless Latin1 is set.
	NoKanji bool
}

// Candidate mode indices, ordered strictest first.
const (
	numMode = iota
	alphaMode
	byteMode
	kanjiMode
	nmode
)

// A span is a run of characters sharing the same candidate modes.
type span struct {
	start int  // byte offset into the text
	slen  int  // length in bytes
	rlen  int  // length in runes
	modes byte // bit set of candidate modes
	seg   [nmode]segment
}

// A segment is the head of an optimal segment chain covering the text
// from a span to the end, with a fixed first mode.
type segment struct {
	next  *segment
	start int
	slen  int
	rlen  int
	bits  int // encoded length of the whole chain
	mode  byte
}

const noSplit = 1 << 30

// classify splits text into spans of characters sharing candidate
// modes.
func classify(text string, opt Options) ([]span, error) {
	var spans []span
	prev := byte(0xff)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		var m byte
		switch {
		case coding.IsNumeric(r):
			m = 1<<numMode | 1<<alphaMode | 1<<byteMode
		case coding.IsAlphanumeric(r):
			m = 1<<alphaMode | 1<<byteMode
		default:
			m = 1 << byteMode
		}
		if opt.Latin1 && r > 0xff {
			m &^= 1 << byteMode
		}
		if !opt.NoKanji && coding.IsKanji(r) {
			m |= 1 << kanjiMode
		}
		if m == 0 {
			return nil, ErrNotEncodable
		}
		if m != prev {
			spans = append(spans, span{start: i, modes: m})
			prev = m
		}
		sp := &spans[len(spans)-1]
		sp.slen += size
		sp.rlen++
		i += size
	}
	return spans, nil
}

// length returns the encoded length in bits of a segment of the given
// mode covering slen bytes and rlen runes at a version size class.
func (opt Options) length(mode byte, slen, rlen, class int) int {
	switch mode {
	case numMode:
		return coding.Numeric.Length(slen, rlen, class)
	case alphaMode:
		return coding.Alphanumeric.Length(slen, rlen, class)
	case byteMode:
		if opt.Latin1 {
			return coding.Latin1.Length(slen, rlen, class)
		}
		return coding.Byte.Length(slen, rlen, class)
	}
	return coding.Kanji.Length(slen, rlen, class)
}

// codingMode maps a candidate mode index to a coding mode.
func (opt Options) codingMode(mode byte) coding.Mode {
	switch mode {
	case numMode:
		return coding.Numeric
	case alphaMode:
		return coding.Alphanumeric
	case byteMode:
		if opt.Latin1 {
			return coding.Latin1
		}
		return coding.Byte
	}
	return coding.Kanji
}

// split finds the shortest segment chain covering the spans at the
// given version size class by dynamic programming from the last span
// backwards.  Adjacent segments of the same mode are merged.
func (opt Options) split(spans []span, class int) *segment {
	last := len(spans) - 1
	for i := last; i >= 0; i-- {
		sp := &spans[i]
		for j := 0; j < nmode; j++ {
			sp.seg[j] = segment{bits: noSplit}
			if sp.modes>>j&1 == 0 {
				continue
			}
			if i == last {
				sp.seg[j] = segment{
					start: sp.start,
					slen:  sp.slen,
					rlen:  sp.rlen,
					bits:  opt.length(byte(j), sp.slen, sp.rlen, class),
					mode:  byte(j),
				}
				continue
			}
			for k := 0; k < nmode; k++ {
				next := &spans[i+1].seg[k]
				if next.bits == noSplit {
					continue
				}
				c := segment{
					next:  next,
					start: sp.start,
					slen:  sp.slen,
					rlen:  sp.rlen,
					mode:  byte(j),
				}
				if k == j {
					// merge with the same mode segment
					c.slen += next.slen
					c.rlen += next.rlen
					c.next = next.next
				}
				c.bits = opt.length(byte(j), c.slen, c.rlen, class)
				if c.next != nil {
					c.bits += c.next.bits
				}
				if c.bits < sp.seg[j].bits {
					sp.seg[j] = c
				}
			}
		}
	}
	best := &spans[0].seg[0]
	for j := 1; j < nmode; j++ {
		if spans[0].seg[j].bits < best.bits {
			best = &spans[0].seg[j]
		}
	}
	return best
}

// sizeClass gives the version range of each size class.
var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9},
	{10, 26},
	{27, 40},
}

// Split splits text into segments and returns them together with the
// smallest version whose capacity holds them at the given level.
// Empty text yields no segments and the smallest version.
func Split(text string, level coding.Level, opt Options) ([]coding.Segment, coding.Version, error) {
	if level < L || level > H {
		return nil, 0, coding.ErrLevel
	}
	if text == "" {
		return nil, coding.MinVersion, nil
	}
	spans, err := classify(text, opt)
	if err != nil {
		return nil, 0, err
	}

	// Splitting depends on the size class through character count
	// field widths, and the class depends on the encoded length.
	// Start at the smallest class and resplit until they agree.
	class := 0
	head := opt.split(spans, class)
	for sizeClass[class].max.DataBits(level) < head.bits {
		for class++; class < len(sizeClass) &&
			sizeClass[class].max.DataBits(level) < head.bits; class++ {
		}
		if class == len(sizeClass) {
			return nil, 0, ErrLongText
		}
		head = opt.split(spans, class)
	}

	// binary search for the smallest version in the class
	v, max := sizeClass[class].min, sizeClass[class].max
	for v < max {
		if mid := (v + max) / 2; mid.DataBits(level) < head.bits {
			v = mid + 1
		} else {
			max = mid
		}
	}

	var segs []coding.Segment
	for s := head; s != nil; s = s.next {
		segs = append(segs, coding.Segment{
			Text: text[s.start : s.start+s.slen],
			Mode: opt.codingMode(s.mode),
		})
	}
	return segs, v, nil
}

// MinVersion returns the smallest version whose capacity holds text
// at the given level.
func MinVersion(text string, level coding.Level, opt Options) (coding.Version, error) {
	_, v, err := Split(text, level, opt)
	return v, err
}
