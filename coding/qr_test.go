// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"reflect"
	"testing"
)

func TestVersionCapacity(t *testing.T) {
	for _, tc := range []struct {
		v         Version
		size      int
		codewords int
		data      [4]int
	}{
		{1, 21, 26, [4]int{19, 16, 13, 9}},
		{2, 25, 44, [4]int{34, 28, 22, 16}},
		{7, 45, 196, [4]int{156, 124, 88, 66}},
		{10, 57, 346, [4]int{274, 216, 154, 122}},
		{40, 177, 3706, [4]int{2956, 2334, 1666, 1276}},
	} {
		if got := tc.v.Size(); got != tc.size {
			t.Errorf("version %v: Size = %d, want %d", tc.v, got, tc.size)
		}
		if got := tc.v.Codewords(); got != tc.codewords {
			t.Errorf("version %v: Codewords = %d, want %d",
				tc.v, got, tc.codewords)
		}
		for l := L; l <= H; l++ {
			if got := tc.v.DataBytes(l); got != tc.data[l] {
				t.Errorf("version %v-%v: DataBytes = %d, want %d",
					tc.v, l, got, tc.data[l])
			}
		}
	}
}

func TestVersionMonotonic(t *testing.T) {
	for l := L; l <= H; l++ {
		for v := MinVersion; v < MaxVersion; v++ {
			if v.DataBytes(l) >= (v + 1).DataBytes(l) {
				t.Errorf("DataBytes(%v) not growing at version %v", l, v)
			}
		}
	}
}

func TestAlignPos(t *testing.T) {
	for _, tc := range []struct {
		v    Version
		want []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{6, []int{6, 34}},
		{7, []int{6, 22, 38}},
		{14, []int{6, 26, 46, 66}},
		{21, []int{6, 28, 50, 72, 94}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		if got := tc.v.alignPos(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("version %v: alignPos = %v, want %v",
				tc.v, got, tc.want)
		}
	}
}

func TestFormatInfo(t *testing.T) {
	for _, tc := range []struct {
		l    Level
		mask int
		want int
	}{
		{M, 0, 0x5412},
		{L, 0, 0x77c4},
		{H, 0, 0x1689},
		{Q, 7, 0x2bed},
	} {
		if got := formatInfo(tc.l, tc.mask); got != tc.want {
			t.Errorf("formatInfo(%v, %d) = %#x, want %#x",
				tc.l, tc.mask, got, tc.want)
		}
	}
	// all 32 format values are distinct and pass the BCH check
	seen := make(map[int]bool)
	for l := L; l <= H; l++ {
		for mask := 0; mask < 8; mask++ {
			v := formatInfo(l, mask)
			if seen[v] {
				t.Errorf("duplicate format info %#x", v)
			}
			seen[v] = true
			if rem := bchRem(v^0x5412, 10, 0x537); rem != 0 {
				t.Errorf("formatInfo(%v, %d): BCH remainder %#x",
					l, mask, rem)
			}
		}
	}
}

func TestVersionInfo(t *testing.T) {
	if got := versionInfo(7); got != 0x07c94 {
		t.Errorf("versionInfo(7) = %#x, want %#x", got, 0x07c94)
	}
	for v := Version(7); v <= MaxVersion; v++ {
		if rem := bchRem(versionInfo(v), 12, 0x1f25); rem != 0 {
			t.Errorf("versionInfo(%v): BCH remainder %#x", v, rem)
		}
	}
}

// bchRem divides v by the BCH generator polynomial of degree n and
// returns the remainder.
func bchRem(v, n, poly int) int {
	for i := 30; i >= 0; i-- {
		if v>>uint(i+n)&1 != 0 {
			v ^= poly << uint(i)
		}
	}
	return v
}

func TestBits(t *testing.T) {
	var b Bits
	for _, w := range []struct {
		v    uint32
		nbit int
	}{
		{1, 4}, {8, 10}, {0x56, 8}, {3, 2}, {0x1ffff, 17}, {0, 7},
	} {
		if err := b.Append(w.v, w.nbit); err != nil {
			t.Fatalf("Append(%#x, %d): %v", w.v, w.nbit, err)
		}
	}
	if b.Bits() != 48 {
		t.Fatalf("Bits = %d, want 48", b.Bits())
	}
	want := []byte{0x10, 0x21, 0x5b, 0xff, 0xff, 0x80}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("Bytes = %x, want %x", b.Bytes(), want)
	}
	if !b.Bit(3) || b.Bit(4) {
		t.Errorf("Bit: unexpected values at 3, 4")
	}
}

func TestBitsRange(t *testing.T) {
	var b Bits
	for _, w := range []struct {
		v    uint32
		nbit int
	}{
		{2, 1}, {0x100, 8}, {1, -1}, {0, 33},
	} {
		if err := b.Append(w.v, w.nbit); err != ErrRange {
			t.Errorf("Append(%#x, %d) = %v, want ErrRange",
				w.v, w.nbit, err)
		}
	}
	if b.Bits() != 0 {
		t.Errorf("failed Append wrote %d bits", b.Bits())
	}
}

// TestAddCheckBytes follows the worked example from the standard:
// "01234567" in numeric mode at version 1-M.
func TestAddCheckBytes(t *testing.T) {
	b := NewBits(1, M)
	if err := (Segment{"01234567", Numeric}).Encode(b, Class0); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
		0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87,
		0x2c, 0x55,
	}
	if got := b.AddCheckBytes(1, M); !bytes.Equal(got, want) {
		t.Fatalf("codewords\n got %x\nwant %x", got, want)
	}
}

// TestInterleave de-interleaves the codewords of a 5-H code, which
// has blocks of two lengths, and checks that every block is a valid
// Reed-Solomon codeword.
func TestInterleave(t *testing.T) {
	b := NewBits(5, H)
	data := make([]byte, 44)
	for i := range data {
		data[i] = byte(i * 7)
	}
	if err := (Segment{string(data), Byte}).Encode(b, Class0); err != nil {
		t.Fatal(err)
	}
	got := b.AddCheckBytes(5, H)
	total := Version(5).Codewords()
	if len(got) != total {
		t.Fatalf("got %d codewords, want %d", len(got), total)
	}

	const nblock, check = 4, 22
	long := total % nblock
	dlen := total/nblock - check
	blocks := make([][]byte, nblock)
	k := 0
	for i := 0; i <= dlen; i++ {
		for j := range blocks {
			if i == dlen && j < nblock-long {
				continue
			}
			blocks[j] = append(blocks[j], got[k])
			k++
		}
	}
	for i := 0; i < check; i++ {
		for j := range blocks {
			blocks[j] = append(blocks[j], got[k])
			k++
		}
	}
	if k != total {
		t.Fatalf("de-interleaved %d codewords, want %d", k, total)
	}
	for j, blk := range blocks {
		if n, err := Field.Decode(blk, check); n != 0 || err != nil {
			t.Errorf("block %d is not a valid codeword: %d, %v",
				j, n, err)
		}
	}
}

func TestPlacementCompleteness(t *testing.T) {
	for _, v := range []Version{1, 2, 6, 7, 14, 27, 40} {
		m := newMatrix(v)
		m.drawFunctionPatterns(v, L)
		free := 0
		for _, c := range m.cell {
			if c&cellFunc == 0 {
				free++
			}
		}
		if free != v.rawModules() {
			t.Errorf("version %v: %d free modules, want %d",
				v, free, v.rawModules())
		}
	}
}

func TestPenaltyUniform(t *testing.T) {
	// a fully light 21x21 matrix: every row and column is one long
	// run, every 2x2 block is uniform, and the dark proportion is
	// as far from 50% as possible
	m := newMatrix(1)
	n1 := 2 * 21 * (penaltyN1 + 21 - 5)
	n2 := 20 * 20 * penaltyN2
	n4 := 9 * penaltyN4
	if got := m.penalty(); got != n1+n2+n4 {
		t.Errorf("penalty = %d, want %d", got, n1+n2+n4)
	}
}

func TestMaskRoundTrip(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		m := newMatrix(2)
		m.drawFunctionPatterns(2, Q)
		orig := append([]byte(nil), m.cell...)
		m.applyMask(mask)
		changed := false
		for i := range m.cell {
			if m.cell[i] != orig[i] {
				changed = true
				if orig[i]&cellFunc != 0 {
					t.Fatalf("mask %d touched a function module", mask)
				}
			}
		}
		if !changed {
			t.Errorf("mask %d is a no-op", mask)
		}
		m.applyMask(mask)
		if !bytes.Equal(m.cell, orig) {
			t.Errorf("mask %d does not undo itself", mask)
		}
	}
}

func TestEncode(t *testing.T) {
	c, err := Encode(1, L, Segment{"HELLO", Alphanumeric})
	if err != nil {
		t.Fatal(err)
	}
	if c.Size != 21 || c.Version != 1 || c.Level != L {
		t.Fatalf("bad code metadata: %+v", c)
	}
	if c.Mask < 0 || c.Mask > 7 {
		t.Fatalf("bad mask %d", c.Mask)
	}
	// finder corners and the dark module
	for _, p := range [][2]int{{0, 0}, {20, 0}, {0, 20}, {8, 13}} {
		if !c.Black(p[0], p[1]) {
			t.Errorf("module %v is white, want black", p)
		}
	}
	if c.Black(1, 1) || c.Black(-1, 0) || c.Black(0, 21) {
		t.Errorf("unexpected black module")
	}
	// timing patterns
	for i := 8; i < c.Size-8; i++ {
		if c.Black(i, 6) != (i%2 == 0) || c.Black(6, i) != (i%2 == 0) {
			t.Errorf("timing pattern broken at %d", i)
		}
	}

	c2, err := Encode(1, L, Segment{"HELLO", Alphanumeric})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, c2) {
		t.Error("encoding is not deterministic")
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(0, L); err != ErrVersion {
		t.Errorf("version 0: %v, want ErrVersion", err)
	}
	if _, err := Encode(41, L); err != ErrVersion {
		t.Errorf("version 41: %v, want ErrVersion", err)
	}
	if _, err := Encode(1, 4); err != ErrLevel {
		t.Errorf("level 4: %v, want ErrLevel", err)
	}
	long := make([]byte, 20)
	if _, err := Encode(1, L, Segment{string(long), Byte}); err != ErrLongText {
		t.Errorf("20 bytes at 1-L: %v, want ErrLongText", err)
	}
	if _, err := Encode(1, L, Segment{"abc", Numeric}); err == nil {
		t.Error("non-digits in numeric mode: no error")
	}
	if _, err := Encode(1, L, Segment{"abc", 17}); err == nil {
		t.Error("invalid mode: no error")
	}
}

func TestEncodeEmpty(t *testing.T) {
	c, err := Encode(1, L)
	if err != nil {
		t.Fatal(err)
	}
	if c.Size != 21 {
		t.Fatalf("Size = %d, want 21", c.Size)
	}
}

func TestSegmentModes(t *testing.T) {
	if !IsKanji('漢') || IsKanji('a') || IsKanji('é') {
		t.Error("IsKanji misclassifies")
	}
	if !IsAlphanumeric('$') || IsAlphanumeric('a') || IsAlphanumeric('!') {
		t.Error("IsAlphanumeric misclassifies")
	}
	var b Bits
	if err := (Segment{"漢字", Kanji}).Encode(&b, Class0); err != nil {
		t.Errorf("kanji: %v", err)
	}
	// 4 bit indicator, 8 bit count, 13 bits per character
	if b.Bits() != 4+8+2*13 {
		t.Errorf("kanji length = %d bits", b.Bits())
	}
	b.Reset()
	if err := (Segment{"abc", Kanji}).Encode(&b, Class0); err == nil {
		t.Error("ASCII in kanji mode: no error")
	}
	b.Reset()
	if err := (Segment{"héllo", Latin1}).Encode(&b, Class0); err != nil {
		t.Errorf("latin-1: %v", err)
	}
	if b.Bits() != 4+8+5*8 {
		t.Errorf("latin-1 length = %d bits", b.Bits())
	}
	b.Reset()
	if err := (Segment{"héllo", Byte}).Encode(&b, Class0); err != nil {
		t.Errorf("byte: %v", err)
	}
	if b.Bits() != 4+8+6*8 {
		t.Errorf("byte length = %d bits", b.Bits())
	}
}
