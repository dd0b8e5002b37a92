// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int

// Segment encoding modes.
const (
	Numeric      Mode = iota // numeric mode, digits only
	Alphanumeric             // alphanumeric mode, a 45 character subset of ASCII
	Byte                     // byte mode, any data
	Kanji                    // kanji mode, UTF-8 text of Shift JIS kanji
	Latin1                   // byte mode, UTF-8 text encoded as ISO 8859-1
	numModes
)

// modeInfo describes a segment encoding mode.
type modeInfo struct {
	name      string
	indicator uint32  // 4 bit mode indicator
	cclen     [3]byte // character count field length per size class
}

var modeTab = [numModes]modeInfo{
	Numeric:      {"numeric", 1, [3]byte{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]byte{9, 11, 13}},
	Byte:         {"byte", 4, [3]byte{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]byte{8, 10, 12}},
	Latin1:       {"latin-1", 4, [3]byte{8, 16, 16}},
}

func (m Mode) String() string {
	if m < 0 || m >= numModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTab[m].name
}

// CountLength returns the width in bits of the character count field
// of mode m at the given version size class.
func (m Mode) CountLength(class int) int {
	return int(modeTab[m].cclen[class])
}

// Length returns the encoded length in bits, including the segment
// header, of text of b bytes and r runes at the given version size
// class.
func (m Mode) Length(b, r, class int) int {
	n := 4 + m.CountLength(class)
	switch m {
	case Numeric:
		n += (10*b + 2) / 3
	case Alphanumeric:
		n += (11*b + 1) / 2
	case Byte:
		n += 8 * b
	case Kanji:
		n += 13 * r
	case Latin1:
		n += 8 * r
	}
	return n
}

// A ModeError represents an invalid Mode.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: invalid mode %d", int(e))
}

// A SegmentError represents text that cannot be encoded in its
// segment's mode.
type SegmentError Segment

func (e SegmentError) Error() string {
	return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
}

// A Segment is a run of text to be encoded in a single mode.
type Segment struct {
	Text string
	Mode Mode
}

// alnum maps ASCII 0x20 to 0x4f to alphanumeric mode values;
// -1 marks characters outside the alphanumeric set.
var alnum = [96]int8{
	36, -1, -1, -1, 37, 38, -1, -1, // SP ! " # $ % & '
	-1, -1, 39, 40, -1, 41, 42, 43, // ( ) * + , - . /
	0, 1, 2, 3, 4, 5, 6, 7, // 0 1 2 3 4 5 6 7
	8, 9, 44, -1, -1, -1, -1, -1, // 8 9 : ; < = > ?
	-1, 10, 11, 12, 13, 14, 15, 16, // @ A B C D E F G
	17, 18, 19, 20, 21, 22, 23, 24, // H I J K L M N O
	25, 26, 27, 28, 29, 30, 31, 32, // P Q R S T U V W
	33, 34, 35, -1, -1, -1, -1, -1, // X Y Z [ \ ] ^ _
	-1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1,
}

// IsNumeric reports whether r is encodable in numeric mode.
func IsNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsAlphanumeric reports whether r is encodable in alphanumeric mode.
func IsAlphanumeric(r rune) bool {
	return r >= 0x20 && r < 0x80 && alnum[r-0x20] >= 0
}

// IsKanji reports whether r is encodable in kanji mode, that is,
// whether its Shift JIS encoding is a two byte JIS X 0208 code.
func IsKanji(r rune) bool {
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(b) != 2 {
		return false
	}
	v := uint(b[0])<<8 | uint(b[1])
	return v >= 0x8140 && v <= 0x9ffc || v >= 0xe040 && v <= 0xebbf
}

// Encode appends seg, encoded for the given version size class, to b.
func (seg Segment) Encode(b *Bits, class int) error {
	switch seg.Mode {
	case Numeric:
		return seg.encodeNumeric(b, class)
	case Alphanumeric:
		return seg.encodeAlphanumeric(b, class)
	case Byte:
		return seg.encodeBytes(b, class, seg.Text)
	case Kanji:
		return seg.encodeKanji(b, class)
	case Latin1:
		return seg.encodeLatin1(b, class)
	}
	return ModeError(seg.Mode)
}

// header appends the mode indicator and character count field.
func (seg Segment) header(b *Bits, count, class int) error {
	b.write(modeTab[seg.Mode].indicator, 4)
	if err := b.Append(uint32(count), seg.Mode.CountLength(class)); err != nil {
		return ErrLongText
	}
	return nil
}

func (seg Segment) encodeNumeric(b *Bits, class int) error {
	s := seg.Text
	for i := 0; i < len(s); i++ {
		if s[i]-'0' > 9 {
			return SegmentError(seg)
		}
	}
	if err := seg.header(b, len(s), class); err != nil {
		return err
	}
	for ; len(s) >= 3; s = s[3:] {
		b.write(uint32(s[0])*100+uint32(s[1])*10+uint32(s[2])-'0'*111, 10)
	}
	switch len(s) {
	case 2:
		b.write(uint32(s[0])*10+uint32(s[1])-'0'*11, 7)
	case 1:
		b.write(uint32(s[0]-'0'), 4)
	}
	return nil
}

func (seg Segment) encodeAlphanumeric(b *Bits, class int) error {
	s := seg.Text
	for i := 0; i < len(s); i++ {
		if !IsAlphanumeric(rune(s[i])) {
			return SegmentError(seg)
		}
	}
	if err := seg.header(b, len(s), class); err != nil {
		return err
	}
	for ; len(s) >= 2; s = s[2:] {
		v := uint32(alnum[s[0]-0x20])*45 + uint32(alnum[s[1]-0x20])
		b.write(v, 11)
	}
	if len(s) == 1 {
		b.write(uint32(alnum[s[0]-0x20]), 6)
	}
	return nil
}

func (seg Segment) encodeBytes(b *Bits, class int, s string) error {
	if err := seg.header(b, len(s), class); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		b.write(uint32(s[i]), 8)
	}
	return nil
}

func (seg Segment) encodeKanji(b *Bits, class int) error {
	s, err := japanese.ShiftJIS.NewEncoder().String(seg.Text)
	if err != nil || len(s)%2 != 0 {
		return SegmentError(seg)
	}
	vals := make([]uint32, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		v := uint32(s[i])<<8 | uint32(s[i+1])
		switch {
		case v >= 0x8140 && v <= 0x9ffc:
			v -= 0x8140
		case v >= 0xe040 && v <= 0xebbf:
			v -= 0xc140
		default:
			return SegmentError(seg)
		}
		vals = append(vals, (v>>8)*0xc0+v&0xff)
	}
	if err := seg.header(b, len(vals), class); err != nil {
		return err
	}
	for _, v := range vals {
		b.write(v, 13)
	}
	return nil
}

func (seg Segment) encodeLatin1(b *Bits, class int) error {
	s, err := charmap.ISO8859_1.NewEncoder().String(seg.Text)
	if err != nil {
		return SegmentError(seg)
	}
	return seg.encodeBytes(b, class, s)
}
