// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Code is an encoded QR symbol.
type Code struct {
	Bitmap  []byte // 1 is black, 0 is white
	Size    int    // number of modules on a side
	Stride  int    // number of bytes per row
	Version Version
	Level   Level
	Mask    int // mask pattern, 0 to 7
}

// Black reports whether the module at (x, y) is black.  Modules
// outside the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Encode encodes the segments into a QR code of the given version and
// level.  The same input always produces the same code.
func Encode(v Version, l Level, segs ...Segment) (*Code, error) {
	if v < MinVersion || v > MaxVersion {
		return nil, ErrVersion
	}
	if l < L || l > H {
		return nil, ErrLevel
	}
	class := v.SizeClass()
	b := NewBits(v, l)
	for _, seg := range segs {
		if err := seg.Encode(b, class); err != nil {
			return nil, err
		}
	}
	if b.Bits() > v.DataBits(l) {
		return nil, ErrLongText
	}

	m := newMatrix(v)
	m.drawFunctionPatterns(v, l)
	m.placeData(b.AddCheckBytes(v, l))
	mask := m.chooseMask(l)
	return m.code(v, l, mask), nil
}

// code packs the finished matrix into a Code.
func (m *matrix) code(v Version, l Level, mask int) *Code {
	stride := (m.size + 7) / 8
	c := &Code{
		Bitmap:  make([]byte, stride*m.size),
		Size:    m.size,
		Stride:  stride,
		Version: v,
		Level:   l,
		Mask:    mask,
	}
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			if m.dark(x, y) {
				c.Bitmap[y*stride+x/8] |= 1 << uint(7&^x)
			}
		}
	}
	return c
}
