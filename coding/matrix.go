// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Module flags.  Function modules belong to fixed patterns and
// information areas and are never masked or overwritten by data.
const (
	cellDark = 1 << iota
	cellFunc
)

// A matrix is the module grid of a QR code under construction.
type matrix struct {
	size int
	cell []byte
}

func newMatrix(v Version) *matrix {
	siz := v.Size()
	return &matrix{size: siz, cell: make([]byte, siz*siz)}
}

func (m *matrix) dark(x, y int) bool {
	return m.cell[y*m.size+x]&cellDark != 0
}

func (m *matrix) isFunc(x, y int) bool {
	return m.cell[y*m.size+x]&cellFunc != 0
}

// setFunc colours the module at x, y and marks it as a function
// module.
func (m *matrix) setFunc(x, y int, dark bool) {
	c := byte(cellFunc)
	if dark {
		c |= cellDark
	}
	m.cell[y*m.size+x] = c
}

// drawFunctionPatterns stamps the timing, finder and alignment
// patterns, the version information and a placeholder format
// information area.
func (m *matrix) drawFunctionPatterns(v Version, l Level) {
	for i := 0; i < m.size; i++ {
		m.setFunc(6, i, i%2 == 0)
		m.setFunc(i, 6, i%2 == 0)
	}
	m.drawFinder(3, 3)
	m.drawFinder(m.size-4, 3)
	m.drawFinder(3, m.size-4)

	pos := v.alignPos()
	for i, y := range pos {
		for j, x := range pos {
			// skip the three corners occupied by finders
			if i == 0 && (j == 0 || j == len(pos)-1) ||
				j == 0 && i == len(pos)-1 {
				continue
			}
			m.drawAlign(x, y)
		}
	}

	m.drawFormat(l, 0) // redrawn after mask selection
	m.drawVersion(v)
}

// drawFinder draws a finder pattern and its separator centered at
// x, y, clipped to the matrix.
func (m *matrix) drawFinder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			if px, py := x+dx, y+dy; px >= 0 && px < m.size &&
				py >= 0 && py < m.size {
				d := max(abs(dx), abs(dy))
				m.setFunc(px, py, d != 2 && d != 4)
			}
		}
	}
}

// drawAlign draws an alignment pattern centered at x, y.
func (m *matrix) drawAlign(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			m.setFunc(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// drawFormat draws both copies of the format information for the
// given level and mask, and the always dark module above the lower
// left finder.
func (m *matrix) drawFormat(l Level, mask int) {
	bits := formatInfo(l, mask)
	for i := 0; i < 6; i++ {
		m.setFunc(8, i, bits>>i&1 != 0)
	}
	m.setFunc(8, 7, bits>>6&1 != 0)
	m.setFunc(8, 8, bits>>7&1 != 0)
	m.setFunc(7, 8, bits>>8&1 != 0)
	for i := 9; i < 15; i++ {
		m.setFunc(14-i, 8, bits>>i&1 != 0)
	}
	for i := 0; i < 8; i++ {
		m.setFunc(m.size-1-i, 8, bits>>i&1 != 0)
	}
	for i := 8; i < 15; i++ {
		m.setFunc(8, m.size-15+i, bits>>i&1 != 0)
	}
	m.setFunc(8, m.size-8, true)
}

// formatInfo returns the 15 format information bits for the given
// level and mask, including BCH check bits and the fixed XOR mask.
func formatInfo(l Level, mask int) int {
	data := l.formatCode()<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// drawVersion draws both copies of the version information for
// versions 7 and up.
func (m *matrix) drawVersion(v Version) {
	if v < 7 {
		return
	}
	bits := versionInfo(v)
	for i := 0; i < 18; i++ {
		dark := bits>>i&1 != 0
		a, b := m.size-11+i%3, i/3
		m.setFunc(a, b, dark)
		m.setFunc(b, a, dark)
	}
}

// versionInfo returns the 18 version information bits for v,
// including BCH check bits.
func versionInfo(v Version) int {
	rem := int(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	return int(v)<<12 | rem
}

// placeData fills the non-function modules with codeword bits along
// the two module wide zig-zag path, skipping column 6.  Up to 7
// remainder modules at the end of the path stay light.  placeData
// panics if the bit and module counts disagree.
func (m *matrix) placeData(data []byte) {
	i, spare := 0, 0
	for right := m.size - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		up := (right+1)&2 == 0
		for vert := 0; vert < m.size; vert++ {
			y := vert
			if up {
				y = m.size - 1 - vert
			}
			for j := 0; j < 2; j++ {
				x := right - j
				if m.isFunc(x, y) {
					continue
				}
				if i == len(data)*8 {
					spare++
					continue
				}
				if data[i>>3]>>(7-i&7)&1 != 0 {
					m.cell[y*m.size+x] |= cellDark
				}
				i++
			}
		}
	}
	if i != len(data)*8 || spare > 7 {
		panic("qr: internal error")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
