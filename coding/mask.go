// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// maskTest reports whether the mask inverts the module at x, y.
var maskTest = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask inverts the non-function modules selected by the mask.
// Applying the same mask twice restores the matrix.
func (m *matrix) applyMask(mask int) {
	f := maskTest[mask]
	for y := 0; y < m.size; y++ {
		row := m.cell[y*m.size : (y+1)*m.size]
		for x := range row {
			if row[x]&cellFunc == 0 && f(x, y) {
				row[x] ^= cellDark
			}
		}
	}
}

// chooseMask scores all eight masks, applies the one with the lowest
// penalty and draws its format information.  Ties go to the lowest
// mask number.
func (m *matrix) chooseMask(l Level) int {
	best, bestPenalty := -1, 0
	for mask := 0; mask < 8; mask++ {
		m.applyMask(mask)
		m.drawFormat(l, mask)
		if p := m.penalty(); best < 0 || p < bestPenalty {
			best, bestPenalty = mask, p
		}
		m.applyMask(mask) // undo
	}
	m.applyMask(best)
	m.drawFormat(l, best)
	return best
}

// Penalty weights.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// penalty scores the matrix against the four mask evaluation rules:
// same colour runs, 2x2 blocks, finder-alike patterns and dark module
// balance.
func (m *matrix) penalty() int {
	siz := m.size
	p := 0

	for y := 0; y < siz; y++ {
		runColor, runLen := false, 0
		var hist runHistory
		for x := 0; x < siz; x++ {
			if m.dark(x, y) == runColor {
				runLen++
				if runLen == 5 {
					p += penaltyN1
				} else if runLen > 5 {
					p++
				}
			} else {
				hist.add(runLen, siz)
				if !runColor {
					p += hist.finderCount() * penaltyN3
				}
				runColor = !runColor
				runLen = 1
			}
		}
		p += hist.terminate(runColor, runLen, siz) * penaltyN3
	}
	for x := 0; x < siz; x++ {
		runColor, runLen := false, 0
		var hist runHistory
		for y := 0; y < siz; y++ {
			if m.dark(x, y) == runColor {
				runLen++
				if runLen == 5 {
					p += penaltyN1
				} else if runLen > 5 {
					p++
				}
			} else {
				hist.add(runLen, siz)
				if !runColor {
					p += hist.finderCount() * penaltyN3
				}
				runColor = !runColor
				runLen = 1
			}
		}
		p += hist.terminate(runColor, runLen, siz) * penaltyN3
	}

	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			c := m.dark(x, y)
			if c == m.dark(x+1, y) && c == m.dark(x, y+1) &&
				c == m.dark(x+1, y+1) {
				p += penaltyN2
			}
		}
	}

	dark := 0
	for _, c := range m.cell {
		if c&cellDark != 0 {
			dark++
		}
	}
	total := siz * siz
	k := (abs(dark*20-total*10)+total-1)/total - 1
	return p + k*penaltyN4
}

// A runHistory records recent run lengths in a line of modules, most
// recent first, for detecting 1:1:3:1:1 finder-alike patterns flanked
// by 4 modules of light.
type runHistory [7]int

// add records a finished run.  A light run at the start of a line is
// counted as extending past the edge.
func (h *runHistory) add(runLen, siz int) {
	if h[0] == 0 {
		runLen += siz
	}
	copy(h[1:], h[:len(h)-1])
	h[0] = runLen
}

// finderCount returns the number of finder-alike patterns ending with
// the runs recorded so far.  The light run preceding the pattern must
// be at least four times the unit width, as must the one following it
// on the other side of the line scan.
func (h *runHistory) finderCount() int {
	n := h[1]
	core := n > 0 && h[2] == n && h[3] == n*3 && h[4] == n && h[5] == n
	count := 0
	if core && h[0] >= n*4 && h[6] >= n {
		count++
	}
	if core && h[6] >= n*4 && h[0] >= n {
		count++
	}
	return count
}

// terminate flushes the final run of a line, padding the trailing
// light run past the edge, and returns the finder-alike count for the
// line end.
func (h *runHistory) terminate(runColor bool, runLen, siz int) int {
	if runColor {
		h.add(runLen, siz)
		runLen = 0
	}
	h.add(runLen+siz, siz)
	return h.finderCount()
}
