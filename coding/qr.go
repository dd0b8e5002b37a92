// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: segment
// encoding, error correction, matrix construction and masking.
package coding // import "github.com/jerey17/qr/coding"

import (
	"errors"
	"strconv"

	"github.com/jerey17/qr/gf256"
)

var (
	ErrLevel    = errors.New("qr: invalid level")
	ErrVersion  = errors.New("qr: invalid version")
	ErrLongText = errors.New("qr: text too long")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.  The version specifies the size
// of the QR code: a code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// Version size classes.
const (
	Class0 = iota // versions 1 to 9
	Class1        // versions 10 to 26
	Class2        // versions 27 to 40
)

// SizeClass returns the size class of v, which determines the width
// of segment character count fields.
func (v Version) SizeClass() int {
	switch {
	case v <= 9:
		return Class0
	case v <= 26:
		return Class1
	}
	return Class2
}

// Size returns the number of modules on a side of a QR code of
// version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// rawModules returns the number of modules available for codewords
// after function and information patterns are accounted for.
func (v Version) rawModules() int {
	n := (16*int(v)+128)*int(v) + 64
	if v >= 2 {
		na := int(v)/7 + 2
		n -= (25*na-10)*na - 55
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// Codewords returns the total codeword capacity of version v.
func (v Version) Codewords() int {
	return v.rawModules() / 8
}

// DataBytes returns the number of data codewords a code of version v
// can store at level l.
func (v Version) DataBytes(l Level) int {
	return v.Codewords() - int(blockEC[l][v])*int(blockCount[l][v])
}

// DataBits returns the number of data bits a code of version v can
// store at level l.
func (v Version) DataBits(l Level) int {
	return v.DataBytes(l) * 8
}

// alignPos returns the alignment pattern center coordinates for v,
// in ascending order.
func (v Version) alignPos() []int {
	if v == 1 {
		return nil
	}
	na := int(v)/7 + 2
	step := (int(v)*8 + na*3 + 5) / (na*4 - 4) * 2
	pos := make([]int, na)
	pos[0] = 6
	for i, p := na-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// A Level represents a QR error correction level.
type Level int

// Error correction levels.
const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if l < L || l > H {
		return strconv.Itoa(int(l))
	}
	return "LMQH"[l : l+1]
}

// formatCode returns the two format information bits denoting l.
func (l Level) formatCode() int {
	return [4]int{1, 0, 3, 2}[l]
}

// blockEC gives the number of check bytes per error correction block,
// indexed by level and version.
var blockEC = [4][41]int8{
	L: {
		0, 7, 10, 15, 20, 26, 18, 20, 24, 30,
		18, 20, 24, 26, 30, 22, 24, 28, 30, 28,
		28, 28, 28, 30, 30, 26, 28, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
	M: {
		0, 10, 16, 26, 18, 24, 16, 18, 22, 22,
		26, 30, 22, 22, 24, 24, 28, 28, 26, 26,
		26, 26, 28, 28, 28, 28, 28, 28, 28, 28,
		28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28,
	},
	Q: {
		0, 13, 22, 18, 26, 18, 24, 18, 22, 20,
		24, 28, 26, 24, 20, 30, 24, 28, 28, 26,
		30, 28, 30, 30, 30, 30, 28, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
	H: {
		0, 17, 28, 22, 16, 22, 28, 26, 26, 24,
		28, 24, 28, 22, 24, 24, 30, 28, 28, 26,
		28, 30, 24, 30, 30, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
}

// blockCount gives the number of error correction blocks, indexed by
// level and version.
var blockCount = [4][41]int8{
	L: {
		0, 1, 1, 1, 1, 1, 2, 2, 2, 2,
		4, 4, 4, 4, 4, 6, 6, 6, 6, 7,
		8, 8, 9, 9, 10, 12, 12, 12, 13, 14,
		15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25,
	},
	M: {
		0, 1, 1, 1, 2, 2, 4, 4, 4, 5,
		5, 5, 8, 9, 9, 10, 10, 11, 13, 14,
		16, 17, 17, 18, 20, 21, 23, 25, 26, 28,
		29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49,
	},
	Q: {
		0, 1, 1, 2, 2, 4, 4, 6, 6, 8,
		8, 8, 10, 12, 16, 12, 17, 16, 18, 21,
		20, 23, 23, 25, 27, 29, 34, 34, 35, 38,
		40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68,
	},
	H: {
		0, 1, 1, 2, 4, 4, 4, 5, 6, 8,
		8, 11, 11, 16, 16, 18, 16, 19, 21, 25,
		25, 25, 34, 30, 32, 35, 37, 40, 42, 45,
		48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81,
	},
}
