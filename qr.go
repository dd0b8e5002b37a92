// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.
*/
package qr // import "github.com/jerey17/qr"

import (
	"errors"
	"image"
	"image/color"

	"github.com/jerey17/qr/coding"
	"github.com/jerey17/qr/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

// ErrArgs is returned for invalid rendering parameters.
var ErrArgs = errors.New("qr: invalid arguments")

// Options control encoding.  The zero value encodes UTF-8 text at the
// smallest version that fits, with kanji mode segments enabled.
type Options struct {
	// Version forces a symbol version.  Zero selects the smallest
	// version the text fits in.
	Version coding.Version

	// Latin1 encodes byte mode segments as ISO 8859-1 rather than
	// UTF-8.
	Latin1 bool

	// NoKanji disables kanji mode segments.
	NoKanji bool
}

// Encode encodes text at the given error correction level.
func Encode(text string, level Level) (*Code, error) {
	return EncodeOptions(text, level, Options{})
}

// EncodeOptions encodes text at the given error correction level with
// the given options.
func EncodeOptions(text string, level Level, opt Options) (*Code, error) {
	segs, v, err := split.Split(text, coding.Level(level), split.Options{
		Latin1:  opt.Latin1,
		NoKanji: opt.NoKanji,
	})
	if err != nil {
		return nil, err
	}
	if opt.Version != 0 {
		if opt.Version < v {
			return nil, coding.ErrLongText
		}
		v = opt.Version
	}
	cc, err := coding.Encode(v, coding.Level(level), segs...)
	if err != nil {
		return nil, err
	}
	return &Code{Code: cc, Scale: 8, Border: 4}, nil
}

// MinVersion returns the smallest version whose capacity holds text
// at the given level.
func MinVersion(text string, level Level) (coding.Version, error) {
	return split.MinVersion(text, coding.Level(level), split.Options{})
}

// A Code is an encoded QR code together with rendering parameters.
// It implements image.Image through Image.
type Code struct {
	*coding.Code
	Scale  int // image pixels per module
	Border int // quiet zone width in modules
}

func (c *Code) valid() bool {
	return c.Code != nil && c.Scale > 0 && c.Border >= 0
}

// Image returns an image displaying the code, including the quiet
// zone border.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image.
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + c.Border*2) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return blackColor
	}
	return whiteColor
}
