// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerey17/qr/coding"
)

func TestEncode(t *testing.T) {
	c, err := Encode("HELLO", L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), c.Version)
	assert.Equal(t, 21, c.Size)
	assert.Equal(t, coding.L, c.Level)

	c2, err := Encode("HELLO", L)
	require.NoError(t, err)
	assert.Equal(t, c, c2, "encoding must be deterministic")
}

func TestEncodeEmpty(t *testing.T) {
	c, err := Encode("", L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), c.Version)
	assert.Equal(t, 21, c.Size)
}

func TestEncodeVersion(t *testing.T) {
	c, err := EncodeOptions("HELLO", L, Options{Version: 4})
	require.NoError(t, err)
	assert.Equal(t, coding.Version(4), c.Version)
	assert.Equal(t, 33, c.Size)

	long := strings.Repeat("A", 200)
	_, err = EncodeOptions(long, H, Options{Version: 1})
	assert.ErrorIs(t, err, coding.ErrLongText)
}

func TestMinVersion(t *testing.T) {
	v, err := MinVersion("HELLO", L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), v)

	v, err = MinVersion(strings.Repeat("7", 100), L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(3), v)
}

func TestEncodeCapacityLimits(t *testing.T) {
	// 2953 bytes is the byte mode capacity of version 40-L
	max := strings.Repeat("a", 2953)
	c, err := Encode(max, L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(40), c.Version)

	_, err = Encode(max+"a", L)
	assert.ErrorIs(t, err, coding.ErrLongText)
}

func TestLevelVersionSweep(t *testing.T) {
	text := strings.Repeat("LEVEL SWEEP 123 ", 8)
	var prev coding.Version
	for l := L; l <= H; l++ {
		c, err := Encode(text, l)
		require.NoError(t, err, "level %v", l)
		assert.GreaterOrEqual(t, c.Version, prev,
			"version must not shrink as level grows")
		prev = c.Version
	}
}

func TestImage(t *testing.T) {
	c, err := Encode("IMAGE", M)
	require.NoError(t, err)
	c.Scale, c.Border = 2, 3
	img := c.Image()
	d := (c.Size + 6) * 2
	assert.Equal(t, d, img.Bounds().Dx())
	assert.Equal(t, d, img.Bounds().Dy())

	// quiet zone is white, finder corner is black
	_, _, _, a := img.At(0, 0).RGBA()
	assert.NotZero(t, a)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.NotZero(t, r, "border must be white")
	r, _, _, _ = img.At(6, 6).RGBA()
	assert.Zero(t, r, "finder corner must be black")
}

func TestPNGArgs(t *testing.T) {
	c, err := Encode("X", L)
	require.NoError(t, err)
	c.Scale = 0
	assert.ErrorIs(t, c.PNG(&bytes.Buffer{}), ErrArgs)
	c.Scale, c.Border = 1, -1
	assert.ErrorIs(t, c.PNG(&bytes.Buffer{}), ErrArgs)
}

func TestEncodePBM(t *testing.T) {
	c, err := Encode("PBM TEST", M)
	require.NoError(t, err)
	c.Scale, c.Border = 2, 2
	var b bytes.Buffer
	require.NoError(t, c.EncodePBM(&b))

	length := (c.Size + 4) * 2
	header := fmt.Sprintf("P4\n%d %d\n", length, length)
	require.True(t, strings.HasPrefix(b.String(), header))
	assert.Equal(t, len(header)+(length+7)/8*length, b.Len())

	// top left module of the finder pattern, doubled in scale
	body := b.Bytes()[len(header):]
	rowlen := (length + 7) / 8
	row := body[4*rowlen : 5*rowlen]
	assert.Zero(t, row[0]&0xf0, "quiet zone must be white")
	assert.Equal(t, byte(0x0f), row[0]&0x0f, "finder must be black")
}
