/*
Package pixel converts between the three pixel layouts used by MO YOUNG
watch faces.

RGB565 is two bytes per pixel holding a little-endian 5/6/5 color value
with no alpha. ARGB8565 is the format's native three byte layout; an
alpha byte followed by the same little-endian 5/6/5 color. ARGB8888 is
four bytes per pixel in blue, green, red, alpha order, matching the row
layout of a 32bpp bitmap.

Conversions are bit-exact. Widening a 5 or 6 bit channel to 8 bits
replicates the high bits into the new low bits; narrowing truncates.
Alpha is carried unchanged where both sides have it and synthesized as
opaque where the source lacks it. Widening then narrowing a pixel
returns the original value; the reverse direction loses channel
precision.

Only the RGB565/ARGB8565 and ARGB8565/ARGB8888 edges convert directly.
Any other pair goes through ARGB8565.
*/
package pixel

import (
	"errors"
	"fmt"
)

// Format identifies a pixel layout.
type Format int

const (
	RGB565   Format = iota // 2 bytes, little-endian 565 color
	ARGB8565               // 3 bytes, alpha then little-endian 565 color
	ARGB8888               // 4 bytes, b, g, r, a
)

var errBadFormat = errors.New("pixel: unknown format")
var errBadLength = errors.New("pixel: buffer is not a whole number of pixels")

// Size returns the number of bytes one pixel occupies.
func (f Format) Size() int {
	switch f {
	case RGB565:
		return 2
	case ARGB8565:
		return 3
	case ARGB8888:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case ARGB8565:
		return "ARGB8565"
	case ARGB8888:
		return "ARGB8888"
	}
	return "unknown"
}

func expand5(v byte) byte {
	return v<<3 | v>>2
}

func expand6(v byte) byte {
	return v<<2 | v>>4
}

// Pack565 packs 8-bit channels into a 565 value, truncating the low
// bits of each channel.
func Pack565(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Unpack565 widens a 565 value back to 8-bit channels.
func Unpack565(v uint16) (r, g, b byte) {
	return expand5(byte(v >> 11)), expand6(byte(v >> 5 & 0x3f)), expand5(byte(v & 0x1f))
}

func addAlpha(pix []byte) []byte {
	out := make([]byte, len(pix)/2*3)
	for i, o := 0, 0; i < len(pix); i, o = i+2, o+3 {
		out[o] = 0xff
		out[o+1] = pix[i]
		out[o+2] = pix[i+1]
	}
	return out
}

func dropAlpha(pix []byte) []byte {
	out := make([]byte, len(pix)/3*2)
	for i, o := 0, 0; i < len(pix); i, o = i+3, o+2 {
		out[o] = pix[i+1]
		out[o+1] = pix[i+2]
	}
	return out
}

func widen(pix []byte) []byte {
	out := make([]byte, len(pix)/3*4)
	for i, o := 0, 0; i < len(pix); i, o = i+3, o+4 {
		r, g, b := Unpack565(uint16(pix[i+1]) | uint16(pix[i+2])<<8)
		out[o] = b
		out[o+1] = g
		out[o+2] = r
		out[o+3] = pix[i]
	}
	return out
}

func narrow(pix []byte) []byte {
	out := make([]byte, len(pix)/4*3)
	for i, o := 0, 0; i < len(pix); i, o = i+4, o+3 {
		v := Pack565(pix[i+2], pix[i+1], pix[i])
		out[o] = pix[i+3]
		out[o+1] = byte(v)
		out[o+2] = byte(v >> 8)
	}
	return out
}

// Convert returns pix converted from one format to another. The result
// is always a new buffer, even when from and to are equal. Pairs
// without a direct edge are composed through ARGB8565.
func Convert(pix []byte, from, to Format) ([]byte, error) {
	if from.Size() == 0 || to.Size() == 0 {
		return nil, errBadFormat
	}
	if len(pix)%from.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes of %s", errBadLength, len(pix), from)
	}

	switch {
	case from == to:
		return append(pix[:0:0], pix...), nil
	case from == RGB565 && to == ARGB8565:
		return addAlpha(pix), nil
	case from == ARGB8565 && to == RGB565:
		return dropAlpha(pix), nil
	case from == ARGB8565 && to == ARGB8888:
		return widen(pix), nil
	case from == ARGB8888 && to == ARGB8565:
		return narrow(pix), nil
	}

	// No direct edge; go through the native depth.
	mid, err := Convert(pix, from, ARGB8565)
	if err != nil {
		return nil, err
	}
	return Convert(mid, ARGB8565, to)
}
