package bmp

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoung/moyface/img"
	"github.com/moyoung/moyface/pixel"
)

func u16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func u32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }
func i32(b []byte, off int) int32  { return int32(binary.LittleEndian.Uint32(b[off:])) }

func testImage(w, h int) *img.Image {
	pix := make([]byte, w*h*2)
	for i := range pix {
		pix[i] = byte(i)
	}
	return &img.Image{Width: w, Height: h, Format: pixel.RGB565, Pix: pix}
}

func TestStride(t *testing.T) {
	assert.Equal(t, 8, Stride(3, 16))
	assert.Equal(t, 12, Stride(3, 24))
	assert.Equal(t, 12, Stride(3, 32))
	assert.Equal(t, 4, Stride(1, 16))
}

func TestEncode16(t *testing.T) {
	b, err := EncodeBytes(testImage(3, 2), 16)
	require.NoError(t, err)
	require.Len(t, b, headerSize+Stride(3, 16)*2)

	assert.Equal(t, byte('B'), b[0])
	assert.Equal(t, byte('M'), b[1])
	assert.Equal(t, uint32(len(b)), u32(b, 2))
	assert.Equal(t, uint32(headerSize), u32(b, 10)) // pixel data offset
	assert.Equal(t, uint32(dibV4Size), u32(b, 14))
	assert.Equal(t, int32(3), i32(b, 18))
	assert.Equal(t, int32(-2), i32(b, 22)) // negated height, top-down
	assert.Equal(t, uint16(1), u16(b, 26))
	assert.Equal(t, uint16(16), u16(b, 28))
	assert.Equal(t, uint32(compressionBitfields), u32(b, 30))
	assert.Equal(t, uint32(16), u32(b, 34)) // 2 rows of 8
	assert.Equal(t, int32(2835), i32(b, 38))
	assert.Equal(t, int32(2835), i32(b, 42))
	assert.Equal(t, uint32(0xf800), u32(b, 54))
	assert.Equal(t, uint32(0x07e0), u32(b, 58))
	assert.Equal(t, uint32(0x001f), u32(b, 62))
	assert.Equal(t, uint32(0), u32(b, 66))

	// First row: six pixel bytes then zero padding to the stride.
	row := b[headerSize : headerSize+8]
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 0, 0}, row)
}

func TestEncode24(t *testing.T) {
	m := &img.Image{Width: 1, Height: 1, Format: pixel.ARGB8565, Pix: []byte{
		0x80, 0x00, 0xf8, // red
	}}

	b, err := EncodeBytes(m, 24)
	require.NoError(t, err)
	require.Len(t, b, headerSize+4)

	assert.Equal(t, uint16(24), u16(b, 28))
	assert.Equal(t, uint32(compressionRGB), u32(b, 30))
	// b, g, r, then one padding byte.
	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0x00}, b[headerSize:])
}

func TestEncode32(t *testing.T) {
	m := &img.Image{Width: 2, Height: 1, Format: pixel.ARGB8565, Pix: []byte{
		0x80, 0x00, 0xf8,
		0xff, 0xe0, 0x07,
	}}

	b, err := EncodeBytes(m, 32)
	require.NoError(t, err)
	require.Len(t, b, headerSize+8)

	assert.Equal(t, uint32(compressionBitfields), u32(b, 30))
	assert.Equal(t, uint32(0xff0000), u32(b, 54))
	assert.Equal(t, uint32(0x00ff00), u32(b, 58))
	assert.Equal(t, uint32(0x0000ff), u32(b, 62))
	assert.Equal(t, uint32(0xff000000), u32(b, 66))

	// Alpha carried through from the source samples.
	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0x80}, b[headerSize:headerSize+4])
	assert.Equal(t, []byte{0x00, 0xff, 0x00, 0xff}, b[headerSize+4:])
}

func TestEncodeRowTooWide(t *testing.T) {
	m := &img.Image{Width: 8192, Height: 1, Format: pixel.RGB565, Pix: make([]byte, 8192*2)}

	// Fits at 16 bpp, one byte over at 24.
	_, err := EncodeBytes(m, 16)
	assert.NoError(t, err)

	_, err = EncodeBytes(m, 24)
	assert.True(t, errors.Is(err, ErrRowTooWide), "got %v", err)

	_, err = EncodeBytes(m, 32)
	assert.True(t, errors.Is(err, ErrRowTooWide), "got %v", err)
}

func TestEncodeBadDepth(t *testing.T) {
	_, err := EncodeBytes(testImage(1, 1), 8)
	assert.True(t, errors.Is(err, ErrBadDepth), "got %v", err)
}
