/*
Package bmp serializes decoded images as self-contained Windows
bitmaps.

Output uses a BITMAPV4HEADER at 16, 24 or 32 bits per pixel. Height is
stored negated so rows run top-down in file order. 16 and 32 bpp use
BI_BITFIELDS with explicit channel masks (RGB565 and ARGB8888); 24 bpp
is plain BI_RGB. Rows are padded with zero bytes to a four byte
stride.
*/
package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/moyoung/moyface/img"
	"github.com/moyoung/moyface/pixel"
)

const (
	sig        = 0x4d42 // "BM"
	dibV4Size  = 108
	headerSize = 14 + dibV4Size
	resolution = 2835 // 72dpi in pixels per metre

	// maxRowSize bounds the per-row working buffer; wider rows are
	// rejected rather than truncated.
	maxRowSize = 16384
)

var (
	// ErrRowTooWide is returned when a width and depth combination
	// would overflow the row working buffer.
	ErrRowTooWide = errors.New("bmp: row exceeds working buffer")

	// ErrBadDepth is returned for bit depths other than 16, 24, 32.
	ErrBadDepth = errors.New("bmp: unsupported bit depth")
)

// header is the BITMAPFILEHEADER and BITMAPV4HEADER, written packed
// and little-endian.
type header struct {
	Sig          uint16
	FileSize     uint32
	Reserved1    uint16
	Reserved2    uint16
	Offset       uint32
	DIBSize      uint32
	Width        int32
	Height       int32
	Planes       uint16
	BPP          uint16
	Compression  uint32
	ImageSize    uint32
	HRes         int32
	VRes         int32
	ClrUsed      uint32
	ClrImportant uint32
	Masks        [4]uint32
	CSType       uint32
	Endpoints    [9]uint32
	Gammas       [3]uint32
}

const (
	compressionRGB       = 0 // BI_RGB
	compressionBitfields = 3 // BI_BITFIELDS
)

// Stride returns the padded row size in bytes for a width and depth.
func Stride(width, bpp int) int {
	return (bpp/8*width + 3) &^ 3
}

func newHeader(width, height, bpp int) header {
	stride := Stride(width, bpp)
	h := header{
		Sig:       sig,
		Offset:    headerSize,
		DIBSize:   dibV4Size,
		Width:     int32(width),
		Height:    -int32(height), // negative forces top-down rows
		Planes:    1,
		BPP:       uint16(bpp),
		ImageSize: uint32(stride * height),
		HRes:      resolution,
		VRes:      resolution,
	}
	h.FileSize = h.ImageSize + headerSize
	switch bpp {
	case 16:
		h.Compression = compressionBitfields
		h.Masks = [4]uint32{0xf800, 0x07e0, 0x001f, 0}
	case 32:
		h.Compression = compressionBitfields
		h.Masks = [4]uint32{0xff0000, 0x00ff00, 0x0000ff, 0xff000000}
	default:
		h.Compression = compressionRGB
	}
	return h
}

// Encode writes m to w as a bitmap at the requested bit depth,
// converting the pixel format as needed.
func Encode(w io.Writer, m *img.Image, bpp int) error {
	if bpp != 16 && bpp != 24 && bpp != 32 {
		return fmt.Errorf("%w: %d", ErrBadDepth, bpp)
	}

	stride := Stride(m.Width, bpp)
	if stride > maxRowSize {
		return fmt.Errorf("%w: %d pixels at %d bpp", ErrRowTooWide, m.Width, bpp)
	}

	if err := binary.Write(w, binary.LittleEndian, newHeader(m.Width, m.Height, bpp)); err != nil {
		return err
	}

	var src *img.Image
	var err error
	if bpp == 16 {
		src, err = m.Convert(pixel.RGB565)
	} else {
		src, err = m.Convert(pixel.ARGB8888)
	}
	if err != nil {
		return err
	}

	row := make([]byte, stride)
	for y := 0; y < m.Height; y++ {
		for i := range row {
			row[i] = 0
		}
		switch bpp {
		case 16:
			copy(row, src.Pix[y*m.Width*2:(y+1)*m.Width*2])
		case 24:
			for x := 0; x < m.Width; x++ {
				p := src.Pix[(y*m.Width+x)*4:]
				row[x*3] = p[0]
				row[x*3+1] = p[1]
				row[x*3+2] = p[2]
			}
		case 32:
			copy(row, src.Pix[y*m.Width*4:(y+1)*m.Width*4])
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// EncodeBytes is Encode into a new buffer.
func EncodeBytes(m *img.Image, bpp int) ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(headerSize + Stride(m.Width, bpp)*m.Height)
	if err := Encode(b, m, bpp); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
