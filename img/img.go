/*
Package img resolves and decodes the images embedded in a watch face
file.

An image reference gives only an offset and declared geometry; the
encoding at that offset is inferred. A 0x2108 marker introduces the
row-indexed compressed form: a row table of one (start offset, encoded
size) entry per scanline followed by run-length data, where the size
field is stored shifted left five bits and the low five bits must be
zero. Anything else is an uncompressed RGB565 matrix with big-endian
pixels.

Decoded images land in one of the canonical working depths from the
pixel package and can be converted between them.
*/
package img

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/moyoung/moyface/face"
	"github.com/moyoung/moyface/pixel"
	"github.com/moyoung/moyface/rle"
)

// rleMarker introduces a row-indexed compressed image.
const rleMarker = 0x2108

var (
	// ErrSizeField is returned when a row table size field has any
	// of its low five bits set; the field is stored as a multiple of
	// 32 and anything else means the offsets upstream are wrong.
	ErrSizeField = errors.New("img: row size field has non-zero low bits")

	// ErrRowTable is returned when row start offsets decrease.
	ErrRowTable = errors.New("img: row table offsets not monotonic")

	// ErrBounds is returned when image data extends past the end of
	// the file.
	ErrBounds = errors.New("img: image data beyond end of file")
)

// Encoding classifies how an image is stored on disk.
type Encoding int

const (
	Raw        Encoding = iota // uncompressed RGB565 matrix
	Compressed                 // row-indexed run-length data
)

func (e Encoding) String() string {
	if e == Compressed {
		return "compressed"
	}
	return "raw"
}

// Span is the byte range a reference occupies in the source file.
type Span struct {
	Off int
	Len int
	Enc Encoding
}

// Resolve classifies the encoding of ref and computes the exact byte
// span it occupies, without decoding any pixels.
func Resolve(data []byte, ref face.ImageRef) (Span, error) {
	off := int(ref.Offset)
	if off < 0 || off+2 > len(data) {
		return Span{}, fmt.Errorf("%w at offset %#x", ErrBounds, off)
	}

	if uint16(data[off])|uint16(data[off+1])<<8 == rleMarker {
		_, end, err := rowTable(data, off, int(ref.Height))
		if err != nil {
			return Span{}, err
		}
		return Span{Off: off, Len: end - off, Enc: Compressed}, nil
	}

	n := 2 * int(ref.Width) * int(ref.Height)
	if off+n > len(data) {
		return Span{}, fmt.Errorf("%w at offset %#x", ErrBounds, off)
	}
	return Span{Off: off, Len: n, Enc: Raw}, nil
}

// rowTable parses the height-entry table following the marker at off.
// Row offsets are relative to off; the returned rows hold absolute
// source spans and end is the absolute end of the payload.
func rowTable(data []byte, off, height int) ([]rle.Row, int, error) {
	tbl := off + 2
	if height <= 0 || tbl+4*height > len(data) {
		return nil, 0, fmt.Errorf("%w at offset %#x", ErrBounds, off)
	}

	rows := make([]rle.Row, height)
	prev := 0
	end := 0
	for y := 0; y < height; y++ {
		entry := tbl + 4*y
		start := int(uint16(data[entry]) | uint16(data[entry+1])<<8)
		rawSize := uint16(data[entry+2]) | uint16(data[entry+3])<<8
		if rawSize&0x1f != 0 {
			return nil, 0, fmt.Errorf("%w: %#04x at offset %#x", ErrSizeField, rawSize, entry)
		}
		if start < prev {
			return nil, 0, fmt.Errorf("%w at offset %#x", ErrRowTable, entry)
		}
		prev = start
		rowEnd := off + start + int(rawSize>>5)
		if rowEnd > len(data) {
			return nil, 0, fmt.Errorf("%w at offset %#x", ErrBounds, entry)
		}
		if rowEnd > end {
			end = rowEnd
		}
		rows[y] = rle.Row{Off: off + start, End: rowEnd}
	}

	return rows, end, nil
}

// Image is a decoded, self-contained pixel buffer.
type Image struct {
	Width  int
	Height int
	Format pixel.Format
	Pix    []byte
}

// Decode materializes the image behind ref. Compressed images decode
// to ARGB8565, raw ones to RGB565.
func Decode(data []byte, ref face.ImageRef) (*Image, error) {
	span, err := Resolve(data, ref)
	if err != nil {
		return nil, err
	}

	w, h := int(ref.Width), int(ref.Height)

	if span.Enc == Compressed {
		rows, _, err := rowTable(data, span.Off, h)
		if err != nil {
			return nil, err
		}
		pix, err := rle.DecodeRows(data, rows, w)
		if err != nil {
			return nil, err
		}
		return &Image{Width: w, Height: h, Format: pixel.ARGB8565, Pix: pix}, nil
	}

	// Raw pixels are stored big-endian on disk; the working layout is
	// little-endian.
	pix := make([]byte, 2*w*h)
	for i := 0; i < len(pix); i += 2 {
		pix[i] = data[span.Off+i+1]
		pix[i+1] = data[span.Off+i]
	}
	return &Image{Width: w, Height: h, Format: pixel.RGB565, Pix: pix}, nil
}

// DecodeBasic decodes a 0x2108-marked image using the older
// row-unbounded variant, where run-length data follows the marker
// directly with no row table. Nothing in the file records which
// variant is in use, so the caller chooses.
func DecodeBasic(data []byte, ref face.ImageRef) (*Image, error) {
	off := int(ref.Offset)
	if off < 0 || off+2 > len(data) {
		return nil, fmt.Errorf("%w at offset %#x", ErrBounds, off)
	}
	w, h := int(ref.Width), int(ref.Height)
	pix, err := rle.DecodeBasic(data[off+2:], w, h)
	if err != nil {
		return nil, err
	}
	return &Image{Width: w, Height: h, Format: pixel.ARGB8565, Pix: pix}, nil
}

// Convert returns the image in another working depth.
func (m *Image) Convert(to pixel.Format) (*Image, error) {
	pix, err := pixel.Convert(m.Pix, m.Format, to)
	if err != nil {
		return nil, err
	}
	return &Image{Width: m.Width, Height: m.Height, Format: to, Pix: pix}, nil
}

// Size returns the pixel buffer size in bytes.
func (m *Image) Size() int { return len(m.Pix) }

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return color.NRGBA{}
	}
	i := (y*m.Width + x) * m.Format.Size()
	switch m.Format {
	case pixel.RGB565:
		r, g, b := pixel.Unpack565(uint16(m.Pix[i]) | uint16(m.Pix[i+1])<<8)
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	case pixel.ARGB8565:
		r, g, b := pixel.Unpack565(uint16(m.Pix[i+1]) | uint16(m.Pix[i+2])<<8)
		return color.NRGBA{R: r, G: g, B: b, A: m.Pix[i]}
	default:
		return color.NRGBA{R: m.Pix[i+2], G: m.Pix[i+1], B: m.Pix[i], A: m.Pix[i+3]}
	}
}
