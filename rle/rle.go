/*
Package rle implements the run-length pixel encoding used for images
embedded in MO YOUNG watch faces.

The stream is a sequence of commands. A command byte with the high bit
set repeats the single three byte sample that follows it, the run
length being the low seven bits. A command byte with the high bit clear
is a literal count N; the next 3*N bytes are copied verbatim. Samples
are ARGB8565 pixels.

Two variants share this grammar. The row-indexed variant restarts the
decoder at a known source offset for every scanline and must finish
each row exactly at its declared end. The basic variant has no row
table; runs carry across scanline boundaries, including a repeat run
left partially emitted at the end of a row.

Only decompression is implemented.
*/
package rle

import (
	"errors"
	"fmt"
)

// SampleSize is the on-disk size of one pixel sample.
const SampleSize = 3

var (
	// ErrOverrun is returned when a run would write past the bounds
	// of a scanline's working buffer.
	ErrOverrun = errors.New("rle: buffer overrun")

	// ErrShortData is returned when the source ends mid-command.
	ErrShortData = errors.New("rle: unexpected end of data")

	// ErrNotImplemented is returned by Encode.
	ErrNotImplemented = errors.New("rle: compression not implemented")
)

// Row bounds one scanline's compressed data within the source buffer.
// End is one past the row's last byte.
type Row struct {
	Off int
	End int
}

// DecodeRows decompresses a row-indexed image of len(rows) scanlines,
// each width pixels wide. Every row decodes independently from its own
// span. The result holds the rows in order, width*SampleSize bytes
// each; a row whose commands emit fewer than width pixels is
// zero-padded on the right.
func DecodeRows(src []byte, rows []Row, width int) ([]byte, error) {
	rowBytes := width * SampleSize
	out := make([]byte, len(rows)*rowBytes)

	for y, row := range rows {
		if row.Off < 0 || row.End > len(src) || row.Off > row.End {
			return nil, fmt.Errorf("%w: row %d span %#x:%#x", ErrShortData, y, row.Off, row.End)
		}

		o := y * rowBytes
		limit := o + rowBytes
		in := row.Off

		for in < row.End {
			cmd := src[in]
			in++

			if cmd&0x80 != 0 {
				count := int(cmd & 0x7f)
				if in+SampleSize > row.End {
					return nil, fmt.Errorf("%w at offset %#x", ErrShortData, in)
				}
				s0, s1, s2 := src[in], src[in+1], src[in+2]
				in += SampleSize
				for j := 0; j < count; j++ {
					if o+SampleSize > limit {
						return nil, fmt.Errorf("%w at offset %#x, row %d", ErrOverrun, in, y)
					}
					out[o] = s0
					out[o+1] = s1
					out[o+2] = s2
					o += SampleSize
				}
			} else {
				n := int(cmd) * SampleSize
				if in+n > row.End {
					return nil, fmt.Errorf("%w at offset %#x", ErrShortData, in)
				}
				if o+n > limit {
					return nil, fmt.Errorf("%w at offset %#x, row %d", ErrOverrun, in, y)
				}
				copy(out[o:o+n], src[in:in+n])
				in += n
				o += n
			}
		}
	}

	return out, nil
}

// DecodeBasic decompresses the older variant with no row table. The
// image is width by height pixels and runs are free to straddle
// scanline boundaries; decoding stops once the image is full, even in
// the middle of a repeat run.
func DecodeBasic(src []byte, width, height int) ([]byte, error) {
	total := width * height * SampleSize
	out := make([]byte, total)

	o := 0
	in := 0
	for o < total {
		if in >= len(src) {
			return nil, fmt.Errorf("%w at offset %#x", ErrShortData, in)
		}
		cmd := src[in]
		in++

		if cmd&0x80 != 0 {
			count := int(cmd & 0x7f)
			if in+SampleSize > len(src) {
				return nil, fmt.Errorf("%w at offset %#x", ErrShortData, in)
			}
			s0, s1, s2 := src[in], src[in+1], src[in+2]
			in += SampleSize
			for j := 0; j < count && o < total; j++ {
				out[o] = s0
				out[o+1] = s1
				out[o+2] = s2
				o += SampleSize
			}
		} else {
			// Clamp before checking the source: a literal run whose
			// tail would land past the end of the image may itself be
			// truncated without harming the decode.
			n := int(cmd) * SampleSize
			if o+n > total {
				n = total - o
			}
			if in+n > len(src) {
				return nil, fmt.Errorf("%w at offset %#x", ErrShortData, in)
			}
			copy(out[o:o+n], src[in:in+n])
			in += n
			o += n
		}
	}

	return out, nil
}

// Encode is the compression direction. The reference tool never
// implemented it and neither do we.
func Encode(pix []byte, width, height int) ([]byte, error) {
	return nil, ErrNotImplemented
}
