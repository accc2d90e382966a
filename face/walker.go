/*
Package face decodes 'new' format MO YOUNG / DA FIT binary watch face
files into their widget elements.

A file is a fixed little-endian header, an optional digit glyph
section, and a chain of tagged records with no length prefixes; each
record's size is known only from its tag, and for two record kinds
from a count field inside the record itself. The chain ends at a zero
tag. Nothing in the file is self-describing enough to skip an
unrecognized record, so an unknown tag stops the walk.
*/
package face

import (
	"io/ioutil"
	"log"
)

const (
	// endTag terminates the element chain.
	endTag = 0x0000

	// digitsSentinel is the tag expected at the start of the digit
	// glyph section.
	digitsSentinel = 0x0101
)

// Document is an owned face file buffer together with its parsed
// header. The buffer is never modified.
type Document struct {
	data   []byte
	hdr    Header
	logger *log.Logger
}

// New parses the header of data and returns a Document over it. The
// logger receives warnings for recoverable oddities; nil discards
// them.
func New(data []byte, logger *log.Logger) (*Document, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if int(hdr.ElementsOffset) >= len(data) {
		return nil, errAt(int(hdr.ElementsOffset), ErrBounds)
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Document{data: data, hdr: hdr, logger: logger}, nil
}

// Header returns the parsed file header.
func (d *Document) Header() Header { return d.hdr }

// Bytes returns the underlying file buffer. Callers must not modify
// it.
func (d *Document) Bytes() []byte { return d.data }

// Len returns the file size in bytes.
func (d *Document) Len() int { return len(d.data) }

func (d *Document) need(off, n int) error {
	if off < 0 || n < 0 || off+n > len(d.data) {
		return errAt(off, ErrBounds)
	}
	return nil
}

// Field readers assume the caller has already checked bounds for the
// whole record via need.

func (d *Document) u8(off int) uint8 { return d.data[off] }

func (d *Document) u16(off int) uint16 {
	return uint16(d.data[off]) | uint16(d.data[off+1])<<8
}

func (d *Document) u32(off int) uint32 {
	return uint32(d.data[off]) | uint32(d.data[off+1])<<8 |
		uint32(d.data[off+2])<<16 | uint32(d.data[off+3])<<24
}

func (d *Document) xy(off int) XY {
	return XY{X: d.u16(off), Y: d.u16(off + 2)}
}

func (d *Document) owh(off int) ImageRef {
	return ImageRef{Offset: d.u32(off), Width: d.u16(off + 4), Height: d.u16(off + 6)}
}

// Walk decodes the digit glyph pre-pass and then the element chain,
// handing each element to fn in file order as soon as it is decoded.
// A structural error stops the walk and is returned; everything
// decoded before it has already been delivered. If fn returns an
// error the walk stops with that error instead.
func (d *Document) Walk(fn func(Element) error) error {
	sc := schemaFor(d.hdr)

	if int(d.hdr.DigitsOffset) != 0 {
		if err := d.walkDigits(sc, fn); err != nil {
			return err
		}
	}

	off := int(d.hdr.ElementsOffset)
	for {
		tag, err := sc.tag(d, off)
		if err != nil {
			return err
		}
		if tag == endTag {
			return nil
		}
		decode, ok := sc.shapes[tag]
		if !ok {
			return errAt(off, ErrUnknownTag)
		}
		el, size, err := decode(d, off)
		if err != nil {
			return err
		}
		if err := fn(el); err != nil {
			return err
		}
		off += size
	}
}

// Elements runs Walk and collects the results. On error the elements
// decoded before the failure are still returned.
func (d *Document) Elements() ([]Element, error) {
	var els []Element
	err := d.Walk(func(e Element) error {
		els = append(els, e)
		return nil
	})
	return els, err
}

// walkDigits consumes the fixed-size glyph set records between the
// digit section offset and the element section offset. A bad sentinel
// is a warning, not an error; the element chain is still worth
// decoding.
func (d *Document) walkDigits(sc *schema, fn func(Element) error) error {
	off := int(d.hdr.DigitsOffset)
	end := int(d.hdr.ElementsOffset)

	tag, err := sc.tag(d, off)
	if err != nil {
		return err
	}
	if tag != digitsSentinel {
		d.logger.Printf("face: digit section at %#x has sentinel %#04x, not %#04x; skipping", off, tag, digitsSentinel)
		return nil
	}

	for off < end {
		el, size, err := decodeDigitGlyphSet(d, off)
		if err != nil {
			return err
		}
		if err := fn(el); err != nil {
			return err
		}
		off += size
	}
	if off != end {
		d.logger.Printf("face: digit section overruns element section by %d bytes", off-end)
	}
	return nil
}

type decodeFunc func(d *Document, off int) (Element, int, error)

// schema is one tag encoding convention: how wide a tag is, how to
// read and normalize it, and which record shapes it can introduce.
type schema struct {
	tagWidth int
	tag      func(d *Document, off int) (uint16, error)
	shapes   map[uint16]decodeFunc
}

// schemaFor picks the tag convention for a file. Sample files show at
// least two conventions with no other known discriminator, so the
// header revision field decides; a better discriminator only has to
// change this function.
func schemaFor(h Header) *schema {
	if h.Revision == 2 {
		return &splitSchema
	}
	return &wideSchema
}

// wideSchema reads tags as plain 16-bit values.
var wideSchema = schema{
	tagWidth: 2,
	tag: func(d *Document, off int) (uint16, error) {
		if err := d.need(off, 2); err != nil {
			return 0, err
		}
		return d.u16(off), nil
	},
	shapes: shapes,
}

// splitSchema reads tags as a continuation byte followed by an 8-bit
// kind byte. Known continuation values are 0..2; anything else cannot
// start a record. Normalized values coincide with the wide convention
// so both share one shape table.
var splitSchema = schema{
	tagWidth: 2,
	tag: func(d *Document, off int) (uint16, error) {
		if err := d.need(off, 2); err != nil {
			return 0, err
		}
		cont, kind := d.u8(off), d.u8(off+1)
		if cont > 0x02 {
			return 0, errAt(off, ErrUnknownTag)
		}
		return uint16(kind)<<8 | uint16(cont), nil
	},
	shapes: shapes,
}
