package face

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builder assembles a synthetic face file.
type builder struct {
	b []byte
}

func (f *builder) u8(v uint8)   { f.b = append(f.b, v) }
func (f *builder) u16(v uint16) { f.b = append(f.b, byte(v), byte(v>>8)) }
func (f *builder) u32(v uint32) {
	f.b = append(f.b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (f *builder) owh(off uint32, w, h uint16) {
	f.u32(off)
	f.u16(w)
	f.u16(h)
}

func (f *builder) pad(n int) { f.b = append(f.b, make([]byte, n)...) }

func newFile(revision, digitsOff, elementsOff uint16) *builder {
	f := &builder{}
	f.u16(18)     // api level
	f.u16(0xffff) // reserved
	f.u16(0x61f4) // ident
	f.u16(revision)
	f.u16(240) // preview
	f.u16(280)
	f.u16(digitsOff)
	f.u16(elementsOff)
	return f
}

func TestNewHeader(t *testing.T) {
	f := newFile(0, 0, HeaderSize)
	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	h := d.Header()
	assert.Equal(t, uint16(18), h.ApiVer)
	assert.Equal(t, uint16(0xffff), h.Reserved)
	assert.Equal(t, uint16(0), h.Revision)
	assert.Equal(t, uint16(240), h.PreviewWidth)
	assert.Equal(t, uint16(280), h.PreviewHeight)
	assert.Equal(t, uint16(HeaderSize), h.ElementsOffset)
	assert.Equal(t, len(f.b), d.Len())
}

func TestNewTooShort(t *testing.T) {
	_, err := New(make([]byte, 10), nil)
	assert.True(t, errors.Is(err, ErrTooShort), "got %v", err)
}

func TestNewElementsOffsetOutOfBounds(t *testing.T) {
	f := newFile(0, 0, 0x4000)

	_, err := New(f.b, nil)
	assert.True(t, errors.Is(err, ErrBounds), "got %v", err)
}

func TestWalkChain(t *testing.T) {
	f := newFile(0, 0, HeaderSize)

	f.u16(0x0001) // Image
	f.u16(10)
	f.u16(20)
	f.owh(0x100, 30, 40)

	f.u16(0x0201) // TimeDisplay
	f.u8(0)
	f.u8(0)
	f.u8(1)
	f.u8(1)
	for i := 0; i < 4; i++ {
		f.u16(uint16(50 + i*30))
		f.u16(60)
	}
	f.pad(12) // trailing unknown fields

	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 2)

	im, ok := els[0].(*Image)
	require.True(t, ok)
	assert.Equal(t, KindImage, im.Kind())
	assert.Equal(t, HeaderSize, im.Offset())
	assert.Equal(t, XY{10, 20}, im.Pos)
	assert.Equal(t, ImageRef{Offset: 0x100, Width: 30, Height: 40}, im.Ref)
	assert.Equal(t, []ImageRef{im.Ref}, im.Refs())

	td, ok := els[1].(*TimeDisplay)
	require.True(t, ok)
	assert.Equal(t, HeaderSize+14, td.Offset())
	assert.Equal(t, [4]uint8{0, 0, 1, 1}, td.GlyphSet)
	assert.Equal(t, XY{110, 60}, td.Pos[2])
	assert.Empty(t, td.Refs())
}

func TestWalkDigitSection(t *testing.T) {
	f := newFile(0, HeaderSize, HeaderSize+85)

	f.u16(digitsSentinel)
	f.u8(0)
	for i := 0; i < 10; i++ {
		f.owh(uint32(0x200+i*0x40), 16, 24)
	}
	f.pad(2)

	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 1)

	gs, ok := els[0].(*DigitGlyphSet)
	require.True(t, ok)
	assert.Equal(t, HeaderSize, gs.Offset())
	assert.Equal(t, uint8(0), gs.Subtype)
	assert.Equal(t, ImageRef{Offset: 0x200, Width: 16, Height: 24}, gs.Glyphs[0])
	assert.Equal(t, ImageRef{Offset: 0x440, Width: 16, Height: 24}, gs.Glyphs[9])
	assert.Len(t, gs.Refs(), 10)
}

// A wrong digit sentinel is logged and the section skipped; the
// element chain still decodes.
func TestWalkBadDigitSentinel(t *testing.T) {
	f := newFile(0, HeaderSize, HeaderSize)

	f.u16(0x0001) // Image where the digit section should be
	f.u16(0)
	f.u16(0)
	f.owh(0x100, 8, 8)
	f.u16(endTag)

	var buf bytes.Buffer
	d, err := New(f.b, log.New(&buf, "", 0))
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, KindImage, els[0].Kind())
	assert.Contains(t, buf.String(), "sentinel")
}

func TestWalkBarDisplay(t *testing.T) {
	f := newFile(0, 0, HeaderSize)

	f.u16(0x1201) // BarDisplay, 3 images
	f.u8(6)       // battery
	f.u8(3)
	f.u16(100)
	f.u16(200)
	for i := 0; i < 3; i++ {
		f.owh(uint32(0x300+i*0x10), 12, 12)
	}

	f.u16(0x0901) // KCalNumber, to prove the walk advanced correctly
	f.u8(1)
	f.u8(0)
	f.u16(44)
	f.u16(55)
	f.pad(11)

	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 2)

	bar, ok := els[0].(*BarDisplay)
	require.True(t, ok)
	assert.Equal(t, uint8(6), bar.Subtype)
	assert.Equal(t, XY{100, 200}, bar.Pos)
	require.Len(t, bar.Images, 3)
	assert.Equal(t, ImageRef{Offset: 0x320, Width: 12, Height: 12}, bar.Images[2])

	// A 3 image record is 8 + 3*8 bytes.
	assert.Equal(t, HeaderSize+32, els[1].Offset())
	kc, ok := els[1].(*KCalNumber)
	require.True(t, ok)
	assert.Equal(t, XY{44, 55}, kc.Pos)
}

func TestWalkWeatherDisplay(t *testing.T) {
	f := newFile(0, 0, HeaderSize)

	f.u16(0x1B01) // WeatherDisplay, 2 icons
	f.u8(2)
	f.u16(10)
	f.u16(10)
	f.owh(0x400, 32, 32)
	f.owh(0x500, 32, 32)

	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 1)

	w, ok := els[0].(*WeatherDisplay)
	require.True(t, ok)
	require.Len(t, w.Icons, 2)
	assert.Equal(t, ImageRef{Offset: 0x500, Width: 32, Height: 32}, w.Icons[1])
}

func TestWalkAltDigitGlyphSet(t *testing.T) {
	f := newFile(0, 0, HeaderSize)

	f.u16(0x1401)
	// First glyph offset 0x00012345 split across the record: high
	// three bytes here, low byte after the other nine entries.
	f.u8(0x23)
	f.u8(0x01)
	f.u8(0x00)
	f.u16(16) // first glyph size
	f.u16(24)
	for i := 1; i < 10; i++ {
		f.owh(uint32(0x600+i*0x40), 16, 24)
	}
	f.u8(0x45) // low offset byte
	f.u8(0)

	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 1)

	gs, ok := els[0].(*AltDigitGlyphSet)
	require.True(t, ok)
	assert.Equal(t, uint16(0x1401), gs.Tag)
	assert.Equal(t, ImageRef{Offset: 0x012345, Width: 16, Height: 24}, gs.Glyphs[0])
	assert.Equal(t, ImageRef{Offset: 0x640, Width: 16, Height: 24}, gs.Glyphs[1])
}

// An unknown tag stops the walk with the failing offset; everything
// decoded before it is still returned.
func TestWalkUnknownTag(t *testing.T) {
	f := newFile(0, 0, HeaderSize)

	f.u16(0x0001) // Image
	f.u16(0)
	f.u16(0)
	f.owh(0x100, 8, 8)

	f.u16(0x5501) // no such record

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	assert.True(t, errors.Is(err, ErrUnknownTag), "got %v", err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, HeaderSize+14, fe.Offset)

	require.Len(t, els, 1)
	assert.Equal(t, KindImage, els[0].Kind())
}

func TestWalkTruncatedRecord(t *testing.T) {
	f := newFile(0, 0, HeaderSize)
	f.u16(0x0001)
	f.pad(5) // Image records are 14 bytes

	d, err := New(f.b, nil)
	require.NoError(t, err)

	_, err = d.Elements()
	assert.True(t, errors.Is(err, ErrBounds), "got %v", err)
}

// Revision 2 files use the split tag convention, which rejects
// continuation bytes above 2.
func TestWalkSplitTagConvention(t *testing.T) {
	f := newFile(2, 0, HeaderSize)

	f.u16(0x0001) // Image; byte layout coincides with the wide form
	f.u16(0)
	f.u16(0)
	f.owh(0x100, 8, 8)
	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	els, err := d.Elements()
	require.NoError(t, err)
	require.Len(t, els, 1)

	// A continuation byte above 2 cannot start a record.
	g := newFile(2, 0, HeaderSize)
	g.u8(0x03)
	g.u8(0x01)

	d, err = New(g.b, nil)
	require.NoError(t, err)

	_, err = d.Elements()
	assert.True(t, errors.Is(err, ErrUnknownTag), "got %v", err)
}

func TestWalkCallbackError(t *testing.T) {
	f := newFile(0, 0, HeaderSize)
	f.u16(0x0001)
	f.u16(0)
	f.u16(0)
	f.owh(0x100, 8, 8)
	f.u16(endTag)

	d, err := New(f.b, nil)
	require.NoError(t, err)

	stop := errors.New("stop")
	err = d.Walk(func(Element) error { return stop })
	assert.Equal(t, stop, err)
}
