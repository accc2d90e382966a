package face

// HeaderSize is the fixed size of the file header in bytes.
const HeaderSize = 16

// Header is the fixed structure at the start of every face file. All
// fields are little-endian.
type Header struct {
	ApiVer         uint16 // firmware API level the face targets
	Reserved       uint16 // always 0xFFFF in captured files
	Ident          uint16 // varies per face, purpose unknown
	Revision       uint16 // record tag convention, 0..2
	PreviewWidth   uint16
	PreviewHeight  uint16
	DigitsOffset   uint16 // start of the digit glyph section, 0 if absent
	ElementsOffset uint16 // start of the element chain
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errAt(len(data), ErrTooShort)
	}
	u16 := func(off int) uint16 {
		return uint16(data[off]) | uint16(data[off+1])<<8
	}
	return Header{
		ApiVer:         u16(0),
		Reserved:       u16(2),
		Ident:          u16(4),
		Revision:       u16(6),
		PreviewWidth:   u16(8),
		PreviewHeight:  u16(10),
		DigitsOffset:   u16(12),
		ElementsOffset: u16(14),
	}, nil
}
