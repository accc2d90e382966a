package moyface

// faceBuilder assembles a synthetic face file for the tests.
type faceBuilder struct {
	b []byte
}

func (f *faceBuilder) u8(v uint8)   { f.b = append(f.b, v) }
func (f *faceBuilder) u16(v uint16) { f.b = append(f.b, byte(v), byte(v>>8)) }
func (f *faceBuilder) u32(v uint32) {
	f.b = append(f.b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (f *faceBuilder) owh(off uint32, w, h uint16) {
	f.u32(off)
	f.u16(w)
	f.u16(h)
}

// testFace is a minimal complete file: header, a chain holding the
// background image and a zero-geometry static image, and a raw 2x2
// RGB565 matrix for the background.
//
//	0   header
//	16  Image (background)
//	30  Image (zero geometry)
//	44  end tag
//	46  pixel data
func testFace() []byte {
	f := &faceBuilder{}

	f.u16(18)     // api level
	f.u16(0xffff) // reserved
	f.u16(0x61f4) // ident
	f.u16(0)      // revision
	f.u16(240)    // preview
	f.u16(280)
	f.u16(0)  // no digit section
	f.u16(16) // elements

	f.u16(0x0001) // Image
	f.u16(0)
	f.u16(0)
	f.owh(46, 2, 2)

	f.u16(0x0001) // Image, nothing behind it
	f.u16(50)
	f.u16(50)
	f.owh(0, 0, 0)

	f.u16(0x0000)

	// Big-endian RGB565: red, green, blue, white.
	f.b = append(f.b,
		0xf8, 0x00,
		0x07, 0xe0,
		0x00, 0x1f,
		0xff, 0xff,
	)
	return f.b
}
