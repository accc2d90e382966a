package face

// Record shapes, keyed by normalized tag. Sizes include the tag bytes
// and come from the packed C structures in the watch firmware; most
// are fixed, but BarDisplay and WeatherDisplay records grow with the
// image count stored inside them.
var shapes = map[uint16]decodeFunc{
	0x0001: decodeImage,
	0x0101: decodeDigitGlyphSet,
	0x0201: decodeTimeDisplay,
	0x0401: decodeDayNameDisplay,
	0x0501: decodeBatteryFill,
	0x0601: makeNumber(KindHeartRateNumber, 26),
	0x0701: makeNumber(KindStepsNumber, 26),
	0x0901: makeNumber(KindKCalNumber, 19),
	0x0A01: decodeHandPointer,
	0x0D01: makeTwoDigit(KindDayNumber),
	0x0F01: makeTwoDigit(KindMonthNumber),
	0x1201: decodeBarDisplay,
	0x1B01: decodeWeatherDisplay,
	0x1D01: makeReserved(3),
	0x2301: makeReserved(10),
	0x1401: decodeAltDigitGlyphSet,
	0x4C01: decodeAltDigitGlyphSet,
	0x8801: decodeAltDigitGlyphSet,
	0x2C01: decodeAltDigitGlyphSet,
	0x6001: decodeAltDigitGlyphSet,
	0xD001: decodeAltDigitGlyphSet,
	0xEC02: decodeAltDigitGlyphSet,
}

func decodeImage(d *Document, off int) (Element, int, error) {
	const size = 14
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	return &Image{
		record: record{KindImage, off},
		Pos:    d.xy(off + 2),
		Ref:    d.owh(off + 6),
	}, size, nil
}

func decodeDigitGlyphSet(d *Document, off int) (Element, int, error) {
	const size = 85
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &DigitGlyphSet{
		record:  record{KindDigitGlyphSet, off},
		Subtype: d.u8(off + 2),
	}
	for i := range e.Glyphs {
		e.Glyphs[i] = d.owh(off + 3 + i*8)
	}
	return e, size, nil
}

func decodeTimeDisplay(d *Document, off int) (Element, int, error) {
	const size = 34
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &TimeDisplay{record: record{KindTimeDisplay, off}}
	for i := 0; i < 4; i++ {
		e.GlyphSet[i] = d.u8(off + 2 + i)
		e.Pos[i] = d.xy(off + 6 + i*4)
	}
	return e, size, nil
}

func decodeDayNameDisplay(d *Document, off int) (Element, int, error) {
	const size = 63
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &DayNameDisplay{
		record:  record{KindDayNameDisplay, off},
		Subtype: d.u8(off + 2),
		Pos:     d.xy(off + 3),
	}
	for i := range e.Days {
		e.Days[i] = d.owh(off + 7 + i*8)
	}
	return e, size, nil
}

func decodeBatteryFill(d *Document, off int) (Element, int, error) {
	const size = 42
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	return &BatteryFill{
		record: record{KindBatteryFill, off},
		Pos:    d.xy(off + 2),
		Ref:    d.owh(off + 6),
		X1:     d.u8(off + 14),
		Y1:     d.u8(off + 15),
		X2:     d.u8(off + 16),
		Y2:     d.u8(off + 17),
		// Two unknown u32 fields at +18 and +22.
		Empty: d.owh(off + 26),
		Full:  d.owh(off + 34),
	}, size, nil
}

func makeNumber(kind Kind, size int) decodeFunc {
	return func(d *Document, off int) (Element, int, error) {
		if err := d.need(off, size); err != nil {
			return nil, 0, err
		}
		n := numberDisplay{
			record:   record{kind, off},
			DigitSet: d.u8(off + 2),
			Justify:  d.u8(off + 3),
			Pos:      d.xy(off + 4),
		}
		switch kind {
		case KindHeartRateNumber:
			return &HeartRateNumber{n}, size, nil
		case KindStepsNumber:
			return &StepsNumber{n}, size, nil
		default:
			return &KCalNumber{n}, size, nil
		}
	}
}

func decodeHandPointer(d *Document, off int) (Element, int, error) {
	const size = 19
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	return &HandPointer{
		record:  record{KindHandPointer, off},
		Subtype: d.u8(off + 2),
		Pos:     d.xy(off + 3),
		Ref:     d.owh(off + 7),
		Center:  XY{X: d.u16(off + 15), Y: d.u16(off + 17)},
	}, size, nil
}

func makeTwoDigit(kind Kind) decodeFunc {
	return func(d *Document, off int) (Element, int, error) {
		const size = 12
		if err := d.need(off, size); err != nil {
			return nil, 0, err
		}
		digitSet := d.u8(off + 2)
		justify := d.u8(off + 3)
		pos := [2]XY{d.xy(off + 4), d.xy(off + 8)}
		if kind == KindDayNumber {
			return &DayNumber{record{kind, off}, digitSet, justify, pos}, size, nil
		}
		return &MonthNumber{record{kind, off}, digitSet, justify, pos}, size, nil
	}
}

// decodeBarDisplay handles the first of the two variable-size records:
// the byte size is 16 + (count-1)*8 with count read from the record.
func decodeBarDisplay(d *Document, off int) (Element, int, error) {
	if err := d.need(off, 8); err != nil {
		return nil, 0, err
	}
	count := int(d.u8(off + 3))
	size := 8 + count*8
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &BarDisplay{
		record:  record{KindBarDisplay, off},
		Subtype: d.u8(off + 2),
		Pos:     d.xy(off + 4),
		Images:  make([]ImageRef, count),
	}
	for i := range e.Images {
		e.Images[i] = d.owh(off + 8 + i*8)
	}
	return e, size, nil
}

// decodeWeatherDisplay is the other variable-size record: 15 +
// (count-1)*8 bytes.
func decodeWeatherDisplay(d *Document, off int) (Element, int, error) {
	if err := d.need(off, 7); err != nil {
		return nil, 0, err
	}
	count := int(d.u8(off + 2))
	size := 7 + count*8
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &WeatherDisplay{
		record: record{KindWeatherDisplay, off},
		Pos:    d.xy(off + 3),
		Icons:  make([]ImageRef, count),
	}
	for i := range e.Icons {
		e.Icons[i] = d.owh(off + 7 + i*8)
	}
	return e, size, nil
}

func decodeAltDigitGlyphSet(d *Document, off int) (Element, int, error) {
	const size = 83
	if err := d.need(off, size); err != nil {
		return nil, 0, err
	}
	e := &AltDigitGlyphSet{
		record: record{KindAltDigitGlyphSet, off},
		Tag:    d.u16(off),
	}
	// The first glyph's offset is stored split: the three high bytes
	// at +2, the low byte after the other nine entries at +81. The
	// record looks like it was laid out without room for the full
	// offset and patched afterwards; reproduced exactly.
	e.Glyphs[0] = ImageRef{
		Offset: altOffset([3]byte{d.u8(off + 2), d.u8(off + 3), d.u8(off + 4)}, d.u8(off+81)),
		Width:  d.u16(off + 5),
		Height: d.u16(off + 7),
	}
	for i := 1; i < 10; i++ {
		e.Glyphs[i] = d.owh(off + 9 + (i-1)*8)
	}
	return e, size, nil
}

// altOffset reassembles the split first-glyph offset.
func altOffset(hi [3]byte, lo byte) uint32 {
	return uint32(lo) | uint32(hi[0])<<8 | uint32(hi[1])<<16 | uint32(hi[2])<<24
}

func makeReserved(size int) decodeFunc {
	return func(d *Document, off int) (Element, int, error) {
		if err := d.need(off, size); err != nil {
			return nil, 0, err
		}
		return &Reserved{
			record: record{KindReserved, off},
			Tag:    d.u16(off),
			Data:   append([]byte(nil), d.data[off+2:off+size]...),
		}, size, nil
	}
}
