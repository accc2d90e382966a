package face

// XY is an on-screen position in pixels, top-left origin.
type XY struct {
	X uint16
	Y uint16
}

// ImageRef locates one embedded image within the file. The encoding at
// Offset is not recorded anywhere; it has to be inferred by inspecting
// the bytes there.
type ImageRef struct {
	Offset uint32
	Width  uint16
	Height uint16
}

// Kind discriminates the element variants.
type Kind int

const (
	KindImage Kind = iota
	KindDigitGlyphSet
	KindAltDigitGlyphSet
	KindTimeDisplay
	KindDayNameDisplay
	KindBatteryFill
	KindHeartRateNumber
	KindStepsNumber
	KindKCalNumber
	KindHandPointer
	KindDayNumber
	KindMonthNumber
	KindBarDisplay
	KindWeatherDisplay
	KindReserved
)

var kindNames = map[Kind]string{
	KindImage:            "Image",
	KindDigitGlyphSet:    "DigitGlyphSet",
	KindAltDigitGlyphSet: "AltDigitGlyphSet",
	KindTimeDisplay:      "TimeDisplay",
	KindDayNameDisplay:   "DayNameDisplay",
	KindBatteryFill:      "BatteryFill",
	KindHeartRateNumber:  "HeartRateNumber",
	KindStepsNumber:      "StepsNumber",
	KindKCalNumber:       "KCalNumber",
	KindHandPointer:      "HandPointer",
	KindDayNumber:        "DayNumber",
	KindMonthNumber:      "MonthNumber",
	KindBarDisplay:       "BarDisplay",
	KindWeatherDisplay:   "WeatherDisplay",
	KindReserved:         "Reserved",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Element is one decoded widget in the watch face layout. Elements are
// self-contained; none of them alias the source buffer.
type Element interface {
	Kind() Kind

	// Offset is the byte offset of the element's record in the file.
	Offset() int

	// Refs returns the embedded images the element uses, in record
	// order. It may be empty.
	Refs() []ImageRef
}

// record carries what every element variant has in common.
type record struct {
	kind Kind
	off  int
}

func (r record) Kind() Kind  { return r.kind }
func (r record) Offset() int { return r.off }

// Image is a static image, e.g. the background.
type Image struct {
	record
	Pos XY
	Ref ImageRef
}

func (e *Image) Refs() []ImageRef { return []ImageRef{e.Ref} }

// DigitGlyphSet is a font of ten digit images. Subtype 0 is the time
// digits, 1 the day-of-month digits, 2 appears to be steps.
type DigitGlyphSet struct {
	record
	Subtype uint8
	Glyphs  [10]ImageRef
}

func (e *DigitGlyphSet) Refs() []ImageRef { return append([]ImageRef(nil), e.Glyphs[:]...) }

// AltDigitGlyphSet is a second digit font, used when the minute digits
// differ from the hour digits. Several tags share this shape.
type AltDigitGlyphSet struct {
	record
	Tag    uint16
	Glyphs [10]ImageRef
}

func (e *AltDigitGlyphSet) Refs() []ImageRef { return append([]ImageRef(nil), e.Glyphs[:]...) }

// TimeDisplay positions the four HHMM digits.
type TimeDisplay struct {
	record
	GlyphSet [4]uint8 // digit font for each digit
	Pos      [4]XY
}

func (e *TimeDisplay) Refs() []ImageRef { return nil }

// DayNameDisplay shows the weekday as one of seven images.
type DayNameDisplay struct {
	record
	Subtype uint8
	Pos     XY
	Days    [7]ImageRef
}

func (e *DayNameDisplay) Refs() []ImageRef { return append([]ImageRef(nil), e.Days[:]...) }

// BatteryFill shows charge by filling a subsection of an image.
type BatteryFill struct {
	record
	Pos            XY
	Ref            ImageRef
	X1, Y1, X2, Y2 uint8 // fill region, from the image's top left
	Empty          ImageRef
	Full           ImageRef
}

func (e *BatteryFill) Refs() []ImageRef { return []ImageRef{e.Ref, e.Empty, e.Full} }

// numberDisplay is the common shape of the numeric readouts.
type numberDisplay struct {
	record
	DigitSet uint8 // digit font index
	Justify  uint8 // suspected L/R/C justification
	Pos      XY
}

func (e *numberDisplay) Refs() []ImageRef { return nil }

// HeartRateNumber shows the heart rate as a number.
type HeartRateNumber struct{ numberDisplay }

// StepsNumber shows today's step count as a number.
type StepsNumber struct{ numberDisplay }

// KCalNumber shows burned calories as a number.
type KCalNumber struct{ numberDisplay }

// HandPointer is an analog watch hand. Subtype 0 is hours, 1 minutes,
// 2 seconds.
type HandPointer struct {
	record
	Subtype uint8
	Pos     XY
	Ref     ImageRef
	Center  XY // pivot, typically the screen center
}

func (e *HandPointer) Refs() []ImageRef { return []ImageRef{e.Ref} }

// DayNumber positions the two day-of-month digits.
type DayNumber struct {
	record
	DigitSet uint8
	Justify  uint8
	Pos      [2]XY
}

func (e *DayNumber) Refs() []ImageRef { return nil }

// MonthNumber positions the two month digits.
type MonthNumber struct {
	record
	DigitSet uint8
	Justify  uint8
	Pos      [2]XY
}

func (e *MonthNumber) Refs() []ImageRef { return nil }

// BarDisplay is a multi-image gauge. Its record size depends on the
// image count stored inside it.
type BarDisplay struct {
	record
	Subtype uint8 // data source: 0 steps, 2 kcal, 5 heart rate, 6 battery
	Pos     XY
	Images  []ImageRef
}

func (e *BarDisplay) Refs() []ImageRef { return append([]ImageRef(nil), e.Images...) }

// WeatherDisplay is a set of condition icons. Like BarDisplay its
// record size depends on the icon count stored inside it.
type WeatherDisplay struct {
	record
	Pos   XY
	Icons []ImageRef
}

func (e *WeatherDisplay) Refs() []ImageRef { return append([]ImageRef(nil), e.Icons...) }

// Reserved is a recognized record whose meaning is still unknown. The
// payload is an owned copy of the record's bytes after the tag.
type Reserved struct {
	record
	Tag  uint16
	Data []byte
}

func (e *Reserved) Refs() []ImageRef { return nil }
