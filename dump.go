package moyface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/moyoung/moyface/bmp"
	"github.com/moyoung/moyface/face"
	"github.com/moyoung/moyface/img"
	"github.com/moyoung/moyface/pixel"
)

// Format selects what Dump writes for each embedded image.
type Format int

const (
	FormatBMP Format = iota // decoded bitmap
	FormatRaw               // decoded ARGB8565 payload
	FormatBin               // verbatim on-disk span
	FormatGIF               // palette-quantized preview
)

var formatNames = map[string]Format{
	"bmp": FormatBMP,
	"raw": FormatRaw,
	"bin": FormatBin,
	"gif": FormatGIF,
}

// ParseFormat maps a format name from the command line.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[s]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown dump format %q", s)
}

func (f Format) ext() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatBin:
		return "bin"
	case FormatGIF:
		return "gif"
	}
	return "bmp"
}

// Dump decodes a face file and writes every embedded image into dir,
// creating it if needed. A failed image is logged and skipped; it
// never aborts its siblings. The walk error, if any, is returned after
// everything decodable has been written.
func (t *Tool) Dump(file, dir string, format Format, bpp int) error {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	doc, err := face.New(data, t.logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var n namer
	background := int(doc.Header().ElementsOffset)
	return doc.Walk(func(e face.Element) error {
		names := n.names(e, e.Offset() == background)
		for i, ref := range e.Refs() {
			if ref.Width == 0 || ref.Height == 0 {
				continue
			}
			name := filepath.Join(dir, fmt.Sprintf("%s.%s", names[i], format.ext()))
			if err := t.dumpRef(doc.Bytes(), ref, name, format, bpp); err != nil {
				t.logger.Printf("Skipping %s: %v\n", name, err)
			}
		}
		return nil
	})
}

func (t *Tool) dumpRef(data []byte, ref face.ImageRef, name string, format Format, bpp int) error {
	if format == FormatBin {
		span, err := img.Resolve(data, ref)
		if err != nil {
			return err
		}
		return writeBlob(name, data[span.Off:span.Off+span.Len])
	}

	m, err := img.Decode(data, ref)
	if err != nil {
		return err
	}

	switch format {
	case FormatRaw:
		if m, err = m.Convert(pixel.ARGB8565); err != nil {
			return err
		}
		return writeBlob(name, m.Pix)
	case FormatGIF:
		return writeGIF(name, m)
	default:
		b, err := bmp.EncodeBytes(m, bpp)
		if err != nil {
			return err
		}
		return writeBlob(name, b)
	}
}

// namer implements the dump file naming scheme, counting repeated
// element kinds as it goes.
type namer struct {
	static  int
	alt     int
	bar     int
	weather int
}

func (n *namer) names(e face.Element, background bool) []string {
	numbered := func(prefix string, count int) []string {
		names := make([]string, count)
		for i := range names {
			names[i] = fmt.Sprintf("%s_%d", prefix, i)
		}
		return names
	}

	switch e := e.(type) {
	case *face.Image:
		if background {
			return []string{"background"}
		}
		n.static++
		return []string{fmt.Sprintf("static_%02d", n.static-1)}
	case *face.DigitGlyphSet:
		return numbered(fmt.Sprintf("digit_%d", e.Subtype), 10)
	case *face.AltDigitGlyphSet:
		n.alt++
		return numbered(fmt.Sprintf("altdigit_%d", n.alt-1), 10)
	case *face.DayNameDisplay:
		return numbered("dayname", 7)
	case *face.BatteryFill:
		return []string{"battery_fill", "battery_empty", "battery_full"}
	case *face.HandPointer:
		return []string{fmt.Sprintf("hand_%d", e.Subtype)}
	case *face.BarDisplay:
		n.bar++
		return numbered(fmt.Sprintf("bar_%d", n.bar-1), len(e.Images))
	case *face.WeatherDisplay:
		n.weather++
		return numbered(fmt.Sprintf("weather_%d", n.weather-1), len(e.Icons))
	}
	return nil
}

func writeGIF(name string, m *img.Image) error {
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(m.Bounds(), q.Quantize(make(color.Palette, 0, 256), m))
	draw.Draw(pm, m.Bounds(), m, image.Point{}, draw.Src)

	b := new(bytes.Buffer)
	if err := gif.Encode(b, pm, nil); err != nil {
		return err
	}
	return writeBlob(name, b.Bytes())
}

// writeBlob writes b to a new file, removing the file again if the
// write fails part way.
func writeBlob(name string, b []byte) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}
