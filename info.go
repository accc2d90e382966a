package moyface

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/moyoung/moyface/face"
)

// Info decodes a face file and renders a human-readable element
// listing to w. A walk error is returned after everything decoded
// before it has been printed.
func (t *Tool) Info(file string, w io.Writer) error {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	doc, err := face.New(data, t.logger)
	if err != nil {
		return err
	}

	h := doc.Header()
	fmt.Fprintf(w, "apiVer          %s\n", ApiLevel(h.ApiVer))
	fmt.Fprintf(w, "ident           %#04x\n", h.Ident)
	fmt.Fprintf(w, "revision        %d\n", h.Revision)
	fmt.Fprintf(w, "preview         %dx%d\n", h.PreviewWidth, h.PreviewHeight)
	fmt.Fprintf(w, "digitsOffset    %#04x\n", h.DigitsOffset)
	fmt.Fprintf(w, "elementsOffset  %#04x\n", h.ElementsOffset)

	return doc.Walk(func(e face.Element) error {
		fmt.Fprintf(w, "@ %#08x  %s%s\n", e.Offset(), e.Kind(), describe(e))
		for i, ref := range e.Refs() {
			fmt.Fprintf(w, "    image[%d]    %#08x, %3d, %3d\n", i, ref.Offset, ref.Width, ref.Height)
		}
		return nil
	})
}

func describe(e face.Element) string {
	switch e := e.(type) {
	case *face.Image:
		return fmt.Sprintf(" at %d,%d", e.Pos.X, e.Pos.Y)
	case *face.DigitGlyphSet:
		return fmt.Sprintf(" (subtype %d)", e.Subtype)
	case *face.AltDigitGlyphSet:
		return fmt.Sprintf(" (tag %#04x)", e.Tag)
	case *face.DayNameDisplay:
		return fmt.Sprintf(" at %d,%d", e.Pos.X, e.Pos.Y)
	case *face.BatteryFill:
		return fmt.Sprintf(" at %d,%d fill %d,%d-%d,%d", e.Pos.X, e.Pos.Y, e.X1, e.Y1, e.X2, e.Y2)
	case *face.HeartRateNumber:
		return fmt.Sprintf(" digitSet %d justify %d at %d,%d", e.DigitSet, e.Justify, e.Pos.X, e.Pos.Y)
	case *face.StepsNumber:
		return fmt.Sprintf(" digitSet %d justify %d at %d,%d", e.DigitSet, e.Justify, e.Pos.X, e.Pos.Y)
	case *face.KCalNumber:
		return fmt.Sprintf(" digitSet %d justify %d at %d,%d", e.DigitSet, e.Justify, e.Pos.X, e.Pos.Y)
	case *face.HandPointer:
		return fmt.Sprintf(" (subtype %d) center %d,%d", e.Subtype, e.Center.X, e.Center.Y)
	case *face.DayNumber:
		return fmt.Sprintf(" digitSet %d justify %d", e.DigitSet, e.Justify)
	case *face.MonthNumber:
		return fmt.Sprintf(" digitSet %d justify %d", e.DigitSet, e.Justify)
	case *face.BarDisplay:
		return fmt.Sprintf(" (subtype %d, count %d) at %d,%d", e.Subtype, len(e.Images), e.Pos.X, e.Pos.Y)
	case *face.WeatherDisplay:
		return fmt.Sprintf(" (count %d) at %d,%d", len(e.Icons), e.Pos.X, e.Pos.Y)
	case *face.Reserved:
		return fmt.Sprintf(" (tag %#04x, %d bytes)", e.Tag, len(e.Data))
	}
	return ""
}

// ListFaces renders the scan catalog to w.
func (t *Tool) ListFaces(w io.Writer) error {
	return t.db.List(func(f *FaceRecord) error {
		fmt.Fprintf(w, "%s  %s  %dx%d  %d elements, %d images  %s\n",
			f.SHA1[:8], ApiLevel(f.ApiVer), f.Width, f.Height, f.Elements, f.Images, f.Path)
		return nil
	})
}
