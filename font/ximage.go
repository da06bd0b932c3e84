package font

import (
	"fmt"
	"image"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageBackend implements Backend using golang.org/x/image/font/opentype.
type ximageBackend struct{}

// Load implements Backend.Load.
func (b *ximageBackend) Load(data []byte) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &ximageFace{font: f}, nil
}

// ximageFace implements Face on top of an sfnt font plus an opentype
// face at the configured pixel size.
type ximageFace struct {
	font *opentype.Font
	face xfont.Face
	buf  sfnt.Buffer

	pixelSize int
	closed    bool
}

// SetPixelSize implements Face.SetPixelSize.
// With DPI fixed at 72, the point size equals pixels per em.
func (f *ximageFace) SetPixelSize(width, height int) error {
	if f.closed {
		return ErrFaceClosed
	}

	size := height
	if size <= 0 {
		size = width
	}
	if size <= 0 {
		return ErrInvalidPixelSize
	}

	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("font: failed to create face: %w", err)
	}

	if f.face != nil {
		_ = f.face.Close()
	}
	f.face = face
	f.pixelSize = size
	return nil
}

// HasGlyph implements Face.HasGlyph.
func (f *ximageFace) HasGlyph(r rune) bool {
	if f.closed {
		return false
	}
	gid, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && gid != 0
}

// Glyph implements Face.Glyph.
// Metrics are derived from the rasterization grid so that the reported
// box matches the bitmap returned by Rasterize pixel for pixel.
func (f *ximageFace) Glyph(r rune) (Glyph, error) {
	dr, _, _, advance, err := f.glyph(r)
	if err != nil {
		return Glyph{}, err
	}

	return Glyph{
		AdvanceX: fixedToFloat(advance),
		BearingX: float64(dr.Min.X),
		BearingY: float64(-dr.Min.Y),
		Width:    float64(dr.Dx()),
		Height:   float64(dr.Dy()),
		OffsetX:  float64(dr.Min.X),
		OffsetY:  float64(dr.Min.Y),
	}, nil
}

// Rasterize implements Face.Rasterize.
func (f *ximageFace) Rasterize(r rune) (*Bitmap, error) {
	dr, mask, maskp, _, err := f.glyph(r)
	if err != nil {
		return nil, err
	}

	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 {
		return &Bitmap{}, nil
	}

	// Copy the mask into a tight alpha buffer.
	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)

	return &Bitmap{Width: w, Height: h, Pix: alpha.Pix}, nil
}

// glyph performs the shared lookup for Glyph and Rasterize.
func (f *ximageFace) glyph(r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, error) {
	if f.closed {
		return image.Rectangle{}, nil, image.Point{}, 0, ErrFaceClosed
	}
	if f.face == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, ErrSizeNotSet
	}
	if !f.HasGlyph(r) {
		return image.Rectangle{}, nil, image.Point{}, 0, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}

	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}
	return dr, mask, maskp, advance, nil
}

// Metrics implements Face.Metrics.
func (f *ximageFace) Metrics() Metrics {
	if f.closed || f.face == nil {
		return Metrics{}
	}

	m := f.face.Metrics()
	return Metrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}
}

// Close implements Face.Close.
func (f *ximageFace) Close() error {
	if f.closed {
		return ErrFaceClosed
	}
	f.closed = true

	if f.face != nil {
		err := f.face.Close()
		f.face = nil
		return err
	}
	return nil
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
// Font metrics are stored in 1/64 pixel units.
func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
