// Package font abstracts the font-rendering library used to rasterize
// glyphs. A Backend parses raw font bytes into a Face; a Face answers
// glyph metric queries and renders individual glyphs to 8-bit alpha
// bitmaps at a fixed pixel size.
//
// Two backends ship with the package: "ximage" (the default, built on
// golang.org/x/image/font/opentype) and "gotext" (built on
// github.com/go-text/typesetting with outline rasterization via
// golang.org/x/image/vector). Custom backends can be added with
// RegisterBackend.
package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrMissingGlyph is returned when a face has no glyph for a rune.
	ErrMissingGlyph = errors.New("font: no glyph for rune")

	// ErrInvalidPixelSize is returned for non-positive pixel sizes.
	ErrInvalidPixelSize = errors.New("font: pixel size must be positive")

	// ErrFaceClosed is returned when operating on a closed face.
	ErrFaceClosed = errors.New("font: face is closed")

	// ErrSizeNotSet is returned when a face is used before SetPixelSize.
	ErrSizeNotSet = errors.New("font: pixel size not set")
)

// Backend is a font parsing and rasterization implementation.
// Load must not retain the data slice; implementations copy what they need.
type Backend interface {
	// Load parses font data (TTF or OTF) and returns a Face.
	Load(data []byte) (Face, error)
}

// Face is a loaded font ready for metric queries and glyph rasterization.
// A Face owns native rasterizer state and must be closed exactly once.
//
// Face is not safe for concurrent use.
type Face interface {
	// SetPixelSize sets the rendering size in pixels. Following the
	// FreeType convention, a zero width means "same as height" and
	// vice versa. Must be called before Glyph or Rasterize.
	SetPixelSize(width, height int) error

	// HasGlyph reports whether the font maps the rune to a glyph.
	HasGlyph(r rune) bool

	// Glyph returns the rendering metrics for a rune at the current
	// pixel size. Returns ErrMissingGlyph if the font has no mapping.
	Glyph(r rune) (Glyph, error)

	// Rasterize renders the rune's glyph to an 8-bit single-channel
	// bitmap at the current pixel size. Whitespace glyphs yield an
	// empty (zero-dimension) bitmap.
	Rasterize(r rune) (*Bitmap, error)

	// Metrics returns the face-wide line metrics at the current size.
	Metrics() Metrics

	// Close releases the native face state. Safe to call once only
	// after which the face must not be used.
	Close() error
}

// Glyph holds one glyph's rendering metrics in pixels.
//
// Bearings are measured from the pen position on the baseline:
// BearingX to the left edge of the glyph box (x grows right), BearingY
// up to the top edge (positive above the baseline). Offsets locate the
// rasterized bitmap's top-left corner in raster space (y grows down),
// so OffsetY is typically the negated BearingY.
type Glyph struct {
	// AdvanceX, AdvanceY is the pen advance after this glyph.
	AdvanceX float64
	AdvanceY float64

	// BearingX, BearingY position the glyph box relative to the pen.
	BearingX float64
	BearingY float64

	// Width, Height is the glyph's pixel bounding box. Zero for
	// whitespace glyphs.
	Width  float64
	Height float64

	// OffsetX, OffsetY is the bitmap origin offset in raster space.
	OffsetX float64
	OffsetY float64
}

// Empty reports whether the glyph has no visible pixels.
func (g Glyph) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Bitmap is a rasterized glyph: Width*Height 8-bit coverage values,
// row-major, top row first.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// Empty reports whether the bitmap has no pixels.
func (b *Bitmap) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// Metrics holds face-wide line metrics in pixels at a given size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the
	// tallest glyph (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the
	// lowest glyph (positive).
	Descent float64

	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float64
}
