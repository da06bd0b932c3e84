package font

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// gotextBackend implements Backend using github.com/go-text/typesetting
// for parsing and metrics, with outline rasterization via
// golang.org/x/image/vector.
//
// Only outline (glyf/CFF) fonts are supported; color bitmap and SVG
// glyph formats report ErrMissingGlyph.
type gotextBackend struct{}

// Load implements Backend.Load.
func (b *gotextBackend) Load(data []byte) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &gotextFace{face: face}, nil
}

// gotextFace implements Face on top of a typesetting font face.
type gotextFace struct {
	face *gtfont.Face

	// scale converts font units to pixels: pixelSize / unitsPerEm.
	scale  float64
	closed bool
}

// SetPixelSize implements Face.SetPixelSize.
func (f *gotextFace) SetPixelSize(width, height int) error {
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

	f.scale = float64(size) / float64(f.face.Upem())
	return nil
}

// HasGlyph implements Face.HasGlyph.
func (f *gotextFace) HasGlyph(r rune) bool {
	if f.closed {
		return false
	}
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// Glyph implements Face.Glyph.
func (f *gotextFace) Glyph(r rune) (Glyph, error) {
	gid, box, err := f.outlineBox(r)
	if err != nil {
		return Glyph{}, err
	}

	return Glyph{
		AdvanceX: float64(f.face.HorizontalAdvance(gid)) * f.scale,
		BearingX: float64(box.minX),
		BearingY: float64(box.maxY),
		Width:    float64(box.maxX - box.minX),
		Height:   float64(box.maxY - box.minY),
		OffsetX:  float64(box.minX),
		OffsetY:  float64(-box.maxY),
	}, nil
}

// Rasterize implements Face.Rasterize.
func (f *gotextFace) Rasterize(r rune) (*Bitmap, error) {
	gid, box, err := f.outlineBox(r)
	if err != nil {
		return nil, err
	}

	w := box.maxX - box.minX
	h := box.maxY - box.minY
	if w <= 0 || h <= 0 {
		return &Bitmap{}, nil
	}

	outline, _ := f.face.GlyphData(gid).(gtfont.GlyphOutline)

	// Outline coordinates are font units with y up; the raster grid is
	// pixels with y down, origin at the box's top-left corner.
	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Src
	sc := float32(f.scale)
	tx := float32(box.minX)
	ty := float32(box.maxY)

	started := false
	for _, seg := range outline.Segments {
		p0x := seg.Args[0].X*sc - tx
		p0y := ty - seg.Args[0].Y*sc
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			if started {
				ras.ClosePath()
			}
			ras.MoveTo(p0x, p0y)
			started = true
		case opentype.SegmentOpLineTo:
			ras.LineTo(p0x, p0y)
		case opentype.SegmentOpQuadTo:
			p1x := seg.Args[1].X*sc - tx
			p1y := ty - seg.Args[1].Y*sc
			ras.QuadTo(p0x, p0y, p1x, p1y)
		case opentype.SegmentOpCubeTo:
			p1x := seg.Args[1].X*sc - tx
			p1y := ty - seg.Args[1].Y*sc
			p2x := seg.Args[2].X*sc - tx
			p2y := ty - seg.Args[2].Y*sc
			ras.CubeTo(p0x, p0y, p1x, p1y, p2x, p2y)
		}
	}
	if started {
		ras.ClosePath()
	}

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	return &Bitmap{Width: w, Height: h, Pix: alpha.Pix}, nil
}

// Metrics implements Face.Metrics.
func (f *gotextFace) Metrics() Metrics {
	if f.closed {
		return Metrics{}
	}

	ext, ok := f.face.FontHExtents()
	if !ok {
		return Metrics{}
	}

	// Descender is negative (below baseline) in OpenType extents.
	return Metrics{
		Ascent:     float64(ext.Ascender) * f.scale,
		Descent:    float64(-ext.Descender) * f.scale,
		LineHeight: float64(ext.Ascender-ext.Descender+ext.LineGap) * f.scale,
	}
}

// Close implements Face.Close.
func (f *gotextFace) Close() error {
	if f.closed {
		return ErrFaceClosed
	}
	f.closed = true
	f.face = nil
	return nil
}

// pixelBox is a glyph bounding box snapped to the pixel grid, y up.
type pixelBox struct {
	minX, minY, maxX, maxY int
}

// outlineBox resolves the rune's glyph and computes its pixel bounding
// box from the outline segments.
func (f *gotextFace) outlineBox(r rune) (gtfont.GID, pixelBox, error) {
	if f.closed {
		return 0, pixelBox{}, ErrFaceClosed
	}
	if f.scale == 0 {
		return 0, pixelBox{}, ErrSizeNotSet
	}

	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0, pixelBox{}, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}

	outline, ok := f.face.GlyphData(gid).(gtfont.GlyphOutline)
	if !ok {
		return 0, pixelBox{}, fmt.Errorf("%w: %q (non-outline glyph format)", ErrMissingGlyph, r)
	}
	if len(outline.Segments) == 0 {
		return gid, pixelBox{}, nil
	}

	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)

	// Control points are included, which can slightly overestimate the
	// box for curved glyphs. The extra pixels carry zero coverage.
	for _, seg := range outline.Segments {
		npts := 1
		switch seg.Op {
		case opentype.SegmentOpQuadTo:
			npts = 2
		case opentype.SegmentOpCubeTo:
			npts = 3
		}
		for i := 0; i < npts; i++ {
			x := float64(seg.Args[i].X) * f.scale
			y := float64(seg.Args[i].Y) * f.scale
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
	}

	return gid, pixelBox{
		minX: int(math.Floor(minX)),
		minY: int(math.Floor(minY)),
		maxX: int(math.Ceil(maxX)),
		maxY: int(math.Ceil(maxY)),
	}, nil
}
