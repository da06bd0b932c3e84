package textmesh

import "github.com/gogpu/textmesh/render"

// EntityID identifies a record in the host's entity storage.
type EntityID uint32

// FontKey is the stable identity of a font asset. Compiled fonts are
// cached by FontKey plus pixel size, so the key must not change for the
// lifetime of the asset.
type FontKey string

// FontRecord is an imported font asset as seen by this module: the raw
// font file bytes plus the ordered list of code points whose glyph
// metrics have been imported.
//
// The record is read-only here; the importer owns it. The byte buffer
// must not be mutated after the font is first compiled — the
// compilation cache never re-validates it (see Compiler).
type FontRecord struct {
	// Key is the stable font identity.
	Key FontKey

	// Data is the raw font file byte buffer.
	Data []byte

	// Glyphs is the ordered list of imported code points. Compiled
	// metric and UV tables are indexed by position in this list.
	Glyphs []rune

	// Loaded reports whether the glyph metric import has finished.
	// Unloaded fonts are skipped and retried on the next tick.
	Loaded bool

	// PixelSize selects the rasterization size for this font. Every
	// distinct (Key, PixelSize) pair allocates its own atlas surface,
	// so size choices should be kept few.
	PixelSize int

	// LineHeight overrides the face's natural line height, in mesh
	// units. Zero uses the face metrics.
	LineHeight float64
}

// TextMeshRequest asks for a mesh to be generated for a string of text.
//
// Version must be bumped by the owner whenever Text, Font or Alignment
// changes; the mesh is regenerated only when the version differs from
// the last one the system observed.
type TextMeshRequest struct {
	// Text is the character sequence to lay out. Lines break only at
	// '\n' ('\r\n' counts as a single break).
	Text string

	// Font references the font record to render with.
	Font EntityID

	// Alignment anchors the mesh's bounding box by a fraction per
	// axis: (0,0) leaves the block at the origin, (0.5,0.5) centers
	// it, (1,1) anchors the far corner.
	Alignment Vec2

	// Version is the owner's monotonic change counter.
	Version uint64
}

// TextMeshOutput is the generated geometry attached to a text-mesh
// record. Consumers compare Version against what they last uploaded to
// detect staleness.
type TextMeshOutput struct {
	Positions []Vec2
	UVs       []Vec2
	Indices   []uint32

	// Extent is the running maximum of the emitted vertex positions,
	// taken before alignment.
	Extent Vec2

	// Version is bumped every time the mesh is regenerated.
	Version uint64
}

// VertexCount returns the number of emitted vertices.
func (o *TextMeshOutput) VertexCount() int {
	return len(o.Positions)
}

// TextRenderer is the render-side record of a text entity: the font it
// draws with and the material that needs the compiled atlas bound.
type TextRenderer struct {
	// Font references the font record.
	Font EntityID

	// Material receives the compiled atlas texture on slot 0 once the
	// font has been compiled.
	Material *render.Material
}

// Bound reports whether the renderer already has an atlas bound.
func (r *TextRenderer) Bound() bool {
	return r.Material != nil && r.Material.HasTexture(0)
}
