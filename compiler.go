package textmesh

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/render"
)

// CompiledKey identifies a compiled font: every distinct (font, pixel
// size) pair compiles to its own atlas.
type CompiledKey struct {
	Font      FontKey
	PixelSize int
}

// CompiledFont is the cached result of compiling one font at one pixel
// size: the rasterizer face (exclusively owned), the packed atlas
// surface (owned by the cache, shared by reference with the renderer),
// and per-glyph metric and UV tables parallel to the font's imported
// glyph list.
//
// A CompiledFont is owned by its Compiler and released when the entry
// is evicted or the compiler closes.
type CompiledFont struct {
	key CompiledKey

	face  font.Face
	atlas *atlas.Atlas

	// glyphs and regions are indexed by the glyph's position in the
	// font's imported glyph list; index maps code points to positions.
	glyphs  []font.Glyph
	regions []atlas.Region
	index   map[rune]int

	metrics font.Metrics
	texture *render.Texture

	released atomic.Bool
}

// Key returns the compiled key.
func (cf *CompiledFont) Key() CompiledKey { return cf.key }

// PixelSize returns the rasterization size in pixels.
func (cf *CompiledFont) PixelSize() int { return cf.key.PixelSize }

// Atlas returns the packed atlas surface.
func (cf *CompiledFont) Atlas() *atlas.Atlas { return cf.atlas }

// Metrics returns the face line metrics at the compiled pixel size.
func (cf *CompiledFont) Metrics() font.Metrics { return cf.metrics }

// GlyphCount returns the number of compiled glyph entries.
func (cf *CompiledFont) GlyphCount() int { return len(cf.glyphs) }

// Texture returns the render texture describing the atlas surface.
func (cf *CompiledFont) Texture() *render.Texture { return cf.texture }

// Lookup returns the metrics and UV region for a code point.
func (cf *CompiledFont) Lookup(r rune) (font.Glyph, atlas.Region, bool) {
	i, ok := cf.index[r]
	if !ok {
		return font.Glyph{}, atlas.Region{}, false
	}
	return cf.glyphs[i], cf.regions[i], true
}

// Release frees the compiled font: the rasterizer face is closed, the
// atlas reference is dropped and the render texture is closed.
// Safe to call once only; further calls are no-ops.
func (cf *CompiledFont) Release() {
	if cf.released.Swap(true) {
		return
	}

	if cf.face != nil {
		_ = cf.face.Close()
		cf.face = nil
	}
	if cf.texture != nil {
		cf.texture.Close()
		cf.texture = nil
	}
	if cf.atlas != nil {
		cf.atlas.Release()
		cf.atlas = nil
	}
	cf.glyphs = nil
	cf.regions = nil
	cf.index = nil
}

// CompilerConfig holds configuration for a Compiler.
type CompilerConfig struct {
	// Backend is the font backend name. Default: font.DefaultBackendName.
	Backend string

	// Padding is the atlas border between glyph bitmaps in pixels.
	// Default: atlas.DefaultPadding.
	Padding int

	// MaxAtlasSize caps the atlas surface dimensions.
	// Default: atlas.DefaultMaxSize.
	MaxAtlasSize int

	// Device is the optional host GPU device used to create atlas
	// textures. Nil creates logical textures.
	Device render.DeviceHandle
}

// DefaultCompilerConfig returns the default compiler configuration.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		Backend:      font.DefaultBackendName,
		Padding:      atlas.DefaultPadding,
		MaxAtlasSize: atlas.DefaultMaxSize,
	}
}

// Compiler rasterizes fonts into glyph atlases and memoizes the result
// per (font identity, pixel size).
//
// CompileOrFetch is a pure memoization point, not a staleness check:
// once a font is compiled, content changes to its byte buffer are never
// detected. Callers must not mutate a font's bytes in place after the
// first compile.
//
// Compiler is safe for concurrent use; compilation itself runs
// serially under the cache lock.
type Compiler struct {
	mu      sync.Mutex
	entries map[CompiledKey]*CompiledFont
	closed  bool

	config CompilerConfig

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCompiler creates a compiler with the default configuration.
func NewCompiler() *Compiler {
	return NewCompilerWithConfig(DefaultCompilerConfig())
}

// NewCompilerWithConfig creates a compiler with the given configuration.
func NewCompilerWithConfig(config CompilerConfig) *Compiler {
	if config.Backend == "" {
		config.Backend = font.DefaultBackendName
	}
	if config.Padding <= 0 {
		config.Padding = atlas.DefaultPadding
	}
	if config.MaxAtlasSize <= 0 {
		config.MaxAtlasSize = atlas.DefaultMaxSize
	}

	return &Compiler{
		entries: make(map[CompiledKey]*CompiledFont),
		config:  config,
	}
}

// CompileOrFetch returns the compiled font for (rec.Key, pixelSize),
// compiling it on first use.
//
// On a cache miss the font bytes are loaded into a rasterizer face,
// every glyph in rec.Glyphs is rasterized, and the bitmaps are packed
// into one atlas surface. Load and rasterization failures return a
// *FontCompileError, packing failures an *AtlasPackError; in both
// cases the cache is left unchanged.
func (c *Compiler) CompileOrFetch(rec *FontRecord, pixelSize int) (*CompiledFont, error) {
	if pixelSize <= 0 {
		return nil, ErrInvalidPixelSize
	}

	key := CompiledKey{Font: rec.Key, PixelSize: pixelSize}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCompilerClosed
	}
	if cf, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return cf, nil
	}
	c.misses.Add(1)

	cf, err := c.compile(rec, key)
	if err != nil {
		return nil, err
	}

	c.entries[key] = cf
	return cf, nil
}

// compile performs the cache-miss path. Called with the lock held.
func (c *Compiler) compile(rec *FontRecord, key CompiledKey) (*CompiledFont, error) {
	face, err := font.GetBackend(c.config.Backend).Load(rec.Data)
	if err != nil {
		return nil, &FontCompileError{Key: key.Font, PixelSize: key.PixelSize, Err: err}
	}
	if err := face.SetPixelSize(key.PixelSize, key.PixelSize); err != nil {
		_ = face.Close()
		return nil, &FontCompileError{Key: key.Font, PixelSize: key.PixelSize, Err: err}
	}

	glyphs := make([]font.Glyph, len(rec.Glyphs))
	regions := make([]atlas.Region, len(rec.Glyphs))
	index := make(map[rune]int, len(rec.Glyphs))
	sprites := make([]atlas.Sprite, 0, len(rec.Glyphs))

	for i, r := range rec.Glyphs {
		if _, dup := index[r]; dup {
			continue
		}

		// Resolved code points only: a rune the face cannot serve must
		// not get a table entry, so Lookup reports it missing and the
		// mesh builder substitutes its fallback.
		g, err := face.Glyph(r)
		if err != nil {
			Logger().Debug("textmesh: glyph skipped",
				"font", key.Font, "rune", string(r), "error", err)
			continue
		}
		index[r] = i
		glyphs[i] = g

		bm, err := face.Rasterize(r)
		if err != nil || bm.Empty() {
			continue
		}
		sprites = append(sprites, atlas.Sprite{
			Name:   spriteName(r),
			Width:  bm.Width,
			Height: bm.Height,
			Pix:    bm.Pix,
		})
	}

	packed, err := atlas.Pack(sprites, atlas.PackOptions{
		Padding: c.config.Padding,
		MaxSize: c.config.MaxAtlasSize,
	})
	if err != nil {
		_ = face.Close()
		return nil, &AtlasPackError{Key: key.Font, PixelSize: key.PixelSize, Err: err}
	}

	for i, r := range rec.Glyphs {
		j, ok := index[r]
		if !ok {
			// Unresolved code point: its slot stays zero and Lookup
			// never reaches it.
			continue
		}
		if j != i {
			// Duplicate code point in the glyph list: mirror the
			// first occurrence so the parallel tables stay complete.
			glyphs[i] = glyphs[j]
			regions[i] = regions[j]
			continue
		}
		if reg, ok := packed.Region(spriteName(r)); ok {
			regions[i] = reg
		}
	}

	texture, err := render.FromAtlas(c.config.Device, packed, string(key.Font))
	if err != nil {
		_ = face.Close()
		packed.Release()
		return nil, &FontCompileError{Key: key.Font, PixelSize: key.PixelSize, Err: err}
	}

	Logger().Info("textmesh: font compiled",
		"font", key.Font,
		"pixelSize", key.PixelSize,
		"glyphs", len(rec.Glyphs),
		"atlas", fmt.Sprintf("%dx%d", packed.Width(), packed.Height()))

	return &CompiledFont{
		key:     key,
		face:    face,
		atlas:   packed,
		glyphs:  glyphs,
		regions: regions,
		index:   index,
		metrics: face.Metrics(),
		texture: texture,
	}, nil
}

// Lookup returns a cached compiled font without compiling.
func (c *Compiler) Lookup(key CompiledKey) (*CompiledFont, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cf, ok := c.entries[key]
	return cf, ok
}

// Evict releases one cache entry. Returns false if no entry exists.
func (c *Compiler) Evict(key CompiledKey) bool {
	c.mu.Lock()
	cf, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	if ok {
		cf.Release()
	}
	return ok
}

// Len returns the number of cached compiled fonts.
func (c *Compiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the cache hit and miss counts.
func (c *Compiler) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Close releases every cache entry. The compiler must not be used
// after Close.
func (c *Compiler) Close() {
	c.mu.Lock()
	entries := c.entries
	c.entries = nil
	c.closed = true
	c.mu.Unlock()

	for _, cf := range entries {
		cf.Release()
	}
}

// spriteName is the atlas sprite name for a code point.
func spriteName(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
