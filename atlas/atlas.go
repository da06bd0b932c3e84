// Package atlas packs named glyph bitmaps into a single 8-bit texture
// surface and reports a normalized UV region per sprite.
//
// Packing is a one-shot operation: all sprites are submitted together
// and placed with a shelf-packing allocator on the smallest
// power-of-two surface that fits them. The resulting Atlas is shared by
// reference; the creator owns the initial reference and consumers that
// outlive it must Retain/Release their own.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
	"sync/atomic"
)

// Packing errors.
var (
	// ErrAtlasFull is returned when the sprites cannot fit on the
	// maximum allowed surface.
	ErrAtlasFull = errors.New("atlas: sprite set exceeds maximum surface size")

	// ErrDuplicateSprite is returned when two sprites share a name.
	ErrDuplicateSprite = errors.New("atlas: duplicate sprite name")

	// ErrSpriteData is returned when a sprite's pixel buffer does not
	// match its declared dimensions.
	ErrSpriteData = errors.New("atlas: sprite pixel data size mismatch")

	// ErrReleased is returned when operating on a fully released atlas.
	ErrReleased = errors.New("atlas: atlas has been released")
)

// Default packing settings.
const (
	// DefaultPadding is the default spacing in pixels between sprites.
	DefaultPadding = 4

	// DefaultMaxSize is the default maximum surface dimension.
	DefaultMaxSize = 4096

	// MinSize is the minimum surface dimension.
	MinSize = 64
)

// Sprite is one named bitmap to pack. Pix holds Width*Height 8-bit
// coverage values, row-major. Zero-dimension sprites are legal; they
// receive a zero Region and occupy no surface area.
type Sprite struct {
	Name   string
	Width  int
	Height int
	Pix    []uint8
}

// Region is a sprite's normalized location on the atlas surface.
//
// U and V address the region's bottom-left corner with V measured from
// the bottom edge of the surface (OpenGL texture convention); U+W and
// V+H address the top-right corner.
type Region struct {
	U, V float32
	W, H float32
}

// PackOptions configures Pack.
type PackOptions struct {
	// Padding is the spacing in pixels between sprites.
	// Default: DefaultPadding.
	Padding int

	// MaxSize caps the surface dimensions. Default: DefaultMaxSize.
	MaxSize int
}

// Atlas is a packed texture surface plus per-sprite UV regions.
//
// The surface is shared by reference and reference counted: Pack
// returns it with one reference held by the caller. Release drops a
// reference; the pixel data is freed when the count reaches zero.
type Atlas struct {
	width  int
	height int

	surface *image.Alpha
	regions map[string]Region

	refs atomic.Int32
}

// Pack places all sprites on a single surface and returns the atlas.
//
// Sprites are placed tallest first on the smallest power-of-two surface
// that can hold them, growing up to MaxSize before failing with
// ErrAtlasFull. Sprite names must be unique.
func Pack(sprites []Sprite, opts PackOptions) (*Atlas, error) {
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	seen := make(map[string]struct{}, len(sprites))
	totalArea := 0
	for i := range sprites {
		s := &sprites[i]
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSprite, s.Name)
		}
		seen[s.Name] = struct{}{}

		if s.Width > 0 && s.Height > 0 {
			if len(s.Pix) != s.Width*s.Height {
				return nil, fmt.Errorf("%w: %q is %dx%d with %d bytes",
					ErrSpriteData, s.Name, s.Width, s.Height, len(s.Pix))
			}
			totalArea += (s.Width + padding) * (s.Height + padding)
		}
	}

	// Tallest first keeps shelves dense. Ties broken by width then name
	// so packing is deterministic.
	order := make([]int, len(sprites))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := &sprites[order[a]], &sprites[order[b]]
		if sa.Height != sb.Height {
			return sa.Height > sb.Height
		}
		if sa.Width != sb.Width {
			return sa.Width > sb.Width
		}
		return sa.Name < sb.Name
	})

	width, height := initialSize(totalArea, maxSize)
	for {
		placed, ok := tryPack(sprites, order, width, height, padding)
		if ok {
			return build(sprites, placed, width, height), nil
		}

		// Grow the smaller dimension first; give up past MaxSize.
		switch {
		case width <= height && width*2 <= maxSize:
			width *= 2
		case height*2 <= maxSize:
			height *= 2
		case width*2 <= maxSize:
			width *= 2
		default:
			return nil, ErrAtlasFull
		}
	}
}

// initialSize picks the smallest power-of-two square with at least the
// given area, clamped to [MinSize, maxSize].
func initialSize(area, maxSize int) (int, int) {
	size := MinSize
	for size*size < area && size < maxSize {
		size *= 2
	}
	if size > maxSize {
		size = maxSize
	}
	return size, size
}

// tryPack attempts to place every non-empty sprite on a width x height
// surface. Returns the placements indexed like sprites.
func tryPack(sprites []Sprite, order []int, width, height, padding int) ([]Rect, bool) {
	alloc := newShelfAllocator(width, height, padding)
	placed := make([]Rect, len(sprites))

	for _, i := range order {
		s := &sprites[i]
		if s.Width <= 0 || s.Height <= 0 {
			continue
		}
		r := alloc.allocate(s.Width, s.Height)
		if !r.IsValid() {
			return nil, false
		}
		placed[i] = r
	}
	return placed, true
}

// build blits the sprites onto the surface and computes UV regions.
func build(sprites []Sprite, placed []Rect, width, height int) *Atlas {
	surface := image.NewAlpha(image.Rect(0, 0, width, height))
	regions := make(map[string]Region, len(sprites))

	fw := float32(width)
	fh := float32(height)

	for i := range sprites {
		s := &sprites[i]
		r := placed[i]
		if !r.IsValid() {
			regions[s.Name] = Region{}
			continue
		}

		for row := 0; row < s.Height; row++ {
			dst := surface.Pix[(r.Y+row)*surface.Stride+r.X:]
			src := s.Pix[row*s.Width : (row+1)*s.Width]
			copy(dst[:s.Width], src)
		}

		regions[s.Name] = Region{
			U: float32(r.X) / fw,
			V: float32(height-r.Y-r.Height) / fh,
			W: float32(r.Width) / fw,
			H: float32(r.Height) / fh,
		}
	}

	a := &Atlas{
		width:   width,
		height:  height,
		surface: surface,
		regions: regions,
	}
	a.refs.Store(1)
	return a
}

// Region returns the UV region for a sprite name.
func (a *Atlas) Region(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Width returns the surface width in pixels.
func (a *Atlas) Width() int { return a.width }

// Height returns the surface height in pixels.
func (a *Atlas) Height() int { return a.height }

// Len returns the number of packed sprites, empty ones included.
func (a *Atlas) Len() int { return len(a.regions) }

// Surface returns the underlying 8-bit coverage surface.
// Returns nil after the last reference is released.
func (a *Atlas) Surface() *image.Alpha { return a.surface }

// Retain adds a reference to the atlas.
func (a *Atlas) Retain() {
	a.refs.Add(1)
}

// Release drops a reference. When the last reference is released the
// pixel data is freed and the atlas must not be used further.
func (a *Atlas) Release() {
	if a.refs.Add(-1) == 0 {
		a.surface = nil
		a.regions = nil
	}
}

// IsReleased reports whether all references have been released.
func (a *Atlas) IsReleased() bool {
	return a.refs.Load() <= 0
}

// SavePNG writes the surface to a grayscale PNG, for debugging.
func (a *Atlas) SavePNG(path string) error {
	if a.IsReleased() {
		return ErrReleased
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlas: failed to create file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := png.Encode(f, a.surface); err != nil {
		return fmt.Errorf("atlas: failed to encode png: %w", err)
	}
	return nil
}
