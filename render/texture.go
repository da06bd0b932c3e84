package render

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/textmesh/atlas"
)

// Texture-related errors.
var (
	// ErrTextureReleased is returned when operating on a released texture.
	ErrTextureReleased = errors.New("render: texture has been released")

	// ErrNilAtlas is returned when the atlas is nil.
	ErrNilAtlas = errors.New("render: atlas is nil")

	// ErrInvalidDimensions is returned for non-positive texture sizes.
	ErrInvalidDimensions = errors.New("render: invalid texture dimensions")
)

// Texture represents the GPU texture backing a glyph atlas.
//
// The texture holds a non-owning reference to its source atlas; the
// font-compilation cache owns the atlas and controls its lifetime.
//
// Texture is safe for concurrent read access. Write operations
// (Upload, Close) should be synchronized externally.
type Texture struct {
	mu sync.RWMutex

	// GPU resource IDs (stub - real wgpu handles once the device
	// texture path is wired up by the host).
	textureID core.TextureID
	viewID    core.TextureViewID

	width  int
	height int
	format gputypes.TextureFormat
	usage  gputypes.TextureUsage

	sizeBytes uint64
	label     string

	released atomic.Bool
}

// CreateTexture creates a texture with the given configuration.
//
// A nil device creates a logical texture without GPU resources; this is
// the mode used when the host has not provided a DeviceHandle (e.g. in
// tests or headless tools).
func CreateTexture(device DeviceHandle, desc TextureDescriptor) (*Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, ErrInvalidDimensions
	}

	usage := desc.Usage
	if usage == 0 {
		usage = DefaultTextureUsage
	}

	// TODO: issue the wgpu CreateTexture call through device.Device()
	// once the gogpu host exposes queue access here; until then the
	// texture is logical and the IDs stay zero.
	_ = device

	return &Texture{
		width:     desc.Width,
		height:    desc.Height,
		format:    desc.Format,
		usage:     usage,
		sizeBytes: uint64(desc.Width) * uint64(desc.Height) * bytesPerPixel(desc.Format),
		label:     desc.Label,
	}, nil
}

// FromAtlas creates a texture describing the given atlas surface.
// The atlas reference is non-owning.
func FromAtlas(device DeviceHandle, a *atlas.Atlas, label string) (*Texture, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}

	return CreateTexture(device, TextureDescriptor{
		Label:  label,
		Width:  a.Width(),
		Height: a.Height(),
		Format: DefaultAtlasFormat,
	})
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// SizeBytes returns the texture size in bytes.
func (t *Texture) SizeBytes() uint64 { return t.sizeBytes }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// IsReleased returns true if the texture has been released.
func (t *Texture) IsReleased() bool { return t.released.Load() }

// TextureID returns the underlying wgpu texture ID.
// Returns a zero ID for logical textures.
func (t *Texture) TextureID() core.TextureID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textureID
}

// ViewID returns the texture view ID.
// Returns a zero ID for logical textures.
func (t *Texture) ViewID() core.TextureViewID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewID
}

// Upload copies the atlas surface to the GPU texture.
// The surface dimensions must match the texture dimensions.
func (t *Texture) Upload(a *atlas.Atlas) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if a == nil || a.IsReleased() {
		return ErrNilAtlas
	}
	if a.Width() != t.width || a.Height() != t.height {
		return fmt.Errorf("%w: texture is %dx%d, atlas is %dx%d",
			ErrInvalidDimensions, t.width, t.height, a.Width(), a.Height())
	}

	// TODO: queue.WriteTexture with the surface pixels once the wgpu
	// queue is reachable from the host device handle.

	return nil
}

// Close releases the GPU texture resources. Idempotent.
func (t *Texture) Close() {
	if t.released.Swap(true) {
		return // Already released
	}

	t.mu.Lock()
	t.textureID = core.TextureID{}
	t.viewID = core.TextureViewID{}
	t.mu.Unlock()
}

// String returns a string representation of the texture.
func (t *Texture) String() string {
	status := "active"
	if t.released.Load() {
		status = "released"
	}
	return fmt.Sprintf("Texture[%s %dx%d %d bytes %s]",
		t.label, t.width, t.height, t.sizeBytes, status)
}

// bytesPerPixel returns the pixel stride for the formats used by atlas
// textures.
func bytesPerPixel(f gputypes.TextureFormat) uint64 {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}
