package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host application (e.g. a gogpu.App) implements DeviceHandle and
// passes it to textmesh, allowing atlas textures to be created on the
// shared GPU device. textmesh RECEIVES the device from the host, it
// does NOT create one.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// textmesh-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes parameters for creating an atlas texture.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	// Zero means DefaultTextureUsage.
	Usage gputypes.TextureUsage
}

// DefaultTextureUsage is the usage for atlas textures created without
// explicit flags: sampled in shaders and written from the CPU surface.
const DefaultTextureUsage = gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding

// DefaultAtlasFormat is the format for glyph atlas textures. Glyph
// coverage is single channel.
const DefaultAtlasFormat = gputypes.TextureFormatR8Unorm
