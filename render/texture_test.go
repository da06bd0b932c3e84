package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/atlas"
)

func packTestAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	pix := make([]uint8, 8*8)
	a, err := atlas.Pack([]atlas.Sprite{{Name: "g", Width: 8, Height: 8, Pix: pix}}, atlas.PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	t.Cleanup(a.Release)
	return a
}

func TestCreateTexture(t *testing.T) {
	tex, err := CreateTexture(nil, TextureDescriptor{
		Label:  "test",
		Width:  128,
		Height: 64,
		Format: gputypes.TextureFormatR8Unorm,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	if tex.Width() != 128 || tex.Height() != 64 {
		t.Errorf("size = %dx%d, want 128x64", tex.Width(), tex.Height())
	}
	if tex.SizeBytes() != 128*64 {
		t.Errorf("SizeBytes = %d, want %d for R8", tex.SizeBytes(), 128*64)
	}
	if tex.Label() != "test" {
		t.Errorf("Label = %q, want %q", tex.Label(), "test")
	}
	if tex.IsReleased() {
		t.Error("new texture reports released")
	}
}

func TestCreateTextureInvalidDimensions(t *testing.T) {
	if _, err := CreateTexture(nil, TextureDescriptor{Width: 0, Height: 64}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestCreateTextureDefaultUsage(t *testing.T) {
	tex, err := CreateTexture(nil, TextureDescriptor{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	if tex.usage != DefaultTextureUsage {
		t.Errorf("usage = %v, want default %v", tex.usage, DefaultTextureUsage)
	}
}

func TestFromAtlas(t *testing.T) {
	a := packTestAtlas(t)

	tex, err := FromAtlas(nil, a, "glyphs")
	if err != nil {
		t.Fatalf("FromAtlas failed: %v", err)
	}

	if tex.Width() != a.Width() || tex.Height() != a.Height() {
		t.Errorf("texture %dx%d does not match atlas %dx%d",
			tex.Width(), tex.Height(), a.Width(), a.Height())
	}
	if tex.Format() != DefaultAtlasFormat {
		t.Errorf("format = %v, want %v", tex.Format(), DefaultAtlasFormat)
	}
}

func TestFromAtlasNil(t *testing.T) {
	if _, err := FromAtlas(nil, nil, ""); !errors.Is(err, ErrNilAtlas) {
		t.Errorf("expected ErrNilAtlas, got %v", err)
	}
}

func TestUploadSizeMismatch(t *testing.T) {
	a := packTestAtlas(t)

	tex, err := CreateTexture(nil, TextureDescriptor{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	if err := tex.Upload(a); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestUploadAfterClose(t *testing.T) {
	a := packTestAtlas(t)

	tex, err := FromAtlas(nil, a, "")
	if err != nil {
		t.Fatalf("FromAtlas failed: %v", err)
	}

	tex.Close()
	if err := tex.Upload(a); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("expected ErrTextureReleased, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	tex, err := CreateTexture(nil, TextureDescriptor{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	tex.Close()
	tex.Close()
	if !tex.IsReleased() {
		t.Error("texture not released after Close")
	}
}

func TestMaterialSlots(t *testing.T) {
	m := NewMaterial()
	if m.HasTexture(0) {
		t.Error("new material has a texture on slot 0")
	}

	tex, err := CreateTexture(nil, TextureDescriptor{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	m.SetTexture(0, tex)
	if !m.HasTexture(0) {
		t.Error("slot 0 not bound after SetTexture")
	}
	if m.Texture(0) != tex {
		t.Error("slot 0 returned a different texture")
	}

	// Out-of-range slots are ignored.
	m.SetTexture(-1, tex)
	m.SetTexture(MaterialTextureSlots, tex)
	if m.Texture(-1) != nil || m.Texture(MaterialTextureSlots) != nil {
		t.Error("out-of-range slot lookup returned a texture")
	}
}
