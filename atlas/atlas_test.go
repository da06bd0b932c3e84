package atlas

import (
	"errors"
	"fmt"
	"testing"
)

func solidSprite(name string, w, h int) Sprite {
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = 0xFF
	}
	return Sprite{Name: name, Width: w, Height: h, Pix: pix}
}

func TestPackSingleSprite(t *testing.T) {
	a, err := Pack([]Sprite{solidSprite("a", 10, 12)}, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	if a.Width() < MinSize || a.Height() < MinSize {
		t.Errorf("surface %dx%d below minimum size", a.Width(), a.Height())
	}
	if a.Len() != 1 {
		t.Errorf("expected 1 region, got %d", a.Len())
	}

	r, ok := a.Region("a")
	if !ok {
		t.Fatal("expected region for sprite a")
	}
	wantW := float32(10) / float32(a.Width())
	wantH := float32(12) / float32(a.Height())
	if r.W != wantW || r.H != wantH {
		t.Errorf("region size %vx%v, want %vx%v", r.W, r.H, wantW, wantH)
	}
}

func TestPackRegionsNormalized(t *testing.T) {
	sprites := make([]Sprite, 0, 20)
	for i := 0; i < 20; i++ {
		sprites = append(sprites, solidSprite(fmt.Sprintf("s%d", i), 5+i, 7+i))
	}

	a, err := Pack(sprites, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	for _, s := range sprites {
		r, ok := a.Region(s.Name)
		if !ok {
			t.Fatalf("missing region for %q", s.Name)
		}
		if r.U < 0 || r.V < 0 || r.U+r.W > 1 || r.V+r.H > 1 {
			t.Errorf("region %q out of bounds: %+v", s.Name, r)
		}
	}
}

func TestPackNoOverlap(t *testing.T) {
	sprites := []Sprite{
		solidSprite("a", 16, 16),
		solidSprite("b", 16, 16),
		solidSprite("c", 8, 24),
	}

	a, err := Pack(sprites, PackOptions{Padding: 2})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	// Every sprite was solid white, so overlap would lose coverage:
	// the total lit pixels must equal the summed sprite areas.
	lit := 0
	for _, p := range a.Surface().Pix {
		if p == 0xFF {
			lit++
		}
	}
	want := 16*16 + 16*16 + 8*24
	if lit != want {
		t.Errorf("lit pixels = %d, want %d (sprites overlap or data lost)", lit, want)
	}
}

func TestPackDuplicateName(t *testing.T) {
	_, err := Pack([]Sprite{
		solidSprite("x", 4, 4),
		solidSprite("x", 8, 8),
	}, PackOptions{})
	if !errors.Is(err, ErrDuplicateSprite) {
		t.Errorf("expected ErrDuplicateSprite, got %v", err)
	}
}

func TestPackBadPixelData(t *testing.T) {
	_, err := Pack([]Sprite{{Name: "bad", Width: 4, Height: 4, Pix: []uint8{1, 2}}}, PackOptions{})
	if !errors.Is(err, ErrSpriteData) {
		t.Errorf("expected ErrSpriteData, got %v", err)
	}
}

func TestPackZeroSizeSprite(t *testing.T) {
	a, err := Pack([]Sprite{
		{Name: "space", Width: 0, Height: 0},
		solidSprite("a", 6, 6),
	}, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	r, ok := a.Region("space")
	if !ok {
		t.Fatal("expected a region entry for the empty sprite")
	}
	if r != (Region{}) {
		t.Errorf("empty sprite region = %+v, want zero", r)
	}
}

func TestPackAtlasFull(t *testing.T) {
	sprites := []Sprite{
		solidSprite("a", 60, 60),
		solidSprite("b", 60, 60),
	}
	_, err := Pack(sprites, PackOptions{MaxSize: MinSize})
	if !errors.Is(err, ErrAtlasFull) {
		t.Errorf("expected ErrAtlasFull, got %v", err)
	}
}

func TestPackGrowsSurface(t *testing.T) {
	// 40 sprites of 20x20 with padding cannot fit on 64x64.
	sprites := make([]Sprite, 0, 40)
	for i := 0; i < 40; i++ {
		sprites = append(sprites, solidSprite(fmt.Sprintf("g%d", i), 20, 20))
	}

	a, err := Pack(sprites, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	if a.Width() <= MinSize && a.Height() <= MinSize {
		t.Errorf("expected surface to grow past %d, got %dx%d", MinSize, a.Width(), a.Height())
	}
}

func TestPackEmptySet(t *testing.T) {
	a, err := Pack(nil, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	if a.Len() != 0 {
		t.Errorf("expected no regions, got %d", a.Len())
	}
}

func TestAtlasRefCounting(t *testing.T) {
	a, err := Pack([]Sprite{solidSprite("a", 4, 4)}, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	a.Retain()
	a.Release()
	if a.IsReleased() {
		t.Fatal("atlas released while a reference remains")
	}
	if a.Surface() == nil {
		t.Fatal("surface freed while a reference remains")
	}

	a.Release()
	if !a.IsReleased() {
		t.Fatal("atlas not released after last reference")
	}
	if a.Surface() != nil {
		t.Fatal("surface not freed after last release")
	}
}

func TestRegionVBottomOrigin(t *testing.T) {
	a, err := Pack([]Sprite{solidSprite("a", 10, 10)}, PackOptions{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	defer a.Release()

	// First shelf starts at the top row in raster space, so in GL
	// space the region's top edge (V+H) sits near the surface top.
	r, _ := a.Region("a")
	if r.V+r.H <= 0.5 {
		t.Errorf("V+H = %v, expected a top-shelf sprite near the surface top", r.V+r.H)
	}
}
