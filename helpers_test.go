package textmesh

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// asciiGlyphs is the printable ASCII range used by the test fonts.
func asciiGlyphs() []rune {
	glyphs := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		glyphs = append(glyphs, r)
	}
	return glyphs
}

func testFontRecord(key FontKey, pixelSize int) *FontRecord {
	return &FontRecord{
		Key:       key,
		Data:      goregular.TTF,
		Glyphs:    asciiGlyphs(),
		Loaded:    true,
		PixelSize: pixelSize,
	}
}

func compileTestFont(t *testing.T, pixelSize int) *CompiledFont {
	t.Helper()
	c := NewCompiler()
	t.Cleanup(c.Close)

	cf, err := c.CompileOrFetch(testFontRecord("test", pixelSize), pixelSize)
	if err != nil {
		t.Fatalf("CompileOrFetch failed: %v", err)
	}
	return cf
}

const epsilon = 1e-9

func nearlyEqual(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}

// positionBounds returns the min and max corners over a position list.
func positionBounds(positions []Vec2) (lo, hi Vec2) {
	lo, hi = positions[0], positions[0]
	for _, p := range positions[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}
