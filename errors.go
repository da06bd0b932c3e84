package textmesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for the textmesh package.
var (
	// ErrFontNotLoaded is returned when a font's metrics have not
	// finished importing. Requests hitting this are retried on the
	// next update tick; it is not a failure.
	ErrFontNotLoaded = errors.New("textmesh: font not loaded")

	// ErrNilCompiledFont is returned when building a mesh without a
	// compiled font.
	ErrNilCompiledFont = errors.New("textmesh: compiled font is nil")

	// ErrInvalidPixelSize is returned for non-positive pixel sizes.
	ErrInvalidPixelSize = errors.New("textmesh: pixel size must be positive")

	// ErrCompilerClosed is returned when compiling through a closed
	// compiler.
	ErrCompilerClosed = errors.New("textmesh: compiler is closed")
)

// FontCompileError reports a failure to load or rasterize a font.
// The cache is left unchanged; the failing request stalls until its
// version is bumped again.
type FontCompileError struct {
	Key       FontKey
	PixelSize int
	Err       error
}

func (e *FontCompileError) Error() string {
	return fmt.Sprintf("textmesh: compile font %q at %dpx: %v", e.Key, e.PixelSize, e.Err)
}

func (e *FontCompileError) Unwrap() error { return e.Err }

// AtlasPackError reports that the font's glyph bitmaps could not be
// packed into an atlas surface. It propagates as a compile failure and
// no cache entry is created.
type AtlasPackError struct {
	Key       FontKey
	PixelSize int
	Err       error
}

func (e *AtlasPackError) Error() string {
	return fmt.Sprintf("textmesh: pack atlas for font %q at %dpx: %v", e.Key, e.PixelSize, e.Err)
}

func (e *AtlasPackError) Unwrap() error { return e.Err }
