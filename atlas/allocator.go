package atlas

import "fmt"

// Rect is an allocated rectangular region in atlas pixel coordinates.
type Rect struct {
	// X is the left edge of the region.
	X int
	// Y is the top edge of the region.
	Y int
	// Width is the region width.
	Width int
	// Height is the region height.
	Height int
}

// IsValid returns true if the rect has valid dimensions.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// String returns a string representation of the rect.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf represents a horizontal shelf in the shelf-packing algorithm.
type shelf struct {
	y      int // Top Y coordinate of this shelf
	height int // Height of this shelf (tallest item so far)
	nextX  int // Next available X position on this shelf
}

// shelfAllocator implements a shelf-packing algorithm for allocating
// rectangular regions within a fixed-size area.
//
// The area is divided into horizontal "shelves". Each new rectangle is
// placed on the first shelf with room, or on a new shelf below. Packing
// sprites sorted by descending height keeps shelves dense.
type shelfAllocator struct {
	width   int
	height  int
	padding int

	shelves []*shelf

	allocCount int
	usedArea   int
}

// newShelfAllocator creates an allocator for a width x height area with
// the given padding between items.
func newShelfAllocator(width, height, padding int) *shelfAllocator {
	if padding < 0 {
		padding = 0
	}
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]*shelf, 0, 16),
	}
}

// allocate finds space for a rectangle of the given size.
// Returns an invalid rect if the rectangle cannot be placed.
func (a *shelfAllocator) allocate(width, height int) Rect {
	if width <= 0 || height <= 0 {
		return Rect{}
	}

	paddedWidth := width + a.padding
	paddedHeight := height + a.padding

	if paddedWidth > a.width || paddedHeight > a.height {
		return Rect{}
	}

	for _, s := range a.shelves {
		if a.fitsOnShelf(s, paddedWidth, paddedHeight) {
			return a.allocateOnShelf(s, width, height, paddedWidth)
		}
	}

	return a.allocateNewShelf(width, height, paddedWidth, paddedHeight)
}

// fitsOnShelf checks if a padded rectangle fits on the given shelf.
func (a *shelfAllocator) fitsOnShelf(s *shelf, paddedWidth, paddedHeight int) bool {
	if s.nextX+paddedWidth > a.width {
		return false
	}
	// A shelf can only grow taller while it is still empty.
	if paddedHeight > s.height && s.nextX > 0 {
		return false
	}
	return true
}

// allocateOnShelf places a rectangle on an existing shelf.
func (a *shelfAllocator) allocateOnShelf(s *shelf, width, height, paddedWidth int) Rect {
	r := Rect{X: s.nextX, Y: s.y, Width: width, Height: height}

	s.nextX += paddedWidth
	if height+a.padding > s.height {
		s.height = height + a.padding
	}

	a.allocCount++
	a.usedArea += width * height
	return r
}

// allocateNewShelf opens a new shelf below the last one and places the
// rectangle on it.
func (a *shelfAllocator) allocateNewShelf(width, height, paddedWidth, paddedHeight int) Rect {
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height
	}

	if newY+paddedHeight > a.height {
		return Rect{}
	}

	a.shelves = append(a.shelves, &shelf{
		y:      newY,
		height: paddedHeight,
		nextX:  paddedWidth,
	})

	a.allocCount++
	a.usedArea += width * height
	return Rect{X: 0, Y: newY, Width: width, Height: height}
}

// utilization returns the fraction of area used (0.0 to 1.0).
func (a *shelfAllocator) utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}
