package textmesh

import (
	"golang.org/x/text/unicode/norm"
)

// MeshOptions configures BuildMesh.
type MeshOptions struct {
	// LineHeight overrides the face's natural line height, in mesh
	// units. Zero uses the compiled font's metrics.
	LineHeight float64

	// Alignment anchors the finished block by a fraction of its extent
	// per axis. See TextMeshRequest.Alignment.
	Alignment Vec2
}

// fallbackRune substitutes for code points the font did not import.
const fallbackRune = '?'

// BuildMesh lays out text with the compiled font and returns the mesh
// geometry.
//
// Layout is pen-based: each character advances a pen along the
// baseline and emits one textured quad, four vertices and six indices.
// Whitespace emits a degenerate (zero-area) quad so that vertex counts
// stay proportional to character counts. Lines break at '\n', with
// "\r\n" counting as a single break; a lone '\r' is consumed without
// emitting anything. Characters missing from the font fall back to
// '?'; if the fallback is missing too the character is dropped.
//
// Mesh space is y-down with the origin at the block's top-left corner
// and one unit per font pixel size, so a line of text is roughly one
// unit tall. The output extent is the running maximum of the emitted
// vertex positions; a non-zero alignment anchors the emitted
// geometry's bounding box by the given fraction per axis. The output's
// Version field is left zero for the caller to assign.
func BuildMesh(text string, cf *CompiledFont, opts MeshOptions) (*TextMeshOutput, error) {
	if cf == nil {
		return nil, ErrNilCompiledFont
	}

	scale := 1 / float64(cf.PixelSize())
	metrics := cf.Metrics()
	ascent := metrics.Ascent * scale

	lineHeight := opts.LineHeight
	if lineHeight <= 0 {
		lineHeight = metrics.LineHeight * scale
	}

	text = norm.NFC.String(text)
	runes := []rune(text)

	out := &TextMeshOutput{
		Positions: make([]Vec2, 0, 4*len(runes)),
		UVs:       make([]Vec2, 0, 4*len(runes)),
		Indices:   make([]uint32, 0, 6*len(runes)),
	}

	var penX float64
	var minPos, maxPos Vec2
	emitted := false
	line := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\r' {
			if i+1 >= len(runes) || runes[i+1] != '\n' {
				// Lone carriage return: consumed, no geometry.
				continue
			}
			r = '\n'
			i++
		}
		if r == '\n' {
			penX = 0
			line++
			continue
		}

		g, region, ok := cf.Lookup(r)
		if !ok {
			g, region, ok = cf.Lookup(fallbackRune)
			if !ok {
				continue
			}
		}

		left := penX + g.BearingX*scale
		top := float64(line)*lineHeight + (ascent - g.BearingY*scale)
		w := g.Width * scale
		h := g.Height * scale

		lo := V2(left, top)
		hi := V2(left+w, top+h)
		if emitted {
			minPos = minPos.Min(lo)
			maxPos = maxPos.Max(hi)
		} else {
			minPos, maxPos = lo, hi
			emitted = true
		}

		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions,
			V2(left, top),
			V2(left+w, top),
			V2(left+w, top+h),
			V2(left, top+h),
		)

		// Region V addresses the bottom edge of the sprite, so the
		// quad's top row samples V+H.
		u, v := float64(region.U), float64(region.V)
		uw, vh := float64(region.W), float64(region.H)
		out.UVs = append(out.UVs,
			V2(u, v+vh),
			V2(u+uw, v+vh),
			V2(u+uw, v),
			V2(u, v),
		)

		out.Indices = append(out.Indices,
			base, base+1, base+2,
			base+2, base+3, base,
		)

		penX += g.AdvanceX * scale
	}

	out.Extent = maxPos

	if emitted && !opts.Alignment.IsZero() {
		shift := minPos.Add(maxPos.Sub(minPos).MulVec(opts.Alignment))
		for i := range out.Positions {
			out.Positions[i] = out.Positions[i].Sub(shift)
		}
	}

	return out, nil
}
