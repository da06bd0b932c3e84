// Package textmesh generates renderable text geometry from font assets.
//
// # Overview
//
// textmesh turns strings into textured quad meshes. Fonts are compiled
// on first use: every imported glyph is rasterized at the record's
// pixel size and packed into a single alpha atlas texture, and the
// result is memoized per (font, pixel size) pair. Mesh generation then
// lays out quads with a pen along the baseline, four vertices and six
// indices per character, sampling the compiled atlas.
//
// # Quick Start
//
//	compiler := textmesh.NewCompiler()
//	defer compiler.Close()
//
//	rec := &textmesh.FontRecord{
//	    Key:       "demo",
//	    Data:      ttfBytes,
//	    Glyphs:    glyphList,
//	    Loaded:    true,
//	    PixelSize: 48,
//	}
//	cf, err := compiler.CompileOrFetch(rec, rec.PixelSize)
//	if err != nil {
//	    // handle
//	}
//	out, err := textmesh.BuildMesh("Hello\nworld", cf, textmesh.MeshOptions{
//	    Alignment: textmesh.V2(0.5, 0.5),
//	})
//
// # System Integration
//
// Hosts with entity storage run the System once per tick. It reads
// requests through the Store interface, records writes into a Batch,
// and the host commits the batch through the Applier interface after
// iteration ends. MemStore is a ready-made in-memory implementation of
// both sides.
//
//	sys := textmesh.NewSystem(compiler)
//	batch := sys.Update(store)
//	batch.Commit(store)
//
// Meshes regenerate only when a request's Version changes. Fonts whose
// glyph import has not finished are retried on later ticks; compile
// failures stall the request until its version is bumped.
//
// # Caching Contract
//
// The compilation cache keys on font identity and pixel size only. A
// font's byte buffer is never re-validated after the first compile, so
// mutating it in place silently serves stale atlases. Evict the entry
// or use a new font key instead.
//
// # Coordinate System
//
// Mesh space is y-down with the origin at the text block's top-left
// corner and one unit per pixel size. UV regions follow the OpenGL
// convention with V measured from the bottom of the atlas.
package textmesh

// Version is the current version of the library.
const Version = "0.1.0"
