package textmesh

import (
	"iter"

	"github.com/gogpu/textmesh/render"
)

// Store is the read side of the host's entity storage as seen by the
// text-mesh system: the pending mesh requests, the renderers still
// missing an atlas binding, and the font records they reference.
//
// Implementations must return stable iteration order so update passes
// are deterministic.
type Store interface {
	// TextRequests yields every entity carrying a text-mesh request.
	TextRequests() iter.Seq2[EntityID, *TextMeshRequest]

	// UnboundRenderers yields every text renderer whose material has
	// no atlas texture bound yet.
	UnboundRenderers() iter.Seq2[EntityID, *TextRenderer]

	// Font resolves a font record by entity. Returns false if the
	// entity has no font record.
	Font(id EntityID) (*FontRecord, bool)
}

// Applier is the write side of the entity storage. Writes happen only
// through Batch.Commit, after the update pass has finished iterating.
type Applier interface {
	// ApplyMesh replaces the entity's mesh output and bumps its
	// version past the previous output's.
	ApplyMesh(id EntityID, out *TextMeshOutput)

	// ApplyMaterial binds a texture to a slot on the entity's
	// renderer material.
	ApplyMaterial(id EntityID, slot int, tex *render.Texture)
}
