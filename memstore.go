package textmesh

import (
	"iter"
	"slices"

	"github.com/gogpu/textmesh/render"
)

// MemStore is an in-memory entity store implementing Store and
// Applier. It backs the demo binary and tests; real hosts adapt their
// own storage to the two interfaces instead.
//
// MemStore is not safe for concurrent use.
type MemStore struct {
	fonts     map[EntityID]*FontRecord
	requests  map[EntityID]*TextMeshRequest
	renderers map[EntityID]*TextRenderer
	outputs   map[EntityID]*TextMeshOutput
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		fonts:     make(map[EntityID]*FontRecord),
		requests:  make(map[EntityID]*TextMeshRequest),
		renderers: make(map[EntityID]*TextRenderer),
		outputs:   make(map[EntityID]*TextMeshOutput),
	}
}

// PutFont stores a font record under an entity.
func (s *MemStore) PutFont(id EntityID, rec *FontRecord) {
	s.fonts[id] = rec
}

// PutRequest stores a text-mesh request under an entity.
func (s *MemStore) PutRequest(id EntityID, req *TextMeshRequest) {
	s.requests[id] = req
}

// PutRenderer stores a text renderer under an entity.
func (s *MemStore) PutRenderer(id EntityID, r *TextRenderer) {
	s.renderers[id] = r
}

// Request returns the text-mesh request for an entity.
func (s *MemStore) Request(id EntityID) (*TextMeshRequest, bool) {
	req, ok := s.requests[id]
	return req, ok
}

// Output returns the last applied mesh output for an entity.
func (s *MemStore) Output(id EntityID) (*TextMeshOutput, bool) {
	out, ok := s.outputs[id]
	return out, ok
}

// Renderer returns the text renderer for an entity.
func (s *MemStore) Renderer(id EntityID) (*TextRenderer, bool) {
	r, ok := s.renderers[id]
	return r, ok
}

// Font implements Store.
func (s *MemStore) Font(id EntityID) (*FontRecord, bool) {
	rec, ok := s.fonts[id]
	return rec, ok
}

// TextRequests implements Store. Entities are yielded in ascending ID
// order.
func (s *MemStore) TextRequests() iter.Seq2[EntityID, *TextMeshRequest] {
	return func(yield func(EntityID, *TextMeshRequest) bool) {
		for _, id := range sortedKeys(s.requests) {
			if !yield(id, s.requests[id]) {
				return
			}
		}
	}
}

// UnboundRenderers implements Store. Entities are yielded in ascending
// ID order; renderers that already have a texture on slot 0 are
// skipped.
func (s *MemStore) UnboundRenderers() iter.Seq2[EntityID, *TextRenderer] {
	return func(yield func(EntityID, *TextRenderer) bool) {
		for _, id := range sortedKeys(s.renderers) {
			r := s.renderers[id]
			if r.Bound() {
				continue
			}
			if !yield(id, r) {
				return
			}
		}
	}
}

// ApplyMesh implements Applier. The new output's version is set to one
// past the previous output's version, starting at 1.
func (s *MemStore) ApplyMesh(id EntityID, out *TextMeshOutput) {
	out.Version = 1
	if prev, ok := s.outputs[id]; ok {
		out.Version = prev.Version + 1
	}
	s.outputs[id] = out
}

// ApplyMaterial implements Applier. Entities without a renderer or
// material are ignored.
func (s *MemStore) ApplyMaterial(id EntityID, slot int, tex *render.Texture) {
	r, ok := s.renderers[id]
	if !ok || r.Material == nil {
		return
	}
	r.Material.SetTexture(slot, tex)
}

func sortedKeys[V any](m map[EntityID]V) []EntityID {
	keys := make([]EntityID, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}
