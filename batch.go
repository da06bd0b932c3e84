package textmesh

import "github.com/gogpu/textmesh/render"

// Batch records store mutations for deferred application.
//
// The update pass appends mutations while it iterates the store and
// commits them in one step at the end, so iteration never observes its
// own writes. Mutations are applied in recording order.
//
// Batch is not safe for concurrent use.
type Batch struct {
	mutations []Mutation
}

// NewBatch creates an empty mutation batch.
func NewBatch() *Batch {
	return &Batch{mutations: make([]Mutation, 0, 16)}
}

// SetMesh records a mesh replacement for an entity.
func (b *Batch) SetMesh(id EntityID, out *TextMeshOutput) {
	b.mutations = append(b.mutations, &SetMeshMutation{ID: id, Output: out})
}

// BindMaterial records a texture binding on an entity's material slot.
func (b *Batch) BindMaterial(id EntityID, slot int, tex *render.Texture) {
	b.mutations = append(b.mutations, &BindMaterialMutation{ID: id, Slot: slot, Texture: tex})
}

// Len returns the number of recorded mutations.
func (b *Batch) Len() int {
	return len(b.mutations)
}

// Mutations returns the recorded mutations in order. The slice is
// owned by the batch; callers must not modify it.
func (b *Batch) Mutations() []Mutation {
	return b.mutations
}

// Commit applies the recorded mutations to the store in order and
// empties the batch.
func (b *Batch) Commit(a Applier) {
	for _, m := range b.mutations {
		m.apply(a)
	}
	b.mutations = b.mutations[:0]
}

// Reset discards the recorded mutations without applying them.
func (b *Batch) Reset() {
	b.mutations = b.mutations[:0]
}
