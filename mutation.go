package textmesh

import "github.com/gogpu/textmesh/render"

// MutationType identifies the type of a recorded store mutation.
type MutationType uint8

const (
	// MutSetMesh replaces an entity's mesh output.
	MutSetMesh MutationType = iota

	// MutBindMaterial binds a texture to a renderer material slot.
	MutBindMaterial
)

var mutationTypeNames = [...]string{
	MutSetMesh:      "SetMesh",
	MutBindMaterial: "BindMaterial",
}

// String returns the mutation type name.
func (t MutationType) String() string {
	if int(t) < len(mutationTypeNames) {
		return mutationTypeNames[t]
	}
	return "Unknown"
}

// Mutation is one recorded write against the entity store. Mutations
// are captured during an update pass and applied together afterwards so
// the pass never writes to storage it is still iterating.
//
// This is a sealed interface; only types in this package implement it.
type Mutation interface {
	// Type returns the mutation type.
	Type() MutationType

	// Entity returns the target entity.
	Entity() EntityID

	// apply performs the write. Called by Batch.Commit.
	apply(a Applier)
}

// SetMeshMutation replaces an entity's text mesh output.
type SetMeshMutation struct {
	ID     EntityID
	Output *TextMeshOutput
}

// Type returns MutSetMesh.
func (m *SetMeshMutation) Type() MutationType { return MutSetMesh }

// Entity returns the target entity.
func (m *SetMeshMutation) Entity() EntityID { return m.ID }

func (m *SetMeshMutation) apply(a Applier) {
	a.ApplyMesh(m.ID, m.Output)
}

// BindMaterialMutation binds a texture to a slot on an entity's
// renderer material.
type BindMaterialMutation struct {
	ID      EntityID
	Slot    int
	Texture *render.Texture
}

// Type returns MutBindMaterial.
func (m *BindMaterialMutation) Type() MutationType { return MutBindMaterial }

// Entity returns the target entity.
func (m *BindMaterialMutation) Entity() EntityID { return m.ID }

func (m *BindMaterialMutation) apply(a Applier) {
	a.ApplyMaterial(m.ID, m.Slot, m.Texture)
}
