package render

// MaterialTextureSlots is the number of texture slots on a material.
// Slot 0 is the glyph atlas by convention.
const MaterialTextureSlots = 4

// Material is the shading state of a text renderer. Only the texture
// slots matter to this module; the host rendering pipeline owns
// everything else about the material.
type Material struct {
	textures [MaterialTextureSlots]*Texture
}

// NewMaterial creates a material with all texture slots empty.
func NewMaterial() *Material {
	return &Material{}
}

// SetTexture binds a texture to a slot. Out-of-range slots are ignored.
func (m *Material) SetTexture(slot int, t *Texture) {
	if slot < 0 || slot >= MaterialTextureSlots {
		return
	}
	m.textures[slot] = t
}

// Texture returns the texture bound to a slot, or nil.
func (m *Material) Texture(slot int) *Texture {
	if slot < 0 || slot >= MaterialTextureSlots {
		return nil
	}
	return m.textures[slot]
}

// HasTexture reports whether a slot has a bound texture.
func (m *Material) HasTexture(slot int) bool {
	return m.Texture(slot) != nil
}
