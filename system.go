package textmesh

// DefaultPixelSize is the rasterization size used when a font record
// does not choose one.
const DefaultPixelSize = 32

// AtlasSlot is the material texture slot atlases are bound to.
const AtlasSlot = 0

// System drives text mesh generation over an entity store. Once per
// tick, Update scans the pending requests, compiles fonts on first
// use, regenerates meshes whose request version changed, and binds
// compiled atlas textures to renderers that lack one.
//
// System is single-threaded by design: it is meant to run on the
// host's update thread, and the only shared state it touches, the
// font compilation cache, locks internally.
type System struct {
	compiler *Compiler

	// seen maps each entity to the last request version that was
	// processed to completion, successfully or not. Entities whose
	// font is not yet loaded are deliberately absent so they retry.
	seen map[EntityID]uint64
}

// NewSystem creates a system on top of a font compiler. The system
// does not own the compiler; closing it is the caller's job.
func NewSystem(compiler *Compiler) *System {
	return &System{
		compiler: compiler,
		seen:     make(map[EntityID]uint64),
	}
}

// Compiler returns the underlying font compiler.
func (s *System) Compiler() *Compiler { return s.compiler }

// Update runs one tick over the store and returns the recorded
// mutation batch. The caller commits the batch once iteration is
// over; Update itself never writes to the store.
//
// Requests whose version matches the last processed one are skipped.
// Requests referencing a font that has not finished loading are left
// unprocessed and retried next tick. Compile failures are logged and
// the request stalls until its version is bumped again.
func (s *System) Update(st Store) *Batch {
	batch := NewBatch()

	for id, req := range st.TextRequests() {
		if last, ok := s.seen[id]; ok && last == req.Version {
			continue
		}

		rec, ok := st.Font(req.Font)
		if !ok || !rec.Loaded {
			Logger().Debug("textmesh: font not ready, retrying",
				"entity", id, "font", req.Font)
			continue
		}

		cf, err := s.compiler.CompileOrFetch(rec, pixelSize(rec))
		if err != nil {
			Logger().Warn("textmesh: request skipped",
				"entity", id, "font", rec.Key, "error", err)
			s.seen[id] = req.Version
			continue
		}

		out, err := BuildMesh(req.Text, cf, MeshOptions{
			LineHeight: rec.LineHeight,
			Alignment:  req.Alignment,
		})
		if err != nil {
			Logger().Warn("textmesh: mesh build failed",
				"entity", id, "font", rec.Key, "error", err)
			s.seen[id] = req.Version
			continue
		}

		batch.SetMesh(id, out)
		s.seen[id] = req.Version
	}

	for id, r := range st.UnboundRenderers() {
		rec, ok := st.Font(r.Font)
		if !ok || !rec.Loaded {
			continue
		}

		key := CompiledKey{Font: rec.Key, PixelSize: pixelSize(rec)}
		cf, ok := s.compiler.Lookup(key)
		if !ok {
			// Not compiled yet; a request for this font will compile
			// it and the binding happens on a later tick.
			continue
		}

		batch.BindMaterial(id, AtlasSlot, cf.Texture())
	}

	return batch
}

// Forget drops the processed-version record for an entity, forcing its
// next request to be treated as new. Call when an entity is despawned
// and its ID may be reused.
func (s *System) Forget(id EntityID) {
	delete(s.seen, id)
}

func pixelSize(rec *FontRecord) int {
	if rec.PixelSize > 0 {
		return rec.PixelSize
	}
	return DefaultPixelSize
}
