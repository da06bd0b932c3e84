package font

// backendRegistry holds registered font backends.
// The default backend is "ximage" (golang.org/x/image).
var backendRegistry = map[string]Backend{
	"ximage": &ximageBackend{},
	"gotext": &gotextBackend{},
}

// DefaultBackendName is the name of the default backend.
const DefaultBackendName = "ximage"

// RegisterBackend registers a custom font backend under the given name.
// Registering over an existing name replaces it.
func RegisterBackend(name string, b Backend) {
	backendRegistry[name] = b
}

// GetBackend returns the backend by name, or the default if the name
// is unknown or empty.
func GetBackend(name string) Backend {
	if b, ok := backendRegistry[name]; ok {
		return b
	}
	return backendRegistry[DefaultBackendName]
}

// Load parses font data with the default backend.
func Load(data []byte) (Face, error) {
	return GetBackend(DefaultBackendName).Load(data)
}
