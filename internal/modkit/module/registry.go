package module

import "sync"

// The registry maps module names to their port sets. The API fills it while
// mounting, modules read it lazily at request time
var (
	mu    sync.RWMutex
	ports = map[string]any{}
)

// Register stores the port set of the named module, replacing any previous one
func Register(name string, p any) {
	mu.Lock()
	defer mu.Unlock()
	ports[name] = p
}

// PortsAs returns the named module's port set as T. ok is false when the
// module is unknown or its ports do not implement T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	p, found := ports[name]
	mu.RUnlock()
	t, ok := p.(T)
	return t, found && ok
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ports = map[string]any{}
}
