package merkletree

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTreeNameAlreadyOpen is returned by Open for a name which is
// already used by an open tree.
var ErrTreeNameAlreadyOpen = errors.New("[merkletree] Tree name is already open")

// registry keeps the names of the open trees of the process.
type registry struct {
	sync.Mutex
	names map[string]struct{}
}

var openTrees = &registry{names: make(map[string]struct{})}

func (r *registry) reserve(name string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrTreeNameAlreadyOpen, name)
	}
	r.names[name] = struct{}{}
	return nil
}

func (r *registry) release(name string) {
	r.Lock()
	defer r.Unlock()
	delete(r.names, name)
}

func (r *registry) isOpen(name string) bool {
	r.Lock()
	defer r.Unlock()
	_, ok := r.names[name]
	return ok
}

// IsOpen reports whether a tree called name is open in this process.
func IsOpen(name string) bool {
	return openTrees.isOpen(name)
}
