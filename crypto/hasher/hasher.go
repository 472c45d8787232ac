// Package hasher defines the hash functions a Merkle tree is built
// with, and a registry to look them up by name.
package hasher

import (
	"fmt"
	"sync"
)

// TreeHasher provides the hash functions for the tree implementations.
type TreeHasher interface {
	// ID returns the name of the cryptographic hash function.
	ID() string
	// Size returns the size of the hash output in bytes.
	Size() int
	// Digest hashes all passed byte slices. The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte

	// HashLeaf computes the hash of a leaf node as: H(key || data)
	HashLeaf(key, data []byte) []byte

	// HashInterior computes the hash of an interior node as: H(left || right)
	HashInterior(left, right []byte) []byte
}

var (
	mu      sync.RWMutex
	hashers = make(map[string]func() TreeHasher)
)

// RegisterHasher registers a hasher for use.
// It panics if a hasher with the same name is already registered.
func RegisterHasher(h string, f func() TreeHasher) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := hashers[h]; ok {
		panic(fmt.Sprintf("RegisterHasher(%v) is already registered", h))
	}
	hashers[h] = f
}

// Hasher returns a new instance of the TreeHasher registered as h.
func Hasher(h string) (TreeHasher, error) {
	mu.RLock()
	defer mu.RUnlock()
	if f, ok := hashers[h]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("Hasher(%v) is unknown hasher", h)
}

// Registered returns the names of all registered hashers.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	return names
}
