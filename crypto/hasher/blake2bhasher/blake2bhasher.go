// Package blake2bhasher implements a hasher.TreeHasher on top of
// BLAKE2b-256. The unkeyed variant is registered as "BLAKE2b-256";
// a keyed variant is built with NewKeyed.
package blake2bhasher

import (
	"hash"

	"github.com/pqledger/ledger-go/crypto/hasher"
	"golang.org/x/crypto/blake2b"
)

func init() {
	hasher.RegisterHasher(BLAKE2bHasher, New)
}

const (
	// BLAKE2bHasher is the identity of the unkeyed hasher.
	BLAKE2bHasher = "BLAKE2b-256"
	// KeyedBLAKE2bHasher is the identity of a keyed hasher.
	KeyedBLAKE2bHasher = "BLAKE2b-256-keyed"
)

type blake2bHasher struct {
	key []byte
}

// New returns an instance of the unkeyed BLAKE2b-256 tree hasher.
func New() hasher.TreeHasher {
	return &blake2bHasher{}
}

// NewKeyed returns a BLAKE2b-256 tree hasher using key as MAC key.
// The key must be at most 64 bytes long.
func NewKeyed(key []byte) (hasher.TreeHasher, error) {
	// validate the key once, so that Digest can't fail later
	if _, err := blake2b.New256(key); err != nil {
		return nil, err
	}
	return &blake2bHasher{key: append([]byte{}, key...)}, nil
}

func (bh *blake2bHasher) ID() string {
	if len(bh.key) > 0 {
		return KeyedBLAKE2bHasher
	}
	return BLAKE2bHasher
}

func (bh *blake2bHasher) Size() int {
	return blake2b.Size256
}

func (bh *blake2bHasher) Digest(ms ...[]byte) []byte {
	h := bh.new()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (bh *blake2bHasher) HashLeaf(key, data []byte) []byte {
	return bh.Digest(key, data)
}

func (bh *blake2bHasher) HashInterior(left, right []byte) []byte {
	return bh.Digest(left, right)
}

func (bh *blake2bHasher) new() hash.Hash {
	h, err := blake2b.New256(bh.key)
	if err != nil {
		// unreachable, the key is validated in NewKeyed
		panic(err)
	}
	return h
}
