// Package sha3hasher implements a hasher.TreeHasher on top of SHA3-256.
// Import it for its side effect to make "SHA3-256" available through
// hasher.Hasher.
package sha3hasher

import (
	"github.com/pqledger/ledger-go/crypto/hasher"
	"golang.org/x/crypto/sha3"
)

func init() {
	hasher.RegisterHasher(SHA3Hasher, New)
}

// SHA3Hasher is the identity of this hasher.
const SHA3Hasher = "SHA3-256"

type sha3Hasher struct{}

// New returns an instance of the SHA3-256 tree hasher.
func New() hasher.TreeHasher {
	return sha3Hasher{}
}

func (sha3Hasher) ID() string {
	return SHA3Hasher
}

func (sha3Hasher) Size() int {
	return 32
}

func (sha3Hasher) Digest(ms ...[]byte) []byte {
	h := sha3.New256()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (sh sha3Hasher) HashLeaf(key, data []byte) []byte {
	return sh.Digest(key, data)
}

func (sh sha3Hasher) HashInterior(left, right []byte) []byte {
	return sh.Digest(left, right)
}
