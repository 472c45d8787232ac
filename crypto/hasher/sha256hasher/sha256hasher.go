// Package sha256hasher implements a hasher.TreeHasher on top of a
// SIMD accelerated SHA-256.
package sha256hasher

import (
	sha256 "github.com/minio/sha256-simd"
	"github.com/pqledger/ledger-go/crypto/hasher"
)

func init() {
	hasher.RegisterHasher(SHA256Hasher, New)
}

// SHA256Hasher is the identity of this hasher.
const SHA256Hasher = "SHA-256"

type sha256Hasher struct{}

// New returns an instance of the SHA-256 tree hasher.
func New() hasher.TreeHasher {
	return sha256Hasher{}
}

func (sha256Hasher) ID() string {
	return SHA256Hasher
}

func (sha256Hasher) Size() int {
	return sha256.Size
}

func (sha256Hasher) Digest(ms ...[]byte) []byte {
	h := sha256.New()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (sh sha256Hasher) HashLeaf(key, data []byte) []byte {
	return sh.Digest(key, data)
}

func (sh sha256Hasher) HashInterior(left, right []byte) []byte {
	return sh.Digest(left, right)
}
